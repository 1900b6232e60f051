package charset

import (
	"testing"
)

func TestNew_SortsAndDedupes(t *testing.T) {
	s := New('c', 'a', 'b', 'a', 'c')
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	for i, want := range "abc" {
		if got := s.At(i); got != want {
			t.Errorf("At(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestNew_DoesNotAliasInput(t *testing.T) {
	in := []rune{'b', 'a'}
	s := New(in...)
	in[0] = 'z'
	if s.Contains('z') {
		t.Error("set must not alias the caller's slice")
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name    string
		lo, hi  rune
		wantLen int
	}{
		{"digits", '0', '9', 10},
		{"single", 'x', 'x', 1},
		{"inverted", 'z', 'a', 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Range(tt.lo, tt.hi).Len(); got != tt.wantLen {
				t.Errorf("Range(%q, %q).Len() = %d, want %d", tt.lo, tt.hi, got, tt.wantLen)
			}
		})
	}
}

func TestPredefinedSets(t *testing.T) {
	tests := []struct {
		name    string
		set     Set
		wantLen int
		member  rune
		outside rune
	}{
		{"digit", Digit, 10, '7', 'a'},
		{"word", Word, 62, 'q', '_'},
		{"space", Space, 4, '\t', 'x'},
		{"printable", Printable, 95, '~', '\n'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", tt.set.Len(), tt.wantLen)
			}
			if !tt.set.Contains(tt.member) {
				t.Errorf("Contains(%q) = false, want true", tt.member)
			}
			if tt.set.Contains(tt.outside) {
				t.Errorf("Contains(%q) = true, want false", tt.outside)
			}
		})
	}
}

func TestUnion(t *testing.T) {
	got := New('a', 'c', 'e').Union(New('b', 'c', 'f'))
	want := New('a', 'b', 'c', 'e', 'f')
	if !got.Equal(want) {
		t.Errorf("Union = %v, want %v", got, want)
	}

	if !Digit.Union(Set{}).Equal(Digit) {
		t.Error("union with empty set should be identity")
	}
	if !(Set{}).Union(Digit).Equal(Digit) {
		t.Error("empty union set should be identity")
	}
}

func TestComplement(t *testing.T) {
	notDigit := Digit.Complement()
	if notDigit.Len() != Printable.Len()-10 {
		t.Errorf("Len() = %d, want %d", notDigit.Len(), Printable.Len()-10)
	}
	for r := rune('0'); r <= '9'; r++ {
		if notDigit.Contains(r) {
			t.Errorf("complement contains digit %q", r)
		}
	}
	if !notDigit.Contains('a') || !notDigit.Contains(' ') || !notDigit.Contains('~') {
		t.Error("complement lost printable non-digits")
	}

	// \S is everything printable except the space character itself.
	notSpace := Space.Complement()
	if !notSpace.Equal(Range('!', '~')) {
		t.Errorf("Space.Complement() = %v, want [!-~]", notSpace)
	}

	if !Printable.Complement().IsEmpty() {
		t.Error("complement of the printable range should be empty")
	}

	// Non-ASCII members fall outside the universe and are ignored.
	if !New('é').Complement().Equal(Printable) {
		t.Error("non-printable members must not shrink the complement")
	}
}

func TestRuneLen(t *testing.T) {
	s := New('a', 'é', '世')
	if got := s.MinRuneLen(); got != 1 {
		t.Errorf("MinRuneLen() = %d, want 1", got)
	}
	if got := s.MaxRuneLen(); got != 3 {
		t.Errorf("MaxRuneLen() = %d, want 3", got)
	}
	if (Set{}).MaxRuneLen() != 0 {
		t.Error("empty set should report 0")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		set  Set
		want string
	}{
		{Digit, "[0-9]"},
		{Word, "[0-9A-Za-z]"},
		{New('a', 'b'), "[ab]"},
		{New('-', ']', '^'), `[\-\]\^]`},
		{Set{}, "[]"},
	}
	for _, tt := range tests {
		if got := tt.set.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
