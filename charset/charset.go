// Package charset provides immutable sets of characters for pattern generation.
//
// A Set is a sorted, duplicate-free list of runes. Sorting keeps sampling
// deterministic for a given random stream: the i-th draw always maps to the
// same character regardless of how the set was built.
//
// Negated classes and complemented meta-escapes are resolved against the
// printable ASCII range [0x20, 0x7E]. The complement is computed once, when a
// pattern is compiled, so sampling never needs a rejection loop.
package charset

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/coregx/coregen/internal/sparse"
)

const (
	// PrintableMin is the lowest character of the printable range.
	PrintableMin = 0x20

	// PrintableMax is the highest character of the printable range.
	PrintableMax = 0x7E
)

// Set is an immutable, sorted set of runes.
// The zero value is the empty set.
type Set struct {
	runes []rune
}

// Predefined sets used by meta-escapes and the wildcard.
var (
	// Digit is \d: 0-9.
	Digit = Range('0', '9')

	// Word is \w: the ASCII letters and digits. Unlike regexp, '_' is not
	// a member, so \W can produce it.
	Word = Range('0', '9').Union(Range('A', 'Z')).Union(Range('a', 'z'))

	// Space is \s: space, tab, newline and carriage return.
	Space = New(' ', '\t', '\n', '\r')

	// Printable is the universe for '.', negated classes and complements.
	Printable = Range(PrintableMin, PrintableMax)
)

// New returns a set holding the given runes.
func New(runes ...rune) Set {
	if len(runes) == 0 {
		return Set{}
	}
	rs := slices.Clone(runes)
	slices.Sort(rs)
	return Set{runes: slices.Compact(rs)}
}

// Range returns the set of runes in [lo, hi]. It is empty when lo > hi.
func Range(lo, hi rune) Set {
	if lo > hi {
		return Set{}
	}
	rs := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		rs = append(rs, r)
	}
	return Set{runes: rs}
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s.runes)
}

// IsEmpty reports whether the set has no members.
func (s Set) IsEmpty() bool {
	return len(s.runes) == 0
}

// At returns the i-th smallest member. It panics if i is out of range.
func (s Set) At(i int) rune {
	return s.runes[i]
}

// Contains reports whether r is a member.
func (s Set) Contains(r rune) bool {
	_, ok := slices.BinarySearch(s.runes, r)
	return ok
}

// Runes returns a copy of the members in ascending order.
func (s Set) Runes() []rune {
	return slices.Clone(s.runes)
}

// Equal reports whether both sets hold the same members.
func (s Set) Equal(o Set) bool {
	return slices.Equal(s.runes, o.runes)
}

// Union returns the set of runes in s or o.
func (s Set) Union(o Set) Set {
	if s.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return s
	}
	out := make([]rune, 0, len(s.runes)+len(o.runes))
	i, j := 0, 0
	for i < len(s.runes) && j < len(o.runes) {
		switch a, b := s.runes[i], o.runes[j]; {
		case a < b:
			out = append(out, a)
			i++
		case a > b:
			out = append(out, b)
			j++
		default:
			out = append(out, a)
			i++
			j++
		}
	}
	out = append(out, s.runes[i:]...)
	out = append(out, o.runes[j:]...)
	return Set{runes: out}
}

// Complement returns the printable characters that are not in s.
// Members outside the printable range do not affect the result.
func (s Set) Complement() Set {
	universe := sparse.New(PrintableMax + 1)
	universe.InsertRange(PrintableMin, PrintableMax)
	for _, r := range s.runes {
		universe.Remove(r)
	}
	return New(universe.Values()...)
}

// MinRuneLen returns the shortest UTF-8 encoding among the members, or 0 when empty.
func (s Set) MinRuneLen() int {
	if s.IsEmpty() {
		return 0
	}
	// Encoded length is monotonic in the code point.
	return runeLen(s.runes[0])
}

// MaxRuneLen returns the longest UTF-8 encoding among the members, or 0 when empty.
func (s Set) MaxRuneLen() int {
	if s.IsEmpty() {
		return 0
	}
	return runeLen(s.runes[len(s.runes)-1])
}

// String renders the set in class notation, collapsing runs into ranges.
//
// Example:
//
//	charset.Word.String() // "[0-9A-Za-z]"
func (s Set) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < len(s.runes); {
		j := i
		for j+1 < len(s.runes) && s.runes[j+1] == s.runes[j]+1 {
			j++
		}
		writeClassRune(&b, s.runes[i])
		switch {
		case j-i >= 2:
			b.WriteByte('-')
			writeClassRune(&b, s.runes[j])
		case j-i == 1:
			writeClassRune(&b, s.runes[j])
		}
		i = j + 1
	}
	b.WriteByte(']')
	return b.String()
}

func writeClassRune(b *strings.Builder, r rune) {
	switch r {
	case '\\', ']', '[', '-', '^':
		b.WriteByte('\\')
		b.WriteRune(r)
	default:
		b.WriteRune(r)
	}
}

func runeLen(r rune) int {
	if n := utf8.RuneLen(r); n > 0 {
		return n
	}
	return utf8.RuneLen(utf8.RuneError)
}
