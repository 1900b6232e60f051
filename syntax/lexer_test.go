package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func mustLex(t *testing.T, pattern string) []Token {
	t.Helper()
	tokens, err := Lex(pattern, DefaultConfig())
	if err != nil {
		t.Fatalf("Lex(%q) error: %v", pattern, err)
	}
	return tokens
}

func TestLexTokenKinds(t *testing.T) {
	tests := []struct {
		pattern string
		want    []TokenKind
	}{
		{"abc", []TokenKind{TokenLiteral, TokenLiteral, TokenLiteral}},
		{`\d\W\.`, []TokenKind{TokenEscape, TokenEscape, TokenLiteral}},
		{"[a-z]{2,4}", []TokenKind{TokenCharClass, TokenQuantifier}},
		{"a*b+c?", []TokenKind{TokenLiteral, TokenQuantifier, TokenLiteral, TokenQuantifier, TokenLiteral, TokenQuantifier}},
		{".^$", []TokenKind{TokenAnyChar, TokenStartAnchor, TokenEndAnchor}},
		{"(ab)", []TokenKind{TokenGroupOpen, TokenLiteral, TokenLiteral, TokenGroupClose}},
		{"(a|b)c", []TokenKind{TokenAlternation, TokenLiteral}},
		{"(a|b){2}", []TokenKind{TokenAlternation, TokenQuantifier}},
		{"a|b|c", []TokenKind{TokenAlternation}},
		{"(?=a|b)", []TokenKind{TokenGroupOpen, TokenAlternation, TokenGroupClose}},
		{"x{y}", []TokenKind{TokenLiteral, TokenLiteral, TokenLiteral, TokenLiteral}},
		{"{3}abc", []TokenKind{TokenQuantifier, TokenLiteral, TokenLiteral, TokenLiteral}},
		{"", []TokenKind{}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := kinds(mustLex(t, tt.pattern))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lex(%q) kinds mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}

func TestLexQuantifierRanges(t *testing.T) {
	tests := []struct {
		pattern  string
		limit    uint32
		min, max uint32
	}{
		{"a{3}", 10, 3, 3},
		{"a{2,5}", 10, 2, 5},
		{"a{2,}", 10, 2, 12},
		{"a{,4}", 10, 0, 4},
		{"a{0}", 10, 0, 0},
		{"a*", 10, 0, 10},
		{"a+", 10, 1, 10},
		{"a?", 10, 0, 1},
		{"a*", 3, 0, 3},
		{"a+", 3, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.RepeatLimit = tt.limit
			tokens, err := Lex(tt.pattern, cfg)
			if err != nil {
				t.Fatalf("Lex(%q) error: %v", tt.pattern, err)
			}
			if len(tokens) != 2 || tokens[1].Kind != TokenQuantifier {
				t.Fatalf("Lex(%q) = %v, want literal + quantifier", tt.pattern, tokens)
			}
			if q := tokens[1]; q.Min != tt.min || q.Max != tt.max {
				t.Errorf("quantifier = {%d,%d}, want {%d,%d}", q.Min, q.Max, tt.min, tt.max)
			}
		})
	}
}

func TestLexEscapes(t *testing.T) {
	tests := []struct {
		pattern string
		kind    TokenKind
		r       rune
		negated bool
	}{
		{`\d`, TokenEscape, 'd', false},
		{`\w`, TokenEscape, 'w', false},
		{`\s`, TokenEscape, 's', false},
		{`\D`, TokenEscape, 'd', true},
		{`\W`, TokenEscape, 'w', true},
		{`\S`, TokenEscape, 's', true},
		{`\q`, TokenLiteral, 'q', false},
		{`\n`, TokenLiteral, 'n', false},
		{`\\`, TokenLiteral, '\\', false},
		{`\[`, TokenLiteral, '[', false},
		{`\é`, TokenLiteral, 'é', false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tokens := mustLex(t, tt.pattern)
			if len(tokens) != 1 {
				t.Fatalf("got %d tokens, want 1", len(tokens))
			}
			tok := tokens[0]
			if tok.Kind != tt.kind || tok.Rune != tt.r || tok.Negated != tt.negated {
				t.Errorf("got %v (negated=%v), want %v %q (negated=%v)",
					tok, tok.Negated, tt.kind, tt.r, tt.negated)
			}
		})
	}
}

func TestLexCharClass(t *testing.T) {
	tests := []struct {
		pattern string
		members string
		negated bool
	}{
		{"[a-c]", "abc", false},
		{"[^0-9]", "0123456789", true},
		{"[ca]", "ac", false},
		{"[]a]", "]a", false},
		{"[^]a]", "]a", true},
		{"[a-]", "-a", false},
		{"[-a]", "-a", false},
		{`[\]x]`, "]x", false},
		{`[\d_]`, "0123456789_", false},
		{"[a-cx-z]", "abcxyz", false},
		{"[aa-c]", "abc", false},
		{"[[]", "[", false},
		{"[é]", "é", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tokens := mustLex(t, tt.pattern)
			if len(tokens) != 1 || tokens[0].Kind != TokenCharClass {
				t.Fatalf("Lex(%q) = %v, want one class", tt.pattern, tokens)
			}
			tok := tokens[0]
			if string(tok.Members) != tt.members {
				t.Errorf("members = %q, want %q", string(tok.Members), tt.members)
			}
			if tok.Negated != tt.negated {
				t.Errorf("negated = %v, want %v", tok.Negated, tt.negated)
			}
		})
	}
}

func TestLexAlternationBranches(t *testing.T) {
	tests := []struct {
		pattern string
		want    []Branch
	}{
		{"ab|c(d|e)|", []Branch{{"ab", 0}, {"c(d|e)", 3}, {"", 10}}},
		{"x(a|bc)", []Branch{{"a", 2}, {"bc", 4}}},
		{`[|]|\|`, []Branch{{"[|]", 0}, {`\|`, 4}}},
		{"(?:a|b)", []Branch{{"a", 3}, {"b", 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			var alt *Token
			for _, tok := range mustLex(t, tt.pattern) {
				if tok.Kind == TokenAlternation {
					alt = &tok
					break
				}
			}
			if alt == nil {
				t.Fatalf("Lex(%q) produced no alternation", tt.pattern)
			}
			if diff := cmp.Diff(tt.want, alt.Branches); diff != "" {
				t.Errorf("branches mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexNamedGroup(t *testing.T) {
	tests := []struct {
		pattern string
		kind    TokenKind
		name    string
	}{
		{"(?P<year>a|b)", TokenAlternation, "year"},
		{"(?<day>a|b)", TokenAlternation, "day"},
		{"(?P<id>ab)", TokenGroupOpen, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tok := mustLex(t, tt.pattern)[0]
			if tok.Kind != tt.kind || tok.Group != GroupNamed || tok.Name != tt.name {
				t.Errorf("got %v group=%d name=%q, want %v named %q",
					tok.Kind, tok.Group, tok.Name, tt.kind, tt.name)
			}
		})
	}
}

func TestLexGroupKinds(t *testing.T) {
	tests := []struct {
		pattern string
		want    GroupKind
	}{
		{"(a)", GroupCapture},
		{"(?:a)", GroupNonCapture},
		{"(?=a)", GroupLookahead},
		{"(?!a)", GroupNegLookahead},
		{"(?<=a)", GroupLookbehind},
		{"(?<!a)", GroupNegLookbehind},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tok := mustLex(t, tt.pattern)[0]
			if tok.Kind != TokenGroupOpen || tok.Group != tt.want {
				t.Errorf("got %v group %d, want GroupOpen group %d", tok.Kind, tok.Group, tt.want)
			}
		})
	}
}

func TestLexPositions(t *testing.T) {
	tokens := mustLex(t, `a\d[xy]{2}.`)
	want := []int{0, 1, 3, 7, 10}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, tok := range tokens {
		if tok.Pos != want[i] {
			t.Errorf("token %d (%v) at %d, want %d", i, tok, tok.Pos, want[i])
		}
	}
}

func TestTokenKindString(t *testing.T) {
	if got := TokenAlternation.String(); got != "Alternation" {
		t.Errorf("String() = %q, want %q", got, "Alternation")
	}
	if got := TokenKind(200).String(); got != "TokenKind(200)" {
		t.Errorf("String() = %q, want %q", got, "TokenKind(200)")
	}
}
