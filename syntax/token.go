// Package syntax compiles generation patterns into an abstract syntax tree.
//
// Compilation has two stages:
//   - Lex scans the pattern once, left to right, into a flat token list.
//   - Parse pairs every atom with the quantifier that follows it and builds
//     the tree. Alternation branches are compiled here, recursively and
//     exactly once, so generating many samples never re-parses a branch.
//
// The accepted grammar:
//
//	abc          literals
//	\d \w \s     digit, word and whitespace (\D \W \S are their complements)
//	\x           any other escaped character is the literal x
//	[a-z] [^0-9] character classes, ranges and negation
//	{m} {m,n}    bounded repetition; {m,} and {,n} are accepted too
//	* + ?        shorthand repetition; * and + are capped by Config.RepeatLimit
//	.            any printable ASCII character
//	^ $          anchors, which generate nothing
//	(...)        groups, including (?:...), (?P<name>...) and lookarounds
//	a|b          alternation, bare or inside a group, nested arbitrarily
//
// A quantifier with no atom before it, as in "{3}abc", is dropped.
package syntax

import "fmt"

// TokenKind identifies a lexical unit.
type TokenKind uint8

const (
	TokenLiteral     TokenKind = iota // a single character
	TokenCharClass                    // [...] or [^...]
	TokenQuantifier                   // {m,n}, *, + or ?
	TokenEscape                       // \d \w \s \D \W \S
	TokenAnyChar                      // .
	TokenStartAnchor                  // ^
	TokenEndAnchor                    // $
	TokenAlternation                  // a|b, with the branches unparsed
	TokenGroupOpen                    // (
	TokenGroupClose                   // )
)

// String returns the token kind name.
func (k TokenKind) String() string {
	switch k {
	case TokenLiteral:
		return "Literal"
	case TokenCharClass:
		return "CharClass"
	case TokenQuantifier:
		return "Quantifier"
	case TokenEscape:
		return "Escape"
	case TokenAnyChar:
		return "AnyChar"
	case TokenStartAnchor:
		return "StartAnchor"
	case TokenEndAnchor:
		return "EndAnchor"
	case TokenAlternation:
		return "Alternation"
	case TokenGroupOpen:
		return "GroupOpen"
	case TokenGroupClose:
		return "GroupClose"
	default:
		return fmt.Sprintf("TokenKind(%d)", k)
	}
}

// GroupKind distinguishes the group flavours.
type GroupKind uint8

const (
	GroupCapture      GroupKind = iota // (...)
	GroupNonCapture                    // (?:...)
	GroupNamed                         // (?P<name>...) or (?<name>...)
	GroupLookahead                     // (?=...)
	GroupNegLookahead                  // (?!...)
	GroupLookbehind                    // (?<=...)
	GroupNegLookbehind                 // (?<!...)
)

// IsLookaround reports whether the group is a zero-width assertion.
// Lookarounds are parsed but contribute no output.
func (g GroupKind) IsLookaround() bool {
	return g >= GroupLookahead
}

// prefix returns the source text opening a group of this kind.
func (g GroupKind) prefix(name string) string {
	switch g {
	case GroupNonCapture:
		return "(?:"
	case GroupNamed:
		return "(?P<" + name + ">"
	case GroupLookahead:
		return "(?="
	case GroupNegLookahead:
		return "(?!"
	case GroupLookbehind:
		return "(?<="
	case GroupNegLookbehind:
		return "(?<!"
	default:
		return "("
	}
}

// Branch is one unparsed alternative of an alternation.
type Branch struct {
	Source string // branch text
	Pos    int    // offset of Source in the root pattern
}

// Token is one lexical unit.
// Which payload fields are set depends on Kind.
type Token struct {
	Kind TokenKind
	Pos  int // byte offset in the root pattern

	// Rune is the character for TokenLiteral and the escape letter
	// (always lower case) for TokenEscape.
	Rune rune

	// Negated marks [^...] classes and \D \W \S escapes.
	Negated bool

	// Members are the characters listed in a class, before negation.
	Members []rune

	// Min and Max are the inclusive repetition range of TokenQuantifier.
	Min, Max uint32

	// Branches are the alternatives of TokenAlternation.
	Branches []Branch

	// Group and Name describe TokenGroupOpen, and the group an alternation
	// was written in.
	Group GroupKind
	Name  string
}

// String renders the token for debugging.
func (t Token) String() string {
	switch t.Kind {
	case TokenLiteral:
		return fmt.Sprintf("Literal(%q)", t.Rune)
	case TokenEscape:
		if t.Negated {
			return fmt.Sprintf("Escape(!%c)", t.Rune)
		}
		return fmt.Sprintf("Escape(%c)", t.Rune)
	case TokenCharClass:
		if t.Negated {
			return fmt.Sprintf("CharClass(^%q)", string(t.Members))
		}
		return fmt.Sprintf("CharClass(%q)", string(t.Members))
	case TokenQuantifier:
		return fmt.Sprintf("Quantifier{%d,%d}", t.Min, t.Max)
	case TokenAlternation:
		return fmt.Sprintf("Alternation(%d)", len(t.Branches))
	default:
		return t.Kind.String()
	}
}
