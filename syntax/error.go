package syntax

import "fmt"

// ErrorKind classifies compilation errors.
type ErrorKind uint8

const (
	// UnterminatedClass indicates a '[' without a closing ']'.
	UnterminatedClass ErrorKind = iota + 1

	// UnterminatedQuantifier indicates a '{' without a closing '}'.
	UnterminatedQuantifier

	// UnterminatedGroup indicates a '(' without a closing ')'.
	UnterminatedGroup

	// PayloadOverflow indicates a character class with more members than
	// Config.MaxClassSize allows.
	PayloadOverflow

	// TrailingBackslash indicates a pattern ending in an unfinished escape.
	TrailingBackslash

	// UnmatchedGroupClose indicates a ')' with no open group.
	UnmatchedGroupClose

	// InvalidQuantifier indicates {m,n} with m > n or a count above
	// Config.MaxRepeat.
	InvalidQuantifier

	// InvalidRange indicates a class range whose start is above its end, or
	// one that includes the surrogate code points U+D800 to U+DFFF.
	InvalidRange

	// EmptyClass indicates a class that leaves nothing to generate, such as
	// a negated class excluding every printable character.
	EmptyClass

	// InvalidGroup indicates an unknown "(?" group flag or a malformed name.
	InvalidGroup

	// NestingTooDeep indicates groups or alternations nested beyond
	// Config.MaxNestingDepth.
	NestingTooDeep
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case UnterminatedClass:
		return "UnterminatedClass"
	case UnterminatedQuantifier:
		return "UnterminatedQuantifier"
	case UnterminatedGroup:
		return "UnterminatedGroup"
	case PayloadOverflow:
		return "PayloadOverflow"
	case TrailingBackslash:
		return "TrailingBackslash"
	case UnmatchedGroupClose:
		return "UnmatchedGroupClose"
	case InvalidQuantifier:
		return "InvalidQuantifier"
	case InvalidRange:
		return "InvalidRange"
	case EmptyClass:
		return "EmptyClass"
	case InvalidGroup:
		return "InvalidGroup"
	case NestingTooDeep:
		return "NestingTooDeep"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// IsParseError reports whether the kind is a resource limit rather than a
// malformed pattern. Nesting depth is the only such limit; the lexer checks
// it for groups and the parser for alternation branches.
func (k ErrorKind) IsParseError() bool {
	return k == NestingTooDeep
}

// IsLexError reports whether the kind describes a malformed pattern.
func (k ErrorKind) IsLexError() bool {
	return k != 0 && !k.IsParseError()
}

// message is the short description used by Error.
func (k ErrorKind) message() string {
	switch k {
	case UnterminatedClass:
		return "missing closing ]"
	case UnterminatedQuantifier:
		return "missing closing }"
	case UnterminatedGroup:
		return "missing closing )"
	case PayloadOverflow:
		return "character class too large"
	case TrailingBackslash:
		return "trailing backslash at end of expression"
	case UnmatchedGroupClose:
		return "unexpected )"
	case InvalidQuantifier:
		return "invalid repeat count"
	case InvalidRange:
		return "invalid character class range"
	case EmptyClass:
		return "character class matches nothing printable"
	case InvalidGroup:
		return "invalid or unsupported group syntax"
	case NestingTooDeep:
		return "expression nests too deeply"
	default:
		return "unknown error"
	}
}

// Error describes a failure to compile a pattern.
//
// Pos is the byte offset in Pattern where the offending construct starts.
// Errors never leave a partially built tree behind: compilation returns either
// a complete root node or an *Error.
type Error struct {
	Kind    ErrorKind
	Pos     int
	Pattern string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("error compiling pattern %q at offset %d: %s", e.Pattern, e.Pos, e.Kind.message())
	}
	return fmt.Sprintf("error compiling pattern at offset %d: %s", e.Pos, e.Kind.message())
}

// Is implements error comparison for errors.Is.
// Two errors are equal when their kinds match; position and pattern are ignored.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors for errors.Is checks, one per kind.
var (
	ErrUnterminatedClass      = &Error{Kind: UnterminatedClass}
	ErrUnterminatedQuantifier = &Error{Kind: UnterminatedQuantifier}
	ErrUnterminatedGroup      = &Error{Kind: UnterminatedGroup}
	ErrPayloadOverflow        = &Error{Kind: PayloadOverflow}
	ErrTrailingBackslash      = &Error{Kind: TrailingBackslash}
	ErrUnmatchedGroupClose    = &Error{Kind: UnmatchedGroupClose}
	ErrInvalidQuantifier      = &Error{Kind: InvalidQuantifier}
	ErrInvalidRange           = &Error{Kind: InvalidRange}
	ErrEmptyClass             = &Error{Kind: EmptyClass}
	ErrInvalidGroup           = &Error{Kind: InvalidGroup}
	ErrNestingTooDeep         = &Error{Kind: NestingTooDeep}
)
