package syntax

import (
	"strings"
	"unicode/utf8"

	"github.com/coregx/coregen/charset"
	"github.com/coregx/coregen/internal/conv"
)

// Lex splits a pattern into tokens.
//
// A pattern with a top-level '|' lexes to a single TokenAlternation holding
// the unparsed branches. A group whose body has a top-level '|' lexes the same
// way, so Parse sees every alternation as one token. Groups nested deeper
// than cfg.MaxNestingDepth fail with NestingTooDeep.
func Lex(pattern string, cfg Config) ([]Token, error) {
	c := &compiler{cfg: cfg.withDefaults(), pattern: pattern}
	return c.lex(pattern, 0, 0)
}

// lexer scans one pattern or one alternation branch.
type lexer struct {
	c      *compiler
	src    string
	base   int // offset of src in the root pattern
	pos    int
	nest   int // nesting of the branch being lexed
	depth  int // groups opened but not yet closed
	tokens []Token
}

func (c *compiler) lex(src string, base, nest int) ([]Token, error) {
	if branches := splitAlternation(src, base); len(branches) > 1 {
		return []Token{{Kind: TokenAlternation, Pos: base, Branches: branches}}, nil
	}

	l := &lexer{c: c, src: src, base: base, nest: nest}
	for l.pos < len(l.src) {
		if err := l.next(); err != nil {
			return nil, err
		}
	}
	return l.tokens, nil
}

func (l *lexer) emit(tok Token, start int) {
	tok.Pos = l.base + start
	l.tokens = append(l.tokens, tok)
}

func (l *lexer) errAt(kind ErrorKind, offset int) error {
	return l.c.errAt(kind, l.base+offset)
}

func (l *lexer) next() error {
	start := l.pos
	switch l.src[l.pos] {
	case '\\':
		return l.lexEscape()
	case '[':
		return l.lexClass()
	case '{':
		return l.lexBraces()
	case '(':
		return l.lexGroup()
	case ')':
		if l.depth == 0 {
			return l.errAt(UnmatchedGroupClose, start)
		}
		l.depth--
		l.emit(Token{Kind: TokenGroupClose}, start)
	case '*':
		l.emit(Token{Kind: TokenQuantifier, Min: 0, Max: l.c.cfg.RepeatLimit}, start)
	case '+':
		l.emit(Token{Kind: TokenQuantifier, Min: 1, Max: l.c.cfg.RepeatLimit}, start)
	case '?':
		l.emit(Token{Kind: TokenQuantifier, Min: 0, Max: 1}, start)
	case '.':
		l.emit(Token{Kind: TokenAnyChar}, start)
	case '^':
		l.emit(Token{Kind: TokenStartAnchor}, start)
	case '$':
		l.emit(Token{Kind: TokenEndAnchor}, start)
	default:
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		l.emit(Token{Kind: TokenLiteral, Rune: r}, start)
		l.pos += size
		return nil
	}
	l.pos++
	return nil
}

// lexEscape handles '\x'. Only d, w, s and their upper-case complements are
// meta-escapes; anything else is the escaped character itself.
func (l *lexer) lexEscape() error {
	start := l.pos
	if l.pos+1 >= len(l.src) {
		return l.errAt(TrailingBackslash, start)
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos+1:])
	l.pos += 1 + size

	switch r {
	case 'd', 'w', 's':
		l.emit(Token{Kind: TokenEscape, Rune: r}, start)
	case 'D', 'W', 'S':
		l.emit(Token{Kind: TokenEscape, Rune: r - 'A' + 'a', Negated: true}, start)
	default:
		l.emit(Token{Kind: TokenLiteral, Rune: r}, start)
	}
	return nil
}

// lexClass scans [...] to its closing bracket in one pass.
// A ']' right after '[' or '[^' is a member, as is a '-' at either end.
func (l *lexer) lexClass() error {
	start := l.pos
	i := l.pos + 1
	negated := false
	if i < len(l.src) && l.src[i] == '^' {
		negated = true
		i++
	}

	var members []rune
	first := true
	for {
		if i >= len(l.src) {
			return l.errAt(UnterminatedClass, start)
		}
		if l.src[i] == ']' && !first {
			i++
			break
		}
		first = false

		atomStart := i
		lo, set, n, ok := classAtom(l.src, i)
		if !ok {
			return l.errAt(UnterminatedClass, start)
		}
		i += n

		if !set.IsEmpty() {
			members = append(members, set.Runes()...)
		} else if i+1 < len(l.src) && l.src[i] == '-' && l.src[i+1] != ']' {
			hi, hiSet, m, ok := classAtom(l.src, i+1)
			if !ok {
				return l.errAt(UnterminatedClass, start)
			}
			if !hiSet.IsEmpty() || hi < lo || (lo <= surrogateMax && hi >= surrogateMin) {
				return l.errAt(InvalidRange, atomStart)
			}
			if int(hi-lo)+1 > l.c.cfg.MaxClassSize {
				return l.errAt(PayloadOverflow, start)
			}
			for r := lo; r <= hi; r++ {
				members = append(members, r)
			}
			i += 1 + m
		} else {
			members = append(members, lo)
		}

		if len(members) > l.c.cfg.MaxClassSize {
			// duplicates may bring it back under the limit
			members = charset.New(members...).Runes()
			if len(members) > l.c.cfg.MaxClassSize {
				return l.errAt(PayloadOverflow, start)
			}
		}
	}

	class := charset.New(members...)
	if negated && class.Complement().IsEmpty() {
		return l.errAt(EmptyClass, start)
	}

	l.emit(Token{Kind: TokenCharClass, Members: class.Runes(), Negated: negated}, start)
	l.pos = i
	return nil
}

// Surrogate halves are not characters, so a class range may not include them.
const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// classAtom reads one class member at src[i]: a character, an escaped
// character, or a meta-escape that stands for a whole set.
// It returns the rune or the set, the bytes consumed, and false when the
// input ends inside an escape.
func classAtom(src string, i int) (rune, charset.Set, int, bool) {
	if src[i] != '\\' {
		r, size := utf8.DecodeRuneInString(src[i:])
		return r, charset.Set{}, size, true
	}
	if i+1 >= len(src) {
		return 0, charset.Set{}, 0, false
	}
	r, size := utf8.DecodeRuneInString(src[i+1:])
	switch r {
	case 'd', 'w', 's':
		return 0, escapeSet(r, false), 1 + size, true
	case 'D', 'W', 'S':
		return 0, escapeSet(r-'A'+'a', true), 1 + size, true
	}
	return r, charset.Set{}, 1 + size, true
}

// lexBraces handles '{'. A body of the form m, m,n, m, or ,n is a quantifier;
// any other body leaves the brace as a literal character.
func (l *lexer) lexBraces() error {
	start := l.pos
	end := strings.IndexByte(l.src[l.pos:], '}')
	if end < 0 {
		return l.errAt(UnterminatedQuantifier, start)
	}
	body := l.src[l.pos+1 : l.pos+end]

	lo, hi, ok, err := l.parseRepeat(body, start)
	if err != nil {
		return err
	}
	if !ok {
		l.emit(Token{Kind: TokenLiteral, Rune: '{'}, start)
		l.pos++
		return nil
	}

	l.emit(Token{Kind: TokenQuantifier, Min: lo, Max: hi}, start)
	l.pos += end + 1
	return nil
}

// parseRepeat interprets a brace body. ok is false when the body is not a
// repetition at all; err is set when it is one but the counts are invalid.
func (l *lexer) parseRepeat(body string, start int) (lo, hi uint32, ok bool, err error) {
	limit := l.c.cfg.MaxRepeat

	minText, maxText, hasComma := strings.Cut(body, ",")
	if !isDigits(minText) && (minText != "" || !hasComma) {
		return 0, 0, false, nil
	}
	if hasComma && !isDigits(maxText) && maxText != "" {
		return 0, 0, false, nil
	}
	if minText == "" && maxText == "" {
		return 0, 0, false, nil
	}

	if minText != "" {
		if lo, ok = conv.ParseCount(minText, limit); !ok {
			return 0, 0, false, l.errAt(InvalidQuantifier, start)
		}
	}

	switch {
	case !hasComma:
		hi = lo
	case maxText == "":
		hi = lo + l.c.cfg.RepeatLimit
		if hi < lo {
			hi = ^uint32(0)
		}
	default:
		if hi, ok = conv.ParseCount(maxText, limit); !ok {
			return 0, 0, false, l.errAt(InvalidQuantifier, start)
		}
	}

	if lo > hi {
		return 0, 0, false, l.errAt(InvalidQuantifier, start)
	}
	return lo, hi, true, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// lexGroup handles '('. A group whose body holds a top-level '|' becomes a
// single alternation token; other groups open a nested token run that the
// matching ')' closes.
// The nesting limit is checked before the body is scanned.
func (l *lexer) lexGroup() error {
	start := l.pos
	if l.nest+l.depth >= l.c.cfg.MaxNestingDepth {
		return l.errAt(NestingTooDeep, start)
	}
	kind, name, header, err := l.groupHeader()
	if err != nil {
		return err
	}

	closeIdx := matchParen(l.src, start)
	if closeIdx < 0 {
		return l.errAt(UnterminatedGroup, start)
	}

	bodyStart := start + header
	branches := splitAlternation(l.src[bodyStart:closeIdx], l.base+bodyStart)
	if len(branches) < 2 {
		l.emit(Token{Kind: TokenGroupOpen, Group: kind, Name: name}, start)
		l.depth++
		l.pos = bodyStart
		return nil
	}

	alt := Token{Kind: TokenAlternation, Branches: branches}
	if kind.IsLookaround() {
		// keep the assertion so generation can skip it as a whole
		l.emit(Token{Kind: TokenGroupOpen, Group: kind}, start)
		l.emit(alt, bodyStart)
		l.emit(Token{Kind: TokenGroupClose}, closeIdx)
	} else {
		alt.Group, alt.Name = kind, name
		l.emit(alt, start)
	}
	l.pos = closeIdx + 1
	return nil
}

// groupHeader decodes the group opener at l.pos and returns its length.
func (l *lexer) groupHeader() (GroupKind, string, int, error) {
	rest := l.src[l.pos:]
	switch {
	case !strings.HasPrefix(rest, "(?"):
		return GroupCapture, "", 1, nil
	case strings.HasPrefix(rest, "(?:"):
		return GroupNonCapture, "", 3, nil
	case strings.HasPrefix(rest, "(?="):
		return GroupLookahead, "", 3, nil
	case strings.HasPrefix(rest, "(?!"):
		return GroupNegLookahead, "", 3, nil
	case strings.HasPrefix(rest, "(?<="):
		return GroupLookbehind, "", 4, nil
	case strings.HasPrefix(rest, "(?<!"):
		return GroupNegLookbehind, "", 4, nil
	}

	var open int
	switch {
	case strings.HasPrefix(rest, "(?P<"):
		open = 4
	case strings.HasPrefix(rest, "(?<"):
		open = 3
	default:
		return 0, "", 0, l.errAt(InvalidGroup, l.pos)
	}

	end := strings.IndexByte(rest[open:], '>')
	if end <= 0 || !isGroupName(rest[open:open+end]) {
		return 0, "", 0, l.errAt(InvalidGroup, l.pos)
	}
	return GroupNamed, rest[open : open+end], open + end + 1, nil
}

func isGroupName(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '_' && (c < '0' || c > '9') && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return s != ""
}

// splitAlternation cuts src at every '|' outside groups, classes and escapes.
// It returns a single branch when there is nothing to cut.
func splitAlternation(src string, base int) []Branch {
	var branches []Branch
	depth, last := 0, 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '[':
			end := scanClassEnd(src, i)
			if end < 0 {
				// the lexer reports the unterminated class
				return append(branches, Branch{Source: src[last:], Pos: base + last})
			}
			i = end - 1
		case '(':
			depth++
		case ')':
			depth--
		case '|':
			if depth == 0 {
				branches = append(branches, Branch{Source: src[last:i], Pos: base + last})
				last = i + 1
			}
		}
	}
	return append(branches, Branch{Source: src[last:], Pos: base + last})
}

// matchParen returns the index of the ')' closing the '(' at open, or -1.
func matchParen(src string, open int) int {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '[':
			end := scanClassEnd(src, i)
			if end < 0 {
				return -1
			}
			i = end - 1
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// scanClassEnd returns the index just past the ']' closing the class at open,
// or -1 when the class is unterminated. It follows the same member rules as
// lexClass.
func scanClassEnd(src string, open int) int {
	i := open + 1
	if i < len(src) && src[i] == '^' {
		i++
	}
	if i < len(src) && src[i] == ']' {
		i++
	}
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
		case ']':
			return i + 1
		default:
			i++
		}
	}
	return -1
}
