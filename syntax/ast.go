package syntax

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/coregx/coregen/charset"
)

// Op identifies the kind of an AST node.
type Op uint8

const (
	OpLiteral   Op = iota + 1 // a single character
	OpCharClass               // [...] or [^...]
	OpEscape                  // \d \w \s and complements
	OpAnyChar                 // .
	OpBeginText               // ^
	OpEndText                 // $
	OpAlternate               // a|b
	OpGroup                   // (...) and the root of every compiled pattern
)

// String returns the op name.
func (op Op) String() string {
	switch op {
	case OpLiteral:
		return "Literal"
	case OpCharClass:
		return "CharClass"
	case OpEscape:
		return "Escape"
	case OpAnyChar:
		return "AnyChar"
	case OpBeginText:
		return "BeginText"
	case OpEndText:
		return "EndText"
	case OpAlternate:
		return "Alternate"
	case OpGroup:
		return "Group"
	default:
		return fmt.Sprintf("Op(%d)", op)
	}
}

// Repeat is an inclusive repetition range. Min <= Max always holds.
type Repeat struct {
	Min, Max uint32
}

// One is the repetition of an atom without a quantifier.
var One = Repeat{Min: 1, Max: 1}

// String renders the range as a quantifier; One renders as "".
func (r Repeat) String() string {
	switch {
	case r == One:
		return ""
	case r.Min == r.Max:
		return "{" + strconv.FormatUint(uint64(r.Min), 10) + "}"
	default:
		return "{" + strconv.FormatUint(uint64(r.Min), 10) + "," + strconv.FormatUint(uint64(r.Max), 10) + "}"
	}
}

// Node is one atom of a compiled pattern.
//
// Nodes are never modified after Compile returns, so a tree can be shared by
// any number of goroutines generating from it.
type Node struct {
	Op  Op
	Rep Repeat

	// Rune is the character of OpLiteral and the letter of OpEscape.
	Rune rune

	// Negated marks [^...] classes and \D \W \S.
	Negated bool

	// Class holds the members written in an OpCharClass, before negation.
	Class charset.Set

	// Set is what one instantiation draws from, for OpCharClass, OpEscape and
	// OpAnyChar. Negation is already applied.
	Set charset.Set

	// Group and Name describe OpGroup nodes and the group an OpAlternate was
	// written in.
	Group GroupKind
	Name  string

	// Sub is the sequence inside an OpGroup.
	Sub []*Node

	// Branches are the compiled alternatives of an OpAlternate. Each is an
	// OpGroup root with repetition One.
	Branches []*Node

	// Silent marks a node that can never write output: an anchor, a
	// lookaround, anything repeated {0}, or a group or alternation holding
	// only silent nodes. The parser sets it on every node of a sequence.
	Silent bool
}

// String renders the node back into pattern syntax.
// Compiling the result yields a structurally equal node.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

// Format renders a compiled root as the pattern it stands for.
func Format(root *Node) string {
	var b strings.Builder
	writeSeq(&b, root.Sub)
	return b.String()
}

func writeSeq(b *strings.Builder, nodes []*Node) {
	for _, n := range nodes {
		n.write(b)
	}
}

func (n *Node) write(b *strings.Builder) {
	switch n.Op {
	case OpLiteral:
		if strings.ContainsRune(metaChars, n.Rune) {
			b.WriteByte('\\')
		}
		b.WriteRune(n.Rune)
	case OpCharClass:
		s := n.Class.String()
		b.WriteByte('[')
		if n.Negated {
			b.WriteByte('^')
		}
		b.WriteString(s[1:])
	case OpEscape:
		b.WriteByte('\\')
		if n.Negated {
			b.WriteRune(n.Rune - 'a' + 'A')
		} else {
			b.WriteRune(n.Rune)
		}
	case OpAnyChar:
		b.WriteByte('.')
	case OpBeginText:
		b.WriteByte('^')
	case OpEndText:
		b.WriteByte('$')
	case OpGroup:
		b.WriteString(n.Group.prefix(n.Name))
		writeSeq(b, n.Sub)
		b.WriteByte(')')
	case OpAlternate:
		b.WriteString(n.Group.prefix(n.Name))
		for i, br := range n.Branches {
			if i > 0 {
				b.WriteByte('|')
			}
			writeSeq(b, br.Sub)
		}
		b.WriteByte(')')
	}
	b.WriteString(n.Rep.String())
}

// metaChars are the characters a literal must escape.
const metaChars = `\.+*?()|[]{}^$`

// MinLen returns the shortest output, in bytes, the node can produce when
// generation is not truncated.
func (n *Node) MinLen() int {
	return satMul(n.unitMinLen(), int(n.Rep.Min))
}

// MaxLen returns the longest output, in bytes, the node can produce when
// generation is not truncated. It saturates at math.MaxInt.
func (n *Node) MaxLen() int {
	return satMul(n.unitMaxLen(), int(n.Rep.Max))
}

// SeqMinLen returns the shortest output of a compiled root or branch.
func SeqMinLen(root *Node) int {
	total := 0
	for _, sub := range root.Sub {
		total = satAdd(total, sub.MinLen())
	}
	return total
}

// SeqMaxLen returns the longest output of a compiled root or branch.
func SeqMaxLen(root *Node) int {
	total := 0
	for _, sub := range root.Sub {
		total = satAdd(total, sub.MaxLen())
	}
	return total
}

func (n *Node) unitMinLen() int {
	switch n.Op {
	case OpLiteral:
		return utf8.RuneLen(n.Rune)
	case OpCharClass, OpAnyChar:
		return n.Set.MinRuneLen()
	case OpEscape:
		if n.Set.IsEmpty() {
			return utf8.RuneLen(n.Rune)
		}
		return n.Set.MinRuneLen()
	case OpGroup:
		if n.Group.IsLookaround() {
			return 0
		}
		return SeqMinLen(n)
	case OpAlternate:
		least := math.MaxInt
		for _, br := range n.Branches {
			least = min(least, SeqMinLen(br))
		}
		if least == math.MaxInt {
			return 0
		}
		return least
	default:
		return 0
	}
}

func (n *Node) unitMaxLen() int {
	switch n.Op {
	case OpLiteral:
		return utf8.RuneLen(n.Rune)
	case OpCharClass, OpAnyChar:
		return n.Set.MaxRuneLen()
	case OpEscape:
		if n.Set.IsEmpty() {
			return utf8.RuneLen(n.Rune)
		}
		return n.Set.MaxRuneLen()
	case OpGroup:
		if n.Group.IsLookaround() {
			return 0
		}
		return SeqMaxLen(n)
	case OpAlternate:
		most := 0
		for _, br := range n.Branches {
			most = max(most, SeqMaxLen(br))
		}
		return most
	default:
		return 0
	}
}

func satAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func satMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}
