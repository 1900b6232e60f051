// Package sample produces random strings from compiled patterns.
//
// Generation walks the tree once. Each atom draws a repetition count from its
// range and emits that many independent instantiations. Output is bounded:
// writing stops for good at the first character that would push the result
// past the length cap, so a truncated sample is always a prefix of what an
// uncapped walk would have written up to that point.
//
// The random source is injected. Use one source per goroutine; a compiled
// tree may be shared freely.
package sample

import (
	"unicode/utf8"

	"github.com/coregx/coregen/charset"
	"github.com/coregx/coregen/internal/conv"
	"github.com/coregx/coregen/syntax"
)

// Rand is the randomness a sampler needs.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	// IntN returns a uniform value in [0, n). n is always positive.
	IntN(n int) int
}

// Generate returns one sample of root, at most maxLen bytes long.
// A negative maxLen is treated as zero.
func Generate(root *syntax.Node, maxLen int, r Rand) string {
	return string(AppendGenerate(nil, root, maxLen, r))
}

// AppendGenerate appends one sample of root to dst, writing at most maxLen
// bytes, and returns the extended buffer.
func AppendGenerate(dst []byte, root *syntax.Node, maxLen int, r Rand) []byte {
	if maxLen <= 0 || root == nil {
		return dst
	}
	w := walker{buf: dst, limit: len(dst) + maxLen, rng: r}
	w.seq(root.Sub)
	return w.buf
}

// walker holds the state of one sample.
type walker struct {
	buf   []byte
	limit int
	rng   Rand
	full  bool
}

func (w *walker) seq(nodes []*syntax.Node) {
	for _, n := range nodes {
		if w.full {
			return
		}
		if n.Silent {
			// no draws, however large its counts
			continue
		}
		for count := w.repeat(n.Rep); count > 0 && !w.full; count-- {
			w.node(n)
		}
	}
}

// repeat draws a count from rep. A fixed range costs no randomness.
func (w *walker) repeat(rep syntax.Repeat) uint32 {
	if rep.Min == rep.Max {
		return rep.Min
	}
	return rep.Min + uint32(w.rng.IntN(conv.SpanLen(rep.Min, rep.Max)))
}

func (w *walker) node(n *syntax.Node) {
	switch n.Op {
	case syntax.OpLiteral:
		w.rune(n.Rune)
	case syntax.OpCharClass, syntax.OpAnyChar:
		w.pick(n.Set)
	case syntax.OpEscape:
		if n.Set.IsEmpty() {
			// not a meta-escape: the letter stands for itself
			w.rune(n.Rune)
			return
		}
		w.pick(n.Set)
	case syntax.OpAlternate:
		w.alternate(n.Branches)
	case syntax.OpGroup:
		if n.Group.IsLookaround() {
			return
		}
		w.seq(n.Sub)
	}
}

func (w *walker) alternate(branches []*syntax.Node) {
	switch len(branches) {
	case 0:
		return
	case 1:
		w.seq(branches[0].Sub)
	default:
		w.seq(branches[w.rng.IntN(len(branches))].Sub)
	}
}

func (w *walker) pick(set charset.Set) {
	switch set.Len() {
	case 0:
		return
	case 1:
		w.rune(set.At(0))
	default:
		w.rune(set.At(w.rng.IntN(set.Len())))
	}
}

func (w *walker) rune(r rune) {
	size := utf8.RuneLen(r)
	if size < 0 {
		r, size = utf8.RuneError, utf8.RuneLen(utf8.RuneError)
	}
	if len(w.buf)+size > w.limit {
		w.full = true
		return
	}
	w.buf = utf8.AppendRune(w.buf, r)
}
