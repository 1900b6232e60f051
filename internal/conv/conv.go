// Package conv provides bounds-checked integer helpers for the pattern
// compiler and the sampler.
//
// Repetition counts are stored as uint32. These helpers parse and narrow
// values with explicit range checks instead of silently wrapping.
package conv

import "math"

// ParseCount parses a non-empty run of ASCII digits as a repetition count.
// It reports false for empty input, any non-digit byte, or a value above limit.
func ParseCount(s string, limit uint32) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	var n uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + uint64(c-'0')
		if n > uint64(limit) {
			return 0, false
		}
	}
	return uint32(n), true
}

// SpanLen returns hi-lo+1 as an int for the inclusive range [lo, hi], the
// number of counts a repetition range can draw.
// Panics if hi < lo or the span does not fit in an int.
func SpanLen(lo, hi uint32) int {
	if hi < lo {
		panic("invalid span: hi < lo")
	}
	span := uint64(hi) - uint64(lo) + 1
	if span > math.MaxInt {
		panic("integer overflow: span out of int range")
	}
	return int(span)
}
