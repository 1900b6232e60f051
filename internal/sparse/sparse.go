// Package sparse provides a sparse set of code points for building character sets.
//
// A sparse set supports O(1) insertion, deletion, and membership testing while
// keeping a dense list of its members. The character set builder uses it to
// subtract excluded characters from a small universe (printable ASCII) without
// allocating a map per class.
package sparse

// Set is a set of runes in [0, capacity) that supports O(1) operations.
// It maintains both a sparse array (for membership testing) and a dense array
// (for iteration). The sparse array maps a rune to its index in the dense array.
type Set struct {
	sparse []uint32 // Maps rune -> index in dense
	dense  []rune   // Contains the members
}

// New creates an empty set able to hold runes in [0, capacity).
func New(capacity int) *Set {
	if capacity < 0 {
		capacity = 0
	}
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]rune, 0, capacity),
	}
}

// Insert adds r to the set and reports whether it was added.
// Runes outside the universe are ignored.
func (s *Set) Insert(r rune) bool {
	if !s.inUniverse(r) || s.Contains(r) {
		return false
	}
	//nolint:gosec // G115: len(dense) < capacity which fits the sparse slice
	s.sparse[r] = uint32(len(s.dense))
	s.dense = append(s.dense, r)
	return true
}

// InsertRange adds every rune in [lo, hi].
func (s *Set) InsertRange(lo, hi rune) {
	for r := lo; r <= hi; r++ {
		s.Insert(r)
	}
}

// Contains reports whether r is in the set.
func (s *Set) Contains(r rune) bool {
	if !s.inUniverse(r) {
		return false
	}
	idx := s.sparse[r]
	return int(idx) < len(s.dense) && s.dense[idx] == r
}

// Remove deletes r from the set and reports whether it was present.
func (s *Set) Remove(r rune) bool {
	if !s.Contains(r) {
		return false
	}

	idx := s.sparse[r]
	last := s.dense[len(s.dense)-1]

	// swap and pop
	s.dense[idx] = last
	s.sparse[last] = idx
	s.dense = s.dense[:len(s.dense)-1]
	return true
}

// Clear removes all members in O(1) time.
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no members.
func (s *Set) IsEmpty() bool {
	return len(s.dense) == 0
}

// Values returns the members in unspecified order.
// The returned slice is valid until the next mutation.
func (s *Set) Values() []rune {
	return s.dense
}

func (s *Set) inUniverse(r rune) bool {
	return r >= 0 && int(r) < len(s.sparse)
}
