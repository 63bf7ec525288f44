// Package sparse provides a sparse set of automaton state IDs.
//
// The matcher keeps its live-state set in a SparseSet: insertion, membership
// and clearing are O(1), and iteration visits states in insertion order, which
// keeps simulation steps deterministic.
package sparse

// SparseSet is a set of uint32 values drawn from [0, capacity).
// The sparse slice maps a value to its slot in dense; a value is a member
// when that slot is in range and points back at it.
type SparseSet struct {
	sparse []uint32
	dense  []uint32
}

// NewSparseSet creates an empty set able to hold values below capacity.
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set and reports whether it was newly added.
// Values outside the capacity are rejected.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) || int(value) >= len(s.sparse) {
		return false
	}
	//nolint:gosec // G115: len(dense) < len(sparse) which fits in uint32
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Clear empties the set in O(1).
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of members.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no members.
func (s *SparseSet) IsEmpty() bool {
	return len(s.dense) == 0
}

// Capacity returns the exclusive upper bound on storable values.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// Values returns the members in insertion order.
// The slice is only valid until the next mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense
}
