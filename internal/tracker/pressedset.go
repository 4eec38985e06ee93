package tracker

// PressedSet is an insertion-ordered set of input identifiers.
// An identifier appears at most once; iteration follows the order of first insertion.
type PressedSet struct {
	order []string
	index map[string]int
}

// NewPressedSet creates an empty set
func NewPressedSet() *PressedSet {
	return &PressedSet{
		index: make(map[string]int),
	}
}

// Add inserts id and reports whether it was newly added
func (s *PressedSet) Add(id string) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = len(s.order)
	s.order = append(s.order, id)
	return true
}

// Remove deletes id and reports whether it was present
func (s *PressedSet) Remove(id string) bool {
	pos, ok := s.index[id]
	if !ok {
		return false
	}
	delete(s.index, id)
	s.order = append(s.order[:pos], s.order[pos+1:]...)
	for i := pos; i < len(s.order); i++ {
		s.index[s.order[i]] = i
	}
	return true
}

// Contains reports whether id is in the set
func (s *PressedSet) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of members
func (s *PressedSet) Len() int {
	return len(s.order)
}

// Members returns a copy of the members in insertion order
func (s *PressedSet) Members() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
