package utils

// NameSet tracks names already seen during a single pass.
type NameSet struct {
	seen map[string]struct{}
}

// NewNameSet creates an empty NameSet.
func NewNameSet() *NameSet {
	return &NameSet{seen: make(map[string]struct{})}
}

// Add returns true if name was newly added, false if already present.
func (s *NameSet) Add(name string) bool {
	if _, exists := s.seen[name]; exists {
		return false
	}
	s.seen[name] = struct{}{}
	return true
}

// Contains reports whether name has been added.
func (s *NameSet) Contains(name string) bool {
	_, exists := s.seen[name]
	return exists
}

// Size returns the number of unique names tracked.
func (s *NameSet) Size() int {
	return len(s.seen)
}
