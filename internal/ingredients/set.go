// Package ingredients holds the user's working set of ingredient names.
package ingredients

import "strings"

// Normalize lowercases and trims whitespace from a raw ingredient name.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// Set is a deduplicated set of normalized ingredient names. Members keep
// insertion order for display only. A Set is not safe for concurrent use.
type Set struct {
	order   []string
	members map[string]struct{}
}

func NewSet() *Set {
	return &Set{members: make(map[string]struct{})}
}

// Add normalizes raw and inserts it. It returns false when the normalized
// value is empty or already present.
func (s *Set) Add(raw string) bool {
	v := Normalize(raw)
	if v == "" {
		return false
	}
	if _, ok := s.members[v]; ok {
		return false
	}
	s.members[v] = struct{}{}
	s.order = append(s.order, v)
	return true
}

// Remove deletes value if present and reports whether it was a member.
func (s *Set) Remove(value string) bool {
	v := Normalize(value)
	if _, ok := s.members[v]; !ok {
		return false
	}
	delete(s.members, v)
	for i, m := range s.order {
		if m == v {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *Set) Contains(value string) bool {
	_, ok := s.members[Normalize(value)]
	return ok
}

func (s *Set) Size() int {
	return len(s.order)
}

// Values returns the members in insertion order. The slice is a copy, so
// it doubles as the snapshot sent with a search request.
func (s *Set) Values() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
