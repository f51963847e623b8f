package lint

import "sort"

// ViolationSet keeps violations ordered by anchor offset, then message.
// Adding a violation with the same anchor offset and message as an existing
// one has no effect.
type ViolationSet struct {
	items []Violation
}

func violationLess(a, b Violation) bool {
	if a.Token.Offset() != b.Token.Offset() {
		return a.Token.Offset() < b.Token.Offset()
	}
	return a.Message < b.Message
}

// Add inserts v and reports whether it was new.
func (s *ViolationSet) Add(v Violation) bool {
	i := sort.Search(len(s.items), func(i int) bool {
		return !violationLess(s.items[i], v)
	})
	if i < len(s.items) && !violationLess(v, s.items[i]) {
		return false
	}
	s.items = append(s.items, Violation{})
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = v
	return true
}

// Len returns the number of violations.
func (s *ViolationSet) Len() int { return len(s.items) }

// Items returns a copy of the violations in order.
func (s *ViolationSet) Items() []Violation {
	out := make([]Violation, len(s.items))
	copy(out, s.items)
	return out
}
