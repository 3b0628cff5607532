package requirement

import "github.com/roach88/craftkit/internal/component"

// Restriction is a token produced while probing output requirements,
// such as capacity claimed on a component earlier in the same probe.
type Restriction interface {
	Component() component.Component
}

// Claim reserves Amount units of Key on a component.
type Claim struct {
	On     component.Component
	Key    string
	Amount int64
}

// Component returns the claimed component.
func (c Claim) Component() component.Component { return c.On }

// Restrictions accumulates the restrictions of one probe.
// It is empty at the start and at the end of every probe.
type Restrictions struct {
	items []Restriction
}

// Add records r.
func (s *Restrictions) Add(r Restriction) {
	s.items = append(s.items, r)
}

// Clear drops every restriction.
func (s *Restrictions) Clear() {
	s.items = s.items[:0]
}

// Len returns the number of recorded restrictions.
func (s *Restrictions) Len() int {
	return len(s.items)
}

// For returns the restrictions bound to c, in the order they were added.
func (s *Restrictions) For(c component.Component) []Restriction {
	out := []Restriction{}
	for _, r := range s.items {
		if r.Component() == c {
			out = append(out, r)
		}
	}
	return out
}

// Claimed returns the total amount claimed on c across all keys.
func (s *Restrictions) Claimed(c component.Component) int64 {
	var n int64
	for _, r := range s.For(c) {
		if cl, ok := r.(Claim); ok {
			n += cl.Amount
		}
	}
	return n
}
