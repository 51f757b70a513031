package zebra

import (
	"strings"

	"github.com/heathj/gozebra/traverse"
)

// Children gets the element children of each element, optionally filtered
// by a selector. Here and in the other filtered steps an empty selector
// means no filter.
func (s *Selection) Children(sel ...string) *Selection {
	return s.step(traverse.Children, predicate(sel))
}

// Siblings gets the siblings of each element, excluding the element
// itself, optionally filtered by a selector.
func (s *Selection) Siblings(sel ...string) *Selection {
	return s.step(traverse.Siblings, predicate(sel))
}

// Parent gets the parent element of each element, optionally filtered by a
// selector.
func (s *Selection) Parent(sel ...string) *Selection {
	return s.step(traverse.Parent, predicate(sel))
}

// Parents gets every ancestor element of each element, nearest first.
func (s *Selection) Parents(sel ...string) *Selection {
	return s.step(traverse.Parents, predicate(sel))
}

// Next gets the immediately following element sibling of each element.
func (s *Selection) Next(sel ...string) *Selection {
	return s.step(traverse.Next, predicate(sel))
}

// Prev gets the immediately preceding element sibling of each element.
func (s *Selection) Prev(sel ...string) *Selection {
	return s.step(traverse.Prev, predicate(sel))
}

// Find gets the descendants of each element that match sel. An empty
// selector matches nothing.
func (s *Selection) Find(sel string) *Selection {
	if s.err == nil && strings.TrimSpace(sel) == "" {
		return s.derive(traverse.ElementSet{}, nil)
	}
	return s.step(traverse.Descendants, traverse.Match(sel))
}

// Filter keeps the elements that match sel. An empty selector matches
// nothing.
func (s *Selection) Filter(sel string) *Selection {
	if s.err == nil && strings.TrimSpace(sel) == "" {
		return s.derive(traverse.ElementSet{}, nil)
	}
	return s.step(traverse.Self, traverse.Match(sel))
}

// Closest gets, for each element, the first of itself and its ancestors
// that matches sel.
func (s *Selection) Closest(sel string) *Selection {
	return s.step(traverse.Closest, traverse.Match(sel))
}
