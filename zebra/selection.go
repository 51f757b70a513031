package zebra

import (
	"github.com/heathj/gozebra/dom"
	"github.com/heathj/gozebra/traverse"
)

// Selection is an immutable set of elements. Every traversal returns a new
// Selection. A failed step is sticky: the error is kept and later steps
// return the failed selection unchanged, so a chain is checked once with
// Err at the end.
type Selection struct {
	engine *traverse.Engine
	set    traverse.ElementSet
	err    error
}

func (s *Selection) derive(set traverse.ElementSet, err error) *Selection {
	if err != nil {
		return &Selection{engine: s.engine, err: err}
	}
	return &Selection{engine: s.engine, set: set}
}

func (s *Selection) step(spec traverse.Spec, pred traverse.Predicate) *Selection {
	if s.err != nil {
		return s
	}
	return s.derive(s.engine.Traverse(s.set, spec, pred))
}

func predicate(sel []string) traverse.Predicate {
	if len(sel) == 0 {
		return traverse.None
	}
	return traverse.Match(sel[0])
}

// Err returns the first error of the chain that produced s.
func (s *Selection) Err() error {
	return s.err
}

func (s *Selection) Len() int {
	return s.set.Len()
}

// Get returns the element at index i.
func (s *Selection) Get(i int) (*dom.Node, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.set.At(i)
}

func (s *Selection) Nodes() []*dom.Node {
	return s.set.Nodes()
}

func (s *Selection) Set() traverse.ElementSet {
	return s.set
}

// Eq narrows the selection to the element at index i. Negative indexes
// count from the end. Out of range yields an empty selection.
func (s *Selection) Eq(i int) *Selection {
	if s.err != nil {
		return s
	}
	if i < 0 {
		i += s.set.Len()
	}
	n, err := s.set.At(i)
	if err != nil {
		return s.derive(traverse.ElementSet{}, nil)
	}
	return s.derive(traverse.Wrap(n), nil)
}

func (s *Selection) First() *Selection {
	return s.Eq(0)
}

func (s *Selection) Last() *Selection {
	return s.Eq(-1)
}

// Add returns the elements of s followed by those of other not already in s.
func (s *Selection) Add(other *Selection) *Selection {
	if s.err != nil {
		return s
	}
	if other.err != nil {
		return s.derive(traverse.ElementSet{}, other.err)
	}
	return s.derive(traverse.Wrap(append(s.set.Nodes(), other.set.Nodes()...)...), nil)
}

// Each calls f for every element in order.
func (s *Selection) Each(f func(i int, n *dom.Node)) *Selection {
	for i, n := range s.set.Nodes() {
		f(i, n)
	}
	return s
}
