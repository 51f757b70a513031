package traverse

import (
	"github.com/heathj/gozebra/dom"
	"github.com/pkg/errors"
)

// ElementSet is an ordered sequence of element handles with no handle
// appearing twice. The zero value is the empty set. ElementSets are never
// modified after construction.
type ElementSet struct {
	nodes []*dom.Node
}

// Wrap builds a set from handles, keeping the first occurrence of each
// handle and dropping nils.
func Wrap(handles ...*dom.Node) ElementSet {
	if len(handles) == 0 {
		return ElementSet{}
	}
	seen := make(map[*dom.Node]struct{}, len(handles))
	nodes := make([]*dom.Node, 0, len(handles))
	for _, h := range handles {
		if h == nil {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		nodes = append(nodes, h)
	}
	return ElementSet{nodes: nodes}
}

func (s ElementSet) Len() int {
	return len(s.nodes)
}

func (s ElementSet) Empty() bool {
	return len(s.nodes) == 0
}

func (s ElementSet) At(i int) (*dom.Node, error) {
	if i < 0 || i >= len(s.nodes) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d, size %d", i, len(s.nodes))
	}
	return s.nodes[i], nil
}

// Nodes returns a copy of the handles in set order.
func (s ElementSet) Nodes() []*dom.Node {
	out := make([]*dom.Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

func (s ElementSet) Contains(n *dom.Node) bool {
	for _, h := range s.nodes {
		if h == n {
			return true
		}
	}
	return false
}
