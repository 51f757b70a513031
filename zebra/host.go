package zebra

import (
	"sync"

	"github.com/heathj/gozebra/dom"
	"github.com/heathj/gozebra/selector"
)

// documentHost answers traversal queries from the dom tree and caches
// compiled selectors.
type documentHost struct {
	mu    sync.Mutex
	cache map[string]*selector.Selector
}

func newDocumentHost() *documentHost {
	return &documentHost{cache: make(map[string]*selector.Selector)}
}

func (h *documentHost) compile(s string) (*selector.Selector, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sel, ok := h.cache[s]; ok {
		return sel, nil
	}
	sel, err := selector.Compile(s)
	if err != nil {
		return nil, err
	}
	h.cache[s] = sel
	return sel, nil
}

func (h *documentHost) Matches(n *dom.Node, s string) (bool, error) {
	sel, err := h.compile(s)
	if err != nil {
		return false, err
	}
	return sel.Match(n), nil
}

func (h *documentHost) ParentOf(n *dom.Node) (*dom.Node, bool) {
	return n.ParentElement()
}

func (h *documentHost) ChildrenOf(n *dom.Node) []*dom.Node {
	return n.Children()
}

func (h *documentHost) SiblingsOf(n *dom.Node) []*dom.Node {
	return n.ElementSiblings()
}

func (h *documentHost) NextOf(n *dom.Node) (*dom.Node, bool) {
	return n.NextElementSibling()
}

func (h *documentHost) PrevOf(n *dom.Node) (*dom.Node, bool) {
	return n.PreviousElementSibling()
}
