package dom

import (
	"sort"
	"strings"
)

func NewNamedNodeMap(attrs map[string]string, oe *Node) *NamedNodeMap {
	a := make(map[string]*Attr, len(attrs))
	for k, v := range attrs {
		a[k] = NewAttr(k, v, oe)
	}
	return &NamedNodeMap{
		Length:            len(a),
		Attrs:             a,
		AssociatedElement: oe,
	}
}

// https://dom.spec.whatwg.org/#interface-namednodemap
type NamedNodeMap struct {
	Length            int
	Attrs             map[string]*Attr
	AssociatedElement *Node
}

// Names returns the attribute names in sorted order.
func (n *NamedNodeMap) Names() []string {
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (n *NamedNodeMap) GetNamedItem(qn string) *Attr {
	return n.getAttributeByName(qn)
}

// https://dom.spec.whatwg.org/#concept-element-attributes-get-by-name
func (n *NamedNodeMap) getAttributeByName(qn string) *Attr {
	if v, ok := n.Attrs[n.normalize(qn)]; ok {
		return v
	}
	return nil
}

// HTML elements in HTML documents match attribute names ASCII
// case-insensitively.
func (n *NamedNodeMap) normalize(qn string) string {
	oe := n.AssociatedElement
	if oe != nil && oe.Element != nil && oe.NamespaceURI == Htmlns {
		return strings.ToLower(qn)
	}
	return qn
}

func (n *NamedNodeMap) SetNamedItem(s *Attr) *Attr {
	if s == nil {
		return nil
	}
	s.OwnerElement = n.AssociatedElement
	key := n.normalize(s.LocalName)
	s.LocalName = key
	if s.Prefix == "" {
		s.Name = key
	}
	old, ok := n.Attrs[key]
	n.Attrs[key] = s
	if !ok {
		n.Length++
	}
	return old
}

func (n *NamedNodeMap) RemoveNamedItem(qn string) *Attr {
	key := n.normalize(qn)
	old, ok := n.Attrs[key]
	if !ok {
		return nil
	}
	delete(n.Attrs, key)
	n.Length--
	old.OwnerElement = nil
	return old
}
