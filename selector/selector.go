// Package selector compiles CSS selectors and matches them against dom
// elements.
//
// Supported: selector lists, the four combinators, type and universal
// selectors, #id, .class, attribute selectors with = ~= |= ^= $= *=, and the
// pseudo-classes :first-child, :last-child, :only-child, :empty, :root and
// :not().
package selector

import (
	"strings"

	"github.com/heathj/gozebra/dom"
)

// Selector is a compiled selector list. It is safe for concurrent use.
type Selector struct {
	source string
	alts   []complexSelector
}

func Compile(s string) (*Selector, error) {
	tokens, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	p := &parser{source: s, tokens: tokens}
	alts, err := p.parseSelectorList(false)
	if err != nil {
		return nil, err
	}
	return &Selector{source: s, alts: alts}, nil
}

// MustCompile is like Compile but panics on a syntax error.
func MustCompile(s string) *Selector {
	sel, err := Compile(s)
	if err != nil {
		panic(err)
	}
	return sel
}

func (s *Selector) String() string {
	return s.source
}

// Match reports whether n is an element matched by any selector of the
// list.
func (s *Selector) Match(n *dom.Node) bool {
	return matchAny(s.alts, n)
}

// MatchAll returns the elements below root matched by s, in tree order.
func (s *Selector) MatchAll(root *dom.Node) []*dom.Node {
	var out []*dom.Node
	for _, e := range root.Descendants() {
		if s.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

func matchAny(alts []complexSelector, n *dom.Node) bool {
	if !n.IsElement() {
		return false
	}
	for _, c := range alts {
		if c.match(n) {
			return true
		}
	}
	return false
}

type combinator uint

const (
	descendant combinator = iota
	child
	nextSibling
	subsequentSibling
)

// complexSelector is a chain of compounds; combinators[i] joins compounds[i]
// and compounds[i+1].
type complexSelector struct {
	compounds   []compound
	combinators []combinator
}

func (c complexSelector) match(n *dom.Node) bool {
	return c.matchAt(n, len(c.compounds)-1)
}

// matchAt matches right to left, backtracking over ancestors and preceding
// siblings for the descendant and subsequent-sibling combinators.
func (c complexSelector) matchAt(n *dom.Node, i int) bool {
	if !c.compounds[i].match(n) {
		return false
	}
	if i == 0 {
		return true
	}
	switch c.combinators[i-1] {
	case child:
		p, ok := n.ParentElement()
		return ok && c.matchAt(p, i-1)
	case descendant:
		for p, ok := n.ParentElement(); ok; p, ok = p.ParentElement() {
			if c.matchAt(p, i-1) {
				return true
			}
		}
	case nextSibling:
		s, ok := n.PreviousElementSibling()
		return ok && c.matchAt(s, i-1)
	case subsequentSibling:
		for s, ok := n.PreviousElementSibling(); ok; s, ok = s.PreviousElementSibling() {
			if c.matchAt(s, i-1) {
				return true
			}
		}
	}
	return false
}

type compound struct {
	tag       string
	universal bool
	matchers  []matcher
}

func (c compound) match(n *dom.Node) bool {
	if c.tag != "" {
		if n.NamespaceURI == dom.Htmlns {
			if !strings.EqualFold(n.LocalName, c.tag) {
				return false
			}
		} else if n.LocalName != c.tag {
			return false
		}
	}
	for _, m := range c.matchers {
		if !m.match(n) {
			return false
		}
	}
	return true
}

type matcher interface {
	match(n *dom.Node) bool
}

type idMatcher string

func (m idMatcher) match(n *dom.Node) bool {
	id, ok := n.GetAttribute("id")
	return ok && id == string(m)
}

type classMatcher string

func (m classMatcher) match(n *dom.Node) bool {
	return n.HasClass(string(m))
}

type attributeOp uint

const (
	existsOp attributeOp = iota
	equalsOp
	includesOp
	dashOp
	prefixOp
	suffixOp
	substringOp
)

// https://www.w3.org/TR/selectors-4/#attribute-selectors
type attributeMatcher struct {
	name  string
	op    attributeOp
	value string
}

func (m *attributeMatcher) match(n *dom.Node) bool {
	v, ok := n.GetAttribute(m.name)
	if !ok {
		return false
	}
	switch m.op {
	case existsOp:
		return true
	case equalsOp:
		return v == m.value
	case includesOp:
		for _, f := range strings.Fields(v) {
			if f == m.value {
				return true
			}
		}
		return false
	case dashOp:
		return v == m.value || strings.HasPrefix(v, m.value+"-")
	case prefixOp:
		return m.value != "" && strings.HasPrefix(v, m.value)
	case suffixOp:
		return m.value != "" && strings.HasSuffix(v, m.value)
	case substringOp:
		return m.value != "" && strings.Contains(v, m.value)
	}
	return false
}

type firstChildMatcher struct{}

func (firstChildMatcher) match(n *dom.Node) bool {
	_, ok := n.PreviousElementSibling()
	return !ok && n.ParentNode != nil
}

type lastChildMatcher struct{}

func (lastChildMatcher) match(n *dom.Node) bool {
	_, ok := n.NextElementSibling()
	return !ok && n.ParentNode != nil
}

type onlyChildMatcher struct{}

func (onlyChildMatcher) match(n *dom.Node) bool {
	return firstChildMatcher{}.match(n) && lastChildMatcher{}.match(n)
}

// https://www.w3.org/TR/selectors-3/#empty-pseudo
type emptyMatcher struct{}

func (emptyMatcher) match(n *dom.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.NodeType {
		case dom.ElementNode:
			return false
		case dom.TextNode:
			if c.Text.Data != "" {
				return false
			}
		}
	}
	return true
}

type rootMatcher struct{}

func (rootMatcher) match(n *dom.Node) bool {
	return n.ParentNode != nil && n.ParentNode.NodeType == dom.DocumentNode
}

type notMatcher []complexSelector

func (m notMatcher) match(n *dom.Node) bool {
	return !matchAny(m, n)
}
