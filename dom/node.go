package dom

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	AttrNode
	TextNode
	CDATASectionNode
	ProcessingInstructionNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case AttrNode:
		return "attr"
	case TextNode:
		return "text"
	case CDATASectionNode:
		return "cdata-section"
	case ProcessingInstructionNode:
		return "processing-instruction"
	case CommentNode:
		return "comment"
	case DocumentNode:
		return "document"
	case DocumentTypeNode:
		return "doctype"
	case DocumentFragmentNode:
		return "document-fragment"
	default:
		return "unknown"
	}
}

// ErrNotFound is returned by tree mutations whose reference node is not a
// child of the node being mutated.
// https://dom.spec.whatwg.org/#notfounderror
var ErrNotFound = errors.New("node is not a child of this node")

// ErrHierarchyRequest is returned when an insertion would make a node its
// own ancestor, or put a document inside another node.
// https://dom.spec.whatwg.org/#hierarchyrequesterror
var ErrHierarchyRequest = errors.New("node cannot be inserted here")

// https://dom.spec.whatwg.org/#node
type Node struct {
	NodeType                                                        NodeType
	NodeName                                                        string
	OwnerDocument                                                   *Node
	ParentNode, FirstChild, LastChild, PreviousSibling, NextSibling *Node
	ChildNodes                                                      NodeList

	// Node types
	*Element
	*Text
	*Comment
	*Document
	*DocumentType
}

func NewDocument() *Node {
	return &Node{
		NodeType: DocumentNode,
		NodeName: "#document",
		Document: &Document{Type: "html", Mode: NoQuirks},
	}
}

func NewDocumentFragment(od *Node) *Node {
	return &Node{
		NodeType:      DocumentFragmentNode,
		NodeName:      "#document-fragment",
		OwnerDocument: od,
	}
}

// NewComment returns a comment node with its Data section filled.
func NewComment(od *Node, data string) *Node {
	return &Node{
		NodeType:      CommentNode,
		NodeName:      "#comment",
		OwnerDocument: od,
		Comment:       &Comment{CharacterData: &CharacterData{Data: data}},
	}
}

func NewTextNode(od *Node, text string) *Node {
	return &Node{
		NodeType:      TextNode,
		NodeName:      "#text",
		OwnerDocument: od,
		Text:          &Text{CharacterData: &CharacterData{Data: text}},
	}
}

func NewDocTypeNode(name, pub, sys string) *Node {
	return &Node{
		NodeType: DocumentTypeNode,
		NodeName: name,
		DocumentType: &DocumentType{
			Name:     name,
			PublicID: pub,
			SystemID: sys,
		},
	}
}

// NewDOMElement creates an element in the given namespace. The optional
// argument is the namespace prefix.
func NewDOMElement(od *Node, name string, namespace Namespace, optionals ...string) *Node {
	var prefix string
	if len(optionals) >= 1 {
		prefix = optionals[0]
	}
	n := &Node{
		NodeType:      ElementNode,
		NodeName:      name,
		OwnerDocument: od,
		Element: &Element{
			NamespaceURI: namespace,
			Prefix:       prefix,
			LocalName:    name,
		},
	}
	n.Attributes = NewNamedNodeMap(nil, n)
	return n
}

// NewElement creates an HTML element. Tag names are lowercased.
func NewElement(od *Node, name string) *Node {
	return NewDOMElement(od, strings.ToLower(name), Htmlns)
}

func (n *Node) IsElement() bool {
	return n != nil && n.NodeType == ElementNode
}

func (n *Node) HasChildNodes() bool {
	return len(n.ChildNodes) > 0
}

// ParentElement is https://dom.spec.whatwg.org/#dom-node-parentelement.
// Document and fragment parents are reported as absent.
func (n *Node) ParentElement() (*Node, bool) {
	if n.ParentNode != nil && n.ParentNode.NodeType == ElementNode {
		return n.ParentNode, true
	}
	return nil, false
}

// Children is https://dom.spec.whatwg.org/#dom-parentnode-children
func (n *Node) Children() NodeList {
	var children NodeList
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.NodeType == ElementNode {
			children = append(children, c)
		}
	}
	return children
}

// ElementSiblings returns the element children of n's parent, in tree order,
// without n itself.
func (n *Node) ElementSiblings() NodeList {
	if n.ParentNode == nil {
		return nil
	}
	var siblings NodeList
	for c := n.ParentNode.FirstChild; c != nil; c = c.NextSibling {
		if c != n && c.NodeType == ElementNode {
			siblings = append(siblings, c)
		}
	}
	return siblings
}

// https://dom.spec.whatwg.org/#dom-nondocumenttypechildnode-nextelementsibling
func (n *Node) NextElementSibling() (*Node, bool) {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.NodeType == ElementNode {
			return s, true
		}
	}
	return nil, false
}

// https://dom.spec.whatwg.org/#dom-nondocumenttypechildnode-previouselementsibling
func (n *Node) PreviousElementSibling() (*Node, bool) {
	for s := n.PreviousSibling; s != nil; s = s.PreviousSibling {
		if s.NodeType == ElementNode {
			return s, true
		}
	}
	return nil, false
}

// Descendants returns every element below n in tree order.
func (n *Node) Descendants() NodeList {
	var out NodeList
	var walk func(*Node)
	walk = func(p *Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if c.NodeType == ElementNode {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// https://dom.spec.whatwg.org/#dom-node-contains
func (n *Node) Contains(on *Node) bool {
	for p := on; p != nil; p = p.ParentNode {
		if p == n {
			return true
		}
	}
	return false
}

func (n *Node) GetRootNode() *Node {
	var prev *Node
	for i := n; i != nil; i = i.ParentNode {
		prev = i
	}
	return prev
}

// https://dom.spec.whatwg.org/#concept-node-ensure-pre-insertion-validity
func (n *Node) checkInsert(on *Node) error {
	if on.NodeType == DocumentNode {
		return errors.Wrapf(ErrHierarchyRequest, "insert %s into %s", on.NodeName, n.NodeName)
	}
	if on.Contains(n) {
		return errors.Wrapf(ErrHierarchyRequest, "%s is an inclusive ancestor of %s", on.NodeName, n.NodeName)
	}
	return nil
}

// https://dom.spec.whatwg.org/#concept-node-append
// Appending a document fragment moves its children instead.
func (n *Node) AppendChild(on *Node) (*Node, error) {
	if err := n.checkInsert(on); err != nil {
		return nil, err
	}
	if on.NodeType == DocumentFragmentNode {
		for on.FirstChild != nil {
			if _, err := n.AppendChild(on.FirstChild); err != nil {
				return nil, err
			}
		}
		return on, nil
	}
	on.detach()

	if n.LastChild != nil {
		on.PreviousSibling = n.LastChild
		n.LastChild.NextSibling = on
	} else {
		n.FirstChild = on
	}
	on.ParentNode = n
	n.LastChild = on
	n.ChildNodes = append(n.ChildNodes, on)
	return on, nil
}

// https://dom.spec.whatwg.org/#dom-node-insertbefore
// A nil child appends.
func (n *Node) InsertBefore(on, child *Node) (*Node, error) {
	if child == nil {
		return n.AppendChild(on)
	}
	if err := n.checkInsert(on); err != nil {
		return nil, err
	}
	if child.ParentNode != n {
		return nil, errors.Wrapf(ErrNotFound, "insert before %s", child.NodeName)
	}
	if on == child {
		return on, nil
	}
	if on.NodeType == DocumentFragmentNode {
		for on.FirstChild != nil {
			if _, err := n.InsertBefore(on.FirstChild, child); err != nil {
				return nil, err
			}
		}
		return on, nil
	}
	on.detach()

	i := n.ChildNodes.Contains(child)
	n.ChildNodes.WedgeIn(i, on)
	on.ParentNode = n
	on.NextSibling = child
	on.PreviousSibling = child.PreviousSibling
	if child.PreviousSibling != nil {
		child.PreviousSibling.NextSibling = on
	} else {
		n.FirstChild = on
	}
	child.PreviousSibling = on
	return on, nil
}

// https://dom.spec.whatwg.org/#dom-node-removechild
func (n *Node) RemoveChild(child *Node) (*Node, error) {
	if child == nil || child.ParentNode != n {
		return nil, errors.Wrap(ErrNotFound, "remove child")
	}
	child.detach()
	return child, nil
}

func (n *Node) detach() {
	p := n.ParentNode
	if p == nil {
		return
	}
	p.ChildNodes.Remove(p.ChildNodes.Contains(n))
	if n.PreviousSibling != nil {
		n.PreviousSibling.NextSibling = n.NextSibling
	} else {
		p.FirstChild = n.NextSibling
	}
	if n.NextSibling != nil {
		n.NextSibling.PreviousSibling = n.PreviousSibling
	} else {
		p.LastChild = n.PreviousSibling
	}
	n.ParentNode, n.PreviousSibling, n.NextSibling = nil, nil, nil
}

func serializeNodeType(node *Node, ident int) string {
	switch node.NodeType {
	case ElementNode:
		var e strings.Builder
		e.WriteString("<")
		switch node.Element.NamespaceURI {
		case Svgns:
			e.WriteString("svg ")
		case Mathmlns:
			e.WriteString("math ")
		}
		e.WriteString(node.NodeName)
		e.WriteString(">")
		if node.Attributes == nil || node.Attributes.Length == 0 {
			return e.String()
		}
		keys := make([]string, 0, node.Attributes.Length)
		for name := range node.Attributes.Attrs {
			keys = append(keys, name)
		}
		sort.Strings(keys)
		spaces := "| " + strings.Repeat("  ", ident-1)
		for _, name := range keys {
			attr := node.Attributes.Attrs[name]
			var ns string
			switch attr.Namespace {
			case Xmlnsns:
				ns = "xmlns "
			case Xmlns:
				ns = "xml "
			case Xlinkns:
				ns = "xlink "
			}
			e.WriteString("\n" + spaces + ns + attr.LocalName + "=\"" + attr.Value + "\"")
		}
		return e.String()
	case TextNode:
		return "\"" + node.Text.Data + "\""
	case CommentNode:
		return "<!-- " + node.Comment.Data + " -->"
	case DocumentTypeNode:
		d := "<!DOCTYPE " + node.DocumentType.Name
		if node.DocumentType.PublicID == "" && node.DocumentType.SystemID == "" {
			return d + ">"
		}
		return d + " \"" + node.DocumentType.PublicID + "\" \"" + node.DocumentType.SystemID + "\">"
	case DocumentNode:
		return "#document"
	case DocumentFragmentNode:
		return "#document-fragment"
	default:
		return ""
	}
}

func (node *Node) serialize(b *strings.Builder, ident int) {
	if node.NodeType != DocumentNode && node.NodeType != DocumentFragmentNode {
		b.WriteString("| " + strings.Repeat("  ", ident-1))
	}
	b.WriteString(serializeNodeType(node, ident+1))
	b.WriteString("\n")
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		c.serialize(b, ident+1)
	}
}

// String dumps the subtree rooted at node in the html5lib tree-construction
// test format.
func (node *Node) String() string {
	var b strings.Builder
	ident := 1
	if node.NodeType == DocumentNode || node.NodeType == DocumentFragmentNode {
		ident = 0
	}
	node.serialize(&b, ident)
	return strings.TrimRight(b.String(), "\n")
}
