package dom

type QuirksMode string

const (
	NoQuirks      QuirksMode = "no-quirks"
	Quirks        QuirksMode = "quirks"
	LimitedQuirks QuirksMode = "limited-quirks"
)

// https://dom.spec.whatwg.org/#interface-document
type Document struct {
	URL  string
	Type string
	Mode QuirksMode
}

// https://dom.spec.whatwg.org/#documenttype
type DocumentType struct {
	Name     string
	PublicID string
	SystemID string
}

// DocumentElement returns the first element child of a document node.
func (n *Node) DocumentElement() (*Node, bool) {
	if n.NodeType != DocumentNode {
		return nil, false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.NodeType == ElementNode {
			return c, true
		}
	}
	return nil, false
}

// GetElementByID returns the first element in tree order whose id is id.
func (n *Node) GetElementByID(id string) (*Node, bool) {
	for _, e := range n.Descendants() {
		if v, ok := e.GetAttribute("id"); ok && v == id {
			return e, true
		}
	}
	return nil, false
}
