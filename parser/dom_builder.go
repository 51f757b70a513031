package parser

import (
	"github.com/heathj/gozebra/dom"
	"golang.org/x/net/html"
)

// domBuilder copies a parsed x/net/html tree into dom nodes owned by
// document.
type domBuilder struct {
	document *dom.Node
	count    int
}

func namespaceOf(ns string) dom.Namespace {
	switch ns {
	case "svg":
		return dom.Svgns
	case "math":
		return dom.Mathmlns
	case "xlink":
		return dom.Xlinkns
	case "xml":
		return dom.Xmlns
	case "xmlns":
		return dom.Xmlnsns
	default:
		return dom.Htmlns
	}
}

func (b *domBuilder) build(parent *dom.Node, src *html.Node) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		n := b.convert(c)
		if n == nil {
			continue
		}
		parent.AppendChild(n)
		b.build(n, c)
	}
}

func (b *domBuilder) convert(src *html.Node) *dom.Node {
	b.count++
	switch src.Type {
	case html.ElementNode:
		n := dom.NewDOMElement(b.document, src.Data, namespaceOf(src.Namespace))
		for _, a := range src.Attr {
			// first occurrence wins for duplicate attributes
			if n.Attributes.GetNamedItem(a.Key) != nil {
				continue
			}
			attr := dom.NewAttr(a.Key, a.Val, n)
			attr.Namespace = namespaceOf(a.Namespace)
			n.Attributes.SetNamedItem(attr)
		}
		return n
	case html.TextNode:
		return dom.NewTextNode(b.document, src.Data)
	case html.CommentNode:
		return dom.NewComment(b.document, src.Data)
	case html.DoctypeNode:
		var pub, sys string
		for _, a := range src.Attr {
			switch a.Key {
			case "public":
				pub = a.Val
			case "system":
				sys = a.Val
			}
		}
		return dom.NewDocTypeNode(src.Data, pub, sys)
	}
	b.count--
	return nil
}
