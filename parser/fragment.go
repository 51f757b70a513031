package parser

import (
	"strings"

	"github.com/heathj/gozebra/dom"
)

// https://html.spec.whatwg.org/#escapingString
func escapeString(s string, attrVal bool) string {
	s = strings.Replace(s, "&", "&amp;", -1)
	s = strings.Replace(s, "\u00A0", "&nbsp;", -1)
	if attrVal {
		s = strings.Replace(s, "\"", "&quot;", -1)
	} else {
		s = strings.Replace(s, "<", "&lt;", -1)
		s = strings.Replace(s, ">", "&gt;", -1)
	}

	return s
}

// https://html.spec.whatwg.org/#void-elements
var voidElements = map[string]bool{
	"area": true, "base": true, "basefont": true, "bgsound": true, "br": true,
	"col": true, "embed": true, "frame": true, "hr": true, "img": true,
	"input": true, "keygen": true, "link": true, "meta": true, "param": true,
	"source": true, "track": true, "wbr": true,
}

// SerializeHTMLFragment returns the inner HTML of node. Attributes are
// written in name order so the output is stable.
// https://html.spec.whatwg.org/#serialising-html-fragments
func SerializeHTMLFragment(node *dom.Node) string {
	var b strings.Builder
	serializeChildren(&b, node)
	return b.String()
}

// OuterHTML returns the serialization of node itself and its subtree.
func OuterHTML(node *dom.Node) string {
	var b strings.Builder
	serializeNode(&b, node)
	return b.String()
}

func serializeChildren(b *strings.Builder, node *dom.Node) {
	if node.IsElement() && voidElements[node.LocalName] {
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		serializeNode(b, child)
	}
}

func serializeNode(b *strings.Builder, node *dom.Node) {
	switch node.NodeType {
	case dom.ElementNode:
		b.WriteString("<" + node.NodeName)
		for _, k := range node.Attributes.Names() {
			b.WriteString(" " + k + "=\"" + escapeString(node.Attributes.Attrs[k].Value, true) + "\"")
		}
		b.WriteString(">")
		if voidElements[node.LocalName] {
			return
		}
		serializeChildren(b, node)
		b.WriteString("</" + node.NodeName + ">")
	case dom.TextNode:
		parent := ""
		if node.ParentNode != nil && node.ParentNode.IsElement() {
			parent = node.ParentNode.LocalName
		}
		switch parent {
		case "style", "script", "xmp", "iframe", "noembed", "noframes", "plaintext", "noscript":
			b.WriteString(node.Text.Data)
		default:
			b.WriteString(escapeString(node.Text.Data, false))
		}
	case dom.CommentNode:
		b.WriteString("<!--" + node.Comment.Data + "-->")
	case dom.DocumentTypeNode:
		b.WriteString("<!DOCTYPE " + node.DocumentType.Name + ">")
	case dom.DocumentNode, dom.DocumentFragmentNode:
		serializeChildren(b, node)
	}
}
