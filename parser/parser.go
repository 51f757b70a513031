package parser

import (
	"io"
	"strings"

	"github.com/heathj/gozebra/dom"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Parser struct {
	input io.Reader
	log   logrus.FieldLogger
}

type Option func(*Parser)

func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Parser) {
		p.log = l
	}
}

func NewParser(htmlIn io.Reader, opts ...Option) *Parser {
	p := &Parser{
		input: htmlIn,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start parses the whole input as an HTML document.
func (p *Parser) Start() (*dom.Node, error) {
	root, err := html.Parse(p.input)
	if err != nil {
		return nil, errors.Wrap(err, "parse html document")
	}
	doc := dom.NewDocument()
	b := &domBuilder{document: doc}
	b.build(doc, root)
	p.log.WithField("nodes", b.count).Debug("[TREE]: document built")
	return doc, nil
}

// ParseHTMLFragment parses input as the contents of context, as when
// setting innerHTML. A nil context parses in a body element.
// https://html.spec.whatwg.org/#html-fragment-parsing-algorithm
func ParseHTMLFragment(context *dom.Node, input string) ([]*dom.Node, error) {
	name := "body"
	var od *dom.Node
	if context != nil {
		if !context.IsElement() {
			return nil, errors.Errorf("fragment context must be an element, got %s", context.NodeType)
		}
		name = context.LocalName
		od = context.OwnerDocument
	}
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
	}
	nodes, err := html.ParseFragment(strings.NewReader(input), ctx)
	if err != nil {
		return nil, errors.Wrap(err, "parse html fragment")
	}

	b := &domBuilder{document: od}
	var out []*dom.Node
	for _, src := range nodes {
		n := b.convert(src)
		if n == nil {
			continue
		}
		b.build(n, src)
		out = append(out, n)
	}
	return out, nil
}
