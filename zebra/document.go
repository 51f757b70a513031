// Package zebra wraps sets of dom elements in a chainable Selection, in the
// style of jQuery.
//
//	doc, err := zebra.Load(r)
//	items := doc.Find("ul.menu").Children("li").AddClass("item")
//	if err := items.Err(); err != nil { ... }
package zebra

import (
	"io"

	"github.com/heathj/gozebra/dom"
	"github.com/heathj/gozebra/parser"
	"github.com/heathj/gozebra/traverse"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type config struct {
	log *logrus.Logger
}

type Option func(*config)

// WithLogger routes traversal and parse tracing to l.
func WithLogger(l *logrus.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}

func newEngine(opts []Option) (*traverse.Engine, *config) {
	c := &config{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(c)
	}
	return traverse.New(newDocumentHost(), traverse.WithLogger(c.log)), c
}

// Document is a parsed tree plus the engine that queries it.
type Document struct {
	root   *dom.Node
	engine *traverse.Engine
}

// Load parses an HTML document from r.
func Load(r io.Reader, opts ...Option) (*Document, error) {
	engine, c := newEngine(opts)
	root, err := parser.NewParser(r, parser.WithLogger(c.log)).Start()
	if err != nil {
		return nil, errors.Wrap(err, "load document")
	}
	return &Document{root: root, engine: engine}, nil
}

// NewDocument queries an existing tree.
func NewDocument(root *dom.Node, opts ...Option) *Document {
	engine, _ := newEngine(opts)
	return &Document{root: root, engine: engine}
}

func (d *Document) Root() *dom.Node {
	return d.root
}

// Find selects every element of the document matching sel, in tree order.
// An empty selector matches nothing.
func (d *Document) Find(sel string) *Selection {
	root := &Selection{engine: d.engine, set: traverse.Wrap(d.root)}
	if d.root.IsElement() {
		// a detached root element is a candidate as well
		return root.Filter(sel).Add(root.Find(sel))
	}
	return root.Find(sel)
}

// Wrap makes a selection of the given nodes. Non-element nodes are
// dropped.
func Wrap(nodes []*dom.Node, opts ...Option) *Selection {
	engine, _ := newEngine(opts)
	elems := make([]*dom.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.IsElement() {
			elems = append(elems, n)
		}
	}
	return &Selection{engine: engine, set: traverse.Wrap(elems...)}
}
