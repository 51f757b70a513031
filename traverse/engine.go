// Package traverse implements element-set traversal: from a set of source
// elements, walk a relation, optionally filter by selector, and return the
// deduplicated result as a new set.
package traverse

import (
	"github.com/heathj/gozebra/dom"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Host is the document model the engine reads. Handles returned by the
// host must be element nodes.
type Host interface {
	// Matches reports whether n matches selector. An invalid selector is
	// an error.
	Matches(n *dom.Node, selector string) (bool, error)
	// ParentOf returns the parent element. Document and fragment roots are
	// not elements and are reported as absent.
	ParentOf(n *dom.Node) (*dom.Node, bool)
	// ChildrenOf returns the element children in tree order.
	ChildrenOf(n *dom.Node) []*dom.Node
	// SiblingsOf returns the parent's element children in tree order,
	// without n.
	SiblingsOf(n *dom.Node) []*dom.Node
	NextOf(n *dom.Node) (*dom.Node, bool)
	PrevOf(n *dom.Node) (*dom.Node, bool)
}

type Engine struct {
	host Host
	log  logrus.FieldLogger
}

type Option func(*Engine)

// WithLogger sets where traversals are traced at debug level.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

func New(host Host, opts ...Option) *Engine {
	e := &Engine{
		host: host,
		log:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func validate(spec Spec, pred Predicate) error {
	if spec.rel == invalidRelation {
		return errors.Wrap(ErrInvalidSpec, "zero value spec")
	}
	if _, ok := pred.Selector(); spec.predicateRequired && !ok {
		return errors.Wrapf(ErrInvalidSpec, "%s requires a selector", spec)
	}
	return nil
}

// Traverse walks spec from every element of source, in source order, and
// returns the concatenated candidates filtered by pred and deduplicated
// with the first occurrence kept. An empty source yields an empty set
// without consulting the host. Errors from the host's selector matching are
// returned unchanged.
func (e *Engine) Traverse(source ElementSet, spec Spec, pred Predicate) (ElementSet, error) {
	if err := validate(spec, pred); err != nil {
		return ElementSet{}, err
	}
	if source.Empty() {
		return ElementSet{}, nil
	}

	m := &matcher{host: e.host, pred: pred}
	var raw []*dom.Node
	for _, n := range source.nodes {
		candidates, err := e.candidates(n, spec, m)
		if err != nil {
			return ElementSet{}, err
		}
		raw = append(raw, candidates...)
	}

	if !spec.predicateRequired && pred.present {
		filtered := raw[:0]
		for _, n := range raw {
			ok, err := m.match(n)
			if err != nil {
				return ElementSet{}, err
			}
			if ok {
				filtered = append(filtered, n)
			}
		}
		raw = filtered
	}

	result := Wrap(raw...)
	e.log.WithFields(logrus.Fields{
		"mode":     spec.String(),
		"selector": pred.String(),
		"source":   source.Len(),
		"result":   result.Len(),
	}).Debug("traverse")
	return result, nil
}

func (e *Engine) candidates(n *dom.Node, spec Spec, m *matcher) ([]*dom.Node, error) {
	switch spec.rel {
	case selfRelation:
		return []*dom.Node{n}, nil
	case childrenRelation:
		return e.host.ChildrenOf(n), nil
	case siblingsRelation:
		return e.host.SiblingsOf(n), nil
	case parentRelation:
		return optional(e.host.ParentOf(n)), nil
	case nextRelation:
		return optional(e.host.NextOf(n)), nil
	case prevRelation:
		return optional(e.host.PrevOf(n)), nil
	case ancestorsRelation:
		var out []*dom.Node
		for p, ok := e.host.ParentOf(n); ok; p, ok = e.host.ParentOf(p) {
			out = append(out, p)
		}
		return out, nil
	case descendantsRelation:
		var out []*dom.Node
		var walk func(*dom.Node)
		walk = func(p *dom.Node) {
			for _, c := range e.host.ChildrenOf(p) {
				out = append(out, c)
				walk(c)
			}
		}
		walk(n)
		return out, nil
	case closestRelation:
		for cur, ok := n, true; ok; cur, ok = e.host.ParentOf(cur) {
			matched, err := m.match(cur)
			if err != nil {
				return nil, err
			}
			if matched {
				return []*dom.Node{cur}, nil
			}
		}
		return nil, nil
	}
	return nil, errors.Wrapf(ErrInvalidSpec, "unknown relation %d", spec.rel)
}

func optional(n *dom.Node, ok bool) []*dom.Node {
	if !ok {
		return nil
	}
	return []*dom.Node{n}
}

// matcher memoizes predicate results for one traversal, so a candidate
// reachable from several source elements is matched once.
type matcher struct {
	host Host
	pred Predicate
	memo map[*dom.Node]bool
}

func (m *matcher) match(n *dom.Node) (bool, error) {
	if v, ok := m.memo[n]; ok {
		return v, nil
	}
	ok, err := m.host.Matches(n, m.pred.selector)
	if err != nil {
		return false, err
	}
	if m.memo == nil {
		m.memo = make(map[*dom.Node]bool)
	}
	m.memo[n] = ok
	return ok, nil
}
