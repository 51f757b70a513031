package traverse

import (
	"testing"

	"github.com/heathj/gozebra/dom"
	"github.com/heathj/gozebra/selector"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHost reads a dom tree and counts the calls it receives.
type testHost struct {
	calls   int
	matches int
}

func (h *testHost) Matches(n *dom.Node, s string) (bool, error) {
	h.calls++
	h.matches++
	sel, err := selector.Compile(s)
	if err != nil {
		return false, err
	}
	return sel.Match(n), nil
}

func (h *testHost) ParentOf(n *dom.Node) (*dom.Node, bool) {
	h.calls++
	return n.ParentElement()
}

func (h *testHost) ChildrenOf(n *dom.Node) []*dom.Node {
	h.calls++
	return n.Children()
}

func (h *testHost) SiblingsOf(n *dom.Node) []*dom.Node {
	h.calls++
	return n.ElementSiblings()
}

func (h *testHost) NextOf(n *dom.Node) (*dom.Node, bool) {
	h.calls++
	return n.NextElementSibling()
}

func (h *testHost) PrevOf(n *dom.Node) (*dom.Node, bool) {
	h.calls++
	return n.PreviousElementSibling()
}

var allSpecs = []Spec{Self, Children, Siblings, Parent, Parents, Next, Prev, Descendants, Closest}

// tree builds:
//
//	<body id=R>
//	  <div id=P class=box>
//	    <span id=A class=x><b id=AB class=x></b></span>
//	    "text"
//	    <span id=B></span>
//	    <span id=C class=x></span>
//	  </div>
//	  <div id=Q class=box><i id=D></i></div>
//	</body>
func tree(t *testing.T) map[string]*dom.Node {
	t.Helper()
	doc := dom.NewDocument()
	nodes := map[string]*dom.Node{}
	mk := func(parent *dom.Node, tag, id, class string) *dom.Node {
		n := dom.NewElement(doc, tag)
		n.SetAttribute("id", id)
		if class != "" {
			n.SetAttribute("class", class)
		}
		parent.AppendChild(n)
		nodes[id] = n
		return n
	}
	r := mk(doc, "body", "R", "")
	p := mk(r, "div", "P", "box")
	a := mk(p, "span", "A", "x")
	mk(a, "b", "AB", "x")
	p.AppendChild(dom.NewTextNode(doc, "text"))
	mk(p, "span", "B", "")
	mk(p, "span", "C", "x")
	q := mk(r, "div", "Q", "box")
	mk(q, "i", "D", "")
	return nodes
}

func set(nodes map[string]*dom.Node, ids ...string) ElementSet {
	var handles []*dom.Node
	for _, id := range ids {
		handles = append(handles, nodes[id])
	}
	return Wrap(handles...)
}

func idsOf(s ElementSet) []string {
	out := []string{}
	for _, n := range s.Nodes() {
		out = append(out, n.ID())
	}
	return out
}

func TestTraverse(t *testing.T) {
	tests := []struct {
		name     string
		source   []string
		spec     Spec
		pred     Predicate
		expected []string
	}{
		{"children filtered", []string{"P"}, Children, Match(".x"), []string{"A", "C"}},
		{"children unfiltered", []string{"P"}, Children, None, []string{"A", "B", "C"}},
		{"children order follows source", []string{"Q", "P"}, Children, None, []string{"D", "A", "B", "C"}},
		{"children of leaf", []string{"B"}, Children, None, []string{}},
		{"siblings exclude self", []string{"A"}, Siblings, None, []string{"B", "C"}},
		{"siblings dedup across sources", []string{"A", "C"}, Siblings, None, []string{"B", "C", "A"}},
		{"siblings of only child", []string{"D"}, Siblings, None, []string{}},
		{"siblings filtered", []string{"B"}, Siblings, Match("span.x"), []string{"A", "C"}},
		{"parent", []string{"A", "B", "D"}, Parent, None, []string{"P", "Q"}},
		{"parent of root element", []string{"R"}, Parent, None, []string{}},
		{"parent filtered", []string{"A", "D"}, Parent, Match("#Q"), []string{"Q"}},
		{"parents nearest first", []string{"AB"}, Parents, None, []string{"A", "P", "R"}},
		{"parents dedup", []string{"A", "D"}, Parents, None, []string{"P", "R", "Q"}},
		{"parents filtered", []string{"AB"}, Parents, Match("div, body"), []string{"P", "R"}},
		{"next skips text", []string{"A"}, Next, None, []string{"B"}},
		{"next of last", []string{"C"}, Next, None, []string{}},
		{"prev", []string{"B", "C"}, Prev, None, []string{"A", "B"}},
		{"descendants tree order", []string{"P"}, Descendants, None, []string{"A", "AB", "B", "C"}},
		{"descendants dedup nested sources", []string{"A", "P"}, Descendants, None, []string{"AB", "A", "B", "C"}},
		{"descendants filtered", []string{"R"}, Descendants, Match(".x"), []string{"A", "AB", "C"}},
		{"self filter", []string{"A", "B", "C", "D"}, Self, Match(".x"), []string{"A", "C"}},
		{"self unfiltered", []string{"B", "A"}, Self, None, []string{"B", "A"}},
		{"closest includes self", []string{"AB"}, Closest, Match(".x"), []string{"AB"}},
		{"closest walks up", []string{"AB"}, Closest, Match("div"), []string{"P"}},
		{"closest shared ancestor", []string{"A", "B", "D"}, Closest, Match(".box"), []string{"P", "Q"}},
		{"closest no match", []string{"A"}, Closest, Match("section"), []string{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			nodes := tree(t)
			e := New(&testHost{})
			got, err := e.Traverse(set(nodes, tt.source...), tt.spec, tt.pred)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, idsOf(got))
		})
	}
}

func TestOrderInvariantForChildren(t *testing.T) {
	nodes := tree(t)
	e := New(&testHost{})
	a, p := nodes["A"], nodes["P"]

	got, err := e.Traverse(Wrap(a, p), Children, None)
	require.NoError(t, err)

	concat := append(append([]*dom.Node{}, a.Children()...), p.Children()...)
	assert.Equal(t, Wrap(concat...).Nodes(), got.Nodes())
}

func TestResultsNeverContainDuplicates(t *testing.T) {
	nodes := tree(t)
	e := New(&testHost{})
	source := set(nodes, "R", "P", "A", "AB", "B", "C", "Q", "D")
	for _, spec := range allSpecs {
		for _, pred := range []Predicate{Match("*"), Match(".x")} {
			got, err := e.Traverse(source, spec, pred)
			require.NoError(t, err)
			seen := map[*dom.Node]bool{}
			for _, n := range got.Nodes() {
				assert.False(t, seen[n], "%s %s returned %s twice", spec, pred, n.ID())
				seen[n] = true
			}
		}
	}
}

func TestFilterCorrectness(t *testing.T) {
	nodes := tree(t)
	e := New(&testHost{})
	sel := selector.MustCompile(".x")
	source := set(nodes, "R", "P", "A", "B", "Q")
	for _, spec := range allSpecs {
		got, err := e.Traverse(source, spec, Match(".x"))
		require.NoError(t, err)
		for _, n := range got.Nodes() {
			assert.True(t, sel.Match(n), "%s returned %s", spec, n.ID())
		}
	}
}

func TestEmptySourceShortCircuits(t *testing.T) {
	for _, spec := range allSpecs {
		for _, pred := range []Predicate{None, Match(".x")} {
			if spec == Closest && pred == None {
				continue
			}
			h := &testHost{}
			got, err := New(h).Traverse(ElementSet{}, spec, pred)
			require.NoError(t, err)
			assert.True(t, got.Empty())
			assert.Zero(t, h.calls, "%s consulted the host", spec)
		}
	}
}

func TestClosestRequiresPredicate(t *testing.T) {
	nodes := tree(t)
	e := New(&testHost{})
	for _, source := range []ElementSet{{}, set(nodes, "A"), set(nodes, "A", "D")} {
		got, err := e.Traverse(source, Closest, None)
		assert.True(t, errors.Is(err, ErrInvalidSpec))
		assert.True(t, got.Empty())
	}
	_, err := e.Traverse(set(nodes, "A"), Closest, Match(""))
	assert.True(t, errors.Is(err, ErrInvalidSpec))
}

func TestZeroSpecIsInvalid(t *testing.T) {
	nodes := tree(t)
	_, err := New(&testHost{}).Traverse(set(nodes, "A"), Spec{}, None)
	assert.True(t, errors.Is(err, ErrInvalidSpec))
}

func TestSelectorErrorsPropagate(t *testing.T) {
	nodes := tree(t)
	e := New(&testHost{})
	for _, spec := range []Spec{Children, Closest, Self} {
		got, err := e.Traverse(set(nodes, "P"), spec, Match("span["))
		require.Error(t, err)
		assert.True(t, got.Empty())

		var se *selector.SyntaxError
		require.True(t, errors.As(err, &se), "%s: %v", spec, err)
		assert.Same(t, se, errors.Cause(err))
		assert.Equal(t, "span[", se.Selector)
	}
}

func TestPredicateMatchedOncePerCandidate(t *testing.T) {
	nodes := tree(t)
	h := &testHost{}
	// A, B and C each list two siblings: 6 candidates, 3 distinct
	_, err := New(h).Traverse(set(nodes, "A", "B", "C"), Siblings, Match("span"))
	require.NoError(t, err)
	assert.Equal(t, 3, h.matches)
}

func TestTraverseIsTracedAtDebug(t *testing.T) {
	nodes := tree(t)
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	e := New(&testHost{}, WithLogger(logger))
	_, err := e.Traverse(set(nodes, "P"), Children, Match(".x"))
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "children", entry.Data["mode"])
	assert.Equal(t, ".x", entry.Data["selector"])
	assert.Equal(t, 1, entry.Data["source"])
	assert.Equal(t, 2, entry.Data["result"])

	hook.Reset()
	_, err = e.Traverse(set(nodes, "P"), Closest, None)
	require.Error(t, err)
	assert.Empty(t, hook.AllEntries())
}

func TestSpecAndPredicateStrings(t *testing.T) {
	assert.Equal(t, "closest", Closest.String())
	assert.Equal(t, "invalid", Spec{}.String())
	assert.Equal(t, "<none>", None.String())
	s, ok := Match("a").Selector()
	assert.True(t, ok)
	assert.Equal(t, "a", s)
	_, ok = Match("").Selector()
	assert.False(t, ok)
}
