package dom

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree returns <div id=P> with children <span id=A class=x>, "text",
// <span id=B>, <!-- c -->, <span id=C class=x>.
func buildTree(t *testing.T) (doc, p, a, b, c *Node) {
	t.Helper()
	doc = NewDocument()
	p = NewElement(doc, "div")
	p.SetAttribute("id", "P")
	doc.AppendChild(p)

	a = NewElement(doc, "span")
	a.SetAttribute("id", "A")
	a.SetAttribute("class", "x")
	b = NewElement(doc, "span")
	b.SetAttribute("id", "B")
	c = NewElement(doc, "span")
	c.SetAttribute("id", "C")
	c.SetAttribute("class", "x")

	p.AppendChild(a)
	p.AppendChild(NewTextNode(doc, "text"))
	p.AppendChild(b)
	p.AppendChild(NewComment(doc, "c"))
	p.AppendChild(c)
	return doc, p, a, b, c
}

func TestChildrenSkipsNonElements(t *testing.T) {
	_, p, a, b, c := buildTree(t)
	assert.Equal(t, NodeList{a, b, c}, p.Children())
	assert.Len(t, p.ChildNodes, 5)
}

func TestElementSiblingsExcludesSelf(t *testing.T) {
	_, _, a, b, c := buildTree(t)
	assert.Equal(t, NodeList{b, c}, a.ElementSiblings())
	assert.Equal(t, NodeList{a, c}, b.ElementSiblings())

	lone := NewElement(nil, "p")
	assert.Empty(t, lone.ElementSiblings())
}

func TestParentElement(t *testing.T) {
	doc, p, a, _, _ := buildTree(t)

	parent, ok := a.ParentElement()
	require.True(t, ok)
	assert.Same(t, p, parent)

	// the document is not an element
	_, ok = p.ParentElement()
	assert.False(t, ok)
	_, ok = doc.ParentElement()
	assert.False(t, ok)
}

func TestElementSiblingNavigation(t *testing.T) {
	_, _, a, b, c := buildTree(t)

	next, ok := a.NextElementSibling()
	require.True(t, ok)
	assert.Same(t, b, next)

	prev, ok := c.PreviousElementSibling()
	require.True(t, ok)
	assert.Same(t, b, prev)

	_, ok = c.NextElementSibling()
	assert.False(t, ok)
	_, ok = a.PreviousElementSibling()
	assert.False(t, ok)
}

func TestDescendantsTreeOrder(t *testing.T) {
	doc, p, a, b, c := buildTree(t)
	em := NewElement(doc, "em")
	a.AppendChild(em)

	assert.Equal(t, NodeList{p, a, em, b, c}, doc.Descendants())
	assert.True(t, p.Contains(em))
	assert.False(t, b.Contains(em))
	assert.Same(t, doc, em.GetRootNode())
}

func TestInsertBefore(t *testing.T) {
	doc, p, a, b, _ := buildTree(t)
	d := NewElement(doc, "i")

	_, err := p.InsertBefore(d, b)
	require.NoError(t, err)
	assert.Same(t, d, b.PreviousSibling)
	assert.Same(t, b, d.NextSibling)
	assert.Equal(t, 2, p.ChildNodes.Contains(d))

	_, err = p.InsertBefore(NewElement(doc, "u"), a)
	require.NoError(t, err)
	assert.Equal(t, "u", p.FirstChild.NodeName)
	assert.Nil(t, p.FirstChild.PreviousSibling)

	_, err = a.InsertBefore(NewElement(doc, "q"), b)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRemoveChildRelinksSiblings(t *testing.T) {
	_, p, a, b, c := buildTree(t)

	removed, err := p.RemoveChild(b)
	require.NoError(t, err)
	assert.Same(t, b, removed)
	assert.Nil(t, b.ParentNode)
	assert.Equal(t, NodeList{a, c}, p.Children())

	_, err = p.RemoveChild(b)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = p.RemoveChild(c)
	require.NoError(t, err)
	next, ok := a.NextElementSibling()
	assert.False(t, ok)
	assert.Nil(t, next)
	assert.Equal(t, TextNode, a.NextSibling.NodeType)
	assert.Equal(t, CommentNode, p.LastChild.NodeType)
}

func TestAppendChildMovesNode(t *testing.T) {
	doc, p, a, b, c := buildTree(t)
	other := NewElement(doc, "section")
	doc.AppendChild(other)

	other.AppendChild(a)
	assert.Equal(t, NodeList{b, c}, p.Children())
	assert.Equal(t, NodeList{a}, other.Children())
	assert.Nil(t, a.PreviousSibling)
}

func TestAppendFragmentMovesChildren(t *testing.T) {
	doc := NewDocument()
	frag := NewDocumentFragment(doc)
	x, y, host := NewElement(doc, "b"), NewElement(doc, "i"), NewElement(doc, "p")
	frag.AppendChild(x)
	frag.AppendChild(y)
	doc.AppendChild(host)

	_, err := host.AppendChild(frag)
	require.NoError(t, err)
	assert.Equal(t, NodeList{x, y}, host.Children())
	assert.False(t, frag.HasChildNodes())
}

func TestInsertionCannotCreateCycles(t *testing.T) {
	doc, p, a, b, _ := buildTree(t)
	em := NewElement(doc, "em")
	a.AppendChild(em)

	tests := []struct {
		name   string
		insert func() (*Node, error)
	}{
		{"append to self", func() (*Node, error) { return a.AppendChild(a) }},
		{"append ancestor to descendant", func() (*Node, error) { return em.AppendChild(p) }},
		{"insert ancestor before sibling", func() (*Node, error) { return p.InsertBefore(p, b) }},
		{"insert root below itself", func() (*Node, error) { return em.InsertBefore(doc, nil) }},
		{"append document", func() (*Node, error) { return NewElement(nil, "div").AppendChild(NewDocument()) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.insert()
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, ErrHierarchyRequest), "got %v", err)
		})
	}

	// the tree is untouched
	assert.Same(t, p, a.ParentNode)
	assert.Same(t, a, em.ParentNode)
	assert.Equal(t, NodeList{a, b}, p.Children()[:2])
	assert.Len(t, p.Descendants(), 4)
}

func TestString(t *testing.T) {
	doc, _, a, _, _ := buildTree(t)
	a.AppendChild(NewTextNode(doc, "hi"))
	expected := `#document
| <div>
|   id="P"
|   <span>
|     class="x"
|     id="A"
|     "hi"
|   "text"
|   <span>
|     id="B"
|   <!-- c -->
|   <span>
|     class="x"
|     id="C"`
	assert.Equal(t, expected, doc.String())
}
