package dom_test

import (
	"testing"

	"github.com/crestfall/htmlcore/dom"
	"github.com/stretchr/testify/require"
)

// walk collects every node reachable from root in tree order, used by the
// structural invariant checks below.
func walk(arena *dom.Arena, root dom.NodeID, out *[]dom.NodeID) {
	*out = append(*out, root)
	for _, c := range arena.Children(root) {
		walk(arena, c, out)
	}
}

func TestAppendChild_ParentChildInvariant(t *testing.T) {
	arena := dom.NewArena()
	doc := arena.CreateDocument()
	html := arena.CreateElement(doc, "html")
	body := arena.CreateElement(doc, "body")
	p := arena.CreateElement(doc, "p")

	arena.AppendChild(doc, html)
	arena.AppendChild(html, body)
	arena.AppendChild(body, p)

	var nodes []dom.NodeID
	walk(arena, doc, &nodes)

	for _, n := range nodes {
		if n == doc {
			continue
		}
		parent := arena.Parent(n)
		require.NotEqual(t, dom.NoNode, parent, "node %d has no parent", n)
		found := false
		for _, sibling := range arena.Children(parent) {
			if sibling == n {
				require.False(t, found, "node %d appears more than once in parent %d's children", n, parent)
				found = true
			}
		}
		require.True(t, found, "node %d not found among parent %d's children", n, parent)
	}
}

func TestAppendChild_Reparents(t *testing.T) {
	arena := dom.NewArena()
	doc := arena.CreateDocument()
	a := arena.CreateElement(doc, "a")
	b := arena.CreateElement(doc, "b")
	child := arena.CreateElement(doc, "child")

	arena.AppendChild(a, child)
	require.Equal(t, a, arena.Parent(child))
	require.Equal(t, []dom.NodeID{child}, arena.Children(a))

	arena.AppendChild(b, child)
	require.Equal(t, b, arena.Parent(child))
	require.Empty(t, arena.Children(a))
	require.Equal(t, []dom.NodeID{child}, arena.Children(b))
}

func TestInsertBefore_FallsBackToAppendWhenReferenceAbsent(t *testing.T) {
	arena := dom.NewArena()
	doc := arena.CreateDocument()
	parent := arena.CreateElement(doc, "parent")
	child := arena.CreateElement(doc, "child")
	other := arena.CreateElement(doc, "other")

	arena.InsertBefore(parent, child, other)

	require.Equal(t, []dom.NodeID{child}, arena.Children(parent))
}

func TestAppendChild_PanicsOnCycle(t *testing.T) {
	arena := dom.NewArena()
	doc := arena.CreateDocument()
	a := arena.CreateElement(doc, "a")
	b := arena.CreateElement(doc, "b")
	arena.AppendChild(a, b)

	require.Panics(t, func() {
		arena.AppendChild(b, a)
	})
}

func TestDocument_HeadBodyTitle(t *testing.T) {
	arena := dom.NewArena()
	doc := dom.NewDocument(arena)
	html := arena.CreateElement(doc.ID, "html")
	head := arena.CreateElement(doc.ID, "head")
	title := arena.CreateElement(doc.ID, "title")
	titleText := arena.CreateText(doc.ID, "hello")
	body := arena.CreateElement(doc.ID, "body")

	arena.AppendChild(doc.ID, html)
	arena.AppendChild(html, head)
	arena.AppendChild(head, title)
	arena.AppendChild(title, titleText)
	arena.AppendChild(html, body)

	require.Equal(t, html, doc.DocumentElement())
	require.Equal(t, head, doc.Head())
	require.Equal(t, body, doc.Body())
	require.Equal(t, "hello", doc.Title())
}

func TestAttributes_SetGetOverwrite(t *testing.T) {
	attrs := dom.NewAttributes()
	attrs.Set("class", "a")
	attrs.Set("class", "b") // Set must not overwrite an existing attribute
	v, ok := attrs.Get("class")
	require.True(t, ok)
	require.Equal(t, "a", v)

	attrs.Overwrite("class", "c")
	v, ok = attrs.Get("class")
	require.True(t, ok)
	require.Equal(t, "c", v)

	require.True(t, attrs.Has("class"))
	attrs.Remove("class")
	require.False(t, attrs.Has("class"))
}
