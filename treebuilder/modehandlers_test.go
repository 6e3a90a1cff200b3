package treebuilder_test

import (
	"testing"

	"github.com/crestfall/htmlcore/dom"
	"github.com/stretchr/testify/require"
)

func TestModeHandlers_TableStructureIsBuilt(t *testing.T) {
	doc, _ := parse(t, "<table><tr><td>a</td><td>b</td></tr></table>")

	body := doc.Body()
	table := childNamed(doc.Arena, body, "table")
	require.NotEqual(t, dom.NoNode, table)

	tbody := childNamed(doc.Arena, table, "tbody")
	require.NotEqual(t, dom.NoNode, tbody, "tr implies a tbody wrapper")

	tr := childNamed(doc.Arena, tbody, "tr")
	require.NotEqual(t, dom.NoNode, tr)

	cells := doc.Arena.Children(tr)
	require.Len(t, cells, 2)
	require.Equal(t, "td", doc.Arena.Get(cells[0]).TagName)
	require.Equal(t, "a", doc.Arena.Get(doc.Arena.Children(cells[0])[0]).Data)
	require.Equal(t, "td", doc.Arena.Get(cells[1]).TagName)
	require.Equal(t, "b", doc.Arena.Get(doc.Arena.Children(cells[1])[0]).Data)
}

// TestModeHandlers_FosterParentedText is spec.md's foster-parenting case:
// text appearing directly inside <table> (not inside a cell) is relocated
// to just before the table rather than becoming a table child.
func TestModeHandlers_FosterParentedText(t *testing.T) {
	doc, sink := parse(t, "<body><table>stray</table></body>")

	body := doc.Body()
	children := doc.Arena.Children(body)

	var sawTextBeforeTable, sawTable bool
	for _, c := range children {
		if doc.Arena.Kind(c) == dom.KindText && doc.Arena.Get(c).Data == "stray" {
			require.False(t, sawTable, "foster-parented text must land before the table, not inside it")
			sawTextBeforeTable = true
		}
		if doc.Arena.Kind(c) == dom.KindElement && doc.Arena.Get(c).TagName == "table" {
			sawTable = true
		}
	}
	require.True(t, sawTextBeforeTable)
	require.True(t, sawTable)

	table := childNamed(doc.Arena, body, "table")
	for _, c := range doc.Arena.Children(table) {
		require.NotEqual(t, dom.KindText, doc.Arena.Kind(c), "table itself must not hold the stray text")
	}
	require.NotEmpty(t, sink.Errors)
}

func TestModeHandlers_CaptionAndCellsCloseImplicitly(t *testing.T) {
	doc, _ := parse(t, "<table><caption>Cap</caption><tr><th>H</th></tr></table>")

	body := doc.Body()
	table := childNamed(doc.Arena, body, "table")
	caption := childNamed(doc.Arena, table, "caption")
	require.NotEqual(t, dom.NoNode, caption)
	require.Equal(t, "Cap", doc.Arena.Get(doc.Arena.Children(caption)[0]).Data)

	tbody := childNamed(doc.Arena, table, "tbody")
	require.NotEqual(t, dom.NoNode, tbody)
	tr := childNamed(doc.Arena, tbody, "tr")
	th := childNamed(doc.Arena, tr, "th")
	require.NotEqual(t, dom.NoNode, th)
}

func TestModeHandlers_SelectOptionsCollapseSiblingOption(t *testing.T) {
	doc, _ := parse(t, "<select><option>One<option>Two</select>")

	body := doc.Body()
	sel := childNamed(doc.Arena, body, "select")
	require.NotEqual(t, dom.NoNode, sel)

	opts := doc.Arena.Children(sel)
	require.Len(t, opts, 2)
	require.Equal(t, "option", doc.Arena.Get(opts[0]).TagName)
	require.Equal(t, "One", doc.Arena.Get(doc.Arena.Children(opts[0])[0]).Data)
	require.Equal(t, "option", doc.Arena.Get(opts[1]).TagName)
	require.Equal(t, "Two", doc.Arena.Get(doc.Arena.Children(opts[1])[0]).Data)
}

// TestModeHandlers_SelectInTableRejectsTableTags covers processInSelectInTable:
// a <table> start tag seen while a <select> is open inside a table cell pops
// back out of the select rather than nesting.
func TestModeHandlers_SelectInTableRejectsTableTags(t *testing.T) {
	doc, sink := parse(t, "<table><tr><td><select><option>x<table></table></td></tr></table>")

	body := doc.Body()
	outer := childNamed(doc.Arena, body, "table")
	require.NotEqual(t, dom.NoNode, outer)
	tbody := childNamed(doc.Arena, outer, "tbody")
	tr := childNamed(doc.Arena, tbody, "tr")
	td := childNamed(doc.Arena, tr, "td")

	sel := childNamed(doc.Arena, td, "select")
	require.NotEqual(t, dom.NoNode, sel)

	inner := childNamed(doc.Arena, td, "table")
	require.NotEqual(t, dom.NoNode, inner, "the nested table tag reopens table parsing rather than nesting in select")
	require.NotEmpty(t, sink.Errors)
}

func TestModeHandlers_TemplateContentUsesInBodyRules(t *testing.T) {
	doc, _ := parse(t, "<template><p>inside</p></template>")

	head := doc.Head()
	tmpl := childNamed(doc.Arena, head, "template")
	require.NotEqual(t, dom.NoNode, tmpl)

	p := childNamed(doc.Arena, doc.Arena.Get(tmpl).TemplateContent, "p")
	require.NotEqual(t, dom.NoNode, p)
	require.Equal(t, "inside", doc.Arena.Get(doc.Arena.Children(p)[0]).Data)
}
