package treebuilder_test

import (
	"testing"

	"github.com/crestfall/htmlcore/dom"
	"github.com/crestfall/htmlcore/htmltok"
	"github.com/crestfall/htmlcore/parseerr"
	"github.com/crestfall/htmlcore/treebuilder"
	"github.com/stretchr/testify/require"
)

// parse drives a Builder to completion the way htmlcore.Parse does,
// returning the built document and whatever the sink collected.
func parse(t *testing.T, source string) (*dom.Document, *parseerr.CollectingSink) {
	t.Helper()
	sink := parseerr.NewCollectingSink()
	tok := htmltok.NewWithOptions(source, htmltok.Options{}, sink)
	b := treebuilder.New(tok, sink)
	for {
		tok.SetAllowCDATA(b.AllowCDATA())
		tt := tok.Next()
		b.ProcessToken(tt)
		if tt.Type == htmltok.EOFToken {
			break
		}
	}
	return b.Document(), sink
}

// childNamed returns the first child of id with the given tag name, or
// dom.NoNode.
func childNamed(arena *dom.Arena, id dom.NodeID, name string) dom.NodeID {
	for _, c := range arena.Children(id) {
		if arena.Kind(c) == dom.KindElement && arena.Get(c).TagName == name {
			return c
		}
	}
	return dom.NoNode
}

func TestBuilder_SimpleDocument(t *testing.T) {
	doc, _ := parse(t, "<html><head></head><body><p>Hello</p></body></html>")

	html := doc.DocumentElement()
	require.NotEqual(t, dom.NoNode, html)
	require.Equal(t, "html", doc.Arena.Get(html).TagName)

	body := doc.Body()
	require.NotEqual(t, dom.NoNode, body)

	p := childNamed(doc.Arena, body, "p")
	require.NotEqual(t, dom.NoNode, p)
	require.Len(t, doc.Arena.Children(p), 1)
	text := doc.Arena.Children(p)[0]
	require.Equal(t, dom.KindText, doc.Arena.Kind(text))
	require.Equal(t, "Hello", doc.Arena.Get(text).Data)
}

func TestBuilder_ImpliedParagraphClose(t *testing.T) {
	doc, _ := parse(t, "<!DOCTYPE html><html><body><h1>Title</h1><p>para one<p>para two</body></html>")

	require.NotEqual(t, dom.NoNode, doc.Doctype())
	require.Equal(t, "html", doc.Arena.Get(doc.Doctype()).Name)

	body := doc.Body()
	children := doc.Arena.Children(body)
	require.Len(t, children, 3)
	require.Equal(t, "h1", doc.Arena.Get(children[0]).TagName)
	require.Equal(t, "p", doc.Arena.Get(children[1]).TagName)
	require.Equal(t, "p", doc.Arena.Get(children[2]).TagName)

	p1Text := doc.Arena.Children(children[1])[0]
	require.Equal(t, "para one", doc.Arena.Get(p1Text).Data)
	p2Text := doc.Arena.Children(children[2])[0]
	require.Equal(t, "para two", doc.Arena.Get(p2Text).Data)
}

func TestBuilder_TwoConsecutivePEmptiesEach(t *testing.T) {
	doc, sink := parse(t, "<p><p></p>")

	body := doc.Body()
	children := doc.Arena.Children(body)
	require.Len(t, children, 2)
	require.Equal(t, "p", doc.Arena.Get(children[0]).TagName)
	require.Equal(t, "p", doc.Arena.Get(children[1]).TagName)
	require.Empty(t, doc.Arena.Children(children[0]))
	require.Empty(t, doc.Arena.Children(children[1]))
	require.NotEmpty(t, sink.Errors)
}

func TestBuilder_TitleDecodesEntity(t *testing.T) {
	doc, _ := parse(t, "<html><head><title>A &amp; B</title></head><body></body></html>")
	require.Equal(t, "A & B", doc.Title())
}

func TestBuilder_TrailingCommentAndLateParagraph(t *testing.T) {
	doc, sink := parse(t, "<html><body></body></html><!-- trailing --><p>late")

	// The trailing comment is attached as a child of the Document itself
	// (the "after after body" insertion mode's comment rule), not <html>.
	var sawComment bool
	for _, c := range doc.Arena.Children(doc.ID) {
		if doc.Arena.Kind(c) == dom.KindComment {
			require.Equal(t, " trailing ", doc.Arena.Get(c).Data)
			sawComment = true
		}
	}
	require.True(t, sawComment)

	// <p>late reopens InBody, attaching under <body>.
	body := doc.Body()
	p := childNamed(doc.Arena, body, "p")
	require.NotEqual(t, dom.NoNode, p)
	require.Equal(t, "late", doc.Arena.Get(doc.Arena.Children(p)[0]).Data)
	require.NotEmpty(t, sink.Errors)
}

func TestBuilder_QuirksModeFromDoctype(t *testing.T) {
	doc, _ := parse(t, `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 3.2//EN"><html></html>`)
	require.Equal(t, dom.Quirks, doc.Arena.Get(doc.ID).QuirksMode)
}

func TestBuilder_NoQuirksForHTML5Doctype(t *testing.T) {
	doc, _ := parse(t, "<!DOCTYPE html><html></html>")
	require.Equal(t, dom.NoQuirks, doc.Arena.Get(doc.ID).QuirksMode)
}
