package htmlcore_test

import (
	"strings"
	"testing"

	htmlcore "github.com/crestfall/htmlcore"
	"github.com/crestfall/htmlcore/dom"
	"github.com/crestfall/htmlcore/parseerr"
	"github.com/stretchr/testify/require"
)

func childNamed(arena *dom.Arena, id dom.NodeID, name string) dom.NodeID {
	for _, c := range arena.Children(id) {
		if arena.Kind(c) == dom.KindElement && arena.Get(c).TagName == name {
			return c
		}
	}
	return dom.NoNode
}

func TestParse_SimpleDocument(t *testing.T) {
	doc, err := htmlcore.Parse("<!DOCTYPE html><html><head><title>T</title></head><body><p>hi</p></body></html>")
	require.NoError(t, err)
	require.Equal(t, "T", doc.Title())

	p := childNamed(doc.Arena, doc.Body(), "p")
	require.NotEqual(t, dom.NoNode, p)
	require.Equal(t, "hi", doc.Arena.Get(doc.Arena.Children(p)[0]).Data)
}

func TestParse_RecoversFromMisnestedTagsByDefault(t *testing.T) {
	doc, err := htmlcore.Parse("<body>a<b>b<i>c</b>d</i>e")
	require.NoError(t, err)

	body := doc.Body()
	children := doc.Arena.Children(body)
	require.Len(t, children, 4)
}

func TestParse_WithStrictModeReturnsFirstError(t *testing.T) {
	_, err := htmlcore.Parse("<p><p></p>", htmlcore.WithStrictMode())
	require.Error(t, err)
}

func TestParse_WithCollectErrorsReturnsAllAndStillBuildsTree(t *testing.T) {
	doc, err := htmlcore.Parse("<p><p></p>", htmlcore.WithCollectErrors())
	require.Error(t, err)

	var multi parseerr.Errors
	require.ErrorAs(t, err, &multi)
	require.NotEmpty(t, multi)

	body := doc.Body()
	require.Len(t, doc.Arena.Children(body), 2)
}

func TestParse_WithErrorSinkObservesErrorsWithoutFailingParse(t *testing.T) {
	sink := parseerr.NewCollectingSink()
	doc, err := htmlcore.Parse("<p><p></p>", htmlcore.WithErrorSink(sink))
	require.NoError(t, err)
	require.NotEmpty(t, sink.Errors)
	require.NotEqual(t, dom.NoNode, doc.Body())
}

func TestParse_NoErrorsOnWellFormedInput(t *testing.T) {
	sink := parseerr.NewCollectingSink()
	_, err := htmlcore.Parse("<!DOCTYPE html><html><head></head><body></body></html>", htmlcore.WithErrorSink(sink), htmlcore.WithStrictMode())
	require.NoError(t, err)
	require.Empty(t, sink.Errors)
}

func TestParseReader_MatchesParse(t *testing.T) {
	const src = "<body><p>via reader</p></body>"
	doc, err := htmlcore.ParseReader(strings.NewReader(src))
	require.NoError(t, err)

	p := childNamed(doc.Arena, doc.Body(), "p")
	require.NotEqual(t, dom.NoNode, p)
}

func TestParseFragment_InnerHTMLStyleIntoTableContext(t *testing.T) {
	nodes, arena, err := htmlcore.ParseFragment("<tr><td>x</td></tr>", "tbody")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Equal(t, "tr", arena.Get(nodes[0]).TagName)

	td := childNamed(arena, nodes[0], "td")
	require.NotEqual(t, dom.NoNode, td)
	require.Equal(t, "x", arena.Get(arena.Children(td)[0]).Data)
}

func TestParseFragment_PlainTextContext(t *testing.T) {
	nodes, arena, err := htmlcore.ParseFragment("hello <b>world</b>", "div")
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.Equal(t, dom.KindText, arena.Kind(nodes[0]))
	require.Equal(t, "hello ", arena.Get(nodes[0]).Data)
	require.Equal(t, "b", arena.Get(nodes[1]).TagName)
}

func TestDump_ProducesIndentedStructuralOutline(t *testing.T) {
	doc, err := htmlcore.Parse("<html><body><p>x</p></body></html>")
	require.NoError(t, err)

	var buf strings.Builder
	htmlcore.Dump(&buf, doc)
	out := buf.String()

	require.Contains(t, out, "Document")
	require.Contains(t, out, "<html>")
	require.Contains(t, out, "<body>")
	require.Contains(t, out, "<p>")
	require.Contains(t, out, "#text")
}
