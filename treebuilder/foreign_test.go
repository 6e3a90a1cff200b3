package treebuilder_test

import (
	"testing"

	"github.com/crestfall/htmlcore/dom"
	"github.com/crestfall/htmlcore/internal/htmlspec"
	"github.com/stretchr/testify/require"
)

func TestForeign_SVGElementGetsNamespace(t *testing.T) {
	doc, _ := parse(t, "<body><svg><circle r=\"1\"></circle></svg></body>")

	body := doc.Body()
	svg := childNamed(doc.Arena, body, "svg")
	require.NotEqual(t, dom.NoNode, svg)
	require.Equal(t, htmlspec.NSSVG, doc.Arena.Get(svg).Namespace)

	circle := doc.Arena.Children(svg)[0]
	require.Equal(t, "circle", doc.Arena.Get(circle).TagName)
	require.Equal(t, htmlspec.NSSVG, doc.Arena.Get(circle).Namespace)
}

func TestForeign_SVGTagNameCaseFixup(t *testing.T) {
	doc, _ := parse(t, "<body><svg><foreignobject></foreignobject></svg></body>")

	body := doc.Body()
	svg := childNamed(doc.Arena, body, "svg")
	require.NotEqual(t, dom.NoNode, svg)
	fo := doc.Arena.Children(svg)[0]
	require.Equal(t, "foreignObject", doc.Arena.Get(fo).TagName)
}

func TestForeign_BreakoutElementReturnsToHTML(t *testing.T) {
	doc, _ := parse(t, "<body><svg><b>bold</b></svg>after</body>")

	body := doc.Body()
	// <b> is a breakout element: it closes out of foreign content and is
	// inserted as an HTML element, a sibling of <svg> rather than its child.
	b := childNamed(doc.Arena, body, "b")
	require.NotEqual(t, dom.NoNode, b)
	require.Equal(t, "", doc.Arena.Get(b).Namespace)
}
