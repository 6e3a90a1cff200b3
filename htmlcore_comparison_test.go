package htmlcore_test

import (
	"strings"
	"testing"

	htmlcore "github.com/crestfall/htmlcore"
	"github.com/crestfall/htmlcore/dom"
	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// These tests cross-check htmlcore's tree construction against two
// reference parsers from the wider Go ecosystem. They exist to catch
// divergence from ordinary well-formed markup, not to replace the
// misnesting-focused treebuilder tests.
const comparisonSample = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Sample Page</title>
</head>
<body>
    <div id="main" class="container">
        <h1>Heading</h1>
        <p class="intro">Hello, <b>World</b>!</p>
        <ul>
            <li>Item 1</li>
            <li>Item 2</li>
            <li>Item 3</li>
        </ul>
    </div>
</body>
</html>`

func countElements(n *html.Node, tag string) int {
	count := 0
	if n.Type == html.ElementNode && n.Data == tag {
		count++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countElements(c, tag)
	}
	return count
}

func countArenaElements(arena *dom.Arena, id dom.NodeID, tag string) int {
	count := 0
	if arena.Kind(id) == dom.KindElement && arena.Get(id).TagName == tag {
		count++
	}
	for _, c := range arena.Children(id) {
		count += countArenaElements(arena, c, tag)
	}
	return count
}

func TestComparison_ElementCountsMatchNetHTML(t *testing.T) {
	doc, err := htmlcore.Parse(comparisonSample)
	require.NoError(t, err)

	refDoc, err := html.Parse(strings.NewReader(comparisonSample))
	require.NoError(t, err)

	for _, tag := range []string{"html", "head", "body", "div", "h1", "p", "b", "ul", "li", "title", "meta"} {
		want := countElements(refDoc, tag)
		got := countArenaElements(doc.Arena, doc.ID, tag)
		require.Equalf(t, want, got, "tag %q count mismatch", tag)
	}
}

func TestComparison_TitleMatchesGoquery(t *testing.T) {
	doc, err := htmlcore.Parse(comparisonSample)
	require.NoError(t, err)

	gq, err := goquery.NewDocumentFromReader(strings.NewReader(comparisonSample))
	require.NoError(t, err)

	require.Equal(t, strings.TrimSpace(gq.Find("title").Text()), doc.Title())
}

func TestComparison_ListItemTextMatchesGoquery(t *testing.T) {
	doc, err := htmlcore.Parse(comparisonSample)
	require.NoError(t, err)

	gq, err := goquery.NewDocumentFromReader(strings.NewReader(comparisonSample))
	require.NoError(t, err)

	var want []string
	gq.Find("li").Each(func(_ int, s *goquery.Selection) {
		want = append(want, strings.TrimSpace(s.Text()))
	})

	body := doc.Body()
	ul := childNamed(doc.Arena, body, "div")
	ul = childNamed(doc.Arena, ul, "ul")
	require.NotEqual(t, dom.NoNode, ul)

	var got []string
	for _, li := range doc.Arena.Children(ul) {
		if doc.Arena.Kind(li) != dom.KindElement {
			continue
		}
		text := doc.Arena.Children(li)[0]
		got = append(got, doc.Arena.Get(text).Data)
	}

	require.Equal(t, want, got)
}

func TestComparison_MisnestedBoldRecoversLikeNetHTML(t *testing.T) {
	const src = "<body>a<b>b<i>c</b>d</i>e"

	doc, err := htmlcore.Parse(src)
	require.NoError(t, err)

	refDoc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)

	for _, tag := range []string{"b", "i"} {
		want := countElements(refDoc, tag)
		got := countArenaElements(doc.Arena, doc.ID, tag)
		require.Equalf(t, want, got, "tag %q count mismatch on misnested input", tag)
	}
}
