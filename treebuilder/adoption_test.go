package treebuilder_test

import (
	"testing"

	"github.com/crestfall/htmlcore/dom"
	"github.com/stretchr/testify/require"
)

// TestAdoptionAgency_BoldItalicMismatch is spec.md §8 scenario 3: the
// adoption agency algorithm runs on </b>, splitting the misnested
// <b>/<i> pair: body holds a b (with the first i inside it) and a second i.
func TestAdoptionAgency_BoldItalicMismatch(t *testing.T) {
	doc, _ := parse(t, "<body>a<b>b<i>c</b>d</i>e")

	body := doc.Body()
	children := doc.Arena.Children(body)

	var tags []string
	for _, c := range children {
		if doc.Arena.Kind(c) == dom.KindText {
			tags = append(tags, "#text:"+doc.Arena.Get(c).Data)
		} else {
			tags = append(tags, doc.Arena.Get(c).TagName)
		}
	}

	require.Equal(t, []string{"#text:a", "b", "i", "#text:e"}, tags)

	bElem := children[1]
	require.Equal(t, "b", doc.Arena.Get(bElem).TagName)
	bText := doc.Arena.Children(bElem)[0]
	require.Equal(t, "b", doc.Arena.Get(bText).Data)

	// The original <i>, holding "c", stays inside the <b>; the <i> that
	// holds "d" is the clone made when formatting is reconstructed.
	var foundC bool
	for _, c := range doc.Arena.Children(bElem) {
		if doc.Arena.Kind(c) == dom.KindElement && doc.Arena.Get(c).TagName == "i" {
			text := doc.Arena.Children(c)[0]
			require.Equal(t, "c", doc.Arena.Get(text).Data)
			foundC = true
		}
	}
	require.True(t, foundC)

	secondI := children[2]
	require.Equal(t, "i", doc.Arena.Get(secondI).TagName)
	dText := doc.Arena.Children(secondI)[0]
	require.Equal(t, "d", doc.Arena.Get(dText).Data)
}

func TestAdoptionAgency_NoFurthestBlockJustPops(t *testing.T) {
	doc, _ := parse(t, "<body><b>bold</b>after")

	body := doc.Body()
	children := doc.Arena.Children(body)
	require.Len(t, children, 2)
	require.Equal(t, "b", doc.Arena.Get(children[0]).TagName)
	require.Equal(t, "bold", doc.Arena.Get(doc.Arena.Children(children[0])[0]).Data)
	require.Equal(t, "after", doc.Arena.Get(children[1]).Data)
}
