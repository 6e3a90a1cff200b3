// Package serialize provides diagnostic rendering of a parsed tree: the
// indented structural dump spec.md §6 asks for, not full HTML5
// serialization. The teacher's serialize package additionally reconstructs
// HTML and Markdown text from a parsed tree (escaping rules per element
// category, self-closing-tag handling, inline-vs-block whitespace); this
// module carries only the tree-shape subset a diagnostic Dump needs, per
// SPEC_FULL.md §6's trim decision.
package serialize

import (
	"fmt"
	"io"
	"strings"

	"github.com/crestfall/htmlcore/dom"
)

// Dump writes an indented structural rendering of doc to w: one line per
// node, children indented two spaces deeper than their parent. HTML
// elements render as "<tag>" and SVG/MathML elements as
// "<namespace:tag>", text nodes as "#text <data>", comments as
// "<!-- data -->", and the DOCTYPE (if present) as "<!DOCTYPE name>".
func Dump(w io.Writer, doc *dom.Document) {
	fmt.Fprintln(w, "Document")
	for _, c := range doc.Arena.Children(doc.ID) {
		dumpNode(w, doc.Arena, c, 1)
	}
}

func dumpNode(w io.Writer, arena *dom.Arena, id dom.NodeID, depth int) {
	indent := strings.Repeat("  ", depth)
	n := arena.Get(id)
	switch n.Kind {
	case dom.KindDocumentType:
		fmt.Fprintf(w, "%s<!DOCTYPE %s>\n", indent, n.Name)
		return
	case dom.KindElement:
		fmt.Fprintf(w, "%s<%s>\n", indent, qualifiedName(n))
	case dom.KindText:
		fmt.Fprintf(w, "%s#text %s\n", indent, n.Data)
		return
	case dom.KindComment:
		fmt.Fprintf(w, "%s<!-- %s -->\n", indent, n.Data)
		return
	default:
		return
	}
	for _, c := range arena.Children(id) {
		dumpNode(w, arena, c, depth+1)
	}
}

func qualifiedName(n *dom.Node) string {
	if n.Namespace == "" {
		return n.TagName
	}
	return n.Namespace + ":" + n.TagName
}
