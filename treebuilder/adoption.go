package treebuilder

import (
	"github.com/crestfall/htmlcore/dom"
	"github.com/crestfall/htmlcore/internal/htmlspec"
	"github.com/crestfall/htmlcore/parseerr"
)

// isSpecialElement reports the glossary's "special tag" predicate, the
// adoption agency's furthest-block stopper: the HTML special-elements
// table plus the handful of SVG/MathML elements the algorithm also
// treats as special.
func isSpecialElement(tag, namespace string) bool {
	switch namespace {
	case "":
		return htmlspec.SpecialElements[tag]
	case htmlspec.NSMathML:
		switch tag {
		case "mi", "mo", "mn", "ms", "mtext", "annotation-xml":
			return true
		}
		return false
	case htmlspec.NSSVG:
		switch tag {
		case "foreignObject", "desc", "title":
			return true
		}
		return false
	default:
		return false
	}
}

// adoptionAgency implements the adoption agency algorithm, §13.2.5.2.5,
// for an end tag token named subject.
func (b *Builder) adoptionAgency(subject string) {
	if b.currentTagName() == subject && b.afe.indexOfNode(b.currentNode()) < 0 {
		b.popCurrent()
		return
	}

	for outer := 0; outer < 8; outer++ {
		feIdx := -1
		for i := b.afe.len() - 1; i >= 0; i-- {
			e := b.afe.entryAt(i)
			if e.marker {
				break
			}
			if e.name == subject {
				feIdx = i
				break
			}
		}
		if feIdx < 0 {
			b.processEndTagGeneric(subject)
			return
		}
		fe := b.afe.entryAt(feIdx)
		feStackIdx := b.open.indexOf(fe.node)
		if feStackIdx < 0 {
			b.err(parseerr.UnexpectedEndTag)
			b.afe.removeAt(feIdx)
			return
		}
		if !b.open.hasElementInSpecificScope(fe.name, htmlspec.DefaultScope) {
			b.err(parseerr.UnexpectedEndTag)
			return
		}
		if feStackIdx != b.open.size()-1 {
			b.err(parseerr.UnexpectedEndTag)
		}

		var furthestBlock dom.NodeID
		furthestIdx := -1
		for i := feStackIdx + 1; i < b.open.size(); i++ {
			n := b.Arena.Get(b.open.at(i))
			if isSpecialElement(n.TagName, n.Namespace) {
				furthestBlock = b.open.at(i)
				furthestIdx = i
				break
			}
		}

		if furthestBlock == dom.NoNode {
			for b.open.size()-1 >= feStackIdx {
				b.popCurrent()
			}
			b.afe.removeAt(feIdx)
			return
		}

		commonAncestor := b.open.at(feStackIdx - 1)
		bookmark := feIdx

		lastNode := furthestBlock
		nodeIdx := furthestIdx

		for inner := 0; ; inner++ {
			nodeIdx--
			if nodeIdx < 0 {
				break
			}
			node := b.open.at(nodeIdx)
			if node == fe.node {
				break
			}
			nodeEntryIdx := b.afe.indexOfNode(node)
			if inner >= 3 && nodeEntryIdx >= 0 {
				b.afe.removeAt(nodeEntryIdx)
				b.open.remove(node)
				continue
			}
			if nodeEntryIdx < 0 {
				b.open.remove(node)
				continue
			}
			nodeEntry := b.afe.entryAt(nodeEntryIdx)
			clone := b.Arena.CreateElement(b.Doc.ID, nodeEntry.name)
			cloneAttrsInto(b.Arena.Get(clone).Attrs, nodeEntry.attrs)
			b.open.replace(node, clone)
			b.afe.setNodeAt(nodeEntryIdx, clone)
			if lastNode == furthestBlock {
				bookmark = nodeEntryIdx + 1
			}
			if p := b.Arena.Parent(lastNode); p != dom.NoNode {
				b.Arena.RemoveChild(p, lastNode)
			}
			b.Arena.AppendChild(clone, lastNode)
			lastNode = clone
		}

		if p := b.Arena.Parent(lastNode); p != dom.NoNode {
			b.Arena.RemoveChild(p, lastNode)
		}
		insLoc := b.appropriateInsertionLocation(commonAncestor)
		b.insertAt(insLoc, lastNode)

		newElem := b.Arena.CreateElement(b.Doc.ID, fe.name)
		cloneAttrsInto(b.Arena.Get(newElem).Attrs, fe.attrs)
		children := append([]dom.NodeID(nil), b.Arena.Children(furthestBlock)...)
		for _, c := range children {
			b.Arena.RemoveChild(furthestBlock, c)
			b.Arena.AppendChild(newElem, c)
		}
		b.Arena.AppendChild(furthestBlock, newElem)

		b.afe.removeAt(feIdx)
		if bookmark > feIdx {
			bookmark--
		}
		b.afe.insertAt(bookmark, fe.name, fe.attrs, newElem)

		b.open.remove(fe.node)
		if i := b.open.indexOf(furthestBlock); i >= 0 {
			b.open.insertAt(i+1, newElem)
		}
	}
}

func cloneAttrsInto(dst, src *dom.Attributes) {
	if src == nil {
		return
	}
	for _, a := range src.All() {
		dst.SetNS(a.Namespace, a.Name, a.Value)
	}
}

// processEndTagGeneric is the "any other end tag" rule from InBody,
// reused by adoptionAgency when the formatting element named subject
// isn't in the active formatting elements list at all.
func (b *Builder) processEndTagGeneric(name string) {
	for i := b.open.size() - 1; i >= 0; i-- {
		n := b.Arena.Get(b.open.at(i))
		if n.Namespace == "" && n.TagName == name {
			b.generateImpliedEndTags(name)
			for b.open.size()-1 >= i {
				b.popCurrent()
			}
			return
		}
		if isSpecialElement(n.TagName, n.Namespace) {
			return
		}
	}
}
