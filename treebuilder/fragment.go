package treebuilder

import "github.com/crestfall/htmlcore/dom"

// resetInsertionMode implements "reset the insertion mode appropriately",
// §13.2.3.2: walk the stack of open elements from the top down, mapping
// the first recognized tag name to its insertion mode, with special
// handling for the fragment-parsing context element at the bottom of
// the stack.
func resetInsertionMode(arena *dom.Arena, open *OpenElementStack, fragment bool, fragmentTag string, hasTemplate bool, templateMode InsertionMode, haveHead bool) InsertionMode {
	last := false
	for i := open.size() - 1; i >= 0; i-- {
		node := open.at(i)
		if i == 0 {
			last = true
		}
		n := arena.Get(node)
		tag := n.TagName
		if last && fragment {
			tag = fragmentTag
		}
		if n.Namespace == "" || last {
			switch tag {
			case "select":
				if !last {
					for j := i - 1; j >= 0; j-- {
						ancestor := arena.Get(open.at(j))
						if ancestor.Namespace != "" {
							continue
						}
						switch ancestor.TagName {
						case "template":
							return InSelect
						case "table":
							return InSelectInTable
						}
					}
				}
				return InSelect
			case "td", "th":
				if !last {
					return InCell
				}
			case "tr":
				return InRow
			case "tbody", "thead", "tfoot":
				return InTableBody
			case "caption":
				return InCaption
			case "colgroup":
				return InColumnGroup
			case "table":
				return InTable
			case "template":
				if hasTemplate {
					return templateMode
				}
			case "head":
				if !last {
					return InHead
				}
			case "body":
				return InBody
			case "frameset":
				return InFrameset
			case "html":
				if haveHead {
					return AfterHead
				}
				return BeforeHead
			}
		}
		if last {
			return InBody
		}
	}
	return InBody
}
