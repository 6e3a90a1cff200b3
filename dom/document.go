package dom

import "strings"

// Document is a thin, arena-relative handle: DocumentElement/Head/Body/
// Title walk the arena from the document's NodeID rather than caching
// pointers, so they stay correct across any mutation the tree constructor
// performs.
type Document struct {
	Arena *Arena
	ID    NodeID
}

// NewDocument allocates a fresh document in arena and wraps it.
func NewDocument(arena *Arena) *Document {
	return &Document{Arena: arena, ID: arena.CreateDocument()}
}

// DocumentElement returns the root <html> element, or NoNode if the
// document has no element child yet.
func (d *Document) DocumentElement() NodeID {
	for _, c := range d.Arena.Children(d.ID) {
		if d.Arena.Kind(c) == KindElement {
			return c
		}
	}
	return NoNode
}

// Doctype returns the document's DOCTYPE node, or NoNode.
func (d *Document) Doctype() NodeID {
	for _, c := range d.Arena.Children(d.ID) {
		if d.Arena.Kind(c) == KindDocumentType {
			return c
		}
	}
	return NoNode
}

// Head returns the <head> element under the document element, or NoNode.
func (d *Document) Head() NodeID {
	return d.firstElementChildNamed(d.DocumentElement(), "head")
}

// Body returns the <body> or <frameset> element under the document
// element, or NoNode.
func (d *Document) Body() NodeID {
	html := d.DocumentElement()
	if html == NoNode {
		return NoNode
	}
	for _, c := range d.Arena.Children(html) {
		if d.Arena.Kind(c) != KindElement {
			continue
		}
		tag := d.Arena.Get(c).TagName
		if tag == "body" || tag == "frameset" {
			return c
		}
	}
	return NoNode
}

// Title returns the text content of the first <title> element found in
// tree order under the document element, or "" if there is none.
func (d *Document) Title() string {
	html := d.DocumentElement()
	if html == NoNode {
		return ""
	}
	var find func(id NodeID) NodeID
	find = func(id NodeID) NodeID {
		for _, c := range d.Arena.Children(id) {
			if d.Arena.Kind(c) == KindElement && d.Arena.Get(c).TagName == "title" {
				return c
			}
			if found := find(c); found != NoNode {
				return found
			}
		}
		return NoNode
	}
	title := find(html)
	if title == NoNode {
		return ""
	}
	return TextContent(d.Arena, title)
}

func (d *Document) firstElementChildNamed(parent NodeID, name string) NodeID {
	if parent == NoNode {
		return NoNode
	}
	for _, c := range d.Arena.Children(parent) {
		if d.Arena.Kind(c) == KindElement && d.Arena.Get(c).TagName == name {
			return c
		}
	}
	return NoNode
}

// TextContent concatenates the Data of every Text descendant of id, in
// tree order, the same traversal Element.Text() performs in a
// pointer-based DOM.
func TextContent(arena *Arena, id NodeID) string {
	var b strings.Builder
	var walk func(NodeID)
	walk = func(n NodeID) {
		switch arena.Kind(n) {
		case KindText:
			b.WriteString(arena.Get(n).Data)
		case KindElement, KindDocument:
			for _, c := range arena.Children(n) {
				walk(c)
			}
		}
	}
	walk(id)
	return b.String()
}

// Attr returns the value of the unnamespaced attribute name on element id,
// and whether it was present. It panics if id does not name an element.
func Attr(arena *Arena, id NodeID, name string) (string, bool) {
	return arena.Get(id).Attrs.Get(name)
}

// ID returns the value of element id's "id" attribute, or "".
func ID(arena *Arena, id NodeID) string {
	v, _ := Attr(arena, id, "id")
	return v
}

// Classes splits element id's "class" attribute on ASCII whitespace.
func Classes(arena *Arena, id NodeID) []string {
	v, ok := Attr(arena, id, "class")
	if !ok {
		return nil
	}
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\f' || r == '\r'
	})
}

// HasClass reports whether element id's class list contains name.
func HasClass(arena *Arena, id NodeID, name string) bool {
	for _, c := range Classes(arena, id) {
		if c == name {
			return true
		}
	}
	return false
}
