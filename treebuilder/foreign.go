package treebuilder

import (
	"github.com/crestfall/htmlcore/dom"
	"github.com/crestfall/htmlcore/htmltok"
	"github.com/crestfall/htmlcore/internal/htmlspec"
	"github.com/crestfall/htmlcore/parseerr"
)

// shouldProcessAsForeign implements the "adjusted current node" foreign-
// content test of §13.2.6, tree construction's dispatcher: tokens are
// processed by the foreign-content rules whenever the adjusted current
// node is a foreign element that isn't itself an integration point for
// the incoming token kind.
func (b *Builder) shouldProcessAsForeign(tok htmltok.Token) bool {
	if b.open.isEmpty() {
		return false
	}
	node := b.adjustedCurrentNode()
	n := b.Arena.Get(node)
	if n.Namespace == "" {
		return false
	}
	if b.isMathMLTextIntegrationPoint(node) {
		if tok.Type == htmltok.CharacterToken {
			return false
		}
		if tok.Type == htmltok.StartTagToken && tok.Name != "mglyph" && tok.Name != "malignmark" {
			return false
		}
	}
	if n.Namespace == htmlspec.NSMathML && n.TagName == "annotation-xml" && tok.Type == htmltok.StartTagToken && tok.Name == "svg" {
		return false
	}
	if b.isHTMLIntegrationPoint(node) && (tok.Type == htmltok.StartTagToken || tok.Type == htmltok.CharacterToken) {
		return false
	}
	if tok.Type == htmltok.EOFToken {
		return false
	}
	return true
}

// adjustedCurrentNode is the fragment-parsing-aware "current node": when
// the stack has exactly one element and this builder is a fragment
// parser, it returns that bottom entry, the synthetic <html> root. No
// node for the fragment context element is created, so in every case the
// result is the current node.
func (b *Builder) adjustedCurrentNode() dom.NodeID {
	if b.fragment && b.open.size() == 1 {
		return b.open.at(0)
	}
	return b.currentNode()
}

func (b *Builder) isHTMLIntegrationPoint(id dom.NodeID) bool {
	n := b.Arena.Get(id)
	key := htmlspec.IntegrationPoint{Namespace: n.Namespace, LocalName: n.TagName}
	if htmlspec.HTMLIntegrationPoints[key] {
		return true
	}
	if n.Namespace == htmlspec.NSMathML && n.TagName == "annotation-xml" {
		if enc, _ := n.Attrs.Get("encoding"); equalFold(enc, "text/html") || equalFold(enc, "application/xhtml+xml") {
			return true
		}
	}
	return false
}

func (b *Builder) isMathMLTextIntegrationPoint(id dom.NodeID) bool {
	n := b.Arena.Get(id)
	return htmlspec.MathMLTextIntegrationPoints[htmlspec.IntegrationPoint{Namespace: n.Namespace, LocalName: n.TagName}]
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// processForeignContent implements the "rules for parsing tokens in
// foreign content" (§13.2.6.5): most tokens just insert as foreign
// elements/text, but a fixed set of HTML start tags (and </br>, </p>)
// break out back into the current insertion mode, and the root SVG/
// MathML tag-name and attribute case-adjustment tables apply.
func (b *Builder) processForeignContent(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CharacterToken:
		if tok.Data == "\x00" {
			b.err(parseerr.UnexpectedNullCharacter)
			b.insertText("�")
			return false
		}
		if !isAllWhitespace(tok.Data) {
			b.framesetOK = false
		}
		b.insertText(tok.Data)
		return false
	case htmltok.CommentToken:
		b.insertComment(tok.Data, dom.NoNode)
		return false
	case htmltok.DoctypeToken:
		b.err(parseerr.UnexpectedDOCTYPE)
		return false
	case htmltok.StartTagToken:
		if htmlspec.ForeignBreakoutElements[tok.Name] || (tok.Name == "font" && hasAnyAttr(tok, "color", "face", "size")) {
			for !b.open.isEmpty() {
				n := b.Arena.Get(b.currentNode())
				if n.Namespace == "" || b.isHTMLIntegrationPoint(b.currentNode()) || b.isMathMLTextIntegrationPoint(b.currentNode()) {
					break
				}
				b.popCurrent()
			}
			return true
		}
		b.insertForeignStartTag(tok)
		return false
	case htmltok.EndTagToken:
		if (tok.Name == "br" || tok.Name == "p") && b.currentNode() != dom.NoNode && b.Arena.Get(b.currentNode()).Namespace != "" {
			for !b.open.isEmpty() {
				n := b.Arena.Get(b.currentNode())
				if n.Namespace == "" {
					break
				}
				b.popCurrent()
			}
			return true
		}
		return b.closeForeignEndTag(tok.Name)
	}
	return false
}

func hasAnyAttr(tok htmltok.Token, names ...string) bool {
	for _, n := range names {
		if tok.HasAttr(n) {
			return true
		}
	}
	return false
}

// insertForeignStartTag creates a new SVG/MathML element for a foreign
// start tag, applying the tag-name case-adjustment table (SVG only) and
// the attribute case/namespace-adjustment tables (both).
func (b *Builder) insertForeignStartTag(tok htmltok.Token) {
	ns := b.Arena.Get(b.adjustedCurrentNode()).Namespace
	if ns == "" {
		ns = htmlspec.NSHTML
	}
	name := tok.Name
	if ns == htmlspec.NSSVG {
		if fixed, ok := htmlspec.SVGTagNameFixups[name]; ok {
			name = fixed
		}
	}
	attrs := adjustForeignAttributes(tok.Attrs, ns)
	id := b.insertForeignElement(name, ns, attrs, tok.SelfClosing)
	if tok.SelfClosing && name == "script" {
		// Self-closing foreign <script> has no body to tokenize as
		// script data; nothing further to do.
		_ = id
	}
}

// prepareForeignAttributes is adjustForeignAttributes under the name
// InBody's svg/math start-tag rules call it by.
func prepareForeignAttributes(ns string, attrs []htmltok.Attr) []dom.Attribute {
	return adjustForeignAttributes(attrs, ns)
}

func adjustForeignAttributes(attrs []htmltok.Attr, ns string) []dom.Attribute {
	out := make([]dom.Attribute, 0, len(attrs))
	for _, a := range attrs {
		name := a.Name
		if ns == htmlspec.NSSVG {
			if fixed, ok := htmlspec.SVGAttrFixups[name]; ok {
				name = fixed
			}
		}
		if ns == htmlspec.NSMathML {
			if fixed, ok := htmlspec.MathMLAttrFixups[name]; ok {
				name = fixed
			}
		}
		if fa, ok := htmlspec.ForeignAttrFixups[name]; ok {
			out = append(out, dom.Attribute{Namespace: fa.Namespace, Name: fa.LocalName, Value: a.Value})
			continue
		}
		out = append(out, dom.Attribute{Name: name, Value: a.Value})
	}
	return out
}

// closeForeignEndTag implements the generic foreign end-tag rule: pop
// until a same-named element (case-insensitively on the lowercase
// tokenizer spelling) is popped, unless the second element on the stack
// is reached first and it isn't HTML, matching §13.2.6.5 step 2's loop.
func (b *Builder) closeForeignEndTag(name string) bool {
	if b.open.isEmpty() {
		return false
	}
	i := b.open.size() - 1
	n := b.Arena.Get(b.open.at(i))
	if !equalFold(n.TagName, name) {
		b.err(parseerr.UnexpectedEndTag)
	}
	for {
		cur := b.open.at(i)
		n := b.Arena.Get(cur)
		if equalFold(n.TagName, name) {
			for b.open.size() > i {
				b.popCurrent()
			}
			return false
		}
		i--
		if i < 0 {
			return false
		}
		if b.Arena.Get(b.open.at(i)).Namespace == "" {
			return true
		}
	}
}
