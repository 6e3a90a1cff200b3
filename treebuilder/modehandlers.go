package treebuilder

import (
	"strings"

	"github.com/crestfall/htmlcore/dom"
	"github.com/crestfall/htmlcore/htmltok"
	"github.com/crestfall/htmlcore/internal/htmlspec"
	"github.com/crestfall/htmlcore/parseerr"
)

// These handlers implement the insertion-mode dispatch of §13.2.6: one
// method per InsertionMode, each returning whether the dispatcher should
// reprocess the same token (true) or move on (false).

func (b *Builder) processInitial(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CharacterToken:
		if isAllWhitespace(tok.Data) {
			return false
		}
		b.err(parseerr.Code("missing-doctype"))
		b.Arena.Get(b.Doc.ID).QuirksMode = dom.Quirks
		b.mode = BeforeHTML
		return true
	case htmltok.CommentToken:
		b.Arena.AppendChild(b.Doc.ID, b.Arena.CreateComment(b.Doc.ID, tok.Data))
		return false
	case htmltok.DoctypeToken:
		dt := b.Arena.CreateDocumentType(b.Doc.ID, tok.Name, tok.PublicID, tok.SystemID)
		b.Arena.AppendChild(b.Doc.ID, dt)
		b.setQuirksModeFromDoctype(tok.Name, tok.PublicID, tok.SystemID, tok.HasPublicID, tok.HasSystemID, tok.ForceQuirks)
		b.mode = BeforeHTML
		return false
	default:
		b.err(parseerr.Code("missing-doctype"))
		b.Arena.Get(b.Doc.ID).QuirksMode = dom.Quirks
		b.mode = BeforeHTML
		return true
	}
}

func (b *Builder) processBeforeHTML(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CharacterToken:
		if isAllWhitespace(tok.Data) {
			return false
		}
		tok.Data = strings.TrimLeft(tok.Data, "\t\n\f\r ")
	case htmltok.CommentToken:
		b.Arena.AppendChild(b.Doc.ID, b.Arena.CreateComment(b.Doc.ID, tok.Data))
		return false
	case htmltok.StartTagToken:
		if tok.Name == "html" {
			b.insertElement("html", tok.Attrs)
			b.mode = BeforeHead
			return false
		}
	case htmltok.EndTagToken:
		if tok.Name == "head" || tok.Name == "body" || tok.Name == "html" || tok.Name == "br" {
			b.insertElement("html", nil)
			b.mode = BeforeHead
			return true
		}
		return false
	case htmltok.EOFToken:
		b.insertElement("html", nil)
		b.mode = BeforeHead
		return true
	}
	b.insertElement("html", nil)
	b.mode = BeforeHead
	return true
}

func (b *Builder) processBeforeHead(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CharacterToken:
		if isAllWhitespace(tok.Data) {
			return false
		}
	case htmltok.CommentToken:
		b.insertComment(tok.Data, dom.NoNode)
		return false
	case htmltok.StartTagToken:
		switch tok.Name {
		case "html":
			if b.open.size() > 0 && b.Arena.Get(b.open.at(0)).TagName == "html" {
				b.addMissingAttributes(b.open.at(0), tok.Attrs)
			}
			return false
		case "head":
			b.headElement = b.insertElement("head", tok.Attrs)
			b.mode = InHead
			return false
		}
	case htmltok.EndTagToken:
		if tok.Name != "head" && tok.Name != "body" && tok.Name != "html" && tok.Name != "br" {
			return false
		}
	}
	b.headElement = b.insertElement("head", nil)
	b.mode = InHead
	return true
}

func (b *Builder) processInHead(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CharacterToken:
		if isAllWhitespace(tok.Data) {
			b.insertText(tok.Data)
			return false
		}
	case htmltok.CommentToken:
		b.insertComment(tok.Data, dom.NoNode)
		return false
	case htmltok.StartTagToken:
		switch tok.Name {
		case "html":
			b.mode = InBody
			return true
		case "title", "textarea":
			b.insertElement(tok.Name, tok.Attrs)
			b.originalMode = b.mode
			b.mode = Text
			b.tok.SetLastStartTag(tok.Name)
			b.tok.SwitchTo(htmltok.RCDATAState)
			return false
		case "script", "style", "xmp", "iframe", "noembed", "noframes":
			b.insertElement(tok.Name, tok.Attrs)
			b.originalMode = b.mode
			b.mode = Text
			b.tok.SetLastStartTag(tok.Name)
			if tok.Name == "script" {
				b.tok.SwitchTo(htmltok.ScriptDataState)
			} else {
				b.tok.SwitchTo(htmltok.RAWTEXTState)
			}
			return false
		case "noscript":
			b.insertElement(tok.Name, tok.Attrs)
			b.mode = InHeadNoscript
			return false
		case "base", "basefont", "bgsound", "link", "meta":
			b.insertElement(tok.Name, tok.Attrs)
			b.popCurrent()
			return false
		case "template":
			b.insertElement("template", tok.Attrs)
			b.afe.pushMarker()
			b.framesetOK = false
			b.templateModes = append(b.templateModes, InTemplate)
			b.mode = InTemplate
			return false
		case "head":
			return false
		}
	case htmltok.EndTagToken:
		switch tok.Name {
		case "head":
			b.popUntil("head")
			b.mode = AfterHead
			return false
		case "template":
			if !b.elementInStack("template") {
				return false
			}
			b.generateImpliedEndTagsThoroughly()
			b.popUntil("template")
			b.afe.clearUpToMarker()
			if len(b.templateModes) > 0 {
				b.templateModes = b.templateModes[:len(b.templateModes)-1]
			}
			b.mode = InHead
			return false
		}
	case htmltok.EOFToken:
		b.popUntil("head")
		b.mode = AfterHead
		return true
	}
	b.popUntil("head")
	b.mode = AfterHead
	return true
}

func (b *Builder) processInHeadNoscript(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CharacterToken:
		if isAllWhitespace(tok.Data) {
			return b.processInHead(tok)
		}
		b.popUntil("noscript")
		b.mode = InHead
		return true
	case htmltok.CommentToken:
		return b.processInHead(tok)
	case htmltok.StartTagToken:
		switch tok.Name {
		case "html":
			b.mode = InBody
			return true
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			return b.processInHead(tok)
		case "head", "noscript":
			return false
		default:
			b.popUntil("noscript")
			b.mode = InHead
			return true
		}
	case htmltok.EndTagToken:
		switch tok.Name {
		case "noscript":
			b.popUntil("noscript")
			b.mode = InHead
			return false
		case "br":
			b.popUntil("noscript")
			b.mode = InHead
			return true
		default:
			return false
		}
	case htmltok.EOFToken:
		b.popUntil("noscript")
		b.mode = InHead
		return true
	default:
		return false
	}
}

func (b *Builder) processAfterHead(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CharacterToken:
		if isAllWhitespace(tok.Data) {
			b.insertText(tok.Data)
			return false
		}
	case htmltok.CommentToken:
		b.insertComment(tok.Data, dom.NoNode)
		return false
	case htmltok.StartTagToken:
		switch tok.Name {
		case "html":
			b.mode = InBody
			return true
		case "body":
			b.insertElement("body", tok.Attrs)
			b.framesetOK = false
			b.mode = InBody
			return false
		case "frameset":
			b.insertElement("frameset", tok.Attrs)
			b.mode = InFrameset
			return false
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
			b.open.push(b.headElement)
			reprocessed := b.processInHead(tok)
			b.open.remove(b.headElement)
			return reprocessed
		case "head":
			return false
		}
	case htmltok.EndTagToken:
		switch tok.Name {
		case "body", "html", "br":
		default:
			return false
		}
	case htmltok.EOFToken:
		b.insertElement("body", nil)
		b.mode = InBody
		return true
	}
	b.insertElement("body", nil)
	b.framesetOK = false
	b.mode = InBody
	return true
}

func (b *Builder) processText(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CharacterToken:
		b.insertText(tok.Data)
		return false
	case htmltok.EndTagToken:
		if tok.Name == "script" {
			b.popCurrent()
			b.mode = b.originalMode
			return false
		}
		b.popUntil(tok.Name)
		b.mode = b.originalMode
		return false
	case htmltok.EOFToken:
		b.err(parseerr.EOFInTag)
		b.popCurrent()
		b.mode = b.originalMode
		return true
	default:
		return false
	}
}

func (b *Builder) processInBody(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CharacterToken:
		b.reconstructActiveFormattingElements()
		if tok.Data != "" {
			if !isAllWhitespace(tok.Data) {
				b.framesetOK = false
			}
			b.insertText(tok.Data)
		}
		return false
	case htmltok.CommentToken:
		b.insertComment(tok.Data, dom.NoNode)
		return false
	case htmltok.DoctypeToken:
		b.err(parseerr.UnexpectedDOCTYPE)
		return false
	case htmltok.StartTagToken:
		if tok.Name == "image" {
			tok.Name = "img"
		}
		switch tok.Name {
		case "html":
			if b.open.size() > 0 && b.Arena.Get(b.open.at(0)).TagName == "html" {
				b.addMissingAttributes(b.open.at(0), tok.Attrs)
			}
			return false
		case "base", "basefont", "bgsound", "link", "meta":
			b.insertElement(tok.Name, tok.Attrs)
			b.popCurrent()
			return false
		case "body":
			if body := b.Doc.Body(); body != dom.NoNode {
				b.addMissingAttributes(body, tok.Attrs)
				b.framesetOK = false
				return false
			}
			b.insertElement("body", tok.Attrs)
			b.framesetOK = false
			return false
		case "frameset":
			if !b.framesetOK {
				return false
			}
			body := b.Doc.Body()
			if body != dom.NoNode {
				if p := b.Arena.Parent(body); p != dom.NoNode {
					b.Arena.RemoveChild(p, body)
				}
			}
			for b.open.size() > 1 {
				b.popCurrent()
			}
			b.insertElement("frameset", tok.Attrs)
			b.mode = InFrameset
			return false
		case "svg":
			b.reconstructActiveFormattingElements()
			b.insertForeignElement("svg", htmlspec.NSSVG, prepareForeignAttributes(htmlspec.NSSVG, tok.Attrs), tok.SelfClosing)
			b.framesetOK = false
			return false
		case "math":
			b.reconstructActiveFormattingElements()
			b.insertForeignElement("math", htmlspec.NSMathML, prepareForeignAttributes(htmlspec.NSMathML, tok.Attrs), tok.SelfClosing)
			b.framesetOK = false
			return false
		case "a":
			if b.afe.hasEntry("a") {
				b.adoptionAgency("a")
				b.afe.removeLastByName("a")
				b.open.removeLastByName("a")
			}
			b.reconstructActiveFormattingElements()
			node := b.insertElement("a", tok.Attrs)
			b.afe.append("a", cloneAttrs(tok.Attrs), node)
			b.framesetOK = false
			return false
		case "table":
			if b.Arena.Get(b.Doc.ID).QuirksMode != dom.Quirks && b.open.hasElementInSpecificScope("p", htmlspec.ButtonScope) {
				b.popUntil("p")
			}
			b.insertElement("table", tok.Attrs)
			b.framesetOK = false
			b.mode = InTable
			return false
		case "select":
			b.reconstructActiveFormattingElements()
			b.insertElement("select", tok.Attrs)
			b.framesetOK = false
			switch b.mode {
			case InTable, InCaption, InTableBody, InRow, InCell:
				b.mode = InSelectInTable
			default:
				b.mode = InSelect
			}
			return false
		case "textarea":
			b.insertElement(tok.Name, tok.Attrs)
			b.originalMode = b.mode
			b.framesetOK = false
			b.mode = Text
			b.tok.SetLastStartTag(tok.Name)
			b.tok.SwitchTo(htmltok.RCDATAState)
			return false
		case "title":
			b.insertElement(tok.Name, tok.Attrs)
			b.originalMode = b.mode
			b.mode = Text
			b.tok.SetLastStartTag(tok.Name)
			b.tok.SwitchTo(htmltok.RCDATAState)
			return false
		case "script", "style":
			b.insertElement(tok.Name, tok.Attrs)
			b.originalMode = b.mode
			b.mode = Text
			b.tok.SetLastStartTag(tok.Name)
			if tok.Name == "script" {
				b.tok.SwitchTo(htmltok.ScriptDataState)
			} else {
				b.tok.SwitchTo(htmltok.RAWTEXTState)
			}
			return false
		case "p":
			if b.open.hasElementInSpecificScope("p", htmlspec.ButtonScope) {
				b.closeP()
			}
			b.reconstructActiveFormattingElements()
			b.insertElement("p", tok.Attrs)
			b.framesetOK = false
			return false
		case "li", "dd", "dt":
			b.framesetOK = false
			b.closeThingInListScope(tok.Name)
			if b.open.hasElementInSpecificScope("p", htmlspec.ButtonScope) {
				b.closeP()
			}
			b.reconstructActiveFormattingElements()
			b.insertElement(tok.Name, tok.Attrs)
			return false
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if b.open.hasElementInSpecificScope("p", htmlspec.ButtonScope) {
				b.closeP()
			}
			if isHeadingTag(b.currentTagName()) {
				b.err(parseerr.UnexpectedStartTagIgnored)
				b.popCurrent()
			}
			b.reconstructActiveFormattingElements()
			b.insertElement(tok.Name, tok.Attrs)
			return false
		case "br":
			b.reconstructActiveFormattingElements()
			b.insertElement("br", tok.Attrs)
			b.popCurrent()
			b.framesetOK = false
			return false
		case "input":
			b.reconstructActiveFormattingElements()
			el := b.insertElement("input", tok.Attrs)
			b.popCurrent()
			if typ, _ := b.Arena.Get(el).Attrs.Get("type"); !strings.EqualFold(typ, "hidden") {
				b.framesetOK = false
			}
			return false
		case "hr":
			if b.open.hasElementInSpecificScope("p", htmlspec.ButtonScope) {
				b.closeP()
			}
			b.insertElement("hr", tok.Attrs)
			b.popCurrent()
			b.framesetOK = false
			return false
		case "xmp":
			if b.open.hasElementInSpecificScope("p", htmlspec.ButtonScope) {
				b.closeP()
			}
			b.reconstructActiveFormattingElements()
			b.framesetOK = false
			b.insertElement("xmp", tok.Attrs)
			b.originalMode = b.mode
			b.mode = Text
			b.tok.SetLastStartTag("xmp")
			b.tok.SwitchTo(htmltok.RAWTEXTState)
			return false
		case "iframe":
			b.framesetOK = false
			b.insertElement("iframe", tok.Attrs)
			b.originalMode = b.mode
			b.mode = Text
			b.tok.SetLastStartTag("iframe")
			b.tok.SwitchTo(htmltok.RAWTEXTState)
			return false
		case "form":
			if b.formElement != dom.NoNode && !b.elementInStack("template") {
				b.err(parseerr.UnexpectedStartTagIgnored)
				return false
			}
			if b.open.hasElementInSpecificScope("p", htmlspec.ButtonScope) {
				b.closeP()
			}
			el := b.insertElement("form", tok.Attrs)
			if !b.elementInStack("template") {
				b.formElement = el
			}
			return false
		}

		if htmlspec.FormattingElements[tok.Name] {
			if tok.Name == "nobr" && b.open.hasElementInSpecificScope("nobr", htmlspec.DefaultScope) {
				b.adoptionAgency("nobr")
				b.afe.removeLastByName("nobr")
				b.open.removeLastByName("nobr")
			}
			b.reconstructActiveFormattingElements()
			if dup, ok := b.afe.findDuplicate(tok.Name, cloneAttrs(tok.Attrs)); ok {
				b.afe.removeAt(dup)
			}
			node := b.insertElement(tok.Name, tok.Attrs)
			b.afe.append(tok.Name, cloneAttrs(tok.Attrs), node)
			b.framesetOK = false
			return false
		}

		b.reconstructActiveFormattingElements()
		el := b.insertElement(tok.Name, tok.Attrs)
		if tok.SelfClosing || htmlspec.VoidElements[tok.Name] {
			b.popCurrent()
		} else {
			b.framesetOK = false
		}
		_ = el
		return false
	case htmltok.EndTagToken:
		switch tok.Name {
		case "body":
			if b.open.hasElementInSpecificScope("body", htmlspec.DefaultScope) {
				b.mode = AfterBody
			}
			return false
		case "html":
			if b.open.hasElementInSpecificScope("body", htmlspec.DefaultScope) {
				b.mode = AfterBody
				return true
			}
			return false
		case "p":
			if !b.open.hasElementInSpecificScope("p", htmlspec.ButtonScope) {
				b.err(parseerr.UnexpectedEndTag)
				b.insertElement("p", nil)
			}
			b.closeP()
			return false
		case "li":
			if !b.open.hasElementInSpecificScope("li", htmlspec.ListItemScope) {
				b.err(parseerr.UnexpectedEndTag)
				return false
			}
			b.generateImpliedEndTags("li")
			b.popUntil("li")
			return false
		case "dd", "dt":
			if !b.open.hasElementInSpecificScope(tok.Name, htmlspec.DefaultScope) {
				b.err(parseerr.UnexpectedEndTag)
				return false
			}
			b.generateImpliedEndTags(tok.Name)
			b.popUntil(tok.Name)
			return false
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if !b.open.hasAnyInSpecificScope(func(tag, ns string) bool { return ns == "" && isHeadingTag(tag) }, htmlspec.DefaultScope) {
				b.err(parseerr.UnexpectedEndTag)
				return false
			}
			b.generateImpliedEndTags("")
			b.open.popUntilOneOf(headingTagSet)
			return false
		case "form":
			if b.elementInStack("template") {
				if !b.open.hasElementInSpecificScope("form", htmlspec.DefaultScope) {
					b.err(parseerr.UnexpectedEndTag)
					return false
				}
				b.generateImpliedEndTags("")
				b.popUntil("form")
				return false
			}
			node := b.formElement
			b.formElement = dom.NoNode
			if node == dom.NoNode || !b.open.hasElementInSpecificScope("form", htmlspec.DefaultScope) {
				b.err(parseerr.UnexpectedEndTag)
				return false
			}
			b.generateImpliedEndTags("")
			b.open.remove(node)
			return false
		default:
			if htmlspec.FormattingElements[tok.Name] {
				b.adoptionAgency(tok.Name)
				return false
			}
			b.processEndTagGeneric(tok.Name)
			return false
		}
	case htmltok.EOFToken:
		return false
	default:
		return false
	}
}

var headingTagSet = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

func isHeadingTag(tag string) bool { return headingTagSet[tag] }

// closeP implements "close a p element": generate implied end tags
// except for p, then pop until a p has been popped.
func (b *Builder) closeP() {
	b.generateImpliedEndTags("p")
	b.popUntil("p")
}

// closeThingInListScope implements the shared li/dd/dt opening rule:
// walk the stack popping implied-end-tag-eligible elements until the
// matching or a special element is reached.
func (b *Builder) closeThingInListScope(name string) {
	stopSet := map[string]bool{"dd": true, "dt": true, "li": true}
	for i := b.open.size() - 1; i >= 0; i-- {
		n := b.Arena.Get(b.open.at(i))
		if n.Namespace != "" {
			continue
		}
		if (name == "li" && n.TagName == "li") || (name != "li" && stopSet[n.TagName] && n.TagName != "li") {
			if n.TagName == name || (name != "li" && (n.TagName == "dd" || n.TagName == "dt")) {
				b.generateImpliedEndTags(n.TagName)
				b.popUntil(n.TagName)
			}
			return
		}
		if htmlspec.SpecialElements[n.TagName] && n.TagName != "address" && n.TagName != "div" && n.TagName != "p" {
			return
		}
	}
}

func (b *Builder) processInTable(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CharacterToken:
		mode := b.mode
		b.tableTextOriginalMode = mode
		b.tableTextModeSet = true
		b.pendingTableText = b.pendingTableText[:0]
		b.tableTextHasNonSpace = false
		b.mode = InTableText
		return true
	case htmltok.CommentToken:
		b.insertComment(tok.Data, dom.NoNode)
		return false
	case htmltok.DoctypeToken:
		b.err(parseerr.UnexpectedDOCTYPE)
		return false
	case htmltok.StartTagToken:
		switch tok.Name {
		case "caption":
			b.clearStackToTableContext()
			b.afe.pushMarker()
			b.insertElement("caption", tok.Attrs)
			b.mode = InCaption
			return false
		case "colgroup":
			b.clearStackToTableContext()
			b.insertElement("colgroup", tok.Attrs)
			b.mode = InColumnGroup
			return false
		case "col":
			b.clearStackToTableContext()
			b.insertElement("colgroup", nil)
			b.mode = InColumnGroup
			return true
		case "tbody", "thead", "tfoot":
			b.clearStackToTableContext()
			b.insertElement(tok.Name, tok.Attrs)
			b.mode = InTableBody
			return false
		case "tr":
			b.clearStackToTableContext()
			b.insertElement("tbody", nil)
			b.mode = InTableBody
			return true
		case "td", "th":
			b.clearStackToTableContext()
			b.insertElement("tbody", nil)
			b.mode = InTableBody
			return true
		case "table":
			b.err(parseerr.UnexpectedStartTagIgnored)
			if !b.open.hasElementInSpecificScope("table", htmlspec.TableScope) {
				return false
			}
			b.popUntil("table")
			b.resetInsertionModeAppropriately()
			return true
		case "style", "script", "template":
			return b.processInHead(tok)
		case "input":
			if typ, ok := tok.AttrVal("type"); !ok || !strings.EqualFold(typ, "hidden") {
				break
			}
			b.err(parseerr.UnexpectedStartTagIgnored)
			b.insertElement("input", tok.Attrs)
			b.popCurrent()
			return false
		case "form":
			if b.formElement != dom.NoNode || b.elementInStack("template") {
				return false
			}
			b.formElement = b.insertElement("form", tok.Attrs)
			b.popCurrent()
			return false
		case "select":
			b.reconstructActiveFormattingElements()
			b.insertElement("select", tok.Attrs)
			b.framesetOK = false
			b.mode = InSelectInTable
			return false
		}
	case htmltok.EndTagToken:
		switch tok.Name {
		case "table":
			if !b.open.hasElementInSpecificScope("table", htmlspec.TableScope) {
				b.err(parseerr.UnexpectedEndTag)
				return false
			}
			b.popUntil("table")
			b.resetInsertionModeAppropriately()
			return false
		case "body", "caption", "col", "colgroup", "html", "tbody", "tfoot", "thead", "tr", "td", "th":
			b.err(parseerr.UnexpectedEndTag)
			return false
		case "template":
			return b.processInHead(tok)
		}
	case htmltok.EOFToken:
		return false
	}
	b.mode = InBody
	return true
}

func (b *Builder) processInTableText(tok htmltok.Token) bool {
	if tok.Type == htmltok.CharacterToken {
		if strings.Contains(tok.Data, "\x00") {
			b.err(parseerr.UnexpectedNullCharacter)
		}
		if !isAllWhitespace(tok.Data) {
			b.tableTextHasNonSpace = true
		}
		b.pendingTableText = append(b.pendingTableText, tok.Data)
		return false
	}
	if b.tableTextHasNonSpace {
		b.err(parseerr.NonSpaceCharacterInTableText)
		for _, s := range b.pendingTableText {
			b.insertFosterText(s)
		}
	} else {
		for _, s := range b.pendingTableText {
			b.insertText(s)
		}
	}
	b.pendingTableText = b.pendingTableText[:0]
	if b.tableTextModeSet {
		b.mode = b.tableTextOriginalMode
		b.tableTextModeSet = false
	} else {
		b.mode = InTable
	}
	return true
}

func (b *Builder) processInCaption(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.EndTagToken:
		switch tok.Name {
		case "caption":
			if !b.open.hasElementInSpecificScope("caption", htmlspec.TableScope) {
				return false
			}
			b.generateImpliedEndTags("")
			b.popUntil("caption")
			b.afe.clearUpToMarker()
			b.mode = InTable
			return false
		case "table":
			if !b.open.hasElementInSpecificScope("caption", htmlspec.TableScope) {
				return false
			}
			b.popUntil("caption")
			b.afe.clearUpToMarker()
			b.mode = InTable
			return true
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			return false
		}
	case htmltok.StartTagToken:
		switch tok.Name {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr", "table":
			if !b.open.hasElementInSpecificScope("caption", htmlspec.TableScope) {
				return false
			}
			b.popUntil("caption")
			b.afe.clearUpToMarker()
			b.mode = InTable
			return true
		}
	}
	return b.processInBody(tok)
}

func (b *Builder) processInColumnGroup(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CharacterToken:
		if isAllWhitespace(tok.Data) {
			b.insertText(tok.Data)
			return false
		}
	case htmltok.CommentToken:
		b.insertComment(tok.Data, dom.NoNode)
		return false
	case htmltok.DoctypeToken:
		b.err(parseerr.UnexpectedDOCTYPE)
		return false
	case htmltok.StartTagToken:
		switch tok.Name {
		case "html":
			return b.processInBody(tok)
		case "col":
			b.insertElement("col", tok.Attrs)
			b.popCurrent()
			return false
		case "template":
			return b.processInHead(tok)
		}
	case htmltok.EndTagToken:
		switch tok.Name {
		case "colgroup":
			if b.currentTagName() != "colgroup" {
				b.err(parseerr.UnexpectedEndTag)
				return false
			}
			b.popCurrent()
			b.mode = InTable
			return false
		case "col":
			b.err(parseerr.UnexpectedEndTag)
			return false
		case "template":
			return b.processInHead(tok)
		}
	case htmltok.EOFToken:
		return false
	}
	if b.currentTagName() != "colgroup" {
		return false
	}
	b.popCurrent()
	b.mode = InTable
	return true
}

func (b *Builder) processInTableBody(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.StartTagToken:
		switch tok.Name {
		case "tr":
			b.clearStackToTableBodyContext()
			b.insertElement("tr", tok.Attrs)
			b.mode = InRow
			return false
		case "td", "th":
			b.err(parseerr.UnexpectedStartTagIgnored)
			b.insertElement("tr", nil)
			b.mode = InRow
			return true
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			if !b.open.hasAnyInSpecificScope(func(tag, ns string) bool {
				return ns == "" && (tag == "tbody" || tag == "thead" || tag == "tfoot")
			}, htmlspec.TableScope) {
				return false
			}
			b.popUntilTableSectionTag()
			b.mode = InTable
			return true
		}
	case htmltok.EndTagToken:
		switch tok.Name {
		case "tbody", "thead", "tfoot":
			if !b.open.contains(tok.Name) {
				return false
			}
			b.popUntilTableSectionTag()
			b.mode = InTable
			return false
		case "table":
			if !b.open.hasAnyInSpecificScope(func(tag, ns string) bool {
				return ns == "" && (tag == "tbody" || tag == "thead" || tag == "tfoot")
			}, htmlspec.TableScope) {
				return false
			}
			b.popUntilTableSectionTag()
			b.mode = InTable
			return true
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			return false
		}
	}
	return b.processInTable(tok)
}

func (b *Builder) popUntilTableSectionTag() {
	b.open.popUntilOneOf(map[string]bool{"tbody": true, "thead": true, "tfoot": true})
}

func (b *Builder) processInRow(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.StartTagToken:
		switch tok.Name {
		case "td", "th":
			b.clearStackToTableRowContext()
			b.insertElement(tok.Name, tok.Attrs)
			b.mode = InCell
			b.afe.pushMarker()
			return false
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !b.open.hasElementInSpecificScope("tr", htmlspec.TableRowScope) {
				return false
			}
			b.popUntil("tr")
			b.mode = InTableBody
			return true
		}
	case htmltok.EndTagToken:
		switch tok.Name {
		case "tr":
			if !b.open.hasElementInSpecificScope("tr", htmlspec.TableRowScope) {
				return false
			}
			b.popUntil("tr")
			b.mode = InTableBody
			return false
		case "table":
			if !b.open.hasElementInSpecificScope("tr", htmlspec.TableRowScope) {
				return false
			}
			b.popUntil("tr")
			b.mode = InTableBody
			return true
		case "tbody", "tfoot", "thead":
			if !b.open.contains(tok.Name) || !b.open.hasElementInSpecificScope("tr", htmlspec.TableRowScope) {
				return false
			}
			b.popUntil("tr")
			b.mode = InTableBody
			return true
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			return false
		}
	}
	return b.processInTableBody(tok)
}

func (b *Builder) processInCell(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.EndTagToken:
		switch tok.Name {
		case "td", "th":
			if !b.open.hasElementInSpecificScope(tok.Name, htmlspec.TableScope) {
				return false
			}
			b.generateImpliedEndTags("")
			b.popUntil(tok.Name)
			b.afe.clearUpToMarker()
			b.mode = InRow
			return false
		case "body", "caption", "col", "colgroup", "html":
			return false
		case "table", "tbody", "tfoot", "thead", "tr":
			if !b.open.hasAnyInSpecificScope(func(tag, ns string) bool { return ns == "" && (tag == "td" || tag == "th") }, htmlspec.TableScope) {
				return false
			}
			b.closeCell()
			return true
		}
	case htmltok.StartTagToken:
		switch tok.Name {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !b.open.hasAnyInSpecificScope(func(tag, ns string) bool { return ns == "" && (tag == "td" || tag == "th") }, htmlspec.TableScope) {
				return false
			}
			b.closeCell()
			return true
		}
	}
	return b.processInBody(tok)
}

func (b *Builder) closeCell() {
	b.generateImpliedEndTags("")
	b.open.popUntilOneOf(map[string]bool{"td": true, "th": true})
	b.afe.clearUpToMarker()
	b.mode = InRow
}

func (b *Builder) processInSelect(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CharacterToken:
		if strings.Contains(tok.Data, "\x00") {
			b.err(parseerr.UnexpectedNullCharacter)
			return false
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
		switch tok.Name {
		case "html":
			return b.processInBody(tok)
		case "option":
			if b.currentTagName() == "option" {
				b.popCurrent()
			}
			b.insertElement("option", tok.Attrs)
			return false
		case "optgroup":
			if b.currentTagName() == "option" {
				b.popCurrent()
			}
			if b.currentTagName() == "optgroup" {
				b.popCurrent()
			}
			b.insertElement("optgroup", tok.Attrs)
			return false
		case "select":
			b.err(parseerr.UnexpectedStartTagIgnored)
			b.popUntil("select")
			b.resetInsertionModeAppropriately()
			return false
		case "input", "keygen", "textarea":
			b.err(parseerr.UnexpectedStartTagIgnored)
			if !b.open.hasElementInSelectScope("select") {
				return false
			}
			b.popUntil("select")
			b.resetInsertionModeAppropriately()
			return true
		case "script", "template":
			return b.processInHead(tok)
		}
	case htmltok.EndTagToken:
		switch tok.Name {
		case "optgroup":
			if b.currentTagName() == "option" {
				if second := b.open.elementImmediatelyAbove(b.currentNode()); second != dom.NoNode && b.Arena.Get(second).TagName == "optgroup" {
					b.popCurrent()
				}
			}
			if b.currentTagName() == "optgroup" {
				b.popCurrent()
			}
			return false
		case "option":
			if b.currentTagName() == "option" {
				b.popCurrent()
			}
			return false
		case "select":
			if !b.open.hasElementInSelectScope("select") {
				return false
			}
			b.popUntil("select")
			b.resetInsertionModeAppropriately()
			return false
		case "template":
			return b.processInHead(tok)
		}
	case htmltok.EOFToken:
		return false
	}
	return false
}

func (b *Builder) processInSelectInTable(tok htmltok.Token) bool {
	isTableAffecting := func(name string) bool {
		switch name {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			return true
		}
		return false
	}
	if (tok.Type == htmltok.StartTagToken || tok.Type == htmltok.EndTagToken) && isTableAffecting(tok.Name) {
		if tok.Type == htmltok.StartTagToken {
			b.err(parseerr.UnexpectedStartTagIgnored)
		} else {
			b.err(parseerr.UnexpectedEndTag)
			if !b.open.hasElementInSpecificScope(tok.Name, htmlspec.TableScope) {
				return false
			}
		}
		b.popUntil("select")
		b.resetInsertionModeAppropriately()
		return true
	}
	return b.processInSelect(tok)
}

func (b *Builder) processInTemplate(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CharacterToken, htmltok.CommentToken, htmltok.DoctypeToken:
		return b.processInBody(tok)
	case htmltok.StartTagToken:
		switch tok.Name {
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
			return b.processInHead(tok)
		case "caption", "colgroup", "tbody", "tfoot", "thead":
			b.swapTemplateMode(InTable)
			return true
		case "col":
			b.swapTemplateMode(InColumnGroup)
			return true
		case "tr":
			b.swapTemplateMode(InTableBody)
			return true
		case "td", "th":
			b.swapTemplateMode(InRow)
			return true
		default:
			b.swapTemplateMode(InBody)
			return true
		}
	case htmltok.EndTagToken:
		if tok.Name == "template" {
			return b.processInHead(tok)
		}
		return false
	case htmltok.EOFToken:
		if !b.elementInStack("template") {
			return false
		}
		b.err(parseerr.EOFInTag)
		b.popUntil("template")
		b.afe.clearUpToMarker()
		if len(b.templateModes) > 0 {
			b.templateModes = b.templateModes[:len(b.templateModes)-1]
		}
		b.resetInsertionModeAppropriately()
		return true
	}
	return false
}

func (b *Builder) swapTemplateMode(m InsertionMode) {
	if len(b.templateModes) > 0 {
		b.templateModes[len(b.templateModes)-1] = m
	}
	b.mode = m
}

func (b *Builder) processAfterBody(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CharacterToken:
		if isAllWhitespace(tok.Data) {
			return b.processInBody(tok)
		}
	case htmltok.CommentToken:
		if b.open.size() > 0 {
			b.insertComment(tok.Data, b.open.at(0))
		} else {
			b.Arena.AppendChild(b.Doc.ID, b.Arena.CreateComment(b.Doc.ID, tok.Data))
		}
		return false
	case htmltok.DoctypeToken:
		b.err(parseerr.UnexpectedDOCTYPE)
		return false
	case htmltok.StartTagToken:
		if tok.Name == "html" {
			return b.processInBody(tok)
		}
	case htmltok.EndTagToken:
		if tok.Name == "html" {
			b.mode = AfterAfterBody
			return false
		}
	case htmltok.EOFToken:
		return false
	}
	b.err(parseerr.UnexpectedEndTag)
	b.mode = InBody
	return true
}

func (b *Builder) processInFrameset(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CharacterToken:
		if isAllWhitespace(tok.Data) {
			b.insertText(tok.Data)
		}
		return false
	case htmltok.CommentToken:
		b.insertComment(tok.Data, dom.NoNode)
		return false
	case htmltok.DoctypeToken:
		b.err(parseerr.UnexpectedDOCTYPE)
		return false
	case htmltok.StartTagToken:
		switch tok.Name {
		case "html":
			return b.processInBody(tok)
		case "frameset":
			b.insertElement("frameset", tok.Attrs)
			return false
		case "frame":
			b.insertElement("frame", tok.Attrs)
			b.popCurrent()
			return false
		case "noframes":
			return b.processInHead(tok)
		}
	case htmltok.EndTagToken:
		if tok.Name == "frameset" {
			if b.open.size() == 1 {
				return false
			}
			b.popCurrent()
			if !b.fragment && b.currentTagName() != "frameset" {
				b.mode = AfterFrameset
			}
			return false
		}
	case htmltok.EOFToken:
		return false
	}
	return false
}

func (b *Builder) processAfterFrameset(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CharacterToken:
		if isAllWhitespace(tok.Data) {
			b.insertText(tok.Data)
		}
		return false
	case htmltok.CommentToken:
		b.insertComment(tok.Data, dom.NoNode)
		return false
	case htmltok.DoctypeToken:
		b.err(parseerr.UnexpectedDOCTYPE)
		return false
	case htmltok.StartTagToken:
		if tok.Name == "html" {
			return b.processInBody(tok)
		}
		if tok.Name == "noframes" {
			return b.processInHead(tok)
		}
	case htmltok.EndTagToken:
		if tok.Name == "html" {
			b.mode = AfterAfterFrameset
			return false
		}
	case htmltok.EOFToken:
		return false
	}
	return false
}

func (b *Builder) processAfterAfterBody(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CommentToken:
		b.Arena.AppendChild(b.Doc.ID, b.Arena.CreateComment(b.Doc.ID, tok.Data))
		return false
	case htmltok.DoctypeToken:
		return b.processInBody(tok)
	case htmltok.CharacterToken:
		if isAllWhitespace(tok.Data) {
			return b.processInBody(tok)
		}
	case htmltok.StartTagToken:
		if tok.Name == "html" {
			return b.processInBody(tok)
		}
	case htmltok.EOFToken:
		return false
	}
	b.err(parseerr.UnexpectedEndTag)
	b.mode = InBody
	return true
}

func (b *Builder) processAfterAfterFrameset(tok htmltok.Token) bool {
	switch tok.Type {
	case htmltok.CommentToken:
		b.Arena.AppendChild(b.Doc.ID, b.Arena.CreateComment(b.Doc.ID, tok.Data))
		return false
	case htmltok.DoctypeToken:
		return b.processInBody(tok)
	case htmltok.CharacterToken:
		if isAllWhitespace(tok.Data) {
			return b.processInBody(tok)
		}
	case htmltok.StartTagToken:
		if tok.Name == "html" {
			return b.processInBody(tok)
		}
		if tok.Name == "noframes" {
			return b.processInHead(tok)
		}
	case htmltok.EOFToken:
		return false
	}
	return false
}
