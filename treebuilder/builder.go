// Package treebuilder implements the tree-construction stage: an
// insertion-mode dispatch loop that consumes htmltok.Tokens and builds a
// dom.Arena tree, including the active-formatting-elements
// reconstruction, the adoption agency algorithm, and foster parenting.
package treebuilder

import (
	"github.com/crestfall/htmlcore/dom"
	"github.com/crestfall/htmlcore/htmltok"
	"github.com/crestfall/htmlcore/internal/htmlspec"
	"github.com/crestfall/htmlcore/parseerr"
)

// Builder drives tree construction for one parse. Create one with New or
// NewFragment and feed it tokens via ProcessToken until it sees an EOF
// token.
type Builder struct {
	Arena *dom.Arena
	Doc   *dom.Document

	tok  *htmltok.Tokenizer
	sink parseerr.Sink

	mode         InsertionMode
	originalMode InsertionMode

	open *OpenElementStack
	afe  *FormattingList

	headElement dom.NodeID
	formElement dom.NodeID
	framesetOK  bool

	templateModes []InsertionMode

	pendingTableText      []string
	tableTextHasNonSpace  bool
	tableTextOriginalMode InsertionMode
	tableTextModeSet      bool

	fragment        bool
	fragmentContext FragmentContext

	reprocess bool
}

// FragmentContext names the element ParseFragment should behave as if it
// were parsing the children of, SPEC_FULL.md §4.6's supplemental
// fragment-parsing support.
type FragmentContext struct {
	TagName   string
	Namespace string
}

// New returns a Builder that will construct a full document tree from
// tok, reporting parse errors to sink.
func New(tok *htmltok.Tokenizer, sink parseerr.Sink) *Builder {
	if sink == nil {
		sink = parseerr.Discard
	}
	arena := dom.NewArena()
	doc := dom.NewDocument(arena)
	b := &Builder{
		Arena:      arena,
		Doc:        doc,
		tok:        tok,
		sink:       sink,
		mode:       Initial,
		framesetOK: true,
	}
	b.open = newOpenElementStack(arena)
	b.afe = newFormattingList(arena)
	return b
}

// NewFragment returns a Builder configured per §13.2.6.1 "parsing HTML
// fragments" for the given context element.
func NewFragment(tok *htmltok.Tokenizer, sink parseerr.Sink, ctx FragmentContext) *Builder {
	b := New(tok, sink)
	b.fragment = true
	b.fragmentContext = ctx

	htmlRoot := b.Arena.CreateElement(b.Doc.ID, "html")
	b.Arena.AppendChild(b.Doc.ID, htmlRoot)
	b.open.push(htmlRoot)

	switch ctx.TagName {
	case "title", "textarea":
		tok.SwitchTo(htmltok.RCDATAState)
	case "style", "xmp", "iframe", "noembed", "noframes":
		tok.SwitchTo(htmltok.RAWTEXTState)
	case "script":
		tok.SwitchTo(htmltok.ScriptDataState)
	case "plaintext":
		tok.SwitchTo(htmltok.PLAINTEXTState)
	}
	tok.SetLastStartTag(ctx.TagName)
	if ctx.TagName == "template" {
		b.templateModes = append(b.templateModes, InTemplate)
	}
	b.resetInsertionModeAppropriately()
	return b
}

// AllowCDATA reports whether the tokenizer should currently accept a
// CDATA section: true whenever the adjusted current node is a foreign
// (SVG/MathML) element.
func (b *Builder) AllowCDATA() bool {
	if b.open.isEmpty() {
		return false
	}
	return b.Arena.Get(b.currentNode()).Namespace != ""
}

func (b *Builder) currentNode() dom.NodeID {
	return b.open.current()
}

func (b *Builder) currentTagName() string {
	if b.open.isEmpty() {
		return ""
	}
	return b.Arena.Get(b.currentNode()).TagName
}

func (b *Builder) err(code parseerr.Code) {
	b.sink.Report(parseerr.New(code, 0, 0))
}

// ProcessToken runs tok through the insertion-mode dispatch per
// §13.2.6, reprocessing as many times as the handler chain requests.
func (b *Builder) ProcessToken(tok htmltok.Token) {
	for {
		var again bool
		if b.shouldProcessAsForeign(tok) {
			again = b.processForeignContent(tok)
		} else {
			again = b.dispatch(tok)
		}
		if !again {
			return
		}
	}
}

func (b *Builder) dispatch(tok htmltok.Token) bool {
	switch b.mode {
	case Initial:
		return b.processInitial(tok)
	case BeforeHTML:
		return b.processBeforeHTML(tok)
	case BeforeHead:
		return b.processBeforeHead(tok)
	case InHead:
		return b.processInHead(tok)
	case InHeadNoscript:
		return b.processInHeadNoscript(tok)
	case AfterHead:
		return b.processAfterHead(tok)
	case InBody:
		return b.processInBody(tok)
	case Text:
		return b.processText(tok)
	case InTable:
		return b.processInTable(tok)
	case InTableText:
		return b.processInTableText(tok)
	case InCaption:
		return b.processInCaption(tok)
	case InColumnGroup:
		return b.processInColumnGroup(tok)
	case InTableBody:
		return b.processInTableBody(tok)
	case InRow:
		return b.processInRow(tok)
	case InCell:
		return b.processInCell(tok)
	case InSelect:
		return b.processInSelect(tok)
	case InSelectInTable:
		return b.processInSelectInTable(tok)
	case InTemplate:
		return b.processInTemplate(tok)
	case AfterBody:
		return b.processAfterBody(tok)
	case InFrameset:
		return b.processInFrameset(tok)
	case AfterFrameset:
		return b.processAfterFrameset(tok)
	case AfterAfterBody:
		return b.processAfterAfterBody(tok)
	case AfterAfterFrameset:
		return b.processAfterAfterFrameset(tok)
	default:
		b.err(parseerr.NotImplementedCode)
		return false
	}
}

// --- insertion primitives ------------------------------------------------

type insertionLocation struct {
	parent dom.NodeID
	before dom.NodeID // NoNode means "append"
}

// appropriateInsertionLocation computes where the next node should land,
// per §13.2.6.1: usually the current node, but redirected into a
// <template>'s content document fragment, and foster-parented out of a
// table/tbody/tfoot/thead/tr target while foster parenting is in effect.
func (b *Builder) appropriateInsertionLocation(override dom.NodeID) insertionLocation {
	target := override
	if target == dom.NoNode {
		target = b.currentNode()
	}
	if target == dom.NoNode {
		// Empty stack: the <html> element goes straight into the Document.
		target = b.Doc.ID
	}
	// Foster parenting is in effect while InTable has handed a token to
	// the InBody rules (which switches the mode to InBody) and while
	// InTableText flushes pending text that contains non-whitespace.
	fostering := b.mode == InBody || (b.mode == InTableText && b.tableTextHasNonSpace)
	if fostering && b.shouldFosterParent(target) {
		return b.fosterInsertionLocation()
	}
	n := b.Arena.Get(target)
	if n.TagName == "template" && n.Namespace == "" {
		return insertionLocation{parent: n.TemplateContent, before: dom.NoNode}
	}
	return insertionLocation{parent: target, before: dom.NoNode}
}

func (b *Builder) shouldFosterParent(node dom.NodeID) bool {
	n := b.Arena.Get(node)
	return n.Namespace == "" && htmlspec.TableFosterTargets[n.TagName]
}

// fosterInsertionLocation walks the stack from the top looking for the
// last <table> and the last <template>. If the template is higher on the
// stack than the table (or there is no table), the insertion point is the
// end of that template's content; otherwise it lands immediately before
// the table in its parent, or inside the element just below the table on
// the stack when the table has no parent. With neither, it is the end of
// the bottom element of the stack.
func (b *Builder) fosterInsertionLocation() insertionLocation {
	var lastTemplate, lastTable dom.NodeID = dom.NoNode, dom.NoNode
	templateIdx, tableIdx := -1, -1
	for i := b.open.size() - 1; i >= 0; i-- {
		n := b.Arena.Get(b.open.at(i))
		if n.Namespace != "" {
			continue
		}
		if n.TagName == "template" && lastTemplate == dom.NoNode {
			lastTemplate = b.open.at(i)
			templateIdx = i
		}
		if n.TagName == "table" && lastTable == dom.NoNode {
			lastTable = b.open.at(i)
			tableIdx = i
		}
	}
	if lastTemplate != dom.NoNode && (lastTable == dom.NoNode || templateIdx > tableIdx) {
		return insertionLocation{parent: b.Arena.Get(lastTemplate).TemplateContent, before: dom.NoNode}
	}
	if lastTable == dom.NoNode {
		return insertionLocation{parent: b.open.at(0), before: dom.NoNode}
	}
	tableParent := b.Arena.Parent(lastTable)
	if tableParent != dom.NoNode {
		return insertionLocation{parent: tableParent, before: lastTable}
	}
	// The table has no parent (e.g. still only on the stack): foster
	// into the element just below it on the stack instead.
	return insertionLocation{parent: b.open.at(tableIdx - 1), before: dom.NoNode}
}

func (b *Builder) insertAt(loc insertionLocation, node dom.NodeID) {
	if loc.before == dom.NoNode {
		b.Arena.AppendChild(loc.parent, node)
	} else {
		b.Arena.InsertBefore(loc.parent, node, loc.before)
	}
}

// insertElement creates an HTML-namespace element, inserts it at the
// appropriate location, pushes it onto the stack of open elements, and
// returns its id.
func (b *Builder) insertElement(name string, attrs []htmltok.Attr) dom.NodeID {
	loc := b.appropriateInsertionLocation(dom.NoNode)
	id := b.Arena.CreateElement(b.Doc.ID, name)
	applyAttrs(b.Arena.Get(id).Attrs, attrs)
	if name == "template" {
		b.Arena.Get(id).TemplateContent = b.Arena.CreateDocumentFragment()
	}
	b.insertAt(loc, id)
	b.open.push(id)
	return id
}

// insertForeignElement is insertElement's SVG/MathML counterpart: the
// element is created in namespace and its attributes are not re-adjusted
// (the caller, InBody's svg/math handling, already ran
// prepareForeignAttributes).
func (b *Builder) insertForeignElement(name, namespace string, attrs []dom.Attribute, selfClosing bool) dom.NodeID {
	loc := b.appropriateInsertionLocation(dom.NoNode)
	id := b.Arena.CreateElementNS(b.Doc.ID, name, namespace)
	for _, a := range attrs {
		b.Arena.Get(id).Attrs.SetNS(a.Namespace, a.Name, a.Value)
	}
	b.insertAt(loc, id)
	if !selfClosing {
		b.open.push(id)
	}
	return id
}

func applyAttrs(dst *dom.Attributes, attrs []htmltok.Attr) {
	for _, a := range attrs {
		dst.Set(a.Name, a.Value)
	}
}

// addMissingAttributes merges attrs into el for any name el doesn't
// already carry, used when a duplicate <html>/<body> start tag is seen.
func (b *Builder) addMissingAttributes(el dom.NodeID, attrs []htmltok.Attr) {
	a := b.Arena.Get(el).Attrs
	for _, at := range attrs {
		a.Set(at.Name, at.Value)
	}
}

// insertComment creates a comment node at the appropriate insertion
// location (or at an explicit override when given, for comments outside
// the current node, e.g. after </html>).
func (b *Builder) insertComment(data string, override dom.NodeID) {
	loc := b.appropriateInsertionLocation(override)
	id := b.Arena.CreateComment(b.Doc.ID, data)
	b.insertAt(loc, id)
}

// insertText inserts data as character data at the appropriate insertion
// location, coalescing into an immediately preceding text node when one
// is already the last child there (so two adjacent character tokens
// don't produce two Text nodes).
func (b *Builder) insertText(data string) {
	loc := b.appropriateInsertionLocation(dom.NoNode)
	siblings := b.Arena.Children(loc.parent)
	if loc.before == dom.NoNode && len(siblings) > 0 {
		last := siblings[len(siblings)-1]
		if b.Arena.Kind(last) == dom.KindText {
			b.Arena.Get(last).Data += data
			return
		}
	}
	if loc.before != dom.NoNode {
		if prev := b.Arena.PreviousSibling(loc.before); prev != dom.NoNode && b.Arena.Kind(prev) == dom.KindText {
			b.Arena.Get(prev).Data += data
			return
		}
	}
	id := b.Arena.CreateText(b.Doc.ID, data)
	b.insertAt(loc, id)
}

// insertFosterText is insertText's explicit-foster-parenting variant,
// used by InTableText when flushing non-whitespace pending characters.
func (b *Builder) insertFosterText(data string) {
	b.err(parseerr.FosterParentedCharacter)
	b.insertText(data)
}

func (b *Builder) popCurrent() dom.NodeID {
	return b.open.pop()
}

func (b *Builder) popUntil(name string) {
	b.open.popUntilTagName(name)
}

func (b *Builder) elementInStack(name string) bool {
	return b.open.contains(name)
}

// generateImpliedEndTags pops elements named in the implied-end-tag set
// (skipping exceptFor) from the current node downward.
func (b *Builder) generateImpliedEndTags(exceptFor string) {
	for !b.open.isEmpty() {
		tag := b.currentTagName()
		if tag == exceptFor {
			return
		}
		if !htmlspec.ImpliedEndTagElements[tag] {
			return
		}
		b.popCurrent()
	}
}

// generateImpliedEndTagsThoroughly is the </template> variant that also
// pops the table-section/row/cell/column-group family.
func (b *Builder) generateImpliedEndTagsThoroughly() {
	for !b.open.isEmpty() {
		tag := b.currentTagName()
		if !htmlspec.ThoroughImpliedEndTagElements[tag] {
			return
		}
		b.popCurrent()
	}
}

// clearStackToTableContext, clearStackToTableBodyContext, and
// clearStackToTableRowContext implement §13.2.4.3's three "clear the
// stack back to a _ context" operations: pop elements until the current
// node is one of the named stoppers (table/template/html for the first,
// the section elements for the second, tr for the third).
func (b *Builder) clearStackToTableContext() {
	for {
		tag := b.currentTagName()
		if tag == "table" || tag == "template" || tag == "html" || b.open.isEmpty() {
			return
		}
		b.popCurrent()
	}
}

func (b *Builder) clearStackToTableBodyContext() {
	for {
		tag := b.currentTagName()
		if tag == "tbody" || tag == "thead" || tag == "tfoot" || tag == "template" || tag == "html" || b.open.isEmpty() {
			return
		}
		b.popCurrent()
	}
}

func (b *Builder) clearStackToTableRowContext() {
	for {
		tag := b.currentTagName()
		if tag == "tr" || tag == "template" || tag == "html" || b.open.isEmpty() {
			return
		}
		b.popCurrent()
	}
}

func isAllWhitespace(s string) bool {
	for _, c := range s {
		if !htmlspec.IsSpace(c) {
			return false
		}
	}
	return true
}

// reconstructActiveFormattingElements implements §13.2.5.2.1: walk the
// active formatting elements list backward from the end until a marker
// or an entry that is still on the stack of open elements, then re-insert
// and re-push each entry after that one, in list order.
func (b *Builder) reconstructActiveFormattingElements() {
	if b.afe.len() == 0 {
		return
	}
	last := b.afe.len() - 1
	entry := b.afe.entryAt(last)
	if entry.marker || b.open.indexOf(entry.node) >= 0 {
		return
	}
	i := last
	for i > 0 {
		i--
		entry = b.afe.entryAt(i)
		if entry.marker || b.open.indexOf(entry.node) >= 0 {
			i++
			break
		}
	}
	for ; i < b.afe.len(); i++ {
		entry = b.afe.entryAt(i)
		clone := b.insertElement(entry.name, attrsToTokens(entry.attrs))
		b.afe.setNodeAt(i, clone)
	}
}

func attrsToTokens(a *dom.Attributes) []htmltok.Attr {
	if a == nil {
		return nil
	}
	items := a.All()
	out := make([]htmltok.Attr, len(items))
	for i, it := range items {
		out[i] = htmltok.Attr{Name: it.Name, Value: it.Value}
	}
	return out
}

func cloneAttrs(attrs []htmltok.Attr) *dom.Attributes {
	a := dom.NewAttributes()
	applyAttrs(a, attrs)
	return a
}

// setQuirksModeFromDoctype derives the document's quirks mode from a
// DOCTYPE token per §13.2.5.4.1 and §9 of the WHATWG tree construction
// rules, using the public/system identifier prefix tables.
func (b *Builder) setQuirksModeFromDoctype(name string, publicID, systemID string, hasPublic, hasSystem, forceQuirks bool) {
	b.Doc.Arena.Get(b.Doc.ID).QuirksMode = deriveQuirksMode(name, publicID, systemID, hasPublic, hasSystem, forceQuirks)
}

func (b *Builder) resetInsertionModeAppropriately() {
	b.mode = resetInsertionMode(b.Arena, b.open, b.fragment, b.fragmentContext.TagName, len(b.templateModes) > 0, b.currentTemplateMode(), b.headElement != dom.NoNode)
}

func (b *Builder) currentTemplateMode() InsertionMode {
	if len(b.templateModes) == 0 {
		return InBody
	}
	return b.templateModes[len(b.templateModes)-1]
}

// Document returns the document built so far. Valid once the builder was
// created with New; a fragment builder's Doc holds the synthetic <html>
// root rather than a real document and callers should use FragmentNodes
// instead.
func (b *Builder) Document() *dom.Document {
	return b.Doc
}

// FragmentNodes returns the children of the synthetic fragment root built
// by NewFragment, SPEC_FULL.md §4.6's fragment-parsing result: the nodes
// that would become the context element's children.
func (b *Builder) FragmentNodes() []dom.NodeID {
	if !b.fragment {
		return nil
	}
	root := b.Doc.DocumentElement()
	if root == dom.NoNode {
		return nil
	}
	return b.Arena.Children(root)
}

