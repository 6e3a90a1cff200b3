// Package htmltok implements the tokenization stage of the HTML parsing
// pipeline: an input stream plus a state-machine tokenizer that turns
// characters into the Token stream the tree constructor consumes.
package htmltok

import (
	"strings"

	"github.com/crestfall/htmlcore/internal/htmlspec"
	"github.com/crestfall/htmlcore/parseerr"
)

// Options configures a Tokenizer's behavior at construction time.
type Options struct {
	// AllowCDATA permits CDATA sections (only meaningful once the tree
	// constructor tells the tokenizer it is inside foreign content).
	AllowCDATA bool
}

// Tokenizer turns an InputStream into a sequence of Tokens by walking the
// WHATWG tokenization state machine. Tree construction drives it one
// token at a time via Next; a handful of states (RAWTEXT/RCDATA/script
// data) are switched into explicitly by the tree constructor after seeing
// a start tag, via SwitchTo.
type Tokenizer struct {
	input *InputStream
	opts  Options
	sink  parseerr.Sink

	state       State
	returnState State

	pending []Token

	tag         Token
	attrName    strings.Builder
	attrValue   strings.Builder
	haveAttr    bool
	comment     strings.Builder
	doctype     Token
	doctypeName strings.Builder

	lastStartTag string
	tempBuffer   strings.Builder
	charRefCode  int64

	textBuf strings.Builder
}

// New returns a Tokenizer over source, starting in the Data state, using
// parseerr.Discard as its error sink.
func New(source string) *Tokenizer {
	return NewWithOptions(source, Options{}, parseerr.Discard)
}

// NewWithOptions returns a Tokenizer over source with opts applied,
// reporting parse errors to sink (parseerr.Discard is a valid sink).
func NewWithOptions(source string, opts Options, sink parseerr.Sink) *Tokenizer {
	if sink == nil {
		sink = parseerr.Discard
	}
	return &Tokenizer{
		input:       NewInputStream(source),
		opts:        opts,
		sink:        sink,
		state:       DataState,
		returnState: DataState,
	}
}

// SwitchTo forces the tokenizer into state. The tree constructor calls
// this after a start tag names a RAWTEXT/RCDATA/PLAINTEXT/script element,
// since only tree construction knows which start tag was just emitted.
func (t *Tokenizer) SwitchTo(s State) {
	t.state = s
}

// SetLastStartTag records the name tree construction will compare
// against when deciding whether an end tag is the "appropriate" one to
// leave RAWTEXT/RCDATA early.
func (t *Tokenizer) SetLastStartTag(name string) {
	t.lastStartTag = name
}

// SetAllowCDATA toggles whether a CDATA section is accepted in the
// MarkupDeclarationOpen state; the tree constructor sets this based on
// whether the current insertion point is foreign content.
func (t *Tokenizer) SetAllowCDATA(allow bool) {
	t.opts.AllowCDATA = allow
}

func (t *Tokenizer) err(code parseerr.Code) {
	line, col := t.input.Position()
	t.sink.Report(parseerr.New(code, line, col))
}

func (t *Tokenizer) emit(tok Token) {
	t.pending = append(t.pending, tok)
}

func (t *Tokenizer) flushText() {
	if t.textBuf.Len() > 0 {
		t.emit(NewCharacterToken(t.textBuf.String()))
		t.textBuf.Reset()
	}
}

func (t *Tokenizer) emitChar(s string) {
	t.textBuf.WriteString(s)
}

// Next runs the state machine until it has produced at least one token
// (or the input is exhausted), and returns that token. At end of input it
// returns an EOFToken forever after.
func (t *Tokenizer) Next() Token {
	for len(t.pending) == 0 {
		if !t.step() {
			t.flushText()
			if len(t.pending) == 0 {
				t.pending = append(t.pending, Token{Type: EOFToken})
			}
			break
		}
	}
	tok := t.pending[0]
	t.pending = t.pending[1:]
	return tok
}

// step executes state transitions until at least one token has been
// queued or pushed to textBuf-then-flushed, or the input is exhausted. It
// returns false once the input stream is drained and there is nothing
// left to process.
func (t *Tokenizer) step() bool {
	if t.input.exhausted() && t.state != CharacterReferenceState {
		return t.handleEOF()
	}
	switch t.state {
	case DataState:
		t.stepData()
	case RCDATAState:
		t.stepRCDATA()
	case RAWTEXTState:
		t.stepRAWTEXT()
	case ScriptDataState:
		t.stepScriptData()
	case PLAINTEXTState:
		t.stepPlaintext()
	case TagOpenState:
		t.stepTagOpen()
	case EndTagOpenState:
		t.stepEndTagOpen()
	case TagNameState:
		t.stepTagName()
	case RCDATALessThanSignState:
		t.stepRCDATALessThanSign()
	case RCDATAEndTagOpenState:
		t.stepRCDATAEndTagOpen()
	case RCDATAEndTagNameState:
		t.stepRCDATAEndTagName()
	case RAWTEXTLessThanSignState:
		t.stepRAWTEXTLessThanSign()
	case RAWTEXTEndTagOpenState:
		t.stepRAWTEXTEndTagOpen()
	case RAWTEXTEndTagNameState:
		t.stepRAWTEXTEndTagName()
	case ScriptDataLessThanSignState:
		t.stepScriptDataLessThanSign()
	case ScriptDataEndTagOpenState:
		t.stepScriptDataEndTagOpen()
	case ScriptDataEndTagNameState:
		t.stepScriptDataEndTagName()
	case ScriptDataEscapeStartState:
		t.stepScriptDataEscapeStart()
	case ScriptDataEscapeStartDashState:
		t.stepScriptDataEscapeStartDash()
	case ScriptDataEscapedState:
		t.stepScriptDataEscaped()
	case ScriptDataEscapedDashState:
		t.stepScriptDataEscapedDash()
	case ScriptDataEscapedDashDashState:
		t.stepScriptDataEscapedDashDash()
	case ScriptDataEscapedLessThanSignState:
		t.stepScriptDataEscapedLessThanSign()
	case ScriptDataEscapedEndTagOpenState:
		t.stepScriptDataEscapedEndTagOpen()
	case ScriptDataEscapedEndTagNameState:
		t.stepScriptDataEscapedEndTagName()
	case ScriptDataDoubleEscapeStartState:
		t.stepScriptDataDoubleEscapeStart()
	case ScriptDataDoubleEscapedState:
		t.stepScriptDataDoubleEscaped()
	case ScriptDataDoubleEscapedDashState:
		t.stepScriptDataDoubleEscapedDash()
	case ScriptDataDoubleEscapedDashDashState:
		t.stepScriptDataDoubleEscapedDashDash()
	case ScriptDataDoubleEscapedLessThanSignState:
		t.stepScriptDataDoubleEscapedLessThanSign()
	case ScriptDataDoubleEscapeEndState:
		t.stepScriptDataDoubleEscapeEnd()
	case BeforeAttributeNameState:
		t.stepBeforeAttributeName()
	case AttributeNameState:
		t.stepAttributeName()
	case AfterAttributeNameState:
		t.stepAfterAttributeName()
	case BeforeAttributeValueState:
		t.stepBeforeAttributeValue()
	case AttributeValueDoubleQuotedState:
		t.stepAttributeValueQuoted('"')
	case AttributeValueSingleQuotedState:
		t.stepAttributeValueQuoted('\'')
	case AttributeValueUnquotedState:
		t.stepAttributeValueUnquoted()
	case AfterAttributeValueQuotedState:
		t.stepAfterAttributeValueQuoted()
	case SelfClosingStartTagState:
		t.stepSelfClosingStartTag()
	case BogusCommentState:
		t.stepBogusComment()
	case MarkupDeclarationOpenState:
		t.stepMarkupDeclarationOpen()
	case CommentStartState:
		t.stepCommentStart()
	case CommentStartDashState:
		t.stepCommentStartDash()
	case CommentState:
		t.stepComment()
	case CommentLessThanSignState:
		t.stepCommentLessThanSign()
	case CommentLessThanSignBangState:
		t.stepCommentLessThanSignBang()
	case CommentLessThanSignBangDashState:
		t.stepCommentLessThanSignBangDash()
	case CommentLessThanSignBangDashDashState:
		t.stepCommentLessThanSignBangDashDash()
	case CommentEndDashState:
		t.stepCommentEndDash()
	case CommentEndState:
		t.stepCommentEnd()
	case CommentEndBangState:
		t.stepCommentEndBang()
	case DoctypeState:
		t.stepDoctype()
	case BeforeDoctypeNameState:
		t.stepBeforeDoctypeName()
	case DoctypeNameState:
		t.stepDoctypeName()
	case AfterDoctypeNameState:
		t.stepAfterDoctypeName()
	case AfterDoctypePublicKeywordState:
		t.stepAfterDoctypePublicKeyword()
	case BeforeDoctypePublicIdentifierState:
		t.stepBeforeDoctypePublicIdentifier()
	case DoctypePublicIdentifierDoubleQuotedState:
		t.stepDoctypePublicIdentifierQuoted('"')
	case DoctypePublicIdentifierSingleQuotedState:
		t.stepDoctypePublicIdentifierQuoted('\'')
	case AfterDoctypePublicIdentifierState:
		t.stepAfterDoctypePublicIdentifier()
	case BetweenDoctypePublicAndSystemIdentifiersState:
		t.stepBetweenDoctypePublicAndSystemIdentifiers()
	case AfterDoctypeSystemKeywordState:
		t.stepAfterDoctypeSystemKeyword()
	case BeforeDoctypeSystemIdentifierState:
		t.stepBeforeDoctypeSystemIdentifier()
	case DoctypeSystemIdentifierDoubleQuotedState:
		t.stepDoctypeSystemIdentifierQuoted('"')
	case DoctypeSystemIdentifierSingleQuotedState:
		t.stepDoctypeSystemIdentifierQuoted('\'')
	case AfterDoctypeSystemIdentifierState:
		t.stepAfterDoctypeSystemIdentifier()
	case BogusDoctypeState:
		t.stepBogusDoctype()
	case CDATASectionState:
		t.stepCDATASection()
	case CDATASectionBracketState:
		t.stepCDATASectionBracket()
	case CDATASectionEndState:
		t.stepCDATASectionEnd()
	case CharacterReferenceState:
		t.stepCharacterReference()
	case NamedCharacterReferenceState:
		t.stepNamedCharacterReference()
	case AmbiguousAmpersandState:
		t.stepAmbiguousAmpersand()
	case NumericCharacterReferenceState:
		t.stepNumericCharacterReference()
	case HexadecimalCharacterReferenceStartState:
		t.stepHexadecimalCharacterReferenceStart()
	case DecimalCharacterReferenceStartState:
		t.stepDecimalCharacterReferenceStart()
	case HexadecimalCharacterReferenceState:
		t.stepHexadecimalCharacterReference()
	case DecimalCharacterReferenceState:
		t.stepDecimalCharacterReference()
	case NumericCharacterReferenceEndState:
		t.stepNumericCharacterReferenceEnd()
	default:
		t.err(parseerr.NotImplementedCode)
		t.state = DataState
	}
	return true
}

func (t *Tokenizer) handleEOF() bool {
	switch t.state {
	case TagOpenState:
		t.err(parseerr.EOFBeforeTagName)
		t.emitChar("<")
	case RAWTEXTLessThanSignState, RCDATALessThanSignState, ScriptDataLessThanSignState:
		t.emitChar("<")
	case CommentState, CommentStartState, CommentStartDashState, CommentEndDashState,
		CommentEndState, CommentEndBangState, CommentLessThanSignState,
		CommentLessThanSignBangState, CommentLessThanSignBangDashState,
		CommentLessThanSignBangDashDashState:
		t.err(parseerr.EOFInComment)
		t.flushText()
		t.emit(NewCommentToken(t.comment.String()))
	case DoctypeState, BeforeDoctypeNameState, DoctypeNameState, AfterDoctypeNameState,
		AfterDoctypePublicKeywordState, BeforeDoctypePublicIdentifierState,
		DoctypePublicIdentifierDoubleQuotedState, DoctypePublicIdentifierSingleQuotedState,
		AfterDoctypePublicIdentifierState, BetweenDoctypePublicAndSystemIdentifiersState,
		AfterDoctypeSystemKeywordState, BeforeDoctypeSystemIdentifierState,
		DoctypeSystemIdentifierDoubleQuotedState, DoctypeSystemIdentifierSingleQuotedState,
		AfterDoctypeSystemIdentifierState:
		t.err(parseerr.EOFInDoctype)
		t.doctype.ForceQuirks = true
		t.flushText()
		t.flushDoctype()
	case TagNameState, BeforeAttributeNameState, AttributeNameState, AfterAttributeNameState,
		BeforeAttributeValueState, AttributeValueDoubleQuotedState, AttributeValueSingleQuotedState,
		AttributeValueUnquotedState, AfterAttributeValueQuotedState, SelfClosingStartTagState:
		t.err(parseerr.EOFInTag)
	}
	t.state = DataState
	return false
}

func (t *Tokenizer) flushDoctype() {
	t.doctype.Type = DoctypeToken
	t.doctype.Name = t.doctypeName.String()
	t.emit(t.doctype)
	t.doctype = Token{}
	t.doctypeName.Reset()
}

func (t *Tokenizer) newTag(kind TokenKind) {
	t.tag = Token{Type: kind}
}

func (t *Tokenizer) flushTag() {
	if t.haveAttr {
		t.commitAttr()
	}
	t.flushText()
	t.emit(t.tag)
	if t.tag.Type == StartTagToken {
		t.lastStartTag = t.tag.Name
	}
	t.tag = Token{}
}

func (t *Tokenizer) commitAttr() {
	name := t.attrName.String()
	value := t.attrValue.String()
	for _, a := range t.tag.Attrs {
		if a.Name == name {
			t.err(parseerr.DuplicateAttribute)
			t.attrName.Reset()
			t.attrValue.Reset()
			t.haveAttr = false
			return
		}
	}
	t.tag.Attrs = append(t.tag.Attrs, Attr{Name: name, Value: value})
	t.attrName.Reset()
	t.attrValue.Reset()
	t.haveAttr = false
}

// isAppropriateEndTag reports whether the end tag currently being built
// matches the most recently emitted start tag's name — the condition
// that lets RAWTEXT/RCDATA/script-data leave their end-tag-name state
// early rather than treating "</div" as literal text.
func (t *Tokenizer) isAppropriateEndTag() bool {
	return t.tag.Type == EndTagToken && t.tag.Name != "" && t.tag.Name == t.lastStartTag
}

// --- Data / RCDATA / RAWTEXT / PLAINTEXT / ScriptData -----------------

func (t *Tokenizer) stepData() {
	c := t.input.advance()
	switch c {
	case '&':
		t.returnState = DataState
		t.state = CharacterReferenceState
	case '<':
		t.state = TagOpenState
	case 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.emitChar(string(c))
	default:
		t.emitChar(string(c))
	}
}

func (t *Tokenizer) stepRCDATA() {
	c := t.input.advance()
	switch c {
	case '&':
		t.returnState = RCDATAState
		t.state = CharacterReferenceState
	case '<':
		t.state = RCDATALessThanSignState
	case 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.emitChar("�")
	default:
		t.emitChar(string(c))
	}
}

func (t *Tokenizer) stepRAWTEXT() {
	c := t.input.advance()
	switch c {
	case '<':
		t.state = RAWTEXTLessThanSignState
	case 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.emitChar("�")
	default:
		t.emitChar(string(c))
	}
}

func (t *Tokenizer) stepPlaintext() {
	c := t.input.advance()
	if c == 0 {
		t.err(parseerr.UnexpectedNullCharacter)
		t.emitChar("�")
		return
	}
	t.emitChar(string(c))
}

func (t *Tokenizer) stepScriptData() {
	c := t.input.advance()
	switch c {
	case '<':
		t.state = ScriptDataLessThanSignState
	case 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.emitChar("�")
	default:
		t.emitChar(string(c))
	}
}

// --- Tag open family ----------------------------------------------------

func (t *Tokenizer) stepTagOpen() {
	c := t.input.current()
	switch {
	case c == '!':
		t.input.advance()
		t.state = MarkupDeclarationOpenState
	case c == '/':
		t.input.advance()
		t.state = EndTagOpenState
	case htmlspec.IsUpperASCII(c) || (c >= 'a' && c <= 'z'):
		t.newTag(StartTagToken)
		t.state = TagNameState
	case c == '?':
		t.err(parseerr.UnexpectedQuestionMarkInsteadOfTagName)
		t.comment.Reset()
		t.state = BogusCommentState
	default:
		t.err(parseerr.InvalidFirstCharacterOfTagName)
		t.emitChar("<")
		t.state = DataState
	}
}

func (t *Tokenizer) stepEndTagOpen() {
	c := t.input.current()
	switch {
	case htmlspec.IsUpperASCII(c) || (c >= 'a' && c <= 'z'):
		t.newTag(EndTagToken)
		t.state = TagNameState
	case c == '>':
		t.input.advance()
		t.err(parseerr.MissingEndTagName)
		t.state = DataState
	case c == eof:
		t.err(parseerr.EOFBeforeTagName)
		t.emitChar("</")
		t.state = DataState
	default:
		t.err(parseerr.InvalidFirstCharacterOfTagName)
		t.comment.Reset()
		t.state = BogusCommentState
	}
}

func (t *Tokenizer) stepTagName() {
	c := t.input.advance()
	switch {
	case htmlspec.IsSpace(c):
		t.state = BeforeAttributeNameState
	case c == '/':
		t.state = SelfClosingStartTagState
	case c == '>':
		t.state = DataState
		t.flushTag()
	case htmlspec.IsUpperASCII(c):
		t.tag.Name += string(htmlspec.LowerASCII(c))
	case c == 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.tag.Name += "�"
	default:
		t.tag.Name += string(c)
	}
}

// --- RCDATA end tag ------------------------------------------------------

func (t *Tokenizer) stepRCDATALessThanSign() {
	if t.input.current() == '/' {
		t.input.advance()
		t.tempBuffer.Reset()
		t.state = RCDATAEndTagOpenState
		return
	}
	t.emitChar("<")
	t.state = RCDATAState
}

func (t *Tokenizer) stepRCDATAEndTagOpen() {
	c := t.input.current()
	if htmlspec.IsUpperASCII(c) || (c >= 'a' && c <= 'z') {
		t.newTag(EndTagToken)
		t.state = RCDATAEndTagNameState
		return
	}
	t.emitChar("</")
	t.state = RCDATAState
}

func (t *Tokenizer) stepRCDATAEndTagName() {
	t.stepGenericEndTagName(RCDATAState)
}

func (t *Tokenizer) stepRAWTEXTLessThanSign() {
	if t.input.current() == '/' {
		t.input.advance()
		t.tempBuffer.Reset()
		t.state = RAWTEXTEndTagOpenState
		return
	}
	t.emitChar("<")
	t.state = RAWTEXTState
}

func (t *Tokenizer) stepRAWTEXTEndTagOpen() {
	c := t.input.current()
	if htmlspec.IsUpperASCII(c) || (c >= 'a' && c <= 'z') {
		t.newTag(EndTagToken)
		t.state = RAWTEXTEndTagNameState
		return
	}
	t.emitChar("</")
	t.state = RAWTEXTState
}

func (t *Tokenizer) stepRAWTEXTEndTagName() {
	t.stepGenericEndTagName(RAWTEXTState)
}

// stepGenericEndTagName implements the shared "</tagname" matching shape
// used by RCDATA, RAWTEXT and script-data end tag states: an appropriate
// end tag (matching lastStartTag) transitions to tag dispatch states;
// anything else is emitted back as literal text and reprocessed in
// fallbackState.
func (t *Tokenizer) stepGenericEndTagName(fallbackState State) {
	c := t.input.current()
	switch {
	case htmlspec.IsSpace(c) && t.isAppropriateEndTag():
		t.input.advance()
		t.state = BeforeAttributeNameState
		return
	case c == '/' && t.isAppropriateEndTag():
		t.input.advance()
		t.state = SelfClosingStartTagState
		return
	case c == '>' && t.isAppropriateEndTag():
		t.input.advance()
		t.state = DataState
		t.flushTag()
		return
	case htmlspec.IsUpperASCII(c):
		t.input.advance()
		t.tag.Name += string(htmlspec.LowerASCII(c))
		t.tempBuffer.WriteRune(c)
		return
	case c >= 'a' && c <= 'z':
		t.input.advance()
		t.tag.Name += string(c)
		t.tempBuffer.WriteRune(c)
		return
	}
	t.emitChar("</" + t.tempBuffer.String())
	t.tag = Token{}
	t.state = fallbackState
}

// --- script data end tag + escape states ---------------------------------

func (t *Tokenizer) stepScriptDataLessThanSign() {
	c := t.input.current()
	if c == '/' {
		t.input.advance()
		t.tempBuffer.Reset()
		t.state = ScriptDataEndTagOpenState
		return
	}
	if c == '!' {
		t.input.advance()
		t.emitChar("<!")
		t.state = ScriptDataEscapeStartState
		return
	}
	t.emitChar("<")
	t.state = ScriptDataState
}

func (t *Tokenizer) stepScriptDataEndTagOpen() {
	c := t.input.current()
	if htmlspec.IsUpperASCII(c) || (c >= 'a' && c <= 'z') {
		t.newTag(EndTagToken)
		t.state = ScriptDataEndTagNameState
		return
	}
	t.emitChar("</")
	t.state = ScriptDataState
}

func (t *Tokenizer) stepScriptDataEndTagName() {
	t.stepGenericEndTagName(ScriptDataState)
}

func (t *Tokenizer) stepScriptDataEscapeStart() {
	if t.input.current() == '-' {
		t.input.advance()
		t.emitChar("-")
		t.state = ScriptDataEscapeStartDashState
		return
	}
	t.state = ScriptDataState
}

func (t *Tokenizer) stepScriptDataEscapeStartDash() {
	if t.input.current() == '-' {
		t.input.advance()
		t.emitChar("-")
		t.state = ScriptDataEscapedDashDashState
		return
	}
	t.state = ScriptDataState
}

func (t *Tokenizer) stepScriptDataEscaped() {
	c := t.input.advance()
	switch c {
	case '-':
		t.emitChar("-")
		t.state = ScriptDataEscapedDashState
	case '<':
		t.state = ScriptDataEscapedLessThanSignState
	case 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.emitChar("�")
	default:
		t.emitChar(string(c))
	}
}

func (t *Tokenizer) stepScriptDataEscapedDash() {
	c := t.input.advance()
	switch c {
	case '-':
		t.emitChar("-")
		t.state = ScriptDataEscapedDashDashState
	case '<':
		t.state = ScriptDataEscapedLessThanSignState
	case 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.emitChar("�")
		t.state = ScriptDataEscapedState
	default:
		t.emitChar(string(c))
		t.state = ScriptDataEscapedState
	}
}

func (t *Tokenizer) stepScriptDataEscapedDashDash() {
	c := t.input.advance()
	switch c {
	case '-':
		t.emitChar("-")
	case '<':
		t.state = ScriptDataEscapedLessThanSignState
	case '>':
		t.emitChar(">")
		t.state = ScriptDataState
	case 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.emitChar("�")
		t.state = ScriptDataEscapedState
	default:
		t.emitChar(string(c))
		t.state = ScriptDataEscapedState
	}
}

func (t *Tokenizer) stepScriptDataEscapedLessThanSign() {
	c := t.input.current()
	if c == '/' {
		t.input.advance()
		t.tempBuffer.Reset()
		t.state = ScriptDataEscapedEndTagOpenState
		return
	}
	if htmlspec.IsUpperASCII(c) || (c >= 'a' && c <= 'z') {
		t.tempBuffer.Reset()
		t.emitChar("<")
		t.state = ScriptDataDoubleEscapeStartState
		return
	}
	t.emitChar("<")
	t.state = ScriptDataEscapedState
}

func (t *Tokenizer) stepScriptDataEscapedEndTagOpen() {
	c := t.input.current()
	if htmlspec.IsUpperASCII(c) || (c >= 'a' && c <= 'z') {
		t.newTag(EndTagToken)
		t.state = ScriptDataEscapedEndTagNameState
		return
	}
	t.emitChar("</")
	t.state = ScriptDataEscapedState
}

func (t *Tokenizer) stepScriptDataEscapedEndTagName() {
	t.stepGenericEndTagName(ScriptDataEscapedState)
}

func (t *Tokenizer) stepScriptDataDoubleEscapeStart() {
	c := t.input.current()
	if htmlspec.IsSpace(c) || c == '/' || c == '>' {
		t.input.advance()
		t.emitChar(string(c))
		if strings.EqualFold(t.tempBuffer.String(), "script") {
			t.state = ScriptDataDoubleEscapedState
		} else {
			t.state = ScriptDataEscapedState
		}
		return
	}
	if htmlspec.IsUpperASCII(c) {
		t.input.advance()
		t.tempBuffer.WriteRune(htmlspec.LowerASCII(c))
		t.emitChar(string(c))
		return
	}
	if c >= 'a' && c <= 'z' {
		t.input.advance()
		t.tempBuffer.WriteRune(c)
		t.emitChar(string(c))
		return
	}
	t.state = ScriptDataEscapedState
}

func (t *Tokenizer) stepScriptDataDoubleEscaped() {
	c := t.input.advance()
	switch c {
	case '-':
		t.emitChar("-")
		t.state = ScriptDataDoubleEscapedDashState
	case '<':
		t.emitChar("<")
		t.state = ScriptDataDoubleEscapedLessThanSignState
	case 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.emitChar("�")
	default:
		t.emitChar(string(c))
	}
}

func (t *Tokenizer) stepScriptDataDoubleEscapedDash() {
	c := t.input.advance()
	switch c {
	case '-':
		t.emitChar("-")
		t.state = ScriptDataDoubleEscapedDashDashState
	case '<':
		t.emitChar("<")
		t.state = ScriptDataDoubleEscapedLessThanSignState
	case 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.emitChar("�")
		t.state = ScriptDataDoubleEscapedState
	default:
		t.emitChar(string(c))
		t.state = ScriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) stepScriptDataDoubleEscapedDashDash() {
	c := t.input.advance()
	switch c {
	case '-':
		t.emitChar("-")
	case '<':
		t.emitChar("<")
		t.state = ScriptDataDoubleEscapedLessThanSignState
	case '>':
		t.emitChar(">")
		t.state = ScriptDataState
	case 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.emitChar("�")
		t.state = ScriptDataDoubleEscapedState
	default:
		t.emitChar(string(c))
		t.state = ScriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) stepScriptDataDoubleEscapedLessThanSign() {
	if t.input.current() == '/' {
		t.input.advance()
		t.tempBuffer.Reset()
		t.emitChar("/")
		t.state = ScriptDataDoubleEscapeEndState
		return
	}
	t.state = ScriptDataDoubleEscapedState
}

func (t *Tokenizer) stepScriptDataDoubleEscapeEnd() {
	c := t.input.current()
	if htmlspec.IsSpace(c) || c == '/' || c == '>' {
		t.input.advance()
		t.emitChar(string(c))
		if strings.EqualFold(t.tempBuffer.String(), "script") {
			t.state = ScriptDataEscapedState
		} else {
			t.state = ScriptDataDoubleEscapedState
		}
		return
	}
	if htmlspec.IsUpperASCII(c) {
		t.input.advance()
		t.tempBuffer.WriteRune(htmlspec.LowerASCII(c))
		t.emitChar(string(c))
		return
	}
	if c >= 'a' && c <= 'z' {
		t.input.advance()
		t.tempBuffer.WriteRune(c)
		t.emitChar(string(c))
		return
	}
	t.state = ScriptDataDoubleEscapedState
}

// --- Attributes -----------------------------------------------------------

func (t *Tokenizer) stepBeforeAttributeName() {
	c := t.input.current()
	switch {
	case htmlspec.IsSpace(c):
		t.input.advance()
	case c == '/' || c == '>' || c == eof:
		t.state = AfterAttributeNameState
	case c == '=':
		t.input.advance()
		t.err(parseerr.UnexpectedEqualsSignBeforeAttributeName)
		t.startAttr(string(c))
		t.state = AttributeNameState
	default:
		t.startAttr("")
		t.state = AttributeNameState
	}
}

func (t *Tokenizer) startAttr(initial string) {
	if t.haveAttr {
		t.commitAttr()
	}
	t.haveAttr = true
	t.attrName.Reset()
	t.attrValue.Reset()
	t.attrName.WriteString(initial)
}

func (t *Tokenizer) stepAttributeName() {
	c := t.input.advance()
	switch {
	case htmlspec.IsSpace(c) || c == '/' || c == '>':
		t.input.reconsume()
		t.state = AfterAttributeNameState
	case c == eof:
		t.state = AfterAttributeNameState
	case c == '=':
		t.state = BeforeAttributeValueState
	case htmlspec.IsUpperASCII(c):
		t.attrName.WriteRune(htmlspec.LowerASCII(c))
	case c == 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.attrName.WriteString("�")
	case c == '"' || c == '\'' || c == '<':
		t.err(parseerr.UnexpectedCharacterInAttributeName)
		t.attrName.WriteRune(c)
	default:
		if !t.haveAttr {
			t.startAttr("")
		}
		t.attrName.WriteRune(c)
	}
}

func (t *Tokenizer) stepAfterAttributeName() {
	c := t.input.current()
	switch {
	case htmlspec.IsSpace(c):
		t.input.advance()
	case c == '/':
		t.input.advance()
		t.state = SelfClosingStartTagState
	case c == '=':
		t.input.advance()
		t.state = BeforeAttributeValueState
	case c == '>':
		t.input.advance()
		t.state = DataState
		t.flushTag()
	case c == eof:
		t.err(parseerr.EOFInTag)
	default:
		t.startAttr("")
		t.state = AttributeNameState
	}
}

func (t *Tokenizer) stepBeforeAttributeValue() {
	c := t.input.current()
	switch {
	case htmlspec.IsSpace(c):
		t.input.advance()
	case c == '"':
		t.input.advance()
		t.state = AttributeValueDoubleQuotedState
	case c == '\'':
		t.input.advance()
		t.state = AttributeValueSingleQuotedState
	case c == '>':
		t.input.advance()
		t.err(parseerr.MissingAttributeValue)
		t.state = DataState
		t.flushTag()
	default:
		t.state = AttributeValueUnquotedState
	}
}

func (t *Tokenizer) stepAttributeValueQuoted(quote rune) {
	c := t.input.advance()
	switch c {
	case quote:
		t.state = AfterAttributeValueQuotedState
	case '&':
		t.returnState = t.state
		t.state = CharacterReferenceState
	case 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.attrValue.WriteString("�")
	case eof:
		t.err(parseerr.EOFInTag)
	default:
		t.attrValue.WriteRune(c)
	}
}

func (t *Tokenizer) stepAttributeValueUnquoted() {
	c := t.input.advance()
	switch {
	case htmlspec.IsSpace(c):
		t.state = BeforeAttributeNameState
	case c == '&':
		t.returnState = AttributeValueUnquotedState
		t.state = CharacterReferenceState
	case c == '>':
		t.state = DataState
		t.flushTag()
	case c == 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.attrValue.WriteString("�")
	case c == '"' || c == '\'' || c == '<' || c == '=' || c == '`':
		t.err(parseerr.UnexpectedCharacterInUnquotedAttributeValue)
		t.attrValue.WriteRune(c)
	case c == eof:
		t.err(parseerr.EOFInTag)
	default:
		t.attrValue.WriteRune(c)
	}
}

func (t *Tokenizer) stepAfterAttributeValueQuoted() {
	c := t.input.current()
	switch {
	case htmlspec.IsSpace(c):
		t.input.advance()
		t.state = BeforeAttributeNameState
	case c == '/':
		t.input.advance()
		t.state = SelfClosingStartTagState
	case c == '>':
		t.input.advance()
		t.state = DataState
		t.flushTag()
	case c == eof:
		t.err(parseerr.EOFInTag)
	default:
		t.err(parseerr.MissingWhitespaceBetweenAttributes)
		t.state = BeforeAttributeNameState
	}
}

func (t *Tokenizer) stepSelfClosingStartTag() {
	c := t.input.current()
	switch c {
	case '>':
		t.input.advance()
		t.tag.SelfClosing = true
		t.state = DataState
		t.flushTag()
	case eof:
		t.err(parseerr.EOFInTag)
	default:
		t.err(parseerr.UnexpectedSolidusInTag)
		t.state = BeforeAttributeNameState
	}
}

// --- Comments ---------------------------------------------------------

func (t *Tokenizer) stepBogusComment() {
	c := t.input.advance()
	switch c {
	case '>':
		t.flushText()
		t.emit(NewCommentToken(t.comment.String()))
		t.comment.Reset()
		t.state = DataState
	case eof:
		t.flushText()
		t.emit(NewCommentToken(t.comment.String()))
		t.comment.Reset()
	case 0:
		t.comment.WriteString("�")
	default:
		t.comment.WriteRune(c)
	}
}

func (t *Tokenizer) stepMarkupDeclarationOpen() {
	if t.input.consumeWord("--", false) != "" {
		t.comment.Reset()
		t.state = CommentStartState
		return
	}
	if t.input.consumeWord("DOCTYPE", true) != "" {
		t.state = DoctypeState
		return
	}
	if t.opts.AllowCDATA && t.input.consumeWord("[CDATA[", false) != "" {
		t.state = CDATASectionState
		return
	}
	t.err(parseerr.IncorrectlyOpenedComment)
	t.comment.Reset()
	t.state = BogusCommentState
}

func (t *Tokenizer) stepCommentStart() {
	c := t.input.current()
	switch c {
	case '-':
		t.input.advance()
		t.state = CommentStartDashState
	case '>':
		t.input.advance()
		t.err(parseerr.AbruptClosingOfEmptyComment)
		t.flushText()
		t.emit(NewCommentToken(t.comment.String()))
		t.comment.Reset()
		t.state = DataState
	default:
		t.state = CommentState
	}
}

func (t *Tokenizer) stepCommentStartDash() {
	c := t.input.current()
	switch c {
	case '-':
		t.input.advance()
		t.state = CommentEndState
	case '>':
		t.input.advance()
		t.err(parseerr.AbruptClosingOfEmptyComment)
		t.flushText()
		t.emit(NewCommentToken(t.comment.String()))
		t.comment.Reset()
		t.state = DataState
	case eof:
		t.err(parseerr.EOFInComment)
		t.flushText()
		t.emit(NewCommentToken(t.comment.String()))
		t.comment.Reset()
	default:
		t.comment.WriteRune('-')
		t.state = CommentState
	}
}

func (t *Tokenizer) stepComment() {
	c := t.input.advance()
	switch c {
	case '<':
		t.comment.WriteRune(c)
		t.state = CommentLessThanSignState
	case '-':
		t.state = CommentEndDashState
	case 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.comment.WriteString("�")
	default:
		t.comment.WriteRune(c)
	}
}

func (t *Tokenizer) stepCommentLessThanSign() {
	c := t.input.current()
	switch c {
	case '!':
		t.input.advance()
		t.comment.WriteRune(c)
		t.state = CommentLessThanSignBangState
	case '<':
		t.input.advance()
		t.comment.WriteRune(c)
	default:
		t.state = CommentState
	}
}

func (t *Tokenizer) stepCommentLessThanSignBang() {
	if t.input.current() == '-' {
		t.input.advance()
		t.state = CommentLessThanSignBangDashState
		return
	}
	t.state = CommentState
}

func (t *Tokenizer) stepCommentLessThanSignBangDash() {
	if t.input.current() == '-' {
		t.input.advance()
		t.state = CommentLessThanSignBangDashDashState
		return
	}
	t.state = CommentEndDashState
}

func (t *Tokenizer) stepCommentLessThanSignBangDashDash() {
	if t.input.current() == '>' {
		t.state = CommentEndState
		return
	}
	if t.input.current() == eof {
		t.state = CommentEndState
		return
	}
	t.err(parseerr.NestedComment)
	t.state = CommentEndState
}

func (t *Tokenizer) stepCommentEndDash() {
	c := t.input.current()
	switch c {
	case '-':
		t.input.advance()
		t.state = CommentEndState
	case eof:
		t.err(parseerr.EOFInComment)
		t.flushText()
		t.emit(NewCommentToken(t.comment.String()))
		t.comment.Reset()
	default:
		t.comment.WriteRune('-')
		t.state = CommentState
	}
}

func (t *Tokenizer) stepCommentEnd() {
	c := t.input.current()
	switch c {
	case '>':
		t.input.advance()
		t.flushText()
		t.emit(NewCommentToken(t.comment.String()))
		t.comment.Reset()
		t.state = DataState
	case '!':
		t.input.advance()
		t.state = CommentEndBangState
	case '-':
		t.input.advance()
		t.comment.WriteRune('-')
	case eof:
		t.err(parseerr.EOFInComment)
		t.flushText()
		t.emit(NewCommentToken(t.comment.String()))
		t.comment.Reset()
	default:
		t.comment.WriteString("--")
		t.state = CommentState
	}
}

func (t *Tokenizer) stepCommentEndBang() {
	c := t.input.current()
	switch c {
	case '-':
		t.input.advance()
		t.comment.WriteString("--!")
		t.state = CommentEndDashState
	case '>':
		t.input.advance()
		t.err(parseerr.IncorrectlyClosedComment)
		t.flushText()
		t.emit(NewCommentToken(t.comment.String()))
		t.comment.Reset()
		t.state = DataState
	case eof:
		t.err(parseerr.EOFInComment)
		t.flushText()
		t.emit(NewCommentToken(t.comment.String()))
		t.comment.Reset()
	default:
		t.comment.WriteString("--!")
		t.state = CommentState
	}
}

// --- DOCTYPE ------------------------------------------------------------

func (t *Tokenizer) stepDoctype() {
	c := t.input.current()
	switch {
	case htmlspec.IsSpace(c):
		t.input.advance()
		t.state = BeforeDoctypeNameState
	case c == '>':
		t.state = BeforeDoctypeNameState
	case c == eof:
		t.err(parseerr.EOFInDoctype)
		t.doctype.ForceQuirks = true
		t.flushText()
		t.flushDoctype()
	default:
		t.err(parseerr.MissingWhitespaceBeforeDoctypeName)
		t.state = BeforeDoctypeNameState
	}
}

func (t *Tokenizer) stepBeforeDoctypeName() {
	c := t.input.advance()
	switch {
	case htmlspec.IsSpace(c):
	case htmlspec.IsUpperASCII(c):
		t.doctypeName.WriteRune(htmlspec.LowerASCII(c))
		t.state = DoctypeNameState
	case c == 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.doctypeName.WriteString("�")
		t.state = DoctypeNameState
	case c == '>':
		t.err(parseerr.MissingDoctypeName)
		t.doctype.ForceQuirks = true
		t.flushText()
		t.flushDoctype()
		t.state = DataState
	case c == eof:
		t.err(parseerr.EOFInDoctype)
		t.doctype.ForceQuirks = true
		t.flushText()
		t.flushDoctype()
	default:
		t.doctypeName.WriteRune(c)
		t.state = DoctypeNameState
	}
}

func (t *Tokenizer) stepDoctypeName() {
	c := t.input.advance()
	switch {
	case htmlspec.IsSpace(c):
		t.state = AfterDoctypeNameState
	case c == '>':
		t.flushText()
		t.flushDoctype()
		t.state = DataState
	case htmlspec.IsUpperASCII(c):
		t.doctypeName.WriteRune(htmlspec.LowerASCII(c))
	case c == 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.doctypeName.WriteString("�")
	case c == eof:
		t.err(parseerr.EOFInDoctype)
		t.doctype.ForceQuirks = true
		t.flushText()
		t.flushDoctype()
	default:
		t.doctypeName.WriteRune(c)
	}
}

func (t *Tokenizer) stepAfterDoctypeName() {
	if t.input.consumeWord("PUBLIC", true) != "" {
		t.state = AfterDoctypePublicKeywordState
		return
	}
	if t.input.consumeWord("SYSTEM", true) != "" {
		t.state = AfterDoctypeSystemKeywordState
		return
	}
	c := t.input.current()
	switch c {
	case '>':
		t.input.advance()
		t.flushText()
		t.flushDoctype()
		t.state = DataState
	case eof:
		t.err(parseerr.EOFInDoctype)
		t.doctype.ForceQuirks = true
		t.flushText()
		t.flushDoctype()
	default:
		if htmlspec.IsSpace(c) {
			t.input.advance()
			return
		}
		t.err(parseerr.InvalidCharacterSequenceAfterDoctypeName)
		t.doctype.ForceQuirks = true
		t.input.advance()
		t.state = BogusDoctypeState
	}
}

func (t *Tokenizer) stepAfterDoctypePublicKeyword() {
	c := t.input.current()
	switch {
	case htmlspec.IsSpace(c):
		t.input.advance()
		t.state = BeforeDoctypePublicIdentifierState
	case c == '"':
		t.input.advance()
		t.err(parseerr.MissingWhitespaceAfterDoctypePublicKeyword)
		t.doctype.PublicID, t.doctype.HasPublicID = "", true
		t.state = DoctypePublicIdentifierDoubleQuotedState
	case c == '\'':
		t.input.advance()
		t.err(parseerr.MissingWhitespaceAfterDoctypePublicKeyword)
		t.doctype.PublicID, t.doctype.HasPublicID = "", true
		t.state = DoctypePublicIdentifierSingleQuotedState
	case c == '>':
		t.input.advance()
		t.err(parseerr.MissingDoctypePublicIdentifier)
		t.doctype.ForceQuirks = true
		t.flushText()
		t.flushDoctype()
		t.state = DataState
	default:
		t.err(parseerr.MissingQuoteBeforeDoctypePublicIdentifier)
		t.doctype.ForceQuirks = true
		t.state = BogusDoctypeState
	}
}

func (t *Tokenizer) stepBeforeDoctypePublicIdentifier() {
	c := t.input.current()
	switch {
	case htmlspec.IsSpace(c):
		t.input.advance()
	case c == '"':
		t.input.advance()
		t.doctype.PublicID, t.doctype.HasPublicID = "", true
		t.state = DoctypePublicIdentifierDoubleQuotedState
	case c == '\'':
		t.input.advance()
		t.doctype.PublicID, t.doctype.HasPublicID = "", true
		t.state = DoctypePublicIdentifierSingleQuotedState
	case c == '>':
		t.input.advance()
		t.err(parseerr.MissingDoctypePublicIdentifier)
		t.doctype.ForceQuirks = true
		t.flushText()
		t.flushDoctype()
		t.state = DataState
	default:
		t.err(parseerr.MissingQuoteBeforeDoctypePublicIdentifier)
		t.doctype.ForceQuirks = true
		t.state = BogusDoctypeState
	}
}

func (t *Tokenizer) stepDoctypePublicIdentifierQuoted(quote rune) {
	c := t.input.advance()
	switch c {
	case quote:
		t.state = AfterDoctypePublicIdentifierState
	case 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.doctype.PublicID += "�"
	case '>':
		t.err(parseerr.AbruptDoctypePublicIdentifier)
		t.doctype.ForceQuirks = true
		t.flushText()
		t.flushDoctype()
		t.state = DataState
	case eof:
		t.err(parseerr.EOFInDoctype)
		t.doctype.ForceQuirks = true
		t.flushText()
		t.flushDoctype()
	default:
		t.doctype.PublicID += string(c)
	}
}

func (t *Tokenizer) stepAfterDoctypePublicIdentifier() {
	c := t.input.current()
	switch {
	case htmlspec.IsSpace(c):
		t.input.advance()
		t.state = BetweenDoctypePublicAndSystemIdentifiersState
	case c == '>':
		t.input.advance()
		t.flushText()
		t.flushDoctype()
		t.state = DataState
	case c == '"':
		t.input.advance()
		t.err(parseerr.MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers)
		t.doctype.SystemID, t.doctype.HasSystemID = "", true
		t.state = DoctypeSystemIdentifierDoubleQuotedState
	case c == '\'':
		t.input.advance()
		t.err(parseerr.MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers)
		t.doctype.SystemID, t.doctype.HasSystemID = "", true
		t.state = DoctypeSystemIdentifierSingleQuotedState
	default:
		t.err(parseerr.MissingQuoteBeforeDoctypeSystemIdentifier)
		t.doctype.ForceQuirks = true
		t.state = BogusDoctypeState
	}
}

func (t *Tokenizer) stepBetweenDoctypePublicAndSystemIdentifiers() {
	c := t.input.current()
	switch {
	case htmlspec.IsSpace(c):
		t.input.advance()
	case c == '>':
		t.input.advance()
		t.flushText()
		t.flushDoctype()
		t.state = DataState
	case c == '"':
		t.input.advance()
		t.doctype.SystemID, t.doctype.HasSystemID = "", true
		t.state = DoctypeSystemIdentifierDoubleQuotedState
	case c == '\'':
		t.input.advance()
		t.doctype.SystemID, t.doctype.HasSystemID = "", true
		t.state = DoctypeSystemIdentifierSingleQuotedState
	default:
		t.err(parseerr.MissingQuoteBeforeDoctypeSystemIdentifier)
		t.doctype.ForceQuirks = true
		t.state = BogusDoctypeState
	}
}

func (t *Tokenizer) stepAfterDoctypeSystemKeyword() {
	c := t.input.current()
	switch {
	case htmlspec.IsSpace(c):
		t.input.advance()
		t.state = BeforeDoctypeSystemIdentifierState
	case c == '"':
		t.input.advance()
		t.err(parseerr.MissingWhitespaceAfterDoctypeSystemKeyword)
		t.doctype.SystemID, t.doctype.HasSystemID = "", true
		t.state = DoctypeSystemIdentifierDoubleQuotedState
	case c == '\'':
		t.input.advance()
		t.err(parseerr.MissingWhitespaceAfterDoctypeSystemKeyword)
		t.doctype.SystemID, t.doctype.HasSystemID = "", true
		t.state = DoctypeSystemIdentifierSingleQuotedState
	case c == '>':
		t.input.advance()
		t.err(parseerr.MissingDoctypeSystemIdentifier)
		t.doctype.ForceQuirks = true
		t.flushText()
		t.flushDoctype()
		t.state = DataState
	default:
		t.err(parseerr.MissingQuoteBeforeDoctypeSystemIdentifier)
		t.doctype.ForceQuirks = true
		t.state = BogusDoctypeState
	}
}

func (t *Tokenizer) stepBeforeDoctypeSystemIdentifier() {
	c := t.input.current()
	switch {
	case htmlspec.IsSpace(c):
		t.input.advance()
	case c == '"':
		t.input.advance()
		t.doctype.SystemID, t.doctype.HasSystemID = "", true
		t.state = DoctypeSystemIdentifierDoubleQuotedState
	case c == '\'':
		t.input.advance()
		t.doctype.SystemID, t.doctype.HasSystemID = "", true
		t.state = DoctypeSystemIdentifierSingleQuotedState
	case c == '>':
		t.input.advance()
		t.err(parseerr.MissingDoctypeSystemIdentifier)
		t.doctype.ForceQuirks = true
		t.flushText()
		t.flushDoctype()
		t.state = DataState
	default:
		t.err(parseerr.MissingQuoteBeforeDoctypeSystemIdentifier)
		t.doctype.ForceQuirks = true
		t.state = BogusDoctypeState
	}
}

func (t *Tokenizer) stepDoctypeSystemIdentifierQuoted(quote rune) {
	c := t.input.advance()
	switch c {
	case quote:
		t.state = AfterDoctypeSystemIdentifierState
	case 0:
		t.err(parseerr.UnexpectedNullCharacter)
		t.doctype.SystemID += "�"
	case '>':
		t.err(parseerr.AbruptDoctypeSystemIdentifier)
		t.doctype.ForceQuirks = true
		t.flushText()
		t.flushDoctype()
		t.state = DataState
	case eof:
		t.err(parseerr.EOFInDoctype)
		t.doctype.ForceQuirks = true
		t.flushText()
		t.flushDoctype()
	default:
		t.doctype.SystemID += string(c)
	}
}

func (t *Tokenizer) stepAfterDoctypeSystemIdentifier() {
	c := t.input.current()
	switch {
	case htmlspec.IsSpace(c):
		t.input.advance()
	case c == '>':
		t.input.advance()
		t.flushText()
		t.flushDoctype()
		t.state = DataState
	case c == eof:
		t.err(parseerr.EOFInDoctype)
		t.doctype.ForceQuirks = true
		t.flushText()
		t.flushDoctype()
	default:
		t.err(parseerr.UnexpectedCharacterAfterDoctypeSystemIdentifier)
		t.state = BogusDoctypeState
	}
}

func (t *Tokenizer) stepBogusDoctype() {
	c := t.input.advance()
	switch c {
	case '>':
		t.flushText()
		t.flushDoctype()
		t.state = DataState
	case 0:
	case eof:
		t.flushText()
		t.flushDoctype()
	}
}

// --- CDATA ---------------------------------------------------------------

func (t *Tokenizer) stepCDATASection() {
	c := t.input.advance()
	switch c {
	case ']':
		t.state = CDATASectionBracketState
	case eof:
	default:
		t.emitChar(string(c))
	}
}

func (t *Tokenizer) stepCDATASectionBracket() {
	if t.input.current() == ']' {
		t.input.advance()
		t.state = CDATASectionEndState
		return
	}
	t.emitChar("]")
	t.state = CDATASectionState
}

func (t *Tokenizer) stepCDATASectionEnd() {
	c := t.input.current()
	switch c {
	case ']':
		t.input.advance()
		t.emitChar("]")
	case '>':
		t.input.advance()
		t.state = DataState
	default:
		t.emitChar("]]")
		t.state = CDATASectionState
	}
}

// --- Character references -------------------------------------------------

func (t *Tokenizer) stepCharacterReference() {
	t.tempBuffer.Reset()
	t.tempBuffer.WriteRune('&')
	c := t.input.current()
	if htmlspec.IsAlnumASCII(c) {
		t.state = NamedCharacterReferenceState
		return
	}
	if c == '#' {
		t.input.advance()
		t.tempBuffer.WriteRune('#')
		t.state = NumericCharacterReferenceState
		return
	}
	t.flushCharRefLiteral()
	t.state = t.returnState
}

func (t *Tokenizer) flushCharRefLiteral() {
	t.writeRefOutput(t.tempBuffer.String())
}

func (t *Tokenizer) writeRefOutput(s string) {
	if t.inAttributeValueState() {
		t.attrValue.WriteString(s)
	} else {
		t.emitChar(s)
	}
}

func (t *Tokenizer) inAttributeValueState() bool {
	switch t.returnState {
	case AttributeValueDoubleQuotedState, AttributeValueSingleQuotedState, AttributeValueUnquotedState:
		return true
	}
	return false
}

func (t *Tokenizer) stepNamedCharacterReference() {
	// Greedy longest-match scan against the named entity table.
	rest := t.input.remainder()
	best := ""
	for l := maxNamedEntityLen; l >= 1; l-- {
		if l > len(rest) {
			continue
		}
		cand := rest[:l]
		if _, ok := namedEntities[cand]; ok {
			best = cand
			break
		}
	}
	if best == "" {
		t.state = AmbiguousAmpersandState
		return
	}
	for range best {
		t.input.advance()
	}
	hasSemi := t.input.current() == ';'
	if hasSemi {
		t.input.advance()
	}
	if !hasSemi {
		if t.inAttributeValueState() {
			next := t.input.current()
			if next == '=' || htmlspec.IsAlnumASCII(next) {
				t.writeRefOutput("&" + best)
				t.state = t.returnState
				return
			}
		}
		t.err(parseerr.MissingSemicolonAfterCharacterReference)
	}
	t.writeRefOutput(namedEntities[best])
	t.state = t.returnState
}

func (t *Tokenizer) stepAmbiguousAmpersand() {
	c := t.input.current()
	if htmlspec.IsAlnumASCII(c) {
		t.input.advance()
		t.writeRefOutput(string(c))
		return
	}
	if c == ';' {
		t.err(parseerr.UnknownNamedCharacterReference)
	}
	t.state = t.returnState
}

func (t *Tokenizer) stepNumericCharacterReference() {
	t.charRefCode = 0
	c := t.input.current()
	if c == 'x' || c == 'X' {
		t.input.advance()
		t.tempBuffer.WriteRune(c)
		t.state = HexadecimalCharacterReferenceStartState
		return
	}
	t.state = DecimalCharacterReferenceStartState
}

func (t *Tokenizer) stepHexadecimalCharacterReferenceStart() {
	if isHexDigit(t.input.current()) {
		t.state = HexadecimalCharacterReferenceState
		return
	}
	t.err(parseerr.AbsenceOfDigitsInNumericCharacterReference)
	t.flushCharRefLiteral()
	t.state = t.returnState
}

func (t *Tokenizer) stepDecimalCharacterReferenceStart() {
	c := t.input.current()
	if c >= '0' && c <= '9' {
		t.state = DecimalCharacterReferenceState
		return
	}
	t.err(parseerr.AbsenceOfDigitsInNumericCharacterReference)
	t.flushCharRefLiteral()
	t.state = t.returnState
}

func (t *Tokenizer) stepHexadecimalCharacterReference() {
	c := t.input.current()
	switch {
	case isHexDigit(c):
		t.input.advance()
		t.charRefCode = t.charRefCode*16 + int64(hexVal(c))
	case c == ';':
		t.input.advance()
		t.state = NumericCharacterReferenceEndState
	default:
		t.state = NumericCharacterReferenceEndState
	}
}

func (t *Tokenizer) stepDecimalCharacterReference() {
	c := t.input.current()
	switch {
	case c >= '0' && c <= '9':
		t.input.advance()
		t.charRefCode = t.charRefCode*10 + int64(c-'0')
	case c == ';':
		t.input.advance()
		t.state = NumericCharacterReferenceEndState
	default:
		t.state = NumericCharacterReferenceEndState
	}
}

func (t *Tokenizer) stepNumericCharacterReferenceEnd() {
	r, code := resolveNumericReference(t.charRefCode)
	if code != "" {
		t.err(parseerr.Code(code))
	}
	t.writeRefOutput(string(r))
	t.state = t.returnState
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
