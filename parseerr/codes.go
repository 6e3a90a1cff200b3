// Package parseerr defines the parse-error vocabulary and delivery sink
// the tokenizer and tree constructor report through. Every error is a
// (Code, Message, Line, Column) tuple; Code is one of the WHATWG
// HTML5 parse-error identifiers, reused verbatim so error output is
// recognizable against the spec prose.
package parseerr

// Code identifies a parse error kind.
type Code string

// Tokenizer error codes, https://html.spec.whatwg.org/multipage/parsing.html#parse-errors
const (
	AbruptClosingOfEmptyComment                               Code = "abrupt-closing-of-empty-comment"
	AbruptDoctypePublicIdentifier                              Code = "abrupt-doctype-public-identifier"
	AbruptDoctypeSystemIdentifier                              Code = "abrupt-doctype-system-identifier"
	AbsenceOfDigitsInNumericCharacterReference                 Code = "absence-of-digits-in-numeric-character-reference"
	CDATAInHTMLContent                                         Code = "cdata-in-html-content"
	CharacterReferenceOutsideUnicodeRange                      Code = "character-reference-outside-unicode-range"
	ControlCharacterInInputStream                              Code = "control-character-in-input-stream"
	ControlCharacterReference                                  Code = "control-character-reference"
	DuplicateAttribute                                         Code = "duplicate-attribute"
	EndTagWithAttributes                                       Code = "end-tag-with-attributes"
	EndTagWithTrailingSolidus                                  Code = "end-tag-with-trailing-solidus"
	EOFBeforeTagName                                           Code = "eof-before-tag-name"
	EOFInComment                                                Code = "eof-in-comment"
	EOFInDoctype                                                Code = "eof-in-doctype"
	EOFInScriptHTMLCommentLikeText                              Code = "eof-in-script-html-comment-like-text"
	EOFInTag                                                    Code = "eof-in-tag"
	IncorrectlyClosedComment                                   Code = "incorrectly-closed-comment"
	IncorrectlyOpenedComment                                   Code = "incorrectly-opened-comment"
	InvalidCharacterSequenceAfterDoctypeName                    Code = "invalid-character-sequence-after-doctype-name"
	InvalidFirstCharacterOfTagName                              Code = "invalid-first-character-of-tag-name"
	MissingAttributeValue                                       Code = "missing-attribute-value"
	MissingDoctypeName                                          Code = "missing-doctype-name"
	MissingDoctypePublicIdentifier                              Code = "missing-doctype-public-identifier"
	MissingDoctypeSystemIdentifier                              Code = "missing-doctype-system-identifier"
	MissingEndTagName                                           Code = "missing-end-tag-name"
	MissingQuoteBeforeDoctypePublicIdentifier                   Code = "missing-quote-before-doctype-public-identifier"
	MissingQuoteBeforeDoctypeSystemIdentifier                   Code = "missing-quote-before-doctype-system-identifier"
	MissingSemicolonAfterCharacterReference                     Code = "missing-semicolon-after-character-reference"
	MissingWhitespaceAfterDoctypePublicKeyword                  Code = "missing-whitespace-after-doctype-public-keyword"
	MissingWhitespaceAfterDoctypeSystemKeyword                  Code = "missing-whitespace-after-doctype-system-keyword"
	MissingWhitespaceBeforeDoctypeName                          Code = "missing-whitespace-before-doctype-name"
	MissingWhitespaceBetweenAttributes                          Code = "missing-whitespace-between-attributes"
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers   Code = "missing-whitespace-between-doctype-public-and-system-identifiers"
	NestedComment                                               Code = "nested-comment"
	NoncharacterCharacterReference                              Code = "noncharacter-character-reference"
	NonVoidHTMLElementStartTagWithTrailingSolidus               Code = "non-void-html-element-start-tag-with-trailing-solidus"
	NullCharacterReference                                      Code = "null-character-reference"
	SurrogateCharacterReference                                 Code = "surrogate-character-reference"
	UnexpectedCharacterAfterDoctypeSystemIdentifier             Code = "unexpected-character-after-doctype-system-identifier"
	UnexpectedCharacterInAttributeName                          Code = "unexpected-character-in-attribute-name"
	UnexpectedCharacterInUnquotedAttributeValue                 Code = "unexpected-character-in-unquoted-attribute-value"
	UnexpectedEqualsSignBeforeAttributeName                     Code = "unexpected-equals-sign-before-attribute-name"
	UnexpectedNullCharacter                                     Code = "unexpected-null-character"
	UnexpectedQuestionMarkInsteadOfTagName                      Code = "unexpected-question-mark-instead-of-tag-name"
	UnexpectedSolidusInTag                                      Code = "unexpected-solidus-in-tag"
	UnknownNamedCharacterReference                               Code = "unknown-named-character-reference"
)

// Tree construction error codes.
const (
	NonSpaceCharacterInTableText Code = "non-space-character-in-table-text"
	FosterParentedCharacter     Code = "foster-parented-character"
	UnexpectedEndTag            Code = "unexpected-end-tag"
	UnexpectedStartTagIgnored   Code = "unexpected-start-tag-ignored"
	UnexpectedDOCTYPE           Code = "unexpected-doctype"
)

// NotImplementedCode is a typed escape hatch: an insertion mode that
// deliberately leaves a branch unhandled reports this instead of silently
// dropping the token. No insertion mode in this module's covered set
// should ever reach it.
const NotImplementedCode Code = "not-implemented"

var messages = map[Code]string{
	AbruptClosingOfEmptyComment:                             "empty comment abruptly closed by '>'",
	AbruptDoctypePublicIdentifier:                           "'>' inside a DOCTYPE public identifier",
	AbruptDoctypeSystemIdentifier:                           "'>' inside a DOCTYPE system identifier",
	AbsenceOfDigitsInNumericCharacterReference:              "numeric character reference with no digits",
	CDATAInHTMLContent:                                      "CDATA section outside foreign content",
	CharacterReferenceOutsideUnicodeRange:                   "numeric character reference above U+10FFFF",
	ControlCharacterInInputStream:                           "control character in input",
	ControlCharacterReference:                               "character reference resolves to a control character",
	DuplicateAttribute:                                      "attribute already present on this tag",
	EndTagWithAttributes:                                    "end tag carries attributes",
	EndTagWithTrailingSolidus:                               "end tag has a trailing '/'",
	EOFBeforeTagName:                                        "end of input where a tag name was expected",
	EOFInComment:                                             "end of input inside a comment",
	EOFInDoctype:                                             "end of input inside a DOCTYPE",
	EOFInScriptHTMLCommentLikeText:                          "end of input inside script comment-like text",
	EOFInTag:                                                 "end of input inside a tag",
	IncorrectlyClosedComment:                                "comment closed with the wrong sequence",
	IncorrectlyOpenedComment:                                "comment opened with the wrong sequence",
	InvalidCharacterSequenceAfterDoctypeName:                "unexpected characters after a DOCTYPE name",
	InvalidFirstCharacterOfTagName:                          "invalid first character of a tag name",
	MissingAttributeValue:                                   "attribute name not followed by a value",
	MissingDoctypeName:                                      "DOCTYPE without a name",
	MissingDoctypePublicIdentifier:                          "DOCTYPE missing a public identifier",
	MissingDoctypeSystemIdentifier:                          "DOCTYPE missing a system identifier",
	MissingEndTagName:                                       "end tag without a name",
	MissingQuoteBeforeDoctypePublicIdentifier:                "DOCTYPE public identifier missing its opening quote",
	MissingQuoteBeforeDoctypeSystemIdentifier:                "DOCTYPE system identifier missing its opening quote",
	MissingSemicolonAfterCharacterReference:                 "character reference not terminated by ';'",
	MissingWhitespaceAfterDoctypePublicKeyword:              "no whitespace after DOCTYPE PUBLIC keyword",
	MissingWhitespaceAfterDoctypeSystemKeyword:              "no whitespace after DOCTYPE SYSTEM keyword",
	MissingWhitespaceBeforeDoctypeName:                      "no whitespace before DOCTYPE name",
	MissingWhitespaceBetweenAttributes:                      "no whitespace between attributes",
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers: "no whitespace between DOCTYPE public and system identifiers",
	NestedComment:                                           "comment nested inside a comment",
	NoncharacterCharacterReference:                          "character reference resolves to a noncharacter",
	NonVoidHTMLElementStartTagWithTrailingSolidus:           "trailing '/' on a non-void element start tag",
	NullCharacterReference:                                  "character reference resolves to U+0000",
	SurrogateCharacterReference:                             "character reference resolves to a surrogate",
	UnexpectedCharacterAfterDoctypeSystemIdentifier:          "unexpected character after a DOCTYPE system identifier",
	UnexpectedCharacterInAttributeName:                      "unexpected character in an attribute name",
	UnexpectedCharacterInUnquotedAttributeValue:              "unexpected character in an unquoted attribute value",
	UnexpectedEqualsSignBeforeAttributeName:                 "'=' before an attribute name",
	UnexpectedNullCharacter:                                 "unexpected U+0000 NULL",
	UnexpectedQuestionMarkInsteadOfTagName:                  "'?' where a tag name was expected",
	UnexpectedSolidusInTag:                                  "unexpected '/' inside a tag",
	UnknownNamedCharacterReference:                          "unrecognized named character reference",
	NonSpaceCharacterInTableText:                            "non-space character in table text context",
	FosterParentedCharacter:                                 "character foster-parented out of a table",
	UnexpectedEndTag:                                        "unexpected end tag for the current insertion mode",
	UnexpectedStartTagIgnored:                               "start tag ignored in the current insertion mode",
	UnexpectedDOCTYPE:                                       "DOCTYPE token not in the initial insertion mode",
	NotImplementedCode:                                      "branch not handled",
}

// Message returns the human-readable description for code, or a generic
// fallback for an unregistered code.
func Message(code Code) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return "unrecognized parse error"
}
