package htmltok_test

import (
	"testing"

	"github.com/crestfall/htmlcore/htmltok"
	"github.com/crestfall/htmlcore/parseerr"
	"github.com/stretchr/testify/require"
)

func collectTokens(source string) []htmltok.Token {
	tok := htmltok.New(source)
	var out []htmltok.Token
	for {
		tt := tok.Next()
		out = append(out, tt)
		if tt.Type == htmltok.EOFToken {
			return out
		}
	}
}

func TestTokenizer_StartAndEndTag(t *testing.T) {
	toks := collectTokens("<p>hi</p>")
	require.Equal(t, htmltok.StartTagToken, toks[0].Type)
	require.Equal(t, "p", toks[0].Name)
	require.Equal(t, htmltok.CharacterToken, toks[1].Type)
	require.Equal(t, "hi", toks[1].Data)
	require.Equal(t, htmltok.EndTagToken, toks[2].Type)
	require.Equal(t, "p", toks[2].Name)
	require.Equal(t, htmltok.EOFToken, toks[3].Type)
}

func TestTokenizer_AttributesFirstWins(t *testing.T) {
	toks := collectTokens(`<a href="1" href="2">`)
	require.Equal(t, htmltok.StartTagToken, toks[0].Type)
	require.Len(t, toks[0].Attrs, 1)
	require.Equal(t, "href", toks[0].Attrs[0].Name)
	require.Equal(t, "1", toks[0].Attrs[0].Value)
}

func TestTokenizer_SelfClosingFlag(t *testing.T) {
	toks := collectTokens(`<br/>`)
	require.True(t, toks[0].SelfClosing)
}

func TestTokenizer_CharacterReference(t *testing.T) {
	toks := collectTokens("A &amp; B")
	require.Equal(t, htmltok.CharacterToken, toks[0].Type)
	require.Equal(t, "A & B", toks[0].Data)
}

func TestTokenizer_Comment(t *testing.T) {
	toks := collectTokens("<!-- note -->")
	require.Equal(t, htmltok.CommentToken, toks[0].Type)
	require.Equal(t, " note ", toks[0].Data)
}

func TestTokenizer_Doctype(t *testing.T) {
	toks := collectTokens("<!DOCTYPE html>")
	require.Equal(t, htmltok.DoctypeToken, toks[0].Type)
	require.Equal(t, "html", toks[0].Name)
}

func TestTokenizer_NullCharacterReported(t *testing.T) {
	sink := parseerr.NewCollectingSink()
	tok := htmltok.NewWithOptions("a\x00b", htmltok.Options{}, sink)
	for {
		tt := tok.Next()
		if tt.Type == htmltok.EOFToken {
			break
		}
	}
	require.NotEmpty(t, sink.Errors)
	require.Equal(t, parseerr.UnexpectedNullCharacter, sink.Errors[0].Code)
}

func TestTokenizer_RAWTEXTStateViaSwitchTo(t *testing.T) {
	tok := htmltok.New("<style>a<b>c</style>")
	first := tok.Next()
	require.Equal(t, "style", first.Name)
	tok.SwitchTo(htmltok.RAWTEXTState)
	tok.SetLastStartTag("style")

	second := tok.Next()
	require.Equal(t, htmltok.CharacterToken, second.Type)
	require.Equal(t, "a<b>c", second.Data)

	third := tok.Next()
	require.Equal(t, htmltok.EndTagToken, third.Type)
	require.Equal(t, "style", third.Name)
}
