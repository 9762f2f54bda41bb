
package parser

import (
	"io"

	"golang.org/x/net/html"
)

type TokenKind int

const (
	StartTag TokenKind = iota
	EndTag
	Text
)

// Token is one unit of the HTML scan. Name is lower-case for tags; Text holds
// decoded character data for Text tokens.
type Token struct {
	Kind  TokenKind
	Name  string
	Attrs []html.Attribute
	Text  string
}

// TokenSource yields tokens in document order and returns io.EOF when drained.
type TokenSource interface {
	Next() (Token, error)
}

// Handler receives tokens from Feed.
type Handler interface {
	StartTag(name string, attrs []html.Attribute) error
	EndTag(name string) error
	Text(text string) error
}

// Feed drives h with every token from src until src is drained or h fails.
func Feed(src TokenSource, h Handler) error {
	for {
		tok, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch tok.Kind {
		case StartTag:
			err = h.StartTag(tok.Name, tok.Attrs)
		case EndTag:
			err = h.EndTag(tok.Name)
		case Text:
			err = h.Text(tok.Text)
		}
		if err != nil {
			return err
		}
	}
}

type htmlTokens struct {
	z *html.Tokenizer
}

// NewTokenizer adapts golang.org/x/net/html's tokenizer. Self-closing tags are
// reported as start tags; comments and doctypes are skipped.
func NewTokenizer(r io.Reader) TokenSource {
	return &htmlTokens{z: html.NewTokenizer(r)}
}

func (t *htmlTokens) Next() (Token, error) {
	for {
		switch t.z.Next() {
		case html.ErrorToken:
			return Token{}, t.z.Err()
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := t.z.Token()
			return Token{Kind: StartTag, Name: tok.Data, Attrs: tok.Attr}, nil
		case html.EndTagToken:
			tok := t.z.Token()
			return Token{Kind: EndTag, Name: tok.Data}, nil
		case html.TextToken:
			return Token{Kind: Text, Text: string(t.z.Text())}, nil
		}
	}
}

// Tokens is an in-memory TokenSource.
type Tokens []Token

func (ts *Tokens) Next() (Token, error) {
	if len(*ts) == 0 {
		return Token{}, io.EOF
	}
	tok := (*ts)[0]
	*ts = (*ts)[1:]
	return tok, nil
}
