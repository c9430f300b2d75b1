// Package htmltok adapts golang.org/x/net/html's pull tokenizer to the
// typeset.TokenSource contract.
//
// The adapter copies every text span out of the tokenizer's reusable buffer,
// so the spans referenced by laid-out pages stay valid as long as the Source
// (or, since copies are independent allocations, the pages themselves) is
// reachable. Comments and doctype declarations are dropped; they produce no
// layout.
package htmltok

import (
	"io"

	"golang.org/x/net/html"

	"github.com/lvillar/typeset"
)

// Source is a typeset.TokenSource reading HTML from an io.Reader. It is
// non-restartable and must be driven sequentially, which is how the layout
// engine consumes it.
type Source struct {
	z   *html.Tokenizer
	err error
}

// New creates a Source reading from r.
func New(r io.Reader) *Source {
	return &Source{z: html.NewTokenizer(r)}
}

// Next returns the next tag or text token. It returns io.EOF after the last
// token; a malformed-input error from the tokenizer is sticky.
func (s *Source) Next() (typeset.Token, error) {
	if s.err != nil {
		return typeset.Token{}, s.err
	}
	for {
		switch s.z.Next() {
		case html.ErrorToken:
			s.err = s.z.Err()
			return typeset.Token{}, s.err
		case html.TextToken:
			// copy out of the tokenizer's internal buffer; pages
			// will borrow from this copy
			text := append([]byte(nil), s.z.Text()...)
			return typeset.Token{Kind: typeset.TokenText, Text: text}, nil
		case html.StartTagToken:
			return s.tagToken(typeset.TokenStartTag), nil
		case html.EndTagToken:
			return s.tagToken(typeset.TokenEndTag), nil
		case html.SelfClosingTagToken:
			return s.tagToken(typeset.TokenSelfClosing), nil
		default:
			// comments and doctypes carry no layout
			continue
		}
	}
}

func (s *Source) tagToken(kind typeset.TokenKind) typeset.Token {
	name, hasAttr := s.z.TagName()
	tok := typeset.Token{Kind: kind, Name: string(name)}
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = s.z.TagAttr()
		tok.Attrs = append(tok.Attrs, typeset.Attr{Key: string(key), Val: string(val)})
	}
	return tok
}
