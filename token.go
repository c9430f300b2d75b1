package typeset

// TokenKind discriminates the variants of a Token.
type TokenKind uint8

const (
	// TokenText is a raw text span between tags.
	TokenText TokenKind = iota
	// TokenStartTag is an opening tag such as <p>.
	TokenStartTag
	// TokenEndTag is a closing tag such as </p>.
	TokenEndTag
	// TokenSelfClosing is a void or self-closed tag such as <img/>. It is
	// treated like a start tag that does not nest.
	TokenSelfClosing
)

// Attr is one name/value attribute of a tag.
type Attr struct {
	Key string
	Val string
}

// Token is one unit pulled from a TokenSource: either a tag with a name and
// attributes, or a text span.
type Token struct {
	Kind  TokenKind
	Name  string // tag name, lowercase; empty for text tokens
	Attrs []Attr
	Text  []byte // text span; valid for TokenText only
}

// Attr returns the value of the named attribute and whether it is present.
func (t Token) Attr(key string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// isStart reports whether the token opens a tag (including self-closing
// tags).
func (t Token) isStart() bool {
	return t.Kind == TokenStartTag || t.Kind == TokenSelfClosing
}

// TokenSource is a pull-style producer of markup tokens. Next returns io.EOF
// after the last token; any other error terminates the layout pass early.
// Consumers drive the source strictly sequentially and never restart it.
type TokenSource interface {
	Next() (Token, error)
}
