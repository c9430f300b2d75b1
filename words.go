package typeset

// Word is one token produced by Words: either a maximal run of non-whitespace
// bytes or a single newline. The Text slice aliases the span the iterator was
// built from.
type Word struct {
	Text    []byte
	Newline bool
}

// Words iterates the words of a text span, e.g. "foo bar\n" yields "foo",
// "bar" and a newline. Line endings are unified: "\r" and "\r\n" each become
// a single newline token. Consecutive newlines are not merged; detecting
// paragraph breaks from them is the layout engine's concern.
//
// The iterator is lazy, finite and non-restartable: after Next reports
// ok=false it must not be reused.
type Words struct {
	span []byte
	pos  int
}

// NewWords creates an iterator over span. The iterator aliases span rather
// than copying it.
func NewWords(span []byte) *Words {
	return &Words{span: span}
}

// Next returns the next word or newline token. ok is false at end of input.
func (w *Words) Next() (word Word, ok bool) {
	for w.pos < len(w.span) && (w.span[w.pos] == ' ' || w.span[w.pos] == '\t') {
		w.pos++
	}
	if w.pos >= len(w.span) {
		return Word{}, false
	}
	if c := w.span[w.pos]; c == '\r' || c == '\n' {
		w.pos++
		if c == '\r' && w.pos < len(w.span) && w.span[w.pos] == '\n' {
			w.pos++
		}
		return Word{Newline: true}, true
	}
	start := w.pos
	for w.pos < len(w.span) && !isSpace(w.span[w.pos]) {
		w.pos++
	}
	return Word{Text: w.span[start:w.pos]}, true
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}
