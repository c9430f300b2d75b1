package typeset

import (
	"errors"
	"io"
)

// maxTagDepth bounds the open-tag stack. Nesting deeper than this is
// tolerated but no longer tracked.
const maxTagDepth = 64

// engine holds the mutable state of one layout session. One engine owns one
// token source and one in-progress page; nothing is shared across sessions.
type engine struct {
	// constant during the layout pass
	cfg        Config
	src        TokenSource
	fonts      *FontCache
	images     ImageProvider
	emit       PageFunc
	lineHeight float64
	spaceWidth float64

	// style nesting counters, one per entry of styleFlags; a flag is
	// active iff its counter is positive, so identically nested styles
	// survive the inner end tag
	styleCount [len(styleFlags)]int
	style      Style
	font       *Font

	align Alignment
	x, y  float64
	// number of consecutive newline tokens seen
	newlines int

	page *Page
	// index into page.Instrs marking the start of the in-progress line
	lineStart int
	openTags  []string
}

// Layout converts the token stream into pages and hands each completed page
// to emit, in order. It creates a private font cache for the session; use
// LayoutWithCache to share resolved fonts across documents.
//
// images may be nil, in which case image tags are skipped. emit may be nil,
// in which case completed pages are discarded.
func Layout(cfg Config, src TokenSource, fonts FontMeasurer, images ImageProvider, emit PageFunc) error {
	if fonts == nil {
		return newLayoutError("Layout", errors.New("nil font measurer"))
	}
	cache := NewFontCache(fonts)
	defer cache.Close()
	return LayoutWithCache(cfg, src, cache, images, emit)
}

// LayoutWithCache is Layout with a caller-owned font cache, which then keeps
// its handles after the pass so several documents can share one cache.
func LayoutWithCache(cfg Config, src TokenSource, cache *FontCache, images ImageProvider, emit PageFunc) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if src == nil {
		return newLayoutError("Layout", errors.New("nil token source"))
	}
	if cache == nil {
		return newLayoutError("Layout", errors.New("nil font cache"))
	}
	e := &engine{
		cfg:    cfg,
		src:    src,
		fonts:  cache,
		images: images,
		emit:   emit,
	}
	if err := e.start(); err != nil {
		return err
	}
	return e.run()
}

// start resolves the base font and opens the first page. The very first
// resolution has no fallback: if it fails there is nothing to degrade to and
// the error is returned.
func (e *engine) start() error {
	f, err := e.fonts.Get(e.cfg.FontName, e.cfg.FontSize, StyleRegular)
	if err != nil {
		return err
	}
	e.style = StyleRegular
	e.font = f
	e.align = AlignJustify

	e.lineHeight = e.cfg.LineHeight
	if e.lineHeight == 0 {
		e.lineHeight = e.fonts.measurer.LineHeight(f)
	}
	e.spaceWidth = e.cfg.SpaceWidth
	if e.spaceWidth == 0 {
		e.spaceWidth = e.cfg.FontSize / 2.5
	}
	e.startNewPage()
	return nil
}

// run drives the token source to exhaustion. A source error terminates the
// pass early; the current line and page are still flushed so nothing already
// laid out is dropped.
func (e *engine) run() error {
	for {
		tok, err := e.src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			e.flush()
			return newLayoutError("Layout", err)
		}
		if tok.Kind == TokenText {
			e.emitText(tok.Text)
		} else {
			e.handleTag(tok)
		}
	}
	e.flush()
	return nil
}

// flush forces layout of the last line and emits the final page. Pages carry
// a leading SetFont, so the final page is never empty and is always sent.
func (e *engine) flush() {
	e.startNewLine(true)
	if e.page != nil && len(e.page.Instrs) > 0 {
		e.startNewPage()
	}
}

// setFont resolves the font for the given style through the cache, updating
// the active handle. On resolution failure it falls back to the first cached
// entry and proceeds with degraded fidelity.
func (e *engine) setFont(style Style) {
	f, err := e.fonts.Get(e.cfg.FontName, e.cfg.FontSize, style)
	if err != nil {
		f = e.fonts.first()
		if f == nil {
			// unreachable after start: the base font is cached
			return
		}
	}
	e.style = style
	e.font = f
}

// activeStyle recomputes the style bitmask from the nesting counters.
func (e *engine) activeStyle() Style {
	var s Style
	for i, flag := range styleFlags {
		if e.styleCount[i] > 0 {
			s |= flag
		}
	}
	return s
}

// changeStyle adjusts the nesting counter for one style flag and, when the
// set of active flags actually changes, resolves the new font and records a
// SetFont instruction.
func (e *engine) changeStyle(flag Style, start bool) {
	for i, f := range styleFlags {
		if f != flag {
			continue
		}
		if start {
			e.styleCount[i]++
		} else if e.styleCount[i] > 0 {
			// unmatched end tags decrement nothing
			e.styleCount[i]--
		}
	}
	style := e.activeStyle()
	if style == e.style {
		return
	}
	e.setFont(style)
	e.addSetFont(e.font)
}

// startNewPage hands the current page to the consumer and begins a fresh one.
// Each page records the active font immediately so its instruction list is
// self-contained.
func (e *engine) startNewPage() {
	if e.page != nil && e.emit != nil {
		e.emit(e.page)
	}
	e.page = &Page{}
	e.x, e.y = 0, 0
	e.newlines = 0
	e.addSetFont(e.font)
	e.lineStart = len(e.page.Instrs)
}

func (e *engine) addSetFont(f *Font) {
	e.page.Instrs = append(e.page.Instrs, DrawInstr{Kind: InstrSetFont, Font: f})
}

// lineEmpty reports whether the in-progress line holds no instructions yet.
func (e *engine) lineEmpty() bool {
	return e.lineStart == len(e.page.Instrs)
}

// lineWidth returns the content width of the in-progress line: the sum of
// text widths plus one inter-word space per word except the last.
func (e *engine) lineWidth() float64 {
	dx := -e.spaceWidth
	for _, in := range e.page.Instrs[e.lineStart:] {
		if in.Kind == InstrText {
			dx += in.BBox.W + e.spaceWidth
		}
	}
	if dx < 0 {
		dx = 0
	}
	return dx
}

// layoutLeftFrom positions the line's text instructions left to right
// starting at offX, each followed by one inter-word space.
func (e *engine) layoutLeftFrom(offX float64) {
	e.x = offX
	line := e.page.Instrs[e.lineStart:]
	for i := range line {
		if line[i].Kind != InstrText {
			continue
		}
		line[i].BBox.X = e.x
		line[i].BBox.Y = e.y
		e.x += line[i].BBox.W + e.spaceWidth
	}
}

// justifyBoth moves all words proportionally to the right so that the
// spacing remains uniform and the last word touches the right page border.
func (e *engine) justifyBoth() {
	margin := e.cfg.PageWidth - e.lineWidth()
	e.layoutLeftFrom(0)

	line := e.page.Instrs[e.lineStart:]
	words := 0
	for i := range line {
		if line[i].Kind == InstrText {
			words++
		}
	}
	extra := margin
	if words > 1 {
		extra = margin / float64(words-1)
	}
	k := 0
	for i := range line {
		if line[i].Kind != InstrText {
			continue
		}
		line[i].BBox.X += float64(k) * extra
		k++
	}
}

// justifyLine finalizes the in-progress line under the given mode and marks
// the next instruction as the start of a new line. Empty lines are a no-op.
func (e *engine) justifyLine(mode Alignment) {
	if e.lineEmpty() {
		return
	}
	switch mode {
	case AlignLeft:
		e.layoutLeftFrom(0)
	case AlignRight:
		e.layoutLeftFrom(e.cfg.PageWidth - e.lineWidth())
	case AlignCenter:
		e.layoutLeftFrom((e.cfg.PageWidth - e.lineWidth()) / 2)
	case AlignJustify:
		e.justifyBoth()
	}
	e.lineStart = len(e.page.Instrs)
}

// startNewLine finalizes the current line and advances the cursor one line
// down, starting a new page when the next line would not fit. A paragraph's
// last line under justification is laid out left instead of stretched.
func (e *engine) startNewLine(isParagraphBreak bool) {
	// don't put empty lines at the top of the page
	if e.y == 0 && e.lineEmpty() {
		return
	}
	if isParagraphBreak && e.align == AlignJustify {
		e.justifyLine(AlignLeft)
	} else {
		e.justifyLine(e.align)
	}
	e.x = 0
	e.y += e.lineHeight
	e.lineStart = len(e.page.Instrs)
	if e.y+e.lineHeight > e.cfg.PageHeight {
		e.startNewPage()
	}
}

// addRule appends a horizontal rule spanning the full page width at the
// current line height, with an implicit paragraph break on either side.
func (e *engine) addRule() {
	e.startNewLine(true)
	e.x = 0
	if e.y+e.lineHeight > e.cfg.PageHeight {
		e.startNewPage()
	}
	bbox := Rect{X: e.x, Y: e.y, W: e.cfg.PageWidth, H: e.lineHeight}
	e.page.Instrs = append(e.page.Instrs, DrawInstr{Kind: InstrRule, BBox: bbox})
	e.startNewLine(true)
}

// addWord processes one word-iterator token. A single newline is soft and
// ignored; the second consecutive newline is a paragraph break. The counter
// is deliberately not reset when the break fires, so runs of three or more
// newlines still produce exactly one break.
func (e *engine) addWord(w Word) {
	if w.Newline {
		e.newlines++
		if e.newlines == 2 {
			needsTwo := e.x != 0
			e.startNewLine(true)
			if needsTwo {
				e.startNewLine(true)
			}
		}
		return
	}
	e.newlines = 0

	bbox := e.fonts.measurer.MeasureText(e.font, string(w.Text))
	if e.x+bbox.W > e.cfg.PageWidth {
		// start a new line if the word would exceed the line length;
		// a word wider than the whole page stays on its own line and
		// overflows
		e.startNewLine(false)
	}
	bbox.Y = e.y
	e.page.Instrs = append(e.page.Instrs, DrawInstr{Kind: InstrText, Text: w.Text, BBox: bbox})
	e.x += bbox.W + e.spaceWidth
}

// addImage lays out an image on its own line, centered horizontally. Images
// far taller than the remaining space move to a new page; images that still
// exceed the page bounds are scaled down preserving aspect ratio.
func (e *engine) addImage(ref *ImageRef) {
	if ref == nil || ref.Width <= 0 || ref.Height <= 0 {
		return
	}
	e.startNewLine(false)
	w, h := ref.Width, ref.Height
	if e.cfg.PageHeight-e.y < h/2 {
		e.startNewPage()
	}
	if w > e.cfg.PageWidth || h > e.cfg.PageHeight-e.y {
		factor := e.cfg.PageWidth / w
		if hf := (e.cfg.PageHeight - e.y) / h; hf < factor {
			factor = hf
		}
		w *= factor
		h *= factor
	}
	e.x += (e.cfg.PageWidth - w) / 2
	bbox := Rect{X: e.x, Y: e.y, W: w, H: h}
	e.page.Instrs = append(e.page.Instrs, DrawInstr{Kind: InstrImage, Image: ref, BBox: bbox})
	e.y += h
	e.startNewLine(false)
}

// recordTag maintains the best-effort open-tag stack used for
// context-sensitive decisions, e.g. suppressing text inside <style>.
// Mismatched nesting is tolerated: an unmatched end tag is ignored.
func (e *engine) recordTag(tok Token) {
	switch tok.Kind {
	case TokenStartTag:
		if len(e.openTags) < maxTagDepth {
			e.openTags = append(e.openTags, tok.Name)
		}
	case TokenEndTag:
		for i := len(e.openTags) - 1; i >= 0; i-- {
			if e.openTags[i] == tok.Name {
				e.openTags = e.openTags[:i]
				break
			}
		}
	}
}

func (e *engine) inTag(name string) bool {
	for _, t := range e.openTags {
		if t == name {
			return true
		}
	}
	return false
}

// handleTag dispatches on tag identity and start/end.
func (e *engine) handleTag(tok Token) {
	e.recordTag(tok)

	switch tok.Name {
	case "p":
		e.startNewLine(true)
		e.align = AlignJustify
		if tok.isStart() {
			if v, ok := tok.Attr("align"); ok {
				if a, ok := ParseAlignment(v); ok {
					e.align = a
				}
			}
		}
	case "hr":
		e.addRule()
	case "b", "strong":
		e.changeStyle(StyleBold, tok.isStart())
	case "i", "em":
		e.changeStyle(StyleItalic, tok.isStart())
	case "u":
		e.changeStyle(StyleUnderline, tok.isStart())
	case "s", "strike":
		e.changeStyle(StyleStrikeout, tok.isStart())
	case "pagebreak", "mbp:pagebreak":
		e.justifyLine(e.align)
		e.startNewPage()
	case "img":
		if !tok.isStart() || e.images == nil {
			// an end tag shouldn't happen, but does
			return
		}
		for _, a := range tok.Attrs {
			if a.Key != "src" && a.Key != "recindex" {
				continue
			}
			if ref, ok := e.images.Image(a.Val); ok {
				e.addImage(ref)
			}
		}
	}
}

// emitText feeds the words of a text span to addWord. Content of <style>
// elements is display noise and is dropped.
func (e *engine) emitText(span []byte) {
	if e.inTag("style") {
		return
	}
	words := NewWords(span)
	for {
		w, ok := words.Next()
		if !ok {
			return
		}
		e.addWord(w)
	}
}
