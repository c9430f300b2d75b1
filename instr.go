package typeset

// Rect is an axis-aligned bounding box. X and Y locate the top-left corner in
// page coordinates.
type Rect struct {
	X, Y, W, H float64
}

// InstrKind discriminates the variants of a DrawInstr.
type InstrKind uint8

const (
	// InstrSetFont changes the active font for subsequent instructions on
	// the page.
	InstrSetFont InstrKind = iota
	// InstrText is a positioned run of non-whitespace characters.
	InstrText
	// InstrRule is a horizontal separator, rendered as a line through the
	// vertical middle of its bounding box.
	InstrRule
	// InstrImage is a positioned, possibly scaled image.
	InstrImage
)

func (k InstrKind) String() string {
	switch k {
	case InstrSetFont:
		return "setfont"
	case InstrText:
		return "text"
	case InstrRule:
		return "rule"
	case InstrImage:
		return "image"
	}
	return "unknown"
}

// DrawInstr is one unit of renderable output. Kind selects which of the
// remaining fields are meaningful.
//
// Text borrows from the token source's buffers rather than copying, so the
// token source must outlive every Page that references it.
type DrawInstr struct {
	Kind  InstrKind
	Font  *Font     // InstrSetFont
	Text  []byte    // InstrText
	Image *ImageRef // InstrImage
	BBox  Rect
}

// Page is an ordered, insertion-order-significant sequence of draw
// instructions representing one pagination unit. Every non-empty page begins
// with exactly one InstrSetFont reflecting the font active when the page
// started, so a page can be rendered in isolation.
type Page struct {
	Instrs []DrawInstr
}

// Len returns the number of instructions on the page.
func (p *Page) Len() int {
	return len(p.Instrs)
}

// ImageRef describes a resolved image: its encoded bytes and intrinsic pixel
// dimensions. The engine only consumes the dimensions; renderers decode Data.
type ImageRef struct {
	ID     string
	Data   []byte
	Width  float64
	Height float64
}

// ImageProvider resolves an identifier drawn from a tag attribute to image
// data. Absence of a resolvable image is not an error; the tag is skipped.
type ImageProvider interface {
	Image(id string) (*ImageRef, bool)
}

// PageFunc receives ownership of each completed page, in page order. A nil
// PageFunc discards completed pages.
type PageFunc func(*Page)
