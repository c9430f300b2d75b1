package typeset

import "strings"

// Style is a bitmask of independent text style flags. Combinations are valid;
// StyleRegular is the empty set.
type Style uint8

const (
	StyleBold Style = 1 << iota
	StyleItalic
	StyleUnderline
	StyleStrikeout
)

// StyleRegular is the absence of any style flag.
const StyleRegular Style = 0

// styleFlags lists the individual flags in bit order. The engine keeps one
// nesting counter per entry.
var styleFlags = [...]Style{StyleBold, StyleItalic, StyleUnderline, StyleStrikeout}

// Has reports whether every flag in f is set in s.
func (s Style) Has(f Style) bool {
	return s&f == f
}

func (s Style) String() string {
	if s == StyleRegular {
		return "regular"
	}
	var parts []string
	if s.Has(StyleBold) {
		parts = append(parts, "bold")
	}
	if s.Has(StyleItalic) {
		parts = append(parts, "italic")
	}
	if s.Has(StyleUnderline) {
		parts = append(parts, "underline")
	}
	if s.Has(StyleStrikeout) {
		parts = append(parts, "strikeout")
	}
	return strings.Join(parts, "+")
}

// Alignment determines the horizontal placement of words within a finalized
// line.
type Alignment uint8

const (
	AlignJustify Alignment = iota
	AlignLeft
	AlignRight
	AlignCenter
)

func (a Alignment) String() string {
	switch a {
	case AlignJustify:
		return "justify"
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	}
	return "unknown"
}

// ParseAlignment maps an align attribute value to an Alignment. The match is
// case-insensitive; unrecognized values report ok=false.
func ParseAlignment(s string) (Alignment, bool) {
	switch strings.ToLower(s) {
	case "justify":
		return AlignJustify, true
	case "left":
		return AlignLeft, true
	case "right":
		return AlignRight, true
	case "center":
		return AlignCenter, true
	}
	return AlignJustify, false
}
