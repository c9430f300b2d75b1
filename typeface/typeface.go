// Package typeface implements typeset.FontMeasurer on top of
// golang.org/x/image/font/opentype.
//
// A Source maps a family name and style bitmask to a concrete face: bold and
// italic select among up to four registered TTF variants, while underline and
// strikeout reuse the base face (they are stroke decorations, a renderer
// concern, and do not change metrics). The bundled Go font family is always
// available under the name "Go".
package typeface

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/lvillar/typeset"
)

// TTF carries the variant files of one font family. Regular is required;
// missing variants fall back to Regular.
type TTF struct {
	Regular    []byte
	Bold       []byte
	Italic     []byte
	BoldItalic []byte
}

// variant indices, bit 0 = bold, bit 1 = italic
const (
	vRegular = iota
	vBold
	vItalic
	vBoldItalic
	numVariants
)

type family struct {
	variants [numVariants]*sfnt.Font
}

type faceKey struct {
	name    string
	variant int
	size    float64
}

// Source resolves and measures fonts for the layout engine. Faces are cached
// per (family, variant, size); repeated resolutions of the same descriptor
// share one face.
type Source struct {
	families map[string]*family
	faces    map[faceKey]font.Face
}

// NewSource creates a Source with the Go font family pre-registered.
func NewSource() *Source {
	s := &Source{
		families: make(map[string]*family),
		faces:    make(map[faceKey]font.Face),
	}
	// the bundled Go fonts always parse
	s.RegisterTTF("Go", TTF{
		Regular:    goregular.TTF,
		Bold:       gobold.TTF,
		Italic:     goitalic.TTF,
		BoldItalic: gobolditalic.TTF,
	})
	return s
}

// RegisterTTF parses and registers a font family under the given name. The
// name is matched case-insensitively by ResolveFont.
func (s *Source) RegisterTTF(name string, ttf TTF) error {
	if len(ttf.Regular) == 0 {
		return fmt.Errorf("typeface: family %q has no regular variant", name)
	}
	regular, err := opentype.Parse(ttf.Regular)
	if err != nil {
		return fmt.Errorf("typeface: parsing %q regular: %w", name, err)
	}
	fam := &family{}
	for i := range fam.variants {
		fam.variants[i] = regular
	}
	for idx, data := range map[int][]byte{
		vBold:       ttf.Bold,
		vItalic:     ttf.Italic,
		vBoldItalic: ttf.BoldItalic,
	} {
		if len(data) == 0 {
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			return fmt.Errorf("typeface: parsing %q variant: %w", name, err)
		}
		fam.variants[idx] = f
	}
	s.families[strings.ToLower(name)] = fam
	return nil
}

// ResolveFont implements typeset.FontMeasurer. Unknown family names return an
// error so the engine can apply its fallback policy.
func (s *Source) ResolveFont(name string, size float64, style typeset.Style) (*typeset.Font, error) {
	fam, ok := s.families[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("typeface: unknown font family %q", name)
	}
	if size <= 0 {
		return nil, fmt.Errorf("typeface: invalid font size %g", size)
	}
	variant := vRegular
	if style.Has(typeset.StyleBold) {
		variant |= vBold
	}
	if style.Has(typeset.StyleItalic) {
		variant |= vItalic
	}
	face, err := s.face(strings.ToLower(name), fam, variant, size)
	if err != nil {
		return nil, err
	}
	return &typeset.Font{Name: name, Size: size, Style: style, Face: face}, nil
}

func (s *Source) face(name string, fam *family, variant int, size float64) (font.Face, error) {
	key := faceKey{name: name, variant: variant, size: size}
	if f, ok := s.faces[key]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(fam.variants[variant], &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("typeface: creating face for %q: %w", name, err)
	}
	s.faces[key] = f
	return f, nil
}

// MeasureText implements typeset.FontMeasurer.
func (s *Source) MeasureText(f *typeset.Font, text string) typeset.Rect {
	face, ok := f.Face.(font.Face)
	if !ok {
		return typeset.Rect{}
	}
	advance := font.MeasureString(face, text)
	return typeset.Rect{
		W: fromFixed(advance),
		H: fromFixed(face.Metrics().Height),
	}
}

// LineHeight implements typeset.FontMeasurer.
func (s *Source) LineHeight(f *typeset.Font) float64 {
	face, ok := f.Face.(font.Face)
	if !ok {
		return 0
	}
	return fromFixed(face.Metrics().Height)
}

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
