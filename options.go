package typeset

import "fmt"

// Config carries the parameters of one layout session. PageWidth, PageHeight,
// FontName and FontSize are required; the remaining fields are derived from
// the font when left zero.
type Config struct {
	PageWidth  float64 // page width in layout units
	PageHeight float64 // page height in layout units
	FontName   string  // base font family name
	FontSize   float64 // base font size

	// SpaceWidth is the fixed gap between consecutive words on a line.
	// Zero means FontSize / 2.5, a heuristic close to what e-book readers
	// use and noticeably narrower than the measured width of a space.
	SpaceWidth float64

	// LineHeight overrides the font's nominal line height. Zero means ask
	// the FontMeasurer.
	LineHeight float64
}

// Option is a functional option for configuring a layout session via
// NewConfig.
type Option func(*Config)

// WithSpaceWidth sets the fixed inter-word gap, overriding the FontSize/2.5
// default.
func WithSpaceWidth(w float64) Option {
	return func(c *Config) {
		c.SpaceWidth = w
	}
}

// WithLineHeight sets the vertical distance between lines, overriding the
// font's nominal line height.
func WithLineHeight(h float64) Option {
	return func(c *Config) {
		c.LineHeight = h
	}
}

// NewConfig creates a layout configuration. The four positional values are
// required; optional knobs are supplied as options.
//
// Example:
//
//	cfg := typeset.NewConfig(600, 800, "Go", 16,
//	    typeset.WithLineHeight(20),
//	)
func NewConfig(pageWidth, pageHeight float64, fontName string, fontSize float64, opts ...Option) Config {
	cfg := Config{
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
		FontName:   fontName,
		FontSize:   fontSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c Config) validate() error {
	switch {
	case c.PageWidth <= 0 || c.PageHeight <= 0:
		return fmt.Errorf("%w: page size %gx%g", ErrConfig, c.PageWidth, c.PageHeight)
	case c.FontName == "":
		return fmt.Errorf("%w: empty font name", ErrConfig)
	case c.FontSize <= 0:
		return fmt.Errorf("%w: font size %g", ErrConfig, c.FontSize)
	case c.SpaceWidth < 0 || c.LineHeight < 0:
		return fmt.Errorf("%w: negative space width or line height", ErrConfig)
	}
	return nil
}
