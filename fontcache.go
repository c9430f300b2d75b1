package typeset

// Font is an opaque font handle created by a FontMeasurer. The layout engine
// only compares the identifying fields and passes the handle back to the
// measurer; Face carries backend-owned data (for example a font.Face) that
// renderers may type-assert.
type Font struct {
	Name  string
	Size  float64
	Style Style
	Face  any
}

// FontMeasurer is the capability the engine needs from a font backend:
// resolving handles, measuring strings and reporting line heights. All calls
// are synchronous.
type FontMeasurer interface {
	// ResolveFont constructs a handle for the given descriptor. It may
	// fail for unknown names; the caller decides the fallback policy.
	ResolveFont(name string, size float64, style Style) (*Font, error)

	// MeasureText returns the bounding box of s under f, with X and Y
	// left at zero.
	MeasureText(f *Font, s string) Rect

	// LineHeight returns the nominal line height of f.
	LineHeight(f *Font) float64
}

// FontReleaser is optionally implemented by measurers whose handles hold
// resources that need explicit release.
type FontReleaser interface {
	ReleaseFont(f *Font)
}

// FontCache deduplicates font handles by (name, size, style). It exclusively
// owns every handle it creates and releases them on Close. Lookup is a linear
// scan: a document uses a handful of distinct styles, so equality beats
// hashing here.
type FontCache struct {
	measurer FontMeasurer
	fonts    []*Font
}

// NewFontCache creates an empty cache resolving through m.
func NewFontCache(m FontMeasurer) *FontCache {
	return &FontCache{measurer: m}
}

// Get returns the cached handle for the descriptor, resolving and storing a
// new one on first use. A resolution failure is returned to the caller; the
// cache stays usable and holds no entry for the failed descriptor.
func (c *FontCache) Get(name string, size float64, style Style) (*Font, error) {
	for _, f := range c.fonts {
		if f.Name == name && f.Size == size && f.Style == style {
			return f, nil
		}
	}
	f, err := c.measurer.ResolveFont(name, size, style)
	if err != nil {
		return nil, newLayoutError("ResolveFont", err)
	}
	c.fonts = append(c.fonts, f)
	return f, nil
}

// Len returns the number of cached handles.
func (c *FontCache) Len() int {
	return len(c.fonts)
}

// first returns the oldest cached handle, the fallback of last resort when a
// later resolution fails, or nil for an empty cache.
func (c *FontCache) first() *Font {
	if len(c.fonts) == 0 {
		return nil
	}
	return c.fonts[0]
}

// Close releases every cached handle through the measurer, if it supports
// release, and empties the cache.
func (c *FontCache) Close() {
	if r, ok := c.measurer.(FontReleaser); ok {
		for _, f := range c.fonts {
			r.ReleaseFont(f)
		}
	}
	c.fonts = nil
}
