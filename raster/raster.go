// Package raster renders laid-out pages into in-memory images.
//
// It implements the renderer side of the page contract: the active font is
// tracked across SetFont instructions, text runs are drawn at their bounding
// boxes, a rule is a line through the vertical middle of its box, and images
// are decoded and scaled into their boxes. Underline and strikeout are drawn
// here as strokes, since the measuring faces do not carry them.
package raster

import (
	"bytes"
	"image"
	"image/color"
	"math"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lvillar/typeset"
)

// Renderer draws pages with configurable colors. The zero value renders black
// ink on a white background.
type Renderer struct {
	Background color.Color // nil means white
	Ink        color.Color // nil means black
}

// Render draws page onto a fresh width x height RGBA image using the default
// colors.
func Render(page *typeset.Page, width, height int) *image.RGBA {
	var r Renderer
	return r.Render(page, width, height)
}

// Render draws page onto a fresh width x height RGBA image. Instructions the
// renderer cannot honor (text before any usable font, undecodable image
// bytes) are skipped, mirroring the engine's degrade-don't-abort policy.
func (r *Renderer) Render(page *typeset.Page, width, height int) *image.RGBA {
	bg, ink := r.Background, r.Ink
	if bg == nil {
		bg = color.White
	}
	if ink == nil {
		ink = color.Black
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)
	src := image.NewUniform(ink)

	var active *typeset.Font
	for _, in := range page.Instrs {
		switch in.Kind {
		case typeset.InstrSetFont:
			active = in.Font
		case typeset.InstrText:
			r.drawText(dst, src, active, in)
		case typeset.InstrRule:
			y := round(in.BBox.Y + in.BBox.H/2)
			hline(dst, round(in.BBox.X), round(in.BBox.X+in.BBox.W), y, ink)
		case typeset.InstrImage:
			r.drawImage(dst, in)
		}
	}
	return dst
}

func (r *Renderer) drawText(dst *image.RGBA, src image.Image, active *typeset.Font, in typeset.DrawInstr) {
	if active == nil {
		return
	}
	face, ok := active.Face.(font.Face)
	if !ok {
		return
	}
	ascent := face.Metrics().Ascent
	d := font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot: fixed.Point26_6{
			X: toFixed(in.BBox.X),
			Y: toFixed(in.BBox.Y) + ascent,
		},
	}
	d.DrawBytes(in.Text)

	ink := r.Ink
	if ink == nil {
		ink = color.Black
	}
	x0, x1 := round(in.BBox.X), round(in.BBox.X+in.BBox.W)
	baseline := round(in.BBox.Y) + ascent.Ceil()
	if active.Style.Has(typeset.StyleUnderline) {
		hline(dst, x0, x1, baseline+2, ink)
	}
	if active.Style.Has(typeset.StyleStrikeout) {
		hline(dst, x0, x1, baseline-ascent.Ceil()/3, ink)
	}
}

func (r *Renderer) drawImage(dst *image.RGBA, in typeset.DrawInstr) {
	if in.Image == nil {
		return
	}
	img, _, err := image.Decode(bytes.NewReader(in.Image.Data))
	if err != nil {
		return
	}
	rect := image.Rect(
		round(in.BBox.X), round(in.BBox.Y),
		round(in.BBox.X+in.BBox.W), round(in.BBox.Y+in.BBox.H),
	)
	xdraw.ApproxBiLinear.Scale(dst, rect, img, img.Bounds(), xdraw.Over, nil)
}

func hline(dst *image.RGBA, x0, x1, y int, c color.Color) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	for x := x0; x < x1; x++ {
		dst.Set(x, y, c)
	}
}

func round(v float64) int {
	return int(math.Round(v))
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
