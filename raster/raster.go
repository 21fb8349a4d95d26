/*
Package raster renders single characters into greyscale alpha bitmaps.

A bitmap covers the full line height of a face and the advance width of the
character. The glyph is drawn with its origin at (0, ascent), i.e. the
baseline is at row `ascent` of the bitmap. Pixel values are coverage, with 0
meaning transparent and 255 fully opaque.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package raster

import (
	"image"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// tracer writes to trace with key 'platfont.raster'
func tracer() tracing.Trace {
	return tracing.Select("platfont.raster")
}

// LineMetrics are the pixel metrics of a face relevant for glyph bitmaps.
type LineMetrics struct {
	Ascent     int // pixels above the baseline
	Descent    int // pixels below the baseline
	Height     int // Ascent + Descent
	MaxAdvance int // widest advance of the characters probed by MetricsOf
}

// MetricsOf calculates line metrics for a face, rounding ascent and descent up.
func MetricsOf(face font.Face) LineMetrics {
	m := face.Metrics()
	lm := LineMetrics{
		Ascent:  m.Ascent.Ceil(),
		Descent: m.Descent.Ceil(),
	}
	lm.Height = lm.Ascent + lm.Descent
	// faces do not report a maximum advance, so probe the usual suspects
	for _, r := range "MW@m_#" {
		if adv, ok := face.GlyphAdvance(r); ok && adv.Round() > lm.MaxAdvance {
			lm.MaxAdvance = adv.Round()
		}
	}
	return lm
}

// Bitmap is a single channel glyph image.
type Bitmap struct {
	Width   int     // equals the advance of the character
	Height  int     // line height of the face
	Ascent  int     // row of the baseline
	Advance int     // horizontal advance in pixels
	Pix     []uint8 // Width*Height coverage values, row-major; nil if empty
}

// Empty is true if b has no pixels, e.g. for zero-width characters.
func (b Bitmap) Empty() bool {
	return b.Width == 0 || b.Height == 0
}

// At returns the coverage at (x, y), or 0 outside of b.
func (b Bitmap) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height || b.Pix == nil {
		return 0
	}
	return b.Pix[y*b.Width+x]
}

// Image wraps the pixels of b as an image, without copying.
func (b Bitmap) Image() *image.Alpha {
	return &image.Alpha{
		Pix:    b.Pix,
		Stride: b.Width,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Rasterize draws character r of face into a fresh bitmap.
//
// The bitmap is as wide as the advance of r and as high as lm.Height.
// Characters without a glyph in face are drawn as the face's '.notdef'
// glyph. If either dimension is zero, the returned bitmap carries the
// metrics only and no pixel data.
func Rasterize(face font.Face, lm LineMetrics, r rune) Bitmap {
	bm := Bitmap{
		Height: lm.Height,
		Ascent: lm.Ascent,
	}
	advance, ok := face.GlyphAdvance(r)
	if !ok {
		tracer().Debugf("no glyph for %#U, using .notdef", r)
	}
	bm.Advance = advance.Round()
	bm.Width = max(bm.Advance, 0)
	if bm.Empty() || bm.Height < 0 {
		return bm
	}
	bm.Pix = make([]uint8, bm.Width*bm.Height)
	dst := bm.Image()
	// draw white on black: source is fully opaque, destination is cleared
	d := font.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, lm.Ascent),
	}
	d.DrawString(string(r))
	return bm
}
