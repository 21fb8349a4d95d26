package otquery

import (
	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/npillmayer/platfont/fontload"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// --- Font Information -------------------------------------------------

// FontMetrics retrieves selected metrics of a font, in font units.
//
// Ascent and descent are taken from table 'hhea'. If both are zero, the
// typographic values of table 'OS/2' are used instead.
func FontMetrics(f *fontload.ScalableFont) FontMetricsInfo {
	metrics := FontMetricsInfo{}
	if hhea, _, err := tables.ParseHhea(Table(f, "hhea")); err == nil {
		metrics.Ascent = sfnt.Units(hhea.Ascender)
		metrics.Descent = sfnt.Units(hhea.Descender)
		metrics.LineGap = sfnt.Units(hhea.LineGap)
		metrics.MaxAdvance = sfnt.Units(hhea.AdvanceMax)
	}
	if metrics.Ascent == 0 && metrics.Descent == 0 {
		if os2, _, err := tables.ParseOs2(Table(f, "OS/2")); err == nil {
			tracer().Debugf("OS/2")
			a := sfnt.Units(os2.STypoAscender)
			if a > metrics.Ascent {
				tracer().Debugf("override of ascent: %d -> %d", metrics.Ascent, a)
				metrics.Ascent = a
			}
			d := sfnt.Units(os2.STypoDescender)
			if d < metrics.Descent {
				tracer().Debugf("override of descent: %d -> %d", metrics.Descent, d)
				metrics.Descent = d
			}
			metrics.LineGap = sfnt.Units(os2.STypoLineGap)
		}
	}
	if head, ok := HeadInfo(f); ok {
		metrics.UnitsPerEm = sfnt.Units(head.UnitsPerEm)
	} else if f != nil && f.SFNT != nil {
		metrics.UnitsPerEm = sfnt.Units(f.SFNT.UnitsPerEm())
	}
	return metrics
}

// --- Glyph Routines --------------------------------------------------------

// GlyphIndex returns the glyph index for a give code-point.
// If the code-point cannot be found, 0 is returned.
//
// From the OpenType specification: character codes that do not correspond to any glyph in
// the font should be mapped to glyph index 0. The glyph at this location must be a special
// glyph representing a missing character, commonly known as '.notdef'.
func GlyphIndex(f *fontload.ScalableFont, codepoint rune) sfnt.GlyphIndex {
	if f == nil || f.SFNT == nil {
		return 0
	}
	var buf sfnt.Buffer
	gid, err := f.SFNT.GlyphIndex(&buf, codepoint)
	if err != nil {
		tracer().Debugf("glyph index for %#U: %v", codepoint, err)
		return 0
	}
	return gid
}

// HasGlyph is true if the font maps codepoint to a glyph other than '.notdef'.
func HasGlyph(f *fontload.ScalableFont, codepoint rune) bool {
	return GlyphIndex(f, codepoint) != 0
}

// GlyphMetrics retrieves metrics for a given glyph, in font units.
func GlyphMetrics(f *fontload.ScalableFont, gid sfnt.GlyphIndex) GlyphMetricsInfo {
	metrics := GlyphMetricsInfo{}
	if f == nil || f.SFNT == nil {
		return metrics
	}
	// With ppem set to units-per-em, 26.6 results are in font units.
	ppem := fixed.Int26_6(f.SFNT.UnitsPerEm())
	var buf sfnt.Buffer
	bounds, advance, err := f.SFNT.GlyphBounds(&buf, gid, ppem, font.HintingNone)
	if err != nil {
		tracer().Debugf("glyph metrics for glyph %d: %v", gid, err)
		return metrics
	}
	metrics.Advance = sfnt.Units(advance)
	// sfnt bounds have y pointing downwards
	metrics.BBox = BoundingBox{
		MinX: sfnt.Units(bounds.Min.X),
		MinY: sfnt.Units(-bounds.Max.Y),
		MaxX: sfnt.Units(bounds.Max.X),
		MaxY: sfnt.Units(-bounds.Min.Y),
	}
	if !metrics.BBox.IsEmpty() { // leave side bearings for empty bboxes
		metrics.LSB = metrics.BBox.MinX
		metrics.RSB = metrics.Advance - (metrics.LSB + metrics.BBox.Dx())
	}
	return metrics
}
