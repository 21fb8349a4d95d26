package otquery

import (
	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/npillmayer/platfont/fontload"
)

// NumGlyphs reads the number of glyphs of font f from table 'maxp'.
// Returns (n, true) on success, or (0, false) if table is missing or malformed.
func NumGlyphs(f *fontload.ScalableFont) (int, bool) {
	b := Table(f, "maxp")
	if b == nil {
		return 0, false
	}
	maxp, _, err := tables.ParseMaxp(b)
	if err != nil {
		tracer().Debugf("table maxp: %v", err)
		return 0, false
	}
	return int(maxp.NumGlyphs), true
}
