package otquery

import (
	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/npillmayer/platfont/fontload"
)

// HeadTableInfo is a typed query view over OpenType table 'head'.
type HeadTableInfo struct {
	UnitsPerEm       uint16
	XMin             int16
	YMin             int16
	XMax             int16
	YMax             int16
	MacStyle         uint16
	IndexToLocFormat int16
}

// HeadInfo decodes table 'head' of font f.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func HeadInfo(f *fontload.ScalableFont) (HeadTableInfo, bool) {
	var info HeadTableInfo
	b := Table(f, "head")
	if b == nil {
		return info, false
	}
	head, _, err := tables.ParseHead(b)
	if err != nil {
		tracer().Debugf("table head: %v", err)
		return info, false
	}
	info.UnitsPerEm = head.UnitsPerEm
	info.XMin, info.YMin = head.XMin, head.YMin
	info.XMax, info.YMax = head.XMax, head.YMax
	info.MacStyle = head.MacStyle
	info.IndexToLocFormat = head.IndexToLocFormat
	return info, true
}

// Bits of field MacStyle in table 'head'.
const (
	MacStyleBold   = 1 << 0
	MacStyleItalic = 1 << 1
)

// IsBold reports whether the font is flagged as bold in table 'head'.
func (h HeadTableInfo) IsBold() bool {
	return h.MacStyle&MacStyleBold != 0
}

// IsItalic reports whether the font is flagged as italic in table 'head'.
func (h HeadTableInfo) IsItalic() bool {
	return h.MacStyle&MacStyleItalic != 0
}
