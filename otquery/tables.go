package otquery

import (
	"sort"

	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/platfont/fontload"
)

// Table returns the raw bytes of table tag, or nil if the font does not
// contain the table. For fonts of a collection, tables of the font at the
// font's index are returned.
func Table(f *fontload.ScalableFont, tag string) []byte {
	if f == nil || f.Loader == nil || len(tag) != 4 {
		return nil
	}
	b, err := f.Loader.RawTable(ot.MustNewTag(tag))
	if err != nil {
		tracer().Debugf("table %s: %v", tag, err)
		return nil
	}
	return b
}

// TableTags lists the tags of all tables in the font, sorted.
func TableTags(f *fontload.ScalableFont) []string {
	if f == nil || f.Loader == nil {
		return nil
	}
	tables := f.Loader.Tables()
	tags := make([]string, 0, len(tables))
	for _, tag := range tables {
		tags = append(tags, tag.String())
	}
	sort.Strings(tags)
	return tags
}

// FontType returns "TrueType" for fonts with glyph outlines in table 'glyf',
// "OpenType/CFF" for fonts with CFF outlines, and "" if the font's
// signature is not recognized.
func FontType(f *fontload.ScalableFont) string {
	if f == nil || f.Loader == nil {
		return ""
	}
	switch f.Loader.Type {
	case ot.TrueType, ot.AppleTrueType:
		return "TrueType"
	case ot.OpenType:
		return "OpenType/CFF"
	}
	return ""
}

func u16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])<<0
}
