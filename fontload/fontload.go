/*
Package fontload loads scalable fonts and creates sized faces from them.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontload

import (
	"bytes"
	"fmt"
	"os"

	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'platfont.fontload'
func tracer() tracing.Trace {
	return tracing.Select("platfont.fontload")
}

// ScalableFont is a parsed scalable font with original bytes and SFNT view.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path, if loaded from a file
	Index    int        // index within a font collection
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
	Loader   *ot.Loader // table access for the font at Index
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	return LoadCollectionFont(fontfile, 0)
}

// LoadCollectionFont loads font number index from a file. The file may be a
// font collection (TTC or OTC) or a single font, in which case index must be 0.
func LoadCollectionFont(fontfile string, index int) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseCollectionFont(bytez, index)
	if err != nil {
		return nil, fmt.Errorf("font file %s: %w", fontfile, err)
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (*ScalableFont, error) {
	return ParseCollectionFont(fbytes, 0)
}

// ParseCollectionFont loads font number index from memory.
func ParseCollectionFont(fbytes []byte, index int) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes, Index: index}
	coll, err := opentype.ParseCollection(fbytes)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= coll.NumFonts() {
		return nil, fmt.Errorf("font index %d out of range [0…%d)", index, coll.NumFonts())
	}
	if f.SFNT, err = coll.Font(index); err != nil {
		return nil, err
	}
	loaders, err := ot.NewLoaders(bytes.NewReader(fbytes))
	if err != nil {
		return nil, err
	}
	if index >= len(loaders) {
		return nil, fmt.Errorf("font index %d out of range [0…%d)", index, len(loaders))
	}
	f.Loader = loaders[index]
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err != nil {
		tracer().Debugf("font without full name: %v", err)
		f.Fontname, err = "", nil
	}
	tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	return f, nil
}

// Face creates a face of the font at a given point size and resolution.
func (f *ScalableFont) Face(size, dpi float64, hinting font.Hinting) (font.Face, error) {
	if f == nil || f.SFNT == nil {
		return nil, fmt.Errorf("cannot create face from empty font")
	}
	return opentype.NewFace(f.SFNT, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: hinting,
	})
}

// FallbackFaceName is the name reported for FallbackFace.
const FallbackFaceName = "fixed"

// FallbackFace returns a fixed-size bitmap face which is always available.
// It does not scale: its metrics are 7×13 pixels regardless of the
// requested size.
func FallbackFace() font.Face {
	return basicfont.Face7x13
}
