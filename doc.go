/*
Package platfont provides platform fonts for a game engine's text renderer.

A platform font is created from a family name, a point size and a
character set, as requested by the engine. The provider translates the
request into a font pattern (see package xftname), locates a matching font
among the fonts installed on the system or registered by the client (see
package locate), and rasterizes single characters on demand into greyscale
alpha bitmaps (see package raster). The engine's font cache then copies the
bitmaps into a glyph atlas.

There is some terminology to keep apart:

▪︎ A "family" is the name the engine asks for, e.g. "Arial" or
"Lucida Console Bold". Weight and slant are encoded in the family name.

▪︎ A "pattern" is the font request derived from it, e.g.
"arial-11:medium:slant=roman:dpi=76".

▪︎ A "face" is a matched font at a certain size and resolution.

Fonts are matched by pure Go code; no X server connection is needed. If
configuration key "display.required" is set, fonts will not be created
without a display name (key "display.name", defaulting to $DISPLAY).

# Configuration

Providers are configured by a schuko.Configuration. Keys are

	fonts.dpi           resolution of faces, default 76
	fonts.fallback      family to try if a family cannot be matched, default "6x10"
	fonts.charfallback  pattern of the font to rasterize with if a font cannot
	                    be re-opened, default "lucida console-10:dpi=76"
	fonts.systemfonts   use the fonts installed on the system, default true
	fonts.cachedir      directory for the system font index
	fonts.dirs          additional font directories, separated by ':'
	fonts.builtin       allow the built-in fixed face as a last resort, default true
	display.name        display name, default $DISPLAY
	display.required    fail without display name, default false

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package platfont

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'platfont'
func tracer() tracing.Trace {
	return tracing.Select("platfont")
}

// ErrNoDisplay is returned if a display is required but none is configured.
var ErrNoDisplay = errors.New("no display")

// ErrCannotLoadFont is returned if neither the requested font nor any of the
// fallbacks can be loaded.
var ErrCannotLoadFont = errors.New("cannot load font")
