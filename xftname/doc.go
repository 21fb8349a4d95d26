/*
Package xftname reads and writes font names in the Fontconfig/Xft pattern syntax.

A pattern name looks like

	family-size:element:element…

where an element is either a bare constant, e.g. "bold" or "italic", or a
property of the form key=value, e.g. "slant=roman" or "dpi=76".
Examples are

	arial-11:medium:slant=roman:dpi=76
	DejaVu Sans-10.5:weight=bold:slant=italic:dpi=96:file=/usr/share/fonts/DejaVuSans-BoldOblique.ttf

Only the properties needed to request and identify a scalable font are
supported: family, size, pixelsize, weight, slant, dpi, file and index.
Other properties are skipped.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package xftname

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'platfont.xftname'
func tracer() tracing.Trace {
	return tracing.Select("platfont.xftname")
}

// ErrMalformedPattern is returned for pattern names which cannot be decoded.
var ErrMalformedPattern = errors.New("malformed font pattern")
