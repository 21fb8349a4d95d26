/*
Package otquery answers questions about a loaded font: metrics, names, glyphs.

Queries work on the raw table bytes of a font, located through the font's
table directory, or delegate to golang.org/x/image/font/sfnt where it already
offers the information.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'platfont.query'
func tracer() tracing.Trace {
	return tracing.Select("platfont.query")
}
