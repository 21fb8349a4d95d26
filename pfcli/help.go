package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "font", "open":
		pterm.Info.Println("font / open")
		pterm.Println(`
	font:<family>[:<size>]   requests a font the way the engine does.
	                         Blanks in the family are written as '_'.
	                         Weight and slant are part of the family:
	                         font:Arial_Bold_Italic:14
	open:<pattern>           opens a font by pattern name:
	                         open:DejaVu_Sans-10:weight=bold:dpi=96
	`)
	case "char", "valid":
		pterm.Info.Println("char / valid")
		pterm.Println(`
	char:<c>    rasterizes character c and prints the bitmap.
	valid:<c>   tells if c is a valid character for the engine.
	            c may be a literal, "space" or a code point like U+00E9.
	`)
	case "charset":
		pterm.Info.Println("charset")
		pterm.Println(`
	charset[:<name>]   shows or sets the charset for new fonts. Names are
	ansi symbol shiftjis hangeul hangul gb2312 chinesebig5 oem johab hebrew
	arabic greek turkish vietnamese thai easteurope russian mac baltic
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	font:<family>[:<size>]   request a font
	open:<pattern>           open a font by pattern name
	char:<c>                 print the bitmap of a character
	valid:<c>                check a character
	info                     show properties of the current font
	list[:<filter>]          list font families
	charset[:<name>]         show or set the charset
	help[:<topic>]           help
	quit                     quit
	`)
	}
}
