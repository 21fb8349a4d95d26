package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/npillmayer/platfont"
	"github.com/npillmayer/platfont/otquery"
	"github.com/pterm/pterm"
)

func charOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkFont(); err != nil {
		return
	}
	var s string
	if s, err = charArg(op.arg); err != nil {
		return
	}
	if !intp.font.IsValidCharUTF8(s) {
		pterm.Info.Printf("%q is not a valid character for the engine\n", s)
	}
	info, err := intp.font.CharInfoUTF8(s)
	if err != nil {
		return
	}
	pterm.Printf("%q: %d×%d pixels, origin (%d,%d), advance %d\n", s, info.Width, info.Height,
		info.XOrigin, info.YOrigin, info.XIncrement)
	pterm.Println(renderBitmap(info))
	return nil, false
}

// shades are ordered from no to full coverage.
const shades = " .:-=+*#%@"

// renderBitmap draws a character bitmap with shade characters. The baseline
// is marked at the right edge.
func renderBitmap(info platfont.CharInfo) string {
	if info.BitmapData == nil {
		return "(no pixels)"
	}
	var sb strings.Builder
	border := "+" + strings.Repeat("-", info.Width) + "+\n"
	sb.WriteString(border)
	for y := 0; y < info.Height; y++ {
		sb.WriteByte('|')
		for x := 0; x < info.Width; x++ {
			c := int(info.BitmapData[y*info.Width+x])
			sb.WriteByte(shades[c*(len(shades)-1)/255])
		}
		sb.WriteByte('|')
		if y == info.YOrigin-1 {
			sb.WriteString(" baseline")
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(border)
	return sb.String()
}

func validOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkFont(); err != nil {
		return
	}
	var s string
	if s, err = charArg(op.arg); err != nil {
		return
	}
	r := []rune(s)[0]
	pterm.Printf("%#U is valid: %v, covered by charset %s: %v\n", r, intp.font.IsValidCharUTF8(s),
		intp.charset, intp.charset.Covers(r))
	return nil, false
}

func infoOp(intp *Intp, op *Op) (err error, stop bool) {
	if err = intp.checkFont(); err != nil {
		return
	}
	f := intp.font
	data := [][]string{
		{"Property", "Value"},
		{"Name", f.Name()},
		{"Charset", f.Charset().String()},
		{"Baseline", fmt.Sprintf("%d px", f.Baseline())},
		{"Height", fmt.Sprintf("%d px", f.Height())},
	}
	if sf := f.Font(); sf == nil {
		data = append(data, []string{"Font", "built-in fixed face"})
	} else {
		names := otquery.NameInfo(sf)
		data = append(data,
			[]string{"File", sf.Filepath},
			[]string{"Type", otquery.FontType(sf)},
			[]string{"Family", names["family"]},
			[]string{"Subfamily", names["subfamily"]},
			[]string{"Version", names["version"]},
		)
		m := otquery.FontMetrics(sf)
		data = append(data,
			[]string{"Units per em", fmt.Sprintf("%d", m.UnitsPerEm)},
			[]string{"Ascent/Descent", fmt.Sprintf("%d / %d", m.Ascent, m.Descent)},
		)
		if n, ok := otquery.NumGlyphs(sf); ok {
			data = append(data, []string{"Glyphs", fmt.Sprintf("%d", n)})
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func listOp(intp *Intp, op *Op) (err error, stop bool) {
	families := intp.provider.Families(context.Background())
	if op.arg != "" {
		filter := strings.ToLower(strings.ReplaceAll(op.arg, " ", ""))
		var matching []string
		for _, f := range families {
			if strings.Contains(f, filter) {
				matching = append(matching, f)
			}
		}
		families = matching
	}
	pterm.Printf("%d font families\n", len(families))
	for _, f := range families {
		pterm.Println(f)
	}
	return nil, false
}
