package platfont

import (
	"strings"

	"github.com/npillmayer/platfont/xftname"
)

// Family names the engine uses for its default fonts. Engine requests
// containing one of these are narrowed down to exactly this family.
const (
	familyArial         = "arial"
	familyLucidaConsole = "lucida console"
	defaultEngineFamily = familyArial
)

// translateRequest creates the font pattern for an engine font request.
// Weight and slant are derived from the family name, e.g. "Arial Bold".
// The size is adjusted to make fonts fit the engine's widgets.
func translateRequest(name string, size int, dpi int) xftname.Pattern {
	lower := strings.ToLower(name)
	p := xftname.Pattern{
		Family: name,
		Size:   float64(adjustSize(size)),
		Weight: xftname.WeightMedium,
		Slant:  xftname.SlantRoman,
		DPI:    float64(dpi),
	}
	switch {
	case name == "":
		p.Family = defaultEngineFamily
	case strings.Contains(lower, familyArial):
		p.Family = familyArial
	case strings.Contains(lower, familyLucidaConsole):
		p.Family = familyLucidaConsole
	}
	if strings.Contains(lower, "bold") {
		p.Weight = xftname.WeightBold
	}
	if strings.Contains(lower, "italic") {
		p.Slant = xftname.SlantItalic
	}
	return p
}

// adjustSize shrinks a point size by 2 and by another 10 percent.
// The result is at least 1.
func adjustSize(size int) int {
	adjusted := size - 2 - int(float64(size)*0.1)
	if adjusted < 1 {
		return 1
	}
	return adjusted
}
