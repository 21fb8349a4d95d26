package xftname

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Weight is a font weight, using Fontconfig's numeric scale.
type Weight int

// Weights known by name. Fontconfig defines more, these are the ones an
// engine request will ever produce or a matcher will tell apart.
const (
	WeightLight    Weight = 50
	WeightBook     Weight = 75
	WeightRegular  Weight = 80
	WeightMedium   Weight = 100
	WeightDemibold Weight = 180
	WeightBold     Weight = 200
	WeightBlack    Weight = 210
)

var weightNames = []struct {
	name string
	w    Weight
}{
	{"light", WeightLight},
	{"book", WeightBook},
	{"regular", WeightRegular},
	{"medium", WeightMedium},
	{"demibold", WeightDemibold},
	{"bold", WeightBold},
	{"black", WeightBlack},
}

func (w Weight) String() string {
	for _, wn := range weightNames {
		if wn.w == w {
			return wn.name
		}
	}
	return strconv.Itoa(int(w))
}

// Slant is a font slant, using Fontconfig's numeric scale.
type Slant int

// Slants known by name.
const (
	SlantRoman   Slant = 0
	SlantItalic  Slant = 100
	SlantOblique Slant = 110
)

var slantNames = []struct {
	name string
	s    Slant
}{
	{"roman", SlantRoman},
	{"italic", SlantItalic},
	{"oblique", SlantOblique},
}

func (s Slant) String() string {
	for _, sn := range slantNames {
		if sn.s == s {
			return sn.name
		}
	}
	return strconv.Itoa(int(s))
}

// IsSlanted is true for italic and oblique slants.
func (s Slant) IsSlanted() bool {
	return s != SlantRoman
}

// DefaultDPI is the resolution assumed if a pattern does not state one.
const DefaultDPI = 75.0

// Pattern is a decoded font name.
//
// A zero Weight is interpreted as WeightMedium, a zero DPI as DefaultDPI.
// File and Index are set for patterns describing a font which has already
// been matched to a font file.
type Pattern struct {
	Family string
	Size   float64 // point size
	Weight Weight
	Slant  Slant
	DPI    float64
	File   string
	Index  int // index of the font within a collection file
}

// PixelSize returns the size of the pattern's font in pixels.
func (p Pattern) PixelSize() float64 {
	return p.Size * p.Resolution() / 72.0
}

// Resolution returns the DPI of p, substituting DefaultDPI for zero.
func (p Pattern) Resolution() float64 {
	if p.DPI <= 0 {
		return DefaultDPI
	}
	return p.DPI
}

// Normalized returns p with defaults filled in.
func (p Pattern) Normalized() Pattern {
	if p.Weight == 0 {
		p.Weight = WeightMedium
	}
	p.DPI = p.Resolution()
	return p
}

// String returns the canonical pattern name for p. It is the inverse of Parse.
func (p Pattern) String() string {
	return Unparse(p)
}

// Request formats p the way a font request is sent to the font matcher:
//
//	family-size:weight:slant=slant:dpi=dpi
//
// The size is truncated to an integer.
func (p Pattern) Request() string {
	p = p.Normalized()
	return fmt.Sprintf("%s-%d:%s:slant=%s:dpi=%s", escape(p.Family), int(p.Size),
		p.Weight, p.Slant, formatNumber(p.DPI))
}

// Unparse creates the canonical name of a pattern:
//
//	family-size:weight=W:slant=S:dpi=D[:file=F][:index=I]
func Unparse(p Pattern) string {
	p = p.Normalized()
	var sb strings.Builder
	sb.WriteString(escape(p.Family))
	if p.Size > 0 {
		sb.WriteByte('-')
		sb.WriteString(formatNumber(p.Size))
	}
	fmt.Fprintf(&sb, ":weight=%s:slant=%s:dpi=%s", p.Weight, p.Slant, formatNumber(p.DPI))
	if p.File != "" {
		sb.WriteString(":file=")
		sb.WriteString(escape(p.File))
	}
	if p.Index != 0 {
		fmt.Fprintf(&sb, ":index=%d", p.Index)
	}
	return sb.String()
}

// Parse decodes a pattern name.
//
// Bare constants may denote a weight or a slant. Unknown properties and
// constants are skipped. Sizes and numeric values have to be well-formed,
// otherwise ErrMalformedPattern is returned.
func Parse(name string) (Pattern, error) {
	p := Pattern{}
	elements := split(name, ':')
	if len(elements) == 0 {
		return p.Normalized(), nil
	}
	head := elements[0]
	family, sizes, err := splitHead(head)
	if err != nil {
		return p, err
	}
	p.Family = unescape(family)
	if sizes != "" {
		if p.Size, err = parseNumber(sizes); err != nil {
			return p, fmt.Errorf("%w: size %q", ErrMalformedPattern, sizes)
		}
	}
	for _, elem := range elements[1:] {
		if elem == "" {
			continue
		}
		key, value, isProp := strings.Cut(elem, "=")
		if !isProp {
			if !p.setConstant(strings.ToLower(elem)) {
				tracer().Debugf("ignoring unknown constant %q in font pattern", elem)
			}
			continue
		}
		if err = p.setProperty(strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value)); err != nil {
			return p, err
		}
	}
	return p.Normalized(), nil
}

func (p *Pattern) setConstant(c string) bool {
	for _, wn := range weightNames {
		if wn.name == c {
			p.Weight = wn.w
			return true
		}
	}
	for _, sn := range slantNames {
		if sn.name == c {
			p.Slant = sn.s
			return true
		}
	}
	return false
}

func (p *Pattern) setProperty(key, value string) (err error) {
	switch key {
	case "family":
		p.Family = unescape(value)
	case "size":
		p.Size, err = parseNumber(value)
	case "pixelsize":
		var px float64
		if px, err = parseNumber(value); err == nil {
			p.Size = px * 72.0 / p.Resolution()
		}
	case "dpi":
		p.DPI, err = parseNumber(value)
	case "weight":
		if !p.setConstant(strings.ToLower(value)) {
			var w float64
			w, err = parseNumber(value)
			p.Weight = Weight(w)
		}
	case "slant":
		if !p.setConstant(strings.ToLower(value)) {
			var s float64
			s, err = parseNumber(value)
			p.Slant = Slant(s)
		}
	case "file":
		p.File = unescape(value)
	case "index":
		var inx float64
		inx, err = parseNumber(value)
		p.Index = int(inx)
	default:
		tracer().Debugf("ignoring font pattern property %q", key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrMalformedPattern, key, value)
	}
	return nil
}

// --- Helpers ----------------------------------------------------------

// splitHead separates "family-size" at the last unescaped dash which is
// followed by a number. Family names may contain dashes themselves, e.g.
// "Noto-Sans-12".
func splitHead(head string) (family string, size string, err error) {
	parts := split(head, '-')
	if len(parts) < 2 {
		return head, "", nil
	}
	last := parts[len(parts)-1]
	if last == "" {
		return "", "", fmt.Errorf("%w: missing size in %q", ErrMalformedPattern, head)
	}
	if _, err := strconv.ParseFloat(last, 64); err != nil {
		if startsNumeric(last) {
			return "", "", fmt.Errorf("%w: size %q", ErrMalformedPattern, last)
		}
		return head, "", nil
	}
	cut := len(head) - len(last) - 1
	return head[:cut], last, nil
}

func startsNumeric(s string) bool {
	return s != "" && (s[0] >= '0' && s[0] <= '9' || s[0] == '.')
}

// split cuts s at every occurrence of sep not preceded by a backslash.
func split(s string, sep byte) []string {
	if s == "" {
		return nil
	}
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == sep {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `-`, `\-`, `:`, `\:`, `,`, `\,`)
	return r.Replace(s)
}

func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrMalformedPattern
	}
	return f, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
