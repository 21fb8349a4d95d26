package locate

import (
	tsfont "github.com/go-text/typesetting/font"
	"github.com/npillmayer/platfont/xftname"
)

// Fontconfig weights and their CSS/OpenType counterparts, ascending.
var weightScale = []struct {
	fc  xftname.Weight
	css tsfont.Weight
}{
	{0, 100},
	{40, 200},
	{xftname.WeightLight, 300},
	{xftname.WeightBook, 380},
	{xftname.WeightRegular, 400},
	{xftname.WeightMedium, 500},
	{xftname.WeightDemibold, 600},
	{xftname.WeightBold, 700},
	{205, 800},
	{xftname.WeightBlack, 900},
	{215, 1000},
}

// cssWeight maps a Fontconfig weight onto the OpenType scale, interpolating
// between known weights.
func cssWeight(w xftname.Weight) tsfont.Weight {
	if w <= weightScale[0].fc {
		return weightScale[0].css
	}
	for i := 1; i < len(weightScale); i++ {
		lo, hi := weightScale[i-1], weightScale[i]
		if w <= hi.fc {
			t := float32(w-lo.fc) / float32(hi.fc-lo.fc)
			return lo.css + tsfont.Weight(t*float32(hi.css-lo.css))
		}
	}
	return weightScale[len(weightScale)-1].css
}

// aspectOf translates the weight and slant of a pattern.
func aspectOf(p xftname.Pattern) tsfont.Aspect {
	p = p.Normalized()
	aspect := tsfont.Aspect{
		Style:   tsfont.StyleNormal,
		Weight:  cssWeight(p.Weight),
		Stretch: tsfont.StretchNormal,
	}
	if p.Slant.IsSlanted() {
		aspect.Style = tsfont.StyleItalic
	}
	return aspect
}

// distance scores how far aspect a is from the requested aspect q.
// Slant outweighs any weight difference, weight outweighs stretch.
func distance(q, a tsfont.Aspect) float32 {
	var d float32
	style := a.Style
	if style == 0 {
		style = tsfont.StyleNormal
	}
	if q.Style != style {
		d += 10000
	}
	dw := float32(q.Weight - a.Weight)
	if dw < 0 {
		dw = -dw
	}
	d += dw
	stretch := a.Stretch
	if stretch == 0 {
		stretch = tsfont.StretchNormal
	}
	ds := float32(stretch - tsfont.StretchNormal)
	if ds < 0 {
		ds = -ds
	}
	return d + ds*100
}
