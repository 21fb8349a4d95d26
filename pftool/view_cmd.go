package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/platfont"
	"github.com/npillmayer/platfont/charset"
	"github.com/thatisuday/commando"
)

func runViewCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	family := strings.TrimSpace(args["family"].Value)
	text, err := parseTextInput(args["text"], flags["codepoints"])
	if err != nil {
		fatalf("%v", err)
	}
	if text == "" {
		fatalf("no text to render")
	}
	scale := mustFlagInt(flags["scale"], "scale")
	if scale < 1 {
		fatalf("invalid --scale %d", scale)
	}
	provider := newProvider(flags)
	f, err := provider.CreatePlatformFont(family, mustFlagInt(flags["size"], "size"), charset.ANSI)
	if err != nil {
		fatalf("cannot match %q: %v", family, err)
	}
	defer f.Close()

	chars := make([]platfont.CharInfo, 0, len(text))
	for _, r := range text {
		if !f.IsValidChar(r) {
			fmt.Printf("note: %#U is outside of the engine's character range\n", r)
		}
		info, err := f.CharInfo(r)
		if err != nil {
			fatalf("cannot rasterize %#U: %v", r, err)
		}
		chars = append(chars, info)
	}
	img := composeLine(chars, f.Height(), f.Baseline(), mustFlagBool(flags["baseline"], "baseline"))
	if scale > 1 {
		img = magnify(img, scale)
	}
	outPath := mustFlagString(flags["output"], "output")
	if err := writePNG(img, outPath); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("rendered %d characters with %s to %s\n", len(chars), f.Name(), outPath)
}

// composeLine places character bitmaps side by side, each advancing by its
// XIncrement, and draws them black on white.
func composeLine(chars []platfont.CharInfo, height, baseline int, markBaseline bool) *image.RGBA {
	width := 0
	for _, c := range chars {
		width += max(c.XIncrement, c.Width)
	}
	img := image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)
	if markBaseline && baseline > 0 && baseline <= height {
		for x := 0; x < width; x++ {
			img.Set(x, baseline-1, color.RGBA{255, 0, 0, 255})
		}
	}
	x := 0
	for _, c := range chars {
		if c.BitmapData != nil && c.Width > 0 && c.Height > 0 {
			mask := &image.Alpha{
				Pix:    c.BitmapData,
				Stride: c.Width,
				Rect:   image.Rect(0, 0, c.Width, c.Height),
			}
			// align the character's baseline with the line's baseline
			dy := baseline - c.YOrigin
			r := image.Rect(x+c.XOrigin, dy, x+c.XOrigin+c.Width, dy+c.Height)
			draw.DrawMask(img, r, image.Black, image.Point{}, mask, image.Point{}, draw.Over)
		}
		x += c.XIncrement
	}
	return img
}

// magnify scales img by an integer factor, without smoothing.
func magnify(img *image.RGBA, scale int) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	for y := 0; y < out.Bounds().Dy(); y++ {
		for x := 0; x < out.Bounds().Dx(); x++ {
			out.SetRGBA(x, y, img.RGBAAt(b.Min.X+x/scale, b.Min.Y+y/scale))
		}
	}
	return out
}

func writePNG(img image.Image, outPath string) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	return savePNG(img, f)
}

// savePNG encodes img to w and closes w. An error on closing is reported
// unless encoding failed before.
func savePNG(img image.Image, w io.WriteCloser) (err error) {
	defer func() {
		if cerr := w.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("cannot close output file: %w", cerr)
		}
	}()
	if err = png.Encode(w, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}
