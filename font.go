package platfont

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/platfont/charset"
	"github.com/npillmayer/platfont/fontload"
	"github.com/npillmayer/platfont/raster"
	"github.com/npillmayer/platfont/xftname"
	"golang.org/x/image/font"
)

// CharInfo describes the bitmap of a single character, as handed to the
// engine's font cache.
//
// BitmapIndex and the offsets are for the font cache to fill in when packing
// the bitmap into an atlas. BitmapData holds Width*Height coverage values,
// row-major, or is nil for characters without pixels.
type CharInfo struct {
	BitmapIndex int
	XOffset     int
	YOffset     int
	Width       int
	Height      int
	XOrigin     int // horizontal position of the glyph origin in the bitmap
	YOrigin     int // row of the baseline in the bitmap
	XIncrement  int // horizontal advance
	BitmapData  []uint8
}

// PlatformFont is a font as seen by the engine's font cache.
type PlatformFont interface {
	IsValidChar(ch rune) bool
	IsValidCharUTF8(s string) bool
	CharInfo(ch rune) (CharInfo, error)
	CharInfoUTF8(s string) (CharInfo, error)
	Baseline() int
	Height() int
	Name() string
	Close() error
}

// UnixFont is the platform font of UNIX desktops.
//
// Characters are rasterized by a sized face. If the face has been closed,
// it is re-opened by the font's name on demand. A UnixFont is safe for
// concurrent use.
type UnixFont struct {
	mx       sync.Mutex
	provider *Provider
	pattern  xftname.Pattern        // matched pattern
	font     *fontload.ScalableFont // nil for the built-in face
	face     font.Face              // nil if closed
	metrics  raster.LineMetrics
	baseline int
	height   int
	charset  charset.Charset
}

var _ PlatformFont = (*UnixFont)(nil)

func newUnixFont(p *Provider, pattern xftname.Pattern, sf *fontload.ScalableFont, face font.Face) *UnixFont {
	lm := raster.MetricsOf(face)
	uf := &UnixFont{
		provider: p,
		pattern:  pattern,
		font:     sf,
		face:     face,
		metrics:  lm,
		baseline: lm.Ascent,
		height:   lm.Height,
	}
	tracer().Debugf("opened font %s: baseline %d, height %d", uf.Name(), uf.baseline, uf.height)
	return uf
}

// Name returns the pattern name of the matched font.
// It may be passed to Provider.OpenName.
func (uf *UnixFont) Name() string {
	return uf.pattern.String()
}

// Pattern returns the pattern of the matched font.
func (uf *UnixFont) Pattern() xftname.Pattern {
	return uf.pattern
}

// Font returns the scalable font the face was created from, or nil for
// the built-in face.
func (uf *UnixFont) Font() *fontload.ScalableFont {
	uf.mx.Lock()
	defer uf.mx.Unlock()
	return uf.font
}

// Charset returns the charset the font has been requested for.
func (uf *UnixFont) Charset() charset.Charset {
	return uf.charset
}

// Baseline is the distance from the top of a character bitmap to the
// baseline, in pixels.
func (uf *UnixFont) Baseline() int {
	return uf.baseline
}

// Height is the height of the font (ascent plus descent), in pixels.
func (uf *UnixFont) Height() int {
	return uf.height
}

// IsValidChar is true for characters from U+0020 to U+0100.
func (uf *UnixFont) IsValidChar(ch rune) bool {
	return ch >= 0x20 && ch <= 0x100
}

// IsValidCharUTF8 checks the first character of s, see IsValidChar.
func (uf *UnixFont) IsValidCharUTF8(s string) bool {
	return uf.IsValidChar(firstChar(s))
}

// CharInfo rasterizes a character.
//
// The bitmap is as high as the font and as wide as the character's advance.
// Its baseline is at row YOrigin. If the font has been closed, it is
// re-opened; if that fails, the character is rasterized with the configured
// fallback font.
func (uf *UnixFont) CharInfo(ch rune) (CharInfo, error) {
	uf.mx.Lock()
	defer uf.mx.Unlock()
	if err := uf.reopen(context.Background()); err != nil {
		return CharInfo{}, err
	}
	bm := raster.Rasterize(uf.face, uf.metrics, ch)
	info := CharInfo{
		Width:      bm.Width,
		Height:     bm.Height,
		XOrigin:    0,
		YOrigin:    bm.Ascent,
		XIncrement: bm.Advance,
		BitmapData: bm.Pix,
	}
	return info, nil
}

// CharInfoUTF8 rasterizes the first character of s, see CharInfo.
func (uf *UnixFont) CharInfoUTF8(s string) (CharInfo, error) {
	return uf.CharInfo(firstChar(s))
}

// Close releases the face of the font. The font remains usable; its face
// will be re-opened on demand.
func (uf *UnixFont) Close() error {
	uf.mx.Lock()
	defer uf.mx.Unlock()
	if uf.face == nil {
		return nil
	}
	err := uf.face.Close()
	uf.face = nil
	return err
}

// reopen makes sure there is a face to rasterize with: the font's own, or
// the provider's character fallback font. Neither fallback families nor
// the built-in face are tried for the character fallback font.
func (uf *UnixFont) reopen(ctx context.Context) error {
	if uf.face != nil {
		return nil
	}
	if uf.provider == nil {
		return fmt.Errorf("%w: %s has no provider", ErrCannotLoadFont, uf.Name())
	}
	reopened, err := uf.provider.OpenName(ctx, uf.Name())
	if err != nil {
		tracer().Errorf("cannot re-open font %s: %v", uf.Name(), err)
		charFallback := uf.provider.settings.charFallback
		tracer().Infof("using font %s for characters", charFallback.Request())
		if reopened, err = uf.provider.open(ctx, charFallback, false); err != nil {
			tracer().Errorf("Could not load font -%s-", charFallback.Request())
			return fmt.Errorf("%w: %s: %w", ErrCannotLoadFont, uf.Name(), err)
		}
	}
	uf.font = reopened.font
	uf.face = reopened.face
	uf.metrics = reopened.metrics
	return nil
}

// firstChar decodes the first character of s as a single UTF-16 unit.
// Characters outside of the basic multilingual plane, as well as
// invalid encodings, are replaced by U+FFFD. An empty string yields 0.
func firstChar(s string) rune {
	if len(s) == 0 {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r > 0xffff {
		return utf8.RuneError
	}
	return r
}
