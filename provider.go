package platfont

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/npillmayer/platfont/charset"
	"github.com/npillmayer/platfont/fontload"
	"github.com/npillmayer/platfont/locate"
	"github.com/npillmayer/platfont/otquery"
	"github.com/npillmayer/platfont/xftname"
	"github.com/npillmayer/schuko"
	"golang.org/x/image/font"
)

// Provider creates platform fonts. It holds the configuration and the font
// locators fonts are matched with.
//
// A Provider is safe for concurrent use.
type Provider struct {
	settings settings
	system   *locate.SystemLocator
	locator  locate.FontLocatorWithContext
}

// NewProvider creates a provider configured by conf. conf may be nil, in
// which case defaults are used for all settings.
func NewProvider(conf schuko.Configuration) (*Provider, error) {
	s, err := settingsFrom(conf)
	if err != nil {
		return nil, err
	}
	p := &Provider{
		settings: s,
		system:   locate.NewSystemLocator(s.cacheDir, s.systemFonts),
	}
	locators := []locate.FontLocatorWithContext{p.system.Match}
	if s.systemFonts {
		locators = append(locators, locate.FileLocator(s.dirs...))
	} else if len(s.dirs) > 0 {
		locators = append(locators, locate.DirLocator(s.dirs...))
	}
	p.locator = locate.Chain(locators...)
	tracer().Debugf("font provider: %d dpi, fallback %q, system fonts %v, dirs %v",
		s.dpi, s.fallback, s.systemFonts, s.dirs)
	return p, nil
}

// AddFont registers a font binary with the provider. Registered fonts are
// preferred over system fonts. If family is not empty, the font is
// registered under this family name instead of its own, which allows a
// client to e.g. serve "arial" with a font of its own choice.
func (p *Provider) AddFont(data []byte, fileID, family string) error {
	return p.system.AddFont(data, fileID, family)
}

// Families lists the normalized names of the font families known to the
// provider.
func (p *Provider) Families(ctx context.Context) []string {
	return p.system.Families(ctx)
}

// CreatePlatformFont creates a font for an engine font request. See
// CreatePlatformFontWithContext.
func (p *Provider) CreatePlatformFont(name string, size int, cs charset.Charset) (*UnixFont, error) {
	return p.CreatePlatformFontWithContext(context.Background(), name, size, cs)
}

// CreatePlatformFontWithContext creates a font for an engine font request.
//
// Weight and slant are taken from the family name, e.g. "Arial Bold Italic".
// The point size is reduced to make the font fit the engine's widgets.
// If the family cannot be matched, the configured fallback family is tried
// with the same size, weight and slant, then any font serving as a
// substitute, and finally the built-in fixed face.
//
// The charset is recorded with the font. It does not influence matching.
func (p *Provider) CreatePlatformFontWithContext(ctx context.Context, name string, size int,
	cs charset.Charset) (*UnixFont, error) {
	//
	if !cs.Valid() {
		return nil, fmt.Errorf("font %q: %w: %d", name, charset.ErrUnknownCharset, uint32(cs))
	}
	if err := p.checkDisplay(); err != nil {
		return nil, err
	}
	pattern := translateRequest(name, size, p.settings.dpi)
	tracer().Debugf("font request %q %d → %s", name, size, pattern.Request())
	uf, err := p.open(ctx, pattern, true)
	if err != nil {
		tracer().Errorf("Could not load font -%s-", pattern.Request())
		return nil, err
	}
	uf.charset = cs
	return uf, nil
}

// OpenName opens a font from a pattern name, as returned by UnixFont.Name.
// Unlike CreatePlatformFont, neither a request translation nor fallback
// families are applied. The built-in face may be opened by its name
// (fontload.FallbackFaceName) if configuration allows it.
func (p *Provider) OpenName(ctx context.Context, name string) (*UnixFont, error) {
	pattern, err := xftname.Parse(name)
	if err != nil {
		return nil, err
	}
	return p.open(ctx, pattern, false)
}

func (p *Provider) checkDisplay() error {
	if p.settings.displayRequired && p.settings.display == "" {
		tracer().Errorf("no display set")
		return ErrNoDisplay
	}
	return nil
}

// open locates a font for a pattern and creates a sized face from it.
// With fallbacks, the fallback family, substitution and the built-in face
// are tried in turn.
func (p *Provider) open(ctx context.Context, pattern xftname.Pattern, fallbacks bool) (*UnixFont, error) {
	pattern = pattern.Normalized()
	if pattern.File == "" && pattern.Family == fontload.FallbackFaceName {
		if p.settings.builtin {
			return p.builtin(pattern), nil
		}
	}
	sf, err := p.locator(ctx, pattern)
	if err != nil && fallbacks {
		sf, err = p.fallback(ctx, pattern, err)
	}
	if err != nil {
		if isContextErr(err) {
			return nil, err
		}
		if fallbacks && p.settings.builtin {
			tracer().Infof("using built-in face for %s", pattern.Request())
			return p.builtin(pattern), nil
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrCannotLoadFont, pattern.Request(), err)
	}
	face, err := sf.Face(pattern.Size, pattern.Resolution(), font.HintingFull)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCannotLoadFont, pattern.Request(), err)
	}
	matched := pattern
	matched.File, matched.Index = sf.Filepath, sf.Index
	if family := otquery.NameInfo(sf)["family"]; family != "" {
		matched.Family = family
	}
	return newUnixFont(p, matched, sf, face), nil
}

// fallback tries the fallback family and then any substitute for a pattern
// which could not be matched.
func (p *Provider) fallback(ctx context.Context, pattern xftname.Pattern, err error) (*fontload.ScalableFont, error) {
	errs := []error{err}
	if isContextErr(err) {
		return nil, err
	}
	if p.settings.fallback != "" && p.settings.fallback != pattern.Family {
		fb := pattern
		fb.Family = p.settings.fallback
		tracer().Debugf("trying fallback font %s", fb.Request())
		sf, err := p.locator(ctx, fb)
		if err == nil {
			return sf, nil
		} else if isContextErr(err) {
			return nil, err
		}
		errs = append(errs, err)
	}
	sf, err := p.system.Substitute(ctx, pattern)
	if err == nil {
		return sf, nil
	} else if isContextErr(err) {
		return nil, err
	}
	return nil, errors.Join(append(errs, err)...)
}

func (p *Provider) builtin(pattern xftname.Pattern) *UnixFont {
	matched := pattern
	matched.Family = fontload.FallbackFaceName
	matched.File, matched.Index = "", 0
	return newUnixFont(p, matched, nil, fontload.FallbackFace())
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// --- Default provider ------------------------------------------------------

var defaultProvider struct {
	once     sync.Once
	provider *Provider
	err      error
}

// Default returns a provider with default configuration, creating it on
// first use.
func Default() (*Provider, error) {
	defaultProvider.once.Do(func() {
		defaultProvider.provider, defaultProvider.err = NewProvider(nil)
	})
	return defaultProvider.provider, defaultProvider.err
}

// CreatePlatformFont creates a font for an engine font request, using the
// default provider.
func CreatePlatformFont(name string, size int, cs charset.Charset) (*UnixFont, error) {
	p, err := Default()
	if err != nil {
		return nil, err
	}
	return p.CreatePlatformFont(name, size, cs)
}
