package platfont

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/platfont/xftname"
	"github.com/npillmayer/schuko"
)

// Configuration keys.
const (
	KeyDPI             = "fonts.dpi"
	KeyFallback        = "fonts.fallback"
	KeyCharFallback    = "fonts.charfallback"
	KeySystemFonts     = "fonts.systemfonts"
	KeyCacheDir        = "fonts.cachedir"
	KeyDirs            = "fonts.dirs"
	KeyBuiltin         = "fonts.builtin"
	KeyDisplay         = "display.name"
	KeyDisplayRequired = "display.required"
)

// Defaults for configuration values not set.
const (
	DefaultDPI          = 76
	DefaultFallback     = "6x10"
	DefaultCharFallback = "lucida console-10:dpi=76"
)

// settings are the configuration values of a provider.
type settings struct {
	dpi             int
	fallback        string
	charFallback    xftname.Pattern
	systemFonts     bool
	cacheDir        string
	dirs            []string
	builtin         bool
	display         string
	displayRequired bool
}

// settingsFrom reads the provider settings from conf, which may be nil.
func settingsFrom(conf schuko.Configuration) (settings, error) {
	s := settings{
		dpi:         DefaultDPI,
		fallback:    DefaultFallback,
		systemFonts: true,
		builtin:     true,
		display:     os.Getenv("DISPLAY"),
	}
	charFallback := DefaultCharFallback
	if conf != nil {
		if conf.IsSet(KeyDPI) {
			s.dpi = conf.GetInt(KeyDPI)
		}
		if conf.IsSet(KeyFallback) {
			s.fallback = conf.GetString(KeyFallback)
		}
		if conf.IsSet(KeyCharFallback) {
			charFallback = conf.GetString(KeyCharFallback)
		}
		if conf.IsSet(KeySystemFonts) {
			s.systemFonts = conf.GetBool(KeySystemFonts)
		}
		s.cacheDir = conf.GetString(KeyCacheDir)
		if dirs := conf.GetString(KeyDirs); dirs != "" {
			s.dirs = filepath.SplitList(dirs)
		}
		if conf.IsSet(KeyBuiltin) {
			s.builtin = conf.GetBool(KeyBuiltin)
		}
		if conf.IsSet(KeyDisplay) {
			s.display = conf.GetString(KeyDisplay)
		}
		s.displayRequired = conf.GetBool(KeyDisplayRequired)
	}
	if s.dpi <= 0 {
		return s, fmt.Errorf("invalid font resolution %d dpi", s.dpi)
	}
	var err error
	if s.charFallback, err = xftname.Parse(charFallback); err != nil {
		return s, fmt.Errorf("configuration %s: %w", KeyCharFallback, err)
	}
	return s, nil
}
