package locate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/platfont/fontload"
	"github.com/npillmayer/platfont/xftname"
)

var fontExtensions = []string{".ttf", ".otf", ".ttc"}

// FileLocator creates a locator which searches for font files by name.
// The directories dirs are searched first, followed by the user's and the
// system's font directories. File names are derived from the family name of
// a pattern, e.g. "arial" bold will look for "arial-Bold", "arialbd" and
// "arial". Matching is case-insensitive; if no file name matches exactly,
// the shortest file name containing the derived name is taken.
func FileLocator(dirs ...string) FontLocatorWithContext {
	return fileLocator(true, dirs)
}

// DirLocator is like FileLocator, but will not search outside of dirs.
func DirLocator(dirs ...string) FontLocatorWithContext {
	return fileLocator(false, dirs)
}

func fileLocator(searchSystem bool, dirs []string) FontLocatorWithContext {
	return func(ctx context.Context, p xftname.Pattern) (*fontload.ScalableFont, error) {
		if p.File != "" {
			return fontload.LoadCollectionFont(p.File, p.Index)
		}
		if strings.TrimSpace(p.Family) == "" {
			return nil, fmt.Errorf("%w: empty family", ErrFontNotFound)
		}
		for _, name := range fileNames(p) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			path, err := findFile(dirs, name, searchSystem)
			if err != nil {
				continue
			}
			tracer().Debugf("font file for %q is %s", p.Family, path)
			return fontload.LoadOpenTypeFont(path)
		}
		return nil, fmt.Errorf("%w: no font file for family %q", ErrFontNotFound, p.Family)
	}
}

func findFile(dirs []string, name string, searchSystem bool) (string, error) {
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			tracer().Debugf("skipping font directory: %v", err)
			continue
		}
		for _, ext := range fontExtensions {
			for _, e := range entries {
				if !e.IsDir() && strings.EqualFold(e.Name(), name+ext) {
					return filepath.Join(dir, e.Name()), nil
				}
			}
		}
	}
	if !searchSystem {
		return "", fmt.Errorf("%w: no file %q in %v", ErrFontNotFound, name, dirs)
	}
	return findfont.Find(name)
}

// fileNames lists candidate file names for a pattern, most specific first.
func fileNames(p xftname.Pattern) []string {
	p = p.Normalized()
	base := strings.ReplaceAll(strings.TrimSpace(p.Family), " ", "")
	bold := p.Weight >= xftname.WeightDemibold
	italic := p.Slant.IsSlanted()
	var names []string
	switch {
	case bold && italic:
		names = append(names, base+"-BoldItalic", base+"bi", base+"z")
	case bold:
		names = append(names, base+"-Bold", base+"bd", base+"b")
	case italic:
		names = append(names, base+"-Italic", base+"i")
	default:
		names = append(names, base+"-Regular")
	}
	names = append(names, base)
	if base != p.Family {
		names = append(names, p.Family)
	}
	return names
}
