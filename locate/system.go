package locate

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	tsfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"github.com/npillmayer/platfont/fontload"
	"github.com/npillmayer/platfont/xftname"
)

// SystemLocator matches font patterns against the fonts installed on the
// system and against fonts registered with AddFont.
//
// The system fonts are indexed on first use. Indexing may take a while on
// the very first run; the index is cached on disk (see fontscan.SystemFonts).
//
// A SystemLocator is safe for concurrent use.
type SystemLocator struct {
	mx         sync.Mutex
	cacheDir   string
	useSystem  bool
	scanned    bool
	scanErr    error
	system     []fontscan.Footprint
	user       []userFont
	userData   map[string][]byte // font binaries of registered fonts, by file ID
	substitute *fontscan.FontMap
}

// userFont is a registered font, one per font of a collection.
type userFont struct {
	family string // normalized
	aspect tsfont.Aspect
	loc    fontscan.Location
}

// NewSystemLocator creates a locator. If useSystemFonts is false, only fonts
// registered with AddFont will be found. cacheDir is the directory for the
// font index; if empty, a platform dependent default is used.
func NewSystemLocator(cacheDir string, useSystemFonts bool) *SystemLocator {
	return &SystemLocator{
		cacheDir:   cacheDir,
		useSystem:  useSystemFonts,
		userData:   make(map[string][]byte),
		substitute: fontscan.NewFontMap(traceLogger{}),
	}
}

// AddFont registers a font binary (TTF, OTF or a collection) under fileID.
// If family is not empty, it overrides the family names found in the font.
// Registered fonts take precedence over system fonts of the same family.
func (sl *SystemLocator) AddFont(data []byte, fileID, family string) error {
	faces, err := tsfont.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("cannot register font %s: %w", fileID, err)
	}
	sl.mx.Lock()
	defer sl.mx.Unlock()
	if err := sl.substitute.AddFont(bytes.NewReader(data), fileID, family); err != nil {
		return fmt.Errorf("cannot register font %s: %w", fileID, err)
	}
	sl.userData[fileID] = data
	for i, face := range faces {
		desc := face.Describe()
		fam := desc.Family
		if family != "" {
			fam = family
		}
		uf := userFont{
			family: tsfont.NormalizeFamily(fam),
			aspect: desc.Aspect,
			loc:    fontscan.Location{File: fileID, Index: uint16(i)},
		}
		tracer().Debugf("registered font %s #%d as family %q, aspect %v", fileID, i, uf.family, uf.aspect)
		sl.user = append(sl.user, uf)
	}
	return nil
}

// scan indexes the system fonts, once. Errors are remembered; a locator
// without system fonts still serves registered fonts.
func (sl *SystemLocator) scan(ctx context.Context) {
	if sl.scanned || !sl.useSystem {
		return
	}
	if ctx.Err() != nil { // leave the scan to a later, uncancelled request
		return
	}
	sl.scanned = true
	footprints, err := fontscan.SystemFonts(traceLogger{}, sl.cacheDir)
	if err != nil {
		tracer().Errorf("cannot index system fonts: %v", err)
		sl.scanErr = err
		return
	}
	sl.system = footprints
	if err = sl.substitute.UseSystemFonts(sl.cacheDir); err != nil {
		tracer().Errorf("cannot use system fonts for substitution: %v", err)
	}
	tracer().Infof("indexed %d system fonts", len(footprints))
}

type candidate struct {
	loc    fontscan.Location
	aspect tsfont.Aspect
	score  float32
}

// Match finds the font of the pattern's family which is closest to the
// pattern's weight and slant. Family names are compared case-insensitively,
// ignoring spaces. If the pattern names a font file, this file is loaded
// directly.
func (sl *SystemLocator) Match(ctx context.Context, p xftname.Pattern) (*fontload.ScalableFont, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sl.mx.Lock()
	defer sl.mx.Unlock()
	if p.File != "" {
		return sl.load(fontscan.Location{File: p.File, Index: uint16(p.Index)})
	}
	sl.scan(ctx)
	family := tsfont.NormalizeFamily(p.Family)
	query := aspectOf(p)
	var candidates []candidate
	for _, uf := range sl.user {
		if uf.family == family {
			candidates = append(candidates, candidate{uf.loc, uf.aspect, distance(query, uf.aspect)})
		}
	}
	for _, fp := range sl.system {
		if fp.Family == family {
			candidates = append(candidates, candidate{fp.Location, fp.Aspect, distance(query, fp.Aspect)})
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: family %q", ErrFontNotFound, p.Family)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score < candidates[j].score
	})
	for _, c := range candidates {
		f, err := sl.load(c.loc)
		if err != nil {
			tracer().Errorf("cannot load matched font %s: %v", c.loc.File, err)
			continue
		}
		tracer().Debugf("matched %s to %s (%v)", p, c.loc.File, c.aspect)
		return f, nil
	}
	return nil, fmt.Errorf("%w: no loadable font for family %q", ErrFontNotFound, p.Family)
}

// Substitute finds a font for a pattern using the family substitution rules
// of fontconfig and CSS, e.g. "arial" may be served by "Liberation Sans".
// Unlike Match, Substitute finds a font whenever there is any font known
// to the locator.
func (sl *SystemLocator) Substitute(ctx context.Context, p xftname.Pattern) (*fontload.ScalableFont, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sl.mx.Lock()
	defer sl.mx.Unlock()
	sl.scan(ctx)
	sl.substitute.SetQuery(fontscan.Query{
		Families: []string{p.Family},
		Aspect:   aspectOf(p),
	})
	face := sl.substitute.ResolveFace('A')
	if face == nil {
		return nil, fmt.Errorf("%w: no substitute for family %q", ErrFontNotFound, p.Family)
	}
	loc := sl.substitute.FontLocation(face.Font)
	family, _ := sl.substitute.FontMetadata(face.Font)
	tracer().Debugf("substituted %q by %q (%s)", p.Family, family, loc.File)
	return sl.load(loc)
}

// Families lists the (normalized) family names known to the locator.
func (sl *SystemLocator) Families(ctx context.Context) []string {
	sl.mx.Lock()
	defer sl.mx.Unlock()
	sl.scan(ctx)
	seen := make(map[string]bool)
	var families []string
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			families = append(families, f)
		}
	}
	for _, uf := range sl.user {
		add(uf.family)
	}
	for _, fp := range sl.system {
		add(fp.Family)
	}
	sort.Strings(families)
	return families
}

// ScanError returns the error of indexing the system fonts, if any.
func (sl *SystemLocator) ScanError() error {
	sl.mx.Lock()
	defer sl.mx.Unlock()
	return sl.scanErr
}

// load reads a font from the registered binaries or from the file system.
func (sl *SystemLocator) load(loc fontscan.Location) (*fontload.ScalableFont, error) {
	if data, ok := sl.userData[loc.File]; ok {
		f, err := fontload.ParseCollectionFont(data, int(loc.Index))
		if err != nil {
			return nil, err
		}
		f.Filepath = loc.File
		return f, nil
	}
	return fontload.LoadCollectionFont(loc.File, int(loc.Index))
}
