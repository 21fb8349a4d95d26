package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/platfont/fontload"
	"github.com/npillmayer/platfont/otquery"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	sf, err := fontload.LoadCollectionFont(fontPath, mustFlagInt(flags["index"], "index"))
	if err != nil {
		fatalf("cannot load font %s: %v", fontPath, err)
	}

	fmt.Printf("Path: %s\n", sf.Filepath)
	fmt.Printf("Type: %s\n", otquery.FontType(sf))
	names := otquery.NameInfo(sf)
	for _, key := range []string{"family", "subfamily", "version"} {
		if v := names[key]; v != "" {
			fmt.Printf("%s: %s\n", strings.ToUpper(key[:1])+key[1:], v)
		}
	}
	if n, ok := otquery.NumGlyphs(sf); ok {
		fmt.Printf("Glyphs: %d\n", n)
	}
	m := otquery.FontMetrics(sf)
	fmt.Printf("Metrics: units/em=%d ascent=%d descent=%d linegap=%d maxadvance=%d\n",
		m.UnitsPerEm, m.Ascent, m.Descent, m.LineGap, m.MaxAdvance)
	if head, ok := otquery.HeadInfo(sf); ok {
		fmt.Printf("Style: bold=%v italic=%v\n", head.IsBold(), head.IsItalic())
	}

	tags := otquery.TableTags(sf)
	sort.Strings(tags)
	fmt.Printf("Tables (%d):", len(tags))
	for _, tag := range tags {
		fmt.Printf(" %s", tag)
	}
	fmt.Println()
	if mustFlagBool(flags["tables"], "tables") {
		for _, tag := range tags {
			fmt.Printf("  %-4s %8d bytes\n", tag, len(otquery.Table(sf, tag)))
		}
	}
}
