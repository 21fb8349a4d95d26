/*
Command pftool is a batch companion to pfcli. It prints font diagnostics,
shows how font requests are matched and renders text with platform fonts
to PNG images.

	pftool font  <fontfile>
	pftool match <family> [--size 12] [--charset ansi]
	pftool view  <family> <text...> [--output out.png]
*/
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/platfont"
	"github.com/npillmayer/platfont/charset"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("pftool").
		SetVersion("v0.1.0").
		SetDescription("CLI for platform font matching and font diagnostics.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("font").
		SetDescription("Print diagnostics and table information for an OpenType font file.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "OpenType font file path", "").
		AddFlag("index,i", "font index within a collection", commando.Int, 0).
		AddFlag("tables,t", "print a line per table with its size", commando.Bool, nil).
		SetAction(runFontCommand)

	commando.
		Register("match").
		SetDescription("Show which font a font request is matched to.").
		SetShortDescription("match a font request").
		AddArgument("family", "font family request, e.g. 'Arial Bold'", "").
		AddFlag("size,s", "point size as requested by the engine", commando.Int, 12).
		AddFlag("charset,c", "charset of the request (ansi, russian, shiftjis, ...)", commando.String, "ansi").
		AddFlag("dirs,d", "list of additional font directories", commando.String, "-").
		AddFlag("nosystem,n", "do not use system fonts", commando.Bool, nil).
		AddFlag("trace,T", "trace level for font matching", commando.String, "Error").
		SetAction(runMatchCommand)

	commando.
		Register("view").
		SetDescription("Render text with a platform font to a PNG image.").
		SetShortDescription("render text to image").
		AddArgument("family", "font family request, e.g. 'Arial Bold'", "").
		AddArgument("text...", "text to render (variadic argument parts joined by comma by commando)", "").
		AddFlag("size,s", "point size as requested by the engine", commando.Int, 12).
		AddFlag("codepoints,c", "codepoints instead of text (comma/space separated, e.g. U+0041,U+00E9)", commando.String, "-").
		AddFlag("dirs,d", "list of additional font directories", commando.String, "-").
		AddFlag("nosystem,n", "do not use system fonts", commando.Bool, nil).
		AddFlag("output,o", "output PNG file", commando.String, "pftool-view.png").
		AddFlag("scale,x", "integer magnification of the image", commando.Int, 1).
		AddFlag("baseline,b", "mark the baseline in red", commando.Bool, nil).
		SetAction(runViewCommand)

	commando.Parse(nil)
}

// newProvider creates a platform font provider from command-line flags.
func newProvider(flags map[string]commando.FlagValue) *platfont.Provider {
	conf := testconfig.Conf{
		platfont.KeySystemFonts: !mustFlagBool(flags["nosystem"], "nosystem"),
	}
	if dirs := mustFlagString(flags["dirs"], "dirs"); dirs != "" {
		conf[platfont.KeyDirs] = dirs
	}
	provider, err := platfont.NewProvider(conf)
	if err != nil {
		fatalf("cannot create font provider: %v", err)
	}
	return provider
}

// setupTracing routes the tracers of the font packages to a Go logger.
func setupTracing(level string) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range []string{"platfont", "platfont.locate", "platfont.fontload", "platfont.raster"} {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("cannot configure tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

func parseCharset(flag commando.FlagValue) (charset.Charset, error) {
	s, err := flag.GetString()
	if err != nil {
		return charset.ANSI, fmt.Errorf("invalid --charset flag: %w", err)
	}
	return charset.Parse(strings.TrimSpace(s))
}

func parseTextInput(textArg commando.ArgValue, cpFlag commando.FlagValue) (string, error) {
	cp, err := cpFlag.GetString()
	if err != nil {
		return "", fmt.Errorf("invalid --codepoints flag: %w", err)
	}
	cp = strings.TrimSpace(cp)
	if cp == "-" {
		cp = ""
	}
	if cp != "" {
		runes, err := parseCodepoints(cp)
		if err != nil {
			return "", err
		}
		return string(runes), nil
	}
	return strings.ReplaceAll(textArg.Value, ",", " "), nil
}

func parseCodepoints(list string) ([]rune, error) {
	parts := splitCSVSpace(list)
	out := make([]rune, 0, len(parts))
	for _, p := range parts {
		r, err := parseCodepointToken(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseCodepointToken(token string) (rune, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty codepoint token")
	}
	hex := token
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", token, err)
	}
	return rune(u), nil
}

func splitCSVSpace(list string) []string {
	return strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	if s = strings.TrimSpace(s); s == "-" {
		return ""
	}
	return s
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "pftool: "+format+"\n", args...)
	os.Exit(1)
}
