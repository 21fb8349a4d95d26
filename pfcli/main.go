/*
Command pfcli is an interactive shell to explore platform fonts.

Fonts are requested the way the game engine does, e.g. "font:Arial Bold:14"
(blanks in family names are written as '_'), and characters are rasterized
and printed to the terminal with shade characters.

Configuration is read from NestedText files found for application tag
"platfont" (see schuko.LocateConfig), and may be overridden by flags.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/platfont"
	"github.com/npillmayer/platfont/charset"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'platfont.cli'
func tracer() tracing.Trace {
	return tracing.Select("platfont.cli")
}

var traceKeys = []string{
	"platfont.cli",
	"platfont",
	"platfont.locate",
	"platfont.raster",
	"platfont.xftname",
	"platfont.fontload",
	"platfont.query",
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	tconf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		tconf["trace."+key] = "Error"
	}
	if err := trace2go.ConfigureRoot(tconf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "Arial", "Font family to request")
	fontsize := flag.Int("size", 14, "Font size in points, as requested by the engine")
	csname := flag.String("charset", "ansi", "Charset to request fonts for")
	dirs := flag.String("dirs", "", "Additional font directories, separated by ':'")
	flag.Parse()
	pterm.Info.Println("Welcome to the platform font CLI") // colored welcome message
	//
	// configuration from files, overridden by flags
	conf := koanfadapter.New(nil, "platfont", []string{".nt"})
	conf.InitDefaults()
	if *dirs != "" {
		conf.Set(platfont.KeyDirs, *dirs)
	}
	provider, err := platfont.NewProvider(conf)
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(2)
	}
	cs, err := charset.Parse(*csname)
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(2)
	}
	//
	// set up REPL
	repl, err := readline.New("pf > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, provider: provider, charset: cs, size: *fontsize}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	level, ok := traceLevels[*tlevel]
	if !ok {
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// load font to use
	if err := intp.createFont(*fontname, *fontsize); err != nil { // font name provided by flag
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	intp.REPL() // go into interactive mode
}

var traceLevels = map[string]tracing.TraceLevel{
	"Debug": tracing.LevelDebug,
	"Info":  tracing.LevelInfo,
	"Error": tracing.LevelError,
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl     *readline.Instance
	provider *platfont.Provider
	font     *platfont.UnixFont
	charset  charset.Charset
	size     int
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	return fmt.Sprintf("( font=%s charset=%s )", intp.font.Name(), intp.charset)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	if intp.font != nil {
		intp.font.Close()
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code int
	arg  string
	size string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	FONT
	OPEN
	CHAR
	INFO
	VALID
	LIST
	CHARSET
)

var opMap = map[string]int{
	"quit":    QUIT,
	"help":    HELP,
	"font":    FONT,
	"open":    OPEN,
	"char":    CHAR,
	"info":    INFO,
	"valid":   VALID,
	"list":    LIST,
	"charset": CHARSET,
}

var opNames = []string{
	"quit",
	"help",
	"font",
	"open",
	"char",
	"info",
	"valid",
	"list",
	"charset",
}

var command = Command{}

func resetCommand() {
	command.count = 0
	for i := range command.op {
		command.op[i].code = NOOP
		command.op[i].arg = ""
		command.op[i].size = ""
	}
}

// parseCommand splits a line into steps, separated by blanks. Each step is
// an op-code with optional arguments, separated by colons, e.g.
// "font:Arial_Bold:14" or "char:g". Op-code "open" takes the rest of the
// step as a font pattern, which itself contains colons. Blanks in arguments
// are written as '_'.
func (intp *Intp) parseCommand(line string) (*Command, error) {
	resetCommand()
	steps := strings.Fields(line)
	if len(steps) > len(command.op) {
		return nil, fmt.Errorf("too many commands in one line: %d", len(steps))
	}
	command.count = len(steps)
	for i, step := range steps {
		c := strings.Split(step, ":")
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		command.op[i].code = code
		if code == QUIT {
			return &command, nil
		}
		if code == OPEN {
			_, pattern, _ := strings.Cut(step, ":")
			command.op[i].arg = strings.ReplaceAll(pattern, "_", " ")
		} else {
			command.op[i].arg = strings.ReplaceAll(getOptArg(c, 1), "_", " ")
			command.op[i].size = getOptArg(c, 2)
		}
		if command.op[i].arg == "" {
			tracer().Debugf("%s", opNames[code])
		} else {
			tracer().Debugf("%s: '%s'", opNames[code], command.op[i].arg)
		}
	}
	return &command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:    quitOp,
	HELP:    helpOp,
	FONT:    fontOp,
	OPEN:    openOp,
	CHAR:    charOp,
	INFO:    infoOp,
	VALID:   validOp,
	LIST:    listOp,
	CHARSET: charsetOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Font Loading -----------------------------------------------------

var errNoFont = errors.New("no font loaded")

func fontOp(intp *Intp, op *Op) (error, bool) {
	size := intp.size
	if op.size != "" {
		s, err := strconv.Atoi(op.size)
		if err != nil {
			return fmt.Errorf("font size not numeric: %v", op.size), false
		}
		size = s
	}
	return intp.createFont(op.arg, size), false
}

func openOp(intp *Intp, op *Op) (error, bool) {
	if op.arg == "" {
		return errors.New("open needs a font pattern"), false
	}
	f, err := intp.provider.OpenName(context.Background(), op.arg)
	if err != nil {
		return err, false
	}
	intp.setFont(f)
	return nil, false
}

// createFont requests a font the way the engine does.
func (intp *Intp) createFont(name string, size int) error {
	f, err := intp.provider.CreatePlatformFont(name, size, intp.charset)
	if err != nil {
		return err
	}
	intp.size = size
	intp.setFont(f)
	return nil
}

func (intp *Intp) setFont(f *platfont.UnixFont) {
	if intp.font != nil {
		intp.font.Close()
	}
	intp.font = f
	tracer().Infof("font is %s", f.Name())
}

func charsetOp(intp *Intp, op *Op) (error, bool) {
	if op.arg == "" {
		pterm.Printf("charset is %s\n", intp.charset)
		return nil, false
	}
	cs, err := charset.Parse(op.arg)
	if err != nil {
		return err, false
	}
	intp.charset = cs
	pterm.Printf("charset for new fonts is %s\n", cs)
	return nil, false
}

func (intp *Intp) checkFont() error {
	if intp.font == nil {
		return errNoFont
	}
	return nil
}

// ----------------------------------------------------------------------

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

// charArg decodes a character argument: a literal character, "space",
// or a code point in the form U+00E9.
func charArg(arg string) (string, error) {
	switch {
	case arg == "":
		return "", errors.New("missing character")
	case strings.EqualFold(arg, "space"):
		return " ", nil
	case len(arg) > 2 && strings.EqualFold(arg[:2], "U+"):
		n, err := strconv.ParseUint(arg[2:], 16, 32)
		if err != nil {
			return "", fmt.Errorf("malformed code point: %v", arg)
		}
		return string(rune(n)), nil
	}
	return arg, nil
}
