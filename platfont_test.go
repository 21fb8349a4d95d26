package platfont

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/platfont/charset"
	"github.com/npillmayer/platfont/raster"
	"github.com/npillmayer/platfont/xftname"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type ProviderTestEnviron struct {
	suite.Suite
	provider *Provider
}

// listen for 'go test' command --> run test methods
func TestProviderFunctions(t *testing.T) {
	suite.Run(t, new(ProviderTestEnviron))
}

// run once, before test suite methods
func (env *ProviderTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	conf := testconfig.Conf{
		KeySystemFonts: false,
		KeyDisplay:     ":0",
	}
	var err error
	env.provider, err = NewProvider(conf)
	env.Require().NoError(err)
	for _, f := range []struct {
		id     string
		data   []byte
		family string
	}{
		{"goregular", goregular.TTF, "Arial"},
		{"gobold", gobold.TTF, "Arial"},
		{"goitalic", goitalic.TTF, "Arial"},
		{"gobolditalic", gobolditalic.TTF, "Arial"},
		{"gomono", gomono.TTF, "Lucida Console"},
	} {
		env.Require().NoError(env.provider.AddFont(f.data, f.id, f.family))
	}
}

func (env *ProviderTestEnviron) TestCreateMatches() {
	teardown := gotestingadapter.QuickConfig(env.T(), "platfont", "platfont.locate")
	defer teardown()
	//
	for _, c := range []struct {
		name string
		file string
	}{
		{"Arial", "goregular"},
		{"Arial Bold", "gobold"},
		{"Arial Italic", "goitalic"},
		{"Arial Bold Italic", "gobolditalic"},
		{"", "goregular"},
		{"Lucida Console", "gomono"},
	} {
		f, err := env.provider.CreatePlatformFont(c.name, 14, charset.ANSI)
		env.Require().NoError(err, c.name)
		env.Equal(c.file, f.Pattern().File, c.name)
		env.Equal(11.0, f.Pattern().Size, c.name)
		env.Equal(76.0, f.Pattern().DPI, c.name)
		env.NotNil(f.Font(), c.name)
	}
}

func (env *ProviderTestEnviron) TestCreateMetrics() {
	teardown := gotestingadapter.QuickConfig(env.T(), "platfont")
	defer teardown()
	//
	f, err := env.provider.CreatePlatformFont("Arial", 14, charset.Russian)
	env.Require().NoError(err)
	env.Equal(charset.Russian, f.Charset())
	env.Equal("Go-11:weight=medium:slant=roman:dpi=76:file=goregular", f.Name())
	//
	otf, err := opentype.Parse(goregular.TTF)
	env.Require().NoError(err)
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{Size: 11, DPI: 76, Hinting: font.HintingFull})
	env.Require().NoError(err)
	lm := raster.MetricsOf(face)
	env.Equal(lm.Ascent, f.Baseline())
	env.Equal(lm.Height, f.Height())
	env.Greater(f.Height(), f.Baseline())
}

func (env *ProviderTestEnviron) TestCreateFallback() {
	teardown := gotestingadapter.QuickConfig(env.T(), "platfont", "platfont.locate")
	defer teardown()
	//
	f, err := env.provider.CreatePlatformFont("Courier", 12, charset.ANSI)
	env.Require().NoError(err)
	env.NotNil(f.Font(), "expected a substitute among the registered fonts")
	env.NotEmpty(f.Pattern().File)
	env.Equal(9.0, f.Pattern().Size)
}

func (env *ProviderTestEnviron) TestCharInfo() {
	teardown := gotestingadapter.QuickConfig(env.T(), "platfont", "platfont.raster")
	defer teardown()
	//
	f, err := env.provider.CreatePlatformFont("Arial", 24, charset.ANSI)
	env.Require().NoError(err)
	info, err := f.CharInfo('A')
	env.Require().NoError(err)
	env.Equal(0, info.BitmapIndex)
	env.Equal(0, info.XOrigin)
	env.Equal(f.Baseline(), info.YOrigin)
	env.Equal(f.Height(), info.Height)
	env.Greater(info.Width, 0)
	env.Equal(info.Width, info.XIncrement)
	env.Len(info.BitmapData, info.Width*info.Height)
	inked := false
	for _, p := range info.BitmapData {
		inked = inked || p != 0
	}
	env.True(inked, "expected 'A' to leave ink")
	//
	info, err = f.CharInfo(' ')
	env.Require().NoError(err)
	env.Greater(info.XIncrement, 0)
	for _, p := range info.BitmapData {
		env.Equal(uint8(0), p)
	}
	//
	utf, err := f.CharInfoUTF8("Ab")
	env.Require().NoError(err)
	direct, err := f.CharInfo('A')
	env.Require().NoError(err)
	env.Equal(direct, utf)
	// every call gets a buffer of its own
	if len(direct.BitmapData) > 0 {
		direct.BitmapData[0] = 42
		env.NotEqual(direct.BitmapData[0], utf.BitmapData[0])
	}
	//
	_, err = f.CharInfoUTF8("😀")
	env.NoError(err)
	//
	empty, err := f.CharInfoUTF8("")
	env.Require().NoError(err)
	null, err := f.CharInfo(0)
	env.Require().NoError(err)
	env.Equal(null, empty)
}

func (env *ProviderTestEnviron) TestValidChars() {
	f, err := env.provider.CreatePlatformFont("Arial", 12, charset.ANSI)
	env.Require().NoError(err)
	for ch, valid := range map[rune]bool{
		0: false, 0x1f: false, 0x20: true, 'A': true, 0xe9: true, 0x100: true, 0x101: false, 'Ж': false,
	} {
		env.Equal(valid, f.IsValidChar(ch), "%#U", ch)
	}
	for s, valid := range map[string]bool{
		"": false, "A": true, "Ā": true, "é and more": true, "\x1f": false, "😀": false, "\xff": false,
	} {
		env.Equal(valid, f.IsValidCharUTF8(s), "%q", s)
	}
}

func (env *ProviderTestEnviron) TestCloseAndReopen() {
	teardown := gotestingadapter.QuickConfig(env.T(), "platfont")
	defer teardown()
	//
	f, err := env.provider.CreatePlatformFont("Arial Bold", 16, charset.ANSI)
	env.Require().NoError(err)
	before, err := f.CharInfo('g')
	env.Require().NoError(err)
	env.NoError(f.Close())
	env.NoError(f.Close(), "closing twice is harmless")
	after, err := f.CharInfo('g')
	env.Require().NoError(err)
	env.Equal(before, after)
	env.Equal("gobold", f.Font().Filepath)
}

func (env *ProviderTestEnviron) TestConcurrentUse() {
	f, err := env.provider.CreatePlatformFont("Arial Italic", 14, charset.ANSI)
	env.Require().NoError(err)
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if err := f.Close(); err != nil {
					errs <- err
					return
				}
				if _, err := f.CharInfo('A'); err != nil {
					errs <- err
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if sf := f.Font(); sf == nil || sf.Filepath != "goitalic" {
					errs <- fmt.Errorf("unexpected font %v", sf)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		env.NoError(err)
	}
}

func (env *ProviderTestEnviron) TestReopenWithCharFallback() {
	teardown := gotestingadapter.QuickConfig(env.T(), "platfont")
	defer teardown()
	//
	f, err := env.provider.CreatePlatformFont("Arial", 16, charset.ANSI)
	env.Require().NoError(err)
	f.pattern.File = "/no/such/font.ttf"
	env.NoError(f.Close())
	info, err := f.CharInfo('W')
	env.Require().NoError(err)
	env.Equal("gomono", f.Font().Filepath, "expected the char fallback font")
	env.Greater(info.Width, 0)
	env.Len(info.BitmapData, info.Width*info.Height)
}

func (env *ProviderTestEnviron) TestOpenName() {
	teardown := gotestingadapter.QuickConfig(env.T(), "platfont", "platfont.locate")
	defer teardown()
	//
	ctx := context.Background()
	f, err := env.provider.OpenName(ctx, "arial-12:bold")
	env.Require().NoError(err)
	env.Equal("gobold", f.Pattern().File)
	env.Equal(xftname.DefaultDPI, f.Pattern().DPI)
	//
	g, err := env.provider.OpenName(ctx, f.Name())
	env.Require().NoError(err)
	env.Equal(f.Name(), g.Name())
	//
	_, err = env.provider.OpenName(ctx, "courier-12")
	env.ErrorIs(err, ErrCannotLoadFont)
	_, err = env.provider.OpenName(ctx, "arial-")
	env.ErrorIs(err, xftname.ErrMalformedPattern)
}

func (env *ProviderTestEnviron) TestFamilies() {
	families := env.provider.Families(context.Background())
	env.Equal([]string{"arial", "lucidaconsole"}, families)
}

func (env *ProviderTestEnviron) TestCreateErrors() {
	teardown := gotestingadapter.QuickConfig(env.T(), "platfont")
	defer teardown()
	//
	_, err := env.provider.CreatePlatformFont("Arial", 12, charset.Charset(99))
	env.ErrorIs(err, charset.ErrUnknownCharset)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = env.provider.CreatePlatformFontWithContext(ctx, "Arial", 12, charset.ANSI)
	env.ErrorIs(err, context.Canceled)
}

// --- Without suite ---------------------------------------------------------

func TestBuiltinFace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "platfont")
	defer teardown()
	//
	p, err := NewProvider(testconfig.Conf{KeySystemFonts: false})
	require.NoError(t, err)
	f, err := p.CreatePlatformFont("Arial", 14, charset.ANSI)
	require.NoError(t, err)
	assert.Nil(t, f.Font())
	assert.True(t, strings.HasPrefix(f.Name(), "fixed-11:"), f.Name())
	assert.Equal(t, 11, f.Baseline())
	assert.Equal(t, 13, f.Height())
	info, err := f.CharInfo('A')
	require.NoError(t, err)
	assert.Equal(t, 7, info.Width)
	assert.Equal(t, 13, info.Height)
	assert.Len(t, info.BitmapData, 7*13)
	//
	require.NoError(t, f.Close())
	again, err := f.CharInfo('A')
	require.NoError(t, err)
	assert.Equal(t, info, again)
}

func TestNoFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "platfont")
	defer teardown()
	//
	p, err := NewProvider(testconfig.Conf{
		KeySystemFonts: false,
		KeyBuiltin:     false,
	})
	require.NoError(t, err)
	_, err = p.CreatePlatformFont("Arial", 14, charset.ANSI)
	assert.ErrorIs(t, err, ErrCannotLoadFont)
	_, err = p.OpenName(context.Background(), "fixed-10")
	assert.ErrorIs(t, err, ErrCannotLoadFont)
}

func TestCharFallbackFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "platfont")
	defer teardown()
	//
	p, err := NewProvider(testconfig.Conf{KeySystemFonts: false})
	require.NoError(t, err)
	require.NoError(t, p.AddFont(goregular.TTF, "goregular", "arial"))
	f, err := p.CreatePlatformFont("Arial", 14, charset.ANSI)
	require.NoError(t, err)
	// re-opening and the char fallback both have nothing to work with;
	// the built-in face does not stand in for the char fallback font
	f.pattern.File = "/no/such/font.ttf"
	f.provider, err = NewProvider(testconfig.Conf{
		KeySystemFonts: false,
	})
	require.NoError(t, err)
	require.NoError(t, f.Close())
	_, err = f.CharInfo('A')
	assert.ErrorIs(t, err, ErrCannotLoadFont)
}

func TestNoDisplay(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "platfont")
	defer teardown()
	//
	p, err := NewProvider(testconfig.Conf{
		KeySystemFonts:     false,
		KeyDisplay:         "",
		KeyDisplayRequired: true,
	})
	require.NoError(t, err)
	_, err = p.CreatePlatformFont("Arial", 14, charset.ANSI)
	assert.ErrorIs(t, err, ErrNoDisplay)
	//
	p, err = NewProvider(testconfig.Conf{
		KeySystemFonts:     false,
		KeyDisplay:         ":0",
		KeyDisplayRequired: true,
	})
	require.NoError(t, err)
	_, err = p.CreatePlatformFont("Arial", 14, charset.ANSI)
	assert.NoError(t, err)
}

func TestInvalidConfiguration(t *testing.T) {
	_, err := NewProvider(testconfig.Conf{KeyDPI: 0})
	assert.Error(t, err)
}

func TestDefaultProvider(t *testing.T) {
	if testing.Short() {
		t.Skip("indexes the system's fonts")
	}
	teardown := gotestingadapter.QuickConfig(t, "platfont")
	defer teardown()
	//
	t.Setenv("DISPLAY", ":0")
	f, err := CreatePlatformFont("Arial", 14, charset.ANSI)
	require.NoError(t, err)
	assert.Greater(t, f.Height(), 0)
	t.Logf("default provider matched %s", f.Name())
	p, err := Default()
	require.NoError(t, err)
	q, err := Default()
	require.NoError(t, err)
	assert.Same(t, p, q)
}
