package fontload_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/platfont/fontload"
	"github.com/npillmayer/platfont/otquery"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// collection packs single fonts into a TTC, moving the table offsets of
// each font to where the font lands in the collection.
func collection(t *testing.T, fonts ...[]byte) []byte {
	t.Helper()
	align := func(n int) int { return (n + 3) &^ 3 }
	header := 12 + 4*len(fonts)
	out := make([]byte, header)
	copy(out[0:4], "ttcf")
	binary.BigEndian.PutUint32(out[4:8], 0x00010000)
	binary.BigEndian.PutUint32(out[8:12], uint32(len(fonts)))
	for i, data := range fonts {
		base := align(len(out))
		out = append(out, make([]byte, base-len(out))...)
		binary.BigEndian.PutUint32(out[12+4*i:], uint32(base))
		fnt := append([]byte(nil), data...)
		numTables := int(binary.BigEndian.Uint16(fnt[4:6]))
		for j := 0; j < numTables; j++ {
			rec := fnt[12+16*j:]
			offset := binary.BigEndian.Uint32(rec[8:12])
			binary.BigEndian.PutUint32(rec[8:12], offset+uint32(base))
		}
		out = append(out, fnt...)
	}
	return out
}

func TestParseOpenTypeFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "platfont.fontload")
	defer teardown()
	//
	f, err := fontload.ParseOpenTypeFont(goregular.TTF)
	require.NoError(t, err)
	assert.Equal(t, "Go Regular", f.Fontname)
	assert.Equal(t, 0, f.Index)
	assert.NotNil(t, f.SFNT)
	assert.NotNil(t, f.Loader)
	face, err := f.Face(12, 72, font.HintingNone)
	require.NoError(t, err)
	defer face.Close()
	assert.Greater(t, face.Metrics().Ascent.Ceil(), 0)
	//
	_, err = fontload.ParseOpenTypeFont([]byte("no font at all"))
	assert.Error(t, err)
	_, err = fontload.ParseCollectionFont(goregular.TTF, 1)
	assert.Error(t, err)
	_, err = (*fontload.ScalableFont)(nil).Face(12, 72, font.HintingNone)
	assert.Error(t, err)
}

func TestParseCollectionFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "platfont.fontload")
	defer teardown()
	//
	ttc := collection(t, goregular.TTF, gobold.TTF)
	bold, err := fontload.ParseOpenTypeFont(gobold.TTF)
	require.NoError(t, err)
	for index, c := range []struct {
		name string
		bold bool
	}{
		{"Go Regular", false},
		{"Go Bold", true},
	} {
		f, err := fontload.ParseCollectionFont(ttc, index)
		require.NoError(t, err, "index %d", index)
		assert.Equal(t, c.name, f.Fontname)
		assert.Equal(t, index, f.Index)
		head, ok := otquery.HeadInfo(f)
		require.True(t, ok, "index %d", index)
		assert.Equal(t, c.bold, head.IsBold(), "index %d", index)
		assert.Equal(t, "TrueType", otquery.FontType(f))
	}
	f, err := fontload.ParseCollectionFont(ttc, 1)
	require.NoError(t, err)
	assert.Equal(t, otquery.TableTags(bold), otquery.TableTags(f))
	assert.Equal(t, otquery.Table(bold, "name"), otquery.Table(f, "name"))
	//
	_, err = fontload.ParseCollectionFont(ttc, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "font index 2 out of range")
	_, err = fontload.ParseCollectionFont(ttc, -1)
	assert.Error(t, err)
}

func TestLoadCollectionFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "platfont.fontload")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "go.ttc")
	require.NoError(t, os.WriteFile(path, collection(t, goregular.TTF, gobold.TTF), 0o644))
	f, err := fontload.LoadCollectionFont(path, 1)
	require.NoError(t, err)
	assert.Equal(t, path, f.Filepath)
	assert.Equal(t, "Go Bold", f.Fontname)
	//
	_, err = fontload.LoadOpenTypeFont(filepath.Join(t.TempDir(), "missing.ttf"))
	assert.Error(t, err)
}

func TestFallbackFace(t *testing.T) {
	face := fontload.FallbackFace()
	m := face.Metrics()
	assert.Equal(t, 11, m.Ascent.Ceil())
	assert.Equal(t, 2, m.Descent.Ceil())
	adv, ok := face.GlyphAdvance('M')
	assert.True(t, ok)
	assert.Equal(t, 7, adv.Round())
}
