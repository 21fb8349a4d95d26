package main

import (
	"strings"
	"testing"

	"github.com/npillmayer/platfont"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	intp := &Intp{}
	cmd, err := intp.parseCommand("font:Arial_Bold:14 char:g open:Go_Mono-10:weight=bold")
	require.NoError(t, err)
	assert.Equal(t, 3, cmd.count)
	assert.Equal(t, Op{code: FONT, arg: "Arial Bold", size: "14"}, cmd.op[0])
	assert.Equal(t, Op{code: CHAR, arg: "g"}, cmd.op[1])
	assert.Equal(t, Op{code: OPEN, arg: "Go Mono-10:weight=bold"}, cmd.op[2])
	assert.Equal(t, NOOP, cmd.op[3].code)
	//
	cmd, err = intp.parseCommand("frobnicate")
	require.NoError(t, err)
	assert.Equal(t, HELP, cmd.op[0].code)
	cmd, err = intp.parseCommand("QUIT info")
	require.NoError(t, err)
	assert.Equal(t, QUIT, cmd.op[0].code)
	assert.Equal(t, NOOP, cmd.op[1].code)
	_, err = intp.parseCommand(strings.Repeat("info ", 33))
	assert.Error(t, err)
}

func TestCharArg(t *testing.T) {
	for arg, s := range map[string]string{
		"g": "g", "space": " ", "SPACE": " ", "U+00E9": "é", "u+41": "A", "é": "é",
	} {
		c, err := charArg(arg)
		require.NoError(t, err, arg)
		assert.Equal(t, s, c, arg)
	}
	_, err := charArg("")
	assert.Error(t, err)
	_, err = charArg("U+XYZ")
	assert.Error(t, err)
}

func TestRenderBitmap(t *testing.T) {
	info := platfont.CharInfo{
		Width:      2,
		Height:     2,
		YOrigin:    1,
		XIncrement: 2,
		BitmapData: []uint8{0, 255, 128, 0},
	}
	assert.Equal(t, "+--+\n| @| baseline\n|= |\n+--+\n", renderBitmap(info))
	assert.Equal(t, "(no pixels)", renderBitmap(platfont.CharInfo{Width: 3}))
}
