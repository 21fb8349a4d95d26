/*
Package charset enumerates the character sets a game engine may request fonts for.

Charsets are identified by small integers, in the order the engine defines
them. Each charset (except Symbol) is backed by a legacy encoding from
golang.org/x/text, which allows to check if a rune is representable and to
decode legacy text.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package charset

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Charset is an engine character set identifier.
type Charset uint32

// Charsets in engine order. ANSI is the default.
const (
	ANSI Charset = iota
	Symbol
	ShiftJIS
	Hangeul
	Hangul
	GB2312
	ChineseBig5
	OEM
	Johab
	Hebrew
	Arabic
	Greek
	Turkish
	Vietnamese
	Thai
	EastEurope
	Russian
	Mac
	Baltic
	numCharsets
)

// ErrUnknownCharset is returned for charset names or ids not known.
var ErrUnknownCharset = errors.New("unknown charset")

var names = [numCharsets]string{
	"ansi", "symbol", "shiftjis", "hangeul", "hangul", "gb2312", "chinesebig5",
	"oem", "johab", "hebrew", "arabic", "greek", "turkish", "vietnamese", "thai",
	"easteurope", "russian", "mac", "baltic",
}

// Johab has no encoding in x/text; EUC-KR covers the same repertoire
// for the Hangul syllables fonts care about.
var encodings = [numCharsets]encoding.Encoding{
	ANSI:        charmap.Windows1252,
	Symbol:      nil,
	ShiftJIS:    japanese.ShiftJIS,
	Hangeul:     korean.EUCKR,
	Hangul:      korean.EUCKR,
	GB2312:      simplifiedchinese.GBK,
	ChineseBig5: traditionalchinese.Big5,
	OEM:         charmap.CodePage437,
	Johab:       korean.EUCKR,
	Hebrew:      charmap.Windows1255,
	Arabic:      charmap.Windows1256,
	Greek:       charmap.Windows1253,
	Turkish:     charmap.Windows1254,
	Vietnamese:  charmap.Windows1258,
	Thai:        charmap.Windows874,
	EastEurope:  charmap.Windows1250,
	Russian:     charmap.Windows1251,
	Mac:         charmap.Macintosh,
	Baltic:      charmap.Windows1257,
}

// Valid is true for charset ids known to the engine.
func (cs Charset) Valid() bool {
	return cs < numCharsets
}

func (cs Charset) String() string {
	if !cs.Valid() {
		return fmt.Sprintf("charset(%d)", uint32(cs))
	}
	return names[cs]
}

// Parse finds a charset by its engine name, ignoring case.
func Parse(name string) (Charset, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, cname := range names {
		if cname == n {
			return Charset(i), nil
		}
	}
	return ANSI, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
}

// Encoding returns the legacy encoding for cs, or nil if there is none.
func (cs Charset) Encoding() encoding.Encoding {
	if !cs.Valid() {
		return nil
	}
	return encodings[cs]
}

// Covers reports whether r may be represented in charset cs.
// Charsets without an encoding cover every rune.
func (cs Charset) Covers(r rune) bool {
	enc := cs.Encoding()
	if enc == nil {
		return true
	}
	// the strict encoder fails instead of substituting
	_, err := enc.NewEncoder().String(string(r))
	return err == nil
}

// Decode converts text in charset cs to UTF-8.
// For charsets without an encoding, the input is returned unchanged.
func (cs Charset) Decode(b []byte) (string, error) {
	if !cs.Valid() {
		return "", fmt.Errorf("%w: %d", ErrUnknownCharset, uint32(cs))
	}
	enc := cs.Encoding()
	if enc == nil {
		return string(b), nil
	}
	return enc.NewDecoder().String(string(b))
}
