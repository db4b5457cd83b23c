package sniff

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// headLike creates a buffer with `pad` junk bytes, the magic number, and a
// macStyle field carrying `bits` at the expected position.
func headLike(pad int, bits uint16) []byte {
	b := make([]byte, pad, pad+4+macStyleOffset+2+8)
	for i := range b {
		b[i] = 0xAA
	}
	b = binary.BigEndian.AppendUint32(b, MagicNumber)
	b = append(b, make([]byte, macStyleOffset)...)
	b = binary.BigEndian.AppendUint16(b, bits)
	return append(b, make([]byte, 8)...)
}

func TestFontStyleBits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	tests := []struct {
		bits   uint16
		bold   bool
		italic bool
	}{
		{0x0000, false, false},
		{0x0001, true, false},
		{0x0002, false, true},
		{0x0003, true, true},
		{0x00fc, false, false}, // other bits are ignored
		{0xff01, true, false},
		{0x8002, false, true},
	}
	for _, pad := range []int{0, 3, 12, 101} {
		for _, tt := range tests {
			style, err := FontStyle(headLike(pad, tt.bits))
			require.NoError(t, err)
			if style.IsBold() != tt.bold || style.IsItalic() != tt.italic {
				t.Errorf("bits %#04x at pad %d: expected bold=%v italic=%v, have %s",
					tt.bits, pad, tt.bold, tt.italic, style)
			}
		}
	}
}

func TestFontStyleFirstMagicWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	data := append(headLike(4, 0x0001), headLike(0, 0x0002)...)
	style, err := FontStyle(data)
	require.NoError(t, err)
	assert.Equal(t, StyleBold, style)
}

func TestFontStyleMissingMagic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	for _, data := range [][]byte{nil, {}, []byte("not a font at all"), {0x5F, 0x0F, 0x3C}} {
		_, err := FontStyle(data)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrFormat), "expected format error, have %v", err)
	}
}

func TestFontStyleTruncated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	data := headLike(0, 0x0001)
	data = data[:4+macStyleOffset+1]
	_, err := FontStyle(data)
	var ferr *FormatError
	require.True(t, errors.As(err, &ferr), "expected *FormatError, have %v", err)
	assert.Equal(t, 4+macStyleOffset, ferr.Offset)
}

func TestFontStyleGoFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	style, err := FontStyle(goregular.TTF)
	require.NoError(t, err)
	assert.Equal(t, StyleRegular, style)
	style, err = FontStyle(gobold.TTF)
	require.NoError(t, err)
	assert.True(t, style.IsBold(), "expected Go Bold to be sniffed as bold")
}

type fixedName string

func (n fixedName) FamilyName([]byte) (string, error) {
	return string(n), nil
}

func TestFamilyName(t *testing.T) {
	name, err := FamilyName(nil, fixedName("Go"))
	require.NoError(t, err)
	assert.Equal(t, "Go", name)
	_, err = FamilyName(nil, fixedName(""))
	assert.ErrorIs(t, err, ErrFormat)
	_, err = FamilyName(nil, nil)
	assert.Error(t, err)
}

func TestStyleCodes(t *testing.T) {
	for _, s := range []Style{StyleRegular, StyleBold, StyleItalic, StyleBoldItalic} {
		p, ok := ParseStyle(s.Code())
		if !ok || p != s {
			t.Errorf("expected code %q to parse to %s, have %s", s.Code(), s, p)
		}
		p, ok = ParseStyle(s.String())
		if !ok || p != s {
			t.Errorf("expected name %q to parse to %s, have %s", s.String(), s, p)
		}
	}
	assert.Equal(t, StyleBoldItalic, StyleFrom(true, true))
	assert.Equal(t, StyleRegular, StyleFrom(false, false))
}
