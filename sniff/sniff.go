/*
Package sniff extracts style information and family names from raw
TrueType/OpenType font binaries without fully parsing them.

Style detection looks for the magic number of table 'head' (0x5F0F3CF5)
anywhere in the binary and reads the 'macStyle' field relative to it. This
works for fonts which have not been parsed at all, e.g. during a
file system scan, and is considerably cheaper than decoding the
table directory.

Family names are not read from the binary by this package. They are
requested from a NameReader, usually the platform font loader, which
registers the bytes as a temporary font and reports the family it
sees.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sniff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// MagicNumber is the value of field 'magicNumber' of OpenType table 'head'.
const MagicNumber uint32 = 0x5F0F3CF5

// macStyleOffset is the distance of field 'macStyle' from the end of the
// magic number within table 'head'.
const macStyleOffset = 28

// magic holds MagicNumber in font byte order, which is always big-endian.
var magic = binary.BigEndian.AppendUint32(nil, MagicNumber)

// ErrFormat is the error class of all sniffing failures. Use errors.Is to test for it.
var ErrFormat = errors.New("font format error")

// FormatError is returned if a binary does not look like a font.
type FormatError struct {
	Offset int    // position where decoding failed, -1 if unknown
	Issue  string // human readable description
}

func (e *FormatError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("font format error at offset %d: %s", e.Offset, e.Issue)
	}
	return "font format error: " + e.Issue
}

// Is makes FormatError match ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// MagicIndex returns the position of the first occurrence of the 'head'
// magic number in data, or -1.
func MagicIndex(data []byte) int {
	return bytes.Index(data, magic)
}

// FontStyle returns the style bits of a font binary, as recorded in
// field 'macStyle' of table 'head'.
//
// If the magic number occurs more than once, the first occurrence is used.
// FontStyle fails with an error matching ErrFormat if the magic number
// cannot be found or the style field would lie outside of data.
func FontStyle(data []byte) (Style, error) {
	inx := MagicIndex(data)
	if inx < 0 {
		return StyleRegular, &FormatError{Offset: -1, Issue: "magic number of table 'head' not found"}
	}
	pos := inx + len(magic) + macStyleOffset
	if pos+2 > len(data) {
		return StyleRegular, &FormatError{Offset: pos, Issue: "table 'head' truncated"}
	}
	bits := binary.BigEndian.Uint16(data[pos : pos+2])
	style := Style(bits) & (StyleBold | StyleItalic)
	tracer().Debugf("sniffed magic number at %d, macStyle = %#04x", inx, bits)
	return style, nil
}

// NameReader is implemented by font loaders able to report the family name
// of a font binary.
type NameReader interface {
	FamilyName(data []byte) (string, error)
}

// FamilyName asks r for the family name of a font binary.
func FamilyName(data []byte, r NameReader) (string, error) {
	if r == nil {
		return "", errors.New("no name reader for font family lookup")
	}
	name, err := r.FamilyName(data)
	if err != nil {
		return "", fmt.Errorf("cannot read font family name: %w", err)
	}
	if name == "" {
		return "", &FormatError{Offset: -1, Issue: "font reports empty family name"}
	}
	return name, nil
}
