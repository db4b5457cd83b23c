package otquery

import (
	"fmt"
	"iter"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const (
	nameHeaderSize = 6
	nameRecordSize = 12
)

// nameKey identifies a NameRecord entry in OpenType table 'name'.
// The key follows the OpenType NameRecord fields directly.
type nameKey struct {
	Platform PlatformID
	Encoding EncodingID
	Language uint16
	Name     sfnt.NameID // see https://pkg.go.dev/golang.org/x/image/font/sfnt#NameID
}

type PlatformID uint16

const (
	PlatformIDUnicode   PlatformID = 0
	PlatformIDMacintosh PlatformID = 1
	PlatformIDWindows   PlatformID = 3
)

type EncodingID uint16

const (
	EncodingIDMacRoman      EncodingID = 0
	EncodingIDWindowsSymbol EncodingID = 0 // for now we will not support symbol fonts
	EncodingIDWindowsBMP    EncodingID = 1
	EncodingIDUnicodeBMP    EncodingID = 3
)

const languageMacEnglish = 0

// NamesRange yields decoded `(nameID, value)` pairs from a font's OpenType
// `name` table.
//
// Unicode BMP, Windows BMP and English Mac Roman records are yielded,
// in table order. Malformed or out-of-bounds records are skipped.
func NamesRange(otf *Font) iter.Seq2[sfnt.NameID, string] {
	return func(yield func(sfnt.NameID, string) bool) {
		for key, value := range nameRecords(otf) {
			if !yield(key.Name, value) {
				return
			}
		}
	}
}

func nameRecords(otf *Font) iter.Seq2[nameKey, string] {
	names := checkNameTableSafe(otf)
	return func(yield func(nameKey, string) bool) {
		if names == nil {
			return
		}
		count := int(u16(names[2:4])) // number of name records
		stringStorageOffset := int(u16(names[4:6]))
		for i := range count {
			recordSlice := names[nameHeaderSize+i*nameRecordSize : nameHeaderSize+(i+1)*nameRecordSize]
			key := nameKey{
				Platform: PlatformID(u16(recordSlice[0:2])),
				Encoding: EncodingID(u16(recordSlice[2:4])),
				Language: u16(recordSlice[4:6]),
				Name:     sfnt.NameID(u16(recordSlice[6:8])),
			}
			decode := decoderFor(key)
			if decode == nil {
				continue
			}
			strLen := int(u16(recordSlice[8:10]))
			recordOffset := int(u16(recordSlice[10:12]))
			start := stringStorageOffset + recordOffset
			end := start + strLen
			if end > len(names) {
				continue
			}
			stringValue, err := decode(names[start:end])
			if err != nil || stringValue == "" {
				continue
			}
			if !yield(key, stringValue) {
				return
			}
		}
	}
}

// checkNameTableSafe checks if the name table is safe to use, i.e. no out-of-bounds access,
// no empty tables, etc.
func checkNameTableSafe(otf *Font) []byte {
	b := otf.Table(T("name"))
	if b == nil {
		tracer().Debugf("no name table found in font")
		return nil
	}
	if len(b) < nameHeaderSize {
		tracer().Debugf("name table too short: %d", len(b))
		return nil
	}
	count := int(u16(b[2:4]))
	strOff := int(u16(b[4:6]))
	if strOff > len(b) {
		tracer().Debugf("name table invalid string offset: %d", strOff)
		return nil
	}
	if nameHeaderSize+count*nameRecordSize > len(b) {
		tracer().Debugf("name table record section out of bounds: count=%d", count)
		return nil
	}
	return b
}

func decoderFor(key nameKey) func([]byte) (string, error) {
	switch {
	case key.Platform == PlatformIDUnicode && key.Encoding == EncodingIDUnicodeBMP:
		return decodeNameUTF16
	case key.Platform == PlatformIDWindows && key.Encoding == EncodingIDWindowsBMP:
		return decodeNameUTF16
	case key.Platform == PlatformIDMacintosh && key.Encoding == EncodingIDMacRoman &&
		key.Language == languageMacEnglish:
		return decodeNameMacRoman
	}
	return nil
}

func decodeNameUTF16(str []byte) (string, error) {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	s, err := enc.NewDecoder().Bytes(str)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16 error: %v", err)
	}
	return string(s), nil
}

func decodeNameMacRoman(str []byte) (string, error) {
	s, err := charmap.Macintosh.NewDecoder().Bytes(str)
	if err != nil {
		return "", fmt.Errorf("decoding Mac Roman error: %v", err)
	}
	return string(s), nil
}

// NameInfo collects well-known names of a font into a map with keys
// "family", "subfamily", "fullname", "version", "postscript",
// "typographic-family" and "typographic-subfamily".
// Windows/Unicode records take precedence over Macintosh records.
func NameInfo(otf *Font) map[string]string {
	keys := map[sfnt.NameID]string{
		sfnt.NameIDFamily:               "family",
		sfnt.NameIDSubfamily:            "subfamily",
		sfnt.NameIDFull:                 "fullname",
		sfnt.NameIDVersion:              "version",
		sfnt.NameIDPostScript:           "postscript",
		sfnt.NameIDTypographicFamily:    "typographic-family",
		sfnt.NameIDTypographicSubfamily: "typographic-subfamily",
	}
	info := make(map[string]string)
	for key, value := range nameRecords(otf) {
		k, ok := keys[key.Name]
		if !ok {
			continue
		}
		if _, seen := info[k]; seen && key.Platform == PlatformIDMacintosh {
			continue
		}
		info[k] = value
	}
	return info
}

// FamilyName returns the family name of a font. The legacy family name
// (name ID 1) is preferred, as it is unique per style-linked group of four
// fonts; the typographic family name serves as fallback.
func FamilyName(otf *Font) string {
	info := NameInfo(otf)
	if f := info["family"]; f != "" {
		return f
	}
	return info["typographic-family"]
}

// FullFontName returns the full font name, e.g. "Arial Bold Italic".
// If the font has no full name, it is assembled from family and subfamily.
func FullFontName(otf *Font) string {
	info := NameInfo(otf)
	if f := info["fullname"]; f != "" {
		return f
	}
	if sub := info["subfamily"]; sub != "" && info["family"] != "" {
		return info["family"] + " " + sub
	}
	return info["family"]
}
