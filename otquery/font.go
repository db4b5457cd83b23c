/*
Package otquery answers queries about OpenType fonts by reading their tables
directly from the font binary.

Only the tables needed for font identification and selection are
interpreted: 'head', 'hhea', 'maxp', 'name' and 'OS/2'. All other tables are
available as raw bytes.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// Tag is an OpenType table tag.
type Tag uint32

// T creates a Tag from a string of up to 4 characters.
func T(s string) Tag {
	var b [4]byte
	copy(b[:], "    ")
	copy(b[:], s)
	return Tag(binary.BigEndian.Uint32(b[:]))
}

func (t Tag) String() string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(t))
	return string(b[:])
}

const (
	sfntVersionTrueType = 0x00010000
	sfntVersionApple    = 0x74727565 // 'true'
	sfntVersionCFF      = 0x4F54544F // 'OTTO'
	sfntVersionTTC      = 0x74746366 // 'ttcf'
)

const (
	sfntHeaderSize  = 12
	tableRecordSize = 16
)

// ErrCollection is returned for font collection files (*.ttc), which are
// not supported.
var ErrCollection = errors.New("font collections are not supported")

// Font is a light-weight view onto the tables of a font binary.
// It does not copy the binary, which must not change while the Font is in use.
type Font struct {
	Version uint32
	tables  map[Tag][]byte
}

// Parse reads the table directory of a font binary.
func Parse(data []byte) (*Font, error) {
	if len(data) < sfntHeaderSize {
		return nil, fmt.Errorf("font binary too short: %d bytes", len(data))
	}
	otf := &Font{
		Version: u32(data[0:4]),
	}
	switch otf.Version {
	case sfntVersionTrueType, sfntVersionApple, sfntVersionCFF:
	case sfntVersionTTC:
		return nil, ErrCollection
	default:
		return nil, fmt.Errorf("unknown font type %#08x", otf.Version)
	}
	count := int(u16(data[4:6]))
	if sfntHeaderSize+count*tableRecordSize > len(data) {
		return nil, fmt.Errorf("table directory out of bounds: %d tables", count)
	}
	otf.tables = make(map[Tag][]byte, count)
	for i := range count {
		rec := data[sfntHeaderSize+i*tableRecordSize:]
		tag := Tag(u32(rec[0:4]))
		off, size := int64(u32(rec[8:12])), int64(u32(rec[12:16]))
		if off+size > int64(len(data)) {
			tracer().Debugf("table %s out of bounds, skipping", tag)
			continue
		}
		otf.tables[tag] = data[off : off+size]
	}
	tracer().Debugf("font type %s with %d tables", FontType(otf), len(otf.tables))
	return otf, nil
}

// Table returns the bytes of table tag, or nil.
func (otf *Font) Table(tag Tag) []byte {
	if otf == nil {
		return nil
	}
	return otf.tables[tag]
}

// TableTags returns the tags of all tables present in the font.
func (otf *Font) TableTags() []Tag {
	tags := make([]Tag, 0, len(otf.tables))
	for tag := range otf.tables {
		tags = append(tags, tag)
	}
	return tags
}

// FontType returns "TrueType" or "OpenType" (for CFF outlines).
func FontType(otf *Font) string {
	if otf == nil {
		return ""
	}
	if otf.Version == sfntVersionCFF {
		return "OpenType"
	}
	return "TrueType"
}
