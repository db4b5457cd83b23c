package otquery

import (
	"encoding/binary"
)

// HeadTableInfo is a typed query view over OpenType table 'head'.
// Values are decoded directly from the raw table bytes.
type HeadTableInfo struct {
	FontRevision     uint32
	MagicNumber      uint32
	Flags            uint16
	UnitsPerEm       uint16
	XMin, YMin       int16
	XMax, YMax       int16
	MacStyle         uint16
	IndexToLocFormat int16
}

// Bits of field 'macStyle'.
const (
	MacStyleBold   = 1 << 0
	MacStyleItalic = 1 << 1
)

const headTableSize = 54

// HeadInfo decodes table 'head'.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func HeadInfo(otf *Font) (HeadTableInfo, bool) {
	var info HeadTableInfo
	b := otf.Table(T("head"))
	if len(b) < headTableSize {
		return info, false
	}
	info.FontRevision = binary.BigEndian.Uint32(b[4:8])
	info.MagicNumber = binary.BigEndian.Uint32(b[12:16])
	info.Flags = binary.BigEndian.Uint16(b[16:18])
	info.UnitsPerEm = binary.BigEndian.Uint16(b[18:20])
	info.XMin = int16(binary.BigEndian.Uint16(b[36:38]))
	info.YMin = int16(binary.BigEndian.Uint16(b[38:40]))
	info.XMax = int16(binary.BigEndian.Uint16(b[40:42]))
	info.YMax = int16(binary.BigEndian.Uint16(b[42:44]))
	info.MacStyle = binary.BigEndian.Uint16(b[44:46])
	info.IndexToLocFormat = int16(binary.BigEndian.Uint16(b[50:52]))
	return info, true
}

func (h HeadTableInfo) IsBold() bool {
	return h.MacStyle&MacStyleBold != 0
}

func (h HeadTableInfo) IsItalic() bool {
	return h.MacStyle&MacStyleItalic != 0
}
