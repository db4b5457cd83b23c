package otquery

// OS2TableInfo is a typed query view over OpenType table 'OS/2'.
type OS2TableInfo struct {
	Version       uint16
	WeightClass   uint16
	WidthClass    uint16
	FsSelection   uint16
	TypoAscender  int16
	TypoDescender int16
	TypoLineGap   int16
	WinAscent     uint16
	WinDescent    uint16
}

// Bits of field 'fsSelection'.
const (
	FsSelectionItalic         = 1 << 0
	FsSelectionBold           = 1 << 5
	FsSelectionRegular        = 1 << 6
	FsSelectionUseTypoMetrics = 1 << 7
	FsSelectionOblique        = 1 << 9
)

const os2MinSize = 78

// OS2Info decodes table 'OS/2'.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func OS2Info(otf *Font) (OS2TableInfo, bool) {
	var info OS2TableInfo
	b := otf.Table(T("OS/2"))
	if len(b) < os2MinSize {
		return info, false
	}
	info.Version = u16(b[0:2])
	info.WeightClass = u16(b[4:6])
	info.WidthClass = u16(b[6:8])
	info.FsSelection = u16(b[62:64])
	info.TypoAscender = i16(b[68:70])
	info.TypoDescender = i16(b[70:72])
	info.TypoLineGap = i16(b[72:74])
	info.WinAscent = u16(b[74:76])
	info.WinDescent = u16(b[76:78])
	return info, true
}

func (os2 OS2TableInfo) IsBold() bool {
	return os2.FsSelection&FsSelectionBold != 0
}

// IsItalic is true for italic and for oblique fonts.
func (os2 OS2TableInfo) IsItalic() bool {
	return os2.FsSelection&(FsSelectionItalic|FsSelectionOblique) != 0
}

// StyleFlags reports the bold and italic properties of a font. Table 'OS/2'
// is authoritative; fonts without it fall back to 'macStyle' in table 'head'.
func StyleFlags(otf *Font) (bold, italic bool) {
	if os2, ok := OS2Info(otf); ok {
		return os2.IsBold(), os2.IsItalic()
	}
	if head, ok := HeadInfo(otf); ok {
		return head.IsBold(), head.IsItalic()
	}
	return false, false
}
