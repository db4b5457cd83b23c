package otquery

// MaxPTableInfo is a typed query view over OpenType table 'maxp'.
// Only the version-independent part of the table is decoded.
type MaxPTableInfo struct {
	VersionFixed uint32
	NumGlyphs    uint16
}

const maxpMinSize = 6

// MaxPInfo decodes table 'maxp'.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func MaxPInfo(otf *Font) (MaxPTableInfo, bool) {
	var info MaxPTableInfo
	b := otf.Table(T("maxp"))
	if len(b) < maxpMinSize {
		return info, false
	}
	info.VersionFixed = u32(b[0:4])
	info.NumGlyphs = u16(b[4:6])
	return info, true
}
