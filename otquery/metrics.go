package otquery

import (
	"golang.org/x/image/font/sfnt"
)

const hheaMinSize = 12

// FontMetrics retrieves selected metrics of a font.
//
// Ascent, descent and line gap are taken from table 'hhea'. If 'hhea' has
// no vertical metrics, or if the font requests typographic metrics, the
// values of table 'OS/2' are used.
func FontMetrics(otf *Font) FontMetricsInfo {
	metrics := FontMetricsInfo{}
	if b := otf.Table(T("hhea")); len(b) >= hheaMinSize {
		metrics.Ascent = sfnt.Units(i16(b[4:6]))
		metrics.Descent = sfnt.Units(i16(b[6:8]))
		metrics.LineGap = sfnt.Units(i16(b[8:10]))
		metrics.MaxAdvance = sfnt.Units(u16(b[10:12]))
	}
	if os2, ok := OS2Info(otf); ok {
		useTypo := os2.FsSelection&FsSelectionUseTypoMetrics != 0
		if useTypo || (metrics.Ascent == 0 && metrics.Descent == 0) {
			tracer().Debugf("override of vertical metrics by OS/2: %d/%d -> %d/%d",
				metrics.Ascent, metrics.Descent, os2.TypoAscender, os2.TypoDescender)
			metrics.Ascent = sfnt.Units(os2.TypoAscender)
			metrics.Descent = sfnt.Units(os2.TypoDescender)
			metrics.LineGap = sfnt.Units(os2.TypoLineGap)
		}
	}
	if head, ok := HeadInfo(otf); ok {
		metrics.UnitsPerEm = sfnt.Units(head.UnitsPerEm)
	}
	return metrics
}
