package otquery

import "golang.org/x/image/font/sfnt"

// FontMetricsInfo contains selected metric information for a font.
type FontMetricsInfo struct {
	UnitsPerEm      sfnt.Units // ad-hoc units per em
	Ascent, Descent sfnt.Units // ascender and descender
	LineGap         sfnt.Units // typographic line gap
	MaxAdvance      sfnt.Units // maximum advance width value in 'hmtx' table
}

// LineSpacing returns the distance between two baselines in font units.
func (m FontMetricsInfo) LineSpacing() sfnt.Units {
	return m.Ascent - m.Descent + m.LineGap
}

// Scaled converts a value in font units to points for a given font size in points.
func (m FontMetricsInfo) Scaled(u sfnt.Units, size float64) float64 {
	if m.UnitsPerEm == 0 {
		return 0
	}
	return float64(u) * size / float64(m.UnitsPerEm)
}
