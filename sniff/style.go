package sniff

// Style holds the raw style bits of a font, bit 0 for bold and bit 1 for italic.
// This is the layout of field 'macStyle' in table 'head'.
type Style uint8

const (
	StyleRegular Style = 0
	StyleBold    Style = 1 << 0
	StyleItalic  Style = 1 << 1

	StyleBoldItalic = StyleBold | StyleItalic
)

// StyleFrom creates style bits from flags.
func StyleFrom(bold, italic bool) Style {
	var s Style
	if bold {
		s |= StyleBold
	}
	if italic {
		s |= StyleItalic
	}
	return s
}

func (s Style) IsBold() bool {
	return s&StyleBold != 0
}

func (s Style) IsItalic() bool {
	return s&StyleItalic != 0
}

// Code returns a short code for s: "r", "b", "i" or "bi".
func (s Style) Code() string {
	switch s & StyleBoldItalic {
	case StyleBold:
		return "b"
	case StyleItalic:
		return "i"
	case StyleBoldItalic:
		return "bi"
	}
	return "r"
}

func (s Style) String() string {
	switch s & StyleBoldItalic {
	case StyleBold:
		return "bold"
	case StyleItalic:
		return "italic"
	case StyleBoldItalic:
		return "bold italic"
	}
	return "regular"
}

// ParseStyle decodes a style from a code or a name as produced by
// Code and String. Unknown input yields StyleRegular and false.
func ParseStyle(s string) (Style, bool) {
	switch s {
	case "r", "regular", "":
		return StyleRegular, true
	case "b", "bold":
		return StyleBold, true
	case "i", "italic":
		return StyleItalic, true
	case "bi", "ib", "bold italic", "italic bold", "bolditalic":
		return StyleBoldItalic, true
	}
	return StyleRegular, false
}
