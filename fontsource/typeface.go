package fontsource

import (
	"errors"
	"strings"

	"github.com/npillmayer/fontres/sniff"
	"golang.org/x/text/cases"
)

// ErrInvalidArgument is returned for empty family names or font data.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrTypefaceBound is returned when a typeface key is already bound to a
// different font binary. The first binding is kept.
var ErrTypefaceBound = errors.New("typeface already bound to a different font")

// TypefaceKey derives the cache key of a typeface request. Family names are
// compared case-insensitively (Unicode case folding); the style is
// appended as a short code, e.g. "arial/bi".
func TypefaceKey(family string, bold, italic bool) string {
	return KeyFor(family, sniff.StyleFrom(bold, italic))
}

// KeyFor is TypefaceKey with style bits.
func KeyFor(family string, style sniff.Style) string {
	return FoldFamily(family) + "/" + style.Code()
}

// FoldFamily normalizes a family name for use in keys.
func FoldFamily(family string) string {
	return cases.Fold().String(strings.TrimSpace(family))
}

// styleSuffixes is ordered so that longer suffixes are tested first.
var styleSuffixes = []struct {
	suffix string
	style  sniff.Style
}{
	{"Bold Italic", sniff.StyleBoldItalic},
	{"Italic Bold", sniff.StyleBoldItalic},
	{"Regular", sniff.StyleRegular},
	{"Italic", sniff.StyleItalic},
	{"Bold", sniff.StyleBold},
}

// StripStyleSuffix removes a trailing style designation from a font name and
// returns the remaining family name and the style the suffix designates.
// Suffixes are matched case-insensitively and must be separated from the
// family by a space. If no suffix matches, name is returned unchanged and ok
// is false.
//
// This is a heuristic for fonts added without a font resolver. It
// misinterprets families whose names legitimately end in a style word, and
// it only knows English style names.
func StripStyleSuffix(name string) (family string, style sniff.Style, ok bool) {
	name = strings.TrimSpace(name)
	for _, s := range styleSuffixes {
		n := len(s.suffix)
		if len(name) <= n+1 {
			continue
		}
		tail := name[len(name)-n:]
		if name[len(name)-n-1] != ' ' || !strings.EqualFold(tail, s.suffix) {
			continue
		}
		family = strings.TrimSpace(name[:len(name)-n-1])
		if family == "" {
			continue
		}
		return family, s.style, true
	}
	return name, sniff.StyleRegular, false
}
