package fontload

import (
	"errors"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// ScalableFont is a parsed scalable font with original bytes and SFNT view.
type ScalableFont struct {
	Fontname string // full font name
	Family   string
	Binary   []byte
	SFNT     *sfnt.Font
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	return ParseOpenTypeFont(bytez)
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
// The font binary is not copied.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	if f.Family, err = f.SFNT.Name(nil, sfnt.NameIDFamily); err != nil {
		if !errors.Is(err, sfnt.ErrNotFound) {
			return nil, err
		}
		f.Family, _ = f.SFNT.Name(nil, sfnt.NameIDTypographicFamily)
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err != nil {
		f.Fontname = f.Family
	}
	tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	return f, nil
}

// FallbackFontName is the name of the packaged fallback font.
const FallbackFontName = "Go Regular"

// FallbackFont returns the binary of the packaged fallback font.
func FallbackFont() []byte {
	return goregular.TTF
}
