package platform

import (
	"fmt"
	"sync"

	"github.com/npillmayer/fontres/fontdir"
	"github.com/npillmayer/fontres/fontsource"
	"github.com/npillmayer/fontres/internal/fontload"
	"github.com/npillmayer/fontres/otquery"
	"github.com/npillmayer/fontres/sniff"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// SFNTLoader is a Loader for TrueType and OpenType fonts, implemented in Go.
// It is safe for concurrent use.
type SFNTLoader struct {
	mu      sync.RWMutex
	private map[fontdir.Key][]byte
	family  map[string]string // folded family -> family as registered
	system  func() *fontdir.Index
	dpi     float64
}

// NewSFNTLoader creates a loader. system provides the index of installed
// fonts on demand and may be nil.
func NewSFNTLoader(system func() *fontdir.Index) *SFNTLoader {
	return &SFNTLoader{
		private: make(map[fontdir.Key][]byte),
		family:  make(map[string]string),
		system:  system,
		dpi:     72,
	}
}

// Register adds a font binary to the private collection of l. Private fonts
// take precedence over system fonts. The first binary registered for a
// (family, style) key wins.
func (l *SFNTLoader) Register(family string, style sniff.Style, data []byte) error {
	if family == "" {
		return fmt.Errorf("%w: empty family name", fontsource.ErrInvalidArgument)
	}
	key := fontdir.Key{Family: fontsource.FoldFamily(family), Style: style}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.private[key]; ok {
		return nil
	}
	l.private[key] = HandOver(data)
	if _, ok := l.family[key.Family]; !ok {
		l.family[key.Family] = family
	}
	tracer().Debugf("registered private font %s %s", family, style)
	return nil
}

// Reset removes all fonts from the private collection of l.
func (l *SFNTLoader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.private = make(map[fontdir.Key][]byte)
	l.family = make(map[string]string)
}

// CreateFont selects a font for family and style. Private fonts are searched
// first, then system fonts. If the requested style is not available, the
// closest variant of the family is used and the missing style is reported
// as part of the handle's style, to be simulated.
func (l *SFNTLoader) CreateFont(family string, style sniff.Style, size float64) (Handle, error) {
	if data, name, ok := l.privateFont(family, style); ok {
		return l.newHandle(name, style, size, data)
	}
	if l.system != nil {
		if ix := l.system(); ix != nil {
			if e, ok := ix.Closest(family, style); ok {
				data, err := e.ReadFont()
				if err != nil {
					return nil, fmt.Errorf("cannot read font %s: %w", e.Path, err)
				}
				if e.Style != style {
					tracer().Debugf("%s %s not installed, substituting %s", family, style, e.Style)
				}
				return l.newHandle(e.Family, style, size, data)
			}
		}
	}
	return nil, fmt.Errorf("%w: %s %s", ErrNoSuchFont, family, style)
}

func (l *SFNTLoader) privateFont(family string, style sniff.Style) ([]byte, string, bool) {
	folded := fontsource.FoldFamily(family)
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, s := range fontdir.Substitutes(style) {
		if data, ok := l.private[fontdir.Key{Family: folded, Style: s}]; ok {
			return data, l.family[folded], true
		}
	}
	return nil, "", false
}

// LoadFont creates a handle for a font binary. The handle reports the family
// and style recorded in the binary.
func (l *SFNTLoader) LoadFont(data []byte, size float64) (Handle, error) {
	f, err := fontload.ParseOpenTypeFont(data)
	if err != nil {
		return nil, err
	}
	otf, err := otquery.Parse(data)
	if err != nil {
		return nil, err
	}
	style := sniff.StyleFrom(otquery.StyleFlags(otf))
	return l.newHandle(f.Family, style, size, HandOver(data))
}

// FamilyName reports the family name recorded in a font binary.
func (l *SFNTLoader) FamilyName(data []byte) (string, error) {
	f, err := fontload.ParseOpenTypeFont(data)
	if err != nil {
		return "", err
	}
	return f.Family, nil
}

func (l *SFNTLoader) newHandle(family string, style sniff.Style, size float64, data []byte) (Handle, error) {
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse font %s: %w", family, err)
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     l.dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create face for %s: %w", family, err)
	}
	return &sfntFont{
		family: family,
		style:  style,
		size:   size,
		data:   data,
		face:   face,
	}, nil
}

type sfntFont struct {
	family string
	style  sniff.Style
	size   float64
	data   []byte
	face   font.Face
}

func (f *sfntFont) Family() string        { return f.family }
func (f *sfntFont) Style() sniff.Style    { return f.style }
func (f *sfntFont) Size() float64         { return f.size }
func (f *sfntFont) Bytes() ([]byte, bool) { return f.data, len(f.data) > 0 }
func (f *sfntFont) Face() font.Face       { return f.face }

func (f *sfntFont) String() string {
	return fmt.Sprintf("%s %s %gpt", f.family, f.style, f.size)
}
