package fontdir

import (
	"io/fs"
	"path/filepath"
	"slices"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/npillmayer/fontres/fontsource"
	"github.com/npillmayer/fontres/sniff"
)

// Key identifies an index entry by family name and raw style bits.
// Family is case-folded.
type Key struct {
	Family string
	Style  sniff.Style
}

// Entry locates a font file found during a scan.
type Entry struct {
	Family string      // family name as reported by the font
	Style  sniff.Style // style bits of field 'macStyle'
	Path   string      // file path for display
	fsys   fs.FS
	name   string
}

// ReadFont reads the font binary of an entry.
func (e Entry) ReadFont() ([]byte, error) {
	return fs.ReadFile(e.fsys, e.name)
}

// Index maps (family, style) to font files. It is safe for concurrent use.
type Index struct {
	mu       sync.RWMutex
	entries  map[Key]Entry
	styles   map[string]*bitset.BitSet // style variants per folded family
	families map[string]string         // folded family -> family as reported
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		entries:  make(map[Key]Entry),
		styles:   make(map[string]*bitset.BitSet),
		families: make(map[string]string),
	}
}

// Add puts an entry into the index, unless its key is already taken. It
// reports whether the entry has been added.
func (ix *Index) Add(e Entry) bool {
	folded := fontsource.FoldFamily(e.Family)
	key := Key{Family: folded, Style: e.Style}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if prev, ok := ix.entries[key]; ok {
		tracer().Debugf("font %s duplicates %s, ignored", e.Path, prev.Path)
		return false
	}
	ix.entries[key] = e
	if ix.styles[folded] == nil {
		ix.styles[folded] = bitset.New(4)
		ix.families[folded] = e.Family
	}
	ix.styles[folded].Set(uint(e.Style))
	return true
}

// Lookup finds the font file for an exact family and style.
func (ix *Index) Lookup(family string, style sniff.Style) (Entry, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	e, ok := ix.entries[Key{Family: fontsource.FoldFamily(family), Style: style}]
	return e, ok
}

// substitutes lists, per requested style, the order in which variants of
// a family are tried.
var substitutes = [4][4]sniff.Style{
	sniff.StyleRegular:    {sniff.StyleRegular, sniff.StyleItalic, sniff.StyleBold, sniff.StyleBoldItalic},
	sniff.StyleBold:       {sniff.StyleBold, sniff.StyleRegular, sniff.StyleBoldItalic, sniff.StyleItalic},
	sniff.StyleItalic:     {sniff.StyleItalic, sniff.StyleRegular, sniff.StyleBoldItalic, sniff.StyleBold},
	sniff.StyleBoldItalic: {sniff.StyleBoldItalic, sniff.StyleBold, sniff.StyleItalic, sniff.StyleRegular},
}

// Substitutes returns the style variants to try for a requested style, best
// match first. The first element is style itself.
func Substitutes(style sniff.Style) [4]sniff.Style {
	return substitutes[style&sniff.StyleBoldItalic]
}

// Closest finds the variant of a family which best matches style. It returns
// the exact variant if present. Otherwise a variant sharing as many style bits
// as possible is returned.
func (ix *Index) Closest(family string, style sniff.Style) (Entry, bool) {
	folded := fontsource.FoldFamily(family)
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	present := ix.styles[folded]
	if present == nil {
		return Entry{}, false
	}
	for _, s := range Substitutes(style) {
		if present.Test(uint(s)) {
			return ix.entries[Key{Family: folded, Style: s}], true
		}
	}
	return Entry{}, false
}

// Styles returns the style variants present for a family.
func (ix *Index) Styles(family string) []sniff.Style {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	present := ix.styles[fontsource.FoldFamily(family)]
	if present == nil {
		return nil
	}
	var styles []sniff.Style
	for i, ok := present.NextSet(0); ok; i, ok = present.NextSet(i + 1) {
		styles = append(styles, sniff.Style(i))
	}
	return styles
}

// Families returns the names of all families in the index, sorted.
func (ix *Index) Families() []string {
	ix.mu.RLock()
	fams := make([]string, 0, len(ix.families))
	for _, f := range ix.families {
		fams = append(fams, f)
	}
	ix.mu.RUnlock()
	slices.Sort(fams)
	return fams
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// NewEntry creates an entry for file name in fsys.
func NewEntry(fsys fs.FS, name, family string, style sniff.Style) Entry {
	return Entry{
		Family: family,
		Style:  style,
		Path:   name,
		fsys:   fsys,
		name:   name,
	}
}

func entryFor(root Root, name, family string, style sniff.Style) Entry {
	e := NewEntry(root.FS, name, family, style)
	e.Path = filepath.Join(root.Path, filepath.FromSlash(name))
	return e
}
