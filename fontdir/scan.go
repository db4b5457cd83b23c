/*
Package fontdir scans directories for font files and indexes them by family
name and style.

The index is a fallback for font resolution: it is consulted when a font's
binary cannot be obtained from a platform font handle directly. Scanning is
best-effort. Files which cannot be read or do not look like fonts are
skipped, and the first file found for a (family, style) key wins.

# Status

Font collections (*.ttc) are not supported and will be skipped.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontdir

import (
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/npillmayer/fontres/otquery"
	"github.com/npillmayer/fontres/sniff"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// Scanner finds font files below a set of roots.
type Scanner struct {
	names sniff.NameReader
}

// NewScanner creates a scanner which asks names for the family name of each
// font file found. If names is nil, family names are read from the
// fonts' 'name' tables.
func NewScanner(names sniff.NameReader) *Scanner {
	if names == nil {
		names = tableNames{}
	}
	return &Scanner{names: names}
}

// ScanStats reports the outcome of a scan.
type ScanStats struct {
	Files       int // font files inspected
	Added       int // index entries created
	Duplicates  int // files ignored because of an existing entry
	Collections int // font collections skipped
	Failed      int // files which could not be read or sniffed
}

// Scan walks all roots in order and returns a new index.
func (sc *Scanner) Scan(roots ...Root) *Index {
	ix := NewIndex()
	sc.ScanInto(ix, roots...)
	return ix
}

// ScanInto walks all roots in order and adds the font files found to ix.
// Errors are traced and never abort the scan.
func (sc *Scanner) ScanInto(ix *Index, roots ...Root) ScanStats {
	var stats ScanStats
	for _, root := range roots {
		if root.FS == nil {
			continue
		}
		if len(root.Files) > 0 {
			for _, name := range root.Files {
				sc.inspect(ix, root, name, &stats)
			}
			continue
		}
		err := fs.WalkDir(root.FS, ".", func(name string, d fs.DirEntry, err error) error {
			if err != nil {
				tracer().Debugf("skipping %s/%s: %v", root.Path, name, err)
				if d != nil && d.IsDir() && name != "." {
					return fs.SkipDir
				}
				return nil
			}
			if !d.IsDir() {
				sc.inspect(ix, root, name, &stats)
			}
			return nil
		})
		if err != nil {
			tracer().Debugf("cannot scan %s: %v", root.Path, err)
		}
	}
	if stats.Collections > 0 {
		tracer().Infof("skipped %d font collections: TTC not yet supported", stats.Collections)
	}
	tracer().Infof("font scan: %d files, %d indexed, %d duplicates, %d failed",
		stats.Files, stats.Added, stats.Duplicates, stats.Failed)
	return stats
}

func (sc *Scanner) inspect(ix *Index, root Root, name string, stats *ScanStats) {
	switch strings.ToLower(path.Ext(name)) {
	case ".ttf", ".otf":
	case ".ttc", ".otc":
		stats.Collections++
		return
	default:
		return
	}
	stats.Files++
	data, err := fs.ReadFile(root.FS, name)
	if err != nil {
		stats.Failed++
		tracer().Errorf("cannot read font file %s: %v", name, err)
		return
	}
	style, err := sniff.FontStyle(data)
	if err != nil {
		stats.Failed++
		tracer().Errorf("cannot read style of font file %s: %v", name, err)
		return
	}
	family, err := sniff.FamilyName(data, sc.names)
	if err != nil {
		stats.Failed++
		tracer().Errorf("cannot read family of font file %s: %v", name, err)
		return
	}
	if ix.Add(entryFor(root, name, family, style)) {
		stats.Added++
	} else {
		stats.Duplicates++
	}
}

// tableNames reads family names from table 'name'.
type tableNames struct{}

func (tableNames) FamilyName(data []byte) (string, error) {
	otf, err := otquery.Parse(data)
	if err != nil {
		return "", err
	}
	return otquery.FamilyName(otf), nil
}

// Lazy returns a function which scans the roots returned by roots on its first
// call and returns the same index on every call.
func Lazy(sc *Scanner, roots func() []Root) func() *Index {
	return sync.OnceValue(func() *Index {
		return sc.Scan(roots()...)
	})
}
