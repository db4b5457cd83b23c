/*
Package fontsource holds the binaries of fonts in use.

A FontSource is one font binary together with the names and style bits read
from its tables. A Store keeps font sources unique by content: binaries
with identical bytes are stored once, no matter how many typefaces refer
to them. Typeface keys are secondary indices into the store.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontsource

import (
	"fmt"
	"sync"

	"github.com/npillmayer/fontres/otquery"
	"github.com/npillmayer/fontres/sniff"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// FontSource is a font binary in use. FontSources are heavyweight and are shared
// throughout the application. The binary is immutable and must not be
// modified by clients.
type FontSource struct {
	data     []byte
	once     sync.Once
	checksum ChecksumKey
	name     string      // full font name
	family   string      // family name from table 'name'
	style    sniff.Style // style bits from table 'OS/2'
	metrics  otquery.FontMetricsInfo
}

// NewFontSource creates a FontSource from a font binary (TTF or OTF).
// The data slice is copied and may be reused by the caller.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty font data", ErrInvalidArgument)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return newFontSource(buf)
}

func newFontSource(data []byte) (*FontSource, error) {
	otf, err := otquery.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("cannot create font source: %w", err)
	}
	src := &FontSource{
		data:    data,
		name:    otquery.FullFontName(otf),
		family:  otquery.FamilyName(otf),
		metrics: otquery.FontMetrics(otf),
	}
	src.style = sniff.StyleFrom(otquery.StyleFlags(otf))
	if src.name == "" {
		src.name = src.family
	}
	tracer().Debugf("created font source %q (%s)", src.name, src.style)
	return src, nil
}

// Bytes returns the font binary. Clients must not modify it.
func (src *FontSource) Bytes() []byte {
	return src.data
}

// Checksum returns the content key of src. It is computed on first use,
// except for sources created by a Store, which assigns it.
func (src *FontSource) Checksum() ChecksumKey {
	src.once.Do(func() {
		src.checksum = Checksum(src.data)
	})
	return src.checksum
}

// assignChecksum sets the content key before src gets published.
func (src *FontSource) assignChecksum(key ChecksumKey) {
	src.once.Do(func() {
		src.checksum = key
	})
}

// Name returns the full font name, e.g., "Go Bold Italic".
func (src *FontSource) Name() string {
	return src.name
}

// Family returns the family name recorded in the font binary.
func (src *FontSource) Family() string {
	return src.family
}

// Style returns the style bits recorded in table 'OS/2' of the font binary.
func (src *FontSource) Style() sniff.Style {
	return src.style
}

// Metrics returns selected font-wide metrics.
func (src *FontSource) Metrics() otquery.FontMetricsInfo {
	return src.metrics
}

func (src *FontSource) String() string {
	return fmt.Sprintf("%s[%016x]", src.name, src.Checksum())
}
