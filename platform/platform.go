/*
Package platform is the boundary to the font facilities of the host platform.

The resolver layer does not create glyph renderers itself. It asks a Loader
for a font handle matching a family and style, the way a native graphics
library would be asked. Handles are borrowed: the loader hands them out,
clients may keep them for measuring and drawing, but the resolver layer
does not manage their life cycle.

SFNTLoader is a pure-Go loader built on golang.org/x/image/font/opentype.
It selects fonts from a private collection and from the system fonts
found by package fontdir.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package platform

import (
	"errors"

	"github.com/npillmayer/fontres/sniff"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// ErrNoSuchFont is returned by loaders if no font matches a request.
var ErrNoSuchFont = errors.New("no such font")

// Handle is a platform font, i.e. a font selected for a family, style and size.
type Handle interface {
	Family() string
	// Style is the style the platform renders the font with. It is the
	// requested style, even if the platform has to simulate it.
	Style() sniff.Style
	Size() float64
	// Bytes returns the binary of the font the platform selected, if the
	// platform is able to provide it.
	Bytes() ([]byte, bool)
	// Face returns a face for measuring and drawing. Faces are not safe for
	// concurrent use.
	Face() font.Face
}

// Loader creates platform fonts.
type Loader interface {
	// CreateFont selects a font for a family and style. It returns
	// ErrNoSuchFont if the platform does not know the family.
	CreateFont(family string, style sniff.Style, size float64) (Handle, error)
	// LoadFont creates a platform font from a font binary.
	LoadFont(data []byte, size float64) (Handle, error)
	// FamilyName registers a font binary temporarily and reports its family.
	FamilyName(data []byte) (string, error)
}

// Registrar is implemented by loaders with a private font collection.
type Registrar interface {
	Register(family string, style sniff.Style, data []byte) error
	// Reset empties the private font collection.
	Reset()
}

// HandOver transfers a font binary to a platform binding. The returned buffer
// is owned by the binding from then on; the caller's slice is not referenced
// and may be reused.
func HandOver(data []byte) []byte {
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf
}
