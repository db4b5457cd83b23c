/*
Package fontres resolves typefaces to font binaries and platform fonts.

A drawing layer asks for a typeface, e.g. "Arial, bold", and needs two things
in return: a platform font to measure and draw text with, and the font binary
to embed into the output document. If the platform has to simulate a style
(because, e.g., only the regular variant of a family is installed), the
drawing layer must know, to apply the same synthetic styling in the output.

We stick to the following nomenclature:

▪︎ A "typeface" is a family of fonts in a certain style, as requested by a
client. An example is "Helvetica bold". Typefaces are identified by
typeface keys, see fontsource.TypefaceKey.

▪︎ A "font source" is a font binary (TTF or OTF), identified by a content
checksum. Different typefaces may share the same font source, if styles
are simulated.

▪︎ A "platform font" is a font selected by the host platform for a typeface
and a size, see package platform.

Library is the entry point for clients. It owns a cache of resolution
results and a store of font sources, and it scans the font directories of
the host system once, to locate font binaries.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontres

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// NominalSize is the point size platform fonts are created with during
// resolution. Size does not contribute to the identity of a typeface.
const NominalSize = 10.0
