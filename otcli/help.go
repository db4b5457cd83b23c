package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "resolve", "typeface", "typefaces":
		pterm.Info.Println("resolve:<family>[:<style>]")
		pterm.Println(`
	Resolves a typeface and caches the result. Style is one of r, b, i, bi.
	The result tells which font binary has been selected and whether bold
	or italic have to be simulated:
	+-----------+---------------+-------------+---------------+-----------------+
	| Typeface  | Platform font | Font binary | Simulate bold | Simulate italic |
	+-----------+---------------+-------------+---------------+-----------------+
	Resolving a typeface a second time is answered from the cache.
	`)
	case "create":
		pterm.Info.Println("create:<family>[:<size>]")
		pterm.Println(`
	Creates a platform font in a given size (default 10pt), without caching.
	Prints font metrics of the face.
	`)
	case "scan", "families", "styles":
		pterm.Info.Println("families / styles:<family>")
		pterm.Println(`
	The font directories are scanned once. 'families' lists the families found,
	'styles:<family>' lists the styles of a family and the files providing them.
	`)
	case "add", "sniff":
		pterm.Info.Println("add:<path> / sniff:<path>")
		pterm.Println(`
	'add' registers a font file with the library. Family name and style are
	taken from the font's full name, e.g., "Go Bold Italic" -> Go, bold italic.
	A font is not added if its typeface has already been resolved to another
	binary.
	'sniff' prints style bits and family name of a font file, the way the
	directory scan sees it.
	`)
	case "sources":
		pterm.Info.Println("sources[:<checksum>]")
		pterm.Println(`
	Lists the font binaries in use. With a hex checksum, as printed by 'sniff',
	only the binary with this content key is listed.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	resolve:<family>[:<style>]   resolve a typeface
	create:<family>[:<size>]     create a platform font
	add:<path>                   register a font file
	sniff:<path>                 sniff style and family of a font file
	families                     list scanned font families
	styles:<family>              list styles of a scanned family
	sources[:<checksum>]         list font binaries in use
	cache                        list resolved typefaces
	help[:<command>]             help on a command
	quit                         leave
	Steps may be chained, separated by blanks. Use '_' for blanks in family names.
	`)
	}
}
