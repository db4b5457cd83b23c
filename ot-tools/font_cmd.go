package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/npillmayer/fontres/fontsource"
	"github.com/npillmayer/fontres/otquery"
	"github.com/npillmayer/fontres/sniff"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		fatalf("cannot read font %s: %v", fontPath, err)
	}
	otf, err := otquery.Parse(data)
	if err != nil {
		fatalf("cannot parse font %s: %v", fontPath, err)
	}

	fmt.Printf("Path: %s\n", fontPath)
	fmt.Printf("Type: %s\n", otquery.FontType(otf))
	fmt.Printf("Checksum: %016x\n", fontsource.Checksum(data))
	names := otquery.NameInfo(otf)
	for _, key := range []string{"family", "subfamily", "fullname", "typographic-family", "version"} {
		if v := names[key]; v != "" {
			fmt.Printf("%s: %s\n", key, v)
		}
	}
	bold, italic := otquery.StyleFlags(otf)
	fmt.Printf("Style (OS/2): %s\n", sniff.StyleFrom(bold, italic))
	if s, err := sniff.FontStyle(data); err == nil {
		fmt.Printf("Style (head): %s\n", s)
	} else {
		fmt.Printf("Style (head): %v\n", err)
	}
	if family, style, ok := fontsource.StripStyleSuffix(otquery.FullFontName(otf)); ok {
		fmt.Printf("Name heuristic: %s %s\n", family, style)
	}
	m := otquery.FontMetrics(otf)
	fmt.Printf("Metrics: upem=%d ascent=%d descent=%d linegap=%d\n",
		m.UnitsPerEm, m.Ascent, m.Descent, m.LineGap)

	tags := otf.TableTags()
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	fmt.Printf("Tables (%d):", len(tags))
	for _, tag := range tags {
		fmt.Printf(" %s", tag.String())
	}
	fmt.Println()

	if len(args["tables"].Value) > 0 {
		printSelectedTables(otf, args["tables"].Value)
	}
	if f, ok := flags["names"]; ok && mustFlagBool(f, "names") {
		printNameRecords(otf)
	}
}

func printNameRecords(otf *otquery.Font) {
	for id, value := range otquery.NamesRange(otf) {
		fmt.Printf("name %3d: %s\n", id, value)
	}
}

func printSelectedTables(otf *otquery.Font, raw string) {
	for _, tagName := range splitCSVSpace(raw) {
		table := otf.Table(otquery.T(tagName))
		if table == nil {
			fmt.Printf("table %s: missing\n", tagName)
			continue
		}
		fmt.Printf("table %s: size=%d\n", tagName, len(table))
	}
}
