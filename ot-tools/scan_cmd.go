package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/fontres/fontdir"
	"github.com/npillmayer/fontres/fontsource"
	"github.com/npillmayer/fontres/platform"
	"github.com/npillmayer/fontres/sniff"
	"github.com/thatisuday/commando"
)

func runSniffCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	files := splitCSVSpace(args["files"].Value)
	if len(files) == 0 {
		fatalf("at least one font file is required")
	}
	names := platform.NewSFNTLoader(nil)
	failed := 0
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("%s: %v\n", path, err)
			failed++
			continue
		}
		style, err := sniff.FontStyle(data)
		if err != nil {
			fmt.Printf("%s: %v\n", path, err)
			failed++
			continue
		}
		family, err := sniff.FamilyName(data, names)
		if err != nil {
			fmt.Printf("%s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("%s: family=%q style=%s key=%s magic@%d checksum=%016x\n", path, family, style,
			fontsource.KeyFor(family, style), sniff.MagicIndex(data), fontsource.Checksum(data))
	}
	if failed > 0 {
		os.Exit(2)
	}
}

func runScanCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	var roots []fontdir.Root
	if dirs := splitCSVSpace(args["dirs"].Value); len(dirs) > 0 {
		for _, dir := range dirs {
			roots = append(roots, fontdir.DirRoot(fontdir.SystemIO, dir))
		}
	} else {
		roots = fontdir.SearchPaths(fontdir.SystemIO)
	}
	for _, r := range roots {
		tracer().Infof("scanning %s", r.Path)
	}
	ix := fontdir.NewIndex()
	stats := fontdir.NewScanner(platform.NewSFNTLoader(nil)).ScanInto(ix, roots...)
	only := fontsource.FoldFamily(optionalFlag(flags, "family"))
	for _, family := range ix.Families() {
		if only != "" && fontsource.FoldFamily(family) != only {
			continue
		}
		styles := ix.Styles(family)
		codes := make([]string, len(styles))
		for i, s := range styles {
			codes[i] = s.Code()
		}
		fmt.Printf("%s [%s]\n", family, strings.Join(codes, ","))
		for _, s := range styles {
			if e, ok := ix.Lookup(family, s); ok {
				fmt.Printf("    %-12s %s\n", s, e.Path)
			}
		}
	}
	fmt.Printf("files=%d indexed=%d duplicates=%d collections=%d failed=%d\n",
		stats.Files, stats.Added, stats.Duplicates, stats.Collections, stats.Failed)
}
