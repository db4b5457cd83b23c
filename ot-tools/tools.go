package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/fontres"
	"github.com/npillmayer/fontres/fontsource"
	"github.com/npillmayer/fontres/sniff"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/thatisuday/commando"
)

// tracer traces with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

func main() {
	commando.
		SetExecutableName("fontres-tools").
		SetVersion("v0.1.0").
		SetDescription("CLI for font sniffing, font directory scans and typeface resolution.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("sniff").
		SetDescription("Print style bits and family name of font files, the way a font directory scan sees them.").
		SetShortDescription("sniff font files").
		AddArgument("files...", "font file paths", "").
		AddFlag("trace,T", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runSniffCommand)

	commando.
		Register("scan").
		SetDescription("Scan font directories and print the resulting font index.").
		SetShortDescription("scan font directories").
		AddArgument("dirs...", "directories to scan (default: system font directories)", "").
		AddFlag("family,f", "print only entries of this family", commando.String, "-").
		AddFlag("trace,T", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runScanCommand)

	commando.
		Register("resolve").
		SetDescription("Resolve a typeface and print the font binary and style simulation chosen for it.").
		SetShortDescription("resolve a typeface").
		AddArgument("family", "font family name, e.g. Arial", "").
		AddFlag("style,s", "style: regular|bold|italic|bolditalic", commando.String, "regular").
		AddFlag("dir,d", "font directory to scan instead of system font directories", commando.String, "-").
		AddFlag("add,a", "font files to register before resolving (comma separated)", commando.String, "-").
		AddFlag("trace,T", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runResolveCommand)

	commando.
		Register("view").
		SetDescription("Resolve a typeface and render sample text to a PNG image.").
		SetShortDescription("render resolved typeface").
		AddArgument("family", "font family name, e.g. Arial", "").
		AddArgument("text...", "sample text", "Hamburgefonts").
		AddFlag("style,s", "style: regular|bold|italic|bolditalic", commando.String, "regular").
		AddFlag("dir,d", "font directory to scan instead of system font directories", commando.String, "-").
		AddFlag("size,p", "font size in points", commando.Int, 48).
		AddFlag("output,o", "output PNG file", commando.String, "fontres-view.png").
		AddFlag("show-bbox,B", "draw red bounding-box outline of the text", commando.Bool, nil).
		AddFlag("trace,T", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runViewCommand)

	commando.
		Register("font").
		SetDescription("Print diagnostics and table information for an OpenType font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("tables...", "optional list of table tags (e.g. head,OS/2,name)", "").
		AddFlag("names,n", "print all records of table 'name'", commando.Bool, nil).
		SetAction(runFontCommand)

	commando.Parse(nil)
}

// setupTracing configures tracing the same way for every subcommand.
func setupTracing(flags map[string]commando.FlagValue) {
	level := "Error"
	if f, ok := flags["trace"]; ok {
		level = mustFlagString(f, "trace")
	}
	if v, ok := flags["verbose"]; ok && mustFlagBool(v, "verbose") {
		level = "Debug"
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":  "go",
		"trace.tyse.fonts": level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("error configuring tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

// newLibrary creates a font library for the --dir and --add flags.
func newLibrary(flags map[string]commando.FlagValue) *fontres.Library {
	var opts []fontres.Option
	if dir := optionalFlag(flags, "dir"); dir != "" {
		opts = append(opts, fontres.WithSearchPaths(dir))
	}
	lib, err := fontres.New(opts...)
	if err != nil {
		fatalf("cannot set up font library: %v", err)
	}
	for _, path := range splitCSVSpace(optionalFlag(flags, "add")) {
		key, err := lib.AddFontFile(path)
		if errors.Is(err, fontsource.ErrTypefaceBound) {
			tracer().Errorf("skipping %s: %v", path, err)
			continue
		} else if err != nil {
			fatalf("%v", err)
		}
		tracer().Infof("added %s as %s", path, key)
	}
	return lib
}

func parseStyleFlag(flag commando.FlagValue) sniff.Style {
	s := mustFlagString(flag, "style")
	style, ok := sniff.ParseStyle(s)
	if !ok {
		fatalf("invalid --style flag: %q", s)
	}
	return style
}

// optionalFlag returns the value of a string flag, with "-" meaning unset.
func optionalFlag(flags map[string]commando.FlagValue, name string) string {
	f, ok := flags[name]
	if !ok {
		return ""
	}
	s := strings.TrimSpace(mustFlagString(f, name))
	if s == "-" {
		return ""
	}
	return s
}

func splitCSVSpace(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "fontres-tools: "+format+"\n", args...)
	os.Exit(1)
}
