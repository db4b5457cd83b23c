package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/fontres/fontfactory"
	"github.com/thatisuday/commando"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

func runResolveCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	family := strings.TrimSpace(args["family"].Value)
	if family == "" {
		fatalf("family name is required")
	}
	style := parseStyleFlag(flags["style"])
	lib := newLibrary(flags)
	defer lib.Close()
	info, err := lib.ResolveTypeface(family, style.IsBold(), style.IsItalic())
	if err != nil {
		fatalf("cannot resolve %s %s: %v", family, style, err)
	}
	if info == nil {
		fmt.Printf("%s %s: no such font\n", family, style)
		os.Exit(2)
	}
	printResolverInfo(info)
}

func printResolverInfo(info *fontfactory.ResolverInfo) {
	fmt.Printf("Typeface: %s\n", info.TypefaceKey)
	fmt.Printf("Platform font: %s %s\n", info.Handle.Family(), info.Handle.Style())
	src := info.Source
	fmt.Printf("Font binary: %s (family %q, %s, %d bytes, checksum %016x)\n",
		src.Name(), src.Family(), src.Style(), len(src.Bytes()), src.Checksum())
	fmt.Printf("Simulate bold: %v\n", info.SimulateBold)
	fmt.Printf("Simulate italic: %v\n", info.SimulateItalic)
	m := src.Metrics()
	fmt.Printf("Line spacing: %d/%d em\n", m.LineSpacing(), m.UnitsPerEm)
}

func runViewCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	family := strings.TrimSpace(args["family"].Value)
	if family == "" {
		fatalf("family name is required")
	}
	text := strings.Join(splitCSVSpace(args["text"].Value), " ")
	if text == "" {
		fatalf("input text is empty")
	}
	style := parseStyleFlag(flags["style"])
	size := mustFlagInt(flags["size"], "size")
	if size <= 0 {
		fatalf("--size must be > 0")
	}
	outPath := strings.TrimSpace(mustFlagString(flags["output"], "output"))
	if outPath == "" {
		fatalf("output path is empty")
	}
	showBBox := mustFlagBool(flags["show-bbox"], "show-bbox")

	lib := newLibrary(flags)
	defer lib.Close()
	h, src, err := lib.TryCreateFont(family, float64(size), style)
	if err != nil {
		fatalf("cannot create font %s %s: %v", family, style, err)
	}
	if h == nil {
		fatalf("%s %s: no such font", family, style)
	}
	if err := renderTextPNG(h.Face(), text, outPath, showBBox); err != nil {
		fatalf("render failed: %v", err)
	}
	fmt.Printf("wrote %s (%s, binary %s)\n", outPath, h.Family(), src.Name())
}

// renderTextPNG draws a single line of text, with a margin of half the
// line height around it.
func renderTextPNG(face font.Face, text string, outPath string, showBBox bool) error {
	m := face.Metrics()
	bounds, advance := font.BoundString(face, text)
	margin := m.Height.Ceil() / 2
	width := advance.Ceil() + 2*margin
	height := m.Height.Ceil() + 2*margin
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	dot := fixed.P(margin, margin+m.Ascent.Ceil())
	d := font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot:  dot,
	}
	d.DrawString(text)
	if showBBox {
		drawRectOutline(img,
			(dot.X + bounds.Min.X).Floor(), (dot.Y + bounds.Min.Y).Floor(),
			(dot.X + bounds.Max.X).Ceil(), (dot.Y + bounds.Max.Y).Ceil(),
			color.RGBA{R: 0xff, A: 0xff})
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}

func drawRectOutline(img *image.RGBA, minX int, minY int, maxX int, maxY int, c color.RGBA) {
	b := img.Bounds()
	minX, minY = max(minX, b.Min.X), max(minY, b.Min.Y)
	maxX, maxY = min(maxX, b.Max.X), min(maxY, b.Max.Y)
	if minX >= maxX || minY >= maxY {
		return
	}
	for x := minX; x < maxX; x++ {
		img.SetRGBA(x, minY, c)
		img.SetRGBA(x, maxY-1, c)
	}
	for y := minY; y < maxY; y++ {
		img.SetRGBA(minX, y, c)
		img.SetRGBA(maxX-1, y, c)
	}
}
