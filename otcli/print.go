package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/npillmayer/fontres/fontfactory"
	"github.com/npillmayer/fontres/fontsource"
	"github.com/npillmayer/fontres/platform"
	"github.com/npillmayer/fontres/sniff"
	"github.com/pterm/pterm"
)

func resolveOp(intp *Intp, op *Op) (err error, stop bool) {
	family, ok := op.hasArg()
	if !ok {
		return errNoArg, false
	}
	style, ok := sniff.ParseStyle(op.format)
	if !ok {
		return fmt.Errorf("unknown style: %q", op.format), false
	}
	info, err := intp.lib.ResolveTypeface(family, style.IsBold(), style.IsItalic())
	if err != nil {
		return err, false
	}
	if info == nil {
		pterm.Warning.Printf("no font for %s %s\n", family, style)
		return nil, false
	}
	intp.last = info.TypefaceKey
	printResolverInfos([]*fontfactory.ResolverInfo{info})
	return nil, false
}

func createOp(intp *Intp, op *Op) (err error, stop bool) {
	family, ok := op.hasArg()
	if !ok {
		return errNoArg, false
	}
	size := 10.0
	if op.format != "" {
		if size, err = strconv.ParseFloat(op.format, 64); err != nil || size <= 0 {
			return fmt.Errorf("font size not a positive number: %v", op.format), false
		}
	}
	h, src, err := intp.lib.TryCreateFont(family, size, sniff.StyleRegular)
	if err != nil {
		return err, false
	}
	if h == nil {
		pterm.Warning.Printf("no font for %s\n", family)
		return nil, false
	}
	printHandle(h, src)
	return nil, false
}

func addOp(intp *Intp, op *Op) (err error, stop bool) {
	path, ok := op.hasArg()
	if !ok {
		return errNoArg, false
	}
	key, err := intp.lib.AddFontFile(path)
	if errors.Is(err, fontsource.ErrTypefaceBound) {
		pterm.Warning.Printf("%s not added: %v\n", path, err)
		return nil, false
	} else if err != nil {
		return err, false
	}
	pterm.Printf("added %s as typeface %s\n", path, key)
	return nil, false
}

func sniffOp(intp *Intp, op *Op) (err error, stop bool) {
	path, ok := op.hasArg()
	if !ok {
		return errNoArg, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err, false
	}
	style, err := sniff.FontStyle(data)
	if err != nil {
		return err, false
	}
	family, err := sniff.FamilyName(data, platform.NewSFNTLoader(nil))
	if err != nil {
		return err, false
	}
	pterm.DefaultTable.WithHasHeader().WithData([][]string{
		{"Family", "Style", "Magic at", "Checksum"},
		{family, style.String(), strconv.Itoa(sniff.MagicIndex(data)), fmt.Sprintf("%016x", fontsource.Checksum(data))},
	}).Render()
	return nil, false
}

func familiesOp(intp *Intp, op *Op) (err error, stop bool) {
	ix := intp.lib.Index()
	families := ix.Families()
	pterm.Printf("Font index holds %d fonts of %d families\n", ix.Len(), len(families))
	data := [][]string{{"Family", "Styles"}}
	for _, f := range families {
		data = append(data, []string{f, formatStyles(ix.Styles(f))})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func stylesOp(intp *Intp, op *Op) (err error, stop bool) {
	family, ok := op.hasArg()
	if !ok {
		return errNoArg, false
	}
	ix := intp.lib.Index()
	styles := ix.Styles(family)
	if len(styles) == 0 {
		pterm.Warning.Printf("family %s not found in font directories\n", family)
		return nil, false
	}
	data := [][]string{{"Style", "File"}}
	for _, s := range styles {
		if e, ok := ix.Lookup(family, s); ok {
			data = append(data, []string{s.String(), e.Path})
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func sourcesOp(intp *Intp, op *Op) (err error, stop bool) {
	srcs := intp.lib.Sources()
	if arg, ok := op.hasArg(); ok {
		sum, err := strconv.ParseUint(arg, 16, 64)
		if err != nil {
			return fmt.Errorf("not a hex checksum: %q", arg), false
		}
		src, found := intp.lib.Cache().Store().ByChecksum(sum)
		if !found {
			pterm.Warning.Printf("no font binary with checksum %016x\n", sum)
			return nil, false
		}
		srcs = []*fontsource.FontSource{src}
	}
	data := [][]string{{"Name", "Family", "Style", "Size", "Checksum"}}
	for _, src := range srcs {
		data = append(data, []string{
			src.Name(),
			src.Family(),
			src.Style().String(),
			strconv.Itoa(len(src.Bytes())),
			fmt.Sprintf("%016x", src.Checksum()),
		})
	}
	pterm.Printf("%d font binaries in use\n", len(srcs))
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func cacheOp(intp *Intp, op *Op) (err error, stop bool) {
	cache := intp.lib.Cache()
	var infos []*fontfactory.ResolverInfo
	for _, key := range cache.Keys() {
		if info, ok := cache.Lookup(key); ok {
			infos = append(infos, info)
		}
	}
	pterm.Printf("%d typefaces resolved\n", len(infos))
	printResolverInfos(infos)
	return nil, false
}

// --- Output -----------------------------------------------------------

func printResolverInfos(infos []*fontfactory.ResolverInfo) {
	data := [][]string{
		{"Typeface", "Platform font", "Font binary", "Simulate bold", "Simulate italic"},
	}
	for _, info := range infos {
		platformFont := "-"
		if info.Handle != nil {
			platformFont = fmt.Sprintf("%s %s", info.Handle.Family(), info.Handle.Style())
		}
		binary := "-"
		if info.Source != nil {
			binary = info.Source.String()
		}
		data = append(data, []string{
			info.TypefaceKey,
			platformFont,
			binary,
			strconv.FormatBool(info.SimulateBold),
			strconv.FormatBool(info.SimulateItalic),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printHandle(h platform.Handle, src *fontsource.FontSource) {
	m := h.Face().Metrics()
	pterm.Printf("Platform font %s %s %gpt, binary %s\n", h.Family(), h.Style(), h.Size(), src)
	pterm.DefaultTable.WithHasHeader().WithData([][]string{
		{"Height", "Ascent", "Descent", "x-height", "Cap height"},
		{m.Height.String(), m.Ascent.String(), m.Descent.String(), m.XHeight.String(), m.CapHeight.String()},
	}).Render()
}

func formatStyles(styles []sniff.Style) string {
	s := ""
	for i, st := range styles {
		if i > 0 {
			s += ","
		}
		s += st.Code()
	}
	return s
}
