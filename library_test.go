package fontres

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/fontres/fontfactory"
	"github.com/npillmayer/fontres/fontsource"
	"github.com/npillmayer/fontres/sniff"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

func fontDir(t *testing.T, fonts map[string][]byte) string {
	dir := t.TempDir()
	for name, data := range fonts {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	return dir
}

func TestLibraryResolvesFromSearchPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	dir := fontDir(t, map[string][]byte{
		"Go-Regular.ttf": goregular.TTF,
		"Go-Bold.ttf":    gobold.TTF,
	})
	lib, err := New(WithSearchPaths(dir))
	require.NoError(t, err)
	defer lib.Close()
	assert.Equal(t, 2, lib.Index().Len())
	//
	info, err := lib.ResolveTypeface("Go", true, false)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "Go Bold", info.Source.Name())
	assert.False(t, info.SimulateBold)
	require.NotNil(t, info.Handle.Face())
	//
	info, err = lib.ResolveTypeface("Go", false, true)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "Go Regular", info.Source.Name())
	assert.True(t, info.SimulateItalic, "italic must be simulated with only regular installed")
	//
	info, err = lib.ResolveTypeface("Helvetica Neue Ultra", false, false)
	assert.NoError(t, err)
	assert.Nil(t, info)
}

func TestLibraryLazyScan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	dir := fontDir(t, map[string][]byte{"Go-Italic.ttf": goitalic.TTF})
	lib, err := New(WithSearchPaths(dir), WithLazyScan())
	require.NoError(t, err)
	h, src, err := lib.TryCreateFont("go", 14, sniff.StyleItalic)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, 14.0, h.Size())
	assert.Equal(t, "Go Italic", src.Name())
	assert.Zero(t, lib.Cache().Len(), "TryCreateFont must not cache a resolution")
}

func TestLibraryAddFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	lib, err := New(WithoutScan())
	require.NoError(t, err)
	key, err := lib.AddFont(gobolditalic.TTF)
	require.NoError(t, err)
	assert.Equal(t, "go/bi", key)
	again, err := lib.AddFontReader(bytes.NewReader(gobolditalic.TTF))
	require.NoError(t, err)
	assert.Equal(t, key, again)
	assert.Len(t, lib.Sources(), 1, "re-adding identical bytes must be a no-op")
	src, ok := lib.Source("go/bi")
	require.True(t, ok)
	assert.Equal(t, "Go Bold Italic", src.Name())
	// added fonts are known to the platform loader
	info, err := lib.ResolveTypeface("Go", true, true)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Same(t, src, info.Source)
	assert.False(t, info.SimulateBold)
	assert.False(t, info.SimulateItalic)
}

func TestLibraryAddFontFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	dir := fontDir(t, map[string][]byte{"bold.ttf": gobold.TTF})
	lib, err := New(WithoutScan())
	require.NoError(t, err)
	key, err := lib.AddFontFile(filepath.Join(dir, "bold.ttf"))
	require.NoError(t, err)
	assert.Equal(t, "go/b", key)
	_, err = lib.AddFontFile(filepath.Join(dir, "missing.ttf"))
	assert.Error(t, err)
}

func TestLibraryAddNamedFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	lib, err := New(WithoutScan(), WithLoader(newStub(true)))
	require.NoError(t, err)
	key, err := lib.AddNamedFont("Corporate", sniff.StyleRegular, goregular.TTF)
	require.NoError(t, err)
	assert.Equal(t, "corporate/r", key)
	_, err = lib.AddNamedFont("", sniff.StyleRegular, goregular.TTF)
	assert.True(t, errors.Is(err, fontsource.ErrInvalidArgument))
}

func TestLibraryCustomResolverFirst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	custom := &fontfactory.ResolverInfo{TypefaceKey: "go/r"}
	loader := newStub(false)
	lib, err := New(WithoutScan(), WithLoader(loader),
		WithCustomResolver(ResolverFunc(func(family string, bold, italic bool) (*fontfactory.ResolverInfo, error) {
			if !bold && !italic {
				return custom, nil
			}
			return nil, nil
		})))
	require.NoError(t, err)
	info, err := lib.ResolveTypeface("Go", false, false)
	require.NoError(t, err)
	assert.Same(t, custom, info)
	assert.Zero(t, loader.created.Load())
	info, err = lib.ResolveTypeface("Go", true, false)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.True(t, info.SimulateBold)
	// no suffix heuristic with a custom resolver: family and style come from the font
	key, err := lib.AddFont(goitalic.TTF)
	require.NoError(t, err)
	assert.Equal(t, "go/i", key)
}

func TestLibraryAddFontAfterSimulatedResolution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	dir := fontDir(t, map[string][]byte{"Go-Regular.ttf": goregular.TTF})
	lib, err := New(WithSearchPaths(dir))
	require.NoError(t, err)
	defer lib.Close()
	info, err := lib.ResolveTypeface("Go", true, false)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.True(t, info.SimulateBold)
	assert.Equal(t, "Go Regular", info.Source.Name())
	//
	key, err := lib.AddFont(gobold.TTF)
	assert.Equal(t, "go/b", key)
	assert.True(t, errors.Is(err, fontsource.ErrTypefaceBound), "expected conflicting binary to be reported")
	src, ok := lib.Source("go/b")
	require.True(t, ok)
	assert.Equal(t, "Go Regular", src.Name(), "first binding must be kept")
	again, err := lib.ResolveTypeface("Go", true, false)
	require.NoError(t, err)
	assert.Same(t, info, again)
	// adding the bound binary again is not a conflict
	key, err = lib.AddNamedFont("Go", sniff.StyleBold, goregular.TTF)
	assert.NoError(t, err)
	assert.Equal(t, "go/b", key)
}

func TestLibraryCloseDropsAddedFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	lib, err := New(WithoutScan())
	require.NoError(t, err)
	_, err = lib.AddFont(gobold.TTF)
	require.NoError(t, err)
	info, err := lib.ResolveTypeface("Go", true, false)
	require.NoError(t, err)
	require.NotNil(t, info)
	require.NoError(t, lib.Close())
	assert.Empty(t, lib.Sources())
	info, err = lib.ResolveTypeface("Go", true, false)
	assert.NoError(t, err)
	assert.Nil(t, info, "added fonts must be gone after Close")
}

func TestLibraryDefaultFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	_, err := New(WithoutScan(), WithDefaultFont([]byte("no font")))
	assert.Error(t, err)
	lib, err := New(WithoutScan(), WithLoader(newStub(true)), WithDefaultFont(goitalic.TTF))
	require.NoError(t, err)
	info, err := lib.ResolveTypeface("Go", false, true)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "Go Italic", info.Source.Name())
	require.NoError(t, lib.Close())
	assert.Zero(t, lib.Cache().Len())
}
