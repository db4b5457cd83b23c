package fontload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/font/gofont/gobold"
)

func TestParseFallbackFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	f, err := ParseOpenTypeFont(FallbackFont())
	if err != nil {
		t.Fatalf("cannot parse packaged fallback font: %v", err)
	}
	if f.Fontname != FallbackFontName {
		t.Errorf("expected fallback font to be %q, is %q", FallbackFontName, f.Fontname)
	}
	if f.Family != "Go" {
		t.Errorf("expected fallback family to be 'Go', is %q", f.Family)
	}
}

func TestLoadFromFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "Go-Bold.ttf")
	if err := os.WriteFile(path, gobold.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := LoadOpenTypeFont(path)
	if err != nil {
		t.Fatalf("cannot load font file: %v", err)
	}
	if f.Fontname != "Go Bold" {
		t.Errorf("expected font name 'Go Bold', is %q", f.Fontname)
	}
	if _, err := LoadOpenTypeFont(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Errorf("expected error for missing font file")
	}
}
