package otquery

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// --- Test Suite Preparation ------------------------------------------------

type InfoTestEnviron struct {
	suite.Suite
	regular, bold, italic *Font
}

// listen for 'go test' command --> run test methods
func TestInfoFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	suite.Run(t, new(InfoTestEnviron))
}

// run once, before test suite methods
func (env *InfoTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("tyse.fonts").SetTraceLevel(tracing.LevelError)
	env.regular = parseFont(env, goregular.TTF)
	env.bold = parseFont(env, gobold.TTF)
	env.italic = parseFont(env, goitalic.TTF)
	tracing.Select("tyse.fonts").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *InfoTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

func (env *InfoTestEnviron) TestFontTypeInfo() {
	fti := FontType(env.regular)
	env.Equal("TrueType", fti, "expected font type of test font to be TrueType")
}

func (env *InfoTestEnviron) TestTables() {
	tags := env.regular.TableTags()
	for _, required := range []string{"head", "name", "OS/2", "hhea", "maxp", "cmap"} {
		env.Contains(tags, T(required), "expected test font to contain table %s", required)
	}
}

func (env *InfoTestEnviron) TestGeneralInfo() {
	info := NameInfo(env.regular)
	env.T().Logf("info = %v", info)
	fam, ok := info["family"]
	env.Require().True(ok, "font familiy identifier not found in font info")
	env.Equal("Go", fam, "expected font family name 'Go'")
	env.Equal("Go", FamilyName(env.bold))
	env.Equal("Go Regular", FullFontName(env.regular))
}

func (env *InfoTestEnviron) TestNamesRange() {
	var family string
	n := 0
	for id, value := range NamesRange(env.italic) {
		n++
		if id == sfnt.NameIDFamily && family == "" {
			family = value
		}
	}
	env.Equal("Go", family, "expected a family name record")
	env.Greater(n, 1, "expected more than one name record")
	n = 0
	for range NamesRange(env.italic) {
		n++
		break
	}
	env.Equal(1, n, "expected iteration to stop")
}

func (env *InfoTestEnviron) TestHeadInfo() {
	h, ok := HeadInfo(env.regular)
	env.Require().True(ok, "expected to decode table 'head'")
	env.Equal(uint32(0x5F0F3CF5), h.MagicNumber, "expected OpenType head magic number")
	env.NotZero(h.UnitsPerEm, "expected units per em to be set")
	env.False(h.IsBold())
}

func (env *InfoTestEnviron) TestMaxPInfo() {
	m, ok := MaxPInfo(env.regular)
	env.Require().True(ok, "expected to decode table 'maxp'")
	env.NotZero(m.NumGlyphs, "expected glyph count to be set")
	env.NotZero(m.VersionFixed, "expected maxp version to be set")
}

func (env *InfoTestEnviron) TestStyleFlags() {
	bold, italic := StyleFlags(env.regular)
	env.False(bold || italic, "expected Go Regular to be neither bold nor italic")
	bold, italic = StyleFlags(env.bold)
	env.True(bold, "expected Go Bold to be bold")
	env.False(italic, "expected Go Bold to be upright")
	bold, italic = StyleFlags(env.italic)
	env.False(bold, "expected Go Italic to be regular weight")
	env.True(italic, "expected Go Italic to be italic")
}

func (env *InfoTestEnviron) TestMetrics() {
	m := FontMetrics(env.regular)
	env.Positive(int(m.Ascent), "expected positive ascender")
	env.Negative(int(m.Descent), "expected negative descender")
	env.Greater(int(m.LineSpacing()), int(m.Ascent))
	env.InDelta(12.0, m.Scaled(m.UnitsPerEm, 12), 0.0001)
}

// --- Helpers ----------------------------------------------------------

func parseFont(env *InfoTestEnviron, data []byte) *Font {
	otf, err := Parse(data)
	env.Require().NoError(err)
	return otf
}

func TestParseRejectsGarbage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	if _, err := Parse([]byte("short")); err == nil {
		t.Errorf("expected error for short input")
	}
	ttc := append([]byte("ttcf"), make([]byte, 16)...)
	if _, err := Parse(ttc); err != ErrCollection {
		t.Errorf("expected ErrCollection for TTC input, have %v", err)
	}
	if _, err := Parse(make([]byte, 32)); err == nil {
		t.Errorf("expected error for unknown font type")
	}
}

func TestTagString(t *testing.T) {
	if T("OS/2").String() != "OS/2" {
		t.Errorf("expected tag OS/2 to survive round trip")
	}
	if T("cvt").String() != "cvt " {
		t.Errorf("expected short tag to be padded with spaces, is %q", T("cvt").String())
	}
}
