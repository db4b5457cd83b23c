package fontsource

import (
	"errors"
	"sync"
	"testing"

	"github.com/npillmayer/fontres/sniff"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// --- Test Suite Preparation ------------------------------------------------

type StoreTestEnviron struct {
	suite.Suite
	store *Store
}

func TestStore(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	suite.Run(t, new(StoreTestEnviron))
}

// run before each test method
func (env *StoreTestEnviron) SetupTest() {
	env.store = NewStore()
}

// --- Tests -----------------------------------------------------------------

func (env *StoreTestEnviron) TestIdenticalBytesShareInstance() {
	a, err := env.store.GetOrCreate(goregular.TTF)
	env.Require().NoError(err)
	copied := append([]byte(nil), goregular.TTF...)
	b, err := env.store.GetOrCreate(copied)
	env.Require().NoError(err)
	env.Same(a, b, "expected identical content to yield identical source")
	env.Equal(1, env.store.Len())
}

func (env *StoreTestEnviron) TestDifferentBytesDistinctInstances() {
	a, err := env.store.GetOrCreate(goregular.TTF)
	env.Require().NoError(err)
	b, err := env.store.GetOrCreate(gobold.TTF)
	env.Require().NoError(err)
	env.NotSame(a, b)
	env.Equal(a.Family(), b.Family(), "expected both Go fonts to report the same family")
	env.NotEqual(a.Checksum(), b.Checksum())
	env.Equal(2, env.store.Len())
}

func (env *StoreTestEnviron) TestSourceMetadata() {
	src, err := env.store.GetOrCreate(gobolditalic.TTF)
	env.Require().NoError(err)
	env.Equal("Go", src.Family())
	env.Equal(sniff.StyleBoldItalic, src.Style())
	env.NotZero(src.Metrics().UnitsPerEm)
	env.Equal(Checksum(gobolditalic.TTF), src.Checksum())
}

func (env *StoreTestEnviron) TestSourceOwnsCopy() {
	data := append([]byte(nil), goitalic.TTF...)
	src, err := env.store.GetOrCreate(data)
	env.Require().NoError(err)
	data[0] = 0xff
	env.Equal(goitalic.TTF[0], src.Bytes()[0], "expected store to keep its own copy")
}

func (env *StoreTestEnviron) TestAddIsIdempotent() {
	a, err := env.store.Add(gobold.TTF)
	env.Require().NoError(err)
	b, err := env.store.Add(gobold.TTF)
	env.Require().NoError(err, "re-adding identical bytes must not be an error")
	env.Same(a.Source, b.Source)
	env.Equal("go/b", a.Key)
	env.Equal("Go", a.Family)
	env.Equal(sniff.StyleBold, a.Style)
	env.Equal(a, b)
	env.Equal([]string{"go/b"}, env.store.Typefaces())
}

func (env *StoreTestEnviron) TestAddNamed() {
	_, err := env.store.AddNamed("  ", sniff.StyleBold, gobold.TTF)
	env.True(errors.Is(err, ErrInvalidArgument), "expected invalid argument, have %v", err)
	tf, err := env.store.AddNamed("Fancy", sniff.StyleItalic, goregular.TTF)
	env.Require().NoError(err)
	env.Equal("fancy/i", tf.Key)
	found, ok := env.store.ByTypeface(tf.Key)
	env.Require().True(ok)
	env.Same(tf.Source, found)
	// a different binary for the same typeface is reported, not dropped silently
	other, err := env.store.AddNamed("FANCY", sniff.StyleItalic, goitalic.TTF)
	env.True(errors.Is(err, ErrTypefaceBound), "expected typeface bound, have %v", err)
	env.Equal("fancy/i", other.Key)
	env.Same(tf.Source, other.Source, "expected first binding to be kept")
}

func (env *StoreTestEnviron) TestFirstRegistrationWins() {
	regular, err := env.store.GetOrCreate(goregular.TTF)
	env.Require().NoError(err)
	bold, err := env.store.GetOrCreate(gobold.TTF)
	env.Require().NoError(err)
	got, err := env.store.Register("x/r", regular)
	env.Require().NoError(err)
	env.Same(regular, got)
	got, err = env.store.Register("x/r", bold)
	env.True(errors.Is(err, ErrTypefaceBound))
	env.Same(regular, got, "expected first registration to be kept")
	got, err = env.store.Register("x/r", regular)
	env.NoError(err)
	env.Same(regular, got)
}

func (env *StoreTestEnviron) TestLookupByChecksum() {
	src, err := env.store.GetOrCreate(gobold.TTF)
	env.Require().NoError(err)
	found, ok := env.store.ByChecksum(Checksum(gobold.TTF))
	env.Require().True(ok)
	env.Same(src, found)
	_, ok = env.store.ByChecksum(Checksum(goregular.TTF))
	env.False(ok)
}

func (env *StoreTestEnviron) TestChecksumCollisionBumpsKey() {
	sum := Checksum(goregular.TTF)
	impostor := &FontSource{data: []byte("impostor"), name: "impostor"}
	impostor.assignChecksum(sum)
	env.store.byChecksum[sum] = impostor
	src, err := env.store.GetOrCreate(goregular.TTF)
	env.Require().NoError(err)
	env.NotSame(impostor, src)
	env.Equal(sum+1, src.Checksum(), "expected colliding source to move to next free key")
	again, err := env.store.GetOrCreate(goregular.TTF)
	env.Require().NoError(err)
	env.Same(src, again)
}

func (env *StoreTestEnviron) TestReset() {
	_, err := env.store.Add(goregular.TTF)
	env.Require().NoError(err)
	env.store.Reset()
	env.Zero(env.store.Len())
	_, ok := env.store.ByTypeface("go/r")
	env.False(ok)
}

// --- Plain tests -----------------------------------------------------------

func TestConcurrentGetOrCreate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	store := NewStore()
	const N = 32
	results := make([]*FontSource, N)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range N {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			data := goregular.TTF
			if i%2 == 1 {
				data = append([]byte(nil), goregular.TTF...)
			}
			src, err := store.GetOrCreate(data)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[i] = src
		}(i)
	}
	close(start)
	wg.Wait()
	for i := 1; i < N; i++ {
		if results[i] != results[0] {
			t.Fatalf("goroutine %d received a different font source instance", i)
		}
	}
	assert.Equal(t, 1, store.Len())
}

func TestHeuristicAdd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	store := NewStore(WithSuffixHeuristic(true))
	tf, err := store.Add(gobolditalic.TTF)
	require.NoError(t, err)
	assert.Equal(t, "go/bi", tf.Key)
	assert.Equal(t, "Go", tf.Family)
	assert.Equal(t, sniff.StyleBoldItalic, tf.Style)
	tf, err = store.Add(goregular.TTF)
	require.NoError(t, err)
	assert.Equal(t, "go/r", tf.Key)
}

func TestEmptyData(t *testing.T) {
	store := NewStore()
	_, err := store.GetOrCreate(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewFontSource(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = store.GetOrCreate([]byte("definitely not a font"))
	assert.Error(t, err)
	assert.Zero(t, store.Len())
}
