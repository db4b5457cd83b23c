package fontres

import (
	"fmt"
	"io"

	"github.com/npillmayer/fontres/fontdir"
	"github.com/npillmayer/fontres/fontfactory"
	"github.com/npillmayer/fontres/fontsource"
	"github.com/npillmayer/fontres/internal/fontload"
	"github.com/npillmayer/fontres/otquery"
	"github.com/npillmayer/fontres/platform"
	"github.com/npillmayer/fontres/sniff"
)

// Library resolves typefaces for a drawing layer. A Library is intended to
// live for the lifetime of the process and is safe for concurrent use.
type Library struct {
	cache     *fontfactory.Cache
	loader    platform.Loader
	index     func() *fontdir.Index
	platform  *PlatformResolver
	resolver  FontResolver
	heuristic bool
}

type scanMode int

const (
	scanEager scanMode = iota
	scanLazy
	scanNone
)

type config struct {
	loader   platform.Loader
	io       fontdir.IO
	dirs     []string
	scan     scanMode
	custom   []FontResolver
	fallback []byte
}

// Option configures a Library.
type Option func(*config)

// WithLoader sets the platform loader. The default is a platform.SFNTLoader
// on top of the font directory index.
func WithLoader(loader platform.Loader) Option {
	return func(c *config) {
		c.loader = loader
	}
}

// WithSearchPaths replaces the default font search paths by dirs.
func WithSearchPaths(dirs ...string) Option {
	return func(c *config) {
		c.dirs = append(c.dirs, dirs...)
	}
}

// WithIO sets the I/O used for locating and reading font directories.
func WithIO(io fontdir.IO) Option {
	return func(c *config) {
		c.io = io
	}
}

// WithoutScan disables scanning font directories.
func WithoutScan() Option {
	return func(c *config) {
		c.scan = scanNone
	}
}

// WithLazyScan defers scanning font directories to the first resolution
// which needs the index. The default is to scan in New.
func WithLazyScan() Option {
	return func(c *config) {
		c.scan = scanLazy
	}
}

// WithCustomResolver adds a resolver which is asked before the platform.
// Configuring a custom resolver turns off deriving family names from
// style suffixes of font names, see AddFont.
func WithCustomResolver(r FontResolver) Option {
	return func(c *config) {
		c.custom = append(c.custom, r)
	}
}

// WithDefaultFont sets the font binary substituted if no binary can be
// found for a typeface. The default is the Go Regular font.
func WithDefaultFont(data []byte) Option {
	return func(c *config) {
		c.fallback = data
	}
}

// New creates a library. Unless configured otherwise, it scans the font
// directories of the host system before returning.
func New(opts ...Option) (*Library, error) {
	cfg := &config{io: fontdir.SystemIO}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.fallback == nil {
		cfg.fallback = fontload.FallbackFont()
	}
	if _, err := otquery.Parse(cfg.fallback); err != nil {
		return nil, fmt.Errorf("invalid default font: %w", err)
	}
	lib := &Library{heuristic: len(cfg.custom) == 0}
	lib.cache = fontfactory.New(fontsource.NewStore(fontsource.WithSuffixHeuristic(lib.heuristic)))
	if cfg.loader == nil {
		cfg.loader = platform.NewSFNTLoader(func() *fontdir.Index { return lib.index() })
	}
	lib.loader = cfg.loader
	lib.index = cfg.indexer()
	lib.platform = NewPlatformResolver(lib.loader, lib.cache, lib.index, cfg.fallback)
	chain := make(Chain, 0, len(cfg.custom)+1)
	chain = append(chain, cfg.custom...)
	lib.resolver = append(chain, lib.platform)
	if cfg.scan == scanEager {
		ix := lib.index()
		tracer().Infof("font index holds %d fonts of %d families", ix.Len(), len(ix.Families()))
	}
	return lib, nil
}

// indexer returns a function providing the font directory index, scanning
// the search paths once. The platform loader reads family names.
func (cfg *config) indexer() func() *fontdir.Index {
	if cfg.scan == scanNone {
		empty := fontdir.NewIndex()
		return func() *fontdir.Index { return empty }
	}
	roots := func() []fontdir.Root {
		if len(cfg.dirs) == 0 {
			return fontdir.SearchPaths(cfg.io)
		}
		r := make([]fontdir.Root, len(cfg.dirs))
		for i, dir := range cfg.dirs {
			r[i] = fontdir.DirRoot(cfg.io, dir)
		}
		return r
	}
	return fontdir.Lazy(fontdir.NewScanner(cfg.loader), roots)
}

// AddFont registers a font binary under the family name and style recorded
// in the font. It returns the typeface key. Adding the same binary again
// is a no-op.
//
// Without a custom resolver, family name and style are derived from the
// full font name instead: a trailing "Bold", "Italic", "Bold Italic" or
// "Regular" is stripped and determines the style. This is a heuristic and
// fails for fonts which are not named in English or have a family name
// ending in one of these words.
//
// If the typeface key is already bound to a different binary, e.g. because
// the typeface has been resolved before with a simulated style, the font is
// not added. AddFont then returns the key together with an error matching
// fontsource.ErrTypefaceBound.
func (lib *Library) AddFont(data []byte) (string, error) {
	tf, err := lib.cache.Store().Add(data)
	if err != nil {
		return tf.Key, err
	}
	return tf.Key, lib.register(tf)
}

// AddFontReader registers a font binary read from r, see AddFont.
func (lib *Library) AddFontReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("cannot read font: %w", err)
	}
	return lib.AddFont(data)
}

// AddFontFile registers a font file, see AddFont.
func (lib *Library) AddFontFile(path string) (string, error) {
	f, err := fontload.LoadOpenTypeFont(path)
	if err != nil {
		return "", fmt.Errorf("cannot load font file %s: %w", path, err)
	}
	return lib.AddFont(f.Binary)
}

// AddNamedFont registers a font binary under an explicit family name and
// style. It fails with fontsource.ErrInvalidArgument if family is empty,
// and with fontsource.ErrTypefaceBound as described for AddFont.
func (lib *Library) AddNamedFont(family string, style sniff.Style, data []byte) (string, error) {
	tf, err := lib.cache.Store().AddNamed(family, style, data)
	if err != nil {
		return tf.Key, err
	}
	return tf.Key, lib.register(tf)
}

// register makes a font known to the platform loader, if it has a private
// font collection.
func (lib *Library) register(tf fontsource.Typeface) error {
	if r, ok := lib.loader.(platform.Registrar); ok {
		return r.Register(tf.Family, tf.Style, tf.Source.Bytes())
	}
	return nil
}

// ResolveTypeface resolves a typeface, asking custom resolvers first and the
// platform last. If no resolver knows the typeface, the result is nil
// without an error.
func (lib *Library) ResolveTypeface(family string, bold, italic bool) (*fontfactory.ResolverInfo, error) {
	return lib.resolver.ResolveTypeface(family, bold, italic)
}

// TryCreateFont creates a platform font in a given size, together with its
// font source. The result is not cached. If the platform does not know the
// family, all return values are nil.
func (lib *Library) TryCreateFont(family string, size float64, style sniff.Style) (
	platform.Handle, *fontsource.FontSource, error) {
	//
	return lib.platform.TryCreateFont(family, size, style)
}

// Source returns the font source registered for a typeface key.
func (lib *Library) Source(key string) (*fontsource.FontSource, bool) {
	return lib.cache.Store().ByTypeface(key)
}

// Sources returns all font sources in use.
func (lib *Library) Sources() []*fontsource.FontSource {
	return lib.cache.Store().Sources()
}

// Index returns the font directory index, scanning font directories if
// this has not happened yet.
func (lib *Library) Index() *fontdir.Index {
	return lib.index()
}

// Cache returns the resolution cache of lib.
func (lib *Library) Cache() *fontfactory.Cache {
	return lib.cache
}

// Close drops all cached resolution results and font sources, and removes
// added fonts from the private collection of the platform loader.
func (lib *Library) Close() error {
	lib.cache.Reset()
	if r, ok := lib.loader.(platform.Registrar); ok {
		r.Reset()
	}
	return nil
}
