package fontres

import (
	"errors"
	"fmt"

	"github.com/npillmayer/fontres/fontdir"
	"github.com/npillmayer/fontres/fontfactory"
	"github.com/npillmayer/fontres/fontsource"
	"github.com/npillmayer/fontres/platform"
	"github.com/npillmayer/fontres/sniff"
)

// FontResolver resolves typefaces. A nil result without an error means that
// the resolver does not know the typeface, and the next resolver in a
// Chain should be asked.
type FontResolver interface {
	ResolveTypeface(family string, bold, italic bool) (*fontfactory.ResolverInfo, error)
}

// ResolverFunc adapts a function to a FontResolver.
type ResolverFunc func(family string, bold, italic bool) (*fontfactory.ResolverInfo, error)

// ResolveTypeface calls f.
func (f ResolverFunc) ResolveTypeface(family string, bold, italic bool) (*fontfactory.ResolverInfo, error) {
	return f(family, bold, italic)
}

// Chain asks a sequence of resolvers, in order, until one of them resolves a
// typeface. An error stops the chain.
type Chain []FontResolver

// ResolveTypeface returns the first non-nil result of the resolvers of c.
func (c Chain) ResolveTypeface(family string, bold, italic bool) (*fontfactory.ResolverInfo, error) {
	for _, r := range c {
		info, err := r.ResolveTypeface(family, bold, italic)
		if err != nil {
			return nil, err
		}
		if info != nil {
			return info, nil
		}
	}
	return nil, nil
}

// PlatformResolver resolves typefaces with the help of a platform loader.
// Results are kept in a cache.
type PlatformResolver struct {
	loader   platform.Loader
	cache    *fontfactory.Cache
	index    func() *fontdir.Index
	fallback []byte
}

// NewPlatformResolver creates a resolver. index provides the font directory
// index used to locate font binaries the platform does not hand out, and may
// be nil. fallback is the font binary to use if nothing else can be found.
func NewPlatformResolver(loader platform.Loader, cache *fontfactory.Cache,
	index func() *fontdir.Index, fallback []byte) *PlatformResolver {
	//
	if index == nil {
		empty := fontdir.NewIndex()
		index = func() *fontdir.Index { return empty }
	}
	return &PlatformResolver{
		loader:   loader,
		cache:    cache,
		index:    index,
		fallback: fallback,
	}
}

// ResolveTypeface resolves a typeface to a platform font and a font source.
// Results are cached by typeface key; resolving the same typeface again
// returns the identical result without asking the platform.
//
// If the platform does not know the family, the result is nil without an error.
func (r *PlatformResolver) ResolveTypeface(family string, bold, italic bool) (*fontfactory.ResolverInfo, error) {
	key := fontsource.TypefaceKey(family, bold, italic)
	if info, ok := r.cache.Lookup(key); ok {
		return info, nil
	}
	style := sniff.StyleFrom(bold, italic)
	h, err := r.createFont(family, style, NominalSize)
	if err != nil || h == nil {
		return nil, err
	}
	src, err := r.sourceFor(key, family, style, h)
	if err != nil {
		return nil, err
	}
	info := &fontfactory.ResolverInfo{
		TypefaceKey:    key,
		SimulateBold:   h.Style().IsBold() && !src.Style().IsBold(),
		SimulateItalic: h.Style().IsItalic() && !src.Style().IsItalic(),
		Handle:         h,
		Source:         src,
	}
	info, _ = r.cache.LoadOrStore(info)
	tracer().Debugf("resolved typeface %v", info)
	return info, nil
}

// TryCreateFont creates a platform font and locates its font source, without
// caching a resolution result. If the platform does not know the family, all
// return values are nil.
func (r *PlatformResolver) TryCreateFont(family string, size float64, style sniff.Style) (
	platform.Handle, *fontsource.FontSource, error) {
	//
	h, err := r.createFont(family, style, size)
	if err != nil || h == nil {
		return nil, nil, err
	}
	store := r.cache.Store()
	if src, ok := store.ByTypeface(fontsource.KeyFor(family, style)); ok {
		return h, src, nil
	}
	src, err := store.GetOrCreate(r.extract(family, style, h))
	if err != nil {
		return nil, nil, err
	}
	return h, src, nil
}

func (r *PlatformResolver) createFont(family string, style sniff.Style, size float64) (platform.Handle, error) {
	h, err := r.loader.CreateFont(family, style, size)
	if errors.Is(err, platform.ErrNoSuchFont) {
		tracer().Debugf("platform has no font %s %s", family, style)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot create platform font %s %s: %w", family, style, err)
	}
	return h, nil
}

// sourceFor returns the font source registered for a typeface key. If there
// is none, it extracts the binary for h and registers it.
func (r *PlatformResolver) sourceFor(key, family string, style sniff.Style, h platform.Handle) (
	*fontsource.FontSource, error) {
	//
	store := r.cache.Store()
	if src, ok := store.ByTypeface(key); ok {
		return src, nil
	}
	src, err := store.GetOrCreate(r.extract(family, style, h))
	if err != nil {
		return nil, err
	}
	src, err = store.Register(key, src)
	if errors.Is(err, fontsource.ErrTypefaceBound) {
		// another caller bound the typeface first; its binary wins
		return src, nil
	}
	return src, err
}

// extract finds the font binary for a platform font: from the platform
// itself, from the font directory index, or, if all else fails, the
// fallback font.
func (r *PlatformResolver) extract(family string, style sniff.Style, h platform.Handle) []byte {
	if data, ok := h.Bytes(); ok {
		return data
	}
	if e, ok := r.index().Lookup(family, style); ok {
		data, err := e.ReadFont()
		if err == nil {
			return data
		}
		tracer().Errorf("cannot read font file %s: %v", e.Path, err)
	}
	tracer().Errorf("font binary for %s %s not found, substituting bundled default font", family, style)
	return r.fallback
}
