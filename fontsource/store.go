package fontsource

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/npillmayer/fontres/sniff"
)

// Store keeps font sources unique by content. It is safe for concurrent use.
//
// The canonical index maps checksums to font sources. A secondary index maps
// typeface keys to checksums; many typeface keys may share one source, e.g.
// a bold request satisfied by a regular binary.
type Store struct {
	mu         sync.RWMutex
	byChecksum map[ChecksumKey]*FontSource
	byTypeface map[string]ChecksumKey
	heuristic  bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithSuffixHeuristic makes Add derive family and style from the full font
// name (see StripStyleSuffix) instead of from the font's tables. This is meant
// for setups without a custom font resolver only.
func WithSuffixHeuristic(enable bool) StoreOption {
	return func(s *Store) {
		s.heuristic = enable
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	s.clear()
	return s
}

func (s *Store) clear() {
	s.byChecksum = make(map[ChecksumKey]*FontSource)
	s.byTypeface = make(map[string]ChecksumKey)
}

// GetOrCreate returns the font source for a font binary. If a source with
// identical content is already stored, this instance is returned; otherwise
// a new source is created and stored. At most one source is created per
// distinct content, even for concurrent calls.
func (s *Store) GetOrCreate(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty font data", ErrInvalidArgument)
	}
	sum := Checksum(data)
	s.mu.RLock()
	src, _ := s.probe(sum, data)
	s.mu.RUnlock()
	if src != nil {
		return src, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	src, slot := s.probe(sum, data) // re-check: someone else may have been faster
	if src != nil {
		return src, nil
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	src, err := newFontSource(buf)
	if err != nil {
		return nil, err
	}
	if slot != sum {
		tracer().Infof("checksum collision for font %q, bumped key %016x -> %016x", src.Name(), sum, slot)
	}
	src.assignChecksum(slot)
	s.byChecksum[slot] = src
	tracer().Debugf("stored font source %s", src)
	return src, nil
}

// probe looks for a source with content data, starting at key sum. It returns
// either the source found or the first free key. Callers must hold the lock.
func (s *Store) probe(sum ChecksumKey, data []byte) (*FontSource, ChecksumKey) {
	for key := sum; ; key++ {
		src, ok := s.byChecksum[key]
		if !ok {
			return nil, key
		}
		if bytes.Equal(src.data, data) {
			return src, key
		}
	}
}

// Typeface is the binding of a font source to a typeface key.
type Typeface struct {
	Key    string
	Family string
	Style  sniff.Style
	Source *FontSource
}

// Add stores a font binary and registers it under a typeface key derived
// from the font's own metadata. Adding identical bytes again is a no-op and
// returns the same binding.
//
// Family name and style are taken from tables 'name' and 'OS/2', unless the
// store has been configured WithSuffixHeuristic. In that case the full font name
// is split into family and style suffix, and a recognized suffix overrides
// the style bits of the font.
//
// If the typeface key is already bound to a different binary, the existing
// binding is returned together with an error matching ErrTypefaceBound.
func (s *Store) Add(data []byte) (Typeface, error) {
	src, err := s.GetOrCreate(data)
	if err != nil {
		return Typeface{}, err
	}
	family, style := src.Family(), src.Style()
	if s.heuristic {
		family, style = HeuristicFamily(src)
	}
	if family == "" {
		return Typeface{}, fmt.Errorf("%w: font %s has no family name", ErrInvalidArgument, src)
	}
	return s.bind(family, style, src)
}

// HeuristicFamily splits the full name of src into family and style. If
// the name has no recognizable style suffix, the full name is taken as
// family name and the style bits of the font are kept.
func HeuristicFamily(src *FontSource) (string, sniff.Style) {
	if family, style, ok := StripStyleSuffix(src.Name()); ok {
		if style != src.Style() {
			tracer().Infof("font %q: name suffix overrides style %s with %s", src.Name(), src.Style(), style)
		}
		return family, style
	}
	return src.Name(), src.Style()
}

// AddNamed stores a font binary under an explicit family name and style.
// It fails with ErrInvalidArgument if family is empty, and with
// ErrTypefaceBound as described for Add.
func (s *Store) AddNamed(family string, style sniff.Style, data []byte) (Typeface, error) {
	if strings.TrimSpace(family) == "" {
		return Typeface{}, fmt.Errorf("%w: empty family name", ErrInvalidArgument)
	}
	src, err := s.GetOrCreate(data)
	if err != nil {
		return Typeface{}, err
	}
	return s.bind(family, style, src)
}

func (s *Store) bind(family string, style sniff.Style, src *FontSource) (Typeface, error) {
	tf := Typeface{Key: KeyFor(family, style), Family: family, Style: style}
	var err error
	tf.Source, err = s.register(tf.Key, src)
	return tf, err
}

// Register makes src retrievable by a typeface key. If the key is already
// bound to a different binary, the existing source is returned together
// with an error matching ErrTypefaceBound. Sources not created by s are
// merged into s by content first.
func (s *Store) Register(key string, src *FontSource) (*FontSource, error) {
	canonical, err := s.GetOrCreate(src.Bytes())
	if err != nil {
		return nil, err
	}
	return s.register(key, canonical)
}

func (s *Store) register(key string, src *FontSource) (*FontSource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sum, ok := s.byTypeface[key]; ok {
		existing := s.byChecksum[sum]
		if existing != src {
			tracer().Infof("typeface %s already bound to %s, ignoring %s", key, existing, src)
			return existing, fmt.Errorf("%w: %s is %s", ErrTypefaceBound, key, existing)
		}
		return existing, nil
	}
	s.byTypeface[key] = src.Checksum()
	tracer().Debugf("typeface %s -> %s", key, src)
	return src, nil
}

// ByTypeface returns the source registered for a typeface key.
func (s *Store) ByTypeface(key string) (*FontSource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum, ok := s.byTypeface[key]
	if !ok {
		return nil, false
	}
	src, ok := s.byChecksum[sum]
	return src, ok
}

// ByChecksum returns the source stored under a content key.
func (s *Store) ByChecksum(sum ChecksumKey) (*FontSource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, ok := s.byChecksum[sum]
	return src, ok
}

// Len returns the number of distinct font binaries stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byChecksum)
}

// Typefaces returns all typeface keys, sorted.
func (s *Store) Typefaces() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.byTypeface))
	for k := range s.byTypeface {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	slices.Sort(keys)
	return keys
}

// Sources returns all stored sources, ordered by name.
func (s *Store) Sources() []*FontSource {
	s.mu.RLock()
	srcs := make([]*FontSource, 0, len(s.byChecksum))
	for _, src := range s.byChecksum {
		srcs = append(srcs, src)
	}
	s.mu.RUnlock()
	slices.SortFunc(srcs, func(a, b *FontSource) int {
		if c := strings.Compare(a.Name(), b.Name()); c != 0 {
			return c
		}
		return cmp.Compare(a.Checksum(), b.Checksum())
	})
	return srcs
}

// Reset drops all entries. Sources handed out before remain valid.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
}
