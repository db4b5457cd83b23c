/*
Package fontfactory holds the results of typeface resolution.

A Cache maps typeface keys to resolver results and owns the font source
store the results refer to. Caches are explicitly constructed; a library
keeps one for the lifetime of the process, tests create and reset their own.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontfactory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/npillmayer/fontres/fontsource"
	"github.com/npillmayer/fontres/platform"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// ResolverInfo is the result of resolving a typeface.
//
// Handle is borrowed from the platform loader. Clients may use it for
// measuring and drawing, but must use SimulateBold and SimulateItalic to
// apply synthetic styling when rendering with Source.
type ResolverInfo struct {
	TypefaceKey    string
	SimulateBold   bool
	SimulateItalic bool
	Handle         platform.Handle
	Source         *fontsource.FontSource
}

func (info *ResolverInfo) String() string {
	if info == nil {
		return "<no typeface>"
	}
	return fmt.Sprintf("%s[%v, simulate bold=%v italic=%v]", info.TypefaceKey, info.Source,
		info.SimulateBold, info.SimulateItalic)
}

// Cache maps typeface keys to resolver results. It is safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	infos map[string]*ResolverInfo
	store *fontsource.Store
}

// New creates an empty cache on top of store. If store is nil, a store
// without the suffix heuristic is created.
func New(store *fontsource.Store) *Cache {
	if store == nil {
		store = fontsource.NewStore()
	}
	return &Cache{
		infos: make(map[string]*ResolverInfo),
		store: store,
	}
}

// Store returns the font source store of c.
func (c *Cache) Store() *fontsource.Store {
	return c.store
}

// Lookup returns the resolver result cached for a typeface key.
func (c *Cache) Lookup(key string) (*ResolverInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	info, ok := c.infos[key]
	return info, ok
}

// LoadOrStore caches info under info.TypefaceKey, if no result has been
// cached for this key yet. Otherwise the cached result is returned and
// loaded is true; info is discarded.
func (c *Cache) LoadOrStore(info *ResolverInfo) (actual *ResolverInfo, loaded bool) {
	if info == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.infos[info.TypefaceKey]; ok {
		tracer().Debugf("typeface %s already resolved by another caller", info.TypefaceKey)
		return cached, true
	}
	c.infos[info.TypefaceKey] = info
	return info, false
}

// Len returns the number of cached resolver results.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.infos)
}

// Keys returns the cached typeface keys in sorted order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.infos))
	for k := range c.infos {
		keys = append(keys, k)
	}
	c.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Reset drops all resolver results and all font sources.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.infos = make(map[string]*ResolverInfo)
	c.mu.Unlock()
	c.store.Reset()
}
