package wlr

import (
	"fmt"

	"github.com/runlevelzero/waybind/ffi"
)

// factoryFunc builds a wrapper for a native object first seen inside a
// signal payload. The wrapper observes the native allocation; it does not
// own it.
type factoryFunc func(*Display, ffi.Handle) (Resource, error)

// factories is populated by the wrapper files' init functions.
var factories = map[ffi.Type]factoryFunc{}

func registerFactory(t ffi.Type, f factoryFunc) {
	factories[t] = f
}

// objectCache is the identity map from native address to live wrapper. It
// belongs to one Display and lives exactly as long as the display does.
// Entries leave the map only on the teardown path, never proactively, so a
// hit is always a wrapper whose native object was alive at the last
// dispatch. All mutation happens on the dispatch goroutine; there is no
// internal locking, matching the native library's thread affinity.
type objectCache struct {
	d       *Display
	entries map[ffi.Handle]Resource
}

func newObjectCache(d *Display) *objectCache {
	return &objectCache{d: d, entries: make(map[ffi.Handle]Resource)}
}

func (c *objectCache) lookup(h ffi.Handle) (Resource, bool) {
	r, ok := c.entries[h]
	return r, ok
}

func (c *objectCache) insert(h ffi.Handle, r Resource) {
	c.entries[h] = r
}

// getOrCreate returns the live wrapper for h, building one through the
// factory table when none exists. The validity check and the insert are one
// step relative to eviction: both run on the dispatch goroutine, so a
// lookup can never observe a wrapper mid-teardown.
func (c *objectCache) getOrCreate(h ffi.Handle, t ffi.Type) (Resource, error) {
	if h == ffi.Null {
		return nil, fmt.Errorf("wlr: nil native handle for %s", t)
	}
	if r, ok := c.entries[h]; ok && r.Valid() {
		return r, nil
	}
	f, ok := factories[t]
	if !ok {
		return nil, &UnknownTypeError{Type: t}
	}
	return f(c.d, h) // adopt inserts the new wrapper
}

func (c *objectCache) evict(h ffi.Handle) {
	delete(c.entries, h)
}

// purge invalidates every remaining wrapper. Called on display teardown so
// no wrapper outlives the native display it hangs off.
func (c *objectCache) purge() {
	handles := make([]ffi.Handle, 0, len(c.entries))
	for h := range c.entries {
		handles = append(handles, h)
	}
	for _, h := range handles {
		if r, ok := c.entries[h]; ok {
			if rr, ok := r.(interface{ invalidate() }); ok {
				rr.invalidate()
			}
		}
	}
}

func (c *objectCache) size() int { return len(c.entries) }
