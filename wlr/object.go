// Package wlr is the managed face of the native compositor library. It wraps
// native structs in lifetime-tracked Resources, bridges native signals to Go
// callbacks, and keeps a per-display identity cache so the same native
// address always resolves to the same wrapper.
package wlr

import (
	"fmt"

	"github.com/runlevelzero/waybind/ffi"
	"github.com/runlevelzero/waybind/internal/logger"
)

// Resource is the managed facade for one native struct. At most one live
// Resource exists per native address; lookups during signal dispatch go
// through the display's object cache to preserve that identity.
type Resource interface {
	// Native returns the underlying handle. The handle is only meaningful
	// while Valid reports true.
	Native() ffi.Handle
	NativeType() ffi.Type
	// Valid reports whether the native object is still alive. A wrapper
	// turns invalid when the native destroy signal fires or when its owner
	// destroys it explicitly; every native-touching method fails with
	// ErrUseAfterDestroy afterwards.
	Valid() bool
	// Signal resolves one of the object's native signals by kind.
	Signal(kind string) (*Signal, error)
	// On subscribes cb to the named signal. On a destroy-tracked wrapper,
	// kind "destroy" registers a managed observer that runs after the
	// wrapper has been invalidated and evicted, so native reads inside the
	// callback fail with ErrUseAfterDestroy; see OnDestroy.
	On(kind string, cb Callback) (*Subscription, error)
	// OnDestroy registers fn to run when the wrapper is invalidated.
	OnDestroy(fn func(Resource)) (*Subscription, error)
}

type destroyObserver struct {
	fn      func(Resource)
	removed bool
}

// resource is the embedded base of every wrapper. It carries the handle,
// the validity flag, the teardown listener for destroy-tracked types, and
// the bookkeeping needed to release every native node on invalidation.
type resource struct {
	d     *Display
	h     ffi.Handle
	t     ffi.Type
	self  Resource
	valid bool

	tracked    bool
	teardown   *Listener
	listeners  []*Listener
	destroyObs []*destroyObserver
}

// adopt initializes r as the wrapper for the native object at h and inserts
// it into the display's object cache. For tracked types it subscribes the
// internal teardown listener to the native destroy signal; if that fails the
// cache entry is rolled back so no partially-constructed wrapper leaks a
// registered listener.
func (d *Display) adopt(r *resource, h ffi.Handle, t ffi.Type, self Resource, tracked bool) error {
	if h == ffi.Null {
		return fmt.Errorf("wlr: nil native handle for %s", t)
	}
	if prev, ok := d.cache.lookup(h); ok && prev.Valid() {
		return fmt.Errorf("wlr: wrapper for %s at %#x already exists", t, uintptr(h))
	}
	r.d, r.h, r.t, r.self, r.valid = d, h, t, self, true
	d.cache.insert(h, self)
	if !tracked {
		return nil
	}
	sig, err := r.Signal("destroy")
	if err != nil {
		d.cache.evict(h)
		r.valid = false
		return err
	}
	l := NewListener(func(Event) { r.invalidate() })
	if err := sig.Add(l); err != nil {
		d.cache.evict(h)
		r.valid = false
		return err
	}
	r.tracked = true
	r.teardown = l
	return nil
}

func (r *resource) Native() ffi.Handle { return r.h }
func (r *resource) NativeType() ffi.Type { return r.t }
func (r *resource) Valid() bool { return r.valid }

func (r *resource) lib() ffi.Lib { return r.d.lib }

// guard is the first statement of every native-touching method.
func (r *resource) guard() error {
	if !r.valid {
		return fmt.Errorf("%s at %#x: %w", r.t, uintptr(r.h), ErrUseAfterDestroy)
	}
	return nil
}

func (r *resource) Signal(kind string) (*Signal, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	sh := r.d.lib.SignalOf(r.h, r.t, kind)
	if sh == ffi.Null {
		return nil, fmt.Errorf("wlr: %s has no signal %q", r.t, kind)
	}
	return &Signal{
		owner:  r,
		handle: sh,
		kind:   kind,
		decode: payloadDecoderFor(r.t, kind),
	}, nil
}

func (r *resource) On(kind string, cb Callback) (*Subscription, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	if kind == "destroy" && r.tracked {
		self := r.self
		return r.addDestroyObserver(func(res Resource) {
			cb(Event{Source: self, Kind: "destroy"})
		}), nil
	}
	sig, err := r.Signal(kind)
	if err != nil {
		return nil, err
	}
	l := NewListener(cb)
	if err := sig.Add(l); err != nil {
		return nil, err
	}
	return &Subscription{remove: func() { sig.Remove(l) }}, nil
}

func (r *resource) OnDestroy(fn func(Resource)) (*Subscription, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	if !r.tracked {
		return nil, fmt.Errorf("wlr: %s is not destroy-tracked", r.t)
	}
	return r.addDestroyObserver(fn), nil
}

func (r *resource) addDestroyObserver(fn func(Resource)) *Subscription {
	obs := &destroyObserver{fn: fn}
	r.destroyObs = append(r.destroyObs, obs)
	return &Subscription{remove: func() { obs.removed = true }}
}

func (r *resource) forget(l *Listener) {
	for i, cand := range r.listeners {
		if cand == l {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// invalidate is the teardown path, run when the native destroy signal fires
// or when the managed owner destroys the object. Order matters: the validity
// flag flips first, then the cache entry goes so no lookup can resolve the
// dead address, then every owned listener node is unlinked and freed, and
// only then do application destroy observers run.
func (r *resource) invalidate() {
	if !r.valid {
		return
	}
	r.valid = false
	r.d.cache.evict(r.h)
	// snapshot first: Close drops each listener from r.listeners
	ls := r.listeners
	r.listeners = nil
	for _, l := range ls {
		l.Close()
	}
	if r.teardown != nil {
		r.teardown.Close()
		r.teardown = nil
	}
	obs := r.destroyObs
	r.destroyObs = nil
	for _, o := range obs {
		if o.removed {
			continue
		}
		notifyDestroy(o, r.self, r.t)
	}
}

func notifyDestroy(o *destroyObserver, self Resource, t ffi.Type) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("destroy observer panicked", "source", t.String(), "panic", rec)
		}
	}()
	o.fn(self)
}

// watch invalidates child when parent goes away. Used for wrappers whose
// native struct has no destroy signal of its own and whose lifetime is owned
// by a parent object (e.g. a toplevel inside its xdg surface).
func (r *resource) watch(parent *resource) {
	parent.addDestroyObserver(func(Resource) { r.invalidate() })
}
