package wlr

import (
	"fmt"

	"github.com/runlevelzero/waybind/ffi"
)

// Backend wraps the native backend: the object that discovers outputs and
// input devices. Destroy-tracked; the native library destroys it on display
// teardown or explicitly via Destroy.
type Backend struct {
	resource
	renderer *Renderer
}

// AutocreateBackend picks and creates the best backend for the current
// environment (drm, wayland-nested, headless, ...).
func AutocreateBackend(d *Display) (*Backend, error) {
	h, err := d.lib.BackendAutocreate(d.h)
	if err != nil {
		return nil, fmt.Errorf("wlr: autocreating backend: %w", err)
	}
	b := &Backend{}
	if err := d.adopt(&b.resource, h, ffi.TypeBackend, b, true); err != nil {
		d.lib.BackendDestroy(h)
		return nil, err
	}
	return b, nil
}

// Start makes the backend begin advertising hardware. New outputs and input
// devices arrive through the new_output and new_input signals during
// subsequent dispatch.
func (b *Backend) Start() error {
	if err := b.guard(); err != nil {
		return err
	}
	if err := b.lib().BackendStart(b.h); err != nil {
		return fmt.Errorf("wlr: starting backend: %w", err)
	}
	return nil
}

// Destroy releases the native backend. Invalidation of this wrapper happens
// through the backend's own destroy signal.
func (b *Backend) Destroy() error {
	if err := b.guard(); err != nil {
		return err
	}
	b.lib().BackendDestroy(b.h)
	return nil
}

// Renderer returns the backend's renderer, created lazily by the native
// library.
func (b *Backend) Renderer() (*Renderer, error) {
	if err := b.guard(); err != nil {
		return nil, err
	}
	if b.renderer != nil && b.renderer.Valid() {
		return b.renderer, nil
	}
	h := b.lib().BackendRenderer(b.h)
	if h == ffi.Null {
		return nil, fmt.Errorf("wlr: backend has no renderer")
	}
	r := &Renderer{}
	if err := b.d.adopt(&r.resource, h, ffi.TypeRenderer, r, false); err != nil {
		return nil, err
	}
	r.watch(&b.resource)
	b.renderer = r
	return r, nil
}

// OnNewOutput subscribes cb to output arrival.
func (b *Backend) OnNewOutput(cb func(*Output)) (*Subscription, error) {
	return b.On("new_output", func(ev Event) {
		cb(ev.Data.(*Output))
	})
}

// OnNewInput subscribes cb to input device arrival.
func (b *Backend) OnNewInput(cb func(*InputDevice)) (*Subscription, error) {
	return b.On("new_input", func(ev Event) {
		cb(ev.Data.(*InputDevice))
	})
}

// Renderer wraps the native renderer. Its lifetime follows the backend's.
type Renderer struct {
	resource
}

// InitDisplay sets up the wl_shm and related globals the renderer needs.
func (r *Renderer) InitDisplay(d *Display) error {
	if err := r.guard(); err != nil {
		return err
	}
	r.lib().RendererInitDisplay(r.h, d.h)
	return nil
}

func init() {
	registerFactory(ffi.TypeOutput, func(d *Display, h ffi.Handle) (Resource, error) {
		o := &Output{}
		if err := d.adopt(&o.resource, h, ffi.TypeOutput, o, true); err != nil {
			return nil, err
		}
		return o, nil
	})
	registerFactory(ffi.TypeInputDevice, func(d *Display, h ffi.Handle) (Resource, error) {
		dev := &InputDevice{}
		if err := d.adopt(&dev.resource, h, ffi.TypeInputDevice, dev, true); err != nil {
			return nil, err
		}
		return dev, nil
	})
	registerFactory(ffi.TypeKeyboard, func(d *Display, h ffi.Handle) (Resource, error) {
		k := &Keyboard{}
		if err := d.adopt(&k.resource, h, ffi.TypeKeyboard, k, true); err != nil {
			return nil, err
		}
		return k, nil
	})
	registerFactory(ffi.TypeSurface, func(d *Display, h ffi.Handle) (Resource, error) {
		s := &Surface{}
		if err := d.adopt(&s.resource, h, ffi.TypeSurface, s, true); err != nil {
			return nil, err
		}
		return s, nil
	})
	registerFactory(ffi.TypeXDGSurface, func(d *Display, h ffi.Handle) (Resource, error) {
		s := &XDGSurface{}
		if err := d.adopt(&s.resource, h, ffi.TypeXDGSurface, s, true); err != nil {
			return nil, err
		}
		return s, nil
	})
	registerFactory(ffi.TypeLayerSurface, func(d *Display, h ffi.Handle) (Resource, error) {
		s := &LayerSurface{}
		if err := d.adopt(&s.resource, h, ffi.TypeLayerSurface, s, true); err != nil {
			return nil, err
		}
		return s, nil
	})
}
