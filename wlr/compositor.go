package wlr

import (
	"fmt"

	"github.com/runlevelzero/waybind/ffi"
)

// Compositor wraps the global wl_compositor implementation, which lets
// clients allocate surfaces. Destroy-tracked.
type Compositor struct {
	resource
}

// NewCompositor registers the compositor global on the display.
func NewCompositor(d *Display, r *Renderer) (*Compositor, error) {
	rh := ffi.Null
	if r != nil {
		if err := r.guard(); err != nil {
			return nil, err
		}
		rh = r.h
	}
	h, err := d.lib.CompositorCreate(d.h, rh)
	if err != nil {
		return nil, fmt.Errorf("wlr: creating compositor: %w", err)
	}
	c := &Compositor{}
	if err := d.adopt(&c.resource, h, ffi.TypeCompositor, c, true); err != nil {
		return nil, err
	}
	return c, nil
}

// OnNewSurface subscribes cb to new client surfaces.
func (c *Compositor) OnNewSurface(cb func(*Surface)) (*Subscription, error) {
	return c.On("new_surface", func(ev Event) {
		cb(ev.Data.(*Surface))
	})
}

// DataDeviceManager wraps the global data device manager, which implements
// clipboard and drag-and-drop between clients. It declares no destroy signal;
// its lifetime follows the display's.
type DataDeviceManager struct {
	resource
}

// NewDataDeviceManager registers the data device manager global.
func NewDataDeviceManager(d *Display) (*DataDeviceManager, error) {
	h, err := d.lib.DataDeviceManagerCreate(d.h)
	if err != nil {
		return nil, fmt.Errorf("wlr: creating data device manager: %w", err)
	}
	m := &DataDeviceManager{}
	if err := d.adopt(&m.resource, h, ffi.TypeDataDeviceManager, m, false); err != nil {
		return nil, err
	}
	m.watch(&d.resource)
	return m, nil
}
