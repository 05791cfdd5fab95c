package wlr

import (
	"fmt"

	"github.com/runlevelzero/waybind/ffi"
)

// Layer is the stacking layer a layer surface asked for.
type Layer uint32

const (
	LayerBackground Layer = iota
	LayerBottom
	LayerTop
	LayerOverlay
)

func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerBottom:
		return "bottom"
	case LayerTop:
		return "top"
	case LayerOverlay:
		return "overlay"
	}
	return "unknown"
}

// LayerShell wraps the global layer-shell protocol implementation, used by
// panels, bars and wallpapers. Destroy-tracked.
type LayerShell struct {
	resource
}

// NewLayerShell registers the layer-shell global on the display.
func NewLayerShell(d *Display) (*LayerShell, error) {
	h, err := d.lib.LayerShellCreate(d.h)
	if err != nil {
		return nil, fmt.Errorf("wlr: creating layer shell: %w", err)
	}
	s := &LayerShell{}
	if err := d.adopt(&s.resource, h, ffi.TypeLayerShell, s, true); err != nil {
		return nil, err
	}
	return s, nil
}

// OnNewSurface subscribes cb to new layer surfaces from clients.
func (s *LayerShell) OnNewSurface(cb func(*LayerSurface)) (*Subscription, error) {
	return s.On("new_surface", func(ev Event) {
		cb(ev.Data.(*LayerSurface))
	})
}

// LayerSurface wraps one client layer surface. Destroy-tracked.
type LayerSurface struct {
	resource
}

// Namespace returns the client-chosen namespace string ("panel", "wallpaper").
func (s *LayerSurface) Namespace() (string, error) {
	if err := s.guard(); err != nil {
		return "", err
	}
	return s.lib().LayerSurfaceNamespace(s.h), nil
}

// Layer returns the stacking layer the surface asked for.
func (s *LayerSurface) Layer() (Layer, error) {
	if err := s.guard(); err != nil {
		return LayerBackground, err
	}
	return Layer(s.lib().LayerSurfaceLayer(s.h)), nil
}

// Surface returns the plain surface underneath the layer surface.
func (s *LayerSurface) Surface() (*Surface, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	h := s.lib().LayerSurfaceSurface(s.h)
	r, err := s.d.cache.getOrCreate(h, ffi.TypeSurface)
	if err != nil {
		return nil, err
	}
	return r.(*Surface), nil
}

// OnMap subscribes cb to the surface becoming ready to display.
func (s *LayerSurface) OnMap(cb func(*LayerSurface)) (*Subscription, error) {
	return s.On("map", func(ev Event) {
		cb(ev.Source.(*LayerSurface))
	})
}
