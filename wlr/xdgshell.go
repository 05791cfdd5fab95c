package wlr

import (
	"fmt"

	"github.com/runlevelzero/waybind/ffi"
)

// XDGSurfaceRole is the role a client assigned to its xdg surface.
type XDGSurfaceRole uint32

const (
	RoleNone XDGSurfaceRole = iota
	RoleToplevel
	RolePopup
)

func (r XDGSurfaceRole) String() string {
	switch r {
	case RoleToplevel:
		return "toplevel"
	case RolePopup:
		return "popup"
	}
	return "none"
}

// ToplevelMoveRequest is the payload of a toplevel's request_move signal.
type ToplevelMoveRequest struct {
	Surface *XDGSurface
	Serial  uint32
}

// ToplevelResizeRequest is the payload of a toplevel's request_resize signal.
type ToplevelResizeRequest struct {
	Surface *XDGSurface
	Serial  uint32
	Edges   Edges
}

// XDGShell wraps the global xdg-shell protocol implementation. Destroy-tracked;
// the native library destroys it with the display.
type XDGShell struct {
	resource
}

// NewXDGShell registers the xdg-shell global on the display.
func NewXDGShell(d *Display) (*XDGShell, error) {
	h, err := d.lib.XDGShellCreate(d.h)
	if err != nil {
		return nil, fmt.Errorf("wlr: creating xdg shell: %w", err)
	}
	s := &XDGShell{}
	if err := d.adopt(&s.resource, h, ffi.TypeXDGShell, s, true); err != nil {
		return nil, err
	}
	return s, nil
}

// OnNewSurface subscribes cb to new xdg surfaces from clients.
func (s *XDGShell) OnNewSurface(cb func(*XDGSurface)) (*Subscription, error) {
	return s.On("new_surface", func(ev Event) {
		cb(ev.Data.(*XDGSurface))
	})
}

// XDGSurface wraps one client xdg surface. Destroy-tracked: the client
// destroys it, and the wrapper observes the destroy signal.
type XDGSurface struct {
	resource
}

// Role returns the role the client assigned to the surface.
func (s *XDGSurface) Role() (XDGSurfaceRole, error) {
	if err := s.guard(); err != nil {
		return RoleNone, err
	}
	return XDGSurfaceRole(s.lib().XDGSurfaceRole(s.h)), nil
}

// Surface returns the plain surface underneath the xdg surface.
func (s *XDGSurface) Surface() (*Surface, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	h := s.lib().XDGSurfaceSurface(s.h)
	r, err := s.d.cache.getOrCreate(h, ffi.TypeSurface)
	if err != nil {
		return nil, err
	}
	return r.(*Surface), nil
}

// Geometry returns the surface geometry set by the client, which may be
// smaller than the full surface extent.
func (s *XDGSurface) Geometry() (Box, error) {
	if err := s.guard(); err != nil {
		return Box{}, err
	}
	x, y, w, h := s.lib().XDGSurfaceGeometry(s.h)
	return Box{X: x, Y: y, Width: w, Height: h}, nil
}

// Toplevel returns the toplevel view of the surface. Fails unless the role
// is RoleToplevel. The toplevel has no destroy signal of its own; its
// wrapper invalidates when the xdg surface does.
func (s *XDGSurface) Toplevel() (*XDGToplevel, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	if role := XDGSurfaceRole(s.lib().XDGSurfaceRole(s.h)); role != RoleToplevel {
		return nil, fmt.Errorf("wlr: surface role is %s, not toplevel", role)
	}
	h := s.lib().XDGSurfaceToplevel(s.h)
	if r, ok := s.d.cache.lookup(h); ok && r.Valid() {
		return r.(*XDGToplevel), nil
	}
	t := &XDGToplevel{surface: s}
	if err := s.d.adopt(&t.resource, h, ffi.TypeXDGToplevel, t, false); err != nil {
		return nil, err
	}
	t.watch(&s.resource)
	return t, nil
}

// SetSize asks the client to resize to width x height. Zero means the client
// decides its own dimension. Returns the configure serial.
func (s *XDGSurface) SetSize(width, height uint32) (uint32, error) {
	if err := s.guard(); err != nil {
		return 0, err
	}
	return s.lib().XDGToplevelSetSize(s.h, width, height), nil
}

// SetActivated tells the client whether it is the focused window. Returns the
// configure serial.
func (s *XDGSurface) SetActivated(activated bool) (uint32, error) {
	if err := s.guard(); err != nil {
		return 0, err
	}
	return s.lib().XDGToplevelSetActivated(s.h, activated), nil
}

// OnMap subscribes cb to the surface becoming ready to display.
func (s *XDGSurface) OnMap(cb func(*XDGSurface)) (*Subscription, error) {
	return s.On("map", func(ev Event) {
		cb(ev.Source.(*XDGSurface))
	})
}

// OnUnmap subscribes cb to the surface no longer being displayed.
func (s *XDGSurface) OnUnmap(cb func(*XDGSurface)) (*Subscription, error) {
	return s.On("unmap", func(ev Event) {
		cb(ev.Source.(*XDGSurface))
	})
}

// XDGToplevel is the toplevel view of an xdg surface. Its lifetime follows
// the surface's.
type XDGToplevel struct {
	resource
	surface *XDGSurface
}

// XDGSurface returns the surface this toplevel belongs to.
func (t *XDGToplevel) XDGSurface() *XDGSurface { return t.surface }

func (t *XDGToplevel) Title() (string, error) {
	if err := t.guard(); err != nil {
		return "", err
	}
	return t.lib().XDGToplevelTitle(t.h), nil
}

func (t *XDGToplevel) AppID() (string, error) {
	if err := t.guard(); err != nil {
		return "", err
	}
	return t.lib().XDGToplevelAppID(t.h), nil
}

// OnRequestMove subscribes cb to interactive move requests.
func (t *XDGToplevel) OnRequestMove(cb func(*ToplevelMoveRequest)) (*Subscription, error) {
	return t.On("request_move", func(ev Event) {
		cb(ev.Data.(*ToplevelMoveRequest))
	})
}

// OnRequestResize subscribes cb to interactive resize requests.
func (t *XDGToplevel) OnRequestResize(cb func(*ToplevelResizeRequest)) (*Subscription, error) {
	return t.On("request_resize", func(ev Event) {
		cb(ev.Data.(*ToplevelResizeRequest))
	})
}
