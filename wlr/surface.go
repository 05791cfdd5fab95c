package wlr

import "github.com/runlevelzero/waybind/ffi"

// Surface wraps one native client surface. Destroy-tracked: the client (or
// the native library) destroys it, and the wrapper observes the destroy
// signal.
type Surface struct {
	resource
}

// CurrentSize returns the dimensions of the current committed state.
func (s *Surface) CurrentSize() (width, height int32, err error) {
	if err := s.guard(); err != nil {
		return 0, 0, err
	}
	return s.lib().SurfaceCurrentWidth(s.h), s.lib().SurfaceCurrentHeight(s.h), nil
}

// XDGSurface returns the xdg surface associated with this surface, if any.
func (s *Surface) XDGSurface() (*XDGSurface, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	h := s.lib().XDGSurfaceFromSurface(s.h)
	if h == ffi.Null {
		return nil, nil
	}
	r, err := s.d.cache.getOrCreate(h, ffi.TypeXDGSurface)
	if err != nil {
		return nil, err
	}
	return r.(*XDGSurface), nil
}

// OnCommit subscribes cb to surface commits.
func (s *Surface) OnCommit(cb func(*Surface)) (*Subscription, error) {
	return s.On("commit", func(ev Event) {
		cb(ev.Source.(*Surface))
	})
}
