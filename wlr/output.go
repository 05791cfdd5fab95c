package wlr

import (
	"fmt"

	"github.com/runlevelzero/waybind/ffi"
)

// Output wraps one native output (a monitor or headless sink).
// Destroy-tracked: the native library frees outputs on unplug, and the
// wrapper invalidates itself when that happens.
type Output struct {
	resource
}

// OutputMode is a plain value view of one native mode; refresh is in mHz.
type OutputMode struct {
	Width, Height, Refresh int32

	handle ffi.Handle
}

func (o *Output) Name() (string, error) {
	if err := o.guard(); err != nil {
		return "", err
	}
	return o.lib().OutputName(o.h), nil
}

func (o *Output) Make() (string, error) {
	if err := o.guard(); err != nil {
		return "", err
	}
	return o.lib().OutputMake(o.h), nil
}

func (o *Output) Model() (string, error) {
	if err := o.guard(); err != nil {
		return "", err
	}
	return o.lib().OutputModel(o.h), nil
}

// Resolution returns the current width, height and refresh (mHz). Refresh
// may be zero on some backends.
func (o *Output) Resolution() (width, height, refresh int32, err error) {
	if err := o.guard(); err != nil {
		return 0, 0, 0, err
	}
	lib := o.lib()
	return lib.OutputWidth(o.h), lib.OutputHeight(o.h), lib.OutputRefresh(o.h), nil
}

func (o *Output) Scale() (float32, error) {
	if err := o.guard(); err != nil {
		return 0, err
	}
	return o.lib().OutputScale(o.h), nil
}

func (o *Output) Enabled() (bool, error) {
	if err := o.guard(); err != nil {
		return false, err
	}
	return o.lib().OutputEnabled(o.h), nil
}

// Enable marks the output for enabling on the next commit.
func (o *Output) Enable(enabled bool) error {
	if err := o.guard(); err != nil {
		return err
	}
	o.lib().OutputEnable(o.h, enabled)
	return nil
}

// PreferredMode returns the mode the output prefers. Some backends expose
// no modes at all, which is reported as an error.
func (o *Output) PreferredMode() (OutputMode, error) {
	if err := o.guard(); err != nil {
		return OutputMode{}, err
	}
	lib := o.lib()
	h := lib.OutputPreferredMode(o.h)
	if h == ffi.Null {
		return OutputMode{}, fmt.Errorf("wlr: output has no preferred mode")
	}
	return OutputMode{
		Width:   lib.OutputModeWidth(h),
		Height:  lib.OutputModeHeight(h),
		Refresh: lib.OutputModeRefresh(h),
		handle:  h,
	}, nil
}

// SetMode stages mode for the next commit.
func (o *Output) SetMode(mode OutputMode) error {
	if err := o.guard(); err != nil {
		return err
	}
	if mode.handle == ffi.Null {
		return fmt.Errorf("wlr: mode does not belong to a native output")
	}
	o.lib().OutputSetMode(o.h, mode.handle)
	return nil
}

// Commit applies staged state.
func (o *Output) Commit() error {
	if err := o.guard(); err != nil {
		return err
	}
	if !o.lib().OutputCommit(o.h) {
		return fmt.Errorf("wlr: output commit failed")
	}
	return nil
}

// CreateGlobal advertises the output to wayland clients.
func (o *Output) CreateGlobal() error {
	if err := o.guard(); err != nil {
		return err
	}
	o.lib().OutputCreateGlobal(o.h)
	return nil
}

// OnFrame subscribes cb to the output's frame signal, fired when the output
// is ready for a new frame.
func (o *Output) OnFrame(cb func(*Output)) (*Subscription, error) {
	return o.On("frame", func(ev Event) {
		cb(ev.Source.(*Output))
	})
}

// OutputLayout wraps the native output layout, which arranges outputs in a
// global coordinate space. Owned by the binding: release it with Destroy.
type OutputLayout struct {
	resource
}

func NewOutputLayout(d *Display) (*OutputLayout, error) {
	h, err := d.lib.OutputLayoutCreate()
	if err != nil {
		return nil, fmt.Errorf("wlr: creating output layout: %w", err)
	}
	l := &OutputLayout{}
	if err := d.adopt(&l.resource, h, ffi.TypeOutputLayout, l, true); err != nil {
		d.lib.OutputLayoutDestroy(h)
		return nil, err
	}
	return l, nil
}

// AddAuto places output at a sensible position in the layout.
func (l *OutputLayout) AddAuto(o *Output) error {
	if err := l.guard(); err != nil {
		return err
	}
	if err := o.guard(); err != nil {
		return err
	}
	l.lib().OutputLayoutAddAuto(l.h, o.h)
	return nil
}

// Coords translates from global to output-local coordinates.
func (l *OutputLayout) Coords(o *Output) (x, y float64, err error) {
	if err := l.guard(); err != nil {
		return 0, 0, err
	}
	if err := o.guard(); err != nil {
		return 0, 0, err
	}
	x, y = l.lib().OutputLayoutCoords(l.h, o.h)
	return x, y, nil
}

// Destroy releases the layout. Invalidation rides the layout's own destroy
// signal, which the native destroy emits before freeing.
func (l *OutputLayout) Destroy() error {
	if err := l.guard(); err != nil {
		return err
	}
	l.lib().OutputLayoutDestroy(l.h)
	return nil
}
