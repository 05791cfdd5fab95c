package wlr

import (
	"fmt"

	"github.com/runlevelzero/waybind/ffi"
)

// Cursor wraps the native cursor: an image warped around an output layout,
// fed by attached input devices. The cursor has no native destroy signal;
// the binding owns the allocation and Destroy must be called explicitly.
type Cursor struct {
	resource
}

func NewCursor(d *Display) (*Cursor, error) {
	h, err := d.lib.CursorCreate()
	if err != nil {
		return nil, fmt.Errorf("wlr: creating cursor: %w", err)
	}
	c := &Cursor{}
	if err := d.adopt(&c.resource, h, ffi.TypeCursor, c, false); err != nil {
		d.lib.CursorDestroy(h)
		return nil, err
	}
	return c, nil
}

// AttachOutputLayout constrains the cursor to the layout's extents.
func (c *Cursor) AttachOutputLayout(l *OutputLayout) error {
	if err := c.guard(); err != nil {
		return err
	}
	if err := l.guard(); err != nil {
		return err
	}
	c.lib().CursorAttachOutputLayout(c.h, l.h)
	return nil
}

// AttachInputDevice routes the device's motion into the cursor.
func (c *Cursor) AttachInputDevice(dev *InputDevice) error {
	if err := c.guard(); err != nil {
		return err
	}
	if err := dev.guard(); err != nil {
		return err
	}
	c.lib().CursorAttachInputDevice(c.h, dev.h)
	return nil
}

// Position returns the cursor's layout coordinates.
func (c *Cursor) Position() (x, y float64, err error) {
	if err := c.guard(); err != nil {
		return 0, 0, err
	}
	return c.lib().CursorX(c.h), c.lib().CursorY(c.h), nil
}

// Move displaces the cursor by a relative delta, clamped to the layout.
// dev may be nil.
func (c *Cursor) Move(dev *InputDevice, dx, dy float64) error {
	if err := c.guard(); err != nil {
		return err
	}
	c.lib().CursorMove(c.h, deviceHandle(dev), dx, dy)
	return nil
}

// WarpAbsolute places the cursor at normalized [0,1] coordinates. dev may
// be nil.
func (c *Cursor) WarpAbsolute(dev *InputDevice, x, y float64) error {
	if err := c.guard(); err != nil {
		return err
	}
	c.lib().CursorWarpAbsolute(c.h, deviceHandle(dev), x, y)
	return nil
}

// Destroy invalidates the wrapper, unlinking every listener node, and then
// frees the native cursor. Unlink-before-free is load-bearing: a node left
// on the cursor's signal lists would dangle once the native memory goes.
func (c *Cursor) Destroy() error {
	if err := c.guard(); err != nil {
		return err
	}
	h := c.h
	c.invalidate()
	c.lib().CursorDestroy(h)
	return nil
}

func deviceHandle(dev *InputDevice) ffi.Handle {
	if dev == nil {
		return ffi.Null
	}
	return dev.h
}
