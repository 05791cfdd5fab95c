package wlr

import (
	"fmt"

	"github.com/runlevelzero/waybind/ffi"
)

// SeatCapability is the set of input classes a seat advertises.
type SeatCapability uint32

const (
	CapabilityPointer  SeatCapability = 1 << 0
	CapabilityKeyboard SeatCapability = 1 << 1
	CapabilityTouch    SeatCapability = 1 << 2
)

// Seat wraps one native seat: a named group of input devices presented to
// clients. Destroy-tracked.
type Seat struct {
	resource
}

func NewSeat(d *Display, name string) (*Seat, error) {
	h, err := d.lib.SeatCreate(d.h, name)
	if err != nil {
		return nil, fmt.Errorf("wlr: creating seat %q: %w", name, err)
	}
	s := &Seat{}
	if err := d.adopt(&s.resource, h, ffi.TypeSeat, s, true); err != nil {
		d.lib.SeatDestroy(h)
		return nil, err
	}
	return s, nil
}

func (s *Seat) Name() (string, error) {
	if err := s.guard(); err != nil {
		return "", err
	}
	return s.lib().SeatName(s.h), nil
}

func (s *Seat) Capabilities() (SeatCapability, error) {
	if err := s.guard(); err != nil {
		return 0, err
	}
	return SeatCapability(s.lib().SeatCapabilities(s.h)), nil
}

// SetCapabilities advertises the given capability set to clients.
func (s *Seat) SetCapabilities(caps SeatCapability) error {
	if err := s.guard(); err != nil {
		return err
	}
	s.lib().SeatSetCapabilities(s.h, uint32(caps))
	return nil
}

// SetKeyboard makes k the seat's active keyboard.
func (s *Seat) SetKeyboard(k *Keyboard) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := k.guard(); err != nil {
		return err
	}
	s.lib().SeatSetKeyboard(s.h, k.h)
	return nil
}

// NotifyKeyboardEnter gives surface keyboard focus on this seat. Pressed
// keys and modifier state come from the seat's current keyboard.
func (s *Seat) NotifyKeyboardEnter(surface *Surface) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := surface.guard(); err != nil {
		return err
	}
	s.lib().SeatKeyboardNotifyEnter(s.h, surface.h)
	return nil
}

// NotifyKey forwards a key event to the focused client. state follows the
// wl_keyboard key_state values.
func (s *Seat) NotifyKey(timeMsec, key, state uint32) error {
	if err := s.guard(); err != nil {
		return err
	}
	s.lib().SeatKeyboardNotifyKey(s.h, timeMsec, key, state)
	return nil
}

// NotifyModifiers forwards the current keyboard's modifier state to the
// focused client.
func (s *Seat) NotifyModifiers() error {
	if err := s.guard(); err != nil {
		return err
	}
	s.lib().SeatKeyboardNotifyModifiers(s.h)
	return nil
}

// Destroy releases the native seat; the wrapper invalidates through the
// seat's destroy signal.
func (s *Seat) Destroy() error {
	if err := s.guard(); err != nil {
		return err
	}
	s.lib().SeatDestroy(s.h)
	return nil
}
