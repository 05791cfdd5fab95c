package wlr

import (
	"fmt"

	"github.com/runlevelzero/waybind/ffi"
)

// DeviceType identifies which input class an InputDevice belongs to, and
// therefore which union member is valid.
type DeviceType uint32

const (
	DeviceKeyboard DeviceType = iota
	DevicePointer
	DeviceTouch
	DeviceTabletTool
	DeviceTabletPad
	DeviceSwitch
)

func (t DeviceType) String() string {
	switch t {
	case DeviceKeyboard:
		return "keyboard"
	case DevicePointer:
		return "pointer"
	case DeviceTouch:
		return "touch"
	case DeviceTabletTool:
		return "tablet-tool"
	case DeviceTabletPad:
		return "tablet-pad"
	case DeviceSwitch:
		return "switch"
	}
	return "unknown"
}

// InputDevice wraps one native input device. Destroy-tracked: the native
// library frees devices on unplug.
type InputDevice struct {
	resource
}

func (dev *InputDevice) DeviceType() (DeviceType, error) {
	if err := dev.guard(); err != nil {
		return 0, err
	}
	return DeviceType(dev.lib().InputDeviceType(dev.h)), nil
}

func (dev *InputDevice) Name() (string, error) {
	if err := dev.guard(); err != nil {
		return "", err
	}
	return dev.lib().InputDeviceName(dev.h), nil
}

func (dev *InputDevice) Vendor() (uint32, error) {
	if err := dev.guard(); err != nil {
		return 0, err
	}
	return dev.lib().InputDeviceVendor(dev.h), nil
}

func (dev *InputDevice) Product() (uint32, error) {
	if err := dev.guard(); err != nil {
		return 0, err
	}
	return dev.lib().InputDeviceProduct(dev.h), nil
}

// Keyboard returns the device's keyboard view. Fails unless the device type
// is DeviceKeyboard.
func (dev *InputDevice) Keyboard() (*Keyboard, error) {
	if err := dev.guard(); err != nil {
		return nil, err
	}
	if t := DeviceType(dev.lib().InputDeviceType(dev.h)); t != DeviceKeyboard {
		return nil, fmt.Errorf("wlr: device is a %s, not a keyboard", t)
	}
	h := dev.lib().InputDeviceKeyboard(dev.h)
	r, err := dev.d.cache.getOrCreate(h, ffi.TypeKeyboard)
	if err != nil {
		return nil, err
	}
	return r.(*Keyboard), nil
}

// Pointer returns the device's pointer view. Fails unless the device type
// is DevicePointer. The pointer has no destroy signal of its own; its
// wrapper invalidates when the device does.
func (dev *InputDevice) Pointer() (*Pointer, error) {
	if err := dev.guard(); err != nil {
		return nil, err
	}
	if t := DeviceType(dev.lib().InputDeviceType(dev.h)); t != DevicePointer {
		return nil, fmt.Errorf("wlr: device is a %s, not a pointer", t)
	}
	h := dev.lib().InputDevicePointer(dev.h)
	if r, ok := dev.d.cache.lookup(h); ok && r.Valid() {
		return r.(*Pointer), nil
	}
	p := &Pointer{}
	if err := dev.d.adopt(&p.resource, h, ffi.TypePointer, p, false); err != nil {
		return nil, err
	}
	p.watch(&dev.resource)
	return p, nil
}
