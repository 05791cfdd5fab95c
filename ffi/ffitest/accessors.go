package ffitest

import (
	"fmt"

	"github.com/runlevelzero/waybind/ffi"
)

// Accessor surface of the fake: field reads resolve against the object's (or
// payload's) Fields.

func (l *Lib) SignalOf(h ffi.Handle, t ffi.Type, kind string) ffi.Handle {
	o, ok := l.objects[h]
	if !ok {
		return ffi.Null
	}
	return o.signals[kind]
}

func (l *Lib) fieldsOf(h ffi.Handle) *Fields {
	if o, ok := l.objects[h]; ok {
		return &o.fields
	}
	if p, ok := l.payloads[h]; ok {
		return p
	}
	panic(fmt.Sprintf("ffitest: field read on unknown handle %#x", uintptr(h)))
}

func (l *Lib) OutputName(h ffi.Handle) string { return l.fieldsOf(h).Name }
func (l *Lib) OutputMake(h ffi.Handle) string { return l.fieldsOf(h).Make }
func (l *Lib) OutputModel(h ffi.Handle) string { return l.fieldsOf(h).Model }
func (l *Lib) OutputWidth(h ffi.Handle) int32 { return l.fieldsOf(h).Width }
func (l *Lib) OutputHeight(h ffi.Handle) int32 { return l.fieldsOf(h).Height }
func (l *Lib) OutputRefresh(h ffi.Handle) int32 { return l.fieldsOf(h).Refresh }
func (l *Lib) OutputScale(h ffi.Handle) float32 { return l.fieldsOf(h).Scale }
func (l *Lib) OutputEnabled(h ffi.Handle) bool { return l.fieldsOf(h).Enabled }

func (l *Lib) OutputModeWidth(h ffi.Handle) int32 { return l.fieldsOf(h).Width }
func (l *Lib) OutputModeHeight(h ffi.Handle) int32 { return l.fieldsOf(h).Height }
func (l *Lib) OutputModeRefresh(h ffi.Handle) int32 { return l.fieldsOf(h).Refresh }

func (l *Lib) SeatName(h ffi.Handle) string { return l.fieldsOf(h).Name }
func (l *Lib) SeatCapabilities(h ffi.Handle) uint32 { return l.fieldsOf(h).Capabilities }

func (l *Lib) InputDeviceType(h ffi.Handle) uint32 { return l.fieldsOf(h).DeviceType }
func (l *Lib) InputDeviceName(h ffi.Handle) string { return l.fieldsOf(h).Name }
func (l *Lib) InputDeviceVendor(h ffi.Handle) uint32 { return l.fieldsOf(h).Vendor }
func (l *Lib) InputDeviceProduct(h ffi.Handle) uint32 { return l.fieldsOf(h).Product }
func (l *Lib) InputDeviceKeyboard(h ffi.Handle) ffi.Handle { return l.fieldsOf(h).Keyboard }
func (l *Lib) InputDevicePointer(h ffi.Handle) ffi.Handle { return l.fieldsOf(h).Pointer }

func (l *Lib) KeyboardRepeatRate(h ffi.Handle) int32 { return l.fieldsOf(h).RepeatRate }
func (l *Lib) KeyboardRepeatDelay(h ffi.Handle) int32 { return l.fieldsOf(h).RepeatDelay }

func (l *Lib) CursorX(h ffi.Handle) float64 { return l.fieldsOf(h).X }
func (l *Lib) CursorY(h ffi.Handle) float64 { return l.fieldsOf(h).Y }

func (l *Lib) SurfaceCurrentWidth(h ffi.Handle) int32 { return l.fieldsOf(h).CurrentWidth }
func (l *Lib) SurfaceCurrentHeight(h ffi.Handle) int32 { return l.fieldsOf(h).CurrentHeight }

func (l *Lib) XDGSurfaceRole(h ffi.Handle) uint32 { return l.fieldsOf(h).Role }
func (l *Lib) XDGSurfaceSurface(h ffi.Handle) ffi.Handle { return l.fieldsOf(h).Surface }
func (l *Lib) XDGSurfaceToplevel(h ffi.Handle) ffi.Handle { return l.fieldsOf(h).Toplevel }
func (l *Lib) XDGToplevelTitle(h ffi.Handle) string { return l.fieldsOf(h).Title }
func (l *Lib) XDGToplevelAppID(h ffi.Handle) string { return l.fieldsOf(h).AppID }

func (l *Lib) LayerSurfaceNamespace(h ffi.Handle) string { return l.fieldsOf(h).Namespace }
func (l *Lib) LayerSurfaceLayer(h ffi.Handle) uint32 { return l.fieldsOf(h).Layer }
func (l *Lib) LayerSurfaceSurface(h ffi.Handle) ffi.Handle { return l.fieldsOf(h).Surface }

func (l *Lib) EventKeyboardKey(data ffi.Handle) (uint32, uint32, uint32, bool) {
	f := l.fieldsOf(data)
	return f.TimeMsec, f.Keycode, f.State, f.UpdateState
}

func (l *Lib) EventPointerMotion(data ffi.Handle) (ffi.Handle, uint32, float64, float64) {
	f := l.fieldsOf(data)
	return f.Device, f.TimeMsec, f.DeltaX, f.DeltaY
}

func (l *Lib) EventPointerButton(data ffi.Handle) (ffi.Handle, uint32, uint32, uint32) {
	f := l.fieldsOf(data)
	return f.Device, f.TimeMsec, f.Button, f.State
}

func (l *Lib) EventPointerAxis(data ffi.Handle) (ffi.Handle, uint32, uint32, uint32, float64) {
	f := l.fieldsOf(data)
	return f.Device, f.TimeMsec, f.Source, f.Orientation, f.Delta
}

func (l *Lib) EventToplevelMove(data ffi.Handle) (ffi.Handle, uint32) {
	f := l.fieldsOf(data)
	return f.Surface, f.Serial
}

func (l *Lib) EventToplevelResize(data ffi.Handle) (ffi.Handle, uint32, uint32) {
	f := l.fieldsOf(data)
	return f.Surface, f.Serial, f.Edges
}
