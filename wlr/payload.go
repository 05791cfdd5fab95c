package wlr

import "github.com/runlevelzero/waybind/ffi"

// payloadDecoder turns the raw event-data pointer of one signal kind into a
// typed managed value, consulting the object cache for any native objects
// referenced by the payload.
type payloadDecoder func(d *Display, data ffi.Handle) (any, error)

// objectPayload wraps a payload that is itself a pointer to a native struct.
func objectPayload(t ffi.Type) payloadDecoder {
	return func(d *Display, data ffi.Handle) (any, error) {
		return d.cache.getOrCreate(data, t)
	}
}

func decodeKeyboardKey(d *Display, data ffi.Handle) (any, error) {
	timeMsec, keycode, state, update := d.lib.EventKeyboardKey(data)
	return &KeyEvent{
		TimeMsec:    timeMsec,
		Keycode:     keycode,
		State:       KeyState(state),
		UpdateState: update,
	}, nil
}

func decodePointerMotion(d *Display, data ffi.Handle) (any, error) {
	devH, timeMsec, dx, dy := d.lib.EventPointerMotion(data)
	dev, err := wrapDevice(d, devH)
	if err != nil {
		return nil, err
	}
	return &PointerMotionEvent{Device: dev, TimeMsec: timeMsec, DeltaX: dx, DeltaY: dy}, nil
}

func decodePointerButton(d *Display, data ffi.Handle) (any, error) {
	devH, timeMsec, button, state := d.lib.EventPointerButton(data)
	dev, err := wrapDevice(d, devH)
	if err != nil {
		return nil, err
	}
	return &PointerButtonEvent{
		Device:   dev,
		TimeMsec: timeMsec,
		Button:   button,
		State:    ButtonState(state),
	}, nil
}

func decodePointerAxis(d *Display, data ffi.Handle) (any, error) {
	devH, timeMsec, source, orientation, delta := d.lib.EventPointerAxis(data)
	dev, err := wrapDevice(d, devH)
	if err != nil {
		return nil, err
	}
	return &PointerAxisEvent{
		Device:      dev,
		TimeMsec:    timeMsec,
		Source:      AxisSource(source),
		Orientation: AxisOrientation(orientation),
		Delta:       delta,
	}, nil
}

func wrapDevice(d *Display, h ffi.Handle) (*InputDevice, error) {
	if h == ffi.Null {
		return nil, nil
	}
	r, err := d.cache.getOrCreate(h, ffi.TypeInputDevice)
	if err != nil {
		return nil, err
	}
	return r.(*InputDevice), nil
}

func decodeToplevelMove(d *Display, data ffi.Handle) (any, error) {
	surfH, serial := d.lib.EventToplevelMove(data)
	surf, err := wrapXDGSurface(d, surfH)
	if err != nil {
		return nil, err
	}
	return &ToplevelMoveRequest{Surface: surf, Serial: serial}, nil
}

func decodeToplevelResize(d *Display, data ffi.Handle) (any, error) {
	surfH, serial, edges := d.lib.EventToplevelResize(data)
	surf, err := wrapXDGSurface(d, surfH)
	if err != nil {
		return nil, err
	}
	return &ToplevelResizeRequest{Surface: surf, Serial: serial, Edges: Edges(edges)}, nil
}

func wrapXDGSurface(d *Display, h ffi.Handle) (*XDGSurface, error) {
	if h == ffi.Null {
		return nil, nil
	}
	r, err := d.cache.getOrCreate(h, ffi.TypeXDGSurface)
	if err != nil {
		return nil, err
	}
	return r.(*XDGSurface), nil
}

// payloadDecoders maps (owner type, signal kind) to a decoder. Signals
// missing from the table carry no payload the binding exposes.
var payloadDecoders = map[ffi.Type]map[string]payloadDecoder{
	ffi.TypeBackend: {
		"new_output": objectPayload(ffi.TypeOutput),
		"new_input":  objectPayload(ffi.TypeInputDevice),
	},
	ffi.TypeCompositor: {
		"new_surface": objectPayload(ffi.TypeSurface),
	},
	ffi.TypeXDGShell: {
		"new_surface": objectPayload(ffi.TypeXDGSurface),
	},
	ffi.TypeLayerShell: {
		"new_surface": objectPayload(ffi.TypeLayerSurface),
	},
	ffi.TypeKeyboard: {
		"key": decodeKeyboardKey,
	},
	ffi.TypePointer: {
		"motion": decodePointerMotion,
		"button": decodePointerButton,
		"axis":   decodePointerAxis,
	},
	ffi.TypeCursor: {
		"motion": decodePointerMotion,
		"button": decodePointerButton,
		"axis":   decodePointerAxis,
	},
	ffi.TypeXDGToplevel: {
		"request_move":   decodeToplevelMove,
		"request_resize": decodeToplevelResize,
	},
}

func payloadDecoderFor(t ffi.Type, kind string) payloadDecoder {
	if m, ok := payloadDecoders[t]; ok {
		return m[kind]
	}
	return nil
}
