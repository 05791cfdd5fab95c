package wlr

// ButtonState is the press state carried by a button event.
type ButtonState uint32

const (
	ButtonReleased ButtonState = iota
	ButtonPressed
)

// AxisSource describes what produced an axis event.
type AxisSource uint32

const (
	AxisSourceWheel AxisSource = iota
	AxisSourceFinger
	AxisSourceContinuous
	AxisSourceWheelTilt
)

// AxisOrientation is the scroll direction of an axis event.
type AxisOrientation uint32

const (
	AxisVertical AxisOrientation = iota
	AxisHorizontal
)

// PointerMotionEvent is the payload of a relative motion signal.
type PointerMotionEvent struct {
	Device         *InputDevice
	TimeMsec       uint32
	DeltaX, DeltaY float64
}

// PointerButtonEvent is the payload of a button signal.
type PointerButtonEvent struct {
	Device   *InputDevice
	TimeMsec uint32
	Button   uint32
	State    ButtonState
}

// PointerAxisEvent is the payload of an axis (scroll) signal.
type PointerAxisEvent struct {
	Device      *InputDevice
	TimeMsec    uint32
	Source      AxisSource
	Orientation AxisOrientation
	Delta       float64
}

// Pointer wraps the pointer view of an input device. It has no destroy
// signal of its own; the wrapper invalidates with its owning device.
type Pointer struct {
	resource
}

// OnMotion subscribes cb to relative motion events.
func (p *Pointer) OnMotion(cb func(*Pointer, *PointerMotionEvent)) (*Subscription, error) {
	return p.On("motion", func(ev Event) {
		cb(ev.Source.(*Pointer), ev.Data.(*PointerMotionEvent))
	})
}

// OnButton subscribes cb to button events.
func (p *Pointer) OnButton(cb func(*Pointer, *PointerButtonEvent)) (*Subscription, error) {
	return p.On("button", func(ev Event) {
		cb(ev.Source.(*Pointer), ev.Data.(*PointerButtonEvent))
	})
}
