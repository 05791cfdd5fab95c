package wlr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runlevelzero/waybind/ffi"
	"github.com/runlevelzero/waybind/ffi/ffitest"
)

func TestBackendAdvertisesHardware(t *testing.T) {
	d, _ := newTestDisplay(t)

	b, err := AutocreateBackend(d)
	require.NoError(t, err)

	var outputs []*Output
	var devices []*InputDevice
	_, err = b.OnNewOutput(func(o *Output) { outputs = append(outputs, o) })
	require.NoError(t, err)
	_, err = b.OnNewInput(func(dev *InputDevice) { devices = append(devices, dev) })
	require.NoError(t, err)

	require.NoError(t, b.Start())
	_, err = d.Dispatch(0)
	require.NoError(t, err)

	require.Len(t, outputs, 1)
	require.Len(t, devices, 1)

	name, err := outputs[0].Name()
	require.NoError(t, err)
	assert.Equal(t, "FAKE-1", name)

	mode, err := outputs[0].PreferredMode()
	require.NoError(t, err)
	assert.Equal(t, int32(1920), mode.Width)
	assert.Equal(t, int32(1080), mode.Height)
	assert.Equal(t, int32(60000), mode.Refresh)

	require.NoError(t, outputs[0].SetMode(mode))
	w, h, refresh, err := outputs[0].Resolution()
	require.NoError(t, err)
	assert.Equal(t, int32(1920), w)
	assert.Equal(t, int32(1080), h)
	assert.Equal(t, int32(60000), refresh)

	dt, err := devices[0].DeviceType()
	require.NoError(t, err)
	assert.Equal(t, DeviceKeyboard, dt)
}

func TestKeyboardEvents(t *testing.T) {
	d, lib := newTestDisplay(t)

	kbdH := lib.NewObject(ffi.TypeKeyboard)
	devH := lib.NewObject(ffi.TypeInputDevice)
	df := lib.Fields(devH)
	df.DeviceType = uint32(DeviceKeyboard)
	df.Keyboard = kbdH

	r, err := d.cache.getOrCreate(devH, ffi.TypeInputDevice)
	require.NoError(t, err)
	dev := r.(*InputDevice)

	kbd, err := dev.Keyboard()
	require.NoError(t, err)

	require.NoError(t, kbd.SetRepeatInfo(25, 600))
	rate, delay, err := kbd.RepeatInfo()
	require.NoError(t, err)
	assert.Equal(t, int32(25), rate)
	assert.Equal(t, int32(600), delay)

	var got *KeyEvent
	_, err = kbd.OnKey(func(k *Keyboard, ev *KeyEvent) { got = ev })
	require.NoError(t, err)

	lib.Emit(kbdH, "key", lib.NewPayload(ffitest.Fields{
		TimeMsec:    1234,
		Keycode:     30,
		State:       uint32(KeyPressed),
		UpdateState: true,
	}))

	require.NotNil(t, got)
	assert.Equal(t, uint32(1234), got.TimeMsec)
	assert.Equal(t, uint32(30), got.Keycode)
	assert.Equal(t, KeyPressed, got.State)
	assert.True(t, got.UpdateState)
}

func TestKeyboardRoleCheck(t *testing.T) {
	d, lib := newTestDisplay(t)

	devH := lib.NewObject(ffi.TypeInputDevice)
	lib.Fields(devH).DeviceType = uint32(DevicePointer)

	r, err := d.cache.getOrCreate(devH, ffi.TypeInputDevice)
	require.NoError(t, err)

	_, err = r.(*InputDevice).Keyboard()
	assert.Error(t, err)
}

func TestPointerEvents(t *testing.T) {
	d, lib := newTestDisplay(t)

	ptrH := lib.NewObject(ffi.TypePointer)
	devH := lib.NewObject(ffi.TypeInputDevice)
	df := lib.Fields(devH)
	df.DeviceType = uint32(DevicePointer)
	df.Pointer = ptrH

	r, err := d.cache.getOrCreate(devH, ffi.TypeInputDevice)
	require.NoError(t, err)
	dev := r.(*InputDevice)

	p, err := dev.Pointer()
	require.NoError(t, err)

	var motion *PointerMotionEvent
	_, err = p.OnMotion(func(_ *Pointer, ev *PointerMotionEvent) { motion = ev })
	require.NoError(t, err)

	lib.Emit(ptrH, "motion", lib.NewPayload(ffitest.Fields{
		Device:   devH,
		TimeMsec: 99,
		DeltaX:   3.5,
		DeltaY:   -1.25,
	}))

	require.NotNil(t, motion)
	assert.Same(t, dev, motion.Device)
	assert.Equal(t, 3.5, motion.DeltaX)
	assert.Equal(t, -1.25, motion.DeltaY)

	var button *PointerButtonEvent
	_, err = p.OnButton(func(_ *Pointer, ev *PointerButtonEvent) { button = ev })
	require.NoError(t, err)

	lib.Emit(ptrH, "button", lib.NewPayload(ffitest.Fields{
		Device: devH,
		Button: 0x110, // BTN_LEFT
		State:  uint32(ButtonPressed),
	}))

	require.NotNil(t, button)
	assert.Equal(t, uint32(0x110), button.Button)
	assert.Equal(t, ButtonPressed, button.State)
}

func TestSeat(t *testing.T) {
	d, _ := newTestDisplay(t)

	seat, err := NewSeat(d, "seat0")
	require.NoError(t, err)

	name, err := seat.Name()
	require.NoError(t, err)
	assert.Equal(t, "seat0", name)

	require.NoError(t, seat.SetCapabilities(CapabilityPointer|CapabilityKeyboard))
	caps, err := seat.Capabilities()
	require.NoError(t, err)
	assert.Equal(t, CapabilityPointer|CapabilityKeyboard, caps)

	require.NoError(t, seat.Destroy())
	assert.False(t, seat.Valid())
	assert.ErrorIs(t, seat.SetCapabilities(0), ErrUseAfterDestroy)
}

func TestSeatKeyboardNotify(t *testing.T) {
	d, lib := newTestDisplay(t)

	seat, err := NewSeat(d, "seat0")
	require.NoError(t, err)

	kbdH := lib.NewObject(ffi.TypeKeyboard)
	lib.Fields(kbdH).Modifiers = ModifierShift | ModifierCtrl
	r, err := d.cache.getOrCreate(kbdH, ffi.TypeKeyboard)
	require.NoError(t, err)
	require.NoError(t, seat.SetKeyboard(r.(*Keyboard)))

	wlSurfH := lib.NewObject(ffi.TypeSurface)
	sr, err := d.cache.getOrCreate(wlSurfH, ffi.TypeSurface)
	require.NoError(t, err)

	require.NoError(t, seat.NotifyKeyboardEnter(sr.(*Surface)))
	assert.Equal(t, wlSurfH, lib.Fields(seat.Native()).FocusedSurface)

	require.NoError(t, seat.NotifyKey(1234, 30, uint32(KeyPressed)))
	sf := lib.Fields(seat.Native())
	assert.Equal(t, uint32(1234), sf.TimeMsec)
	assert.Equal(t, uint32(30), sf.Keycode)
	assert.Equal(t, uint32(KeyPressed), sf.State)

	require.NoError(t, seat.NotifyModifiers())
	assert.Equal(t, ModifierShift|ModifierCtrl, lib.Fields(seat.Native()).Modifiers)

	require.NoError(t, seat.Destroy())
	assert.ErrorIs(t, seat.NotifyKey(0, 0, 0), ErrUseAfterDestroy)
}

func TestCursorMovement(t *testing.T) {
	d, _ := newTestDisplay(t)

	c, err := NewCursor(d)
	require.NoError(t, err)

	require.NoError(t, c.Move(nil, 10, 5))
	require.NoError(t, c.Move(nil, -2, 1))
	x, y, err := c.Position()
	require.NoError(t, err)
	assert.Equal(t, 8.0, x)
	assert.Equal(t, 6.0, y)

	require.NoError(t, c.WarpAbsolute(nil, 100, 200))
	x, y, err = c.Position()
	require.NoError(t, err)
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 200.0, y)

	require.NoError(t, c.Destroy())
	assert.ErrorIs(t, c.Move(nil, 1, 1), ErrUseAfterDestroy)
}

func TestXDGShellSurfaceLifecycle(t *testing.T) {
	d, lib := newTestDisplay(t)

	shell, err := NewXDGShell(d)
	require.NoError(t, err)

	var surfaces []*XDGSurface
	_, err = shell.OnNewSurface(func(s *XDGSurface) { surfaces = append(surfaces, s) })
	require.NoError(t, err)

	wlSurfH := lib.NewObject(ffi.TypeSurface)
	lib.Fields(wlSurfH).CurrentWidth = 640
	lib.Fields(wlSurfH).CurrentHeight = 480

	topH := lib.NewObject(ffi.TypeXDGToplevel)
	tf := lib.Fields(topH)
	tf.Title, tf.AppID = "editor", "org.example.editor"

	xdgH := lib.NewObject(ffi.TypeXDGSurface)
	xf := lib.Fields(xdgH)
	xf.Role = uint32(RoleToplevel)
	xf.Surface = wlSurfH
	xf.Toplevel = topH
	xf.GeomX, xf.GeomY, xf.GeomW, xf.GeomH = 0, 0, 640, 480

	lib.Emit(shell.Native(), "new_surface", xdgH)
	require.Len(t, surfaces, 1)
	s := surfaces[0]

	role, err := s.Role()
	require.NoError(t, err)
	assert.Equal(t, RoleToplevel, role)

	geom, err := s.Geometry()
	require.NoError(t, err)
	assert.Equal(t, Box{Width: 640, Height: 480}, geom)

	surf, err := s.Surface()
	require.NoError(t, err)
	w, h, err := surf.CurrentSize()
	require.NoError(t, err)
	assert.Equal(t, int32(640), w)
	assert.Equal(t, int32(480), h)

	top, err := s.Toplevel()
	require.NoError(t, err)
	title, err := top.Title()
	require.NoError(t, err)
	assert.Equal(t, "editor", title)
	appID, err := top.AppID()
	require.NoError(t, err)
	assert.Equal(t, "org.example.editor", appID)

	// configure serials increase per request
	s1, err := s.SetSize(800, 600)
	require.NoError(t, err)
	s2, err := s.SetActivated(true)
	require.NoError(t, err)
	assert.Greater(t, s2, s1)

	var move *ToplevelMoveRequest
	_, err = top.OnRequestMove(func(req *ToplevelMoveRequest) { move = req })
	require.NoError(t, err)
	lib.Emit(topH, "request_move", lib.NewPayload(ffitest.Fields{Surface: xdgH, Serial: 7}))
	require.NotNil(t, move)
	assert.Same(t, s, move.Surface)
	assert.Equal(t, uint32(7), move.Serial)

	var resize *ToplevelResizeRequest
	_, err = top.OnRequestResize(func(req *ToplevelResizeRequest) { resize = req })
	require.NoError(t, err)
	lib.Emit(topH, "request_resize", lib.NewPayload(ffitest.Fields{
		Surface: xdgH,
		Serial:  8,
		Edges:   uint32(EdgeTop | EdgeLeft),
	}))
	require.NotNil(t, resize)
	assert.Equal(t, EdgeTop|EdgeLeft, resize.Edges)

	// destroying the xdg surface takes the toplevel view with it
	lib.DestroyObject(xdgH)
	assert.False(t, s.Valid())
	assert.False(t, top.Valid())
	_, err = top.Title()
	assert.ErrorIs(t, err, ErrUseAfterDestroy)
}

func TestToplevelRoleCheck(t *testing.T) {
	d, lib := newTestDisplay(t)

	xdgH := lib.NewObject(ffi.TypeXDGSurface)
	lib.Fields(xdgH).Role = uint32(RolePopup)

	r, err := d.cache.getOrCreate(xdgH, ffi.TypeXDGSurface)
	require.NoError(t, err)

	_, err = r.(*XDGSurface).Toplevel()
	assert.Error(t, err)
}

func TestSurfaceToXDGSurfaceLink(t *testing.T) {
	d, lib := newTestDisplay(t)

	wlSurfH := lib.NewObject(ffi.TypeSurface)
	r, err := d.cache.getOrCreate(wlSurfH, ffi.TypeSurface)
	require.NoError(t, err)
	surf := r.(*Surface)

	// no xdg role assigned yet
	xs, err := surf.XDGSurface()
	require.NoError(t, err)
	assert.Nil(t, xs)

	xdgH := lib.NewObject(ffi.TypeXDGSurface)
	lib.Fields(wlSurfH).XDGSurface = xdgH
	xs, err = surf.XDGSurface()
	require.NoError(t, err)
	require.NotNil(t, xs)
	assert.Equal(t, xdgH, xs.Native())
}

func TestLayerShell(t *testing.T) {
	d, lib := newTestDisplay(t)

	shell, err := NewLayerShell(d)
	require.NoError(t, err)

	var got *LayerSurface
	_, err = shell.OnNewSurface(func(s *LayerSurface) { got = s })
	require.NoError(t, err)

	lsH := lib.NewObject(ffi.TypeLayerSurface)
	lf := lib.Fields(lsH)
	lf.Namespace = "panel"
	lf.Layer = uint32(LayerTop)

	lib.Emit(shell.Native(), "new_surface", lsH)
	require.NotNil(t, got)

	ns, err := got.Namespace()
	require.NoError(t, err)
	assert.Equal(t, "panel", ns)

	layer, err := got.Layer()
	require.NoError(t, err)
	assert.Equal(t, LayerTop, layer)
}

func TestOutputLayout(t *testing.T) {
	d, lib := newTestDisplay(t)

	layout, err := NewOutputLayout(d)
	require.NoError(t, err)

	o, _ := newTestOutput(t, d, lib)
	require.NoError(t, layout.AddAuto(o))

	x, y, err := layout.Coords(o)
	require.NoError(t, err)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)

	require.NoError(t, layout.Destroy())
	assert.False(t, layout.Valid())
	assert.ErrorIs(t, layout.AddAuto(o), ErrUseAfterDestroy)
}
