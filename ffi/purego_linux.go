//go:build linux

package ffi

import (
	"fmt"
	"os"
	"time"

	"github.com/ebitengine/purego"
)

// Library sonames probed in order, newest first. WAYBIND_LIBWLROOTS and
// WAYBIND_SHIM override the defaults for non-standard installs.
var (
	waylandServerNames = []string{"libwayland-server.so.0", "libwayland-server.so"}
	wlrootsNames       = []string{"libwlroots.so.12", "libwlroots.so.11", "libwlroots.so"}
	shimNames          = []string{"libwaybind.so"}
)

var _ Lib = (*nativeLib)(nil)

type nativeLib struct {
	dispatch   DispatchFunc
	trampoline uintptr

	// libwayland-server
	displayCreate        func() uintptr
	displayDestroy       func(uintptr)
	displayAddSocketAuto func(uintptr) string
	displayAddSocket     func(uintptr, string) int32
	displayRun           func(uintptr)
	displayTerminate     func(uintptr)
	displayFlush         func(uintptr)
	displayGetEventLoop  func(uintptr) uintptr
	eventLoopDispatch    func(uintptr, int32) int32
	eventLoopGetFD       func(uintptr) int32

	// libwlroots
	backendAutocreate    func(uintptr) uintptr
	backendStart         func(uintptr) bool
	backendDestroy       func(uintptr)
	backendGetRenderer   func(uintptr) uintptr
	rendererInitDisplay  func(uintptr, uintptr)
	compositorCreate     func(uintptr, uintptr) uintptr
	dataDeviceMgrCreate  func(uintptr) uintptr
	outputLayoutCreate   func() uintptr
	outputLayoutDestroy  func(uintptr)
	outputLayoutAddAuto  func(uintptr, uintptr)
	outputLayoutCoords   func(uintptr, uintptr, *float64, *float64)
	outputEnable         func(uintptr, bool)
	outputPreferredMode  func(uintptr) uintptr
	outputSetMode        func(uintptr, uintptr)
	outputCommit         func(uintptr) bool
	outputCreateGlobal   func(uintptr)
	seatCreate           func(uintptr, string) uintptr
	seatDestroy          func(uintptr)
	seatSetCapabilities  func(uintptr, uint32)
	seatSetKeyboard      func(uintptr, uintptr)
	seatNotifyKey        func(uintptr, uint32, uint32, uint32)
	cursorCreate         func() uintptr
	cursorDestroy        func(uintptr)
	cursorAttachLayout   func(uintptr, uintptr)
	cursorAttachDevice   func(uintptr, uintptr)
	cursorMove           func(uintptr, uintptr, float64, float64)
	cursorWarpAbsolute   func(uintptr, uintptr, float64, float64)
	keyboardSetRepeat    func(uintptr, int32, int32)
	keyboardGetModifiers func(uintptr) uint32
	xdgShellCreate       func(uintptr) uintptr
	xdgSurfaceFromWlr    func(uintptr) uintptr
	toplevelSetSize      func(uintptr, uint32, uint32) uint32
	toplevelSetActivated func(uintptr, bool) uint32
	layerShellCreate     func(uintptr) uintptr

	// generated shim: listener node storage, list linkage, field accessors
	listenerNew    func(uintptr) uintptr
	listenerFree   func(uintptr)
	signalAdd      func(uintptr, uintptr)
	listenerRemove func(uintptr)
	signalOf       func(uintptr, uint32, string) uintptr

	// the notify_enter/notify_modifiers shim entry points read the keycode
	// and modifier state off the seat's current keyboard
	seatNotifyEnter     func(uintptr, uintptr)
	seatNotifyModifiers func(uintptr)

	outStr func(uintptr, uint32, string) string
	outI32 func(uintptr, uint32, string) int32
	outU32 func(uintptr, uint32, string) uint32
	outF32 func(uintptr, uint32, string) float32
	outF64 func(uintptr, uint32, string) float64
	outPtr func(uintptr, uint32, string) uintptr

	xdgGeometry func(uintptr, *int32, *int32, *int32, *int32)
}

// Open loads the native libraries and the generated accessor shim. The
// fallback chain over candidate sonames mirrors how installs differ across
// distributions.
func Open() (Lib, error) {
	wls, err := dlopenFirst(waylandServerNames)
	if err != nil {
		return nil, fmt.Errorf("ffi: loading libwayland-server: %w", err)
	}
	wlr, err := dlopenFirst(override("WAYBIND_LIBWLROOTS", wlrootsNames))
	if err != nil {
		return nil, fmt.Errorf("ffi: loading libwlroots: %w", err)
	}
	shim, err := dlopenFirst(override("WAYBIND_SHIM", shimNames))
	if err != nil {
		return nil, fmt.Errorf("ffi: loading accessor shim: %w", err)
	}

	l := &nativeLib{}

	purego.RegisterLibFunc(&l.displayCreate, wls, "wl_display_create")
	purego.RegisterLibFunc(&l.displayDestroy, wls, "wl_display_destroy")
	purego.RegisterLibFunc(&l.displayAddSocketAuto, wls, "wl_display_add_socket_auto")
	purego.RegisterLibFunc(&l.displayAddSocket, wls, "wl_display_add_socket")
	purego.RegisterLibFunc(&l.displayRun, wls, "wl_display_run")
	purego.RegisterLibFunc(&l.displayTerminate, wls, "wl_display_terminate")
	purego.RegisterLibFunc(&l.displayFlush, wls, "wl_display_flush_clients")
	purego.RegisterLibFunc(&l.displayGetEventLoop, wls, "wl_display_get_event_loop")
	purego.RegisterLibFunc(&l.eventLoopDispatch, wls, "wl_event_loop_dispatch")
	purego.RegisterLibFunc(&l.eventLoopGetFD, wls, "wl_event_loop_get_fd")

	purego.RegisterLibFunc(&l.backendAutocreate, wlr, "wlr_backend_autocreate")
	purego.RegisterLibFunc(&l.backendStart, wlr, "wlr_backend_start")
	purego.RegisterLibFunc(&l.backendDestroy, wlr, "wlr_backend_destroy")
	purego.RegisterLibFunc(&l.backendGetRenderer, wlr, "wlr_backend_get_renderer")
	purego.RegisterLibFunc(&l.rendererInitDisplay, wlr, "wlr_renderer_init_wl_display")
	purego.RegisterLibFunc(&l.compositorCreate, wlr, "wlr_compositor_create")
	purego.RegisterLibFunc(&l.dataDeviceMgrCreate, wlr, "wlr_data_device_manager_create")
	purego.RegisterLibFunc(&l.outputLayoutCreate, wlr, "wlr_output_layout_create")
	purego.RegisterLibFunc(&l.outputLayoutDestroy, wlr, "wlr_output_layout_destroy")
	purego.RegisterLibFunc(&l.outputLayoutAddAuto, wlr, "wlr_output_layout_add_auto")
	purego.RegisterLibFunc(&l.outputLayoutCoords, wlr, "wlr_output_layout_output_coords")
	purego.RegisterLibFunc(&l.outputEnable, wlr, "wlr_output_enable")
	purego.RegisterLibFunc(&l.outputPreferredMode, wlr, "wlr_output_preferred_mode")
	purego.RegisterLibFunc(&l.outputSetMode, wlr, "wlr_output_set_mode")
	purego.RegisterLibFunc(&l.outputCommit, wlr, "wlr_output_commit")
	purego.RegisterLibFunc(&l.outputCreateGlobal, wlr, "wlr_output_create_global")
	purego.RegisterLibFunc(&l.seatCreate, wlr, "wlr_seat_create")
	purego.RegisterLibFunc(&l.seatDestroy, wlr, "wlr_seat_destroy")
	purego.RegisterLibFunc(&l.seatSetCapabilities, wlr, "wlr_seat_set_capabilities")
	purego.RegisterLibFunc(&l.seatSetKeyboard, wlr, "wlr_seat_set_keyboard")
	purego.RegisterLibFunc(&l.seatNotifyKey, wlr, "wlr_seat_keyboard_notify_key")
	purego.RegisterLibFunc(&l.cursorCreate, wlr, "wlr_cursor_create")
	purego.RegisterLibFunc(&l.cursorDestroy, wlr, "wlr_cursor_destroy")
	purego.RegisterLibFunc(&l.cursorAttachLayout, wlr, "wlr_cursor_attach_output_layout")
	purego.RegisterLibFunc(&l.cursorAttachDevice, wlr, "wlr_cursor_attach_input_device")
	purego.RegisterLibFunc(&l.cursorMove, wlr, "wlr_cursor_move")
	purego.RegisterLibFunc(&l.cursorWarpAbsolute, wlr, "wlr_cursor_warp_absolute")
	purego.RegisterLibFunc(&l.keyboardSetRepeat, wlr, "wlr_keyboard_set_repeat_info")
	purego.RegisterLibFunc(&l.keyboardGetModifiers, wlr, "wlr_keyboard_get_modifiers")
	purego.RegisterLibFunc(&l.xdgShellCreate, wlr, "wlr_xdg_shell_create")
	purego.RegisterLibFunc(&l.xdgSurfaceFromWlr, wlr, "wlr_xdg_surface_from_wlr_surface")
	purego.RegisterLibFunc(&l.toplevelSetSize, wlr, "wlr_xdg_toplevel_set_size")
	purego.RegisterLibFunc(&l.toplevelSetActivated, wlr, "wlr_xdg_toplevel_set_activated")
	purego.RegisterLibFunc(&l.layerShellCreate, wlr, "wlr_layer_shell_v1_create")

	purego.RegisterLibFunc(&l.listenerNew, shim, "waybind_listener_new")
	purego.RegisterLibFunc(&l.listenerFree, shim, "waybind_listener_free")
	purego.RegisterLibFunc(&l.signalAdd, shim, "waybind_signal_add")
	purego.RegisterLibFunc(&l.listenerRemove, shim, "waybind_listener_remove")
	purego.RegisterLibFunc(&l.signalOf, shim, "waybind_signal_of")
	purego.RegisterLibFunc(&l.seatNotifyEnter, shim, "waybind_seat_keyboard_notify_enter")
	purego.RegisterLibFunc(&l.seatNotifyModifiers, shim, "waybind_seat_keyboard_notify_modifiers")
	purego.RegisterLibFunc(&l.outStr, shim, "waybind_field_str")
	purego.RegisterLibFunc(&l.outI32, shim, "waybind_field_i32")
	purego.RegisterLibFunc(&l.outU32, shim, "waybind_field_u32")
	purego.RegisterLibFunc(&l.outF32, shim, "waybind_field_f32")
	purego.RegisterLibFunc(&l.outF64, shim, "waybind_field_f64")
	purego.RegisterLibFunc(&l.outPtr, shim, "waybind_field_ptr")
	purego.RegisterLibFunc(&l.xdgGeometry, shim, "waybind_xdg_surface_geometry")

	return l, nil
}

func override(env string, defaults []string) []string {
	if v := os.Getenv(env); v != "" {
		return []string{v}
	}
	return defaults
}

func dlopenFirst(names []string) (uintptr, error) {
	var lastErr error
	for _, name := range names {
		h, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			return h, nil
		}
		lastErr = err
	}
	return 0, lastErr
}

func (l *nativeLib) SetDispatcher(fn DispatchFunc) {
	l.dispatch = fn
	// One C-callable trampoline for every listener node. purego callbacks
	// are a finite resource, so fan-out happens by node address on the Go
	// side rather than one callback per listener.
	l.trampoline = purego.NewCallback(func(listener, data uintptr) uintptr {
		l.dispatch(Handle(listener), Handle(data))
		return 0
	})
}

func (l *nativeLib) NewListener() (Handle, error) {
	if l.trampoline == 0 {
		return Null, fmt.Errorf("ffi: no dispatcher installed")
	}
	node := l.listenerNew(l.trampoline)
	if node == 0 {
		return Null, fmt.Errorf("ffi: listener allocation failed")
	}
	return Handle(node), nil
}

func (l *nativeLib) FreeListener(node Handle) { l.listenerFree(uintptr(node)) }
func (l *nativeLib) SignalAdd(sig, node Handle) { l.signalAdd(uintptr(sig), uintptr(node)) }
func (l *nativeLib) ListenerRemove(node Handle) { l.listenerRemove(uintptr(node)) }

func (l *nativeLib) DisplayCreate() (Handle, error) {
	h := l.displayCreate()
	if h == 0 {
		return Null, fmt.Errorf("ffi: wl_display_create failed")
	}
	return Handle(h), nil
}

func (l *nativeLib) DisplayDestroy(d Handle) { l.displayDestroy(uintptr(d)) }

func (l *nativeLib) DisplayAddSocketAuto(d Handle) (string, error) {
	s := l.displayAddSocketAuto(uintptr(d))
	if s == "" {
		return "", fmt.Errorf("ffi: wl_display_add_socket_auto failed")
	}
	return s, nil
}

func (l *nativeLib) DisplayAddSocket(d Handle, name string) error {
	if rc := l.displayAddSocket(uintptr(d), name); rc != 0 {
		return fmt.Errorf("ffi: wl_display_add_socket(%q) failed", name)
	}
	return nil
}

func (l *nativeLib) DisplayRun(d Handle) { l.displayRun(uintptr(d)) }
func (l *nativeLib) DisplayTerminate(d Handle) { l.displayTerminate(uintptr(d)) }
func (l *nativeLib) DisplayFlushClients(d Handle) { l.displayFlush(uintptr(d)) }

func (l *nativeLib) DisplayEventLoop(d Handle) Handle {
	return Handle(l.displayGetEventLoop(uintptr(d)))
}

func (l *nativeLib) EventLoopDispatch(loop Handle, timeout time.Duration) (int, error) {
	ms := int32(-1)
	if timeout >= 0 {
		ms = int32(timeout / time.Millisecond)
	}
	n := l.eventLoopDispatch(uintptr(loop), ms)
	if n < 0 {
		return 0, fmt.Errorf("ffi: wl_event_loop_dispatch failed")
	}
	return int(n), nil
}

func (l *nativeLib) EventLoopFD(loop Handle) int {
	return int(l.eventLoopGetFD(uintptr(loop)))
}

func (l *nativeLib) BackendAutocreate(d Handle) (Handle, error) {
	h := l.backendAutocreate(uintptr(d))
	if h == 0 {
		return Null, fmt.Errorf("ffi: wlr_backend_autocreate failed")
	}
	return Handle(h), nil
}

func (l *nativeLib) BackendStart(b Handle) error {
	if !l.backendStart(uintptr(b)) {
		return fmt.Errorf("ffi: wlr_backend_start failed")
	}
	return nil
}

func (l *nativeLib) BackendDestroy(b Handle) { l.backendDestroy(uintptr(b)) }

func (l *nativeLib) BackendRenderer(b Handle) Handle {
	return Handle(l.backendGetRenderer(uintptr(b)))
}

func (l *nativeLib) RendererInitDisplay(r, d Handle) {
	l.rendererInitDisplay(uintptr(r), uintptr(d))
}

func (l *nativeLib) CompositorCreate(d, r Handle) (Handle, error) {
	h := l.compositorCreate(uintptr(d), uintptr(r))
	if h == 0 {
		return Null, fmt.Errorf("ffi: wlr_compositor_create failed")
	}
	return Handle(h), nil
}

func (l *nativeLib) DataDeviceManagerCreate(d Handle) (Handle, error) {
	h := l.dataDeviceMgrCreate(uintptr(d))
	if h == 0 {
		return Null, fmt.Errorf("ffi: wlr_data_device_manager_create failed")
	}
	return Handle(h), nil
}

func (l *nativeLib) OutputLayoutCreate() (Handle, error) {
	h := l.outputLayoutCreate()
	if h == 0 {
		return Null, fmt.Errorf("ffi: wlr_output_layout_create failed")
	}
	return Handle(h), nil
}

func (l *nativeLib) OutputLayoutDestroy(layout Handle) { l.outputLayoutDestroy(uintptr(layout)) }

func (l *nativeLib) OutputLayoutAddAuto(layout, output Handle) {
	l.outputLayoutAddAuto(uintptr(layout), uintptr(output))
}

func (l *nativeLib) OutputLayoutCoords(layout, output Handle) (float64, float64) {
	var x, y float64
	l.outputLayoutCoords(uintptr(layout), uintptr(output), &x, &y)
	return x, y
}

func (l *nativeLib) OutputEnable(o Handle, enabled bool) { l.outputEnable(uintptr(o), enabled) }

func (l *nativeLib) OutputPreferredMode(o Handle) Handle {
	return Handle(l.outputPreferredMode(uintptr(o)))
}

func (l *nativeLib) OutputSetMode(o, mode Handle) { l.outputSetMode(uintptr(o), uintptr(mode)) }
func (l *nativeLib) OutputCommit(o Handle) bool { return l.outputCommit(uintptr(o)) }
func (l *nativeLib) OutputCreateGlobal(o Handle) { l.outputCreateGlobal(uintptr(o)) }

func (l *nativeLib) SeatCreate(d Handle, name string) (Handle, error) {
	h := l.seatCreate(uintptr(d), name)
	if h == 0 {
		return Null, fmt.Errorf("ffi: wlr_seat_create failed")
	}
	return Handle(h), nil
}

func (l *nativeLib) SeatDestroy(s Handle) { l.seatDestroy(uintptr(s)) }
func (l *nativeLib) SeatSetCapabilities(s Handle, caps uint32) { l.seatSetCapabilities(uintptr(s), caps) }
func (l *nativeLib) SeatSetKeyboard(s, k Handle) { l.seatSetKeyboard(uintptr(s), uintptr(k)) }

func (l *nativeLib) SeatKeyboardNotifyEnter(s, surface Handle) {
	l.seatNotifyEnter(uintptr(s), uintptr(surface))
}

func (l *nativeLib) SeatKeyboardNotifyKey(s Handle, timeMsec, key, state uint32) {
	l.seatNotifyKey(uintptr(s), timeMsec, key, state)
}

func (l *nativeLib) SeatKeyboardNotifyModifiers(s Handle) {
	l.seatNotifyModifiers(uintptr(s))
}

func (l *nativeLib) CursorCreate() (Handle, error) {
	h := l.cursorCreate()
	if h == 0 {
		return Null, fmt.Errorf("ffi: wlr_cursor_create failed")
	}
	return Handle(h), nil
}

func (l *nativeLib) CursorDestroy(c Handle) { l.cursorDestroy(uintptr(c)) }

func (l *nativeLib) CursorAttachOutputLayout(c, layout Handle) {
	l.cursorAttachLayout(uintptr(c), uintptr(layout))
}

func (l *nativeLib) CursorAttachInputDevice(c, dev Handle) {
	l.cursorAttachDevice(uintptr(c), uintptr(dev))
}

func (l *nativeLib) CursorMove(c, dev Handle, dx, dy float64) {
	l.cursorMove(uintptr(c), uintptr(dev), dx, dy)
}

func (l *nativeLib) CursorWarpAbsolute(c, dev Handle, x, y float64) {
	l.cursorWarpAbsolute(uintptr(c), uintptr(dev), x, y)
}

func (l *nativeLib) KeyboardSetRepeatInfo(k Handle, rate, delay int32) {
	l.keyboardSetRepeat(uintptr(k), rate, delay)
}

func (l *nativeLib) KeyboardModifiersMask(k Handle) uint32 {
	return l.keyboardGetModifiers(uintptr(k))
}

func (l *nativeLib) XDGShellCreate(d Handle) (Handle, error) {
	h := l.xdgShellCreate(uintptr(d))
	if h == 0 {
		return Null, fmt.Errorf("ffi: wlr_xdg_shell_create failed")
	}
	return Handle(h), nil
}

func (l *nativeLib) XDGSurfaceGeometry(s Handle) (int32, int32, int32, int32) {
	var x, y, w, h int32
	l.xdgGeometry(uintptr(s), &x, &y, &w, &h)
	return x, y, w, h
}

func (l *nativeLib) XDGSurfaceFromSurface(s Handle) Handle {
	return Handle(l.xdgSurfaceFromWlr(uintptr(s)))
}

func (l *nativeLib) XDGToplevelSetSize(s Handle, w, h uint32) uint32 {
	return l.toplevelSetSize(uintptr(s), w, h)
}

func (l *nativeLib) XDGToplevelSetActivated(s Handle, activated bool) uint32 {
	return l.toplevelSetActivated(uintptr(s), activated)
}

func (l *nativeLib) LayerShellCreate(d Handle) (Handle, error) {
	h := l.layerShellCreate(uintptr(d))
	if h == 0 {
		return Null, fmt.Errorf("ffi: wlr_layer_shell_v1_create failed")
	}
	return Handle(h), nil
}
