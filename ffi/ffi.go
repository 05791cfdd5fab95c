// Package ffi is the boundary between the binding layer and the native
// compositor library. Everything above this package talks to native memory
// exclusively through the Lib interface: an opaque Handle plus a Type tag is
// all a caller ever holds, and every read, write, call and listener
// registration is routed through a Lib implementation.
//
// Two implementations exist: the purego-loaded real library (linux) and the
// in-memory fake in ffitest used by tests and headless demo runs.
package ffi

import "time"

// Handle is an address-sized opaque reference to a native struct. It must
// never be dereferenced by managed code; once the native object behind it has
// been destroyed the handle is meaningless.
type Handle uintptr

// Null is the zero handle.
const Null Handle = 0

// Type identifies which native struct layout a Handle refers to.
type Type uint32

const (
	TypeInvalid Type = iota
	TypeDisplay
	TypeEventLoop
	TypeBackend
	TypeRenderer
	TypeCompositor
	TypeDataDeviceManager
	TypeOutput
	TypeOutputMode
	TypeOutputLayout
	TypeSeat
	TypeInputDevice
	TypeKeyboard
	TypePointer
	TypeCursor
	TypeSurface
	TypeXDGShell
	TypeXDGSurface
	TypeXDGToplevel
	TypeLayerShell
	TypeLayerSurface
)

var typeNames = map[Type]string{
	TypeInvalid:           "invalid",
	TypeDisplay:           "wl_display",
	TypeEventLoop:         "wl_event_loop",
	TypeBackend:           "wlr_backend",
	TypeRenderer:          "wlr_renderer",
	TypeCompositor:        "wlr_compositor",
	TypeDataDeviceManager: "wlr_data_device_manager",
	TypeOutput:            "wlr_output",
	TypeOutputMode:        "wlr_output_mode",
	TypeOutputLayout:      "wlr_output_layout",
	TypeSeat:              "wlr_seat",
	TypeInputDevice:       "wlr_input_device",
	TypeKeyboard:          "wlr_keyboard",
	TypePointer:           "wlr_pointer",
	TypeCursor:            "wlr_cursor",
	TypeSurface:           "wlr_surface",
	TypeXDGShell:          "wlr_xdg_shell",
	TypeXDGSurface:        "wlr_xdg_surface",
	TypeXDGToplevel:       "wlr_xdg_toplevel",
	TypeLayerShell:        "wlr_layer_shell_v1",
	TypeLayerSurface:      "wlr_layer_surface_v1",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// DispatchFunc is the managed target of the native notify trampoline. The
// native emit machinery calls it with the address of the listener node that
// fired and the raw event payload pointer (Null when the signal carries no
// payload). All listener nodes share one trampoline; fan-out by node address
// happens above this package.
type DispatchFunc func(listener, data Handle)

// Lib is the complete native surface the binding layer needs. The accessor
// half of the interface (per-struct field reads, signal address lookup,
// event payload decoding) lives in accessors.go and is produced by the
// code-generation step from the native headers.
type Lib interface {
	// SetDispatcher installs the process-wide notify target. Must be called
	// before any listener node is allocated; later calls replace the target
	// for nodes allocated afterwards only on the fake, so callers install it
	// exactly once per Lib.
	SetDispatcher(fn DispatchFunc)

	// NewListener allocates one native listener node wired to the shared
	// trampoline. The node's memory stays fixed until FreeListener.
	NewListener() (Handle, error)
	// FreeListener releases a node. The node must be unlinked.
	FreeListener(node Handle)
	// SignalAdd links node at the tail of the signal's listener list.
	SignalAdd(sig, node Handle)
	// ListenerRemove unlinks node from whatever list it is on and
	// reinitializes its linkage so a second remove is harmless.
	ListenerRemove(node Handle)

	DisplayCreate() (Handle, error)
	DisplayDestroy(display Handle)
	DisplayAddSocketAuto(display Handle) (string, error)
	DisplayAddSocket(display Handle, name string) error
	DisplayRun(display Handle)
	DisplayTerminate(display Handle)
	DisplayFlushClients(display Handle)
	DisplayEventLoop(display Handle) Handle
	// EventLoopDispatch performs one poll/dispatch step. A zero timeout
	// polls without blocking; a negative timeout blocks until work arrives.
	EventLoopDispatch(loop Handle, timeout time.Duration) (int, error)
	EventLoopFD(loop Handle) int

	BackendAutocreate(display Handle) (Handle, error)
	BackendStart(backend Handle) error
	BackendDestroy(backend Handle)
	BackendRenderer(backend Handle) Handle
	RendererInitDisplay(renderer, display Handle)

	CompositorCreate(display, renderer Handle) (Handle, error)
	DataDeviceManagerCreate(display Handle) (Handle, error)

	OutputLayoutCreate() (Handle, error)
	OutputLayoutDestroy(layout Handle)
	OutputLayoutAddAuto(layout, output Handle)
	OutputLayoutCoords(layout, output Handle) (x, y float64)

	OutputEnable(output Handle, enabled bool)
	OutputPreferredMode(output Handle) Handle
	OutputSetMode(output, mode Handle)
	OutputCommit(output Handle) bool
	OutputCreateGlobal(output Handle)

	SeatCreate(display Handle, name string) (Handle, error)
	SeatDestroy(seat Handle)
	SeatSetCapabilities(seat Handle, caps uint32)
	SeatSetKeyboard(seat, keyboard Handle)
	SeatKeyboardNotifyEnter(seat, surface Handle)
	SeatKeyboardNotifyKey(seat Handle, timeMsec, key, state uint32)
	SeatKeyboardNotifyModifiers(seat Handle)

	CursorCreate() (Handle, error)
	CursorDestroy(cursor Handle)
	CursorAttachOutputLayout(cursor, layout Handle)
	CursorAttachInputDevice(cursor, device Handle)
	CursorMove(cursor, device Handle, dx, dy float64)
	CursorWarpAbsolute(cursor, device Handle, x, y float64)

	KeyboardSetRepeatInfo(keyboard Handle, rate, delay int32)
	KeyboardModifiersMask(keyboard Handle) uint32

	XDGShellCreate(display Handle) (Handle, error)
	XDGSurfaceGeometry(surface Handle) (x, y, width, height int32)
	XDGSurfaceFromSurface(surface Handle) Handle
	XDGToplevelSetSize(surface Handle, width, height uint32) uint32
	XDGToplevelSetActivated(surface Handle, activated bool) uint32

	LayerShellCreate(display Handle) (Handle, error)

	Accessors
}
