// Package ffitest provides an in-memory implementation of ffi.Lib for tests
// and headless demo runs. It fabricates a handle space, keeps per-object
// signal lists with the native emit machinery's removal-safe iteration, and
// lets callers fire signals and destroy objects on demand.
package ffitest

import (
	"fmt"
	"time"

	"github.com/runlevelzero/waybind/ffi"
)

// Fields holds every native struct field the accessor surface can read.
// Tests seed the fields they care about; zero values are fine elsewhere.
type Fields struct {
	Name, Make, Model string
	Title, AppID      string
	Namespace         string

	Width, Height, Refresh int32
	Scale                  float32
	Enabled                bool

	Capabilities uint32
	DeviceType   uint32
	Vendor       uint32
	Product      uint32

	Role  uint32
	Layer uint32

	Modifiers               uint32
	RepeatRate, RepeatDelay int32

	X, Y float64

	CurrentWidth, CurrentHeight int32
	GeomX, GeomY, GeomW, GeomH  int32

	// cross-object references (union members, parent/child pointers)
	Surface, Toplevel, XDGSurface ffi.Handle
	Keyboard, Pointer             ffi.Handle
	PreferredMode                 ffi.Handle
	FocusedSurface                ffi.Handle

	// event payload fields
	TimeMsec, Keycode, State    uint32
	Button, Source, Orientation uint32
	Serial, Edges              uint32
	UpdateState                bool
	Device                     ffi.Handle
	DeltaX, DeltaY, Delta      float64
}

type object struct {
	typ     ffi.Type
	fields  Fields
	signals map[string]ffi.Handle
	loop    ffi.Handle
}

type signalList struct {
	owner ffi.Handle
	kind  string
	nodes []ffi.Handle
}

type listenerNode struct {
	signal ffi.Handle // Null while unlinked
}

// Lib is the fake native library. Not safe for concurrent use, matching the
// real library's single-thread affinity.
type Lib struct {
	dispatch ffi.DispatchFunc

	next      uintptr
	objects   map[ffi.Handle]*object
	signals   map[ffi.Handle]*signalList
	listeners map[ffi.Handle]*listenerNode
	payloads  map[ffi.Handle]*Fields

	queue      []func()
	terminated bool
	serial     uint32
}

var _ ffi.Lib = (*Lib)(nil)

func New() *Lib {
	return &Lib{
		next:      0x1000,
		objects:   make(map[ffi.Handle]*object),
		signals:   make(map[ffi.Handle]*signalList),
		listeners: make(map[ffi.Handle]*listenerNode),
		payloads:  make(map[ffi.Handle]*Fields),
	}
}

func (l *Lib) handle() ffi.Handle {
	l.next += 0x10
	return ffi.Handle(l.next)
}

// Signal sets declared by each native struct, per the library headers.
var signalKinds = map[ffi.Type][]string{
	ffi.TypeDisplay:      {"destroy"},
	ffi.TypeBackend:      {"destroy", "new_input", "new_output"},
	ffi.TypeRenderer:     {"destroy"},
	ffi.TypeCompositor:   {"new_surface", "destroy"},
	ffi.TypeOutput:       {"frame", "damage", "needs_frame", "precommit", "commit", "present", "enable", "mode", "scale", "transform", "description", "destroy"},
	ffi.TypeOutputLayout: {"add", "change", "destroy"},
	ffi.TypeSeat:         {"destroy", "request_set_cursor", "request_set_selection"},
	ffi.TypeInputDevice:  {"destroy"},
	ffi.TypeKeyboard:     {"key", "modifiers", "keymap", "repeat_info", "destroy"},
	ffi.TypePointer:      {"motion", "motion_absolute", "button", "axis", "frame"},
	ffi.TypeCursor:       {"motion", "motion_absolute", "button", "axis", "frame"},
	ffi.TypeSurface:      {"commit", "new_subsurface", "destroy"},
	ffi.TypeXDGShell:     {"new_surface", "destroy"},
	ffi.TypeXDGSurface:   {"map", "unmap", "destroy", "new_popup", "ping_timeout", "configure"},
	ffi.TypeXDGToplevel:  {"request_maximize", "request_fullscreen", "request_minimize", "request_move", "request_resize", "request_show_window_menu", "set_parent", "set_title", "set_app_id"},
	ffi.TypeLayerShell:   {"new_surface", "destroy"},
	ffi.TypeLayerSurface: {"map", "unmap", "destroy", "new_popup"},
}

// NewObject fabricates a native object of the given type with its declared
// signal set.
func (l *Lib) NewObject(t ffi.Type) ffi.Handle {
	h := l.handle()
	o := &object{typ: t, signals: make(map[string]ffi.Handle)}
	for _, kind := range signalKinds[t] {
		sh := l.handle()
		l.signals[sh] = &signalList{owner: h, kind: kind}
		o.signals[kind] = sh
	}
	l.objects[h] = o
	return h
}

// Fields returns the mutable field storage of an object so tests can seed
// accessor values. Panics on an unknown handle.
func (l *Lib) Fields(h ffi.Handle) *Fields {
	o, ok := l.objects[h]
	if !ok {
		panic(fmt.Sprintf("ffitest: no object at %#x", uintptr(h)))
	}
	return &o.fields
}

// NewPayload fabricates a transient event struct readable through the
// payload accessors.
func (l *Lib) NewPayload(f Fields) ffi.Handle {
	h := l.handle()
	l.payloads[h] = &f
	return h
}

// Emit fires the named signal on an object synchronously, walking the
// listener list the way the native emit machinery does: a listener removed
// mid-walk, including by an earlier callback, is never invoked; listeners
// added mid-walk fire on the next emit.
func (l *Lib) Emit(h ffi.Handle, kind string, data ffi.Handle) {
	o, ok := l.objects[h]
	if !ok {
		panic(fmt.Sprintf("ffitest: emit on unknown object %#x", uintptr(h)))
	}
	sh, ok := o.signals[kind]
	if !ok {
		panic(fmt.Sprintf("ffitest: %s has no signal %q", o.typ, kind))
	}
	l.emitSignal(sh, data)
}

func (l *Lib) emitSignal(sh ffi.Handle, data ffi.Handle) {
	sig, ok := l.signals[sh]
	if !ok {
		return
	}
	nodes := make([]ffi.Handle, len(sig.nodes))
	copy(nodes, sig.nodes)
	for _, node := range nodes {
		n, ok := l.listeners[node]
		if !ok || n.signal != sh {
			continue // removed during this walk
		}
		l.dispatch(node, data)
	}
}

// QueueEmit schedules an emit for the next dispatch step, modelling an event
// that arrives through the native poll loop.
func (l *Lib) QueueEmit(h ffi.Handle, kind string, data ffi.Handle) {
	l.queue = append(l.queue, func() { l.Emit(h, kind, data) })
}

// Queue schedules an arbitrary callback for the next dispatch step.
func (l *Lib) Queue(fn func()) {
	l.queue = append(l.queue, fn)
}

// DestroyObject fires the object's destroy signal (data is the object
// itself, as the native library does) and then frees its storage. Listeners
// still linked to its signals are force-unlinked, as freeing the native
// struct would.
func (l *Lib) DestroyObject(h ffi.Handle) {
	o, ok := l.objects[h]
	if !ok {
		panic(fmt.Sprintf("ffitest: destroy of unknown object %#x", uintptr(h)))
	}
	if sh, ok := o.signals["destroy"]; ok {
		l.emitSignal(sh, h)
	}
	for _, sh := range o.signals {
		if sig, ok := l.signals[sh]; ok {
			for _, node := range sig.nodes {
				if n, ok := l.listeners[node]; ok {
					n.signal = ffi.Null
				}
			}
		}
		delete(l.signals, sh)
	}
	delete(l.objects, h)
}

// ListenerCount reports how many listeners are linked to a signal.
func (l *Lib) ListenerCount(h ffi.Handle, kind string) int {
	o, ok := l.objects[h]
	if !ok {
		return 0
	}
	sh, ok := o.signals[kind]
	if !ok {
		return 0
	}
	return len(l.signals[sh].nodes)
}

// LiveListeners reports how many listener nodes are currently allocated,
// linked or not. Useful for leak assertions.
func (l *Lib) LiveListeners() int { return len(l.listeners) }

// --- ffi.Lib: trampoline and listener nodes ---

func (l *Lib) SetDispatcher(fn ffi.DispatchFunc) { l.dispatch = fn }

func (l *Lib) NewListener() (ffi.Handle, error) {
	if l.dispatch == nil {
		return ffi.Null, fmt.Errorf("ffitest: no dispatcher installed")
	}
	h := l.handle()
	l.listeners[h] = &listenerNode{}
	return h, nil
}

func (l *Lib) FreeListener(node ffi.Handle) {
	if n, ok := l.listeners[node]; ok && n.signal != ffi.Null {
		l.ListenerRemove(node)
	}
	delete(l.listeners, node)
}

func (l *Lib) SignalAdd(sh, node ffi.Handle) {
	sig, ok := l.signals[sh]
	if !ok {
		panic(fmt.Sprintf("ffitest: add to unknown signal %#x", uintptr(sh)))
	}
	n, ok := l.listeners[node]
	if !ok {
		panic(fmt.Sprintf("ffitest: add of unknown listener %#x", uintptr(node)))
	}
	sig.nodes = append(sig.nodes, node)
	n.signal = sh
}

func (l *Lib) ListenerRemove(node ffi.Handle) {
	n, ok := l.listeners[node]
	if !ok || n.signal == ffi.Null {
		return
	}
	if sig, ok := l.signals[n.signal]; ok {
		for i, cand := range sig.nodes {
			if cand == node {
				sig.nodes = append(sig.nodes[:i], sig.nodes[i+1:]...)
				break
			}
		}
	}
	n.signal = ffi.Null
}

// --- ffi.Lib: display and event loop ---

func (l *Lib) DisplayCreate() (ffi.Handle, error) {
	h := l.NewObject(ffi.TypeDisplay)
	l.objects[h].loop = l.NewObject(ffi.TypeEventLoop)
	return h, nil
}

func (l *Lib) DisplayDestroy(d ffi.Handle) {
	if o, ok := l.objects[d]; ok {
		delete(l.objects, o.loop)
		l.DestroyObject(d)
	}
}

func (l *Lib) DisplayAddSocketAuto(d ffi.Handle) (string, error) {
	return "wayland-9", nil
}

func (l *Lib) DisplayAddSocket(d ffi.Handle, name string) error {
	if name == "" {
		return fmt.Errorf("ffitest: empty socket name")
	}
	return nil
}

// DisplayRun drains dispatch steps until Terminate is called or no queued
// work remains. Returning on idle diverges from the real blocking loop but
// keeps headless runs and tests finite.
func (l *Lib) DisplayRun(d ffi.Handle) {
	for !l.terminated && len(l.queue) > 0 {
		l.step()
	}
	l.terminated = false
}

func (l *Lib) DisplayTerminate(d ffi.Handle) { l.terminated = true }
func (l *Lib) DisplayFlushClients(d ffi.Handle) {}

func (l *Lib) DisplayEventLoop(d ffi.Handle) ffi.Handle {
	if o, ok := l.objects[d]; ok {
		return o.loop
	}
	return ffi.Null
}

// step runs every event queued at the moment it starts; events queued by
// callbacks run on the next step, and a Terminate mid-step lets the batch
// finish first.
func (l *Lib) step() int {
	batch := l.queue
	l.queue = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

func (l *Lib) EventLoopDispatch(loop ffi.Handle, timeout time.Duration) (int, error) {
	return l.step(), nil
}

func (l *Lib) EventLoopFD(loop ffi.Handle) int { return -1 }

// --- ffi.Lib: constructors and operations ---

func (l *Lib) BackendAutocreate(d ffi.Handle) (ffi.Handle, error) {
	return l.NewObject(ffi.TypeBackend), nil
}

// BackendStart fabricates one output and one keyboard device and queues
// their arrival, the way a started headless backend advertises hardware.
func (l *Lib) BackendStart(b ffi.Handle) error {
	out := l.NewObject(ffi.TypeOutput)
	mode := l.NewObject(ffi.TypeOutputMode)
	mf := l.Fields(mode)
	mf.Width, mf.Height, mf.Refresh = 1920, 1080, 60000
	of := l.Fields(out)
	of.Name, of.Make, of.Model = "FAKE-1", "waybind", "headless"
	of.Scale = 1
	of.PreferredMode = mode

	kbd := l.NewObject(ffi.TypeKeyboard)
	dev := l.NewObject(ffi.TypeInputDevice)
	df := l.Fields(dev)
	df.Name = "fake-keyboard"
	df.DeviceType = uint32(0) // WLR_INPUT_DEVICE_KEYBOARD
	df.Keyboard = kbd

	l.QueueEmit(b, "new_output", out)
	l.QueueEmit(b, "new_input", dev)
	return nil
}

func (l *Lib) BackendDestroy(b ffi.Handle) { l.DestroyObject(b) }

func (l *Lib) BackendRenderer(b ffi.Handle) ffi.Handle {
	o, ok := l.objects[b]
	if !ok {
		return ffi.Null
	}
	if o.fields.Surface == ffi.Null { // renderer cached in a spare slot
		o.fields.Surface = l.NewObject(ffi.TypeRenderer)
	}
	return o.fields.Surface
}

func (l *Lib) RendererInitDisplay(r, d ffi.Handle) {}

func (l *Lib) CompositorCreate(d, r ffi.Handle) (ffi.Handle, error) {
	return l.NewObject(ffi.TypeCompositor), nil
}

func (l *Lib) DataDeviceManagerCreate(d ffi.Handle) (ffi.Handle, error) {
	return l.NewObject(ffi.TypeDataDeviceManager), nil
}

func (l *Lib) OutputLayoutCreate() (ffi.Handle, error) {
	return l.NewObject(ffi.TypeOutputLayout), nil
}

func (l *Lib) OutputLayoutDestroy(layout ffi.Handle) { l.DestroyObject(layout) }
func (l *Lib) OutputLayoutAddAuto(layout, output ffi.Handle) {}

func (l *Lib) OutputLayoutCoords(layout, output ffi.Handle) (float64, float64) {
	return 0, 0
}

func (l *Lib) OutputEnable(output ffi.Handle, enabled bool) {
	l.Fields(output).Enabled = enabled
}

func (l *Lib) OutputPreferredMode(output ffi.Handle) ffi.Handle {
	return l.Fields(output).PreferredMode
}

func (l *Lib) OutputSetMode(output, mode ffi.Handle) {
	of, mf := l.Fields(output), l.Fields(mode)
	of.Width, of.Height, of.Refresh = mf.Width, mf.Height, mf.Refresh
}

func (l *Lib) OutputCommit(output ffi.Handle) bool { return true }
func (l *Lib) OutputCreateGlobal(output ffi.Handle) {}

func (l *Lib) SeatCreate(d ffi.Handle, name string) (ffi.Handle, error) {
	h := l.NewObject(ffi.TypeSeat)
	l.Fields(h).Name = name
	return h, nil
}

func (l *Lib) SeatDestroy(s ffi.Handle) { l.DestroyObject(s) }

func (l *Lib) SeatSetCapabilities(s ffi.Handle, caps uint32) {
	l.Fields(s).Capabilities = caps
}

func (l *Lib) SeatSetKeyboard(s, k ffi.Handle) {
	l.Fields(s).Keyboard = k
}

func (l *Lib) SeatKeyboardNotifyEnter(s, surface ffi.Handle) {
	l.Fields(s).FocusedSurface = surface
}

func (l *Lib) SeatKeyboardNotifyKey(s ffi.Handle, timeMsec, key, state uint32) {
	f := l.Fields(s)
	f.TimeMsec, f.Keycode, f.State = timeMsec, key, state
}

func (l *Lib) SeatKeyboardNotifyModifiers(s ffi.Handle) {
	f := l.Fields(s)
	if f.Keyboard != 0 {
		f.Modifiers = l.Fields(f.Keyboard).Modifiers
	}
}

func (l *Lib) CursorCreate() (ffi.Handle, error) {
	return l.NewObject(ffi.TypeCursor), nil
}

func (l *Lib) CursorDestroy(c ffi.Handle) { l.DestroyObject(c) }

func (l *Lib) CursorAttachOutputLayout(c, layout ffi.Handle) {}
func (l *Lib) CursorAttachInputDevice(c, dev ffi.Handle) {}

func (l *Lib) CursorMove(c, dev ffi.Handle, dx, dy float64) {
	f := l.Fields(c)
	f.X += dx
	f.Y += dy
}

func (l *Lib) CursorWarpAbsolute(c, dev ffi.Handle, x, y float64) {
	f := l.Fields(c)
	f.X, f.Y = x, y
}

func (l *Lib) KeyboardSetRepeatInfo(k ffi.Handle, rate, delay int32) {
	f := l.Fields(k)
	f.RepeatRate, f.RepeatDelay = rate, delay
}

func (l *Lib) KeyboardModifiersMask(k ffi.Handle) uint32 {
	return l.Fields(k).Modifiers
}

func (l *Lib) XDGShellCreate(d ffi.Handle) (ffi.Handle, error) {
	return l.NewObject(ffi.TypeXDGShell), nil
}

func (l *Lib) XDGSurfaceGeometry(s ffi.Handle) (int32, int32, int32, int32) {
	f := l.Fields(s)
	return f.GeomX, f.GeomY, f.GeomW, f.GeomH
}

func (l *Lib) XDGSurfaceFromSurface(s ffi.Handle) ffi.Handle {
	return l.Fields(s).XDGSurface
}

func (l *Lib) XDGToplevelSetSize(s ffi.Handle, w, h uint32) uint32 {
	l.serial++
	return l.serial
}

func (l *Lib) XDGToplevelSetActivated(s ffi.Handle, activated bool) uint32 {
	l.serial++
	return l.serial
}

func (l *Lib) LayerShellCreate(d ffi.Handle) (ffi.Handle, error) {
	return l.NewObject(ffi.TypeLayerShell), nil
}
