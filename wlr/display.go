package wlr

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/runlevelzero/waybind/ffi"
)

// Display is the event loop bridge: it owns the native display, the object
// cache, and the dispatch cycle. All signal firings happen synchronously
// inside Run or Dispatch, on the goroutine that called them; this layer
// never spawns goroutines on the application's behalf. Calling Run or
// Dispatch from inside a callback fails with ErrReentrantDispatch.
//
// The binding provides no internal locking. Applications touching one
// display from several goroutines must serialize every call themselves,
// matching the native library's single-thread affinity.
type Display struct {
	resource
	lib  ffi.Lib
	loop ffi.Handle

	cache       *objectCache
	dispatching bool
	socket      string
}

// NewDisplay creates the native display and installs the notify trampoline.
func NewDisplay(lib ffi.Lib) (*Display, error) {
	lib.SetDispatcher(dispatchNotify)
	h, err := lib.DisplayCreate()
	if err != nil {
		return nil, fmt.Errorf("wlr: creating display: %w", err)
	}
	d := &Display{lib: lib}
	d.cache = newObjectCache(d)
	if err := d.adopt(&d.resource, h, ffi.TypeDisplay, d, true); err != nil {
		lib.DisplayDestroy(h)
		return nil, err
	}
	d.loop = lib.DisplayEventLoop(h)
	return d, nil
}

// AddSocketAuto binds the display to the first free wayland socket and
// returns its name.
func (d *Display) AddSocketAuto() (string, error) {
	if err := d.guard(); err != nil {
		return "", err
	}
	name, err := d.lib.DisplayAddSocketAuto(d.h)
	if err != nil {
		return "", fmt.Errorf("wlr: adding socket: %w", err)
	}
	d.socket = name
	return name, nil
}

// AddSocket binds the display to the named wayland socket.
func (d *Display) AddSocket(name string) error {
	if err := d.guard(); err != nil {
		return err
	}
	if err := d.lib.DisplayAddSocket(d.h, name); err != nil {
		return fmt.Errorf("wlr: adding socket %q: %w", name, err)
	}
	d.socket = name
	return nil
}

// Socket returns the name bound by AddSocketAuto or AddSocket, or "".
func (d *Display) Socket() string { return d.socket }

// Run blocks, repeatedly polling and dispatching, until Terminate is
// called. Already-queued events finish dispatching before Run returns.
func (d *Display) Run() error {
	if err := d.guard(); err != nil {
		return err
	}
	if d.dispatching {
		return ErrReentrantDispatch
	}
	d.dispatching = true
	defer func() { d.dispatching = false }()
	d.lib.DisplayRun(d.h)
	return nil
}

// Dispatch performs a single poll/dispatch step, returning the number of
// events dispatched. A zero timeout polls without blocking; a negative
// timeout blocks until work arrives.
func (d *Display) Dispatch(timeout time.Duration) (int, error) {
	if err := d.guard(); err != nil {
		return 0, err
	}
	if d.dispatching {
		return 0, ErrReentrantDispatch
	}
	d.dispatching = true
	defer func() { d.dispatching = false }()
	return d.lib.EventLoopDispatch(d.loop, timeout)
}

// Terminate asks a running Run to stop. Cooperative: the flag is observed
// at the top of the next poll iteration, so dispatch of events already in
// flight completes first. Safe to call from inside a callback.
func (d *Display) Terminate() error {
	if err := d.guard(); err != nil {
		return err
	}
	d.lib.DisplayTerminate(d.h)
	return nil
}

// FlushClients writes pending protocol data out to clients.
func (d *Display) FlushClients() error {
	if err := d.guard(); err != nil {
		return err
	}
	d.lib.DisplayFlushClients(d.h)
	return nil
}

// EventLoopFD exposes the native poll fd for integration with an external
// event loop. Wait for it to become readable, then call Dispatch(0).
func (d *Display) EventLoopFD() (int, error) {
	if err := d.guard(); err != nil {
		return 0, err
	}
	return d.lib.EventLoopFD(d.loop), nil
}

// WaitReadable polls the event loop fd until it is readable or the timeout
// elapses. Returns unix.ETIMEDOUT on timeout.
func (d *Display) WaitReadable(timeout time.Duration) error {
	fd, err := d.EventLoopFD()
	if err != nil {
		return err
	}
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}
	n, err := unix.Poll(fds, ms)
	if err != nil {
		return fmt.Errorf("wlr: polling event loop fd: %w", err)
	}
	if n == 0 {
		return unix.ETIMEDOUT
	}
	return nil
}

// Destroy tears the display down: every live wrapper is invalidated and
// evicted, then the native display is destroyed. Must not be called from
// inside a callback.
func (d *Display) Destroy() error {
	if err := d.guard(); err != nil {
		return err
	}
	if d.dispatching {
		return ErrReentrantDispatch
	}
	h := d.h
	d.cache.purge()
	d.lib.DisplayDestroy(h)
	return nil
}

// CachedObjects reports how many wrappers the object cache currently holds.
func (d *Display) CachedObjects() int { return d.cache.size() }
