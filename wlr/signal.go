package wlr

import (
	"fmt"
	"sync"

	"github.com/runlevelzero/waybind/ffi"
	"github.com/runlevelzero/waybind/internal/logger"
)

// Event is what a listener callback receives: the wrapper whose signal
// fired, the signal kind, and the decoded payload (nil for payload-free
// signals).
type Event struct {
	Source Resource
	Kind   string
	Data   any
}

// Callback is a managed listener callback. A panic inside a callback is
// recovered and logged; it never crosses into native frames and never stops
// later listeners on the same signal from firing.
type Callback func(Event)

// dispatchRegistry maps native listener-node addresses to their adapters.
// The shared notify trampoline is installed process-wide, so the registry is
// process-wide too; it is the one concurrent structure in this package.
var dispatchRegistry sync.Map // ffi.Handle -> *Listener

// dispatchNotify is the managed end of the native notify trampoline.
func dispatchNotify(node, data ffi.Handle) {
	v, ok := dispatchRegistry.Load(node)
	if !ok {
		// node freed between emit snapshot and invocation; expected
		return
	}
	v.(*Listener).fire(data)
}

// Signal is one native signal on one wrapper: an ordered listener list that
// the native library's emit machinery walks. Listeners fire in registration
// order.
type Signal struct {
	owner  *resource
	handle ffi.Handle
	kind   string
	decode payloadDecoder
}

// Kind returns the signal's name, e.g. "frame" or "new_output".
func (s *Signal) Kind() string { return s.kind }

// Listener bridges one native listener node to one managed callback. A
// listener owns its node's memory for exactly the span it is linked; Add
// allocates and links, Close (or Signal.Remove) unlinks and frees.
type Listener struct {
	sig    *Signal
	cb     Callback
	node   ffi.Handle
	linked bool
}

// NewListener returns an unlinked listener for cb. Link it with Signal.Add.
func NewListener(cb Callback) *Listener {
	return &Listener{cb: cb}
}

// Add links l at the tail of the signal's listener list. A Signal held past
// its owner's destruction fails with ErrUseAfterDestroy; the native signal
// address is freed memory by then. Linking an already-linked listener is a
// logic error and fails with ErrDoubleRegistration.
func (s *Signal) Add(l *Listener) error {
	if err := s.owner.guard(); err != nil {
		return fmt.Errorf("signal %q: %w", s.kind, err)
	}
	if l.linked {
		return fmt.Errorf("signal %q: %w", s.kind, ErrDoubleRegistration)
	}
	lib := s.owner.d.lib
	node, err := lib.NewListener()
	if err != nil {
		return fmt.Errorf("signal %q: %w", s.kind, err)
	}
	l.sig = s
	l.node = node
	dispatchRegistry.Store(node, l)
	lib.SignalAdd(s.handle, node)
	l.linked = true
	s.owner.listeners = append(s.owner.listeners, l)
	return nil
}

// Remove unlinks l. Removing an unlinked listener is a no-op: teardown
// races between native destroy and managed disposal are expected.
func (s *Signal) Remove(l *Listener) { l.Close() }

// Close unlinks the listener's node and frees it. Idempotent; safe to call
// from inside a fire of the same signal, and a no-op after the owner's
// teardown has already released the node.
func (l *Listener) Close() {
	if !l.linked {
		return
	}
	l.linked = false
	owner := l.sig.owner
	lib := owner.d.lib
	lib.ListenerRemove(l.node)
	dispatchRegistry.Delete(l.node)
	lib.FreeListener(l.node)
	l.node = ffi.Null
	owner.forget(l)
}

// fire runs on the dispatch thread, inside the native emit walk. The recover
// covers payload decoding as well as the callback: no panic may unwind
// through native frames.
func (l *Listener) fire(data ffi.Handle) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("listener panicked",
				"signal", l.sig.kind, "source", l.sig.owner.t.String(), "panic", r)
		}
	}()
	owner := l.sig.owner
	if !owner.valid {
		// the wrapper was invalidated while this emit was in flight; the
		// fire is dropped, not an error
		return
	}
	ev := Event{Source: owner.self, Kind: l.sig.kind}
	if l.sig.decode != nil {
		v, err := l.sig.decode(owner.d, data)
		if err != nil {
			logger.Error("dropping signal payload",
				"signal", l.sig.kind, "source", owner.t.String(), "error", err)
			return
		}
		ev.Data = v
	}
	l.cb(ev)
}

// Subscription undoes one On registration.
type Subscription struct {
	remove func()
}

// Remove detaches the subscription. Idempotent.
func (s *Subscription) Remove() {
	if s.remove != nil {
		s.remove()
		s.remove = nil
	}
}
