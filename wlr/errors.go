package wlr

import (
	"errors"
	"fmt"

	"github.com/runlevelzero/waybind/ffi"
)

var (
	// ErrUseAfterDestroy reports an accessor or subscribe call on a wrapper
	// whose native object is gone. The address behind the wrapper may
	// already belong to an unrelated allocation, so the call is refused
	// outright instead of risking a stale dereference.
	ErrUseAfterDestroy = errors.New("use after destroy")

	// ErrDoubleRegistration reports an attempt to link a listener that is
	// already linked to a signal.
	ErrDoubleRegistration = errors.New("listener already linked")

	// ErrReentrantDispatch reports a blocking dispatch call made from
	// inside a signal callback. The native event loop is single-threaded;
	// re-entering it deadlocks or corrupts state.
	ErrReentrantDispatch = errors.New("reentrant dispatch")
)

// UnknownTypeError reports a cache lookup for a native type no wrapper
// factory is registered for.
type UnknownTypeError struct {
	Type ffi.Type
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("no wrapper factory for native type %s", e.Type)
}
