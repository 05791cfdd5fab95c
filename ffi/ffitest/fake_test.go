package ffitest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runlevelzero/waybind/ffi"
)

func TestEmitSnapshotSkipsRemovedNodes(t *testing.T) {
	l := New()
	var fired []ffi.Handle
	l.SetDispatcher(func(node, data ffi.Handle) { fired = append(fired, node) })

	h := l.NewObject(ffi.TypeOutput)
	sh := l.SignalOf(h, ffi.TypeOutput, "frame")
	require.NotEqual(t, ffi.Null, sh)

	a, err := l.NewListener()
	require.NoError(t, err)
	b, err := l.NewListener()
	require.NoError(t, err)
	l.SignalAdd(sh, a)
	l.SignalAdd(sh, b)

	// a's callback removes b before the walk reaches it
	l.SetDispatcher(func(node, data ffi.Handle) {
		fired = append(fired, node)
		if node == a {
			l.ListenerRemove(b)
		}
	})

	l.Emit(h, "frame", ffi.Null)
	assert.Equal(t, []ffi.Handle{a}, fired)

	// b can be relinked and fires on the next emit
	fired = nil
	l.SignalAdd(sh, b)
	l.Emit(h, "frame", ffi.Null)
	assert.Equal(t, []ffi.Handle{a, b}, fired)
}

func TestListenerRemoveIsIdempotent(t *testing.T) {
	l := New()
	l.SetDispatcher(func(node, data ffi.Handle) {})

	h := l.NewObject(ffi.TypeOutput)
	sh := l.SignalOf(h, ffi.TypeOutput, "frame")

	node, err := l.NewListener()
	require.NoError(t, err)
	l.SignalAdd(sh, node)
	require.Equal(t, 1, l.ListenerCount(h, "frame"))

	l.ListenerRemove(node)
	l.ListenerRemove(node)
	assert.Equal(t, 0, l.ListenerCount(h, "frame"))

	l.FreeListener(node)
	assert.Equal(t, 0, l.LiveListeners())
}

func TestDestroyObjectEmitsDestroyThenUnlinks(t *testing.T) {
	l := New()

	h := l.NewObject(ffi.TypeOutput)
	destroySig := l.SignalOf(h, ffi.TypeOutput, "destroy")
	frameSig := l.SignalOf(h, ffi.TypeOutput, "frame")

	var destroyData ffi.Handle
	l.SetDispatcher(func(node, data ffi.Handle) { destroyData = data })

	dn, err := l.NewListener()
	require.NoError(t, err)
	fn, err := l.NewListener()
	require.NoError(t, err)
	l.SignalAdd(destroySig, dn)
	l.SignalAdd(frameSig, fn)

	l.DestroyObject(h)

	// destroy fires with the object itself as data
	assert.Equal(t, h, destroyData)
	// remaining nodes were force-unlinked but not freed
	assert.Equal(t, 2, l.LiveListeners())
	l.FreeListener(dn)
	l.FreeListener(fn)
	assert.Equal(t, 0, l.LiveListeners())
}

func TestQueueAndStepBatching(t *testing.T) {
	l := New()
	l.SetDispatcher(func(node, data ffi.Handle) {})

	d, err := l.DisplayCreate()
	require.NoError(t, err)

	var order []string
	l.Queue(func() {
		order = append(order, "first")
		// queued during the batch, runs on the next step
		l.Queue(func() { order = append(order, "nested") })
	})
	l.Queue(func() { order = append(order, "second") })

	loop := l.DisplayEventLoop(d)
	n, err := l.EventLoopDispatch(loop, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"first", "second"}, order)

	n, err = l.EventLoopDispatch(loop, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"first", "second", "nested"}, order)
}

func TestDisplayRunDrainsUntilTerminate(t *testing.T) {
	l := New()
	l.SetDispatcher(func(node, data ffi.Handle) {})

	d, err := l.DisplayCreate()
	require.NoError(t, err)

	ran := 0
	l.Queue(func() {
		ran++
		l.Queue(func() {
			ran++
			l.DisplayTerminate(d)
			l.Queue(func() { ran++ })
		})
	})

	l.DisplayRun(d)
	// the terminate left the third callback queued for a later run
	assert.Equal(t, 2, ran)

	l.DisplayRun(d)
	assert.Equal(t, 3, ran)
}

func TestBackendStartQueuesHardware(t *testing.T) {
	l := New()

	type arrival struct {
		kind string
		data ffi.Handle
	}
	var arrivals []arrival

	b, err := l.BackendAutocreate(ffi.Null)
	require.NoError(t, err)

	newOutput := l.SignalOf(b, ffi.TypeBackend, "new_output")
	newInput := l.SignalOf(b, ffi.TypeBackend, "new_input")

	l.SetDispatcher(func(node, data ffi.Handle) {})
	on, err := l.NewListener()
	require.NoError(t, err)
	in, err := l.NewListener()
	require.NoError(t, err)
	l.SetDispatcher(func(node, data ffi.Handle) {
		switch node {
		case on:
			arrivals = append(arrivals, arrival{"output", data})
		case in:
			arrivals = append(arrivals, arrival{"input", data})
		}
	})
	l.SignalAdd(newOutput, on)
	l.SignalAdd(newInput, in)

	require.NoError(t, l.BackendStart(b))
	// arrival is deferred until dispatch
	require.Empty(t, arrivals)

	d, err := l.DisplayCreate()
	require.NoError(t, err)
	_, err = l.EventLoopDispatch(l.DisplayEventLoop(d), 0)
	require.NoError(t, err)

	require.Len(t, arrivals, 2)
	assert.Equal(t, "output", arrivals[0].kind)
	assert.Equal(t, "FAKE-1", l.OutputName(arrivals[0].data))
	assert.Equal(t, "input", arrivals[1].kind)
	assert.Equal(t, "fake-keyboard", l.InputDeviceName(arrivals[1].data))
}
