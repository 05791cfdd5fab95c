package wlr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runlevelzero/waybind/ffi"
)

func TestDispatchDeliversQueuedEvents(t *testing.T) {
	d, lib := newTestDisplay(t)
	o, h := newTestOutput(t, d, lib)

	fired := 0
	_, err := o.On("frame", func(Event) { fired++ })
	require.NoError(t, err)

	lib.QueueEmit(h, "frame", ffi.Null)
	lib.QueueEmit(h, "frame", ffi.Null)

	n, err := d.Dispatch(0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, fired)
}

func TestReentrantDispatchIsRefused(t *testing.T) {
	d, lib := newTestDisplay(t)
	o, h := newTestOutput(t, d, lib)

	var runErr, dispatchErr, destroyErr error
	_, err := o.On("frame", func(Event) {
		runErr = d.Run()
		_, dispatchErr = d.Dispatch(0)
		destroyErr = d.Destroy()
	})
	require.NoError(t, err)

	lib.QueueEmit(h, "frame", ffi.Null)
	_, err = d.Dispatch(0)
	require.NoError(t, err)

	assert.ErrorIs(t, runErr, ErrReentrantDispatch)
	assert.ErrorIs(t, dispatchErr, ErrReentrantDispatch)
	assert.ErrorIs(t, destroyErr, ErrReentrantDispatch)
}

func TestTerminateFromCallbackFinishesBatch(t *testing.T) {
	d, lib := newTestDisplay(t)
	o, h := newTestOutput(t, d, lib)

	var order []string
	_, err := o.On("frame", func(Event) {
		order = append(order, "first")
		require.NoError(t, d.Terminate())
	})
	require.NoError(t, err)

	lib.QueueEmit(h, "frame", ffi.Null)
	lib.Queue(func() {})
	lib.QueueEmit(h, "frame", ffi.Null)

	require.NoError(t, d.Run())
	// both queued frames were in the batch when Run started; Terminate
	// stops the loop only between batches
	assert.Equal(t, []string{"first", "first"}, order)
}

func TestRunReturnsAfterTerminate(t *testing.T) {
	d, lib := newTestDisplay(t)
	o, h := newTestOutput(t, d, lib)

	fired := 0
	_, err := o.On("frame", func(Event) {
		fired++
		require.NoError(t, d.Terminate())
		// events queued after Terminate wait for the next Run
		lib.QueueEmit(h, "frame", ffi.Null)
	})
	require.NoError(t, err)

	lib.QueueEmit(h, "frame", ffi.Null)
	require.NoError(t, d.Run())
	assert.Equal(t, 1, fired)
}

func TestDisplayDestroyPurgesWrappers(t *testing.T) {
	d, lib := newTestDisplay(t)
	o1, _ := newTestOutput(t, d, lib)
	o2, _ := newTestOutput(t, d, lib)

	require.NoError(t, d.Destroy())
	assert.False(t, d.Valid())
	assert.False(t, o1.Valid())
	assert.False(t, o2.Valid())
	assert.Equal(t, 0, d.CachedObjects())

	assert.ErrorIs(t, d.Run(), ErrUseAfterDestroy)
	_, err := d.Dispatch(0)
	assert.ErrorIs(t, err, ErrUseAfterDestroy)
}

func TestSockets(t *testing.T) {
	t.Run("auto", func(t *testing.T) {
		d, _ := newTestDisplay(t)
		name, err := d.AddSocketAuto()
		require.NoError(t, err)
		assert.NotEmpty(t, name)
		assert.Equal(t, name, d.Socket())
	})

	t.Run("named", func(t *testing.T) {
		d, _ := newTestDisplay(t)
		require.NoError(t, d.AddSocket("wayland-5"))
		assert.Equal(t, "wayland-5", d.Socket())
	})
}
