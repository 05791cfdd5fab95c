package wlr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runlevelzero/waybind/ffi"
)

func TestUseAfterDestroy(t *testing.T) {
	d, lib := newTestDisplay(t)
	o, h := newTestOutput(t, d, lib)
	lib.Fields(h).Name = "DP-1"

	name, err := o.Name()
	require.NoError(t, err)
	require.Equal(t, "DP-1", name)

	lib.DestroyObject(h)
	assert.False(t, o.Valid())

	_, err = o.Name()
	assert.ErrorIs(t, err, ErrUseAfterDestroy)
	assert.ErrorIs(t, o.Enable(true), ErrUseAfterDestroy)

	_, err = o.Signal("frame")
	assert.ErrorIs(t, err, ErrUseAfterDestroy)
	_, err = o.On("frame", func(Event) {})
	assert.ErrorIs(t, err, ErrUseAfterDestroy)
	_, err = o.OnDestroy(func(Resource) {})
	assert.ErrorIs(t, err, ErrUseAfterDestroy)
}

func TestDestroyReleasesListenersAndCacheEntry(t *testing.T) {
	d, lib := newTestDisplay(t)
	o, h := newTestOutput(t, d, lib)

	baseline := lib.LiveListeners()
	_, err := o.On("frame", func(Event) {})
	require.NoError(t, err)
	_, err = o.On("mode", func(Event) {})
	require.NoError(t, err)

	lib.DestroyObject(h)

	_, ok := d.cache.lookup(h)
	assert.False(t, ok)
	// the two signal listeners and the internal teardown listener are gone
	assert.Equal(t, baseline-1, lib.LiveListeners())
}

func TestDestroyObserverRunsAfterInvalidation(t *testing.T) {
	d, lib := newTestDisplay(t)
	o, h := newTestOutput(t, d, lib)

	ran := false
	_, err := o.OnDestroy(func(r Resource) {
		ran = true
		// by the time the observer runs the wrapper is dead and evicted
		assert.False(t, r.Valid())
		_, ok := d.cache.lookup(h)
		assert.False(t, ok)
		_, nameErr := o.Name()
		assert.ErrorIs(t, nameErr, ErrUseAfterDestroy)
	})
	require.NoError(t, err)

	lib.DestroyObject(h)
	assert.True(t, ran)
}

func TestOnDestroyRoutesToManagedObserver(t *testing.T) {
	d, lib := newTestDisplay(t)
	o, h := newTestOutput(t, d, lib)

	var got Event
	_, err := o.On("destroy", func(ev Event) { got = ev })
	require.NoError(t, err)

	// the managed observer does not occupy a native listener slot
	assert.Equal(t, 1, lib.ListenerCount(h, "destroy")) // internal teardown only

	lib.DestroyObject(h)
	assert.Same(t, o, got.Source)
	assert.Equal(t, "destroy", got.Kind)
}

func TestRemovedDestroyObserverDoesNotRun(t *testing.T) {
	d, lib := newTestDisplay(t)
	o, h := newTestOutput(t, d, lib)

	ran := false
	sub, err := o.OnDestroy(func(Resource) { ran = true })
	require.NoError(t, err)
	sub.Remove()

	lib.DestroyObject(h)
	assert.False(t, ran)
}

func TestDestroyObserverPanicIsContained(t *testing.T) {
	d, lib := newTestDisplay(t)
	o, h := newTestOutput(t, d, lib)

	var order []string
	_, err := o.OnDestroy(func(Resource) {
		order = append(order, "a")
		panic("observer exploded")
	})
	require.NoError(t, err)
	_, err = o.OnDestroy(func(Resource) { order = append(order, "b") })
	require.NoError(t, err)

	require.NotPanics(t, func() { lib.DestroyObject(h) })
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestOnDestroyOnNonTrackedWrapper(t *testing.T) {
	d, _ := newTestDisplay(t)
	c, err := NewCursor(d)
	require.NoError(t, err)

	_, err = c.OnDestroy(func(Resource) {})
	assert.Error(t, err)
}

func TestDestroyDuringEmitDropsLaterFires(t *testing.T) {
	d, lib := newTestDisplay(t)
	o, h := newTestOutput(t, d, lib)

	// the first listener destroys the object mid-walk; the second was
	// force-unlinked by the teardown and must not fire
	_, err := o.On("frame", func(Event) { lib.DestroyObject(h) })
	require.NoError(t, err)
	fired := false
	_, err = o.On("frame", func(Event) { fired = true })
	require.NoError(t, err)

	lib.Emit(h, "frame", ffi.Null)
	assert.False(t, fired)
	assert.False(t, o.Valid())
}

func TestParentOwnedWrapperFollowsParent(t *testing.T) {
	d, lib := newTestDisplay(t)

	devH := lib.NewObject(ffi.TypeInputDevice)
	df := lib.Fields(devH)
	df.DeviceType = uint32(DevicePointer)
	df.Pointer = lib.NewObject(ffi.TypePointer)

	r, err := d.cache.getOrCreate(devH, ffi.TypeInputDevice)
	require.NoError(t, err)
	dev := r.(*InputDevice)

	p, err := dev.Pointer()
	require.NoError(t, err)
	require.True(t, p.Valid())

	lib.DestroyObject(devH)
	assert.False(t, dev.Valid())
	assert.False(t, p.Valid())
}
