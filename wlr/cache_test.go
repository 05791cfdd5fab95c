package wlr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runlevelzero/waybind/ffi"
)

func TestCacheReturnsSameWrapperForSameAddress(t *testing.T) {
	d, lib := newTestDisplay(t)

	h := lib.NewObject(ffi.TypeOutput)
	a, err := d.cache.getOrCreate(h, ffi.TypeOutput)
	require.NoError(t, err)
	b, err := d.cache.getOrCreate(h, ffi.TypeOutput)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestPayloadLookupPreservesIdentity(t *testing.T) {
	d, lib := newTestDisplay(t)

	b, err := AutocreateBackend(d)
	require.NoError(t, err)

	var first, second *Output
	_, err = b.OnNewOutput(func(o *Output) {
		if first == nil {
			first = o
		} else {
			second = o
		}
	})
	require.NoError(t, err)

	out := lib.NewObject(ffi.TypeOutput)
	lib.Emit(b.Native(), "new_output", out)
	lib.Emit(b.Native(), "new_output", out)

	require.NotNil(t, first)
	require.NotNil(t, second)
	// the same native address resolves to the same wrapper on every delivery
	assert.Same(t, first, second)
}

func TestUnknownNativeType(t *testing.T) {
	d, lib := newTestDisplay(t)

	h := lib.NewObject(ffi.TypeRenderer)
	_, err := d.cache.getOrCreate(h, ffi.TypeRenderer)

	var ute *UnknownTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, ffi.TypeRenderer, ute.Type)
}

func TestCacheEvictsOnDestroy(t *testing.T) {
	d, lib := newTestDisplay(t)
	o, h := newTestOutput(t, d, lib)

	before := d.CachedObjects()
	lib.DestroyObject(h)
	assert.Equal(t, before-1, d.CachedObjects())
	assert.False(t, o.Valid())

	_, ok := d.cache.lookup(h)
	assert.False(t, ok)
}

func TestStaleEntryReplacedByFreshWrapper(t *testing.T) {
	d, lib := newTestDisplay(t)
	o, h := newTestOutput(t, d, lib)

	// simulate address reuse: the entry is still present but invalid, as
	// between the native free and the eviction racing a lookup would see
	o.valid = false
	d.cache.insert(h, o)

	r, err := d.cache.getOrCreate(h, ffi.TypeOutput)
	require.NoError(t, err)
	assert.NotSame(t, o, r)
	assert.True(t, r.Valid())
}
