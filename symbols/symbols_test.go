package symbols_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"justina/symbols"
)

func TestNameTable_ResolveOrCreate(t *testing.T) {
	tbl := symbols.NewNameTable(2)

	idx1, created, err := tbl.ResolveOrCreate("x")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 0, idx1)

	idx2, created, err := tbl.ResolveOrCreate("x")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, idx1, idx2)

	_, _, err = tbl.ResolveOrCreate("y")
	require.NoError(t, err)

	_, _, err = tbl.ResolveOrCreate("z")
	var full *symbols.ErrTableFull
	assert.ErrorAs(t, err, &full)
}

func TestValueStore_AllocFreeReuse(t *testing.T) {
	vs := symbols.NewValueStore(2)

	a, err := vs.Alloc()
	require.NoError(t, err)
	b, err := vs.Alloc()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	_, err = vs.Alloc()
	assert.ErrorIs(t, err, symbols.ErrStoreFull)

	vs.Free(a)
	c, err := vs.Alloc()
	require.NoError(t, err)
	assert.Equal(t, a, c, "freed slot should be reused")
}

func TestSlot_LongRoundTrip(t *testing.T) {
	var s symbols.Slot
	s.SetLong(-12345)
	assert.EqualValues(t, -12345, s.AsLong())
}

func TestSlot_FloatRoundTrip(t *testing.T) {
	var s symbols.Slot
	s.SetFloat(3.25)
	assert.InDelta(t, 3.25, s.AsFloat(), 0.0001)
}

func TestAllocator_EmptyStringIsNil(t *testing.T) {
	a := symbols.NewAllocator()
	v := a.NewString(symbols.CatIntermediateString, "")
	assert.Nil(t, v)
	assert.True(t, a.AllZero())
}

func TestAllocator_LeakDetection(t *testing.T) {
	a := symbols.NewAllocator()
	v := a.NewString(symbols.CatUserVarString, "hello")
	require.NotNil(t, v)
	assert.False(t, a.AllZero())
	assert.Equal(t, "hello", v.String())

	a.Release(v)
	assert.True(t, a.AllZero())
}

func TestArray_IndexAndElements(t *testing.T) {
	arr, err := symbols.NewArray(symbols.Long, []int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, 6, arr.Len())

	idx, err := arr.Index([]int{1, 2})
	require.NoError(t, err)
	arr.Elem(idx).SetLong(99)
	assert.EqualValues(t, 99, arr.Elem(idx).AsLong())

	_, err = arr.Index([]int{2, 0})
	assert.Error(t, err)
}

func TestArray_StringElementOwnership(t *testing.T) {
	alloc := symbols.NewAllocator()
	arr, err := symbols.NewArray(symbols.StringPtr, []int{2})
	require.NoError(t, err)

	v := alloc.NewString(symbols.CatArray, "hi")
	arr.SetElemString(alloc, 0, v)
	assert.False(t, alloc.AllZero())

	arr.Release(alloc)
	assert.True(t, alloc.AllZero())
}
