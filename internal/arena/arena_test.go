package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_Sentinels(t *testing.T) {
	a := New[int](2)

	assert.Equal(t, 2, a.Slots())
	assert.Equal(t, 0, a.Live())
	assert.Equal(t, Sentinel, a.Kind(0))
	assert.Equal(t, Sentinel, a.Kind(1))
	assert.Equal(t, Free, a.Kind(2), "out of range reads as free")
	assert.True(t, a.Valid(a.Handle(0)))
}

func TestArena_AllocReleaseReuse(t *testing.T) {
	a := New[string](2)

	idx := a.Alloc("x")
	require.Equal(t, int32(2), idx)
	require.Equal(t, 1, a.Live())
	h := a.Handle(idx)
	require.True(t, a.Valid(h))
	assert.Equal(t, "x", *a.Node(idx))

	a.Release(idx)
	assert.False(t, a.Valid(h), "handle must not survive release")
	assert.Equal(t, 0, a.Live())
	assert.Equal(t, "", *a.Node(idx), "released payload is zeroed")

	again := a.Alloc("y")
	assert.Equal(t, idx, again, "free slot is reused")
	assert.False(t, a.Valid(h), "reused slot has a new generation")
	assert.True(t, a.Valid(a.Handle(again)))
}

func TestArena_ReleaseSentinelPanics(t *testing.T) {
	a := New[int](1)
	assert.Panics(t, func() { a.Release(0) })
}

func TestArena_ValidOutOfRange(t *testing.T) {
	a := New[int](0)
	assert.False(t, a.Valid(Handle{Index: -1}))
	assert.False(t, a.Valid(Handle{Index: 5}))
}

func TestArena_Clone(t *testing.T) {
	a := New[int](1)
	x := a.Alloc(10)
	y := a.Alloc(20)
	a.Release(x)

	c := a.Clone()
	require.Equal(t, a.Live(), c.Live())
	*c.Node(y) = 99
	assert.Equal(t, 20, *a.Node(y), "payloads are not shared")

	// both arenas reuse the same freed slot independently
	assert.Equal(t, x, a.Alloc(1))
	assert.Equal(t, x, c.Alloc(2))
	assert.Equal(t, 1, *a.Node(x))
}
