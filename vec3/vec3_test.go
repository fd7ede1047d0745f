package vec3

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec3Algebra(t *testing.T) {
	a := New(1, 2, 3)
	b := New(4, 5, 6)

	assert.Equal(t, New(5, 7, 9), a.Add(b))
	assert.Equal(t, New(-3, -3, -3), a.Sub(b))
	assert.Equal(t, New(2, 4, 6), a.Scale(2))
	assert.InDelta(t, 32, a.Dot(b), 1e-12)
	assert.Equal(t, New(-3, 6, -3), a.Cross(b))
}

func TestVec3Distance(t *testing.T) {
	a := New(0, 0, 0)
	b := New(3, 4, 0)
	assert.InDelta(t, 25, a.SqDist(b), 1e-12)
	assert.InDelta(t, 5, a.Dist(b), 1e-12)
}

func TestIndex3Within(t *testing.T) {
	bound := Index3{X: 3, Y: 3, Z: 3}
	assert.True(t, Index3{1, 1, 1}.Within(bound))
	assert.False(t, Index3{3, 1, 1}.Within(bound))
	assert.False(t, Index3{-1, 1, 1}.Within(bound))
}

func TestArray3DMonotoneResize(t *testing.T) {
	var a Array3D
	require.False(t, a.Initialized())
	a.Resize(Index3{2, 2, 2})
	require.True(t, a.Initialized())
	a.Set(Index3{1, 1, 1}, 5)
	a.Add(Index3{1, 1, 1}, 1)
	assert.Equal(t, Fl(6), a.At(Index3{1, 1, 1}))

	// Resizing an already-initialized array must not revert its contents.
	a.Resize(Index3{4, 4, 4})
	assert.Equal(t, Fl(6), a.At(Index3{1, 1, 1}))
	assert.Equal(t, Index3{2, 2, 2}, a.Dims())
}

func TestQuatRotateIdentity(t *testing.T) {
	q := Identity()
	v := New(1, 2, 3)
	got := q.Rotate(v)
	assert.InDelta(t, v.X, got.X, 1e-9)
	assert.InDelta(t, v.Y, got.Y, 1e-9)
	assert.InDelta(t, v.Z, got.Z, 1e-9)
}

func TestQuatRotateAxisAngle(t *testing.T) {
	q := FromAxisAngle(New(0, 0, 1), math.Pi/2)
	got := q.Rotate(New(1, 0, 0))
	assert.InDelta(t, 0, got.X, 1e-9)
	assert.InDelta(t, 1, got.Y, 1e-9)
	assert.InDelta(t, 0, got.Z, 1e-9)
}
