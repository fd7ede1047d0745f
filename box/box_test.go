package box

import (
	"testing"

	"github.com/korralabs/voxdock/vec3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpandsToGridMultiple(t *testing.T) {
	center := vec3.New(10, 10, 10)
	g := vec3.Fl(0.08)
	k := 5
	size := vec3.New(vec3.Fl(k)*g, vec3.Fl(k)*g, vec3.Fl(k)*g)
	b := New(center, size, g, 8.0)

	assert.InDelta(t, vec3.Fl(k)*g, b.Span.X, 1e-9)
	assert.Equal(t, k, b.NumGrids.X)
	assert.Equal(t, k+1, b.NumProbes.X)

	sum := b.Corner1.Add(b.Corner2)
	assert.InDelta(t, 2*center.X, sum.X, 1e-9)
	assert.InDelta(t, 2*center.Y, sum.Y, 1e-9)
	assert.InDelta(t, 2*center.Z, sum.Z, 1e-9)
}

func TestWithinIsHalfOpen(t *testing.T) {
	b := New(vec3.New(0, 0, 0), vec3.New(1, 1, 1), 0.5, 8)
	require.True(t, b.Within(b.Corner1))
	assert.False(t, b.Within(b.Corner2))
}

func TestGridIndexRoundTrip(t *testing.T) {
	b := New(vec3.New(5, -3, 2), vec3.New(4, 4, 4), 0.08, 8)
	for _, idx := range []vec3.Index3{{X: 0, Y: 0, Z: 0}, {X: 3, Y: 10, Z: 49}, {X: b.NumGrids.X, Y: b.NumGrids.Y, Z: b.NumGrids.Z}} {
		c1 := b.GridCorner1(idx)
		got := b.GridIndex(c1)
		assert.Equal(t, idx, got)
	}
}

func TestWithinCutoffMatchesProjectDistance(t *testing.T) {
	b := New(vec3.New(0, 0, 0), vec3.New(2, 2, 2), 0.5, 8)
	pts := []vec3.Vec3{
		vec3.New(0, 0, 0),
		vec3.New(100, 100, 100),
		vec3.New(9, 0, 0),
		vec3.New(9.01, 0, 0),
	}
	for _, p := range pts {
		want := b.ProjectDistanceSqr(p) <= b.Cutoff*b.Cutoff
		assert.Equal(t, want, b.WithinCutoff(p))
	}
}

func TestGridIndexWithinBoundsForContainedPoints(t *testing.T) {
	b := New(vec3.New(0, 0, 0), vec3.New(3, 3, 3), 0.3, 8)
	for x := 0; x < b.NumGrids.X; x++ {
		for y := 0; y < b.NumGrids.Y; y++ {
			p := b.GridCorner1(vec3.Index3{X: x, Y: y, Z: 1})
			if !b.Within(p) {
				continue
			}
			idx := b.GridIndex(p)
			assert.True(t, idx.Within(b.NumGrids))
		}
	}
}
