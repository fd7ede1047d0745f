package resultset

import (
	"testing"

	"github.com/korralabs/voxdock/vec3"
	"github.com/stretchr/testify/assert"
)

func atResult(f vec3.Fl, pos vec3.Vec3) *Result {
	return &Result{TotalEnergy: f, HeavyAtomPos: []vec3.Vec3{pos}}
}

func TestAddSortsByEnergy(t *testing.T) {
	s := New(10)
	threshold := ClusterThreshold(1)
	s.Add(atResult(-5, vec3.New(0, 0, 0)), threshold)
	s.Add(atResult(-9, vec3.New(50, 0, 0)), threshold)
	s.Add(atResult(-7, vec3.New(100, 0, 0)), threshold)

	got := s.Results()
	assert.Len(t, got, 3)
	assert.Equal(t, vec3.Fl(-9), got[0].TotalEnergy)
	assert.Equal(t, vec3.Fl(-7), got[1].TotalEnergy)
	assert.Equal(t, vec3.Fl(-5), got[2].TotalEnergy)
}

func TestAddRespectsMaxResults(t *testing.T) {
	s := New(2)
	threshold := ClusterThreshold(1)
	s.Add(atResult(-5, vec3.New(0, 0, 0)), threshold)
	s.Add(atResult(-9, vec3.New(50, 0, 0)), threshold)
	s.Add(atResult(-7, vec3.New(100, 0, 0)), threshold)

	got := s.Results()
	assert.Len(t, got, 2)
	assert.Equal(t, vec3.Fl(-9), got[0].TotalEnergy)
	assert.Equal(t, vec3.Fl(-7), got[1].TotalEnergy)
}

// TestClusterDeduplication reproduces the worked example from the docking pipeline's description: three
// results with f = {-9.1, -9.0, -8.5} where the first two are within
// RMSD 1.5 of each other (same cluster, one heavy atom: squared
// displacement 2.25 < threshold 4) and the third is well separated. The
// final list keeps only the best representative of the shared cluster
// plus the separated one.
func TestClusterDeduplication(t *testing.T) {
	s := New(20)
	threshold := ClusterThreshold(1) // S = 4

	a := atResult(-9.1, vec3.New(0, 0, 0))
	b := atResult(-9.0, vec3.New(1.5, 0, 0)) // sqDist = 2.25 < 4
	c := atResult(-8.5, vec3.New(50, 0, 0))  // far outside threshold

	s.Add(a, threshold)
	s.Add(b, threshold)
	s.Add(c, threshold)

	got := s.Results()
	if assert.Len(t, got, 2) {
		assert.Equal(t, vec3.Fl(-9.1), got[0].TotalEnergy)
		assert.Equal(t, vec3.Fl(-8.5), got[1].TotalEnergy)
	}
}

// TestClusterDeduplicationOrderIndependent checks the documented
// order-independence property for a unique best representative.
func TestClusterDeduplicationOrderIndependent(t *testing.T) {
	threshold := ClusterThreshold(1)
	a := atResult(-9.1, vec3.New(0, 0, 0))
	b := atResult(-9.0, vec3.New(1.5, 0, 0))
	c := atResult(-8.5, vec3.New(50, 0, 0))

	s1 := New(20)
	s1.Add(a, threshold)
	s1.Add(b, threshold)
	s1.Add(c, threshold)

	s2 := New(20)
	s2.Add(c, threshold)
	s2.Add(b, threshold)
	s2.Add(a, threshold)

	r1, r2 := s1.Results(), s2.Results()
	if assert.Len(t, r1, len(r2)) {
		for i := range r1 {
			assert.Equal(t, r1[i].TotalEnergy, r2[i].TotalEnergy)
		}
	}
}

func TestBestOnEmptySet(t *testing.T) {
	s := New(5)
	assert.Nil(t, s.Best())
}
