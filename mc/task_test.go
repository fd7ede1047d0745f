package mc

import (
	"math"
	"testing"

	"github.com/korralabs/voxdock/box"
	"github.com/korralabs/voxdock/gridmap"
	"github.com/korralabs/voxdock/molecule"
	"github.com/korralabs/voxdock/resultset"
	"github.com/korralabs/voxdock/scoring"
	"github.com/korralabs/voxdock/threadpool"
	"github.com/korralabs/voxdock/vec3"
	"github.com/korralabs/voxdock/xstype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLigand() *molecule.Ligand {
	atoms := []molecule.Atom{
		{Type: xstype.Hydrophobic, Coordinate: vec3.New(0, 0, 0)},
		{Type: xstype.Hydrophobic, Coordinate: vec3.New(1.5, 0, 0)},
	}
	frames := []molecule.Frame{{Parent: -1, AtomIndices: []int{0, 1}}}
	return molecule.NewLigand(atoms, nil, frames)
}

func testRig(t *testing.T) (*box.Box, *scoring.Function, *gridmap.Maps) {
	t.Helper()
	b := box.New(vec3.New(0, 0, 0), vec3.New(8, 8, 8), 0.5, 4.0)
	sf := scoring.New(4.0, 64)
	pool := threadpool.New(2)
	defer pool.Close()
	require.NoError(t, sf.PrecalculateAll(pool))

	r := molecule.New([]molecule.Atom{
		{Type: xstype.OxygenA, Coordinate: vec3.New(0.2, 0.1, -0.3)},
	}, nil)
	m := gridmap.New(b)
	require.NoError(t, gridmap.PopulateTask(m, r, sf, xstype.NewSet(xstype.Hydrophobic), pool))
	return b, sf, m
}

func TestTaskRunIsDeterministic(t *testing.T) {
	lig := testLigand()
	b, sf, maps := testRig(t)
	cfg := DefaultConfig()
	cfg.NumMutations = 4
	cfg.NumBFGSIterations = 3

	run := func() *resultset.Result {
		out := resultset.New(5)
		task := &Task{Ligand: lig, Seed: 42, Config: cfg, Scoring: sf, Box: b, GridMaps: maps}
		task.Run(out)
		return out.Best()
	}

	a, bRes := run(), run()
	require.NotNil(t, a)
	require.NotNil(t, bRes)
	assert.Equal(t, a.TotalEnergy, bRes.TotalEnergy)
}

func TestTaskRunProducesFiniteBest(t *testing.T) {
	lig := testLigand()
	b, sf, maps := testRig(t)
	cfg := DefaultConfig()
	cfg.NumMutations = 6
	cfg.NumBFGSIterations = 2

	out := resultset.New(5)
	task := &Task{Ligand: lig, Seed: 7, Config: cfg, Scoring: sf, Box: b, GridMaps: maps}
	task.Run(out)

	if best := out.Best(); best != nil {
		assert.False(t, math.IsNaN(best.TotalEnergy) || math.IsInf(best.TotalEnergy, 0), "energy must be finite")
	}
}
