package scoring

import (
	"testing"

	"github.com/korralabs/voxdock/threadpool"
	"github.com/korralabs/voxdock/xstype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrecalculated(t *testing.T) *Function {
	t.Helper()
	f := New(DefaultCutoff, 256)
	pool := threadpool.New(4)
	defer pool.Close()
	require.NoError(t, f.PrecalculateAll(pool))
	return f
}

func TestSymmetric(t *testing.T) {
	f := newPrecalculated(t)
	for t1 := xstype.Type(0); int(t1) < xstype.Size; t1++ {
		for t2 := xstype.Type(0); int(t2) < xstype.Size; t2++ {
			a := f.Query(t1, t2, 4.0)
			b := f.Query(t2, t1, 4.0)
			assert.Equal(t, a, b)
		}
	}
}

func TestBoundaryEnergyIsZeroAtCutoff(t *testing.T) {
	f := newPrecalculated(t)
	e := f.EnergyAt(xstype.Hydrophobic, xstype.Hydrophobic, f.Cutoff*f.Cutoff)
	assert.InDelta(t, 0, e, 1e-6)
}

func TestSamplesSpanZeroToCutoff(t *testing.T) {
	f := New(DefaultCutoff, 256)
	rs := f.Samples()
	assert.InDelta(t, 0, rs[0], 1e-12)
	assert.InDelta(t, f.Cutoff, rs[len(rs)-1], 1e-9)
}
