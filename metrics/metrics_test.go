package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestObserveDockingIncrementsProcessedCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	col := New(reg)

	col.ObserveDocking(50*time.Millisecond, -8.4)
	col.ObserveDocking(10*time.Millisecond, -6.1)

	require.Equal(t, float64(2), counterValue(t, col.LigandsProcessed))
}

func TestCollectorMetricsAreIndependentAcrossInstances(t *testing.T) {
	regA := prometheus.NewRegistry()
	regB := prometheus.NewRegistry()
	colA := New(regA)
	colB := New(regB)

	colA.LigandsFiltered.Inc()

	require.Equal(t, float64(1), counterValue(t, colA.LigandsFiltered))
	require.Equal(t, float64(0), counterValue(t, colB.LigandsFiltered))
}
