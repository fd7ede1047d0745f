package diagnostics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergyHistogramWritesPNG(t *testing.T) {
	var buf bytes.Buffer
	energies := []float64{-9.1, -8.7, -8.5, -7.2, -6.9, -6.0}

	require.NoError(t, EnergyHistogram(&buf, "slice-07", energies))
	assert.Greater(t, buf.Len(), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), buf.Bytes()[:8])
}

func TestEnergyHistogramRejectsEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	err := EnergyHistogram(&buf, "slice-07", nil)
	assert.Error(t, err)
}

func TestHistogramBinsClampsToRange(t *testing.T) {
	assert.Equal(t, 8, histogramBins(5))
	assert.Equal(t, 64, histogramBins(10000))
	assert.Equal(t, 20, histogramBins(200))
}
