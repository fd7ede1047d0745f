package aggregate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSliceCSVSkipsMalformedLines(t *testing.T) {
	r := strings.NewReader("ZINC0001,-9.100\nnot a line\nZINC0002,-7.250\n\n")
	summaries, err := ParseSliceCSV(r)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "ZINC0001", summaries[0].CompoundID)
	assert.Equal(t, -9.1, summaries[0].NormalizedEnergy)
	assert.Equal(t, "ZINC0002", summaries[1].CompoundID)
}

func TestCombineSortsAscendingByEnergy(t *testing.T) {
	sliceA := []Summary{{"ZINC0001", -5.0}, {"ZINC0002", -9.0}}
	sliceB := []Summary{{"ZINC0003", -7.0}}

	merged := Combine([][]Summary{sliceA, sliceB})
	require.Len(t, merged, 3)
	assert.Equal(t, "ZINC0002", merged[0].CompoundID)
	assert.Equal(t, "ZINC0003", merged[1].CompoundID)
	assert.Equal(t, "ZINC0001", merged[2].CompoundID)
}

func TestTopCapsAtRequestedCount(t *testing.T) {
	merged := []Summary{{"a", -9}, {"b", -8}, {"c", -7}}
	assert.Len(t, Top(merged, 2), 2)
	assert.Len(t, Top(merged, 10), 3)
}
