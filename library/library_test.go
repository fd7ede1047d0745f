package library

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderOffset(t *testing.T) {
	buf := make([]byte, 24)
	binary.LittleEndian.PutUint64(buf[0:8], 0)
	binary.LittleEndian.PutUint64(buf[8:16], 512)
	binary.LittleEndian.PutUint64(buf[16:24], 1024)

	off, err := HeaderOffset(bytes.NewReader(buf), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(512), off)
}

func TestParseDescriptor(t *testing.T) {
	// columns are 1-based inclusive; build a line wide enough to hold
	// every field at its documented position.
	line := strings.Repeat(" ", 80)
	set := func(line string, first, last int, val string) string {
		b := []byte(line)
		copy(b[first-1:last], val)
		return string(b)
	}
	line = set(line, 11, 18, "ZINC0001")
	line = set(line, 22, 28, "285.34")
	line = set(line, 31, 37, "2.1")
	line = set(line, 40, 46, "35.2")
	line = set(line, 49, 55, "12.1")
	line = set(line, 58, 59, "2")
	line = set(line, 62, 63, "4")
	line = set(line, 66, 67, "60")
	line = set(line, 70, 71, "0")
	line = set(line, 74, 75, "5")

	d, err := ParseDescriptor(line)
	require.NoError(t, err)
	assert.Equal(t, "ZINC0001", d.CompoundID)
	assert.InDelta(t, 285.34, d.Mwt, 1e-9)
	assert.InDelta(t, 2.1, d.Logp, 1e-9)
	assert.Equal(t, 2, d.Hbd)
	assert.Equal(t, 4, d.Hba)
	assert.Equal(t, 5, d.Nrb)
}

func TestSlicesPartitionsCoverFullRange(t *testing.T) {
	bounds := Slices(100, DefaultTotalLigands)
	require.Len(t, bounds, 101)
	assert.Equal(t, 0, bounds[0])
	assert.Equal(t, DefaultTotalLigands, bounds[100])
	for i := 1; i < len(bounds); i++ {
		assert.GreaterOrEqual(t, bounds[i], bounds[i-1])
	}
}

func TestFilterPassesWithinBounds(t *testing.T) {
	f := NewFilter()
	f.Mwt = bound{lb: 400, ub: 1000}
	d := Descriptor{Mwt: 399.9}
	assert.False(t, f.Passes(d))

	d.Mwt = 400.1
	assert.True(t, f.Passes(d))
}

func TestFilterJSONRoundTripsUnsetBounds(t *testing.T) {
	f := NewFilter()
	f.Mwt = bound{lb: 200, ub: 500}

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var decoded Filter
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, f.Mwt, decoded.Mwt)
	assert.True(t, decoded.Logp.passes(-1000))
	assert.True(t, decoded.Logp.passes(1000))
}

func TestCSVWriterFormatsThreeDecimals(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteLine("ZINC0001", -9.1234))
	assert.Equal(t, "ZINC0001,-9.123\n", buf.String())
}
