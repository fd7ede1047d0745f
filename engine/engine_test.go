package engine

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korralabs/voxdock/library"
	"github.com/korralabs/voxdock/mc"
	"github.com/korralabs/voxdock/molecule"
	"github.com/korralabs/voxdock/queue"
	"github.com/korralabs/voxdock/vec3"
	"github.com/korralabs/voxdock/xstype"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(Config{NumWorkers: 2, Cutoff: 4.0, NumSamples: 32, Seed: 1})
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func fixedWidthLine(fields map[column]string) string {
	line := strings.Repeat(" ", 80)
	b := []byte(line)
	for c, v := range fields {
		copy(b[c.first-1:c.last], v)
	}
	return string(b)
}

type column struct{ first, last int }

func TestRunSliceEmitsCSVLine(t *testing.T) {
	e := testEngine(t)

	line := fixedWidthLine(map[column]string{
		{11, 18}: "ZINC0001",
		{22, 28}: "200.0",
		{74, 75}: "0",
	})

	headerBuf := make([]byte, 8)
	binary.LittleEndian.PutUint64(headerBuf, 0)

	receptor := molecule.New([]molecule.Atom{
		{Type: xstype.OxygenA, Coordinate: vec3.New(0, 0, 0)},
	}, nil)

	var csvBuf bytes.Buffer
	job := &queue.JobDocument{
		ID:     "job1",
		Slice:  0,
		Center: vec3.New(0, 0, 0),
		Size:   vec3.New(4, 4, 4),
		Filter: library.NewFilter(),
	}

	cfg := mc.DefaultConfig()
	cfg.NumMutations = 2
	cfg.NumBFGSIterations = 1

	in := SliceInput{
		Job:        job,
		Headers:    bytes.NewReader(headerBuf),
		Ligands:    strings.NewReader(line + "\n"),
		Receptor:   receptor,
		CSV:        library.NewCSVWriter(&csvBuf),
		Boundaries: []int{0, 1},
		ParseLigand: func(record string) (*molecule.Ligand, error) {
			atoms := []molecule.Atom{
				{Type: xstype.Hydrophobic, Coordinate: vec3.New(0, 0, 0)},
			}
			frames := []molecule.Frame{{Parent: -1, AtomIndices: []int{0}}}
			return molecule.NewLigand(atoms, nil, frames), nil
		},
		NumMCTasks:                  2,
		MaxResults:                  5,
		MCConfig:                    cfg,
		DefaultGridGranularity:      0.5,
		DefaultPartitionGranularity: 3.0,
	}

	require.NoError(t, e.RunSlice(in))
	assert.Contains(t, csvBuf.String(), "ZINC0001,")
}
