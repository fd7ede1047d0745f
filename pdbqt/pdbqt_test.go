package pdbqt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const receptorBody = `REMARK  receptor
ATOM      1  C   RES A   1       1.000   2.000   3.000  1.00  0.00    +0.000 C
ATOM      2  N   RES A   1       2.000   2.000   3.000  1.00  0.00    +0.000 NA
END
`

const ligandBody = `ROOT
ATOM      1  C1  LIG A   1       0.000   0.000   0.000  1.00  0.00    +0.000 C
ATOM      2  C2  LIG A   1       1.000   0.000   0.000  1.00  0.00    +0.000 C
ENDROOT
BRANCH   2   3
ATOM      3  C3  LIG A   1       2.000   0.000   0.000  1.00  0.00    +0.000 A
ATOM      4  C4  LIG A   1       2.000   1.000   0.000  1.00  0.00    +0.000 A
ENDBRANCH   2   3
TORSDOF 1
`

func TestParseReceptorReadsAtoms(t *testing.T) {
	r, err := ParseReceptor(strings.NewReader(receptorBody))
	require.NoError(t, err)
	require.Len(t, r.Atoms, 2)
	assert.Equal(t, 1.0, r.Atoms[0].Coordinate.X)
}

func TestParseLigandBuildsFrames(t *testing.T) {
	lig, err := ParseLigand(ligandBody)
	require.NoError(t, err)
	require.Len(t, lig.Atoms, 4)
	require.Len(t, lig.Frames, 2)
	assert.Equal(t, -1, lig.Frames[0].Parent)
	assert.Equal(t, 0, lig.Frames[1].Parent)
	assert.Equal(t, 1, lig.NumRotatableBonds())
}

func TestParseLigandRejectsUnclosedBranch(t *testing.T) {
	_, err := ParseLigand("ROOT\nATOM      1  C1  LIG A   1   0.0 0.0 0.0  1.00 0.00 +0.000 C\nENDROOT\nBRANCH 1 2\n")
	assert.Error(t, err)
}
