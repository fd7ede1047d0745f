package molecule

import (
	"math"
	"testing"

	"github.com/korralabs/voxdock/vec3"
	"github.com/korralabs/voxdock/xstype"
	"github.com/stretchr/testify/assert"
)

// a two-frame ligand: atoms 0,1 belong to the root frame (1 is the bond's
// parent-side endpoint); atoms 2,3 belong to the child frame (2 is the
// bond's child-side endpoint/pivot, 3 extends perpendicular to the
// root->child axis so a torsion about that axis visibly moves it).
func twoFrameLigand() *Ligand {
	atoms := []Atom{
		{Type: xstype.Hydrophobic, Coordinate: vec3.New(0, 0, 0)},
		{Type: xstype.Hydrophobic, Coordinate: vec3.New(1, 0, 0)},
		{Type: xstype.Hydrophobic, Coordinate: vec3.New(2, 0, 0)},
		{Type: xstype.Hydrophobic, Coordinate: vec3.New(2, 1, 0)},
	}
	frames := []Frame{
		{Parent: -1, AtomIndices: []int{0, 1}},
		{Parent: 0, AtomIndices: []int{2, 3}, PivotParentAtom: 1, PivotAtom: 2},
	}
	return NewLigand(atoms, nil, frames)
}

func TestDegreesOfFreedom(t *testing.T) {
	l := twoFrameLigand()
	assert.Equal(t, 1, l.NumRotatableBonds())
	assert.Equal(t, 7, l.DegreesOfFreedom())
}

func TestPlaceIdentityPoseMatchesReference(t *testing.T) {
	l := twoFrameLigand()
	pose := Pose{
		Position:    l.frameOriginRef(l.Frames[0]),
		Orientation: vec3.Identity(),
		Torsions:    []vec3.Fl{0},
	}
	positions := l.Place(pose)
	for i, a := range l.Atoms {
		assert.InDelta(t, a.Coordinate.X, positions[i].X, 1e-9)
		assert.InDelta(t, a.Coordinate.Y, positions[i].Y, 1e-9)
		assert.InDelta(t, a.Coordinate.Z, positions[i].Z, 1e-9)
	}
}

func TestPlaceTorsionRotatesOnlyChildFrame(t *testing.T) {
	l := twoFrameLigand()
	pose := Pose{
		Position:    l.frameOriginRef(l.Frames[0]),
		Orientation: vec3.Identity(),
		Torsions:    []vec3.Fl{math.Pi / 2},
	}
	positions := l.Place(pose)

	// root frame atoms are unaffected by the child's torsion.
	assert.InDelta(t, 0.0, positions[0].Dist(l.Atoms[0].Coordinate), 1e-9)
	assert.InDelta(t, 0.0, positions[1].Dist(l.Atoms[1].Coordinate), 1e-9)

	// the pivot atom itself (index 2) lies on the rotation axis and does
	// not move.
	assert.InDelta(t, 0.0, positions[2].Dist(l.Atoms[2].Coordinate), 1e-9)

	// atom 3 extends perpendicular to the X axis; a 90-degree torsion must
	// preserve its distance from the pivot while moving it off the XY
	// plane it started in.
	pivot := positions[2]
	wantDist := l.Atoms[3].Coordinate.Dist(l.Atoms[2].Coordinate)
	assert.InDelta(t, wantDist, positions[3].Dist(pivot), 1e-9)
	assert.Greater(t, math.Abs(l.Atoms[3].Coordinate.Z-positions[3].Z), 1e-6)
}

func TestAtomTypesUnion(t *testing.T) {
	l := twoFrameLigand()
	s := l.AtomTypes()
	assert.True(t, s.Has(xstype.Hydrophobic))
	assert.False(t, s.Has(xstype.OxygenA))
}

func TestFlexibilityPenaltyMonotone(t *testing.T) {
	assert.Less(t, FlexibilityPenalty(0), FlexibilityPenalty(1))
	assert.Less(t, FlexibilityPenalty(1), FlexibilityPenalty(5))
}
