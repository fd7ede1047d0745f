/*
 * ligand.go, part of voxdock.
 *
 * Copyright 2026 The voxdock Authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 */

package molecule

import (
	"math"

	"github.com/korralabs/voxdock/vec3"
	"github.com/korralabs/voxdock/xstype"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Frame is one rigid group of the ligand's torsion tree: a set of atoms
// that move together, connected to its parent frame by a single rotatable
// bond. The root frame (Parent == -1) has no axis atoms: its placement
// comes directly from the conformation's position and orientation.
//
// PivotParentAtom and PivotAtom are the shared bond's two endpoint atom
// indices (into Ligand.Atoms): PivotParentAtom belongs to the parent
// frame, PivotAtom belongs to this frame, and the torsion angle rotates
// this frame (and all its descendants) about the PivotParentAtom->PivotAtom
// axis.
type Frame struct {
	Parent          int
	AtomIndices     []int
	PivotParentAtom int
	PivotAtom       int
}

// Ligand is a rooted torsion tree of rigid frames connected by rotatable
// bonds. Atoms carry reference (frame-local, pre-pose) coordinates;
// Place derives global heavy-atom positions for a
// given conformation.
type Ligand struct {
	Atoms  []Atom
	Bonds  []Bond
	Frames []Frame

	// NumHeavyAtoms is len(Atoms) restricted to heavy (non-hydrogen)
	// atoms; since this package only ever models heavy atoms, it equals
	// len(Atoms).
	NumHeavyAtoms int

	// FlexibilityPenaltyFactor is monotone increasing in the number of
	// rotatable bonds (NumRotatableBonds).
	FlexibilityPenaltyFactor vec3.Fl

	// tree is the gonum/graph representation of Frames, used to compute a
	// BFS placement order from the root the way chemgraph.Topology wraps
	// a chemistry graph in gonum/graph for traversal.
	tree *simple.DirectedGraph
}

// NewLigand builds a Ligand and its torsion-tree graph from parsed atoms,
// bonds and frames. frames[0] must be the root (Parent == -1).
func NewLigand(atoms []Atom, bonds []Bond, frames []Frame) *Ligand {
	l := &Ligand{
		Atoms:         atoms,
		Bonds:         bonds,
		Frames:        frames,
		NumHeavyAtoms: len(atoms),
		tree:          simple.NewDirectedGraph(),
	}
	for i := range frames {
		l.tree.AddNode(simple.Node(i))
	}
	for i, f := range frames {
		if f.Parent >= 0 {
			l.tree.SetEdge(l.tree.NewEdge(simple.Node(f.Parent), simple.Node(i)))
		}
	}
	l.FlexibilityPenaltyFactor = FlexibilityPenalty(l.NumRotatableBonds())
	return l
}

// NumRotatableBonds is nrb, the number of non-root frames (one rotatable
// bond per frame boundary).
func (l *Ligand) NumRotatableBonds() int {
	if len(l.Frames) == 0 {
		return 0
	}
	return len(l.Frames) - 1
}

// DegreesOfFreedom returns 6+nrb: 3 translational, 3 rotational, one per
// rotatable bond.
func (l *Ligand) DegreesOfFreedom() int {
	return 6 + l.NumRotatableBonds()
}

// FlexibilityPenalty is monotone increasing in nrb, following AutoDock's
// convention of penalizing more flexible ligands in the reported free
// energy.
func FlexibilityPenalty(nrb int) vec3.Fl {
	const (
		a = 0.05846 // weight, AutoDock4-style Nrot coefficient
	)
	return 1 + a*vec3.Fl(nrb)
}

// AtomTypes returns the set of distinct XScore atom types appearing in any
// atom of the ligand.
func (l *Ligand) AtomTypes() xstype.Set {
	var s xstype.Set
	for _, a := range l.Atoms {
		s = s.Add(a.Type)
	}
	return s
}

// placementOrder returns frame indices in an order where every frame's
// parent precedes it, computed as a BFS from the root over l.tree the way
// chemgraph/graph.go walks a gonum/graph topology.
func (l *Ligand) placementOrder() []int {
	order := make([]int, 0, len(l.Frames))
	visited := make([]bool, len(l.Frames))
	queue := []int{0}
	visited[0] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)
		to := l.tree.From(int64(cur))
		for to.Next() {
			child := int(to.Node().ID())
			if !visited[child] {
				visited[child] = true
				queue = append(queue, child)
			}
		}
	}
	return order
}

var _ graph.Directed = (*simple.DirectedGraph)(nil)

// frameTransform is the rigid transform (rotation + pivot) carrying a
// frame's reference coordinates into global space.
type frameTransform struct {
	rotation vec3.Quat
	pivotRef vec3.Vec3
	pivotG   vec3.Vec3
}

func (t frameTransform) apply(ref vec3.Vec3) vec3.Vec3 {
	return t.pivotG.Add(t.rotation.Rotate(ref.Sub(t.pivotRef)))
}

// Pose is a ligand conformation: position, orientation and one torsion
// angle per rotatable bond.
type Pose struct {
	Position    vec3.Vec3
	Orientation vec3.Quat
	Torsions    []vec3.Fl
}

// Place derives the global heavy-atom coordinates implied by pose, walking
// the torsion tree root-to-leaves.
func (l *Ligand) Place(pose Pose) []vec3.Vec3 {
	positions := make([]vec3.Vec3, len(l.Atoms))
	transforms := make([]frameTransform, len(l.Frames))

	root := l.Frames[0]
	rootRef := l.frameOriginRef(root)
	transforms[0] = frameTransform{
		rotation: pose.Orientation,
		pivotRef: rootRef,
		pivotG:   pose.Position,
	}
	for _, idx := range root.AtomIndices {
		positions[idx] = transforms[0].apply(l.Atoms[idx].Coordinate)
	}

	for _, fi := range l.placementOrder() {
		if fi == 0 {
			continue
		}
		f := l.Frames[fi]
		parent := transforms[f.Parent]
		pivotPoint1 := parent.apply(l.Atoms[f.PivotParentAtom].Coordinate)
		pivotPoint2 := parent.apply(l.Atoms[f.PivotAtom].Coordinate)
		axis := pivotPoint2.Sub(pivotPoint1)

		angle := vec3.Fl(0)
		if fi-1 < len(pose.Torsions) {
			angle = pose.Torsions[fi-1]
		}
		torsionRot := vec3.FromAxisAngle(axis, angle)

		t := frameTransform{
			rotation: torsionRot.Mul(parent.rotation).Normalize(),
			pivotRef: l.Atoms[f.PivotAtom].Coordinate,
			pivotG:   pivotPoint2,
		}
		transforms[fi] = t
		for _, idx := range f.AtomIndices {
			positions[idx] = t.apply(l.Atoms[idx].Coordinate)
		}
	}
	return positions
}

// frameOriginRef returns the reference point the root frame's global pose
// is anchored to: the centroid of its own atoms.
func (l *Ligand) frameOriginRef(root Frame) vec3.Vec3 {
	if len(root.AtomIndices) == 0 {
		return vec3.Vec3{}
	}
	var sum vec3.Vec3
	for _, idx := range root.AtomIndices {
		sum = sum.Add(l.Atoms[idx].Coordinate)
	}
	return sum.Scale(1 / vec3.Fl(len(root.AtomIndices)))
}

// RandomTorsions returns nrb torsion angles uniformly drawn from [-pi,pi)
// using the supplied [0,1) samples, for the Monte Carlo task's random
// restart.
func RandomTorsions(nrb int, u01 []vec3.Fl) []vec3.Fl {
	out := make([]vec3.Fl, nrb)
	for i := 0; i < nrb; i++ {
		out[i] = u01[i]*2*math.Pi - math.Pi
	}
	return out
}
