/*
 * energy.go, part of voxdock.
 *
 * Copyright 2026 The voxdock Authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package mc

import (
	"math"

	"github.com/korralabs/voxdock/box"
	"github.com/korralabs/voxdock/gridmap"
	"github.com/korralabs/voxdock/molecule"
	"github.com/korralabs/voxdock/scoring"
	"github.com/korralabs/voxdock/vec3"
	"github.com/korralabs/voxdock/xstype"
)

// energyModel bundles everything Evaluate needs: the ligand's torsion
// tree, the shared scoring function and grid maps, the search box, and
// the ligand's non-bonded atom pairs (computed once, reused by every
// evaluation).
type energyModel struct {
	lig       *molecule.Ligand
	sf        *scoring.Function
	maps      *gridmap.Maps
	b         *box.Box
	nonBonded [][2]int
}

func newEnergyModel(lig *molecule.Ligand, sf *scoring.Function, maps *gridmap.Maps, b *box.Box) *energyModel {
	return &energyModel{lig: lig, sf: sf, maps: maps, b: b, nonBonded: lig.NonBondedPairs()}
}

// Evaluate returns the total energy f (inter + intra) of pose. A heavy
// atom landing outside [0, num_probes) is penalized with +Inf, the
// hot-path-safe clamp used instead of raising an exception.
func (m *energyModel) Evaluate(pose molecule.Pose) vec3.Fl {
	positions := m.lig.Place(pose)

	var inter vec3.Fl
	for i, a := range m.lig.Atoms {
		e, ok := m.interpolate(a.Type, positions[i])
		if !ok {
			return math.Inf(1)
		}
		inter += e
	}

	var intra vec3.Fl
	for _, pair := range m.nonBonded {
		i, j := pair[0], pair[1]
		rSq := positions[i].SqDist(positions[j])
		intra += m.sf.EnergyAt(m.lig.Atoms[i].Type, m.lig.Atoms[j].Type, rSq)
	}

	return inter + intra
}

// interpolate trilinearly blends grid_maps[t] across the 8 probe vertices
// surrounding p. ok is false if p's cell (or its +1 neighbor) falls
// outside [0, num_probes).
func (m *energyModel) interpolate(t xstype.Type, p vec3.Vec3) (vec3.Fl, bool) {
	gi := m.b.GridIndex(p)
	if gi.X < 0 || gi.Y < 0 || gi.Z < 0 ||
		gi.X+1 >= m.b.NumProbes.X || gi.Y+1 >= m.b.NumProbes.Y || gi.Z+1 >= m.b.NumProbes.Z {
		return 0, false
	}

	corner := m.b.GridCorner1(gi)
	fx := (p.X - corner.X) / m.b.GridGranularity
	fy := (p.Y - corner.Y) / m.b.GridGranularity
	fz := (p.Z - corner.Z) / m.b.GridGranularity

	var e vec3.Fl
	for _, c := range [8]vec3.Index3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1},
	} {
		wx := lerpWeight(fx, c.X)
		wy := lerpWeight(fy, c.Y)
		wz := lerpWeight(fz, c.Z)
		idx := vec3.Index3{X: gi.X + c.X, Y: gi.Y + c.Y, Z: gi.Z + c.Z}
		e += wx * wy * wz * m.maps.At(t, idx)
	}
	return e, true
}

func lerpWeight(frac vec3.Fl, bit int) vec3.Fl {
	if bit == 0 {
		return 1 - frac
	}
	return frac
}
