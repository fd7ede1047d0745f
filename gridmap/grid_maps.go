/*
 * grid_maps.go, part of voxdock.
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

// Package gridmap precalculates, per search box, one dense interaction-energy
// grid per XScore atom type actually needed by the ligands of a slice.
// A Maps value is shared read-only across every ligand of a slice once
// populated; its per-type arrays only ever grow from uninitialized to
// zero-filled to fully populated, never back, mirrored by
// vec3.Array3D.Resize's own no-op-if-already-initialized guard.
package gridmap

import (
	"github.com/korralabs/voxdock/box"
	"github.com/korralabs/voxdock/vec3"
	"github.com/korralabs/voxdock/xstype"
)

// Maps holds one Array3D per populated atom type, all sharing b.NumProbes
// dimensions.
type Maps struct {
	Box       *box.Box
	Populated xstype.Set
	arrays    map[xstype.Type]*vec3.Array3D
}

// New allocates an empty Maps for the given box; no per-type array exists
// until ensure or a population task touches it.
func New(b *box.Box) *Maps {
	return &Maps{Box: b, arrays: map[xstype.Type]*vec3.Array3D{}}
}

// Missing returns needed \ m.Populated, the atom types a newly arrived
// ligand requires that this box has not yet computed a grid for
// ("missing = needed \ populated").
func (m *Maps) Missing(needed xstype.Set) xstype.Set {
	return needed.Minus(m.Populated)
}

// ensure returns the Array3D for t, allocating (zero-filled) it on first use.
// It writes m.arrays, so it is not safe to call concurrently; PopulateTask
// calls it for every missing t before it dispatches any task.
func (m *Maps) ensure(t xstype.Type) *vec3.Array3D {
	a, ok := m.arrays[t]
	if !ok {
		a = &vec3.Array3D{}
		m.arrays[t] = a
	}
	a.Resize(m.Box.NumProbes)
	return a
}

// At returns the energy of the grid for atom type t at probe index i. The
// caller must have already ensured t is populated (via PopulateTask).
func (m *Maps) At(t xstype.Type, i vec3.Index3) vec3.Fl {
	a, ok := m.arrays[t]
	if !ok {
		return 0
	}
	return a.At(i)
}

// markPopulated records that every probe of t's grid has been computed.
func (m *Maps) markPopulated(t xstype.Type) {
	m.Populated = m.Populated.Add(t)
}
