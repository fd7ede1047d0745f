/*
 * grid_map_task.go, part of voxdock.
 *
 * Copyright 2026 The voxdock Authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package gridmap

import (
	"github.com/korralabs/voxdock/box"
	"github.com/korralabs/voxdock/molecule"
	"github.com/korralabs/voxdock/scoring"
	"github.com/korralabs/voxdock/threadpool"
	"github.com/korralabs/voxdock/vec3"
	"github.com/korralabs/voxdock/xstype"
)

// PopulateTask fills every grid in m.Missing(needed), dispatching one
// threadpool task per (atom type, probe x-slice) pair so the work for a
// single atom type is itself parallelized across the pool: population is
// sharded along the probe grid's x-axis. Each task only ever writes the
// slab of cells it owns, so no synchronization is needed between tasks
// of the same type.
func PopulateTask(m *Maps, r *molecule.Receptor, sf *scoring.Function, needed xstype.Set, pool *threadpool.Pool) error {
	missing := m.Missing(needed)
	if missing.Empty() {
		return nil
	}
	part := Build(m.Box, r)

	var tasks []threadpool.Task
	nx := m.Box.NumProbes.X
	for _, t := range missing.Slice() {
		t := t
		arr := m.ensure(t)
		for x := 0; x < nx; x++ {
			x := x
			tasks = append(tasks, func() error {
				populateSlab(m.Box, r, part, sf, t, arr, x)
				return nil
			})
		}
	}
	if err := threadpool.Sync(pool.Run(tasks)); err != nil {
		return err
	}
	for _, t := range missing.Slice() {
		m.markPopulated(t)
	}
	return nil
}

// populateSlab fills every probe at probe-x-index x for atom type t: for
// each probe point, sum the pairwise energy against every receptor atom in
// cutoff-adjacent partitions.
func populateSlab(b *box.Box, r *molecule.Receptor, part *Partition, sf *scoring.Function, t xstype.Type, arr *vec3.Array3D, x int) {
	ny, nz := b.NumProbes.Y, b.NumProbes.Z
	for y := 0; y < ny; y++ {
		for z := 0; z < nz; z++ {
			idx := vec3.Index3{X: x, Y: y, Z: z}
			p := b.GridCorner1(idx)
			center := part.clampedIndex(b.PartitionIndex(p))
			var e vec3.Fl
			for _, ai := range part.NeighborAtoms(center) {
				atom := r.Atoms[ai]
				rSq := atom.Coordinate.SqDist(p)
				if rSq >= sf.Cutoff*sf.Cutoff {
					continue
				}
				e += sf.EnergyAt(atom.Type, t, rSq)
			}
			arr.Set(idx, e)
		}
	}
}
