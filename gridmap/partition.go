/*
 * partition.go, part of voxdock.
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
	"math"

	"github.com/korralabs/voxdock/box"
	"github.com/korralabs/voxdock/molecule"
	"github.com/korralabs/voxdock/vec3"
)

// Partition buckets receptor atom indices (restricted to those within
// cutoff of the box) into the box's coarse partition grid, so
// grid_map_task can restrict its per-probe neighbor search to a handful
// of nearby cells instead of scanning every receptor atom.
type Partition struct {
	box     *box.Box
	buckets map[vec3.Index3][]int
}

// Build partitions r's atoms into b's coarse grid, keeping only atoms
// within b.Cutoff of b's boundary.
func Build(b *box.Box, r *molecule.Receptor) *Partition {
	p := &Partition{box: b, buckets: map[vec3.Index3][]int{}}
	for _, idx := range r.AtomsWithinCutoff(b) {
		pi := p.clampedIndex(b.PartitionIndex(r.Atoms[idx].Coordinate))
		p.buckets[pi] = append(p.buckets[pi], idx)
	}
	return p
}

func (p *Partition) clampedIndex(i vec3.Index3) vec3.Index3 {
	clamp := func(v, max int) int {
		if v < 0 {
			return 0
		}
		if v >= max {
			return max - 1
		}
		return v
	}
	return vec3.Index3{
		X: clamp(i.X, p.box.NumPartitions.X),
		Y: clamp(i.Y, p.box.NumPartitions.Y),
		Z: clamp(i.Z, p.box.NumPartitions.Z),
	}
}

// NeighborAtoms returns the receptor atom indices in every partition cell
// that b.Cutoff can reach from cell center: ceil(Cutoff/PartitionSize)
// cells out along each axis, since a 3 Å cell is smaller than the cutoff.
func (p *Partition) NeighborAtoms(center vec3.Index3) []int {
	reach := func(d int) int { return int(math.Ceil(p.box.Cutoff / p.box.PartitionSize.At(d))) }
	rx, ry, rz := reach(0), reach(1), reach(2)
	var out []int
	for dx := -rx; dx <= rx; dx++ {
		for dy := -ry; dy <= ry; dy++ {
			for dz := -rz; dz <= rz; dz++ {
				idx := vec3.Index3{X: center.X + dx, Y: center.Y + dy, Z: center.Z + dz}
				if !idx.Within(p.box.NumPartitions) {
					continue
				}
				out = append(out, p.buckets[idx]...)
			}
		}
	}
	return out
}
