/*
 * box.go, part of voxdock.
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

// Package box represents the cubic search space a job docks against: its
// probe grid, its coarse partition grid, and the index<->coordinate
// mappings both grids need. It is grounded on idock's box.hpp/box.cpp,
// translated from a C++ value type into a Go struct built once per slice
// and shared read-only thereafter (see engine.Engine).
package box

import (
	"math"

	"github.com/korralabs/voxdock/vec3"
)

// DefaultPartitionGranularity is the coarse partition cell size (~3 Å) used
// unless a caller overrides it.
const DefaultPartitionGranularity vec3.Fl = 3.0

// Box is an axis-aligned cubic search region with two superimposed grids:
// a fine probe grid (spacing GridGranularity) used for interaction maps,
// and a coarse partition grid (spacing ~3 Å) used to bucket receptor atoms
// for fast neighbor lookup.
type Box struct {
	Center vec3.Vec3
	Span   vec3.Vec3
	Corner1 vec3.Vec3
	Corner2 vec3.Vec3

	GridGranularity vec3.Fl
	NumGrids        vec3.Index3
	NumProbes       vec3.Index3

	PartitionGranularity vec3.Fl
	NumPartitions        vec3.Index3
	PartitionSize        vec3.Vec3

	// Cutoff is the scoring function's interaction cutoff distance; it is
	// carried on the box because within_cutoff needs it and every
	// geometry consumer already has a *Box in hand.
	Cutoff vec3.Fl
}

// New constructs a search box around center with the requested size,
// expanding each dimension to the nearest multiple of gridGranularity not
// smaller than size[d], per idock's box::box constructor.
func New(center, size vec3.Vec3, gridGranularity, cutoff vec3.Fl) *Box {
	return NewWithPartitionGranularity(center, size, gridGranularity, DefaultPartitionGranularity, cutoff)
}

// NewWithPartitionGranularity is New with an explicit partition granularity,
// exposed because queue.JobDocument.PartitionGranularity lets an operator
// override it.
func NewWithPartitionGranularity(center, size vec3.Vec3, gridGranularity, partitionGranularity, cutoff vec3.Fl) *Box {
	b := &Box{
		Center:               center,
		GridGranularity:      gridGranularity,
		PartitionGranularity: partitionGranularity,
		Cutoff:               cutoff,
	}

	for d := 0; d < 3; d++ {
		numGrids := int(math.Ceil(size.At(d) / gridGranularity))
		if numGrids < 1 {
			numGrids = 1
		}
		span := vec3.Fl(numGrids) * gridGranularity
		b.Span = b.Span.Set(d, span)
		b.NumGrids = setIdx(b.NumGrids, d, numGrids)
		b.NumProbes = setIdx(b.NumProbes, d, numGrids+1)

		numPartitions := int(math.Ceil(span / partitionGranularity))
		if numPartitions < 1 {
			numPartitions = 1
		}
		b.NumPartitions = setIdx(b.NumPartitions, d, numPartitions)
		b.PartitionSize = b.PartitionSize.Set(d, span/vec3.Fl(numPartitions))
	}

	b.Corner1 = b.Center.Sub(b.Span.Scale(0.5))
	b.Corner2 = b.Corner1.Add(b.Span)
	return b
}

func setIdx(i vec3.Index3, d, v int) vec3.Index3 {
	switch d {
	case 0:
		i.X = v
	case 1:
		i.Y = v
	case 2:
		i.Z = v
	}
	return i
}

// Within reports whether p lies in the half-open box [Corner1, Corner2).
func (b *Box) Within(p vec3.Vec3) bool {
	for d := 0; d < 3; d++ {
		if p.At(d) < b.Corner1.At(d) || p.At(d) >= b.Corner2.At(d) {
			return false
		}
	}
	return true
}

// ProjectDistanceSqr returns the squared Euclidean shortfall from p to the
// axis-aligned box [corner1, corner2]; zero if p is inside.
func ProjectDistanceSqr(corner1, corner2, p vec3.Vec3) vec3.Fl {
	var sum vec3.Fl
	for d := 0; d < 3; d++ {
		x := p.At(d)
		lo, hi := corner1.At(d), corner2.At(d)
		var shortfall vec3.Fl
		if x < lo {
			shortfall = lo - x
		} else if x > hi {
			shortfall = x - hi
		}
		sum += shortfall * shortfall
	}
	return sum
}

// ProjectDistanceSqr returns the squared shortfall from p to b's own
// boundary.
func (b *Box) ProjectDistanceSqr(p vec3.Vec3) vec3.Fl {
	return ProjectDistanceSqr(b.Corner1, b.Corner2, p)
}

// WithinCutoff reports whether p is within b.Cutoff of b's boundary.
func (b *Box) WithinCutoff(p vec3.Vec3) bool {
	return b.ProjectDistanceSqr(p) <= b.Cutoff*b.Cutoff
}

// WithinCutoffOf reports whether p is within b.Cutoff of the axis-aligned
// box [corner1, corner2], used by grid_map_task's partition-scoped
// neighbor check.
func (b *Box) WithinCutoffOf(corner1, corner2, p vec3.Vec3) bool {
	return ProjectDistanceSqr(corner1, corner2, p) <= b.Cutoff*b.Cutoff
}

// GridCorner1 returns the corner1 of the grid cell at the given probe
// index: Corner1 + index*GridGranularity.
func (b *Box) GridCorner1(index vec3.Index3) vec3.Vec3 {
	return b.Corner1.Add(index.ToVec3().Scale(b.GridGranularity))
}

// PartitionCorner1 returns the corner1 of the partition cell at the given
// index: Corner1 + index*PartitionSize (per-axis, since partitions need not
// be cubic once Span isn't an exact multiple of PartitionGranularity).
func (b *Box) PartitionCorner1(index vec3.Index3) vec3.Vec3 {
	return vec3.New(
		b.Corner1.X+vec3.Fl(index.X)*b.PartitionSize.X,
		b.Corner1.Y+vec3.Fl(index.Y)*b.PartitionSize.Y,
		b.Corner1.Z+vec3.Fl(index.Z)*b.PartitionSize.Z,
	)
}

// gridIndexTolerance (in grid cells) absorbs the rounding error of
// Corner1 + i*GridGranularity, so GridIndex(GridCorner1(i)) == i.
const gridIndexTolerance = 1e-9

// GridIndex returns the half-open grid cell index containing p.
func (b *Box) GridIndex(p vec3.Vec3) vec3.Index3 {
	return vec3.Index3{
		X: int(math.Floor((p.X-b.Corner1.X)/b.GridGranularity + gridIndexTolerance)),
		Y: int(math.Floor((p.Y-b.Corner1.Y)/b.GridGranularity + gridIndexTolerance)),
		Z: int(math.Floor((p.Z-b.Corner1.Z)/b.GridGranularity + gridIndexTolerance)),
	}
}

// PartitionIndex returns the half-open partition cell index containing p.
func (b *Box) PartitionIndex(p vec3.Vec3) vec3.Index3 {
	return vec3.Index3{
		X: int(math.Floor((p.X - b.Corner1.X) / b.PartitionSize.X)),
		Y: int(math.Floor((p.Y - b.Corner1.Y) / b.PartitionSize.Y)),
		Z: int(math.Floor((p.Z - b.Corner1.Z) / b.PartitionSize.Z)),
	}
}

// RandomPoint returns a uniformly random point within the box using the
// supplied [0,1) samples for each axis, used by the Monte Carlo task's
// random-restart step (the caller draws u from a gonum/stat/distuv.Uniform).
func (b *Box) RandomPoint(ux, uy, uz vec3.Fl) vec3.Vec3 {
	return vec3.New(
		b.Corner1.X+ux*b.Span.X,
		b.Corner1.Y+uy*b.Span.Y,
		b.Corner1.Z+uz*b.Span.Z,
	)
}
