/*
 * slices.go, part of voxdock.
 *
 * Copyright 2026 The voxdock Authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package library

// DefaultTotalLigands is the ligand count the original 101-element slice
// table (original_source/idock/src/main.cpp) was built for: the
// 12,171,187-compound ZINC-derived library idock shipped with.
const DefaultTotalLigands = 12171187

// DefaultSliceBoundaries is the 101-element ascending partition of
// DefaultTotalLigands, computed by Slices(100, DefaultTotalLigands) rather
// than copied from idock's table; slice s covers
// [DefaultSliceBoundaries[s], DefaultSliceBoundaries[s+1]).
var DefaultSliceBoundaries = Slices(100, DefaultTotalLigands)

// Slices computes an n+1-element ascending partition of [0, total) into n
// evenly sized (within one) slices: boundary[i] = floor(total*i/n). This
// generalizes the original hard-coded 101-element table (n=100) to any
// library size, since a worker that only ever supports one fixed library
// size is an artifact of a single deployment, not an invariant of the
// system.
func Slices(n, total int) []int {
	bounds := make([]int, n+1)
	for i := 0; i <= n; i++ {
		bounds[i] = int(int64(total) * int64(i) / int64(n))
	}
	return bounds
}

// SliceBounds returns the half-open [start, end) ligand index range of
// slice s given its boundary table: slice s covers
// [boundaries[s], boundaries[s+1]).
func SliceBounds(boundaries []int, s int) (start, end int) {
	return boundaries[s], boundaries[s+1]
}
