/*
 * resultset.go, part of voxdock.
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

// Package resultset holds the bounded, RMSD-clustered, f-sorted collection
// of candidate conformations a Monte Carlo search accumulates.
// Grounded on the pack's habit of keeping small, single-purpose
// value types with a single invariant-preserving mutator (e.g. v3.Matrix's
// EigenWrap) rather than a generic container plus ad-hoc call-site logic.
package resultset

import (
	"sort"

	"github.com/korralabs/voxdock/molecule"
	"github.com/korralabs/voxdock/vec3"
)

// Result is one candidate conformation: its pose, its total energy f, its
// flexibility-normalized energy e_nd, and its heavy-atom global positions
// (cached so clustering never re-walks the torsion tree). PerFrameForces
// is never filled in by this module; mc.Task leaves it nil.
type Result struct {
	Conformation     molecule.Pose
	PerFrameForces   []vec3.Vec3
	TotalEnergy      vec3.Fl
	NormalizedEnergy vec3.Fl
	HeavyAtomPos     []vec3.Vec3
}

// squaredDisplacement sums, over corresponding heavy atoms, the squared
// distance between a and b's positions (cluster predicate).
func squaredDisplacement(a, b *Result) vec3.Fl {
	var sum vec3.Fl
	n := len(a.HeavyAtomPos)
	if len(b.HeavyAtomPos) < n {
		n = len(b.HeavyAtomPos)
	}
	for i := 0; i < n; i++ {
		sum += a.HeavyAtomPos[i].SqDist(b.HeavyAtomPos[i])
	}
	return sum
}

// ClusterThreshold returns S = 4*numHeavyAtoms, the squared-displacement
// cutoff below which two results are considered the same cluster
// (RMSD < 2.0 Å).
func ClusterThreshold(numHeavyAtoms int) vec3.Fl {
	return 4 * vec3.Fl(numHeavyAtoms)
}

// Set is an ordered (by TotalEnergy ascending), RMSD-clustered, bounded
// collection of Results.
type Set struct {
	MaxResults int
	results    []*Result
}

// New allocates an empty Set bounded to maxResults.
func New(maxResults int) *Set {
	return &Set{MaxResults: maxResults}
}

// Results returns the set's contents, sorted by TotalEnergy ascending.
// The returned slice must not be mutated by the caller.
func (s *Set) Results() []*Result { return s.results }

// Len returns the number of results currently held.
func (s *Set) Len() int { return len(s.results) }

// Best returns the lowest-energy result, or nil if s is empty.
func (s *Set) Best() *Result {
	if len(s.results) == 0 {
		return nil
	}
	return s.results[0]
}

// Add applies add_to_result_container: find the first
// existing result within threshold squared-displacement of r; if one
// exists and is no worse, drop r; if one exists and is worse, replace it
// with r; otherwise insert r in sorted position and, if the set now
// exceeds MaxResults, drop the worst (last) element.
func (s *Set) Add(r *Result, threshold vec3.Fl) {
	for i, q := range s.results {
		if squaredDisplacement(q, r) < threshold {
			if q.TotalEnergy <= r.TotalEnergy {
				return
			}
			s.results = append(s.results[:i], s.results[i+1:]...)
			break
		}
	}
	s.insertSorted(r)
	if len(s.results) > s.MaxResults {
		s.results = s.results[:s.MaxResults]
	}
}

func (s *Set) insertSorted(r *Result) {
	idx := sort.Search(len(s.results), func(i int) bool {
		return s.results[i].TotalEnergy > r.TotalEnergy
	})
	s.results = append(s.results, nil)
	copy(s.results[idx+1:], s.results[idx:])
	s.results[idx] = r
}

// Merge folds every result of other into s via Add, in order, the way
// 4.7 step 5 merges each Monte Carlo task's local list into the global
// one.
func (s *Set) Merge(other *Set, threshold vec3.Fl) {
	for _, r := range other.results {
		s.Add(r, threshold)
	}
}
