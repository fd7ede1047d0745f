/*
 * scoring.go, part of voxdock.
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

// Package scoring implements the pairwise empirical scoring function: a
// symmetric table sf[t1,t2] -> (energy(r²), dEnergy/dr²) sampled at
// Num_Samples uniformly spaced squared distances, precalculated in
// parallel across all T*(T+1)/2 unordered type pairs. Grounded on
// idock's scoring_function.{hpp,cpp} (referenced only by its shape,
// not its coefficients) and on gochem's own habit of precalculating lookup
// tables once and sharing them immutably (scoring_function is read-only
// after Precalculate, the way v3's ErigenWrap-adjacent tables are built
// once and shared).
package scoring

import (
	"math"

	"github.com/korralabs/voxdock/threadpool"
	"github.com/korralabs/voxdock/vec3"
	"github.com/korralabs/voxdock/xstype"
)

// Default tuning constants.
const (
	DefaultCutoff     vec3.Fl = 8.0
	DefaultNumSamples         = 2048
)

// Sample is one entry of the per-pair lookup table: the energy at a sampled
// squared distance, and the finite-difference slope to the next sample.
type Sample struct {
	E  vec3.Fl // energy(r²)
	DE vec3.Fl // (e[i+1]-e[i]) * Factor, i.e. de/dr² by forward difference
}

// Function is the precalculated symmetric scoring table.
type Function struct {
	Cutoff     vec3.Fl
	NumSamples int
	Factor     vec3.Fl // NumSamples / Cutoff^2

	// table is indexed by the unordered pair key so sf[t1,t2] == sf[t2,t1]
	// by construction rather than by a runtime check.
	table [][]Sample
}

func pairKey(t1, t2 xstype.Type) int {
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return int(t1)*xstype.Size + int(t2)
}

// New allocates an empty Function; call Precalculate (directly, or via
// PrecalculateAll) before querying it.
func New(cutoff vec3.Fl, numSamples int) *Function {
	return &Function{
		Cutoff:     cutoff,
		NumSamples: numSamples,
		Factor:     vec3.Fl(numSamples) / (cutoff * cutoff),
		table:      make([][]Sample, xstype.Size*xstype.Size),
	}
}

// Samples returns the Num_Samples sample distances rs[i] = sqrt(i/Factor),
// so that rs[0]==0 and rs[last]==Cutoff. The last sample
// is pinned to Cutoff exactly: Factor=NumSamples/Cutoff² makes
// sqrt((NumSamples-1)/Factor) fall just short of Cutoff for finite
// NumSamples, and the boundary invariant (e(Cutoff²)==0) must hold exactly.
func (f *Function) Samples() []vec3.Fl {
	rs := make([]vec3.Fl, f.NumSamples)
	for i := range rs {
		rs[i] = math.Sqrt(vec3.Fl(i) / f.Factor)
	}
	rs[len(rs)-1] = f.Cutoff
	return rs
}

// EnergyTerms evaluates the Van der Waals, hydrophobic and hydrogen-bond
// components of the empirical scoring function between an atom of type t1
// and one of type t2 separated by distance r, tapered smoothly to exactly
// zero at r==cutoff so the boundary invariant e(Cutoff²)==0 holds exactly.
// The constants here are a simplified XScore-style empirical potential;
// exact coefficients are deliberately out of scope, only the shape and
// the precalculation protocol matter here.
func EnergyTerms(t1, t2 xstype.Type, r, cutoff vec3.Fl) vec3.Fl {
	const (
		vdwWellDepth = 0.156
		vdwRadius    = 3.5
		hbWellDepth  = -2.0
		hydroSlope   = -0.035
	)
	if r >= cutoff {
		return 0
	}
	if r <= 0 {
		r = 1e-6
	}
	ratio := vdwRadius / r
	r6 := math.Pow(ratio, 6)
	r12 := r6 * r6
	vdw := vdwWellDepth * (r12 - 2*r6)

	var hb vec3.Fl
	if (t1.IsDonor() && t2.IsAcceptor()) || (t1.IsAcceptor() && t2.IsDonor()) {
		hb = hbWellDepth * math.Exp(-((r - 1.9) * (r - 1.9)))
	}

	var hydro vec3.Fl
	if t1.IsHydrophobic() && t2.IsHydrophobic() {
		hydro = hydroSlope * r
	}

	raw := vdw + hb + hydro
	x := r / cutoff
	taper := 1 - x*x
	taper *= taper
	return raw * taper
}

// Precalculate fills the entry for the unordered pair {t1,t2}: for each
// sample rs[i], e[i] is the sum of scoring terms at that distance, and
// de[i] is the forward-difference slope scaled by Factor, with de[last]=0.
func (f *Function) Precalculate(t1, t2 xstype.Type, rs []vec3.Fl) {
	n := len(rs)
	samples := make([]Sample, n)
	for i, r := range rs {
		samples[i].E = EnergyTerms(t1, t2, r, f.Cutoff)
	}
	for i := 0; i < n-1; i++ {
		samples[i].DE = (samples[i+1].E - samples[i].E) * f.Factor
	}
	samples[n-1].DE = 0
	f.table[pairKey(t1, t2)] = samples
}

// PrecalculateAll populates every unordered pair using the given pool,
// mirroring idock main.cpp's dispatch of T*(T+1)/2 packaged_tasks followed
// by tp.sync().
func (f *Function) PrecalculateAll(pool *threadpool.Pool) error {
	rs := f.Samples()
	var tasks []threadpool.Task
	for t1 := xstype.Type(0); int(t1) < xstype.Size; t1++ {
		for t2 := t1; int(t2) < xstype.Size; t2++ {
			t1, t2 := t1, t2
			tasks = append(tasks, func() error {
				f.Precalculate(t1, t2, rs)
				return nil
			})
		}
	}
	return threadpool.Sync(pool.Run(tasks))
}

// Query returns (e, de/dr²) for the unordered pair (t1,t2) at squared
// distance rSq, by integer-index lookup with no interpolation beyond the
// stored gradient.
func (f *Function) Query(t1, t2 xstype.Type, rSq vec3.Fl) Sample {
	samples := f.table[pairKey(t1, t2)]
	idx := int(rSq * f.Factor)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(samples) {
		idx = len(samples) - 1
	}
	return samples[idx]
}

// EnergyAt is a convenience accessor for just the energy term.
func (f *Function) EnergyAt(t1, t2 xstype.Type, rSq vec3.Fl) vec3.Fl {
	return f.Query(t1, t2, rSq).E
}
