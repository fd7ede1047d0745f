/*
 * receptor.go, part of voxdock.
 *
 * Copyright 2026 The voxdock Authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package molecule

import "github.com/korralabs/voxdock/vec3"

// Receptor is an ordered array of heavy atoms; bonds are unused by the
// docking core but kept for completeness of a parsed receptor
// structure.
type Receptor struct {
	Atoms []Atom
	Bonds []Bond
}

// New builds a Receptor from parsed atoms and bonds.
func New(atoms []Atom, bonds []Bond) *Receptor {
	return &Receptor{Atoms: atoms, Bonds: bonds}
}

// cutoffBox is the part of a search box AtomsWithinCutoff needs: whether a
// point lies within the box's cutoff-extended boundary.
type cutoffBox interface {
	WithinCutoff(p vec3.Vec3) bool
}

// AtomsWithinCutoff returns, in ascending order, the indices of receptor
// atoms for which b.WithinCutoff(coordinate) holds.
func (r *Receptor) AtomsWithinCutoff(b cutoffBox) []int {
	out := make([]int, 0, len(r.Atoms))
	for i, a := range r.Atoms {
		if b.WithinCutoff(a.Coordinate) {
			out = append(out, i)
		}
	}
	return out
}
