/*
 * atom.go, part of voxdock.
 *
 * Copyright 2026 The voxdock Authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

// Package molecule holds the parsed molecular graphs the docking engine
// consumes: receptor atoms, and the ligand's rooted torsion tree. Full
// PDBQT-like text parsing is explicitly out of scope here; this package
// is the atom/bond structure that parsing must yield,
// grounded on goChem's own Atom/Bond/Topology split in chem.go, adapted
// from goChem's general-purpose PDB atom (name, b-factor, occupancy, ...)
// down to the handful of fields the scoring function and grid maps need.
package molecule

import "github.com/korralabs/voxdock/vec3"
import "github.com/korralabs/voxdock/xstype"

// Atom is a single heavy atom: its XScore type and Cartesian coordinate.
// The ligand reuses the same shape for its local (frame-relative) atom
// coordinates; Copy gives each consumer of a shared Atom slice its own
// value, mirroring goChem's Atom.Copy.
type Atom struct {
	Type       xstype.Type
	Coordinate vec3.Vec3
}

// Copy returns a value copy of a.
func (a Atom) Copy() Atom { return a }

// Bond connects two atom indices (into the owning Receptor's or Ligand's
// Atoms slice) by an order-independent relationship used to exclude
// pairs three or fewer bonds apart (1-2, 1-3, 1-4) from intra-ligand
// scoring.
type Bond struct {
	Atom1, Atom2 int
}

// Other returns the bond endpoint that isn't idx, or -1 if idx isn't an
// endpoint of b.
func (b Bond) Other(idx int) int {
	switch idx {
	case b.Atom1:
		return b.Atom2
	case b.Atom2:
		return b.Atom1
	default:
		return -1
	}
}
