/*
 * gradient.go, part of voxdock.
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
	"github.com/korralabs/voxdock/molecule"
	"github.com/korralabs/voxdock/vec3"
)

// dof is the 6+nrb degree-of-freedom vector BFGS optimizes over on a given
// outer-loop step: a displacement from base in translation (0:3), an
// axis-angle rotation delta applied as base.Orientation.Perturb (3:6), and
// one torsion delta per rotatable bond (6:6+nrb).
type dof []vec3.Fl

func newDOF(nrb int) dof { return make(dof, 6+nrb) }

// pose reconstructs the full conformation that x represents relative to
// base.
func (x dof) pose(base molecule.Pose) molecule.Pose {
	pos := base.Position.Add(vec3.New(x[0], x[1], x[2]))
	axis := vec3.New(x[3], x[4], x[5])
	angle := axis.Norm()
	orient := base.Orientation
	if angle > 0 {
		orient = base.Orientation.Perturb(axis, angle)
	}
	torsions := make([]vec3.Fl, len(base.Torsions))
	for i := range torsions {
		torsions[i] = base.Torsions[i] + x[6+i]
	}
	return molecule.Pose{Position: pos, Orientation: orient, Torsions: torsions}
}

// objective evaluates f at x (relative to base) via m.
func (m *energyModel) objective(base molecule.Pose, x dof) vec3.Fl {
	return m.Evaluate(x.pose(base))
}

// gradient approximates ∇f at x via central differences, step h per
// component. The torsion tree's true analytic gradient requires
// differentiating the trilinear interpolation through the quaternion
// composition chain; central differences give a numerically close
// approximation at a cost this package's fixed per-step budget already
// accounts for.
func (m *energyModel) gradient(base molecule.Pose, x dof, h vec3.Fl) dof {
	g := newDOF(len(x) - 6)
	for i := range x {
		xp := append(dof(nil), x...)
		xm := append(dof(nil), x...)
		xp[i] += h
		xm[i] -= h
		g[i] = (m.objective(base, xp) - m.objective(base, xm)) / (2 * h)
	}
	return g
}
