/*
 * bfgs.go, part of voxdock.
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
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// bfgsLocalSearch refines x0 (relative to base) by backtracking BFGS,
// line-searching across cfg.Alphas (alpha_k = 0.1^k) and updating the
// inverse Hessian H with the standard BFGS rank-2 update. It returns the
// locally optimized point and its energy.
func bfgsLocalSearch(m *energyModel, base molecule.Pose, x0 dof, cfg Config) (dof, vec3.Fl) {
	n := len(x0)
	x := append(dof(nil), x0...)
	h := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		h.SetSym(i, i, 1)
	}

	f := m.objective(base, x)
	grad := m.gradient(base, x, cfg.FiniteDifferenceStep)

	for iter := 0; iter < cfg.NumBFGSIterations; iter++ {
		if floats.Norm(grad, 2) < cfg.GradientTolerance {
			break
		}

		direction := matVec(h, grad)
		floats.Scale(-1, direction)

		accepted := false
		var xNext dof
		var fNext vec3.Fl
		for _, alpha := range cfg.Alphas {
			cand := append(dof(nil), x...)
			for i := range cand {
				cand[i] += alpha * direction[i]
			}
			fc := m.objective(base, cand)
			if fc < f {
				xNext, fNext, accepted = cand, fc, true
				break
			}
		}
		if !accepted {
			break
		}

		gradNext := m.gradient(base, xNext, cfg.FiniteDifferenceStep)
		updateInverseHessian(h, xNext, x, gradNext, grad)

		x, f, grad = xNext, fNext, gradNext
	}

	return x, f
}

// updateInverseHessian applies the BFGS rank-2 update
// H_{k+1} = (I - rho*s*y^T) H_k (I - rho*y*s^T) + rho*s*s^T
// where s = x_{k+1} - x_k, y = grad_{k+1} - grad_k, rho = 1/(y.s). Skips
// the update (leaving H unchanged) when y.s is not safely positive, the
// usual curvature-condition guard against a corrupted inverse Hessian.
func updateInverseHessian(h *mat.SymDense, xNext, x dof, gradNext, grad dof) {
	n := len(x)
	s := make([]vec3.Fl, n)
	y := make([]vec3.Fl, n)
	for i := 0; i < n; i++ {
		s[i] = xNext[i] - x[i]
		y[i] = gradNext[i] - grad[i]
	}
	sy := floats.Dot(s, y)
	if sy <= 1e-10 {
		return
	}
	rho := 1 / sy

	hy := matVec(h, y)
	yHy := floats.Dot(y, hy)

	// Compute every updated entry from the pre-update h before writing any
	// of them back, since SetSym below would otherwise corrupt the h.At
	// reads of entries not yet visited.
	updated := make([]vec3.Fl, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			updated[i*n+j] = h.At(i, j) - rho*(s[i]*hy[j]+hy[i]*s[j]) + rho*rho*yHy*s[i]*s[j] + rho*s[i]*s[j]
		}
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			h.SetSym(i, j, updated[i*n+j])
		}
	}
}

func matVec(h *mat.SymDense, v []vec3.Fl) []vec3.Fl {
	n := len(v)
	out := make([]vec3.Fl, n)
	vv := mat.NewVecDense(n, v)
	var r mat.VecDense
	r.MulVec(h, vv)
	for i := 0; i < n; i++ {
		out[i] = r.AtVec(i)
	}
	return out
}
