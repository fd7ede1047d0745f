/*
 * config.go, part of voxdock.
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

// Package mc implements monte_carlo_task: one independently
// seeded search over a ligand's conformation space, mutating one
// degree-of-freedom group at a time and refining each proposal with a
// backtracking BFGS local search before a Metropolis accept/reject step.
// Grounded on goChem's align/lovo.go Options/DefaultOptions() pattern for
// its tunables struct, and on clash/clash.go's use of gonum/floats for
// gradient-scale arithmetic.
package mc

import "github.com/korralabs/voxdock/vec3"

// Config holds monte_carlo_task's tunables, all from a default
// constants table.
type Config struct {
	// Alphas is the fixed backtracking schedule alpha_k = 0.1^k used by
	// the BFGS line search.
	Alphas []vec3.Fl

	// Temperature is the fixed Metropolis temperature T.
	Temperature vec3.Fl

	// NumMutations bounds the outer mutate/optimize/accept loop: repeat
	// up to a fixed number of proposals.
	NumMutations int

	// NumBFGSIterations bounds the inner BFGS loop per outer step.
	NumBFGSIterations int

	// GradientTolerance stops BFGS early once |grad f| falls below it.
	GradientTolerance vec3.Fl

	// FiniteDifferenceStep is the central-difference step used to
	// approximate the energy gradient (see gradient.go).
	FiniteDifferenceStep vec3.Fl
}

// DefaultConfig returns idock's default tunables (num_alphas=5,
// energy_range=3.0 informs Temperature).
func DefaultConfig() Config {
	alphas := make([]vec3.Fl, 5)
	a := vec3.Fl(1)
	for k := range alphas {
		alphas[k] = a
		a *= 0.1
	}
	return Config{
		Alphas:               alphas,
		Temperature:          3.0, // energy_range
		NumMutations:         64,
		NumBFGSIterations:    16,
		GradientTolerance:    1e-3,
		FiniteDifferenceStep: 1e-4,
	}
}
