/*
 * task.go, part of voxdock.
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

package mc

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/korralabs/voxdock/box"
	"github.com/korralabs/voxdock/gridmap"
	"github.com/korralabs/voxdock/molecule"
	"github.com/korralabs/voxdock/resultset"
	"github.com/korralabs/voxdock/scoring"
	"github.com/korralabs/voxdock/vec3"
	"gonum.org/v1/gonum/stat/distuv"
)

// mutationGroup names which DOF group a proposal perturbs: translation,
// rotation, or one torsion.
type mutationGroup int

const (
	mutateTranslation mutationGroup = iota
	mutateRotation
	mutateTorsion
)

const (
	translationStep = 2.0    // Å, proposal half-width
	rotationStep    = 0.5    // radians, proposal half-width
	torsionStep     = 0.5    // radians, proposal half-width
)

// Task is one monte_carlo_task: an independently seeded search over a
// single ligand's conformation space against a shared scoring function,
// grid maps and box.
type Task struct {
	Ligand   *molecule.Ligand
	Seed     uint64
	Config   Config
	Scoring  *scoring.Function
	Box      *box.Box
	GridMaps *gridmap.Maps
}

// Run executes the task's Monte Carlo search, feeding every locally
// accepted conformation to out's clustered result container. It is
// deterministic given Seed, Ligand, Scoring, GridMaps, Box and Config.
func (t *Task) Run(out *resultset.Set) {
	rng := rand.New(rand.NewSource(t.Seed))
	u := distuv.Uniform{Min: 0, Max: 1, Src: rng}
	model := newEnergyModel(t.Ligand, t.Scoring, t.GridMaps, t.Box)
	nrb := t.Ligand.NumRotatableBonds()
	threshold := resultset.ClusterThreshold(t.Ligand.NumHeavyAtoms)

	cur := randomStartPose(t.Box, nrb, u)
	curF := model.Evaluate(cur)

	for step := 0; step < t.Config.NumMutations; step++ {
		proposal := mutate(cur, nrb, u)

		x0 := newDOF(nrb)
		xOpt, fOpt := bfgsLocalSearch(model, proposal, x0, t.Config)
		candidate := xOpt.pose(proposal)

		if metropolisAccept(curF, fOpt, t.Config.Temperature, u) {
			cur, curF = candidate, fOpt
			out.Add(toResult(t.Ligand, cur, curF), threshold)
		}
	}
}

func randomStartPose(b *box.Box, nrb int, u distuv.Uniform) molecule.Pose {
	pos := b.RandomPoint(u.Rand(), u.Rand(), u.Rand())
	axis := vec3.New(u.Rand()*2-1, u.Rand()*2-1, u.Rand()*2-1)
	angle := u.Rand() * 2 * math.Pi
	orient := vec3.FromAxisAngle(axis, angle)

	torsions := make([]vec3.Fl, nrb)
	us := make([]vec3.Fl, nrb)
	for i := range us {
		us[i] = u.Rand()
	}
	copy(torsions, molecule.RandomTorsions(nrb, us))
	return molecule.Pose{Position: pos, Orientation: orient, Torsions: torsions}
}

// mutate applies a single symmetric proposal to one DOF group of cur,
// centered at the current point.
func mutate(cur molecule.Pose, nrb int, u distuv.Uniform) molecule.Pose {
	groups := []mutationGroup{mutateTranslation, mutateRotation}
	if nrb > 0 {
		groups = append(groups, mutateTorsion)
	}
	group := groups[int(u.Rand()*vec3.Fl(len(groups)))%len(groups)]

	next := molecule.Pose{
		Position:    cur.Position,
		Orientation: cur.Orientation,
		Torsions:    append([]vec3.Fl(nil), cur.Torsions...),
	}

	switch group {
	case mutateTranslation:
		delta := vec3.New(
			(u.Rand()*2-1)*translationStep,
			(u.Rand()*2-1)*translationStep,
			(u.Rand()*2-1)*translationStep,
		)
		next.Position = cur.Position.Add(delta)
	case mutateRotation:
		axis := vec3.New(u.Rand()*2-1, u.Rand()*2-1, u.Rand()*2-1)
		angle := (u.Rand()*2 - 1) * rotationStep
		next.Orientation = cur.Orientation.Perturb(axis, angle)
	case mutateTorsion:
		i := int(u.Rand() * vec3.Fl(nrb))
		if i >= nrb {
			i = nrb - 1
		}
		next.Torsions[i] += (u.Rand()*2 - 1) * torsionStep
	}
	return next
}

// metropolisAccept implements Metropolis step: accept
// unconditionally if fNew < fCur, else accept with probability
// exp(-(fNew-fCur)/T).
func metropolisAccept(fCur, fNew, temperature vec3.Fl, u distuv.Uniform) bool {
	if fNew < fCur {
		return true
	}
	if math.IsInf(float64(fNew), 1) {
		return false
	}
	p := math.Exp(-(fNew - fCur) / temperature)
	return u.Rand() < p
}

func toResult(lig *molecule.Ligand, pose molecule.Pose, f vec3.Fl) *resultset.Result {
	positions := lig.Place(pose)
	return &resultset.Result{
		Conformation:     pose,
		TotalEnergy:      f,
		NormalizedEnergy: f * lig.FlexibilityPenaltyFactor,
		HeavyAtomPos:     positions,
	}
}
