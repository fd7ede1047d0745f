/*
 * pdbqt.go, part of voxdock.
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

// Package pdbqt is a minimal reader that yields only the
// atom/bond/torsion-tree shape voxdock/molecule needs — ATOM/HETATM
// coordinates and xs_type, and the ROOT/BRANCH/ENDBRANCH torsion-tree
// frames a ligand body carries. It deliberately does not implement the
// full AutoDock PDBQT grammar (partial charges, remarks, alternate
// conformers); that level of fidelity is outside what the docking core
// needs from a parsed structure.
package pdbqt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/korralabs/voxdock/dockerr"
	"github.com/korralabs/voxdock/molecule"
	"github.com/korralabs/voxdock/vec3"
	"github.com/korralabs/voxdock/xstype"
)

// typeByColumn maps a PDBQT AutoDock4 atom-type column (the last
// whitespace-separated field of an ATOM/HETATM line) to an xs_type.
var typeByColumn = map[string]xstype.Type{
	"C":  xstype.Hydrophobic,
	"A":  xstype.Aromatic,
	"N":  xstype.Nitrogen,
	"NA": xstype.NitrogenA,
	"ND": xstype.NitrogenD,
	"OA": xstype.OxygenA,
	"OD": xstype.OxygenD,
	"O":  xstype.Oxygen,
	"S":  xstype.Sulfur,
	"SA": xstype.Sulfur,
	"P":  xstype.Phosphorus,
	"F":  xstype.Fluorine,
	"Cl": xstype.Chlorine,
	"Br": xstype.Bromine,
	"I":  xstype.Iodine,
}

func parseAtomLine(line string) (molecule.Atom, error) {
	fields := strings.Fields(line)
	if len(fields) < 9 {
		return molecule.Atom{}, fmt.Errorf("voxdock: malformed ATOM/HETATM line: %q", line)
	}
	// x, y, z precede occupancy, B-factor, charge and type, counted from
	// the end so lines with and without a chain identifier both parse.
	n := len(fields)
	x, errX := strconv.ParseFloat(fields[n-7], 64)
	y, errY := strconv.ParseFloat(fields[n-6], 64)
	z, errZ := strconv.ParseFloat(fields[n-5], 64)
	if errX != nil || errY != nil || errZ != nil {
		return molecule.Atom{}, fmt.Errorf("voxdock: malformed coordinate in line: %q", line)
	}
	col := fields[len(fields)-1]
	t, ok := typeByColumn[col]
	if !ok {
		return molecule.Atom{}, fmt.Errorf("voxdock: unrecognized atom type column %q", col)
	}
	return molecule.Atom{
		Type:       t,
		Coordinate: vec3.New(vec3.Fl(x), vec3.Fl(y), vec3.Fl(z)),
	}, nil
}

// ParseReceptor reads every ATOM/HETATM line in r into a molecule.Receptor.
// Receptor bonds play no role in the docking core so none
// are built.
func ParseReceptor(r io.Reader) (*molecule.Receptor, error) {
	scanner := bufio.NewScanner(r)
	var atoms []molecule.Atom
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "ATOM") && !strings.HasPrefix(line, "HETATM") {
			continue
		}
		a, err := parseAtomLine(line)
		if err != nil {
			return nil, dockerr.Classify(dockerr.KindIOFatal, err)
		}
		atoms = append(atoms, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, dockerr.Classify(dockerr.KindIOFatal, err)
	}
	return molecule.New(atoms, nil), nil
}

// ParseLigand reads one ligand body (ROOT ... ENDROOT, BRANCH i j ...
// ENDBRANCH i j, TORSDOF n) into a molecule.Ligand. It is the pluggable
// engine.LigandParser a worker wires into engine.SliceInput.
func ParseLigand(record string) (*molecule.Ligand, error) {
	scanner := bufio.NewScanner(strings.NewReader(record))

	var atoms []molecule.Atom
	var bonds []molecule.Bond
	var frames []molecule.Frame
	var stack []int // indices into frames, innermost last

	frames = append(frames, molecule.Frame{Parent: -1})
	stack = append(stack, 0)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "ATOM"), strings.HasPrefix(line, "HETATM"):
			a, err := parseAtomLine(line)
			if err != nil {
				return nil, dockerr.Classify(dockerr.KindMalformedLigand, err)
			}
			cur := stack[len(stack)-1]
			frames[cur].AtomIndices = append(frames[cur].AtomIndices, len(atoms))
			atoms = append(atoms, a)

		case strings.HasPrefix(line, "BRANCH"):
			fields := strings.Fields(line)
			if len(fields) != 3 {
				return nil, dockerr.Classify(dockerr.KindMalformedLigand,
					fmt.Errorf("voxdock: malformed BRANCH line: %q", line))
			}
			pivotParent, err1 := strconv.Atoi(fields[1])
			pivot, err2 := strconv.Atoi(fields[2])
			if err1 != nil || err2 != nil {
				return nil, dockerr.Classify(dockerr.KindMalformedLigand,
					fmt.Errorf("voxdock: malformed BRANCH atom indices: %q", line))
			}
			parent := stack[len(stack)-1]
			frames = append(frames, molecule.Frame{
				Parent:          parent,
				PivotParentAtom: pivotParent - 1,
				PivotAtom:       pivot - 1,
			})
			child := len(frames) - 1
			stack = append(stack, child)
			bonds = append(bonds, molecule.Bond{Atom1: pivotParent - 1, Atom2: pivot - 1})

		case strings.HasPrefix(line, "ENDBRANCH"):
			if len(stack) <= 1 {
				return nil, dockerr.Classify(dockerr.KindMalformedLigand,
					fmt.Errorf("voxdock: unmatched ENDBRANCH"))
			}
			stack = stack[:len(stack)-1]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, dockerr.Classify(dockerr.KindMalformedLigand, err)
	}
	if len(stack) != 1 {
		return nil, dockerr.Classify(dockerr.KindMalformedLigand,
			fmt.Errorf("voxdock: ligand body has unclosed BRANCH"))
	}
	if len(atoms) == 0 {
		return nil, dockerr.Classify(dockerr.KindMalformedLigand,
			fmt.Errorf("voxdock: ligand body has no atoms"))
	}

	lig := molecule.NewLigand(atoms, bonds, frames)
	return lig, nil
}
