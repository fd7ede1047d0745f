/*
 * descriptor.go, part of voxdock.
 *
 * Copyright 2026 The voxdock Authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package library

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/korralabs/voxdock/dockerr"
)

// Descriptor is the fixed-column record header every ligand's first text
// line carries, with byte ranges (1-based, inclusive):
// compound id 11-18, mwt 22-28, logp 31-37, ad 40-46, pd 49-55, hbd 58-59,
// hba 62-63, tpsa 66-67, charge 70-71, nrb 74-75.
type Descriptor struct {
	CompoundID string
	Mwt        float64
	Logp       float64
	Ad         float64
	Pd         float64
	Hbd        int
	Hba        int
	Tpsa       float64
	Charge     float64
	Nrb        int
}

// column is a 1-based inclusive [first, last] byte range, matching the
// convention of original_source/idock/src/main.cpp's right_cast helper.
type column struct{ first, last int }

func (c column) slice(line string) string {
	lo, hi := c.first-1, c.last
	if lo < 0 {
		lo = 0
	}
	if hi > len(line) {
		hi = len(line)
	}
	if lo > hi {
		return ""
	}
	return strings.TrimSpace(line[lo:hi])
}

var (
	colCompoundID = column{11, 18}
	colMwt        = column{22, 28}
	colLogp       = column{31, 37}
	colAd         = column{40, 46}
	colPd         = column{49, 55}
	colHbd        = column{58, 59}
	colHba        = column{62, 63}
	colTpsa       = column{66, 67}
	colCharge     = column{70, 71}
	colNrb        = column{74, 75}
)

// ParseDescriptor extracts the fixed-column fields from a ligand record's
// first text line. Unlike the idock source this is grounded on, Charge is
// parsed from its own dedicated column rather than falling back to the
// nrb bounds, a likely bug in the original that this implementation
// does not reproduce.
func ParseDescriptor(line string) (Descriptor, error) {
	d := Descriptor{CompoundID: colCompoundID.slice(line)}

	var err error
	if d.Mwt, err = parseFloat(colMwt.slice(line)); err != nil {
		return Descriptor{}, err
	}
	if d.Logp, err = parseFloat(colLogp.slice(line)); err != nil {
		return Descriptor{}, err
	}
	if d.Ad, err = parseFloat(colAd.slice(line)); err != nil {
		return Descriptor{}, err
	}
	if d.Pd, err = parseFloat(colPd.slice(line)); err != nil {
		return Descriptor{}, err
	}
	if d.Hbd, err = parseInt(colHbd.slice(line)); err != nil {
		return Descriptor{}, err
	}
	if d.Hba, err = parseInt(colHba.slice(line)); err != nil {
		return Descriptor{}, err
	}
	if d.Tpsa, err = parseFloat(colTpsa.slice(line)); err != nil {
		return Descriptor{}, err
	}
	if d.Charge, err = parseFloat(colCharge.slice(line)); err != nil {
		return Descriptor{}, err
	}
	if d.Nrb, err = parseInt(colNrb.slice(line)); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, dockerr.Classify(dockerr.KindFilterMiss, fmt.Errorf("library: parsing float field %q: %w", s, err))
	}
	return v, nil
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, dockerr.Classify(dockerr.KindFilterMiss, fmt.Errorf("library: parsing int field %q: %w", s, err))
	}
	return v, nil
}
