/*
 * filter.go, part of voxdock.
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
	"encoding/json"
	"math"
	"strconv"
)

// bound is an inclusive [lower, upper] range. unsetBound represents an
// unused filter bound that always passes.
type bound struct{ lb, ub float64 }

func unsetBound() bound { return bound{lb: math.Inf(-1), ub: math.Inf(1)} }

func (b bound) passes(v float64) bool { return v >= b.lb && v <= b.ub }

// jsonBound mirrors bound with exported, string-encoded fields: an unset
// bound's lb/ub are +/-Inf, which encoding/json's float64 handling
// rejects outright (it has no JSON representation for Inf/NaN), so a job
// document's Filter travels through queue.Store as strconv-formatted
// strings instead of bare JSON numbers.
type jsonBound struct {
	Lb, Ub string
}

func (b bound) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonBound{
		Lb: strconv.FormatFloat(b.lb, 'g', -1, 64),
		Ub: strconv.FormatFloat(b.ub, 'g', -1, 64),
	})
}

func (b *bound) UnmarshalJSON(data []byte) error {
	var j jsonBound
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	lb, err := strconv.ParseFloat(j.Lb, 64)
	if err != nil {
		return err
	}
	ub, err := strconv.ParseFloat(j.Ub, 64)
	if err != nil {
		return err
	}
	b.lb, b.ub = lb, ub
	return nil
}

// Filter holds the job document's optional inclusive range filters over a
// ligand's descriptor fields (job document keys
// `{mwt,logp,ad,pd,hbd,hba,tpsa,charge,nrb}_{lb,ub}`).
type Filter struct {
	Mwt, Logp, Ad, Pd, Hbd, Hba, Tpsa, Charge, Nrb bound
}

// NewFilter returns a Filter with every bound unset (always passes). Bounds
// are narrowed by decoding a job document's filter from JSON; this package
// has no setter for them.
func NewFilter() Filter {
	unset := unsetBound()
	return Filter{unset, unset, unset, unset, unset, unset, unset, unset, unset}
}

// Passes reports whether d satisfies every bound in f: the inclusive
// range filters from the job document are applied, skipping the ligand
// if any fails.
func (f Filter) Passes(d Descriptor) bool {
	return f.Mwt.passes(d.Mwt) &&
		f.Logp.passes(d.Logp) &&
		f.Ad.passes(d.Ad) &&
		f.Pd.passes(d.Pd) &&
		f.Hbd.passes(float64(d.Hbd)) &&
		f.Hba.passes(float64(d.Hba)) &&
		f.Tpsa.passes(d.Tpsa) &&
		f.Charge.passes(d.Charge) &&
		f.Nrb.passes(float64(d.Nrb))
}
