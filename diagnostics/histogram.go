/*
 * histogram.go, part of voxdock.
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

// Package diagnostics renders operator-facing plots of a finished
// slice's result distribution: a histogram of normalized binding
// energies across every docked ligand, for spotting a slice where the
// scoring function or grid maps misbehaved before it reaches review.
package diagnostics

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// EnergyHistogram renders energies (one best normalized energy per
// docked ligand in a slice) as a PNG histogram written to w.
func EnergyHistogram(w io.Writer, sliceID string, energies []float64) error {
	if len(energies) == 0 {
		return fmt.Errorf("voxdock: cannot plot an empty energy distribution")
	}

	values := make(plotter.Values, len(energies))
	copy(values, energies)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("slice %s: best normalized energy distribution", sliceID)
	p.X.Label.Text = "normalized binding energy (kcal/mol)"
	p.Y.Label.Text = "ligand count"

	hist, err := plotter.NewHist(values, histogramBins(len(values)))
	if err != nil {
		return fmt.Errorf("voxdock: building energy histogram: %w", err)
	}
	p.Add(hist)

	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("voxdock: rendering energy histogram: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// histogramBins picks a bin count that scales with the sample size
// without letting a huge slice produce an unreadably fine histogram.
func histogramBins(n int) int {
	bins := n / 10
	if bins < 8 {
		bins = 8
	}
	if bins > 64 {
		bins = 64
	}
	return bins
}
