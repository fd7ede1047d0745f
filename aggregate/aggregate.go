/*
 * aggregate.go, part of voxdock.
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

// Package aggregate is the read side of the second, job-wide screening
// phase: once every slice of a job is complete, its per-slice CSVs
// (compound_id,e_nd per line) are combined into one list sorted by
// energy, ascending. Writing a combined output file and sending the
// completion email are an explicit Non-goal; only the combine-and-sort
// step is implemented here.
package aggregate

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Summary is one ligand's best result across the whole job.
type Summary struct {
	CompoundID       string
	NormalizedEnergy float64
}

// ParseSliceCSV reads one slice's compound_id,e_nd lines from r.
// Malformed lines are skipped rather than aborting the whole merge —
// a slice CSV is produced by many independent worker processes and one
// corrupted line shouldn't discard the rest.
func ParseSliceCSV(r io.Reader) ([]Summary, error) {
	scanner := bufio.NewScanner(r)
	var out []Summary
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, eND, ok := splitSummaryLine(line)
		if !ok {
			continue
		}
		out = append(out, Summary{CompoundID: id, NormalizedEnergy: eND})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("voxdock: reading slice csv: %w", err)
	}
	return out, nil
}

func splitSummaryLine(line string) (id string, eND float64, ok bool) {
	idx := strings.LastIndexByte(line, ',')
	if idx < 0 {
		return "", 0, false
	}
	id = line[:idx]
	v, err := strconv.ParseFloat(line[idx+1:], 64)
	if err != nil {
		return "", 0, false
	}
	return id, v, true
}

// Combine merges every slice's summaries and returns them sorted by
// NormalizedEnergy ascending (lowest, best-binding energy first), the
// way the original combines per-slice csv files before "summaries.sort()".
func Combine(slices [][]Summary) []Summary {
	var total int
	for _, s := range slices {
		total += len(s)
	}
	merged := make([]Summary, 0, total)
	for _, s := range slices {
		merged = append(merged, s...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].NormalizedEnergy < merged[j].NormalizedEnergy
	})
	return merged
}

// Top returns the n best summaries (or fewer, if merged has fewer than
// n entries), for capping how many conformations a job reports.
func Top(merged []Summary, n int) []Summary {
	if n >= len(merged) {
		return merged
	}
	return merged[:n]
}
