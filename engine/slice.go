/*
 * slice.go, part of voxdock.
 *
 * Copyright 2026 The voxdock Authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package engine

import (
	"fmt"
	"io"
	"math"

	"github.com/korralabs/voxdock/box"
	"github.com/korralabs/voxdock/dockerr"
	"github.com/korralabs/voxdock/gridmap"
	"github.com/korralabs/voxdock/library"
	"github.com/korralabs/voxdock/mc"
	"github.com/korralabs/voxdock/molecule"
	"github.com/korralabs/voxdock/queue"
	"github.com/korralabs/voxdock/resultset"
	"github.com/korralabs/voxdock/threadpool"
)

// LigandParser turns a ligand record's raw text into a molecule.Ligand.
// Full PDBQT-style ligand body parsing is outside the docking core's
// scope ("we specify only the atom/bond structures they must
// yield"); callers supply their own.
type LigandParser func(record string) (*molecule.Ligand, error)

// SliceInput bundles everything RunSlice needs for one claimed slice.
type SliceInput struct {
	Job         *queue.JobDocument
	Headers     io.ReaderAt
	Ligands     io.ReaderAt
	Receptor    *molecule.Receptor
	CSV         *library.CSVWriter
	Boundaries  []int
	ParseLigand LigandParser
	NumMCTasks  int
	MaxResults  int
	MCConfig    mc.Config

	DefaultGridGranularity      float64
	DefaultPartitionGranularity float64
}

// RunSlice executes the per-slice pipeline: build the search
// box, iterate every ligand in the claimed slice, filter by descriptor,
// fill any missing grid maps, fan out Monte Carlo tasks, merge their
// results, and emit the best one to the slice CSV.
func (e *Engine) RunSlice(in SliceInput) error {
	job := in.Job
	gridGran := job.GridGranularity
	if gridGran == 0 {
		gridGran = in.DefaultGridGranularity
	}
	partGran := job.PartitionGranularity
	if partGran == 0 {
		partGran = in.DefaultPartitionGranularity
	}

	b := box.NewWithPartitionGranularity(job.Center, job.Size, gridGran, partGran, e.Scoring.Cutoff)
	maps := gridmap.New(b)

	start, end := library.SliceBounds(in.Boundaries, job.Slice)
	for i := start; i < end; i++ {
		if err := e.runOneLigand(in, b, maps, i); err != nil {
			if k, ok := err.(*dockerr.Classified); ok && !k.Kind.Fatal() {
				e.Logger.Debugw("skipping ligand", "index", i, "reason", err)
				continue
			}
			return err
		}
	}
	return nil
}

func (e *Engine) runOneLigand(in SliceInput, b *box.Box, maps *gridmap.Maps, i int) error {
	offset, err := library.HeaderOffset(in.Headers, int64(i))
	if err != nil {
		return err
	}
	line, err := library.ReadRecordLine(in.Ligands, offset)
	if err != nil {
		return err
	}

	desc, err := library.ParseDescriptor(line)
	if err != nil {
		return dockerr.Classify(dockerr.KindFilterMiss, err)
	}
	if !in.Job.Filter.Passes(desc) {
		return dockerr.Classify(dockerr.KindFilterMiss, fmt.Errorf("ligand %s failed job filters", desc.CompoundID))
	}

	// The record runs from its offset to the next ligand's offset, or to
	// the end of the library for its last ligand.
	size := int64(math.MaxInt64) - int64(offset)
	if next, err := library.HeaderOffset(in.Headers, int64(i)+1); err == nil && next > offset {
		size = int64(next - offset)
	}
	record, err := io.ReadAll(io.NewSectionReader(in.Ligands, int64(offset), size))
	if err != nil {
		return dockerr.Classify(dockerr.KindIOFatal, fmt.Errorf("engine: reading ligand record %d: %w", i, err))
	}
	lig, err := in.ParseLigand(string(record))
	if err != nil {
		return dockerr.Classify(dockerr.KindMalformedLigand, err)
	}

	needed := lig.AtomTypes()
	if missing := maps.Missing(needed); !missing.Empty() {
		if err := gridmap.PopulateTask(maps, in.Receptor, e.Scoring, missing, e.Pool); err != nil {
			return dockerr.Classify(dockerr.KindGridTaskFatal, err)
		}
	}

	merged := e.dispatchMonteCarlo(in, b, maps, lig)
	if merged.Len() == 0 {
		return nil
	}

	best := merged.Best()
	return in.CSV.WriteLine(desc.CompoundID, best.NormalizedEnergy)
}

// dispatchMonteCarlo runs in.NumMCTasks independently seeded Monte Carlo
// tasks in parallel, each filling its own result set so no task races
// another, then merges them back in task-index order: the final list
// depends only on (lig, seeds, sf, grid_maps, box), never on goroutine
// scheduling order.
func (e *Engine) dispatchMonteCarlo(in SliceInput, b *box.Box, maps *gridmap.Maps, lig *molecule.Ligand) *resultset.Set {
	local := make([]*resultset.Set, in.NumMCTasks)
	var tasks []threadpool.Task
	for k := 0; k < in.NumMCTasks; k++ {
		k := k
		local[k] = resultset.New(in.MaxResults)
		seed := e.NextSeed()
		task := &mc.Task{
			Ligand:   lig,
			Seed:     seed,
			Config:   in.MCConfig,
			Scoring:  e.Scoring,
			Box:      b,
			GridMaps: maps,
		}
		tasks = append(tasks, func() error {
			task.Run(local[k])
			return nil
		})
	}
	// Every mc.Task.Run wrapper above always returns nil; Sync only
	// blocks until all of them finish.
	threadpool.Sync(e.Pool.Run(tasks))

	merged := resultset.New(in.MaxResults)
	threshold := resultset.ClusterThreshold(lig.NumHeavyAtoms)
	for _, s := range local {
		merged.Merge(s, threshold)
	}
	return merged
}
