/*
 * engine.go, part of voxdock.
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

// Package engine owns the pieces a worker process shares across every
// slice it claims — the scoring function and the thread pool — and
// drives the per-slice, per-ligand docking pipeline. The original's
// global mutable statics (the scoring function singleton, the
// process-seeded Mersenne Twister) are a redesign target here; Engine
// is the explicit owned value that replaces them.
package engine

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/korralabs/voxdock/scoring"
	"github.com/korralabs/voxdock/threadpool"
)

// Engine is built once per worker process and shared read-only (its
// Scoring table) or via its own synchronization (its Pool) across every
// slice the process claims.
type Engine struct {
	Pool    *threadpool.Pool
	Scoring *scoring.Function
	Logger  *zap.SugaredLogger

	// rootRand is the process-seeded generator each Monte Carlo task
	// draws its own independent 64-bit seed from. The original draws
	// per-task seeds from a Mersenne Twister seeded once per process;
	// math/rand's default source isn't a Mersenne Twister, but it is
	// seeded exactly once per process and offers the same "one shared
	// stream of independent task seeds" contract the original relies on.
	rootRand *rand.Rand
}

// Config bundles the construction-time parameters for New.
type Config struct {
	NumWorkers int
	Cutoff     float64
	NumSamples int
	Seed       int64
	Logger     *zap.SugaredLogger
}

// New builds an Engine: allocates its thread pool, precalculates the
// scoring function across it, and seeds its per-task seed generator.
func New(cfg Config) (*Engine, error) {
	pool := threadpool.New(cfg.NumWorkers)
	sf := scoring.New(cfg.Cutoff, cfg.NumSamples)
	if err := sf.PrecalculateAll(pool); err != nil {
		pool.Close()
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Engine{
		Pool:     pool,
		Scoring:  sf,
		Logger:   logger,
		rootRand: rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// NextSeed draws the next independent 64-bit task seed from the engine's
// shared generator.
func (e *Engine) NextSeed() uint64 {
	return e.rootRand.Uint64()
}

// Close releases the engine's thread pool.
func (e *Engine) Close() {
	e.Pool.Close()
}
