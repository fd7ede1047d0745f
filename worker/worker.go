/*
 * worker.go, part of voxdock.
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

// Package worker drives the claim loop: repeatedly claim a slice from the
// job queue, run it through the engine's per-slice pipeline, mark it
// complete, and sleep on an empty queue — grounded on
// original_source/idock/src/main.cpp's own `while (true) { ... if
// (!claimed) boost::this_thread::sleep(hours(1)); }` loop.
package worker

import (
	"context"
	"os"
	"time"

	"github.com/korralabs/voxdock/engine"
	"github.com/korralabs/voxdock/library"
	"github.com/korralabs/voxdock/queue"
)

// EmptyQueueBackoff is how long the worker sleeps after an unsuccessful
// claim, matching the original's hard-coded one-hour backoff.
const EmptyQueueBackoff = time.Hour

// LeaseTTL is how long a claim is held before another worker may treat it
// as abandoned; Heartbeat must be called more often than this while a
// slice is in progress.
const LeaseTTL = 10 * time.Minute

// HeartbeatInterval is how often Run refreshes a claimed job's lease
// while its slice is still running.
const HeartbeatInterval = LeaseTTL / 3

// SliceOpener opens the library and receptor files a claimed job
// references and builds the SliceInput RunSlice needs. Left to the
// caller since it touches the filesystem/object-store layer the docking
// core itself doesn't specify.
type SliceOpener func(job *queue.JobDocument) (engine.SliceInput, func() error, error)

// Worker ties the job queue, the library's slice boundary table, and the
// engine together into the claim loop.
type Worker struct {
	Store      queue.Store
	Engine     *engine.Engine
	Open       SliceOpener
	Boundaries []int
}

// Run loops until ctx is cancelled: claim a job, run its slice, complete
// it; sleep EmptyQueueBackoff when no job is available. Any fatal error
// from RunSlice propagates and ends the loop without completing the job,
// so the queue's claim-timeout expiry releases it back to the pool: a
// job is lost only if the claim timeout at the queue expires.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		job, ok, err := w.Store.Claim(ctx, LeaseTTL)
		if err != nil {
			w.Engine.Logger.Errorw("claim failed", "error", err)
			return err
		}
		if !ok {
			w.Engine.Logger.Debugw("queue empty, backing off", "backoff", EmptyQueueBackoff)
			if !sleepOrDone(ctx, EmptyQueueBackoff) {
				return ctx.Err()
			}
			continue
		}

		if err := w.runJob(ctx, job); err != nil {
			w.Engine.Logger.Errorw("slice failed", "job_id", job.ID, "slice", job.Slice, "error", err)
			return err
		}
	}
}

func (w *Worker) runJob(ctx context.Context, job *queue.JobDocument) error {
	in, closeFn, err := w.Open(job)
	if err != nil {
		return err
	}
	defer closeFn()

	in.Boundaries = w.Boundaries
	if in.Boundaries == nil {
		in.Boundaries = library.DefaultSliceBoundaries
	}

	stopHeartbeat := w.startHeartbeat(ctx, job.ID)
	defer stopHeartbeat()

	if err := w.Engine.RunSlice(in); err != nil {
		return err
	}
	return w.Store.Complete(ctx, job.ID)
}

func (w *Worker) startHeartbeat(ctx context.Context, id string) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(HeartbeatInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := w.Store.Heartbeat(ctx, id, LeaseTTL); err != nil {
					w.Engine.Logger.Warnw("heartbeat failed", "job_id", id, "error", err)
				}
			}
		}
	}()
	return func() { close(done) }
}

func sleepOrDone(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// ExitAfterSignal is a convenience os.Exit wrapper for cmd/voxdock: Run's
// own error return already distinguishes a clean shutdown (ctx.Err()) from
// a fatal pipeline error, so main only needs to map the latter to a
// non-zero exit code.
func ExitAfterSignal(err error) {
	if err != nil && err != context.Canceled {
		os.Exit(1)
	}
}
