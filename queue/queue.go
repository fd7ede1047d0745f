/*
 * queue.go, part of voxdock.
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

// Package queue is the job store a worker claims slices from: a document
// per job carrying the slice index, receptor reference, search box and
// optional descriptor filters, claimed atomically and marked complete
// once its CSV has been written. The original idock source talks to MongoDB directly
// ("$inc progress" under a query for progress==0); this module is
// grounded on that protocol's shape but implemented against Redis, the
// way the pack's turtacn-KeyIP-Intelligence service uses Redis for its
// own atomic-claim/lease bookkeeping.
package queue

import (
	"context"
	"time"

	"github.com/korralabs/voxdock/library"
	"github.com/korralabs/voxdock/vec3"
)

// JobDocument is the conceptual job record a worker claims and advances.
type JobDocument struct {
	ID       string
	Slice    int
	Progress int
	Receptor string
	Center   vec3.Vec3
	Size     vec3.Vec3

	// GridGranularity and PartitionGranularity override box.New's
	// defaults for this job; zero means "use the worker's configured
	// default" (see config.Config).
	GridGranularity      vec3.Fl
	PartitionGranularity vec3.Fl

	Filter library.Filter
	Email  string
}

// Store is the job store API a worker needs: claim a job, keep its claim
// alive, advance its progress counter, and mark it complete.
type Store interface {
	// Claim atomically selects a job with Progress==0 (or an expired
	// claim lease) and increments Progress to mark it taken. ok is false
	// if no job was available (KindQueueEmpty: sleep and retry, never
	// fatal).
	Claim(ctx context.Context, leaseTTL time.Duration) (job *JobDocument, ok bool, err error)

	// Heartbeat extends a claimed job's lease so another worker's Claim
	// does not treat it as stale.
	Heartbeat(ctx context.Context, id string, leaseTTL time.Duration) error

	// AdvanceProgress increments the job's progress counter by delta.
	AdvanceProgress(ctx context.Context, id string, delta int) error

	// Complete marks the job finished and releases its lease.
	Complete(ctx context.Context, id string) error
}
