/*
 * metrics.go, part of voxdock.
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

// Package metrics exposes worker progress over Prometheus: ligands
// processed, slices claimed, and per-ligand docking latency, served on
// the metrics HTTP listener.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds every counter/histogram a worker reports on.
type Collector struct {
	LigandsProcessed prometheus.Counter
	LigandsFiltered  prometheus.Counter
	LigandsFailed    *prometheus.CounterVec
	SlicesClaimed    prometheus.Counter
	SlicesCompleted  prometheus.Counter
	DockingSeconds   prometheus.Histogram
	BestEnergy       prometheus.Histogram
}

// New registers every metric against its own registry, so a test can
// build a Collector without colliding with prometheus's global default
// registry.
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		LigandsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "voxdock_ligands_processed_total",
			Help: "Ligands that completed Monte Carlo docking and produced a result.",
		}),
		LigandsFiltered: factory.NewCounter(prometheus.CounterOpts{
			Name: "voxdock_ligands_filtered_total",
			Help: "Ligands skipped because they failed a job's descriptor filter.",
		}),
		LigandsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voxdock_ligands_failed_total",
			Help: "Ligands skipped or aborted, labeled by error kind.",
		}, []string{"kind"}),
		SlicesClaimed: factory.NewCounter(prometheus.CounterOpts{
			Name: "voxdock_slices_claimed_total",
			Help: "Slices claimed from the job queue.",
		}),
		SlicesCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "voxdock_slices_completed_total",
			Help: "Slices run to completion and marked done.",
		}),
		DockingSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "voxdock_docking_seconds",
			Help:    "Wall-clock time spent docking a single ligand.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		BestEnergy: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "voxdock_best_normalized_energy",
			Help:    "Distribution of the best normalized binding energy per ligand.",
			Buckets: prometheus.LinearBuckets(-15, 1, 20),
		}),
	}
}

// ObserveDocking records one ligand's docking latency and best energy.
func (c *Collector) ObserveDocking(elapsed time.Duration, bestEnergy float64) {
	c.DockingSeconds.Observe(elapsed.Seconds())
	c.BestEnergy.Observe(bestEnergy)
	c.LigandsProcessed.Inc()
}

// Serve starts a metrics HTTP server on addr and blocks until ctx is
// cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
