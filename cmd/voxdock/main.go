/*
 * main.go, part of voxdock.
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

// Command voxdock is the worker process: `voxdock run` drives the claim
// loop, `voxdock precalc` reports scoring-function precalculation timing,
// `voxdock version` prints the build version. Flag/env/file configuration
// follows gochem's Options/DefaultOptions constructor pattern,
// widened to go through viper.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/korralabs/voxdock/aggregate"
	"github.com/korralabs/voxdock/config"
	"github.com/korralabs/voxdock/diagnostics"
	"github.com/korralabs/voxdock/engine"
	"github.com/korralabs/voxdock/library"
	"github.com/korralabs/voxdock/logging"
	"github.com/korralabs/voxdock/molecule"
	"github.com/korralabs/voxdock/pdbqt"
	"github.com/korralabs/voxdock/queue"
	"github.com/korralabs/voxdock/scoring"
	"github.com/korralabs/voxdock/threadpool"
	"github.com/korralabs/voxdock/worker"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string
	var debugLog bool

	root := &cobra.Command{
		Use:   "voxdock",
		Short: "Distributed virtual-screening docking worker",
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML/TOML config file")
	root.PersistentFlags().BoolVar(&debugLog, "debug", false, "enable development-mode logging")
	config.Bind(v, root.PersistentFlags())

	root.AddCommand(newRunCmd(v, &configFile, &debugLog))
	root.AddCommand(newPrecalcCmd(v, &configFile))
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the voxdock version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}

func newPrecalcCmd(v *viper.Viper, configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "precalc",
		Short: "Precalculate the scoring function and report timing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, *configFile)
			if err != nil {
				return err
			}
			pool := threadpool.New(cfg.NumWorkers)
			defer pool.Close()

			sf := scoring.New(cfg.Cutoff, cfg.NumSamples)
			start := time.Now()
			if err := sf.PrecalculateAll(pool); err != nil {
				return fmt.Errorf("voxdock: precalculating scoring function: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "precalculated %d samples x %d cutoff in %s\n",
				cfg.NumSamples, int(cfg.Cutoff), time.Since(start))
			return nil
		},
	}
}

func newRunCmd(v *viper.Viper, configFile *string, debugLog *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the worker claim loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, *configFile)
			if err != nil {
				return err
			}
			logger, err := logging.New(*debugLog)
			if err != nil {
				return fmt.Errorf("voxdock: building logger: %w", err)
			}
			defer logger.Sync()

			if err := config.WatchReload(v, *configFile, func(reloaded config.Config, err error) {
				if err != nil {
					logger.Errorw("config reload failed", "error", err)
					return
				}
				cfg = reloaded
				logger.Infow("config reloaded", "num_mc_tasks", cfg.NumMCTasks)
			}); err != nil {
				return err
			}

			e, err := engine.New(engine.Config{
				NumWorkers: cfg.NumWorkers,
				Cutoff:     cfg.Cutoff,
				NumSamples: cfg.NumSamples,
				Seed:       time.Now().UnixNano(),
				Logger:     logger,
			})
			if err != nil {
				return fmt.Errorf("voxdock: starting engine: %w", err)
			}
			defer e.Close()

			store, err := openStore(cfg)
			if err != nil {
				return err
			}

			w := &worker.Worker{
				Store:  store,
				Engine: e,
				Open:   makeSliceOpener(cfg),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = w.Run(ctx)
			if err == context.Canceled || err == ctx.Err() {
				logger.Infow("shutting down")
				return nil
			}
			return err
		},
	}
}

func openStore(cfg config.Config) (queue.Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.QueueAddr,
		DB:   cfg.QueueDB,
	})
	return queue.NewRedisStore(client, "voxdock"), nil
}

// makeSliceOpener wires a claimed job's receptor/library paths into an
// engine.SliceInput using the worker's configured defaults and the
// bundled PDBQT-shape parsers.
func makeSliceOpener(cfg config.Config) worker.SliceOpener {
	return func(job *queue.JobDocument) (engine.SliceInput, func() error, error) {
		receptorFile, err := os.Open(cfg.ReceptorPath)
		if err != nil {
			return engine.SliceInput{}, nil, err
		}
		receptor, err := pdbqt.ParseReceptor(receptorFile)
		receptorFile.Close()
		if err != nil {
			return engine.SliceInput{}, nil, err
		}

		headers, err := os.Open(cfg.LibraryHeaders)
		if err != nil {
			return engine.SliceInput{}, nil, err
		}
		body, err := os.Open(cfg.LibraryBody)
		if err != nil {
			headers.Close()
			return engine.SliceInput{}, nil, err
		}

		csvPath := fmt.Sprintf("%s.slice%d.csv", job.ID, job.Slice)
		if cfg.CompressCSV {
			csvPath += ".zst"
		}
		csvFile, err := os.Create(csvPath)
		if err != nil {
			headers.Close()
			body.Close()
			return engine.SliceInput{}, nil, err
		}

		var csvWriter *library.CSVWriter
		var zstdCloser func() error
		if cfg.CompressCSV {
			w, enc, err := library.NewCompressedCSVWriter(csvFile)
			if err != nil {
				headers.Close()
				body.Close()
				csvFile.Close()
				return engine.SliceInput{}, nil, err
			}
			csvWriter = w
			zstdCloser = enc.Close
		} else {
			csvWriter = library.NewCSVWriter(csvFile)
		}

		closeAll := func() error {
			headers.Close()
			body.Close()
			if zstdCloser != nil {
				zstdCloser()
			}
			err := csvFile.Close()
			renderDiagnostics(cfg, job, csvPath)
			return err
		}

		in := engine.SliceInput{
			Job:                         job,
			Headers:                     headers,
			Ligands:                     body,
			Receptor:                    receptor,
			CSV:                         csvWriter,
			Boundaries:                  library.DefaultSliceBoundaries,
			ParseLigand:                 pdbqtParseLigand,
			NumMCTasks:                  cfg.NumMCTasks,
			MaxResults:                  cfg.MaxResults,
			DefaultGridGranularity:      cfg.GridGranularity,
			DefaultPartitionGranularity: cfg.PartitionGranularity,
		}
		return in, closeAll, nil
	}
}

// renderDiagnostics writes a best-effort energy-distribution histogram
// for a finished slice when cfg.DiagnosticsDir is set; the CSV it reads
// is uncompressed plaintext only (a compressed slice CSV skips this),
// and any failure here never fails the slice.
func renderDiagnostics(cfg config.Config, job *queue.JobDocument, csvPath string) {
	if cfg.DiagnosticsDir == "" || cfg.CompressCSV {
		return
	}
	f, err := os.Open(csvPath)
	if err != nil {
		return
	}
	defer f.Close()

	summaries, err := aggregate.ParseSliceCSV(f)
	if err != nil || len(summaries) == 0 {
		return
	}
	energies := make([]float64, len(summaries))
	for i, s := range summaries {
		energies[i] = s.NormalizedEnergy
	}

	out, err := os.Create(filepath.Join(cfg.DiagnosticsDir, fmt.Sprintf("%s.slice%d.png", job.ID, job.Slice)))
	if err != nil {
		return
	}
	defer out.Close()
	_ = diagnostics.EnergyHistogram(out, fmt.Sprintf("%s/%d", job.ID, job.Slice), energies)
}

func pdbqtParseLigand(record string) (*molecule.Ligand, error) {
	return pdbqt.ParseLigand(record)
}
