/*
 * config.go, part of voxdock.
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

// Package config loads worker configuration from flags, environment
// variables and an optional config file via viper, and reloads it on
// file change via fsnotify — the same layered setup the pack's
// turtacn-KeyIP-Intelligence service uses for its own worker config.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is everything a worker process needs to start: where the job
// queue and ligand library live, how many Monte Carlo tasks and results
// per ligand to run, grid/partition granularity defaults, and default
// descriptor filter bounds. DefaultFilter is decoded from configuration
// only; no part of the worker applies it to a job's filter.
type Config struct {
	QueueAddr string `mapstructure:"queue_addr"`
	QueueDB   int    `mapstructure:"queue_db"`

	LibraryHeaders string `mapstructure:"library_headers"`
	LibraryBody    string `mapstructure:"library_body"`
	ReceptorPath   string `mapstructure:"receptor_path"`

	NumWorkers int     `mapstructure:"num_workers"`
	NumMCTasks int     `mapstructure:"num_mc_tasks"`
	MaxResults int     `mapstructure:"max_results"`
	Cutoff     float64 `mapstructure:"cutoff"`
	NumSamples int     `mapstructure:"num_samples"`

	GridGranularity      float64 `mapstructure:"grid_granularity"`
	PartitionGranularity float64 `mapstructure:"partition_granularity"`

	DefaultFilter FilterBounds `mapstructure:"default_filter"`

	MetricsAddr    string `mapstructure:"metrics_addr"`
	CompressCSV    bool   `mapstructure:"compress_csv"`
	DiagnosticsDir string `mapstructure:"diagnostics_dir"`
}

// FilterBounds mirrors library.Filter's bounds in a form viper can bind
// from flat keys (default_filter.mwt_min, etc).
type FilterBounds struct {
	MwtMin  float64 `mapstructure:"mwt_min"`
	MwtMax  float64 `mapstructure:"mwt_max"`
	LogpMin float64 `mapstructure:"logp_min"`
	LogpMax float64 `mapstructure:"logp_max"`
	NrbMin  int     `mapstructure:"nrb_min"`
	NrbMax  int     `mapstructure:"nrb_max"`
}

// Defaults returns the worker's built-in settings, used where no flag,
// environment variable or config file sets a value. They are not idock's
// compiled-in constants: Cutoff and NumSamples here differ from
// scoring.DefaultCutoff and scoring.DefaultNumSamples.
func Defaults() Config {
	return Config{
		QueueAddr:            "localhost:6379",
		NumWorkers:           8,
		NumMCTasks:           8,
		MaxResults:           20,
		Cutoff:               12.0,
		NumSamples:           1000,
		GridGranularity:      0.125,
		PartitionGranularity: 3.0,
		MetricsAddr:          ":9090",
	}
}

// Bind registers the worker's command-line flags on fs and binds them
// into v, so flags, environment variables (VOXDOCK_ prefixed) and an
// optional config file all resolve through the same viper instance.
func Bind(v *viper.Viper, fs *pflag.FlagSet) {
	d := Defaults()

	fs.String("queue-addr", d.QueueAddr, "job queue address")
	fs.Int("queue-db", d.QueueDB, "job queue database index")
	fs.String("library-headers", "", "path to the ligand library header index")
	fs.String("library-body", "", "path to the ligand library body file")
	fs.String("receptor", "", "path to the receptor structure file")
	fs.Int("num-workers", d.NumWorkers, "thread pool size")
	fs.Int("num-mc-tasks", d.NumMCTasks, "Monte Carlo tasks per ligand")
	fs.Int("max-results", d.MaxResults, "results retained per ligand")
	fs.Float64("cutoff", d.Cutoff, "scoring function distance cutoff")
	fs.Int("num-samples", d.NumSamples, "scoring function precalculation samples")
	fs.Float64("grid-granularity", d.GridGranularity, "grid map spacing")
	fs.Float64("partition-granularity", d.PartitionGranularity, "receptor partition cell size")
	fs.String("metrics-addr", d.MetricsAddr, "metrics HTTP listen address")
	fs.Bool("compress-csv", false, "zstd-compress per-slice CSV output")
	fs.String("diagnostics-dir", "", "directory to write per-slice energy-distribution histograms, empty to disable")

	v.SetEnvPrefix("VOXDOCK")
	v.AutomaticEnv()
	// Flags are bound under the underscore keys of Config's mapstructure
	// tags (num-mc-tasks -> num_mc_tasks, receptor -> receptor_path).
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if key == "receptor" {
			key = "receptor_path"
		}
		_ = v.BindPFlag(key, f)
	})

	v.SetDefault("queue_addr", d.QueueAddr)
	v.SetDefault("num_workers", d.NumWorkers)
	v.SetDefault("num_mc_tasks", d.NumMCTasks)
	v.SetDefault("max_results", d.MaxResults)
	v.SetDefault("cutoff", d.Cutoff)
	v.SetDefault("num_samples", d.NumSamples)
	v.SetDefault("grid_granularity", d.GridGranularity)
	v.SetDefault("partition_granularity", d.PartitionGranularity)
	v.SetDefault("metrics_addr", d.MetricsAddr)
}

// Load reads the bound viper instance into a Config. configFile may be
// empty, in which case only flags/env/defaults apply.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("voxdock: reading config file: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("voxdock: decoding config: %w", err)
	}
	return cfg, nil
}

// WatchReload installs an fsnotify watch on configFile, calling onChange
// with the freshly-reloaded Config every time the file is rewritten.
// onChange errors are swallowed into a log line by the caller; a bad
// edit to a live config shouldn't crash a worker mid-slice.
func WatchReload(v *viper.Viper, configFile string, onChange func(Config, error)) error {
	if configFile == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("voxdock: starting config watcher: %w", err)
	}
	if err := watcher.Add(configFile); err != nil {
		watcher.Close()
		return fmt.Errorf("voxdock: watching config file: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(v, configFile)
				onChange(cfg, err)
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}
