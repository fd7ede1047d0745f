/*
 * csv.go, part of voxdock.
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
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/korralabs/voxdock/dockerr"
)

// CSVWriter appends "<compound_id>,<e_nd>\n" lines to a slice's output
// CSV (3 fractional digits, fixed-point). It wraps an io.Writer and opens
// no file itself; cmd/voxdock creates each slice CSV with os.Create, which
// truncates it (the original's apparent resume-from-existing-CSV branch is
// dead code; this implementation does not reproduce it).
type CSVWriter struct {
	w io.Writer
}

// NewCSVWriter wraps w for line appends.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

// WriteLine appends one result line.
func (c *CSVWriter) WriteLine(compoundID string, eND float64) error {
	_, err := fmt.Fprintf(c.w, "%s,%.3f\n", compoundID, eND)
	if err != nil {
		return dockerr.Classify(dockerr.KindIOFatal, fmt.Errorf("library: writing csv line: %w", err))
	}
	return nil
}

// NewCompressedCSVWriter wraps w with a zstd encoder before handing it to
// NewCSVWriter, for operators who archive per-slice CSVs at rest (this is
// additive: the wire format consumed by phase 2 is still plain CSV once
// decompressed). Grounded on traj/stf/stf.go's use of
// github.com/klauspost/compress/zstd for binary frame compression.
func NewCompressedCSVWriter(w io.Writer) (*CSVWriter, *zstd.Encoder, error) {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return nil, nil, dockerr.Classify(dockerr.KindIOFatal, fmt.Errorf("library: opening zstd encoder: %w", err))
	}
	return NewCSVWriter(enc), enc, nil
}
