/*
 * headers.go, part of voxdock.
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

// Package library reads the packed ligand library a slice is drawn from:
// headers.bin's per-ligand byte offsets into ligands.pdbqt, the
// fixed-column descriptor line at the start of each record, and the
// 101-element slice index table (computed by Slices). Grounded on idock's
// main.cpp, the only place these formats are defined: receptor/ligand
// text parsing beyond atom/bond/torsion shape is out of this module's
// scope, but the header/offset/slice machinery around it is in scope.
package library

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/korralabs/voxdock/dockerr"
)

// HeaderOffset returns the byte offset of ligand i's record in
// ligands.pdbqt, read from the 8-byte little-endian entry at position
// i*8 in the open headers.bin file.
func HeaderOffset(headers io.ReaderAt, i int64) (uint64, error) {
	var buf [8]byte
	if _, err := headers.ReadAt(buf[:], i*8); err != nil {
		return 0, dockerr.Classify(dockerr.KindIOFatal, fmt.Errorf("library: reading header offset %d: %w", i, err))
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// ReadRecordLine seeks ligands to offset and reads the first text line of
// the ligand record starting there.
func ReadRecordLine(ligands io.ReaderAt, offset uint64) (string, error) {
	const maxLineLen = 4096
	buf := make([]byte, maxLineLen)
	n, err := ligands.ReadAt(buf, int64(offset))
	if err != nil && err != io.EOF {
		return "", dockerr.Classify(dockerr.KindIOFatal, fmt.Errorf("library: reading ligand record at offset %d: %w", offset, err))
	}
	buf = buf[:n]
	for i, b := range buf {
		if b == '\n' {
			return string(buf[:i]), nil
		}
	}
	return string(buf), nil
}
