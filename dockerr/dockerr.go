/*
 * dockerr.go, part of voxdock.
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

// Package dockerr carries the error kinds distinguished in the worker's
// error handling design: queue-empty, malformed ligand, filter miss, fatal
// grid/IO failures. It follows goChem's v3.Error shape (message, decoration
// stack, critical flag) generalized for use across the whole module.
package dockerr

import "fmt"

// Error is a decoratable error with a critical flag, mirroring v3.Error.
type Error struct {
	Message  string
	deco     []string
	critical bool
}

func (e *Error) Error() string {
	return e.Message
}

// Critical reports whether the error should abort the enclosing slice.
func (e *Error) Critical() bool { return e.critical }

// Decorate appends the caller's name to the decoration stack and returns it.
func (e *Error) Decorate(caller string) []string {
	e.deco = append(e.deco, caller)
	return e.deco
}

// New builds a non-critical error.
func New(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Fatal builds a critical error: one that must propagate and abort the slice.
func Fatal(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), critical: true}
}

// Kind distinguishes the worker's documented error handling paths.
type Kind int

const (
	// KindQueueEmpty: no pending job, sleep and retry, never fatal.
	KindQueueEmpty Kind = iota
	// KindMalformedLigand: skip the ligand, continue the slice.
	KindMalformedLigand
	// KindFilterMiss: the ligand failed the job's filters, or a filter field
	// failed to parse (treated as a filter miss); skip the ligand.
	KindFilterMiss
	// KindGridTaskFatal: grid map construction failed, fatal for the slice.
	KindGridTaskFatal
	// KindIOFatal: CSV or library I/O failed, fatal for the slice.
	KindIOFatal
)

// Classified pairs an error with its handling kind so callers can branch
// without string-matching.
type Classified struct {
	Kind Kind
	Err  error
}

func (c *Classified) Error() string { return c.Err.Error() }
func (c *Classified) Unwrap() error { return c.Err }

// Classify wraps err with the given kind.
func Classify(kind Kind, err error) *Classified {
	if err == nil {
		return nil
	}
	return &Classified{Kind: kind, Err: err}
}

// Fatal reports whether a Kind must abort the enclosing slice.
func (k Kind) Fatal() bool {
	return k == KindGridTaskFatal || k == KindIOFatal
}
