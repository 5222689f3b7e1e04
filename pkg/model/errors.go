// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package model is an in-memory model of object-oriented program structure:
// classes, interfaces, members, parameters and comments, together with the
// queries that resolve which members a class exposes once superclasses,
// overrides and visibility are taken into account.
//
// The model is descriptive metadata only. Nothing here parses source code,
// generates code or dispatches calls. Values are not safe for concurrent
// mutation; concurrent read-only queries against a stable graph are fine.
package model

import "errors"

// Error types for the model API. Every error returned by this package wraps
// one of these, so callers can use errors.Is.
var (
	// ErrInvalidArgument reports a value of the wrong shape or range, such
	// as a nil member or an out-of-range parameter index.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingName reports a nameless member, class or package where a
	// name is required.
	ErrMissingName = errors.New("missing name")

	// ErrStructuralViolation reports a well-formed value that breaks a model
	// invariant, such as an inheritance cycle or a required parameter placed
	// in the optional list.
	ErrStructuralViolation = errors.New("structural violation")
)
