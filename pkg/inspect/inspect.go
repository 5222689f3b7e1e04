// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package inspect is the public entry point of classmodel: it loads class
// catalogs and answers resolution queries about the classes they declare.
package inspect

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/petar-djukic/classmodel/pkg/types"
)

// Error types for the Inspector API.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrInvalidQuery  = errors.New("invalid query")
	ErrNotFound      = errors.New("not found")
	ErrNotLoaded     = errors.New("catalog not loaded")
)

// Config configures an Inspector.
type Config struct {
	CatalogPaths []string           // Catalog files or directories to scan
	NoBuiltins   bool               // Skip the embedded JavaScript and Node.js catalog
	Concurrency  int                // Decode workers per directory (default runtime.NumCPU)
	Logger       logrus.FieldLogger // Optional; defaults to the standard logrus logger
}

// Query selects the member set reported for a class.
type Query struct {
	View   types.View // Member set (default all)
	Filter string     // Filter expression such as "public,method,!static"
}

// Validation holds the outcome of Inspector.Validate.
type Validation struct {
	Problems  []error // Scan, link and contract problems in that order
	Classes   int     // Classes declared
	Packages  int     // Packages declared
	Contracts int     // Interface methods left unimplemented
}

// OK reports whether validation found no problems.
func (v *Validation) OK() bool { return len(v.Problems) == 0 }
