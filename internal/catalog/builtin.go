// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// BuiltinFiles decodes the embedded catalog of native JavaScript and Node.js
// classes.
func BuiltinFiles() ([]*File, error) {
	names, err := fs.Glob(builtinFS, "builtin/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("listing builtin catalog: %w", err)
	}
	sort.Strings(names)

	files := make([]*File, 0, len(names))
	for _, name := range names {
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading builtin catalog: %w", err)
		}
		f, err := DecodeBytes(data, "builtin:"+path.Base(name))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// MustBuiltinFiles is BuiltinFiles for callers that treat a broken embedded
// catalog as a programming error.
func MustBuiltinFiles() []*File {
	files, err := BuiltinFiles()
	if err != nil {
		panic(err)
	}
	return files
}
