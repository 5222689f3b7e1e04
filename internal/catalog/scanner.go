// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"golang.org/x/sync/errgroup"
)

// maxParallelPaths bounds how many ScanPaths arguments are scanned at once.
const maxParallelPaths = 4

// skipDirs contains directory names that ScanDir skips by default.
var skipDirs = map[string]bool{
	"vendor":       true,
	".git":         true,
	"testdata":     true,
	"node_modules": true,
}

// ScanResult holds the output of a directory scan.
type ScanResult struct {
	Files  []*File // Decoded files, sorted by path
	Errors []ScanError
}

// ScanError records a decode failure for a single file.
type ScanError struct {
	FilePath string
	Err      error
}

func (e ScanError) Error() string {
	return fmt.Sprintf("%s: %v", e.FilePath, e.Err)
}

func (e ScanError) Unwrap() error { return e.Err }

// IsCatalogFile reports whether path has a catalog file extension.
func IsCatalogFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// ScanDir walks the directory tree rooted at dir, finds all .yaml and .yml
// files, and decodes them in parallel using a bounded worker pool.
//
// It skips vendor/, .git/, testdata/ and node_modules/ directories and
// respects the .gitignore files found below the root directory.
//
// Decode errors for individual files are collected in ScanResult.Errors but
// do not abort the scan. If concurrency <= 0 it defaults to runtime.NumCPU().
// Cancelling ctx stops the walk and the workers.
func ScanDir(ctx context.Context, dir string, concurrency int) (*ScanResult, error) {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving directory: %w", err)
	}

	info, err := os.Stat(absDir)
	if err != nil {
		return nil, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", absDir)
	}

	ignorer := loadGitignore(absDir)

	// Collect all catalog file paths.
	var paths []string
	err = filepath.WalkDir(absDir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return nil // skip inaccessible entries
		}
		if path == absDir {
			return nil
		}
		relPath, relErr := filepath.Rel(absDir, path)
		if relErr != nil {
			relPath = path
		}
		if d.IsDir() {
			if skipDirs[d.Name()] || isIgnored(ignorer, relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsCatalogFile(d.Name()) || isIgnored(ignorer, relPath, false) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	result := &ScanResult{}
	if len(paths) == 0 {
		return result, nil
	}

	// Decode files using a bounded worker pool.
	type decodeResult struct {
		path string
		file *File
		err  error
	}

	jobs := make(chan string, len(paths))
	results := make(chan decodeResult, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if ctx.Err() != nil {
					results <- decodeResult{path: path, err: ctx.Err()}
					continue
				}
				f, decErr := decodeFile(path)
				results <- decodeResult{path: path, file: f, err: decErr}
			}
		}()
	}

	for _, p := range paths {
		jobs <- p
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	for dr := range results {
		if dr.err != nil {
			relPath, relErr := filepath.Rel(absDir, dr.path)
			if relErr != nil {
				relPath = dr.path
			}
			result.Errors = append(result.Errors, ScanError{FilePath: relPath, Err: dr.err})
			continue
		}
		result.Files = append(result.Files, dr.file)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(result.Files, func(i, j int) bool { return result.Files[i].Path < result.Files[j].Path })
	sort.Slice(result.Errors, func(i, j int) bool { return result.Errors[i].FilePath < result.Errors[j].FilePath })
	return result, nil
}

// ScanPaths scans each path: directories with ScanDir, single files
// directly. Paths are scanned in parallel; results are merged in argument
// order. The first failing path cancels the others.
func ScanPaths(ctx context.Context, paths []string, concurrency int) (*ScanResult, error) {
	results := make([]*ScanResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelPaths)

	for i, p := range paths {
		g.Go(func() error {
			res, err := scanPath(gctx, p, concurrency)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &ScanResult{}
	for _, res := range results {
		merged.Files = append(merged.Files, res.Files...)
		merged.Errors = append(merged.Errors, res.Errors...)
	}
	return merged, nil
}

func scanPath(ctx context.Context, p string, concurrency int) (*ScanResult, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("stat catalog path: %w", err)
	}
	if info.IsDir() {
		return ScanDir(ctx, p, concurrency)
	}
	f, err := decodeFile(p)
	if err != nil {
		return &ScanResult{Errors: []ScanError{{FilePath: p, Err: err}}}, nil
	}
	return &ScanResult{Files: []*File{f}}, nil
}

func decodeFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Decode(fh, path)
}

// loadGitignore reads every .gitignore below root into a matcher that
// follows git's rules, including anchored and negated patterns. Unreadable
// files yield a matcher that ignores nothing.
func loadGitignore(root string) gitignore.Matcher {
	patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
	if err != nil {
		return gitignore.NewMatcher(nil)
	}
	return gitignore.NewMatcher(patterns)
}

// isIgnored reports whether the root-relative path is excluded by m.
func isIgnored(m gitignore.Matcher, relPath string, isDir bool) bool {
	return m.Match(strings.Split(filepath.ToSlash(relPath), "/"), isDir)
}
