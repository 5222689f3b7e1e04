// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

const defaultDebounce = 200 * time.Millisecond

// WatchConfig configures Watch.
type WatchConfig struct {
	Paths    []string           // Catalog files or directories
	Debounce time.Duration      // Quiet period before onChange fires (default 200ms)
	Logger   logrus.FieldLogger // Optional; defaults to the standard logrus logger
}

// Watch calls onChange once per burst of catalog file changes under the
// configured paths until ctx is cancelled. Directories are watched
// recursively, skipping the directories ScanDir skips; new subdirectories
// are added as they appear. Watch returns nil when ctx is cancelled.
func Watch(ctx context.Context, cfg WatchConfig, onChange func()) error {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	for _, p := range cfg.Paths {
		if err := addWatch(w, p); err != nil {
			return err
		}
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addWatch(w, ev.Name); err != nil {
						log.WithError(err).Warn("cannot watch new directory")
					}
					continue
				}
			}
			if !IsCatalogFile(ev.Name) || ev.Has(fsnotify.Chmod) {
				continue
			}
			log.WithFields(logrus.Fields{"file": ev.Name, "op": ev.Op.String()}).Debug("catalog file changed")
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watch error")
		}
	}
}

// addWatch watches p, or every non-skipped directory below p.
func addWatch(w *fsnotify.Watcher, p string) error {
	info, err := os.Stat(p)
	if err != nil {
		return fmt.Errorf("stat catalog path: %w", err)
	}
	if !info.IsDir() {
		return w.Add(p)
	}
	return filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if skipDirs[d.Name()] && path != p {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
