// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

// Package index searches the folder lists an external crawler writes to
// the cache directory. Each *.db file holds one absolute folder path per
// line; files are re-read on every search.
package index

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/mediaftp/internal/logging"
	"github.com/tomtom215/mediaftp/internal/metrics"
	"github.com/tomtom215/mediaftp/internal/models"
	"github.com/tomtom215/mediaftp/internal/pathguard"
)

// Extension marks the files read from the cache directory. Case-sensitive.
const Extension = ".db"

// DefaultMaxConcurrency is used when NewReader is given a value below 1.
const DefaultMaxConcurrency = 4

// maxLineBytes bounds a single path line.
const maxLineBytes = 1 << 20

// Reader searches the *.db files in one directory.
type Reader struct {
	dir            string
	guard          *pathguard.Guard
	maxConcurrency int
}

// NewReader returns a Reader over dir. Display paths are computed relative
// to guard's base directory.
func NewReader(dir string, guard *pathguard.Guard, maxConcurrency int) *Reader {
	if maxConcurrency < 1 {
		maxConcurrency = DefaultMaxConcurrency
	}
	return &Reader{dir: dir, guard: guard, maxConcurrency: maxConcurrency}
}

// Search returns every indexed folder whose display path or raw path
// contains query, ignoring case, sorted by name. An empty query returns
// an empty slice. A missing cache directory is not an error.
func (r *Reader) Search(ctx context.Context, query string) ([]models.IndexEntry, error) {
	if query == "" {
		return []models.IndexEntry{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	files, err := r.indexFiles()
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("dir", r.dir).Msg("Index directory unreadable")
		return []models.IndexEntry{}, nil
	}

	needle := strings.ToLower(query)
	slots := make([][]models.IndexEntry, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxConcurrency)
	for i, path := range files {
		g.Go(func() error {
			matches, err := r.scanFile(gctx, path, needle)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				metrics.IndexFilesSkipped.Inc()
				logging.Ctx(ctx).Warn().Err(err).Str("file", path).Msg("Skipping unreadable index file")
				return nil
			}
			slots[i] = matches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := slices.Concat(slots...)
	if results == nil {
		results = []models.IndexEntry{}
	}
	slices.SortStableFunc(results, func(a, b models.IndexEntry) int {
		return cmp.Compare(a.Name, b.Name)
	})

	metrics.RecordIndexSearch(time.Since(start), len(results))
	logging.Ctx(ctx).Debug().
		Str("query", query).
		Int("files", len(files)).
		Int("results", len(results)).
		Dur("duration", time.Since(start)).
		Msg("Index search complete")

	return results, nil
}

// indexFiles lists the *.db files directly inside the directory, in
// lexical order.
func (r *Reader) indexFiles() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		files = append(files, filepath.Join(r.dir, e.Name()))
	}
	return files, nil
}

// scanFile returns the matching entries of one index file in line order.
func (r *Reader) scanFile(ctx context.Context, path, needle string) ([]models.IndexEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var matches []models.IndexEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for n := 0; scanner.Scan(); n++ {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		display := r.guard.Relative(line)
		if !strings.Contains(strings.ToLower(display), needle) &&
			!strings.Contains(strings.ToLower(line), needle) {
			continue
		}
		matches = append(matches, models.IndexEntry{
			Name:        filepath.Base(line),
			Path:        line,
			DisplayPath: display,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return matches, nil
}
