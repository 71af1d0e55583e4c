// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

// Package bookmark stores saved folders in a tab-separated text file.
//
// File format, one bookmark per line:
//
//	<name>\t<path>\n
//
// Duplicates are allowed. Lines without a tab are ignored on read and
// kept on rewrite. Names and paths are written verbatim, so a value
// containing a tab or newline corrupts its own line.
package bookmark

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tomtom215/mediaftp/internal/metrics"
	"github.com/tomtom215/mediaftp/internal/models"
	"github.com/tomtom215/mediaftp/internal/pathguard"
)

// ErrFieldRequired is returned when a name or path is empty.
var ErrFieldRequired = errors.New("bookmark: field is required")

// MatchMode selects which lines Remove drops.
type MatchMode string

const (
	// MatchExact drops lines whose path field equals the given path.
	MatchExact MatchMode = "exact"

	// MatchSuffix drops every line whose trimmed text ends with the given
	// path, including unrelated bookmarks that share the suffix.
	MatchSuffix MatchMode = "suffix"
)

// ParseMatchMode converts a config value to a MatchMode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch m := MatchMode(strings.ToLower(s)); m {
	case MatchExact, MatchSuffix:
		return m, nil
	default:
		return "", fmt.Errorf("bookmark: unknown match mode %q", s)
	}
}

// Store is the bookmark file. All operations are serialized by an
// in-process mutex; other processes writing the same file are not
// coordinated with.
type Store struct {
	mu    sync.Mutex
	path  string
	guard *pathguard.Guard
	mode  MatchMode
}

// NewStore returns a Store backed by the file at path. Display paths are
// derived relative to guard's base directory.
func NewStore(path string, guard *pathguard.Guard, mode MatchMode) *Store {
	if mode == "" {
		mode = MatchExact
	}
	return &Store{path: path, guard: guard, mode: mode}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Ensure creates the backing file and its directory if they are missing.
func (s *Store) Ensure() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create bookmark directory: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create bookmark file: %w", err)
	}
	return f.Close()
}

// Search returns the bookmarks whose name or path contains query,
// ignoring case, in file order. An empty query returns every bookmark.
func (s *Store) Search(query string) (result []models.Bookmark, err error) {
	defer func() { metrics.RecordBookmarkOperation("search", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	result = []models.Bookmark{}

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open bookmark file: %w", err)
	}
	defer f.Close()

	needle := strings.ToLower(query)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		name, path, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(name), needle) &&
			!strings.Contains(strings.ToLower(path), needle) {
			continue
		}
		result = append(result, models.Bookmark{
			Name:        name,
			Path:        path,
			DisplayPath: s.guard.Relative(path),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read bookmark file: %w", err)
	}
	return result, nil
}

// Add appends a bookmark. Both fields must be non-empty.
func (s *Store) Add(name, path string) (err error) {
	defer func() { metrics.RecordBookmarkOperation("add", err) }()

	if name == "" {
		return fmt.Errorf("name: %w", ErrFieldRequired)
	}
	if path == "" {
		return fmt.Errorf("path: %w", ErrFieldRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open bookmark file: %w", err)
	}
	if _, err := f.WriteString(name + "\t" + path + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("append bookmark: %w", err)
	}
	return f.Close()
}

// Remove rewrites the file without the lines matching path under the
// store's MatchMode and reports how many lines were dropped. The new
// content is written to a temporary file and renamed over the original.
func (s *Store) Remove(path string) (removed int, err error) {
	defer func() { metrics.RecordBookmarkOperation("remove", err) }()

	if path == "" {
		return 0, fmt.Errorf("path: %w", ErrFieldRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read bookmark file: %w", err)
	}

	var kept strings.Builder
	kept.Grow(len(data))
	for _, line := range strings.SplitAfter(string(data), "\n") {
		if line == "" {
			continue
		}
		if s.matches(line, path) {
			removed++
			continue
		}
		kept.WriteString(line)
	}

	if removed == 0 {
		return 0, nil
	}
	if err := s.replace(kept.String()); err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *Store) matches(line, path string) bool {
	if s.mode == MatchSuffix {
		return strings.HasSuffix(strings.TrimSpace(line), path)
	}
	_, linePath, ok := parseLine(line)
	return ok && linePath == path
}

// replace atomically swaps the file content. Must be called with mu held.
func (s *Store) replace(content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".bookmark-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp bookmark file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp bookmark file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp bookmark file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp bookmark file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace bookmark file: %w", err)
	}
	return nil
}

// parseLine splits a trimmed line on its first tab.
func parseLine(line string) (name, path string, ok bool) {
	return strings.Cut(strings.TrimSpace(line), "\t")
}
