// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

// Package media lists playable files beneath a folder.
package media

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/tomtom215/mediaftp/internal/logging"
	"github.com/tomtom215/mediaftp/internal/metrics"
	"github.com/tomtom215/mediaftp/internal/models"
)

// ErrNotFound is returned when the folder to list does not exist.
var ErrNotFound = errors.New("media: path not found")

// Extensions are the playable file extensions, lowercase with the dot.
var Extensions = []string{".mp4", ".mkv", ".avi", ".mov", ".mp3", ".flac", ".wav", ".m4a"}

// IsMediaFile reports whether name carries a playable extension,
// ignoring case.
func IsMediaFile(name string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(name)))
}

// Enumerator walks folders for media files.
type Enumerator struct{}

// NewEnumerator returns an Enumerator.
func NewEnumerator() *Enumerator {
	return &Enumerator{}
}

// List returns every media file beneath root, sorted by the path relative
// to root. Unreadable subdirectories are skipped. root must already have
// passed the path guard.
//
// A root that is a symlink to a directory is followed; returned paths keep
// root as their prefix. Symlinked subdirectories are not descended into.
func (e *Enumerator) List(ctx context.Context, root string) ([]models.MediaFile, error) {
	start := time.Now()

	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, root)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []models.MediaFile{}, nil
	}

	walkRoot, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}

	files := []models.MediaFile{}
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == walkRoot {
				return walkErr
			}
			logging.Ctx(ctx).Warn().Err(walkErr).Str("path", path).Msg("Skipping unreadable directory")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsMediaFile(d.Name()) || !isRegular(path, d) {
			return nil
		}

		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return nil
		}
		files = append(files, models.MediaFile{Path: filepath.Join(root, rel), Name: rel})
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(files, func(a, b models.MediaFile) int {
		return cmp.Compare(a.Name, b.Name)
	})

	metrics.RecordMediaList(time.Since(start), len(files))
	return files, nil
}

// resolveRoot returns the directory to walk for root. WalkDir does not
// follow a symlinked root, so the link is resolved first.
func resolveRoot(root string) (string, error) {
	li, err := os.Lstat(root)
	if err != nil {
		return "", fmt.Errorf("lstat %s: %w", root, err)
	}
	if li.Mode()&fs.ModeSymlink == 0 {
		return root, nil
	}
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", root, err)
	}
	return resolved, nil
}

// isRegular accepts regular files and symlinks that resolve to one.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
