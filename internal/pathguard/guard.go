// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

// Package pathguard confines client-supplied paths to the media base
// directory.
//
// Containment is decided per path segment: with a base of /srv/media,
// /srv/media/TV is inside and /srv/media-old is not.
package pathguard

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrEmptyBase is returned by New when no base directory is given.
var ErrEmptyBase = errors.New("pathguard: base directory is required")

// Guard checks paths against a fixed base directory.
type Guard struct {
	base string
}

// New returns a Guard rooted at the absolute, cleaned form of base.
func New(base string) (*Guard, error) {
	if base == "" {
		return nil, ErrEmptyBase
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("pathguard: resolve base %q: %w", base, err)
	}
	return &Guard{base: abs}, nil
}

// Base returns the absolute base directory.
func (g *Guard) Base() string {
	return g.base
}

// Check reports whether candidate resolves to the base directory or
// something beneath it. Relative candidates resolve against the working
// directory. Symlinks are not followed.
func (g *Guard) Check(candidate string) bool {
	if candidate == "" {
		return false
	}
	abs, err := filepath.Abs(candidate)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(g.base, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Relative returns path relative to the base directory for display. When
// no relative form exists the path is returned unchanged.
func (g *Guard) Relative(path string) string {
	rel, err := filepath.Rel(g.base, path)
	if err != nil {
		return path
	}
	return rel
}
