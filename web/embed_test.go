// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package web

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStatic_Embedded(t *testing.T) {
	t.Parallel()

	fsys, err := Static("")
	if err != nil {
		t.Fatalf("Static() error = %v", err)
	}
	data, err := fs.ReadFile(fsys, "index.html")
	if err != nil {
		t.Fatalf("ReadFile(index.html) error = %v", err)
	}
	if !strings.Contains(string(data), "<title>MediaFTP</title>") {
		t.Error("embedded index.html has no MediaFTP title")
	}
}

func TestStatic_Override(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("custom"), 0o644); err != nil {
		t.Fatal(err)
	}

	fsys, err := Static(dir)
	if err != nil {
		t.Fatalf("Static(%q) error = %v", dir, err)
	}
	data, err := fs.ReadFile(fsys, "index.html")
	if err != nil || string(data) != "custom" {
		t.Errorf("ReadFile() = %q, %v; want custom", data, err)
	}
}

func TestStatic_BadOverride(t *testing.T) {
	t.Parallel()

	if _, err := Static(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Static() with a missing dir: error = nil")
	}

	file := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Static(file); err == nil {
		t.Error("Static() with a file: error = nil")
	}
}
