// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

// Package web holds the single-page frontend.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

//go:embed static
var staticFS embed.FS

// Static returns the frontend files. A non-empty dir overrides the
// embedded copy, which makes editing the page possible without a rebuild.
func Static(dir string) (fs.FS, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("static dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("static dir %s is not a directory", dir)
		}
		return os.DirFS(dir), nil
	}
	return fs.Sub(staticFS, "static")
}
