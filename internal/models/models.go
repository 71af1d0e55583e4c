// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

// Package models defines the JSON wire types returned by the HTTP API.
package models

// IndexEntry is one folder found in the crawler's .db index files.
//
// Example:
//
//	{"name": "Show", "path": "/home/me/MediaFTP/TV/Show", "display_path": "TV/Show"}
type IndexEntry struct {
	// Name is the final path element.
	Name string `json:"name"`

	// Path is the line as stored in the index file, trimmed.
	Path string `json:"path"`

	// DisplayPath is Path relative to the media base directory.
	DisplayPath string `json:"display_path"`
}

// Bookmark is a saved folder. DisplayPath is derived on read and never stored.
type Bookmark struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	DisplayPath string `json:"display_path"`
}

// MediaFile is a playable file found under a folder.
type MediaFile struct {
	// Path is the full filesystem path, suitable for /stream.
	Path string `json:"path"`

	// Name is the path relative to the folder that was listed.
	Name string `json:"name"`
}

// Geolocation describes where a client address resolves to. Coordinates
// are nil when the provider did not report them.
type Geolocation struct {
	IP        string   `json:"ip"`
	City      string   `json:"city,omitempty"`
	Region    string   `json:"region,omitempty"`
	Country   string   `json:"country,omitempty"`
	Latitude  *float64 `json:"lat,omitempty"`
	Longitude *float64 `json:"lon,omitempty"`
}

// StatusResponse is the body of a successful mutation.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// ErrorResponse is the body of every JSON error.
type ErrorResponse struct {
	Error string `json:"error" example:"path is required"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status        string  `json:"status" example:"ok"`
	UptimeSeconds float64 `json:"uptime_seconds" example:"42.5"`
}
