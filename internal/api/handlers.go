// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package api

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"github.com/tomtom215/mediaftp/internal/models"
	"github.com/tomtom215/mediaftp/internal/pathguard"
)

// FolderSearcher finds indexed folders.
type FolderSearcher interface {
	Search(ctx context.Context, query string) ([]models.IndexEntry, error)
}

// BookmarkStore persists saved folders.
type BookmarkStore interface {
	Search(query string) ([]models.Bookmark, error)
	Add(name, path string) error
	Remove(path string) (int, error)
}

// MediaLister lists playable files beneath a folder.
type MediaLister interface {
	List(ctx context.Context, root string) ([]models.MediaFile, error)
}

// Dependencies are the components a Handler serves.
type Dependencies struct {
	Folders   FolderSearcher
	Bookmarks BookmarkStore
	Media     MediaLister
	Guard     *pathguard.Guard

	// Static holds index.html.
	Static fs.FS
}

// Handler implements every MediaFTP endpoint. It holds no per-request
// state; each call reads the filesystem afresh.
type Handler struct {
	folders   FolderSearcher
	bookmarks BookmarkStore
	media     MediaLister
	guard     *pathguard.Guard
	static    fs.FS
	startTime time.Time
}

// NewHandler returns a Handler serving deps.
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		folders:   deps.Folders,
		bookmarks: deps.Bookmarks,
		media:     deps.Media,
		guard:     deps.Guard,
		static:    deps.Static,
		startTime: time.Now(),
	}
}

// Index serves the single-page frontend.
//
// @Summary Frontend
// @Description Serves the embedded single-page application.
// @Tags Core
// @Produce html
// @Success 200 {string} string "index.html"
// @Router / [get]
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if h.static == nil {
		respondError(w, r, http.StatusNotFound, "frontend not available", nil)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=300")
	http.ServeFileFS(w, r, h.static, "index.html")
}

// Health reports liveness and uptime.
//
// @Summary Health check
// @Description Returns ok and the process uptime in seconds.
// @Tags Core
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, models.HealthResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}
