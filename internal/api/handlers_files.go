// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/tomtom215/mediaftp/internal/media"
	"github.com/tomtom215/mediaftp/internal/metrics"
)

const (
	msgPathRequired = "path is required"
	msgForbidden    = "Forbidden"
)

// Files lists the media files beneath a folder.
//
// @Summary List media files
// @Description Recursively lists playable files (mp4, mkv, avi, mov, mp3, flac, wav, m4a) beneath path, sorted by relative name.
// @Tags Media
// @Produce json
// @Param path query string true "Absolute folder path inside the media directory"
// @Success 200 {array} models.MediaFile
// @Failure 400 {object} models.ErrorResponse "Missing or nonexistent path"
// @Failure 403 {object} models.ErrorResponse "Path outside the media directory"
// @Failure 500 {object} models.ErrorResponse
// @Router /files [get]
func (h *Handler) Files(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		respondError(w, r, http.StatusBadRequest, msgPathRequired, nil)
		return
	}
	if !h.guard.Check(path) {
		respondError(w, r, http.StatusForbidden, msgForbidden, nil)
		return
	}

	files, err := h.media.List(r.Context(), path)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			respondError(w, r, http.StatusBadRequest, "Path not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "failed to list files", err)
		return
	}
	respondJSON(w, r, http.StatusOK, files)
}

// Stream sends a file's bytes with range support.
//
// @Summary Stream a file
// @Description Serves the raw file with Range, Last-Modified and a Content-Type derived from the extension.
// @Tags Media
// @Produce octet-stream
// @Param path query string true "Absolute file path inside the media directory"
// @Param Range header string false "Byte range, e.g. bytes=0-1023"
// @Success 200 {file} file
// @Success 206 {file} file
// @Failure 400 {object} models.ErrorResponse "Missing path or path is a directory"
// @Failure 403 {object} models.ErrorResponse "Path outside the media directory"
// @Failure 404 {object} models.ErrorResponse "File not found"
// @Router /stream [get]
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		metrics.RecordStream("bad_request")
		respondError(w, r, http.StatusBadRequest, msgPathRequired, nil)
		return
	}
	if !h.guard.Check(path) {
		metrics.RecordStream("forbidden")
		respondError(w, r, http.StatusForbidden, msgForbidden, nil)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			metrics.RecordStream("not_found")
			respondError(w, r, http.StatusNotFound, "File not found", nil)
			return
		}
		metrics.RecordStream("error")
		respondError(w, r, http.StatusInternalServerError, "failed to open file", err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		metrics.RecordStream("error")
		respondError(w, r, http.StatusInternalServerError, "failed to open file", err)
		return
	}
	if info.IsDir() {
		metrics.RecordStream("bad_request")
		respondError(w, r, http.StatusBadRequest, "path is a directory", nil)
		return
	}

	if ct := media.ContentType(info.Name()); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	metrics.RecordStream("served")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
