// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/mediaftp/internal/bookmark"
	"github.com/tomtom215/mediaftp/internal/logging"
	"github.com/tomtom215/mediaftp/internal/models"
)

// Bookmarks lists saved folders.
//
// @Summary List bookmarks
// @Description Bookmarks whose name or path contains search, ignoring case, in the order they were added. An empty search returns all bookmarks.
// @Tags Bookmarks
// @Produce json
// @Param search query string false "Substring to match against name or path"
// @Success 200 {array} models.Bookmark
// @Failure 500 {object} models.ErrorResponse
// @Router /bookmarks [get]
func (h *Handler) Bookmarks(w http.ResponseWriter, r *http.Request) {
	list, err := h.bookmarks.Search(r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to read bookmarks", err)
		return
	}
	respondJSON(w, r, http.StatusOK, list)
}

// AddBookmark saves a folder.
//
// @Summary Add a bookmark
// @Description Appends a bookmark. Duplicates are allowed.
// @Tags Bookmarks
// @Accept json
// @Produce json
// @Param request body AddBookmarkRequest true "Bookmark to save"
// @Success 200 {object} models.StatusResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /bookmark/add [post]
func (h *Handler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	var req AddBookmarkRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.bookmarks.Add(req.Name, req.Path); err != nil {
		if errors.Is(err, bookmark.ErrFieldRequired) {
			respondError(w, r, http.StatusBadRequest, err.Error(), nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "failed to save bookmark", err)
		return
	}

	respondJSON(w, r, http.StatusOK, models.StatusResponse{Status: "ok"})
}

// RemoveBookmark deletes saved folders.
//
// @Summary Remove bookmarks
// @Description Rewrites the bookmark file without the lines matching path. Depending on configuration a line matches on exact path equality or on a suffix of the whole line. Removing a path that is not bookmarked succeeds.
// @Tags Bookmarks
// @Accept json
// @Produce json
// @Param request body RemoveBookmarkRequest true "Path to remove"
// @Success 200 {object} models.StatusResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /bookmark/remove [post]
func (h *Handler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	var req RemoveBookmarkRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	removed, err := h.bookmarks.Remove(req.Path)
	if err != nil {
		if errors.Is(err, bookmark.ErrFieldRequired) {
			respondError(w, r, http.StatusBadRequest, err.Error(), nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "failed to remove bookmark", err)
		return
	}

	logging.Ctx(r.Context()).Debug().Int("removed", removed).Msg("Bookmarks removed")
	respondJSON(w, r, http.StatusOK, models.StatusResponse{Status: "ok"})
}
