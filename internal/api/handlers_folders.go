// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package api

import (
	"net/http"

	"github.com/tomtom215/mediaftp/internal/models"
)

// Folders searches the crawler index.
//
// @Summary Search indexed folders
// @Description Case-insensitive substring search over every .db index file, sorted by folder name. An absent or empty search returns an empty list.
// @Tags Folders
// @Produce json
// @Param search query string false "Substring to match against the folder path"
// @Success 200 {array} models.IndexEntry
// @Failure 500 {object} models.ErrorResponse
// @Router /folders [get]
func (h *Handler) Folders(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	if search == "" {
		respondJSON(w, r, http.StatusOK, []models.IndexEntry{})
		return
	}

	entries, err := h.folders.Search(r.Context(), search)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to search folders", err)
		return
	}
	respondJSON(w, r, http.StatusOK, entries)
}
