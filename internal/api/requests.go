// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package api

// AddBookmarkRequest is the body of POST /bookmark/add.
type AddBookmarkRequest struct {
	Name string `json:"name" validate:"required" example:"Show"`
	Path string `json:"path" validate:"required" example:"/home/me/MediaFTP/TV/Show"`
}

// RemoveBookmarkRequest is the body of POST /bookmark/remove.
type RemoveBookmarkRequest struct {
	Path string `json:"path" validate:"required" example:"/home/me/MediaFTP/TV/Show"`
}
