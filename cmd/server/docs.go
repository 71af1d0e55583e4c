// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package main

// Swagger general API information, read by `swag init -g cmd/server/docs.go`.
//
// @title MediaFTP API
// @version 1.0
// @description Search crawler-indexed media folders, keep bookmarks, list media files and stream them with range support.
// @description
// @description ## Paths
// @description
// @description Every path parameter must resolve inside the configured media directory; anything else is rejected with 403.
// @description
// @description ## Error Responses
// @description
// @description All JSON errors have the form {"error": "message"}.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/mediaftp/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
// @schemes http
//
// @tag.name Core
// @tag.description Frontend and health
//
// @tag.name Folders
// @tag.description Search over the crawler index
//
// @tag.name Bookmarks
// @tag.description Saved folders
//
// @tag.name Media
// @tag.description File listing and streaming
