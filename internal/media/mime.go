// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package media

import (
	"mime"
	"path/filepath"
	"strings"
)

// contentTypes covers every entry of Extensions. Go's built-in table has
// none of them and /etc/mime.types is absent on minimal images.
var contentTypes = map[string]string{
	".mp4":  "video/mp4",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".mp3":  "audio/mpeg",
	".flac": "audio/flac",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
}

//nolint:gochecknoinits // http.ServeContent consults the mime package directly
func init() {
	for ext, typ := range contentTypes {
		if err := mime.AddExtensionType(ext, typ); err != nil {
			panic(err)
		}
	}
}

// ContentType returns the MIME type for name's extension, or "" if it is
// not a media file.
func ContentType(name string) string {
	return contentTypes[strings.ToLower(filepath.Ext(name))]
}
