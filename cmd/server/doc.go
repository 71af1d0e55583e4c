// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

/*
Package main is the entry point for the MediaFTP server.

MediaFTP serves a personal media library over HTTP. An external crawler
writes one folder path per line into .db files under
<base>/.cache/updated; the server searches those files, keeps bookmarks in
<base>/.cache/bookmark/bookmark.txt, lists playable files beneath a folder
and streams them with range support.

# Application Architecture

	RootSupervisor ("mediaftp")
	├── APISupervisor ("api-layer")
	│   └── HTTP Server
	└── MaintenanceSupervisor ("maintenance-layer")
	    └── Visitor janitor (expires remembered client addresses)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Storage: cache directory and bookmark file are created if missing
 4. GeoIP: ip-api.com provider behind a rate limiter and circuit breaker
 5. Supervisor Tree: Suture v4 process supervision
 6. HTTP Server: Chi router with middleware stack

# Configuration

	MEDIA_BASE_DIR=~/MediaFTP    # every path parameter must resolve inside
	HTTP_PORT=5000
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	GEOIP_ENABLED=true           # log where new visitors connect from
	BOOKMARK_REMOVE_MATCH=exact  # exact or suffix
	CONFIG_PATH=/etc/mediaftp/config.yaml

# Endpoints

	GET  /                 frontend
	GET  /folders          search the crawler index
	GET  /bookmarks        list bookmarks
	POST /bookmark/add     save a bookmark
	POST /bookmark/remove  delete bookmarks
	GET  /files            list media files beneath a folder
	GET  /stream           stream a file (Range supported)
	GET  /health           liveness and uptime
	GET  /metrics          Prometheus metrics
	GET  /swagger/         API documentation
*/
package main
