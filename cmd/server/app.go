// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/tomtom215/mediaftp/internal/api"
	"github.com/tomtom215/mediaftp/internal/bookmark"
	"github.com/tomtom215/mediaftp/internal/cache"
	"github.com/tomtom215/mediaftp/internal/config"
	"github.com/tomtom215/mediaftp/internal/geoip"
	"github.com/tomtom215/mediaftp/internal/index"
	"github.com/tomtom215/mediaftp/internal/logging"
	"github.com/tomtom215/mediaftp/internal/media"
	"github.com/tomtom215/mediaftp/internal/middleware"
	"github.com/tomtom215/mediaftp/internal/pathguard"
	"github.com/tomtom215/mediaftp/web"
)

// app holds the wired components the supervisor tree runs.
type app struct {
	server    *http.Server
	seen      *cache.SeenSet
	visitors  *middleware.VisitorLogger
	bookmarks *bookmark.Store
}

// newApp builds every component from cfg. The cache directory and the
// bookmark file are created if missing.
func newApp(cfg *config.Config) (*app, error) {
	guard, err := pathguard.New(cfg.Media.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("media base directory: %w", err)
	}
	if err := os.MkdirAll(cfg.CacheDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}

	mode, err := bookmark.ParseMatchMode(cfg.Bookmarks.RemoveMatch)
	if err != nil {
		return nil, err
	}
	bookmarks := bookmark.NewStore(cfg.BookmarkFile(), guard, mode)
	if err := bookmarks.Ensure(); err != nil {
		return nil, err
	}

	static, err := web.Static(cfg.Server.StaticDir)
	if err != nil {
		return nil, fmt.Errorf("frontend: %w", err)
	}

	seen := cache.NewSeenSet(cfg.Visitors.Capacity, cfg.Visitors.TTL)
	visitors := middleware.NewVisitorLogger(seen, newLocator(cfg))

	handler := api.NewHandler(api.Dependencies{
		Folders:   index.NewReader(cfg.CacheDir(), guard, cfg.Index.MaxConcurrency),
		Bookmarks: bookmarks,
		Media:     media.NewEnumerator(),
		Guard:     guard,
		Static:    static,
	})

	mwConfig := api.DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwConfig.RateLimitRequests = cfg.Security.RateLimitReqs
	mwConfig.RateLimitWindow = cfg.Security.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.Security.RateLimitDisabled

	router := api.NewRouter(handler, api.NewChiMiddleware(mwConfig), visitors)

	// No WriteTimeout: streams of large files run as long as the client reads.
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logging.Info().
		Str("base_dir", guard.Base()).
		Str("index_dir", cfg.CacheDir()).
		Str("bookmark_file", bookmarks.Path()).
		Str("remove_match", string(mode)).
		Bool("geoip", cfg.GeoIP.Enabled).
		Msg("Media library configured")

	return &app{
		server:    server,
		seen:      seen,
		visitors:  visitors,
		bookmarks: bookmarks,
	}, nil
}

// newLocator returns nil when geolocation is disabled.
func newLocator(cfg *config.Config) *geoip.Locator {
	if !cfg.GeoIP.Enabled {
		return nil
	}
	provider := geoip.NewIPAPIProvider(geoip.IPAPIConfig{
		BaseURL:           cfg.GeoIP.BaseURL,
		RequestsPerMinute: cfg.GeoIP.RateLimit,
		Timeout:           cfg.GeoIP.Timeout,
	})
	breaker := geoip.NewBreakerProvider(provider, geoip.BreakerConfig{
		ConsecutiveFailures: cfg.GeoIP.BreakerFailures,
		OpenTimeout:         cfg.GeoIP.BreakerTimeout,
	})
	return geoip.NewLocator(breaker, cfg.GeoIP.Timeout)
}
