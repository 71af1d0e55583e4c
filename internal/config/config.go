// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

// Package config loads MediaFTP configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values for every setting
//  2. Config File: optional YAML file (CONFIG_PATH, config.yaml, config.yml,
//     /etc/mediaftp/config.yaml)
//  3. Environment Variables: override any setting (see envTransformFunc)
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	guard, err := pathguard.New(cfg.Media.BaseDir)
package config

import (
	"net"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Media     MediaConfig     `koanf:"media"`
	Index     IndexConfig     `koanf:"index"`
	Bookmarks BookmarksConfig `koanf:"bookmarks"`
	GeoIP     GeoIPConfig     `koanf:"geoip"`
	Visitors  VisitorsConfig  `koanf:"visitors"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// StaticDir serves the frontend from disk instead of the embedded copy.
	StaticDir string `koanf:"static_dir"`
}

// MediaConfig holds the media library location.
type MediaConfig struct {
	// BaseDir is the root every path parameter must resolve inside.
	// A leading "~" is expanded to the user's home directory.
	BaseDir string `koanf:"base_dir"`
}

// IndexConfig tunes the folder index reader.
type IndexConfig struct {
	// MaxConcurrency bounds how many .db files are read at once.
	MaxConcurrency int `koanf:"max_concurrency"`
}

// BookmarksConfig tunes the bookmark store.
type BookmarksConfig struct {
	// RemoveMatch selects how /bookmark/remove picks lines: "exact" or "suffix".
	RemoveMatch string `koanf:"remove_match"`
}

// GeoIPConfig configures visitor geolocation.
type GeoIPConfig struct {
	Enabled bool   `koanf:"enabled"`
	BaseURL string `koanf:"base_url"`

	// Timeout bounds a single background lookup.
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the maximum number of lookups per minute.
	RateLimit int `koanf:"rate_limit"`

	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// VisitorsConfig sizes the seen-address set.
type VisitorsConfig struct {
	Capacity        int           `koanf:"capacity"`
	TTL             time.Duration `koanf:"ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// SecurityConfig holds CORS and inbound rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load loads configuration from defaults, an optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// CacheDir is the directory holding the crawler's .db index files.
func (c *Config) CacheDir() string {
	return filepath.Join(c.Media.BaseDir, ".cache", "updated")
}

// BookmarkFile is the path of the bookmark store.
func (c *Config) BookmarkFile() string {
	return filepath.Join(c.Media.BaseDir, ".cache", "bookmark", "bookmark.txt")
}
