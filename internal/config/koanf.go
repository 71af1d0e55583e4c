// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/mediaftp/config.yaml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Remove match modes accepted by bookmarks.remove_match.
const (
	RemoveMatchExact  = "exact"
	RemoveMatchSuffix = "suffix"
)

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ShutdownTimeout: 10 * time.Second,
			StaticDir:       "",
		},
		Media: MediaConfig{
			BaseDir: "~/MediaFTP",
		},
		Index: IndexConfig{
			MaxConcurrency: 4,
		},
		Bookmarks: BookmarksConfig{
			RemoveMatch: RemoveMatchExact,
		},
		GeoIP: GeoIPConfig{
			Enabled:         true,
			BaseURL:         "http://ip-api.com/json",
			Timeout:         5 * time.Second,
			RateLimit:       45, // ip-api.com free tier allows 45 requests/minute
			BreakerFailures: 5,
			BreakerTimeout:  time.Minute,
		},
		Visitors: VisitorsConfig{
			Capacity:        10000,
			TTL:             24 * time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     300,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration with layered sources. Precedence is
// ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// MEDIA_BASE_DIR -> media.base_dir, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when set from env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	"media_base_dir": "media.base_dir",

	"http_host":        "server.host",
	"http_port":        "server.port",
	"shutdown_timeout": "server.shutdown_timeout",
	"static_dir":       "server.static_dir",

	"index_max_concurrency": "index.max_concurrency",
	"bookmark_remove_match": "bookmarks.remove_match",

	"geoip_enabled":          "geoip.enabled",
	"geoip_url":              "geoip.base_url",
	"geoip_timeout":          "geoip.timeout",
	"geoip_rate_limit":       "geoip.rate_limit",
	"geoip_breaker_failures": "geoip.breaker_failures",
	"geoip_breaker_timeout":  "geoip.breaker_timeout",

	"visitor_cache_size":       "visitors.capacity",
	"visitor_cache_ttl":        "visitors.ttl",
	"visitor_cleanup_interval": "visitors.cleanup_interval",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped variables return "" and are ignored by the provider, so
// unrelated process environment never leaks into the config tree.
//
// Examples:
//   - MEDIA_BASE_DIR -> media.base_dir
//   - HTTP_PORT -> server.port
//   - DISABLE_RATE_LIMIT -> security.rate_limit_disabled
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
