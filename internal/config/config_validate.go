// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/mediaftp/internal/logging"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateMedia(); err != nil {
		return err
	}

	if err := c.validateBookmarks(); err != nil {
		return err
	}

	if err := c.validateGeoIP(); err != nil {
		return err
	}

	if err := c.validateVisitors(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateMedia() error {
	if c.Media.BaseDir == "" {
		return fmt.Errorf("MEDIA_BASE_DIR is required")
	}
	if c.Index.MaxConcurrency < 1 {
		return fmt.Errorf("INDEX_MAX_CONCURRENCY must be at least 1, got %d", c.Index.MaxConcurrency)
	}
	return nil
}

func (c *Config) validateBookmarks() error {
	switch c.Bookmarks.RemoveMatch {
	case RemoveMatchExact, RemoveMatchSuffix:
		return nil
	default:
		return fmt.Errorf("BOOKMARK_REMOVE_MATCH must be %q or %q, got %q",
			RemoveMatchExact, RemoveMatchSuffix, c.Bookmarks.RemoveMatch)
	}
}

// validateGeoIP only checks settings when geolocation is enabled.
func (c *Config) validateGeoIP() error {
	if !c.GeoIP.Enabled {
		return nil
	}

	if err := validateHTTPURL(c.GeoIP.BaseURL, "GEOIP_URL"); err != nil {
		return err
	}
	if c.GeoIP.Timeout <= 0 {
		return fmt.Errorf("GEOIP_TIMEOUT must be positive, got %s", c.GeoIP.Timeout)
	}
	if c.GeoIP.RateLimit < 1 {
		return fmt.Errorf("GEOIP_RATE_LIMIT must be at least 1, got %d", c.GeoIP.RateLimit)
	}
	if c.GeoIP.BreakerFailures < 1 {
		return fmt.Errorf("GEOIP_BREAKER_FAILURES must be at least 1")
	}
	if c.GeoIP.BreakerTimeout <= 0 {
		return fmt.Errorf("GEOIP_BREAKER_TIMEOUT must be positive, got %s", c.GeoIP.BreakerTimeout)
	}
	return nil
}

func (c *Config) validateVisitors() error {
	if c.Visitors.Capacity < 1 {
		return fmt.Errorf("VISITOR_CACHE_SIZE must be at least 1, got %d", c.Visitors.Capacity)
	}
	if c.Visitors.TTL <= 0 {
		return fmt.Errorf("VISITOR_CACHE_TTL must be positive, got %s", c.Visitors.TTL)
	}
	if c.Visitors.CleanupInterval <= 0 {
		return fmt.Errorf("VISITOR_CLEANUP_INTERVAL must be positive, got %s", c.Visitors.CleanupInterval)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

// validateHTTPURL requires an absolute http(s) URL with a host.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}
