// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package geoip

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/tomtom215/mediaftp/internal/metrics"
	"github.com/tomtom215/mediaftp/internal/models"
)

// Status is the outcome of a Locate call.
type Status string

const (
	StatusLocated Status = "located" // provider returned a location
	StatusLocal   Status = "local"   // private address, resolved without a network call
	StatusFailed  Status = "failed"  // see LookupResult.Err
)

// LookupResult carries everything a caller needs to log a lookup.
type LookupResult struct {
	Status   Status
	Geo      *models.Geolocation
	Err      error
	Duration time.Duration
}

// Locator turns client addresses into LookupResults.
type Locator struct {
	provider Provider
	timeout  time.Duration
}

// NewLocator returns a Locator that bounds each provider call by timeout.
func NewLocator(provider Provider, timeout time.Duration) *Locator {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Locator{provider: provider, timeout: timeout}
}

// Timeout returns the per-lookup timeout.
func (l *Locator) Timeout() time.Duration {
	return l.timeout
}

// Locate resolves addr, which may include a port. It never returns an
// error separately; failures are reported with StatusFailed.
func (l *Locator) Locate(ctx context.Context, addr string) LookupResult {
	ip := NormalizeIP(addr)

	if IsPrivateIP(ip) {
		metrics.RecordGeoIPLookup(string(StatusLocal), 0)
		return LookupResult{Status: StatusLocal, Geo: LocalGeolocation(ip)}
	}

	if l.provider == nil {
		metrics.RecordGeoIPLookup(string(StatusFailed), 0)
		return LookupResult{Status: StatusFailed, Err: fmt.Errorf("geoip: no provider configured")}
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	start := time.Now()
	geo, err := l.provider.Lookup(ctx, ip)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordGeoIPLookup(string(StatusFailed), elapsed)
		return LookupResult{Status: StatusFailed, Err: fmt.Errorf("%s: %w", l.provider.Name(), err), Duration: elapsed}
	}

	metrics.RecordGeoIPLookup(string(StatusLocated), elapsed)
	return LookupResult{Status: StatusLocated, Geo: geo, Duration: elapsed}
}

// FormatLocation renders geo as "city, region, country (lat, lon)" with
// "Unknown" standing in for every missing field.
func FormatLocation(geo *models.Geolocation) string {
	if geo == nil {
		return "Unknown, Unknown, Unknown (Unknown, Unknown)"
	}
	return fmt.Sprintf("%s, %s, %s (%s, %s)",
		orUnknown(geo.City),
		orUnknown(geo.Region),
		orUnknown(geo.Country),
		coordOrUnknown(geo.Latitude),
		coordOrUnknown(geo.Longitude),
	)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func coordOrUnknown(c *float64) string {
	if c == nil {
		return "Unknown"
	}
	return strconv.FormatFloat(*c, 'f', -1, 64)
}
