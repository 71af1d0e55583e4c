// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package services

import (
	"context"
	"time"

	"github.com/tomtom215/mediaftp/internal/cache"
	"github.com/tomtom215/mediaftp/internal/logging"
	"github.com/tomtom215/mediaftp/internal/metrics"
)

// DefaultJanitorInterval is how often expired visitors are swept.
const DefaultJanitorInterval = 10 * time.Minute

// Sweeper is satisfied by *cache.SeenSet.
type Sweeper interface {
	CleanupExpired() int
	Stats() cache.Stats
}

// JanitorService periodically drops expired entries from the seen-visitor
// set and publishes its size. Expiry is also applied lazily on lookup, so
// the sweep only bounds memory held by visitors who never return.
type JanitorService struct {
	seen     Sweeper
	interval time.Duration
	name     string
}

// NewJanitorService sweeps seen every interval. A non-positive interval
// becomes DefaultJanitorInterval.
func NewJanitorService(seen Sweeper, interval time.Duration) *JanitorService {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	return &JanitorService{
		seen:     seen,
		interval: interval,
		name:     "visitor-janitor",
	}
}

// Serve implements suture.Service.
func (j *JanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.Sweep()
		}
	}
}

// Sweep runs one cleanup pass and returns the number of entries removed.
func (j *JanitorService) Sweep() int {
	removed := j.seen.CleanupExpired()
	stats := j.seen.Stats()

	metrics.VisitorsExpired.Add(float64(removed))
	metrics.VisitorsSeen.Set(float64(stats.Size))

	logging.Info().
		Int("removed", removed).
		Int("remaining", stats.Size).
		Int("capacity", stats.Capacity).
		Int64("hits", stats.Hits).
		Int64("misses", stats.Misses).
		Int64("evictions", stats.Evictions).
		Msg("Visitor sweep complete")
	return removed
}

// String names the service in supervisor logs.
func (j *JanitorService) String() string {
	return j.name
}
