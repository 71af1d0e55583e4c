// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package geoip

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/mediaftp/internal/logging"
	"github.com/tomtom215/mediaftp/internal/metrics"
	"github.com/tomtom215/mediaftp/internal/models"
)

// BreakerConfig configures a BreakerProvider.
type BreakerConfig struct {
	// ConsecutiveFailures opens the circuit. Default: 5
	ConsecutiveFailures uint32

	// OpenTimeout is how long the circuit stays open before probing. Default: 1m
	OpenTimeout time.Duration
}

// BreakerProvider stops calling a failing provider for a while. Answers
// that merely could not locate an address, rate limiting and caller
// cancellation do not count as provider failures.
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker[*models.Geolocation]
	name string
}

// NewBreakerProvider wraps next in a circuit breaker.
func NewBreakerProvider(next Provider, cfg BreakerConfig) *BreakerProvider {
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = time.Minute
	}

	name := "geoip-" + next.Name()
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*models.Geolocation](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    0, // counts are cleared only on state change
		Timeout:     cfg.OpenTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
			if trip {
				logging.Warn().
					Str("breaker", name).
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("Opening circuit breaker")
			}
			return trip
		},

		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrLookupFailed) ||
				errors.Is(err, ErrRateLimited) ||
				errors.Is(err, ErrInvalidIP) ||
				errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("Circuit breaker state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
	})

	return &BreakerProvider{next: next, cb: cb, name: name}
}

// Name returns the wrapped provider's name.
func (b *BreakerProvider) Name() string {
	return b.next.Name()
}

// State returns the breaker state: closed, half-open or open.
func (b *BreakerProvider) State() string {
	return stateToString(b.cb.State())
}

// Lookup calls the wrapped provider unless the circuit is open.
func (b *BreakerProvider) Lookup(ctx context.Context, ip string) (*models.Geolocation, error) {
	geo, err := b.cb.Execute(func() (*models.Geolocation, error) {
		return b.next.Lookup(ctx, ip)
	})

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
	}
	return geo, err
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
