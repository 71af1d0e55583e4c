// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package geoip

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/mediaftp/internal/models"
)

func TestBreakerProvider_OpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	p := &stubProvider{err: errors.New("upstream down")}
	b := NewBreakerProvider(p, BreakerConfig{ConsecutiveFailures: 3, OpenTimeout: time.Hour})

	for i := range 3 {
		if _, err := b.Lookup(context.Background(), "8.8.8.8"); err == nil {
			t.Fatalf("call %d: error = nil, want upstream error", i)
		}
	}
	if b.State() != "open" {
		t.Fatalf("State() = %q, want open", b.State())
	}

	_, err := b.Lookup(context.Background(), "8.8.8.8")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Lookup() on open circuit error = %v, want ErrOpenState", err)
	}
	if got := p.calls.Load(); got != 3 {
		t.Errorf("provider calls = %d, want 3", got)
	}
}

func TestBreakerProvider_IgnoresLookupMisses(t *testing.T) {
	t.Parallel()

	p := &stubProvider{err: fmt.Errorf("%w: reserved range", ErrLookupFailed)}
	b := NewBreakerProvider(p, BreakerConfig{ConsecutiveFailures: 2, OpenTimeout: time.Hour})

	for range 5 {
		_, _ = b.Lookup(context.Background(), "240.0.0.1")
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
	if got := p.calls.Load(); got != 5 {
		t.Errorf("provider calls = %d, want 5", got)
	}
}

func TestBreakerProvider_PassesThrough(t *testing.T) {
	t.Parallel()

	p := &stubProvider{geo: &models.Geolocation{City: "Oslo"}}
	b := NewBreakerProvider(p, BreakerConfig{})

	geo, err := b.Lookup(context.Background(), "8.8.8.8")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if geo.City != "Oslo" {
		t.Errorf("City = %q, want Oslo", geo.City)
	}
	if b.Name() != "stub" {
		t.Errorf("Name() = %q, want stub", b.Name())
	}
}
