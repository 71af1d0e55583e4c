// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/mediaftp/internal/cache"
	"github.com/tomtom215/mediaftp/internal/logging"
)

type fakeSweeper struct {
	sweeps atomic.Int32
}

func (f *fakeSweeper) CleanupExpired() int {
	f.sweeps.Add(1)
	return 1
}

func (f *fakeSweeper) Stats() cache.Stats {
	return cache.Stats{Size: 3, Capacity: 10}
}

func TestNewJanitorService_DefaultInterval(t *testing.T) {
	t.Parallel()

	j := NewJanitorService(&fakeSweeper{}, 0)
	if j.interval != DefaultJanitorInterval {
		t.Errorf("interval = %v, want %v", j.interval, DefaultJanitorInterval)
	}
	if j.String() != "visitor-janitor" {
		t.Errorf("String() = %q", j.String())
	}
}

func TestJanitorService_SweepsUntilCanceled(t *testing.T) {
	t.Parallel()

	sweeper := &fakeSweeper{}
	j := NewJanitorService(sweeper, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- j.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for sweeper.sweeps.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
	if got := sweeper.sweeps.Load(); got < 3 {
		t.Errorf("sweeps = %d, want at least 3", got)
	}
}

func TestJanitorService_SweepRemovesExpired(t *testing.T) {
	t.Parallel()

	seen := cache.NewSeenSet(10, 10*time.Millisecond)
	seen.MarkSeen("203.0.113.1")
	seen.MarkSeen("203.0.113.2")
	time.Sleep(30 * time.Millisecond)
	seen.MarkSeen("203.0.113.3")

	j := NewJanitorService(seen, time.Hour)
	if got := j.Sweep(); got != 2 {
		t.Errorf("Sweep() = %d, want 2", got)
	}
	if _, ok := seen.FirstSeen("203.0.113.3"); seen.Len() != 1 || !ok {
		t.Errorf("remaining = %d, want only the fresh address", seen.Len())
	}
}

func TestJanitorService_SweepLogsStats(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	seen := cache.NewSeenSet(4, time.Hour)
	seen.MarkSeen("203.0.113.1")
	seen.MarkSeen("203.0.113.1")

	NewJanitorService(seen, time.Hour).Sweep()

	out := buf.String()
	for _, want := range []string{`"remaining":1`, `"capacity":4`, `"hits":1`, `"misses":1`, "Visitor sweep complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("sweep log missing %s:\n%s", want, out)
		}
	}
}
