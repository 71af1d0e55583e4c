// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestSet(capacity int, ttl time.Duration) (*SeenSet, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewSeenSet(capacity, ttl)
	s.now = clock.Now
	return s, clock
}

func TestNewSeenSet_Defaults(t *testing.T) {
	t.Parallel()

	s := NewSeenSet(0, 0)
	if s.capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", s.capacity, DefaultCapacity)
	}
	if s.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", s.ttl, DefaultTTL)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func present(s *SeenSet, key string) bool {
	_, ok := s.FirstSeen(key)
	return ok
}

func TestSeenSet_MarkSeen(t *testing.T) {
	t.Parallel()

	s, _ := newTestSet(10, time.Hour)

	if s.MarkSeen("203.0.113.7") {
		t.Error("first MarkSeen() = true, want false")
	}
	if !s.MarkSeen("203.0.113.7") {
		t.Error("second MarkSeen() = false, want true")
	}
	if !present(s, "203.0.113.7") {
		t.Error("FirstSeen() missing after MarkSeen")
	}

	st := s.Stats()
	if st.Hits != 1 || st.Misses != 1 || st.Size != 1 {
		t.Errorf("Stats() = %+v, want 1 hit, 1 miss, size 1", st)
	}
}

func TestSeenSet_Expiry(t *testing.T) {
	t.Parallel()

	s, clock := newTestSet(10, time.Minute)
	s.MarkSeen("a")
	first, ok := s.FirstSeen("a")
	if !ok {
		t.Fatal("FirstSeen() missing right after MarkSeen")
	}

	clock.Advance(30 * time.Second)
	if !s.MarkSeen("a") {
		t.Error("MarkSeen() within TTL = false, want true")
	}
	if got, _ := s.FirstSeen("a"); !got.Equal(first) {
		t.Errorf("FirstSeen() = %v, want unchanged %v", got, first)
	}

	// The refresh above extends expiry to t+90s.
	clock.Advance(45 * time.Second)
	if !present(s, "a") {
		t.Error("FirstSeen() missing before refreshed TTL elapsed")
	}

	clock.Advance(time.Minute)
	if present(s, "a") {
		t.Error("FirstSeen() present after TTL")
	}
	if s.MarkSeen("a") {
		t.Error("MarkSeen() after expiry = true, want false")
	}
}

func TestSeenSet_EvictsLeastRecentlySeen(t *testing.T) {
	t.Parallel()

	s, _ := newTestSet(3, time.Hour)
	s.MarkSeen("a")
	s.MarkSeen("b")
	s.MarkSeen("c")
	s.MarkSeen("a") // a is now most recent
	s.MarkSeen("d") // evicts b

	if present(s, "b") {
		t.Error("b should have been evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if !present(s, k) {
			t.Errorf("%s should still be present", k)
		}
	}
	if st := s.Stats(); st.Evictions != 1 || st.Size != 3 || st.Capacity != 3 {
		t.Errorf("Stats() = %+v, want 1 eviction, size 3, capacity 3", st)
	}
}

func TestSeenSet_ForgetAndClear(t *testing.T) {
	t.Parallel()

	s, _ := newTestSet(10, time.Hour)
	s.MarkSeen("a")
	s.MarkSeen("b")

	if !s.Forget("a") {
		t.Error("Forget(a) = false, want true")
	}
	if s.Forget("a") {
		t.Error("second Forget(a) = true, want false")
	}
	if s.MarkSeen("a") {
		t.Error("MarkSeen(a) after Forget = true, want false")
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", s.Len())
	}
	if s.MarkSeen("b") {
		t.Error("MarkSeen(b) after Clear = true, want false")
	}
}

func TestSeenSet_CleanupExpired(t *testing.T) {
	t.Parallel()

	s, clock := newTestSet(10, time.Minute)
	s.MarkSeen("old1")
	s.MarkSeen("old2")
	clock.Advance(40 * time.Second)
	s.MarkSeen("fresh")
	clock.Advance(30 * time.Second)

	if removed := s.CleanupExpired(); removed != 2 {
		t.Errorf("CleanupExpired() = %d, want 2", removed)
	}
	if s.Len() != 1 || !present(s, "fresh") {
		t.Errorf("after cleanup Len() = %d, fresh present = %v", s.Len(), present(s, "fresh"))
	}
}

func TestSeenSet_Concurrent(t *testing.T) {
	t.Parallel()

	s := NewSeenSet(100, time.Hour)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				key := fmt.Sprintf("10.0.%d.%d", g, i)
				s.MarkSeen(key)
				present(s, key)
				if i%5 == 0 {
					s.Forget(key)
				}
			}
		}()
	}
	wg.Wait()

	if s.Len() > 100 {
		t.Errorf("Len() = %d, exceeds capacity 100", s.Len())
	}
}
