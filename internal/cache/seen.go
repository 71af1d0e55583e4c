// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

// Package cache provides the bounded, expiring set of client addresses
// the request logger has already geolocated.
package cache

import (
	"sync"
	"time"
)

// Defaults applied by NewSeenSet when given non-positive values.
const (
	DefaultCapacity = 10000
	DefaultTTL      = 24 * time.Hour
)

type seenEntry struct {
	key       string
	firstSeen time.Time
	expiresAt time.Time
	prev      *seenEntry
	next      *seenEntry
}

// Stats is a point-in-time snapshot of a SeenSet.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// SeenSet is a thread-safe LRU set with per-entry TTL.
//
//   - O(1) MarkSeen, FirstSeen, Forget
//   - least recently seen entry evicted when full
//   - expired entries are dropped lazily on access and by CleanupExpired
//
// The list is kept between two sentinels: head.next is the most recently
// seen entry, tail.prev the least.
type SeenSet struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*seenEntry
	head     *seenEntry
	tail     *seenEntry
	now      func() time.Time

	hits      int64
	misses    int64
	evictions int64
}

// NewSeenSet returns an empty set holding at most capacity keys, each
// remembered for ttl after it was last seen.
func NewSeenSet(capacity int, ttl time.Duration) *SeenSet {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &SeenSet{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*seenEntry),
		head:     &seenEntry{},
		tail:     &seenEntry{},
		now:      time.Now,
	}
	s.head.next = s.tail
	s.tail.prev = s.head
	return s
}

// MarkSeen records key and reports whether it was already present and
// unexpired. Seeing a key again refreshes its TTL and recency.
func (s *SeenSet) MarkSeen(key string) (alreadySeen bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.items[key]; ok {
		if now.Before(e.expiresAt) {
			e.expiresAt = now.Add(s.ttl)
			s.moveToFront(e)
			s.hits++
			return true
		}
		s.unlink(e)
	}

	e := &seenEntry{key: key, firstSeen: now, expiresAt: now.Add(s.ttl)}
	s.pushFront(e)
	s.items[key] = e
	for len(s.items) > s.capacity {
		s.evictOldest()
	}
	s.misses++
	return false
}

// FirstSeen returns when key was first recorded and reports whether it is
// present and unexpired. It does not change recency.
func (s *SeenSet) FirstSeen(key string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[key]
	if !ok || !s.now().Before(e.expiresAt) {
		return time.Time{}, false
	}
	return e.firstSeen, true
}

// Forget removes key and reports whether it was present.
func (s *SeenSet) Forget(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[key]
	if ok {
		s.unlink(e)
	}
	return ok
}

// Len returns the number of stored keys, including expired ones not yet
// swept.
func (s *SeenSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Clear removes every key. Counters are kept.
func (s *SeenSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*seenEntry)
	s.head.next = s.tail
	s.tail.prev = s.head
}

// CleanupExpired drops every expired key and returns how many were removed.
func (s *SeenSet) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for e := s.tail.prev; e != s.head; {
		prev := e.prev
		if !now.Before(e.expiresAt) {
			s.unlink(e)
			removed++
		}
		e = prev
	}
	return removed
}

// Stats returns the current counters.
func (s *SeenSet) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		Hits:      s.hits,
		Misses:    s.misses,
		Evictions: s.evictions,
		Size:      len(s.items),
		Capacity:  s.capacity,
	}
}

// The helpers below must be called with mu held.

func (s *SeenSet) pushFront(e *seenEntry) {
	e.prev = s.head
	e.next = s.head.next
	s.head.next.prev = e
	s.head.next = e
}

func (s *SeenSet) moveToFront(e *seenEntry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	s.pushFront(e)
}

func (s *SeenSet) unlink(e *seenEntry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(s.items, e.key)
}

func (s *SeenSet) evictOldest() {
	if oldest := s.tail.prev; oldest != s.head {
		s.unlink(oldest)
		s.evictions++
	}
}
