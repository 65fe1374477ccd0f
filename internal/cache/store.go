package cache

import (
	"container/list"
	"sync"
	"time"
)

// Stats reports cache effectiveness.
type Stats struct {
	Hits      int
	Misses    int
	Evictions int
	Size      int
}

// MemoryStore is a bounded in-memory TTL cache.
// Thread-safe for concurrent access.
type MemoryStore[V any] struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	// order holds keys from least to most recently used.
	order   *list.List
	entries map[string]*list.Element
	stats   Stats
}

type element[V any] struct {
	entry *Entry[V]
}

// Option configures a MemoryStore.
type Option[V any] func(*MemoryStore[V])

// WithClock overrides the time source; tests use it to expire entries.
func WithClock[V any](now func() time.Time) Option[V] {
	return func(s *MemoryStore[V]) { s.now = now }
}

// NewMemoryStore creates a store holding at most maxEntries entries for ttl.
// maxEntries <= 0 disables caching; ttl <= 0 means entries never expire.
func NewMemoryStore[V any](maxEntries int, ttl time.Duration, opts ...Option[V]) *MemoryStore[V] {
	s := &MemoryStore[V]{
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		order:      list.New(),
		entries:    make(map[string]*list.Element),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enabled reports whether the store keeps anything at all.
func (s *MemoryStore[V]) Enabled() bool {
	return s != nil && s.maxEntries > 0
}

// Get returns the value stored under key if present and not expired.
func (s *MemoryStore[V]) Get(key string) (V, bool) {
	var zero V
	if !s.Enabled() {
		return zero, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key]
	if !ok {
		s.stats.Misses++
		return zero, false
	}
	e := el.Value.(element[V]).entry
	if e.IsExpired(s.now()) {
		s.removeLocked(el)
		s.stats.Misses++
		return zero, false
	}

	s.order.MoveToBack(el)
	s.stats.Hits++
	return e.Value, true
}

// Set stores value under key, evicting the least recently used entry when full.
func (s *MemoryStore[V]) Set(key string, value V) {
	if !s.Enabled() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := NewEntry(key, value, s.now(), s.ttl)
	if el, ok := s.entries[key]; ok {
		el.Value = element[V]{entry: entry}
		s.order.MoveToBack(el)
		return
	}

	for s.order.Len() >= s.maxEntries {
		s.removeLocked(s.order.Front())
		s.stats.Evictions++
	}
	s.entries[key] = s.order.PushBack(element[V]{entry: entry})
}

// Delete removes key. Deleting a missing key is a no-op.
func (s *MemoryStore[V]) Delete(key string) {
	if !s.Enabled() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.entries[key]; ok {
		s.removeLocked(el)
	}
}

// Clear drops every entry.
func (s *MemoryStore[V]) Clear() {
	if !s.Enabled() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.order.Init()
	s.entries = make(map[string]*list.Element)
}

// CleanupExpired removes expired entries and returns how many were removed.
func (s *MemoryStore[V]) CleanupExpired() int {
	if !s.Enabled() {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for el := s.order.Front(); el != nil; {
		next := el.Next()
		if el.Value.(element[V]).entry.IsExpired(now) {
			s.removeLocked(el)
			removed++
		}
		el = next
	}
	return removed
}

// Stats returns a snapshot of hit/miss counters.
func (s *MemoryStore[V]) Stats() Stats {
	if !s.Enabled() {
		return Stats{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stats
	st.Size = s.order.Len()
	return st
}

func (s *MemoryStore[V]) removeLocked(el *list.Element) {
	s.order.Remove(el)
	delete(s.entries, el.Value.(element[V]).entry.Key)
}
