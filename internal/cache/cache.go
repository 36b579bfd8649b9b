// Package cache provides the process-wide expiring key-value store that
// backs upload fetches and card pools. Entries expire lazily: a read past
// the deadline behaves as a miss and evicts the entry. There is no capacity
// bound and no background sweep; concurrent writes to the same key are
// last-write-wins, which is fine because every writer recomputes equivalent
// data from the same upstream source.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL applies when Set is called with a non-positive TTL and no
// store-level default was configured.
const DefaultTTL = 30 * time.Minute

type entry struct {
	data      any
	expiresAt time.Time
}

// Store is a TTL cache, not an LRU: nothing is evicted except by expiry or
// an explicit Delete. Construct one per process and inject it.
type Store struct {
	mu         sync.Mutex
	entries    map[string]entry
	defaultTTL time.Duration

	// now is swapped out in tests to drive expiry deterministically.
	now func() time.Time

	onHit  func()
	onMiss func()
}

// New creates a store with the given default TTL (DefaultTTL if non-positive).
func New(defaultTTL time.Duration) *Store {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Store{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Observe registers hit/miss callbacks, used to wire Prometheus counters
// without the cache depending on the metrics registry. Either may be nil.
func (s *Store) Observe(onHit, onMiss func()) {
	s.onHit = onHit
	s.onMiss = onMiss
}

// Get returns the live value for key. An expired entry is evicted and
// reported as a miss.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok && s.now().After(e.expiresAt) {
		delete(s.entries, key)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		if s.onMiss != nil {
			s.onMiss()
		}
		return nil, false
	}
	if s.onHit != nil {
		s.onHit()
	}
	return e.data, true
}

// Set stores data under key for ttl (the store default if non-positive).
func (s *Store) Set(key string, data any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	s.mu.Lock()
	s.entries[key] = entry{data: data, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
}

// Delete removes key and reports whether it was present.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	_, ok := s.entries[key]
	delete(s.entries, key)
	s.mu.Unlock()
	return ok
}

// Len returns the number of entries currently held, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// GetAs is a typed Get: a present entry of the wrong type counts as a miss.
func GetAs[T any](s *Store, key string) (T, bool) {
	var zero T
	v, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
