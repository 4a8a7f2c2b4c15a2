// Package cache implements the two cache tiers in front of the origin
// API and the fingerprint keys both tiers are addressed by.
package cache

import (
	"sync"
	"time"
)

// Local is the fast, process-private cache tier. Entries expire after
// a fixed TTL; an expired entry is removed on the read that finds it.
// There is no capacity bound; entries churn out via TTL only.
type Local struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]localEntry
	now     func() time.Time
}

type localEntry struct {
	value  []byte
	expiry time.Time
}

// NewLocal creates a local tier with the given TTL.
func NewLocal(ttl time.Duration) *Local {
	return &Local{
		ttl:     ttl,
		entries: make(map[string]localEntry),
		now:     time.Now,
	}
}

// Get returns the stored value for key, or false on a miss. Expired
// entries read as misses and are evicted eagerly.
func (l *Local) Get(key string) ([]byte, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		return nil, false
	}
	if l.now().After(e.expiry) {
		delete(l.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with a fresh TTL.
func (l *Local) Set(key string, value []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[key] = localEntry{
		value:  value,
		expiry: l.now().Add(l.ttl),
	}
}

// Len returns the number of stored entries, expired or not.
func (l *Local) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
