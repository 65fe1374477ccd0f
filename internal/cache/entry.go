package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Entry is a single cached value with TTL metadata.
type Entry[V any] struct {
	Key       string
	Value     V
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewEntry creates an entry created at now that lives for ttl.
// A non-positive ttl never expires.
func NewEntry[V any](key string, value V, now time.Time, ttl time.Duration) *Entry[V] {
	e := &Entry[V]{Key: key, Value: value, CreatedAt: now}
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}
	return e
}

// IsExpired reports whether the entry has expired at now.
func (e *Entry[V]) IsExpired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Age returns how long ago the entry was created.
func (e *Entry[V]) Age(now time.Time) time.Duration {
	return now.Sub(e.CreatedAt)
}

// Key derives a deterministic cache key from parts.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		// Length prefix keeps ("ab","c") and ("a","bc") apart.
		var n [8]byte
		l := uint64(len(p))
		for i := range n {
			n[i] = byte(l >> (8 * i))
		}
		h.Write(n[:])
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
