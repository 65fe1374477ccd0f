// Package cache provides an in-memory TTL cache used to memoize view
// derivations.
//
// Keys are SHA256 digests of their parts so callers can key on arbitrary
// strings (document version, encoded view state) without worrying about
// separators. Entries expire after a TTL and the oldest entry is evicted
// once the store is full.
package cache
