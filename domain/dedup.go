package domain

import (
	"context"
	"time"
)

const (
	// ClickDedupTTL is the window during which repeated clicks from the
	// same (link, client identity) pair are suppressed.
	ClickDedupTTL = 10 * time.Minute
)

// DedupCache is a TTL key-value store with atomic set-if-absent semantics.
// Entries expire autonomously; nothing ever deletes them explicitly.
type DedupCache interface {
	// SetIfAbsent stores a presence marker under key unless one already
	// exists. Returns true when the key was absent (this caller won).
	SetIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
