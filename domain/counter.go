package domain

import "context"

// CounterKind selects which engagement counter of an entity is addressed.
type CounterKind string

const (
	CounterView  CounterKind = "view"
	CounterLike  CounterKind = "like"
	CounterClick CounterKind = "click"
)

// CounterStore is a key -> integer durable store keyed by
// (entity type, entity id, counter kind). All mutations are atomic at the
// storage layer; callers never read-modify-write counter values.
//
// Implementations hold their own DB session so an increment commits in a
// unit of work independent of any transaction the caller is inside.
type CounterStore interface {
	// Increment atomically adds delta to the counter and returns the value
	// observed by a fresh read right after the increment.
	Increment(ctx context.Context, entity ContentType, id int64, kind CounterKind, delta int64) (int64, error)

	// Read returns the current counter value, zero if never incremented.
	Read(ctx context.Context, entity ContentType, id int64, kind CounterKind) (int64, error)

	// MRead returns counter values for many entities at once. Entities with
	// no counter row are reported as zero.
	MRead(ctx context.Context, entity ContentType, ids []int64, kind CounterKind) (map[int64]int64, error)
}
