package domain

import "context"

// BloomRepository answers "does this content ID possibly exist" without
// touching the primary store. A false answer is definitive; a true answer
// still needs a cache/DB lookup.
type BloomRepository interface {
	// Add puts an ID into the filter.
	Add(ctx context.Context, id int64) error

	// Exists checks whether an ID may exist.
	Exists(ctx context.Context, id int64) (bool, error)

	// BulkAdd loads many IDs at once, used when warming the filter.
	BulkAdd(ctx context.Context, ids []int64) error
}
