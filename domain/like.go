package domain

import (
	"context"
	"time"
)

// LikeState is the membership state reported after a toggle.
type LikeState string

const (
	Liked   LikeState = "liked"
	Unliked LikeState = "unliked"
)

// LikeRecord is representing a like membership record.
// Existence of the (MemberID, ContentID) pair means "member currently
// likes item"; at most one active record exists per pair.
type LikeRecord struct {
	MemberID  int64
	ContentID int64
	CreatedAt time.Time
}

// LikeRecordRepository defines the contract for like membership persistence.
// The (member_id, content_id) uniqueness constraint is the backstop for
// concurrent toggles; no application-level lock is involved.
type LikeRecordRepository interface {
	// Exists reports whether the member currently likes the item.
	Exists(ctx context.Context, memberID, contentID int64) (bool, error)

	// Insert creates the like record.
	// Returns ErrConflict when the record already exists.
	Insert(ctx context.Context, memberID, contentID int64) error

	// Delete removes the like record.
	// Returns ErrNotFound when no record was there to remove.
	Delete(ctx context.Context, memberID, contentID int64) error

	// CountByContent returns the membership cardinality for one item.
	CountByContent(ctx context.Context, contentID int64) (int64, error)
}
