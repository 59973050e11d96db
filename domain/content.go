package domain

import (
	"context"
	"time"
)

// ContentType tags what kind of item a content row represents.
type ContentType string

const (
	ContentCuration ContentType = "curation"
	ContentLink     ContentType = "link"
	ContentPlaylist ContentType = "playlist"
)

// Content is representing a content item owned by the CRUD layer.
// The engagement core only references it by ID; the fields here are the
// minimum the ranking side needs (tags and creation time for windowing).
type Content struct {
	ID        int64
	Type      ContentType
	Title     string
	MemberID  int64
	Tags      []string
	Public    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContentRepository defines the read-side contract against the content store.
type ContentRepository interface {
	// GetByID retrieves a single content item.
	// Returns ErrNotFound if the item doesn't exist.
	GetByID(ctx context.Context, id int64) (Content, error)

	// Exists reports whether the content item exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// FetchCreatedSince returns content items created at or after the given
	// instant, tags included, ordered by id ascending.
	FetchCreatedSince(ctx context.Context, since time.Time) ([]Content, error)

	// FetchIDs pages over all content IDs, used to warm the bloom filter.
	FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error)
}
