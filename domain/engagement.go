package domain

import "context"

// EngagementUsecase defines the business logic contract for the write side
// of the engagement core: views, clicks and like toggles.
type EngagementUsecase interface {
	// RecordView increments the view counter of a content item by exactly
	// one. The increment commits in its own unit of work: it stays durable
	// even if the surrounding request later fails. Not idempotent; callers
	// needing "one view per session" must deduplicate before calling.
	// Returns ErrNotFound if the item doesn't exist.
	RecordView(ctx context.Context, contentID int64) error

	// RegisterClick decides whether a click on a link should be counted.
	// The first click per (link, client identity) pair within the dedup
	// window counts; later ones are suppressed. Returns whether this click
	// was counted. Returns ErrNotFound if the link doesn't exist.
	RegisterClick(ctx context.Context, linkID int64, clientIdentity string) (bool, error)

	// ToggleLike flips the member's like membership on a content item and
	// keeps the like counter equal to the membership cardinality.
	// Toggling twice in sequence restores the original state.
	// Returns ErrNotFound if the item doesn't exist.
	ToggleLike(ctx context.Context, memberID, contentID int64) (LikeState, error)
}
