package domain

import "context"

// SortType selects the recommendation scoring mode.
type SortType string

const (
	SortByViews    SortType = "views"
	SortByLikes    SortType = "likes"
	SortByCombined SortType = "combined"
)

// ParseSortType validates a user-supplied sort type string.
func ParseSortType(s string) (SortType, error) {
	switch SortType(s) {
	case SortByViews, SortByLikes, SortByCombined:
		return SortType(s), nil
	default:
		return "", ErrBadParamInput
	}
}

// PlaylistSummary is one ranked candidate in a recommendation result.
type PlaylistSummary struct {
	ID    int64
	Title string
	Views int64
	Likes int64
	Score float64
}

// RecommendWeights are the configuration constants of the combined score.
// They are tuned via configuration, never user-supplied.
type RecommendWeights struct {
	Views float64
	Likes float64
}

// PlaylistRepository defines the read-side contract against playlist storage.
type PlaylistRepository interface {
	// Exists reports whether the playlist exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// FetchPublicExcept returns all public playlists except the given one,
	// ordered by id ascending. Counter values are not filled here.
	FetchPublicExcept(ctx context.Context, excludeID int64) ([]PlaylistSummary, error)
}

// RecommendUsecase ranks public playlists against a reference playlist.
type RecommendUsecase interface {
	// Recommend returns all public playlists except the reference one,
	// ordered by the chosen scoring mode, ties by playlist id ascending.
	// Returns ErrNotFound if the reference playlist doesn't exist and an
	// empty slice (not an error) when no candidates qualify.
	Recommend(ctx context.Context, playlistID int64, sort SortType) ([]PlaylistSummary, error)
}
