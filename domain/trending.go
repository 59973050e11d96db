package domain

import "context"

// TagScore is one row of a trending-tags result.
type TagScore struct {
	Tag   string
	Score int64
}

// ContentScore is one row of a ranked content result.
type ContentScore struct {
	ContentID int64
	Score     float64
}

// TrendingUsecase aggregates recent engagement into ranked lists. All
// operations are pure reads producing a fresh snapshot per call; results are
// deterministic for a fixed input, ties included.
type TrendingUsecase interface {
	// TrendingTags tallies tag occurrence over content created inside the
	// trailing window and returns the top tags by descending frequency,
	// ties by tag name ascending.
	TrendingTags(ctx context.Context, limit int64) ([]TagScore, error)

	// TrendingContent ranks content created inside the trailing window by a
	// recency-weighted composite of view and like counters, ties by id
	// ascending. Returns the ordered content IDs.
	TrendingContent(ctx context.Context, limit int64) ([]int64, error)

	// FetchHotRank reads the best-effort realtime rank maintained in the
	// hourly score buckets. Returns an empty slice when nothing has been
	// recorded inside the trailing day.
	FetchHotRank(ctx context.Context, limit int64) ([]ContentScore, error)
}

// RankCache maintains the realtime hot-rank score buckets.
type RankCache interface {
	// IncrHotScore adds delta to the content's score in the current hourly
	// bucket.
	IncrHotScore(ctx context.Context, contentID int64, delta float64) error

	// GetHotRank aggregates the trailing buckets and returns the top
	// entries by descending score.
	GetHotRank(ctx context.Context, limit int64) ([]ContentScore, error)
}

// RankEventWorker batches engagement events into the rank cache off the
// request path. Send never blocks; events may be dropped under pressure.
type RankEventWorker interface {
	Start(ctx context.Context)
	Send(contentID int64, delta float64)
}
