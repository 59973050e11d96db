package recommend

import (
	"context"
	"sort"

	"github.com/curata-io/curata/domain"
)

type Service struct {
	playlistRepo domain.PlaylistRepository
	counterStore domain.CounterStore
	weights      domain.RecommendWeights
}

var _ domain.RecommendUsecase = (*Service)(nil)

// NewService creates the playlist recommendation scorer. The weights belong
// to the combined mode and come from configuration, never from callers.
func NewService(playlistRepo domain.PlaylistRepository, counterStore domain.CounterStore, weights domain.RecommendWeights) *Service {
	return &Service{
		playlistRepo: playlistRepo,
		counterStore: counterStore,
		weights:      weights,
	}
}

func (s *Service) Recommend(ctx context.Context, playlistID int64, sortType domain.SortType) ([]domain.PlaylistSummary, error) {
	exists, err := s.playlistRepo.Exists(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	candidates, err := s.playlistRepo.FetchPublicExcept(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []domain.PlaylistSummary{}, nil
	}

	ids := make([]int64, len(candidates))
	for i := range candidates {
		ids[i] = candidates[i].ID
	}

	views, err := s.counterStore.MRead(ctx, domain.ContentPlaylist, ids, domain.CounterView)
	if err != nil {
		return nil, err
	}
	likes, err := s.counterStore.MRead(ctx, domain.ContentPlaylist, ids, domain.CounterLike)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		candidates[i].Views = views[candidates[i].ID]
		candidates[i].Likes = likes[candidates[i].ID]
	}

	switch sortType {
	case domain.SortByViews:
		for i := range candidates {
			candidates[i].Score = float64(candidates[i].Views)
		}
	case domain.SortByLikes:
		for i := range candidates {
			candidates[i].Score = float64(candidates[i].Likes)
		}
	case domain.SortByCombined:
		s.scoreCombined(candidates)
	default:
		return nil, domain.ErrBadParamInput
	}

	// candidates arrive ordered by id ascending, so a stable sort keeps the
	// mandated tie order
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates, nil
}

// scoreCombined applies min-max normalization over the candidate set before
// weighting, so views (typically orders of magnitude larger) cannot drown
// out likes. A column where every candidate has the same value normalizes
// to zero.
func (s *Service) scoreCombined(candidates []domain.PlaylistSummary) {
	minViews, maxViews := candidates[0].Views, candidates[0].Views
	minLikes, maxLikes := candidates[0].Likes, candidates[0].Likes
	for i := range candidates {
		minViews = min(minViews, candidates[i].Views)
		maxViews = max(maxViews, candidates[i].Views)
		minLikes = min(minLikes, candidates[i].Likes)
		maxLikes = max(maxLikes, candidates[i].Likes)
	}

	normalize := func(v, lo, hi int64) float64 {
		if hi == lo {
			return 0
		}
		return float64(v-lo) / float64(hi-lo)
	}

	for i := range candidates {
		nv := normalize(candidates[i].Views, minViews, maxViews)
		nl := normalize(candidates[i].Likes, minLikes, maxLikes)
		candidates[i].Score = s.weights.Views*nv + s.weights.Likes*nl
	}
}
