package trending

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/curata-io/curata/domain"
)

// likeWeight is how many views one like is worth in the composite score.
const likeWeight = 4.0

type Service struct {
	contentRepo  domain.ContentRepository
	counterStore domain.CounterStore
	rankCache    domain.RankCache
	window       time.Duration
	halfLife     time.Duration
	group        singleflight.Group
	now          func() time.Time
}

var _ domain.TrendingUsecase = (*Service)(nil)

// NewService creates the trending engine. window bounds the trailing
// interval of content considered; halfLife controls how fast the composite
// score of older content decays.
func NewService(contentRepo domain.ContentRepository, counterStore domain.CounterStore, rankCache domain.RankCache, window, halfLife time.Duration) *Service {
	return &Service{
		contentRepo:  contentRepo,
		counterStore: counterStore,
		rankCache:    rankCache,
		window:       window,
		halfLife:     halfLife,
		now:          time.Now,
	}
}

func (s *Service) TrendingTags(ctx context.Context, limit int64) ([]domain.TagScore, error) {
	if limit <= 0 {
		return nil, domain.ErrBadParamInput
	}

	// concurrent identical computations collapse into one
	key := fmt.Sprintf("tags:%d", limit)
	result, err, _ := s.group.Do(key, func() (any, error) {
		return s.buildTrendingTags(ctx, limit)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.TagScore), nil
}

func (s *Service) buildTrendingTags(ctx context.Context, limit int64) ([]domain.TagScore, error) {
	since := s.now().Add(-s.window)
	contents, err := s.contentRepo.FetchCreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}

	tally := make(map[string]int64)
	for i := range contents {
		for _, tag := range contents[i].Tags {
			tally[tag]++
		}
	}

	res := make([]domain.TagScore, 0, len(tally))
	for tag, score := range tally {
		res = append(res, domain.TagScore{Tag: tag, Score: score})
	}

	// descending frequency, ties by tag name ascending for determinism
	sort.Slice(res, func(i, j int) bool {
		if res[i].Score != res[j].Score {
			return res[i].Score > res[j].Score
		}
		return res[i].Tag < res[j].Tag
	})

	if int64(len(res)) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (s *Service) TrendingContent(ctx context.Context, limit int64) ([]int64, error) {
	if limit <= 0 {
		return nil, domain.ErrBadParamInput
	}

	key := fmt.Sprintf("content:%d", limit)
	result, err, _ := s.group.Do(key, func() (any, error) {
		return s.buildTrendingContent(ctx, limit)
	})
	if err != nil {
		return nil, err
	}
	return result.([]int64), nil
}

func (s *Service) buildTrendingContent(ctx context.Context, limit int64) ([]int64, error) {
	now := s.now()
	contents, err := s.contentRepo.FetchCreatedSince(ctx, now.Add(-s.window))
	if err != nil {
		return nil, err
	}
	if len(contents) == 0 {
		return []int64{}, nil
	}

	views, err := s.readCounters(ctx, contents, domain.CounterView)
	if err != nil {
		return nil, err
	}
	likes, err := s.readCounters(ctx, contents, domain.CounterLike)
	if err != nil {
		return nil, err
	}

	scored := make([]domain.ContentScore, len(contents))
	for i := range contents {
		c := &contents[i]
		raw := float64(views[c.ID]) + likeWeight*float64(likes[c.ID])
		scored[i] = domain.ContentScore{
			ContentID: c.ID,
			Score:     raw * s.recencyWeight(now.Sub(c.CreatedAt)),
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ContentID < scored[j].ContentID
	})

	if int64(len(scored)) > limit {
		scored = scored[:limit]
	}

	ids := make([]int64, len(scored))
	for i := range scored {
		ids[i] = scored[i].ContentID
	}
	return ids, nil
}

// recencyWeight halves the score every halfLife of age.
func (s *Service) recencyWeight(age time.Duration) float64 {
	if s.halfLife <= 0 || age <= 0 {
		return 1
	}
	return math.Pow(0.5, age.Hours()/s.halfLife.Hours())
}

// readCounters batches counter reads grouped by the entity type each item is
// stored under.
func (s *Service) readCounters(ctx context.Context, contents []domain.Content, kind domain.CounterKind) (map[int64]int64, error) {
	byType := make(map[domain.ContentType][]int64)
	for i := range contents {
		byType[contents[i].Type] = append(byType[contents[i].Type], contents[i].ID)
	}

	res := make(map[int64]int64, len(contents))
	for entity, ids := range byType {
		values, err := s.counterStore.MRead(ctx, entity, ids, kind)
		if err != nil {
			return nil, err
		}
		for id, v := range values {
			res[id] = v
		}
	}
	return res, nil
}

func (s *Service) FetchHotRank(ctx context.Context, limit int64) ([]domain.ContentScore, error) {
	if limit <= 0 {
		return nil, domain.ErrBadParamInput
	}

	res, err := s.rankCache.GetHotRank(ctx, limit)
	if errors.Is(err, domain.ErrCacheMiss) {
		return []domain.ContentScore{}, nil
	}
	if err != nil {
		logrus.Errorf("failed to GetHotRank from cache: %v", err)
		return nil, err
	}
	return res, nil
}
