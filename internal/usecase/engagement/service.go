package engagement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/curata-io/curata/domain"
	"github.com/curata-io/curata/internal/metrics"
)

// Hot-rank score deltas per event kind. Likes weigh more than clicks, clicks
// more than views; an unlike takes its contribution back.
const (
	hotScoreView  = 1.0
	hotScoreClick = 2.0
	hotScoreLike  = 3.0
)

type Service struct {
	contentRepo  domain.ContentRepository
	likeRepo     domain.LikeRecordRepository
	counterStore domain.CounterStore
	dedupCache   domain.DedupCache
	bloomRepo    domain.BloomRepository
	rankWorker   domain.RankEventWorker
	dedupTTL     time.Duration
}

var _ domain.EngagementUsecase = (*Service)(nil)

// NewService will create a new engagement service object
func NewService(
	contentRepo domain.ContentRepository,
	likeRepo domain.LikeRecordRepository,
	counterStore domain.CounterStore,
	dedupCache domain.DedupCache,
	bloomRepo domain.BloomRepository,
	rankWorker domain.RankEventWorker,
	dedupTTL time.Duration,
) *Service {
	if dedupTTL <= 0 {
		dedupTTL = domain.ClickDedupTTL
	}
	return &Service{
		contentRepo:  contentRepo,
		likeRepo:     likeRepo,
		counterStore: counterStore,
		dedupCache:   dedupCache,
		bloomRepo:    bloomRepo,
		rankWorker:   rankWorker,
		dedupTTL:     dedupTTL,
	}
}

// InitBloomFilter pages over every content ID and loads them into the bloom
// filter, so NotFound answers don't hit the DB on the hot path.
func (s *Service) InitBloomFilter(ctx context.Context) error {
	const pageSize = 1000
	var cursor int64
	for {
		ids, err := s.contentRepo.FetchIDs(ctx, cursor, pageSize)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := s.bloomRepo.BulkAdd(ctx, ids); err != nil {
			return err
		}
		cursor = ids[len(ids)-1]
	}
}

// getContent resolves a content item, letting the bloom filter short-circuit
// IDs that definitely don't exist. A bloom error falls through to the DB.
func (s *Service) getContent(ctx context.Context, id int64) (domain.Content, error) {
	exists, err := s.bloomRepo.Exists(ctx, id)
	if err == nil && !exists {
		logrus.Warnf("bloom filter says content %d does not exist", id)
		return domain.Content{}, domain.ErrNotFound
	}

	return s.contentRepo.GetByID(ctx, id)
}

func (s *Service) RecordView(ctx context.Context, contentID int64) error {
	content, err := s.getContent(ctx, contentID)
	if err != nil {
		return err
	}

	// The counter store commits this on its own session, so the view stays
	// recorded even if the surrounding request fails afterwards.
	if _, err := s.counterStore.Increment(ctx, content.Type, content.ID, domain.CounterView, 1); err != nil {
		return err
	}

	metrics.ViewsRecorded.Inc()
	s.rankWorker.Send(content.ID, hotScoreView)
	return nil
}

func clickDedupKey(linkID int64, clientIdentity string) string {
	return fmt.Sprintf("click:link:%d:client:%s", linkID, clientIdentity)
}

func (s *Service) RegisterClick(ctx context.Context, linkID int64, clientIdentity string) (bool, error) {
	content, err := s.getContent(ctx, linkID)
	if err != nil {
		return false, err
	}
	if content.Type != domain.ContentLink {
		return false, domain.ErrNotFound
	}

	wasAbsent, err := s.dedupCache.SetIfAbsent(ctx, clickDedupKey(linkID, clientIdentity), s.dedupTTL)
	if err != nil {
		// fail open: losing dedup accuracy beats losing the analytics signal
		logrus.Warnf("dedup cache unavailable, counting click on link %d without dedup: %v", linkID, err)
		metrics.DedupFailOpen.Inc()
		wasAbsent = true
	}

	if !wasAbsent {
		metrics.ClicksSuppressed.Inc()
		return false, nil
	}

	if _, err := s.counterStore.Increment(ctx, domain.ContentLink, linkID, domain.CounterClick, 1); err != nil {
		return false, err
	}

	metrics.ClicksCounted.Inc()
	s.rankWorker.Send(linkID, hotScoreClick)
	return true, nil
}

func (s *Service) ToggleLike(ctx context.Context, memberID, contentID int64) (domain.LikeState, error) {
	content, err := s.getContent(ctx, contentID)
	if err != nil {
		return "", err
	}

	liked, err := s.likeRepo.Exists(ctx, memberID, contentID)
	if err != nil {
		return "", err
	}

	if liked {
		err = s.likeRepo.Delete(ctx, memberID, contentID)
		if errors.Is(err, domain.ErrNotFound) {
			// a concurrent toggle already removed the record
			return domain.Unliked, nil
		}
		if err != nil {
			return "", err
		}

		if _, err := s.counterStore.Increment(ctx, content.Type, contentID, domain.CounterLike, -1); err != nil {
			return "", err
		}

		metrics.LikeToggles.WithLabelValues(string(domain.Unliked)).Inc()
		s.rankWorker.Send(contentID, -hotScoreLike)
		return domain.Unliked, nil
	}

	err = s.likeRepo.Insert(ctx, memberID, contentID)
	if errors.Is(err, domain.ErrConflict) {
		// a concurrent like won the insert; membership already holds, so
		// the counter must not move again
		return domain.Liked, nil
	}
	if err != nil {
		return "", err
	}

	if _, err := s.counterStore.Increment(ctx, content.Type, contentID, domain.CounterLike, 1); err != nil {
		return "", err
	}

	metrics.LikeToggles.WithLabelValues(string(domain.Liked)).Inc()
	s.rankWorker.Send(contentID, hotScoreLike)
	return domain.Liked, nil
}
