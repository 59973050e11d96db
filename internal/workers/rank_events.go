package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/curata-io/curata/domain"
)

type RankTask struct {
	ContentID int64
	Delta     float64
}

type rankEventWorker struct {
	RankCache domain.RankCache
	ch        chan RankTask
}

var _ domain.RankEventWorker = (*rankEventWorker)(nil)

// NewRankEventWorker batches engagement score deltas into the hot-rank
// cache off the request path.
func NewRankEventWorker(cache domain.RankCache) *rankEventWorker {
	return &rankEventWorker{
		RankCache: cache,
		ch:        make(chan RankTask, 1024),
	}
}

// Send enqueues a score delta. The hot rank is best-effort, so a full
// channel drops the event instead of blocking the request.
func (s *rankEventWorker) Send(contentID int64, delta float64) {
	select {
	case s.ch <- RankTask{contentID, delta}:
	default:
		logrus.Info("RankEventWorker's channel is full, task dropped")
	}
}

func (s *rankEventWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	const batchSize = 100
	batch := make([]RankTask, 0, batchSize)
	for {
		select {
		case task := <-s.ch:
			batch = append(batch, task)
			if len(batch) == batchSize {
				s.flush(ctx, batch)
				batch = make([]RankTask, 0, batchSize)
			}
		case <-ticker.C:
			s.flush(ctx, batch)
			batch = make([]RankTask, 0, batchSize)
		case <-ctx.Done():
			logrus.Info("shutting down RankEventWorker, flushing remaining tasks...")
			s.flush(context.Background(), batch)
			return
		}
	}
}

func (s *rankEventWorker) flush(ctx context.Context, batch []RankTask) {
	if len(batch) == 0 {
		return
	}

	deltas := make(map[int64]float64)
	for i := range batch {
		deltas[batch[i].ContentID] += batch[i].Delta
	}

	for contentID, delta := range deltas {
		if delta == 0 {
			continue
		}
		if err := s.RankCache.IncrHotScore(ctx, contentID, delta); err != nil {
			logrus.Errorf("failed to IncrHotScore for content %d: %v", contentID, err)
		}
	}
}
