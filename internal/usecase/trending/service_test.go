package trending

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curata-io/curata/domain"
)

type fakeContentRepo struct {
	contents []domain.Content
}

func (f *fakeContentRepo) GetByID(_ context.Context, id int64) (domain.Content, error) {
	for i := range f.contents {
		if f.contents[i].ID == id {
			return f.contents[i], nil
		}
	}
	return domain.Content{}, domain.ErrNotFound
}

func (f *fakeContentRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, err := f.GetByID(context.Background(), id)
	return err == nil, nil
}

func (f *fakeContentRepo) FetchCreatedSince(_ context.Context, since time.Time) ([]domain.Content, error) {
	var res []domain.Content
	for i := range f.contents {
		if !f.contents[i].CreatedAt.Before(since) {
			res = append(res, f.contents[i])
		}
	}
	return res, nil
}

func (f *fakeContentRepo) FetchIDs(_ context.Context, _, _ int64) ([]int64, error) {
	return nil, nil
}

type fakeCounterStore struct {
	mu     sync.Mutex
	values map[string]int64
}

func (f *fakeCounterStore) key(entity domain.ContentType, id int64, kind domain.CounterKind) string {
	return fmt.Sprintf("%s:%d:%s", entity, id, kind)
}

func (f *fakeCounterStore) set(entity domain.ContentType, id int64, kind domain.CounterKind, v int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.values == nil {
		f.values = make(map[string]int64)
	}
	f.values[f.key(entity, id, kind)] = v
}

func (f *fakeCounterStore) Increment(_ context.Context, entity domain.ContentType, id int64, kind domain.CounterKind, delta int64) (int64, error) {
	f.set(entity, id, kind, f.values[f.key(entity, id, kind)]+delta)
	return f.values[f.key(entity, id, kind)], nil
}

func (f *fakeCounterStore) Read(_ context.Context, entity domain.ContentType, id int64, kind domain.CounterKind) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[f.key(entity, id, kind)], nil
}

func (f *fakeCounterStore) MRead(_ context.Context, entity domain.ContentType, ids []int64, kind domain.CounterKind) (map[int64]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := make(map[int64]int64, len(ids))
	for _, id := range ids {
		res[id] = f.values[f.key(entity, id, kind)]
	}
	return res, nil
}

type fakeRankCache struct {
	scores []domain.ContentScore
}

func (f *fakeRankCache) IncrHotScore(_ context.Context, _ int64, _ float64) error {
	return nil
}

func (f *fakeRankCache) GetHotRank(_ context.Context, limit int64) ([]domain.ContentScore, error) {
	if len(f.scores) == 0 {
		return nil, domain.ErrCacheMiss
	}
	if int64(len(f.scores)) > limit {
		return f.scores[:limit], nil
	}
	return f.scores, nil
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func curation(id int64, age time.Duration, tags ...string) domain.Content {
	return domain.Content{
		ID:        id,
		Type:      domain.ContentCuration,
		Tags:      tags,
		CreatedAt: testNow.Add(-age),
	}
}

func newService(repo *fakeContentRepo, counters *fakeCounterStore, halfLife time.Duration) *Service {
	svc := NewService(repo, counters, &fakeRankCache{}, 7*24*time.Hour, halfLife)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestTrendingTagsOrderAndTieBreak(t *testing.T) {
	repo := &fakeContentRepo{contents: []domain.Content{
		curation(1, time.Hour, "golang", "backend"),
		curation(2, 2*time.Hour, "golang", "redis"),
		curation(3, 3*time.Hour, "golang", "backend"),
		curation(4, 4*time.Hour, "zsh", "redis"),
	}}
	svc := newService(repo, &fakeCounterStore{}, 0)

	tags, err := svc.TrendingTags(context.Background(), 10)
	require.NoError(t, err)

	// golang=3, then backend=2 and redis=2 tied (name ascending), then zsh=1
	expected := []domain.TagScore{
		{Tag: "golang", Score: 3},
		{Tag: "backend", Score: 2},
		{Tag: "redis", Score: 2},
		{Tag: "zsh", Score: 1},
	}
	assert.Equal(t, expected, tags)
}

func TestTrendingTagsWindowExcludesOldContent(t *testing.T) {
	repo := &fakeContentRepo{contents: []domain.Content{
		curation(1, time.Hour, "fresh"),
		curation(2, 30*24*time.Hour, "stale"),
	}}
	svc := newService(repo, &fakeCounterStore{}, 0)

	tags, err := svc.TrendingTags(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.TagScore{{Tag: "fresh", Score: 1}}, tags)
}

func TestTrendingTagsLimit(t *testing.T) {
	repo := &fakeContentRepo{contents: []domain.Content{
		curation(1, time.Hour, "a", "b", "c", "d"),
	}}
	svc := newService(repo, &fakeCounterStore{}, 0)

	tags, err := svc.TrendingTags(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	_, err = svc.TrendingTags(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestTrendingContentCompositeScore(t *testing.T) {
	repo := &fakeContentRepo{contents: []domain.Content{
		curation(1, time.Hour),
		curation(2, time.Hour),
		curation(3, time.Hour),
	}}
	counters := &fakeCounterStore{}
	// id 1: 100 views, 0 likes -> 100
	// id 2: 10 views, 30 likes -> 130
	// id 3: 50 views, 10 likes -> 90
	counters.set(domain.ContentCuration, 1, domain.CounterView, 100)
	counters.set(domain.ContentCuration, 2, domain.CounterView, 10)
	counters.set(domain.ContentCuration, 2, domain.CounterLike, 30)
	counters.set(domain.ContentCuration, 3, domain.CounterView, 50)
	counters.set(domain.ContentCuration, 3, domain.CounterLike, 10)

	svc := newService(repo, counters, 0)

	ids, err := svc.TrendingContent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1, 3}, ids)
}

func TestTrendingContentTiesByIDAscending(t *testing.T) {
	repo := &fakeContentRepo{contents: []domain.Content{
		curation(5, time.Hour),
		curation(2, time.Hour),
		curation(9, time.Hour),
	}}
	counters := &fakeCounterStore{}
	for _, id := range []int64{2, 5, 9} {
		counters.set(domain.ContentCuration, id, domain.CounterView, 10)
	}

	svc := newService(repo, counters, 0)

	ids, err := svc.TrendingContent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 5, 9}, ids)
}

func TestTrendingContentRecencyDecay(t *testing.T) {
	// equal raw engagement, one item a full half-life older
	repo := &fakeContentRepo{contents: []domain.Content{
		curation(1, 72*time.Hour),
		curation(2, time.Duration(0)),
	}}
	counters := &fakeCounterStore{}
	counters.set(domain.ContentCuration, 1, domain.CounterView, 100)
	counters.set(domain.ContentCuration, 2, domain.CounterView, 60)

	svc := newService(repo, counters, 72*time.Hour)

	// id 1 decays to 50, id 2 keeps 60
	ids, err := svc.TrendingContent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, ids)
}

func TestTrendingDeterministicSnapshots(t *testing.T) {
	repo := &fakeContentRepo{contents: []domain.Content{
		curation(1, time.Hour, "golang", "redis"),
		curation(2, 2*time.Hour, "golang", "mysql"),
		curation(3, 3*time.Hour, "mysql", "redis"),
	}}
	counters := &fakeCounterStore{}
	counters.set(domain.ContentCuration, 1, domain.CounterView, 7)
	counters.set(domain.ContentCuration, 2, domain.CounterView, 7)
	counters.set(domain.ContentCuration, 3, domain.CounterView, 7)

	svc := newService(repo, counters, 0)
	ctx := context.Background()

	firstTags, err := svc.TrendingTags(ctx, 10)
	require.NoError(t, err)
	firstContent, err := svc.TrendingContent(ctx, 10)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_ = i
		tags, err := svc.TrendingTags(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, firstTags, tags)

		ids, err := svc.TrendingContent(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, firstContent, ids)
	}
}

func TestTrendingContentEmptyWindow(t *testing.T) {
	svc := newService(&fakeContentRepo{}, &fakeCounterStore{}, 0)

	ids, err := svc.TrendingContent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFetchHotRankAbsorbsCacheMiss(t *testing.T) {
	svc := newService(&fakeContentRepo{}, &fakeCounterStore{}, 0)

	scores, err := svc.FetchHotRank(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestFetchHotRankPassesThrough(t *testing.T) {
	svc := NewService(&fakeContentRepo{}, &fakeCounterStore{}, &fakeRankCache{
		scores: []domain.ContentScore{
			{ContentID: 3, Score: 12},
			{ContentID: 1, Score: 5},
		},
	}, 7*24*time.Hour, 0)

	scores, err := svc.FetchHotRank(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.ContentScore{{ContentID: 3, Score: 12}}, scores)
}
