package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/curata-io/curata/domain"
)

const (
	KeyHotHourlyRaw      = "engagement:hot:raw:%s"
	KeyHotAggregatedRank = "engagement:hot:rank"
	hotBucketLayout      = "2006010215"
	hotBucketCount       = 24
	hotBucketTTL         = 26 * time.Hour
	hotAggregatedRankTTL = 5 * time.Minute
)

type rankCache struct {
	client *redis.Client
}

var _ domain.RankCache = (*rankCache)(nil)

// NewRankCache creates the realtime hot-rank cache: engagement scores land
// in per-hour ZSET buckets and the trailing 24 buckets are aggregated on
// read into a short-lived rank key.
func NewRankCache(client *redis.Client) *rankCache {
	return &rankCache{client}
}

func (c *rankCache) IncrHotScore(ctx context.Context, contentID int64, delta float64) error {
	key := fmt.Sprintf(KeyHotHourlyRaw, time.Now().Format(hotBucketLayout))
	pipe := c.client.Pipeline()
	pipe.ZIncrBy(ctx, key, delta, strconv.FormatInt(contentID, 10))
	pipe.Expire(ctx, key, hotBucketTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *rankCache) GetHotRank(ctx context.Context, limit int64) ([]domain.ContentScore, error) {
	if c.client.Exists(ctx, KeyHotAggregatedRank).Val() > 0 {
		return c.fetchRankFromKey(ctx, KeyHotAggregatedRank, limit)
	}

	keys := make([]string, hotBucketCount)
	now := time.Now()
	for i := 0; i < hotBucketCount; i++ {
		keys[i] = fmt.Sprintf(KeyHotHourlyRaw, now.Add(time.Duration(-i)*time.Hour).Format(hotBucketLayout))
	}

	err := c.client.ZUnionStore(ctx, KeyHotAggregatedRank, &redis.ZStore{
		Keys:      keys,
		Aggregate: "SUM",
	}).Err()
	if err != nil {
		return nil, err
	}

	c.client.Expire(ctx, KeyHotAggregatedRank, hotAggregatedRankTTL)

	return c.fetchRankFromKey(ctx, KeyHotAggregatedRank, limit)
}

func (c *rankCache) fetchRankFromKey(ctx context.Context, key string, limit int64) ([]domain.ContentScore, error) {
	zRes, err := c.client.ZRevRangeWithScores(ctx, key, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}
	if len(zRes) == 0 {
		return nil, domain.ErrCacheMiss
	}

	res := make([]domain.ContentScore, 0, len(zRes))
	for _, z := range zRes {
		cid, _ := strconv.ParseInt(z.Member.(string), 10, 64)
		res = append(res, domain.ContentScore{
			ContentID: cid,
			Score:     z.Score,
		})
	}
	return res, nil
}
