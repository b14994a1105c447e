package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/portfolio-admin/internal/domain/dashboard"
)

const SummaryKey = "dashboard:summary"

type redisSummaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSummaryCache(rdb *redis.Client, ttl time.Duration) dashboard.Cache {
	return &redisSummaryCache{rdb: rdb, ttl: ttl}
}

func (c *redisSummaryCache) Get(ctx context.Context) (*dashboard.Summary, bool, error) {
	raw, err := c.rdb.Get(ctx, SummaryKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get summary: %w", err)
	}

	var s dashboard.Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, fmt.Errorf("decode cached summary: %w", err)
	}
	return &s, true, nil
}

func (c *redisSummaryCache) Set(ctx context.Context, s *dashboard.Summary) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := c.rdb.Set(ctx, SummaryKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set summary: %w", err)
	}
	return nil
}

func (c *redisSummaryCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, SummaryKey).Err(); err != nil {
		return fmt.Errorf("redis del summary: %w", err)
	}
	return nil
}
