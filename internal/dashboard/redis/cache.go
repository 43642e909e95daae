package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/frahmantamala/coursetrack/internal/dashboard"
	"github.com/redis/go-redis/v9"
)

// StatsCache stores the dashboard envelope in Redis so every instance of
// the service shares one cache. Values are JSON.
type StatsCache struct {
	client *redis.Client
}

func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

func (c *StatsCache) Get(ctx context.Context, key string) (*dashboard.Stats, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats dashboard.Stats
	if err := json.Unmarshal(payload, &stats); err != nil {
		// A corrupt entry is treated as a miss so it gets overwritten.
		return nil, nil
	}
	return &stats, nil
}

func (c *StatsCache) Set(ctx context.Context, key string, stats *dashboard.Stats, ttl time.Duration) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
