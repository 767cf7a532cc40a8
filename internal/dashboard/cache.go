package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/submissions-dashboard/internal/submissions"
)

// ErrCacheMiss is returned by Cache.Load when nothing is stored.
var ErrCacheMiss = errors.New("dashboard: snapshot cache miss")

const defaultSnapshotKey = "dashboard:snapshot"

type cachedSnapshot struct {
	UpdatedAt time.Time                `json:"updated_at"`
	Records   []submissions.Submission `json:"records"`
}

// RedisCache stores the last good record set as one JSON value.
type RedisCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisCache stores snapshots under dashboard:snapshot with the given TTL
// (zero keeps them forever).
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if client == nil {
		panic("dashboard: redis client required")
	}
	return &RedisCache{client: client, key: defaultSnapshotKey, ttl: ttl}
}

func (c *RedisCache) Load(ctx context.Context) ([]submissions.Submission, time.Time, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, time.Time{}, ErrCacheMiss
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("dashboard: redis get: %w", err)
	}
	var snap cachedSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, time.Time{}, fmt.Errorf("dashboard: decode cached snapshot: %w", err)
	}
	return snap.Records, snap.UpdatedAt, nil
}

func (c *RedisCache) Save(ctx context.Context, records []submissions.Submission, updatedAt time.Time) error {
	raw, err := json.Marshal(cachedSnapshot{UpdatedAt: updatedAt, Records: records})
	if err != nil {
		return fmt.Errorf("dashboard: encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("dashboard: redis set: %w", err)
	}
	return nil
}
