package dashboard

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/submissions-dashboard/internal/submissions"
)

func TestRedisCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRedisCache(client, time.Hour)
	ctx := context.Background()

	_, _, err := cache.Load(ctx)
	require.ErrorIs(t, err, ErrCacheMiss)

	records := []submissions.Submission{{Name: "Alice", ContactNumber: "0771234567"}}
	require.NoError(t, cache.Save(ctx, records, fixedNow))
	assert.Equal(t, time.Hour, mr.TTL(defaultSnapshotKey))

	got, updatedAt, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, got)
	assert.True(t, fixedNow.Equal(updatedAt))

	mr.FastForward(2 * time.Hour)
	_, _, err = cache.Load(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheCorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, mr.Set(defaultSnapshotKey, "{"))

	_, _, err := NewRedisCache(client, 0).Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestServiceWarmsFromRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRedisCache(client, time.Hour)

	first := newTestService(&fakeFetcher{records: []submissions.Submission{{Name: "Alice"}}}, cache)
	_, err := first.Refresh(context.Background())
	require.NoError(t, err)

	second := newTestService(&fakeFetcher{}, cache)
	require.NoError(t, second.Warm(context.Background()))
	snap := second.Snapshot()
	require.Len(t, snap.Records, 1)
	assert.Equal(t, "Alice", snap.Records[0].Name)
}
