package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

// unreachableClient points at a port nothing listens on, so every command
// fails fast with a dial error.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestStatsCache_ErrorsAreReturned(t *testing.T) {
	cache := NewStatsCache(unreachableClient(t))
	ctx := context.Background()

	stats, _, err := cache.Get(ctx)
	assert.Error(t, err)
	assert.Nil(t, stats)

	assert.Error(t, cache.Set(ctx, domain.BlogStats{Count: 1}, 0))
	assert.Error(t, cache.Invalidate(ctx))
}

func TestConnect_FailsWithoutServer(t *testing.T) {
	client, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	require.Error(t, err)
	assert.Nil(t, client)
}

func TestPinger_ReportsFailure(t *testing.T) {
	assert.Error(t, NewPinger(unreachableClient(t)).Ping(context.Background()))
}

func newMiniredisCache(t *testing.T) (*StatsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStatsCache(client), mr
}

func TestStatsCache_MissReturnsNil(t *testing.T) {
	cache, _ := newMiniredisCache(t)

	stats, gen, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, stats)
	assert.Zero(t, gen)
}

func TestStatsCache_SetThenGet(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		stats domain.BlogStats
	}{
		{"empty collection", domain.BlogStats{}},
		{"with favorite", domain.BlogStats{
			Count:      2,
			TotalLikes: 12,
			Favorite:   &domain.FavoriteBlog{Title: "React patterns", Author: "Michael Chan", Likes: 7},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache, mr := newMiniredisCache(t)

			require.NoError(t, cache.Set(ctx, tt.stats, 0))
			assert.Equal(t, statsTTL, mr.TTL(statsKey))

			got, _, err := cache.Get(ctx)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.stats, *got)
		})
	}
}

func TestStatsCache_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	cache, mr := newMiniredisCache(t)

	require.NoError(t, cache.Set(ctx, domain.BlogStats{Count: 1}, 0))
	mr.FastForward(statsTTL + time.Second)

	got, _, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStatsCache_InvalidateDeletesKey(t *testing.T) {
	ctx := context.Background()
	cache, mr := newMiniredisCache(t)

	require.NoError(t, cache.Set(ctx, domain.BlogStats{Count: 3, TotalLikes: 9}, 0))
	require.NoError(t, cache.Invalidate(ctx))
	assert.False(t, mr.Exists(statsKey))

	got, gen, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, uint64(1), gen)

	// Invalidating an absent key is not an error.
	require.NoError(t, cache.Invalidate(ctx))
}

func TestStatsCache_SetAfterInvalidateIsDropped(t *testing.T) {
	ctx := context.Background()
	cache, mr := newMiniredisCache(t)

	_, gen, err := cache.Get(ctx)
	require.NoError(t, err)

	// A write between reading the generation and storing the result.
	require.NoError(t, cache.Invalidate(ctx))

	require.NoError(t, cache.Set(ctx, domain.BlogStats{Count: 1}, gen))
	assert.False(t, mr.Exists(statsKey))

	_, gen, err = cache.Get(ctx)
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, domain.BlogStats{Count: 2}, gen))

	got, _, err := cache.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Count)
}
