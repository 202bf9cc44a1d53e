package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

const (
	statsKey = "bloglist:stats"
	genKey   = "bloglist:stats:gen"
	statsTTL = 5 * time.Minute
)

var errStaleGeneration = errors.New("stats generation moved on")

// StatsCache keeps the last computed blog statistics under a single key.
// Writes to blogs invalidate it by bumping a generation counter; Set is a
// WATCH transaction on that counter and drops stats computed before the
// latest invalidation. The TTL bounds staleness if an invalidation is lost.
type StatsCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client redis.UniversalClient) *StatsCache {
	return &StatsCache{client: client, ttl: statsTTL}
}

// Get returns the cached statistics, or nil on a miss, along with the
// current generation.
func (c *StatsCache) Get(ctx context.Context) (*domain.BlogStats, uint64, error) {
	vals, err := c.client.MGet(ctx, statsKey, genKey).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("stats cache get: %w", err)
	}

	gen, err := parseGeneration(vals[1])
	if err != nil {
		return nil, 0, err
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, gen, nil
	}

	var stats domain.BlogStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, 0, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, gen, nil
}

func (c *StatsCache) Set(ctx context.Context, stats domain.BlogStats, gen uint64) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		current, err := parseGeneration(cur)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, statsKey, raw, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil, errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		return nil
	default:
		return fmt.Errorf("stats cache set: %w", err)
	}
}

func (c *StatsCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Del(ctx, statsKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("stats cache invalidate: %w", err)
	}
	return nil
}

// parseGeneration reads the counter as returned by GET or MGET. A missing
// counter is generation zero.
func parseGeneration(v any) (uint64, error) {
	s, ok := v.(string)
	if !ok || s == "" {
		return 0, nil
	}
	gen, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("stats cache generation %q: %w", s, err)
	}
	return gen, nil
}
