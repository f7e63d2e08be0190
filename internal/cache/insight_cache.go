package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/packdash/backend-go/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	insightKeyPrefix     = "packdash:insight"
	insightScanBatchSize = 100
)

// InsightCache stores computed dashboard and watch-list payloads. Entries
// are keyed by view and week, and every write to clients or orders drops
// them all.
type InsightCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	InvalidateAll(ctx context.Context) error
}

type redisInsightCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopInsightCache struct{}

func NewInsightCache(cfg config.CacheConfig) (InsightCache, error) {
	if !cfg.Enabled {
		return NewNoopInsightCache(), nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return NewRedisInsightCache(client, ttl), nil
}

func NewRedisInsightCache(client *redis.Client, ttl time.Duration) InsightCache {
	return &redisInsightCache{client: client, ttl: ttl}
}

func NewNoopInsightCache() InsightCache {
	return noopInsightCache{}
}

func (c *redisInsightCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode insight cache %s: %w", key, err)
	}
	return true, nil
}

func (c *redisInsightCache) Set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode insight cache %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisInsightCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, insightKeyPrefix, insightScanBatchSize)
}

func (noopInsightCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (noopInsightCache) Set(context.Context, string, any) error         { return nil }
func (noopInsightCache) InvalidateAll(context.Context) error            { return nil }

// InsightKey builds the cache key of a view. Parts are normalised and
// hashed so arbitrary filter values stay within a fixed key length.
func InsightKey(view string, parts ...string) string {
	normalized := make([]string, 0, len(parts))
	for _, p := range parts {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(p)))
	}

	sum := sha1.Sum([]byte(strings.Join(normalized, "|")))
	return fmt.Sprintf("%s:%s:%s", insightKeyPrefix, view, hex.EncodeToString(sum[:]))
}
