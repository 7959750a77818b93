package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/logger"
	"github.com/jonathan/job-assistant/internal/metrics"
)

// DefaultCacheTTL is how long cleaned page text stays cached.
const DefaultCacheTTL = 24 * time.Hour

const cacheKeyPrefix = "job-assistant:page-text:"

// Cache stores cleaned page text by URL. Get reports ok=false on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisCache is a Cache backed by a Redis server.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache parses redisURL and verifies connectivity.
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// Get returns the cached value for key.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key with the given expiry.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Close releases the Redis connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// CachedFetcher wraps a TextFetcher with a cache of cleaned text.
// Cache failures are logged and otherwise ignored; only fetch errors reach the caller.
type CachedFetcher struct {
	next   TextFetcher
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedFetcher creates a cached fetcher. A nil cache disables caching.
func NewCachedFetcher(next TextFetcher, cache Cache, ttl time.Duration, log *zap.Logger) *CachedFetcher {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedFetcher{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.OrNop(log),
	}
}

// FetchCleanText serves cached text when present, otherwise fetches and stores it.
// Failed fetches are never cached.
func (f *CachedFetcher) FetchCleanText(ctx context.Context, urlStr string) (string, error) {
	if f.cache == nil {
		return f.next.FetchCleanText(ctx, urlStr)
	}

	key := CacheKey(urlStr)
	text, ok, err := f.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.PageCacheTotal.WithLabelValues("error").Inc()
		f.logger.Warn("page cache read failed", zap.String("url", urlStr), zap.Error(err))
	case ok:
		metrics.PageCacheTotal.WithLabelValues("hit").Inc()
		f.logger.Debug("page cache hit", zap.String("url", urlStr))
		return text, nil
	default:
		metrics.PageCacheTotal.WithLabelValues("miss").Inc()
	}

	text, err = f.next.FetchCleanText(ctx, urlStr)
	if err != nil {
		return "", err
	}

	if err := f.cache.Set(ctx, key, text, f.ttl); err != nil {
		f.logger.Warn("page cache write failed", zap.String("url", urlStr), zap.Error(err))
	}
	return text, nil
}

// CacheKey derives the cache key for a URL.
func CacheKey(urlStr string) string {
	sum := sha256.Sum256([]byte(urlStr))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
