// Package cache provides an optional Redis-backed cache of validation
// responses, keyed by a hash of the submitted content. It is an HTTP-layer
// optimization only: the PII engine never reads from or writes to it, and
// entries expire after a bounded TTL.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/harishm17/smart-email/internal/config"
	"github.com/harishm17/smart-email/internal/pii"
)

// ResultCache caches DetectionResults by content hash.
type ResultCache struct {
	client *redis.Client
	config config.CacheConfig
	logger *zap.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// Stats reports cache performance counters.
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// New creates a result cache and verifies the Redis connection.
func New(cfg config.CacheConfig, logger *zap.Logger) (*ResultCache, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = cfg.MaxConnections
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Validation cache initialized",
		zap.String("redis_url", maskRedisURL(cfg.RedisURL)),
		zap.Int("max_connections", cfg.MaxConnections),
		zap.Duration("default_ttl", cfg.DefaultTTL))

	return &ResultCache{
		client: client,
		config: cfg,
		logger: logger,
	}, nil
}

// Get returns a cached result for content, or (nil, false) on a miss.
// Redis errors are logged and treated as misses so the caller always falls
// back to the engine.
func (rc *ResultCache) Get(ctx context.Context, content string) (*pii.DetectionResult, bool) {
	key := rc.key(content)

	data, err := rc.client.Get(ctx, key).Result()
	if err == redis.Nil {
		rc.misses.Add(1)
		return nil, false
	} else if err != nil {
		rc.logger.Error("Cache lookup failed", zap.Error(err))
		rc.misses.Add(1)
		return nil, false
	}

	var result pii.DetectionResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		rc.logger.Error("Failed to unmarshal cached result", zap.Error(err))
		rc.client.Del(ctx, key)
		rc.misses.Add(1)
		return nil, false
	}

	rc.hits.Add(1)
	rc.logger.Debug("Cache hit", zap.String("key", key))
	return &result, true
}

// Set stores a result for content with the configured TTL.
func (rc *ResultCache) Set(ctx context.Context, content string, result pii.DetectionResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result for caching: %w", err)
	}

	if err := rc.client.Set(ctx, rc.key(content), data, rc.config.DefaultTTL).Err(); err != nil {
		rc.logger.Error("Failed to cache result", zap.Error(err))
		return fmt.Errorf("failed to cache result: %w", err)
	}

	return nil
}

// GetStats returns cache performance statistics.
func (rc *ResultCache) GetStats() Stats {
	stats := Stats{
		Hits:   rc.hits.Load(),
		Misses: rc.misses.Load(),
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total) * 100
	}
	return stats
}

// Close closes the Redis connection.
func (rc *ResultCache) Close() error {
	if rc.client != nil {
		return rc.client.Close()
	}
	return nil
}

// key derives the cache key from a hash of the content so raw text never
// appears in Redis.
func (rc *ResultCache) key(content string) string {
	sum := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%s:val:%s", rc.config.KeyPrefix, hex.EncodeToString(sum[:])[:16])
}

// maskRedisURL masks credentials in a Redis URL for logging.
func maskRedisURL(url string) string {
	if strings.Contains(url, "@") {
		parts := strings.Split(url, "@")
		if len(parts) >= 2 {
			userPart := parts[0]
			if strings.Contains(userPart, ":") {
				userParts := strings.Split(userPart, ":")
				if len(userParts) >= 3 {
					userParts[len(userParts)-1] = "***"
					parts[0] = strings.Join(userParts, ":")
				}
			}
			return strings.Join(parts, "@")
		}
	}
	return url
}
