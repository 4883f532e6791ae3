package logic

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tennisframework/tennis-api/internal/models"
)

const performanceKeyPrefix = "tennis:performance:"

// PerformanceCache stores player summaries in Redis keyed by snapshot version,
// so a reload with different data never serves stale entries.
// Redis failures are logged and treated as misses.
type PerformanceCache struct {
	client RedisClient
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewPerformanceCache(client RedisClient, ttl time.Duration, logger *zap.SugaredLogger) *PerformanceCache {
	return &PerformanceCache{client: client, ttl: ttl, logger: logger}
}

func performanceKey(version, player string) string {
	return performanceKeyPrefix + version + ":" + player
}

// Get returns the cached summary for player under version.
func (c *PerformanceCache) Get(ctx context.Context, version, player string) (models.PerformanceSummary, bool) {
	var s models.PerformanceSummary

	raw, err := c.client.Get(ctx, performanceKey(version, player)).Result()
	if errors.Is(err, redis.Nil) {
		cacheRequestsTotal.WithLabelValues("miss").Inc()
		return s, false
	}
	if err != nil {
		cacheRequestsTotal.WithLabelValues("error").Inc()
		c.logger.Warnw("Performance cache read failed", "player", player, "error", err)
		return s, false
	}
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		cacheRequestsTotal.WithLabelValues("error").Inc()
		c.logger.Warnw("Performance cache entry is corrupt", "player", player, "error", err)
		return s, false
	}

	cacheRequestsTotal.WithLabelValues("hit").Inc()
	return s, true
}

// Set stores s under version.
func (c *PerformanceCache) Set(ctx context.Context, version string, s models.PerformanceSummary) {
	payload, err := json.Marshal(s)
	if err != nil {
		c.logger.Warnw("Failed to encode performance summary", "player", s.Player, "error", err)
		return
	}
	if err := c.client.Set(ctx, performanceKey(version, s.Player), payload, c.ttl).Err(); err != nil {
		c.logger.Warnw("Performance cache write failed", "player", s.Player, "error", err)
	}
}
