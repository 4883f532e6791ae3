package logic

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient defines the subset of the Redis client used by the performance cache
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}
