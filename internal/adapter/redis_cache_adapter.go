package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-interviewer/internal/domain"

	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	rdb redis.Cmdable
}

// NewRedisCacheAdapter accepts any go-redis client, cluster clients included.
func NewRedisCacheAdapter(rdb redis.Cmdable) domain.Cache {
	return &redisCache{rdb: rdb}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", domain.ErrCacheMiss
	case err != nil:
		return "", fmt.Errorf("redis GET %s: %w", key, err)
	}
	return val, nil
}

// Set with expiration 0 keeps the key until it is deleted.
func (c *redisCache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, expiration).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", key, err)
	}
	return nil
}
