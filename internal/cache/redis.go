package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-interviewer/internal/config"

	"github.com/redis/go-redis/v9"
)

// ErrRedisNotConfigured is returned when no address is set. Callers treat it
// like an unreachable server and run without cache and locks.
var ErrRedisNotConfigured = errors.New("redis address is not configured")

const (
	pingTimeout  = 3 * time.Second
	dialTimeout  = 2 * time.Second
	opTimeout    = time.Second
	minIdleConns = 2
)

// NewRedisClient connects and pings once. A client that fails the ping is closed.
func NewRedisClient(redisCfg config.RedisConfig) (*redis.Client, error) {
	if redisCfg.Address == "" {
		return nil, ErrRedisNotConfigured
	}

	client := redis.NewClient(&redis.Options{
		Addr:         redisCfg.Address,
		Password:     redisCfg.Password,
		DB:           redisCfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
		MinIdleConns: minIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s (db %d): %w", redisCfg.Address, redisCfg.DB, err)
	}
	return client, nil
}
