package adapter

import (
	"context"
	"time"

	"ai-interviewer/internal/cache"
	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultLockTTL   = 90 * time.Second
	defaultLockWait  = 5 * time.Second
	lockRetryBackoff = 50 * time.Millisecond
)

// releaseScript deletes the lock only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisDeviceLocker is a SET NX PX lock keyed by device id.
type RedisDeviceLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
}

// NewRedisDeviceLocker holds each lock for at most ttl and waits at most wait to get it.
// Zero values pick the defaults.
func NewRedisDeviceLocker(client *redis.Client, ttl, wait time.Duration) *RedisDeviceLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if wait <= 0 {
		wait = defaultLockWait
	}
	return &RedisDeviceLocker{client: client, ttl: ttl, wait: wait}
}

func (l *RedisDeviceLocker) Lock(ctx context.Context, deviceID string) (func(), error) {
	key := cache.DeviceLockKey(deviceID)
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}
		if time.Now().After(deadline) {
			return nil, domain.ErrLockNotAcquired
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryBackoff):
		}
	}
}

func (l *RedisDeviceLocker) release(key, token string) {
	// The request context may already be cancelled; release on a fresh one.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		logger.Get().Warn("Failed to release device lock", zap.String("key", key), zap.Error(err))
	}
}
