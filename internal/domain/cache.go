package domain

import (
	"context"
	"time"
)

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss is returned when a key is not found in the cache.
	ErrCacheMiss = CacheError("cache: key not found")
	// ErrLockNotAcquired is returned when a device lock stays held past the wait budget.
	ErrLockNotAcquired = CacheError("cache: lock not acquired")
)

// Cache defines the interface (port) for caching operations.
type Cache interface {
	// Get returns ErrCacheMiss if the key is not found.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
}

// DeviceLocker serialises credit-gated work per device identifier.
type DeviceLocker interface {
	// Lock blocks until the lock for deviceID is held or the wait budget is spent,
	// in which case it returns ErrLockNotAcquired. The returned func releases the lock.
	Lock(ctx context.Context, deviceID string) (func(), error)
}
