package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates session access across replicas. A
// session belongs to one interactive flow at a time; the locker
// enforces that when more than one process serves the same store.
type DistributedLocker interface {
	// Lock blocks until the lock for the key is acquired, the context
	// is canceled, or the TTL expires (implementation specific). The
	// returned UnlockFunc MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
