// Package dlock provides a Redis-backed distributed lock used to elect a
// single instance for periodic background jobs.
package dlock

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotHeld is returned when releasing a lock owned by another holder.
var ErrNotHeld = errors.New("dlock: lock not held")

// Locker acquires and releases named distributed locks.
type Locker interface {
	// Acquire tries to take the lock; false means another holder owns it.
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)
	// Release frees the lock when the caller is still the holder.
	Release(ctx context.Context, name string) error
}

// RedisLocker implements Locker with SET NX on a single Redis key per lock.
type RedisLocker struct {
	client *redis.Client
	prefix string
	holder string
}

// New creates a RedisLocker. holder identifies this instance and must be
// unique per process.
func New(client *redis.Client, holder string) *RedisLocker {
	return &RedisLocker{
		client: client,
		prefix: "dlock:",
		holder: holder,
	}
}

// Acquire tries to take the named lock for ttl.
func (l *RedisLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, l.prefix+name, l.holder, ttl).Result()
}

// Release frees the lock if this instance still holds it.
func (l *RedisLocker) Release(ctx context.Context, name string) error {
	fk := l.prefix + name

	val, err := l.client.Get(ctx, fk).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	if val != l.holder {
		return ErrNotHeld
	}

	return l.client.Del(ctx, fk).Err()
}
