package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

const reaperLockName = "idempotency-reaper"

// ReapIdempotencyKeys deletes idempotency keys whose replay window has
// closed. A distributed lock keeps the sweep on a single instance, and the
// delete itself retries with a capped fibonacci backoff before giving up
// until the next tick.
func (s *Usecase) ReapIdempotencyKeys(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "ReapIdempotencyKeys")
	defer span.End()

	ttl := s.cfg.GetMinute("modules.notification.reaper_lock_ttl_minutes")
	held, err := s.locker.Acquire(ctx, reaperLockName, ttl)
	if err != nil {
		slog.ErrorContext(ctx, "failed to acquire reaper lock", "error", err)
		return err
	}
	if !held {
		slog.DebugContext(ctx, "reaper lock held elsewhere, skipping sweep")
		return nil
	}
	defer func() {
		if err := s.locker.Release(ctx, reaperLockName); err != nil {
			slog.WarnContext(ctx, "failed to release reaper lock", "error", err)
		}
	}()

	b := retry.NewFibonacci(200 * time.Millisecond)
	b = retry.WithCappedDuration(5*time.Second, b)
	b = retry.WithMaxRetries(3, b)

	var deleted int64
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		n, err := s.repoDB.DeleteExpiredIdempotencyKeys(ctx)
		if err != nil {
			return retry.RetryableError(err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to reap idempotency keys", "error", err)
		return err
	}

	if deleted > 0 {
		slog.InfoContext(ctx, "reaped expired idempotency keys", "deleted", deleted)
	}

	return nil
}
