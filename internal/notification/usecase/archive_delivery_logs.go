package usecase

import (
	"context"
	"log/slog"
)

const archiveLockName = "delivery-log-archive"

// ArchiveDeliveryLogs exports delivery logs of finalized notifications to
// object storage as a CSV snapshot. The export is additive, rows stay in
// the database and later snapshots may contain them again.
func (s *Usecase) ArchiveDeliveryLogs(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "ArchiveDeliveryLogs")
	defer span.End()

	ttl := s.cfg.GetMinute("modules.notification.archive_lock_ttl_minutes")
	held, err := s.locker.Acquire(ctx, archiveLockName, ttl)
	if err != nil {
		slog.ErrorContext(ctx, "failed to acquire archive lock", "error", err)
		return err
	}
	if !held {
		slog.DebugContext(ctx, "archive lock held elsewhere, skipping export")
		return nil
	}
	defer func() {
		if err := s.locker.Release(ctx, archiveLockName); err != nil {
			slog.WarnContext(ctx, "failed to release archive lock", "error", err)
		}
	}()

	now := s.clock.Now()
	logs, err := s.repoDB.ListFinishedDeliveryLogs(ctx, now)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list finished delivery logs", "error", err)
		return err
	}
	if len(logs) == 0 {
		return nil
	}

	key, err := s.archive.WriteDeliveryLogs(ctx, now, logs)
	if err != nil {
		slog.ErrorContext(ctx, "failed to write delivery log archive", "error", err)
		return err
	}

	slog.InfoContext(ctx, "archived delivery logs", "object_key", key, "rows", len(logs))

	return nil
}
