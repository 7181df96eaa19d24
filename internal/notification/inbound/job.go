package inbound

import (
	"context"
	"log/slog"
	"time"

	"github.com/heralddev/herald/internal/pkg/config"
	"github.com/heralddev/herald/internal/pkg/goroutine"
)

type ucJob interface {
	ReapIdempotencyKeys(ctx context.Context) error
	ArchiveDeliveryLogs(ctx context.Context) error
}

// RegisterScheduledJobs starts the periodic maintenance loops. Each job
// takes a distributed lock internally, so running every instance with jobs
// enabled is safe.
func RegisterScheduledJobs(ctx context.Context, cfg config.Config, routine *goroutine.Manager, uc ucJob) {
	jobs := []struct {
		name     string
		interval time.Duration
		run      func(ctx context.Context) error
	}{
		{
			name:     "idempotency_key_reaper",
			interval: cfg.GetMinute("modules.notification.reaper_interval_minutes"),
			run:      uc.ReapIdempotencyKeys,
		},
		{
			name:     "delivery_log_archive",
			interval: cfg.GetHour("modules.notification.archive_interval_hours"),
			run:      uc.ArchiveDeliveryLogs,
		},
	}

	for _, job := range jobs {
		if job.interval <= 0 {
			continue
		}

		routine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(ctx, "Running scheduled job", "job", job.name, "interval", job.interval.String())

			ticker := time.NewTicker(job.interval)
			defer ticker.Stop()

			for {
				select {
				case <-pCtx.Done():
					return nil
				case <-ticker.C:
					if err := job.run(pCtx); err != nil {
						slog.ErrorContext(pCtx, "scheduled job failed", "job", job.name, "error", err)
					}
				}
			}
		})
	}
}
