package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReapIdempotencyKeys_DeletesWhenLockHeld(t *testing.T) {
	var deletes int
	repo := &fakeRepoDB{
		deleteExpiredFn: func(context.Context) (int64, error) {
			deletes++
			return 3, nil
		},
	}
	lock := &fakeLocker{held: true}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: &fakeMessaging{}, locker: lock})

	err := uc.ReapIdempotencyKeys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, deletes)
	assert.Equal(t, []string{"idempotency-reaper"}, lock.acquired)
	assert.Equal(t, []string{"idempotency-reaper"}, lock.released)
}

func TestReapIdempotencyKeys_SkipsWhenLockHeldElsewhere(t *testing.T) {
	repo := &fakeRepoDB{
		deleteExpiredFn: func(context.Context) (int64, error) {
			t.Fatal("sweep must not run without the lock")
			return 0, nil
		},
	}
	lock := &fakeLocker{held: false}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: &fakeMessaging{}, locker: lock})

	err := uc.ReapIdempotencyKeys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lock.released)
}

func TestReapIdempotencyKeys_RetriesTransientFailures(t *testing.T) {
	var calls int
	repo := &fakeRepoDB{
		deleteExpiredFn: func(context.Context) (int64, error) {
			calls++
			if calls < 3 {
				return 0, errors.New("deadlock detected")
			}
			return 1, nil
		},
	}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: &fakeMessaging{}, locker: &fakeLocker{held: true}})

	err := uc.ReapIdempotencyKeys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestArchiveDeliveryLogs_WritesSnapshot(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	logs := []entity.DeliveryLog{
		{ID: 1, NotificationID: testNotifID, Channel: entity.ChannelEmail, Status: entity.DeliverySuccess, SentAt: now},
		{ID: 2, NotificationID: testNotifID, Channel: entity.ChannelSMS, Status: entity.DeliveryFailed, SentAt: now},
	}
	repo := &fakeRepoDB{
		listFinishedFn: func(_ context.Context, before time.Time) ([]entity.DeliveryLog, error) {
			assert.Equal(t, now, before)
			return logs, nil
		},
	}
	arch := &fakeArchive{key: "delivery-logs/2025-06-01.csv"}
	lock := &fakeLocker{held: true}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: &fakeMessaging{}, archive: arch, locker: lock, now: now})

	err := uc.ArchiveDeliveryLogs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, logs, arch.written)
	assert.Equal(t, []string{"delivery-log-archive"}, lock.released)
}

func TestArchiveDeliveryLogs_NothingToExport(t *testing.T) {
	repo := &fakeRepoDB{
		listFinishedFn: func(context.Context, time.Time) ([]entity.DeliveryLog, error) {
			return nil, nil
		},
	}
	arch := &fakeArchive{}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: &fakeMessaging{}, archive: arch, locker: &fakeLocker{held: true}})

	err := uc.ArchiveDeliveryLogs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, arch.written)
}
