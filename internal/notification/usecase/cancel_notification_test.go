package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/pkg/goerror"
	"github.com/heralddev/herald/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancel_PendingNotificationIsCanceled(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := &fakeRepoDB{
		getNotificationFn: func(context.Context, string) (*entity.Notification, error) {
			return &entity.Notification{ID: testNotifID, UserID: testUserID, Status: entity.StatusPending}, nil
		},
		updateStatusFn: func(_ context.Context, id string, from, to entity.Status) (bool, error) {
			assert.Equal(t, testNotifID, id)
			assert.Equal(t, entity.StatusPending, from)
			assert.Equal(t, entity.StatusCanceled, to)
			return true, nil
		},
	}
	msg := &fakeMessaging{}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: msg, now: now})

	out, err := uc.Cancel(context.Background(), CancelInput{ID: testNotifID})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCanceled, out.Status)
	assert.Equal(t, now, out.CanceledAt)

	require.Len(t, msg.events, 1)
	assert.Equal(t, "low", msg.events[0].lane)
	assert.Equal(t, event.PatternNotificationCanceled, msg.events[0].pattern)
}

func TestCancel_TerminalStatusReturnsConflict(t *testing.T) {
	for _, st := range []entity.Status{entity.StatusSent, entity.StatusPartial, entity.StatusFailed, entity.StatusCanceled} {
		t.Run(st.String(), func(t *testing.T) {
			repo := &fakeRepoDB{
				getNotificationFn: func(context.Context, string) (*entity.Notification, error) {
					return &entity.Notification{ID: testNotifID, Status: st}, nil
				},
			}
			msg := &fakeMessaging{}
			uc := newTestUsecase(t, testDeps{repo: repo, msg: msg})

			_, err := uc.Cancel(context.Background(), CancelInput{ID: testNotifID})
			require.Error(t, err)

			var gerr *goerror.Error
			require.True(t, errors.As(err, &gerr))
			assert.Equal(t, goerror.CodeConflict, gerr.Code())
			assert.Empty(t, msg.events)
		})
	}
}

func TestCancel_LostRaceReturnsConflict(t *testing.T) {
	repo := &fakeRepoDB{
		getNotificationFn: func(context.Context, string) (*entity.Notification, error) {
			return &entity.Notification{ID: testNotifID, Status: entity.StatusPending}, nil
		},
		updateStatusFn: func(context.Context, string, entity.Status, entity.Status) (bool, error) {
			return false, nil
		},
	}
	msg := &fakeMessaging{}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: msg})

	_, err := uc.Cancel(context.Background(), CancelInput{ID: testNotifID})
	require.Error(t, err)

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, goerror.CodeConflict, gerr.Code())
	assert.Empty(t, msg.events)
}

func TestCancel_UnknownNotificationReturnsNotFound(t *testing.T) {
	repo := &fakeRepoDB{
		getNotificationFn: func(context.Context, string) (*entity.Notification, error) {
			return nil, goerror.ErrNotFound
		},
	}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: &fakeMessaging{}})

	_, err := uc.Cancel(context.Background(), CancelInput{ID: testNotifID})
	require.Error(t, err)

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, goerror.CodeNotFound, gerr.Code())
}

func TestCancel_PublishFailureDoesNotUndoCancellation(t *testing.T) {
	repo := &fakeRepoDB{
		getNotificationFn: func(context.Context, string) (*entity.Notification, error) {
			return &entity.Notification{ID: testNotifID, Status: entity.StatusPending}, nil
		},
		updateStatusFn: func(context.Context, string, entity.Status, entity.Status) (bool, error) {
			return true, nil
		},
	}
	msg := &fakeMessaging{err: errors.New("broker down")}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: msg})

	out, err := uc.Cancel(context.Background(), CancelInput{ID: testNotifID})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCanceled, out.Status)
	assert.Empty(t, msg.events)
}
