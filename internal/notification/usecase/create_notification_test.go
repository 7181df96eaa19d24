package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/pkg/goerror"
	"github.com/heralddev/herald/internal/pkg/valueobject"
	"github.com/heralddev/herald/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserID  = "8a9bcb9e-53c1-4a6f-9d52-6f0a6f1c2d3e"
	testKey     = "b1b2c3d4-e5f6-47a8-89b0-c1d2e3f4a5b6"
	testNotifID = "3f0a7c6e-92b4-4a38-9c41-2a1f5f8b7d90"
)

func validCreateInput() CreateInput {
	return CreateInput{
		UserID:         testUserID,
		ExternalID:     "order-123",
		TemplateName:   "Order Shipped",
		Content:        valueobject.JSONMap{"subject": "Your order shipped"},
		Priority:       "high",
		IdempotencyKey: testKey,
	}
}

func TestCreate_NewNotificationEmitsPendingOnPriorityLane(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var gotKey string
	var gotExpiry time.Time
	var gotData entity.CreateNotification
	repo := &fakeRepoDB{
		userExistsFn: func(context.Context, string) (bool, error) { return true, nil },
		createWithIdempotencyFn: func(_ context.Context, key string, keyExpiresAt time.Time, data entity.CreateNotification) (*entity.Notification, bool, error) {
			gotKey, gotExpiry, gotData = key, keyExpiresAt, data
			return &entity.Notification{
				ID:       data.ID,
				UserID:   data.UserID,
				Priority: data.Priority,
				Status:   entity.StatusPending,
			}, true, nil
		},
	}
	msg := &fakeMessaging{}
	uc := newTestUsecase(t, testDeps{
		repo: repo,
		msg:  msg,
		now:  now,
		cfg:  stubConfig{durations: map[string]time.Duration{"modules.notification.idempotency_ttl_hours": 24 * time.Hour}},
	})

	notif, err := uc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	require.NotNil(t, notif)

	assert.Equal(t, testKey, gotKey)
	assert.Equal(t, now.Add(24*time.Hour), gotExpiry)
	assert.Equal(t, "order-shipped", gotData.TemplateName)
	assert.Equal(t, entity.PriorityHigh, gotData.Priority)

	require.Len(t, msg.events, 1)
	assert.Equal(t, "high", msg.events[0].lane)
	assert.Equal(t, event.PatternNotificationPending, msg.events[0].pattern)
	assert.Equal(t, event.NotificationPendingMessage{
		NotificationID: notif.ID,
		UserID:         testUserID,
	}, msg.events[0].payload)
}

func TestCreate_ReplayDoesNotReEmit(t *testing.T) {
	repo := &fakeRepoDB{
		userExistsFn: func(context.Context, string) (bool, error) { return true, nil },
		createWithIdempotencyFn: func(_ context.Context, _ string, _ time.Time, data entity.CreateNotification) (*entity.Notification, bool, error) {
			return &entity.Notification{ID: testNotifID, UserID: data.UserID, Status: entity.StatusPending}, false, nil
		},
	}
	msg := &fakeMessaging{}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: msg})

	notif, err := uc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, testNotifID, notif.ID)
	assert.Empty(t, msg.events)
}

func TestCreate_InFlightKeyReturnsConflict(t *testing.T) {
	repo := &fakeRepoDB{
		userExistsFn: func(context.Context, string) (bool, error) { return true, nil },
		createWithIdempotencyFn: func(context.Context, string, time.Time, entity.CreateNotification) (*entity.Notification, bool, error) {
			return nil, false, goerror.ErrConflict
		},
	}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: &fakeMessaging{}})

	_, err := uc.Create(context.Background(), validCreateInput())
	require.Error(t, err)

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, goerror.CodeConflict, gerr.Code())
}

func TestCreate_UnknownUserReturnsNotFound(t *testing.T) {
	repo := &fakeRepoDB{
		userExistsFn: func(context.Context, string) (bool, error) { return false, nil },
	}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: &fakeMessaging{}})

	_, err := uc.Create(context.Background(), validCreateInput())
	require.Error(t, err)

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, goerror.CodeNotFound, gerr.Code())
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	uc := newTestUsecase(t, testDeps{repo: &fakeRepoDB{}, msg: &fakeMessaging{}})

	tests := map[string]func(*CreateInput){
		"bad priority":     func(in *CreateInput) { in.Priority = "urgent" },
		"missing user":     func(in *CreateInput) { in.UserID = "" },
		"non uuid key":     func(in *CreateInput) { in.IdempotencyKey = "not-a-uuid" },
		"missing external": func(in *CreateInput) { in.ExternalID = "" },
		"empty template":   func(in *CreateInput) { in.TemplateName = "  " },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			in := validCreateInput()
			mutate(&in)

			_, err := uc.Create(context.Background(), in)
			require.Error(t, err)

			var gerr *goerror.Error
			require.True(t, errors.As(err, &gerr))
			assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())
		})
	}
}

func TestCreate_PublishFailureDoesNotFailCreation(t *testing.T) {
	repo := &fakeRepoDB{
		userExistsFn: func(context.Context, string) (bool, error) { return true, nil },
		createWithIdempotencyFn: func(_ context.Context, _ string, _ time.Time, data entity.CreateNotification) (*entity.Notification, bool, error) {
			return &entity.Notification{ID: data.ID, UserID: data.UserID, Status: entity.StatusPending}, true, nil
		},
	}
	msg := &fakeMessaging{err: errors.New("broker down")}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: msg})

	notif, err := uc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	require.NotNil(t, notif)
	assert.Equal(t, entity.StatusPending, notif.Status)
	assert.Empty(t, msg.events)
}
