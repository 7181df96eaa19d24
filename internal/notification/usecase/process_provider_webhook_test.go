package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func webhookRepo() *fakeRepoDB {
	return &fakeRepoDB{
		getNotificationFn: func(context.Context, string) (*entity.Notification, error) {
			return &entity.Notification{ID: testNotifID, Status: entity.StatusSent}, nil
		},
	}
}

func TestProcessProviderWebhook_DeliveredRecordsSuccess(t *testing.T) {
	repo := webhookRepo()
	uc := newTestUsecase(t, testDeps{repo: repo, msg: &fakeMessaging{}})

	err := uc.ProcessProviderWebhook(context.Background(), ProviderWebhookInput{
		NotificationID: testNotifID,
		Channel:        "email",
		Event:          "delivered",
	})
	require.NoError(t, err)

	require.Len(t, repo.savedSingles, 1)
	assert.Equal(t, entity.ChannelEmail, repo.savedSingles[0].Channel)
	assert.Equal(t, entity.DeliverySuccess, repo.savedSingles[0].Status)
	assert.Empty(t, repo.savedSingles[0].ErrorMessage)
}

func TestProcessProviderWebhook_BounceRecordsFailure(t *testing.T) {
	repo := webhookRepo()
	uc := newTestUsecase(t, testDeps{repo: repo, msg: &fakeMessaging{}})

	err := uc.ProcessProviderWebhook(context.Background(), ProviderWebhookInput{
		NotificationID: testNotifID,
		Channel:        "email",
		Event:          "bounce",
	})
	require.NoError(t, err)

	require.Len(t, repo.savedSingles, 1)
	assert.Equal(t, entity.DeliveryFailed, repo.savedSingles[0].Status)
	assert.Equal(t, "provider reported bounce", repo.savedSingles[0].ErrorMessage)
}

func TestProcessProviderWebhook_UntrackedEventIsIgnored(t *testing.T) {
	repo := &fakeRepoDB{
		getNotificationFn: func(context.Context, string) (*entity.Notification, error) {
			t.Fatal("untracked events must not hit the database")
			return nil, nil
		},
	}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: &fakeMessaging{}})

	err := uc.ProcessProviderWebhook(context.Background(), ProviderWebhookInput{
		NotificationID: testNotifID,
		Channel:        "email",
		Event:          "open",
	})
	require.NoError(t, err)
	assert.Empty(t, repo.savedSingles)
}

func TestProcessProviderWebhook_UnknownNotificationReturnsNotFound(t *testing.T) {
	repo := &fakeRepoDB{
		getNotificationFn: func(context.Context, string) (*entity.Notification, error) {
			return nil, goerror.ErrNotFound
		},
	}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: &fakeMessaging{}})

	err := uc.ProcessProviderWebhook(context.Background(), ProviderWebhookInput{
		NotificationID: testNotifID,
		Channel:        "sms",
		Event:          "delivered",
	})
	require.Error(t, err)

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, goerror.CodeNotFound, gerr.Code())
}
