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

func pendingNotification() *entity.Notification {
	return &entity.Notification{
		ID:       testNotifID,
		UserID:   testUserID,
		Priority: entity.PriorityHigh,
		Status:   entity.StatusPending,
	}
}

func fullRecipient() *entity.Recipient {
	return &entity.Recipient{
		UserID:      testUserID,
		Email:       "jo@example.com",
		PhoneNumber: "+15550001111",
		PushToken:   "tok-1",
		AllowEmail:  true,
		AllowSMS:    true,
		AllowPush:   true,
	}
}

func deliverRepo(n *entity.Notification, r *entity.Recipient, updated *bool) *fakeRepoDB {
	return &fakeRepoDB{
		getNotificationFn: func(context.Context, string) (*entity.Notification, error) { return n, nil },
		getRecipientFn:    func(context.Context, string) (*entity.Recipient, error) { return r, nil },
		updateStatusFn: func(_ context.Context, _ string, _, _ entity.Status) (bool, error) {
			if updated != nil {
				*updated = true
			}
			return true, nil
		},
	}
}

func TestDeliver_AllChannelsSucceed(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var final entity.Status
	repo := deliverRepo(pendingNotification(), fullRecipient(), nil)
	repo.updateStatusFn = func(_ context.Context, _ string, from, to entity.Status) (bool, error) {
		assert.Equal(t, entity.StatusPending, from)
		final = to
		return true, nil
	}

	email := &fakeSender{channel: entity.ChannelEmail}
	sms := &fakeSender{channel: entity.ChannelSMS}
	push := &fakeSender{channel: entity.ChannelPush}
	msg := &fakeMessaging{}
	uc := newTestUsecase(t, testDeps{
		repo:    repo,
		msg:     msg,
		now:     now,
		senders: []ChannelSender{email, sms, push},
	})

	err := uc.Deliver(context.Background(), DeliverInput{NotificationID: testNotifID})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusSent, final)
	require.Len(t, repo.savedLogs, 3)
	// Channel order is fixed: email, sms, push.
	assert.Equal(t, entity.ChannelEmail, repo.savedLogs[0].Channel)
	assert.Equal(t, entity.ChannelSMS, repo.savedLogs[1].Channel)
	assert.Equal(t, entity.ChannelPush, repo.savedLogs[2].Channel)
	for _, l := range repo.savedLogs {
		assert.Equal(t, entity.DeliverySuccess, l.Status)
		assert.Equal(t, now, l.SentAt)
	}

	require.Len(t, msg.events, 1)
	assert.Equal(t, "low", msg.events[0].lane)
	assert.Equal(t, event.PatternNotificationSent, msg.events[0].pattern)
}

func TestDeliver_MixedResultsProducePartial(t *testing.T) {
	var final entity.Status
	repo := deliverRepo(pendingNotification(), fullRecipient(), nil)
	repo.updateStatusFn = func(_ context.Context, _ string, _, to entity.Status) (bool, error) {
		final = to
		return true, nil
	}

	email := &fakeSender{channel: entity.ChannelEmail, err: errors.New("smtp timeout")}
	sms := &fakeSender{channel: entity.ChannelSMS}
	push := &fakeSender{channel: entity.ChannelPush}
	msg := &fakeMessaging{}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: msg, senders: []ChannelSender{email, sms, push}})

	err := uc.Deliver(context.Background(), DeliverInput{NotificationID: testNotifID})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPartial, final)
	require.Len(t, repo.savedLogs, 3)
	assert.Equal(t, entity.DeliveryFailed, repo.savedLogs[0].Status)
	assert.Equal(t, "smtp timeout", repo.savedLogs[0].ErrorMessage)
	assert.Equal(t, entity.DeliverySuccess, repo.savedLogs[1].Status)

	require.Len(t, msg.events, 1)
	assert.Equal(t, event.PatternNotificationPartial, msg.events[0].pattern)
}

func TestDeliver_AllChannelsFail(t *testing.T) {
	var final entity.Status
	repo := deliverRepo(pendingNotification(), fullRecipient(), nil)
	repo.updateStatusFn = func(_ context.Context, _ string, _, to entity.Status) (bool, error) {
		final = to
		return true, nil
	}

	boom := errors.New("provider down")
	msg := &fakeMessaging{}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: msg, senders: []ChannelSender{
		&fakeSender{channel: entity.ChannelEmail, err: boom},
		&fakeSender{channel: entity.ChannelSMS, err: boom},
		&fakeSender{channel: entity.ChannelPush, err: boom},
	}})

	err := uc.Deliver(context.Background(), DeliverInput{NotificationID: testNotifID})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusFailed, final)
	require.Len(t, msg.events, 1)
	assert.Equal(t, event.PatternNotificationFailed, msg.events[0].pattern)
}

func TestDeliver_RespectsPreferencesAndContactDetails(t *testing.T) {
	recipient := fullRecipient()
	recipient.AllowSMS = false // opted out
	recipient.PushToken = ""   // allowed but no token

	repo := deliverRepo(pendingNotification(), recipient, nil)
	email := &fakeSender{channel: entity.ChannelEmail}
	sms := &fakeSender{channel: entity.ChannelSMS}
	push := &fakeSender{channel: entity.ChannelPush}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: &fakeMessaging{}, senders: []ChannelSender{email, sms, push}})

	err := uc.Deliver(context.Background(), DeliverInput{NotificationID: testNotifID})
	require.NoError(t, err)

	assert.Len(t, email.sent, 1)
	assert.Empty(t, sms.sent)
	assert.Empty(t, push.sent)
	require.Len(t, repo.savedLogs, 1)
	assert.Equal(t, entity.ChannelEmail, repo.savedLogs[0].Channel)
}

func TestDeliver_NoUsableChannelMarksFailed(t *testing.T) {
	recipient := fullRecipient()
	recipient.AllowEmail = false
	recipient.AllowSMS = false
	recipient.AllowPush = false

	var final entity.Status
	repo := deliverRepo(pendingNotification(), recipient, nil)
	repo.updateStatusFn = func(_ context.Context, _ string, _, to entity.Status) (bool, error) {
		final = to
		return true, nil
	}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: &fakeMessaging{}, senders: []ChannelSender{
		&fakeSender{channel: entity.ChannelEmail},
	}})

	err := uc.Deliver(context.Background(), DeliverInput{NotificationID: testNotifID})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusFailed, final)
	assert.Empty(t, repo.savedLogs)
}

func TestDeliver_NonPendingNotificationIsSkipped(t *testing.T) {
	n := pendingNotification()
	n.Status = entity.StatusCanceled

	email := &fakeSender{channel: entity.ChannelEmail}
	repo := deliverRepo(n, fullRecipient(), nil)
	repo.updateStatusFn = func(context.Context, string, entity.Status, entity.Status) (bool, error) {
		t.Fatal("status must not be updated for non pending notifications")
		return false, nil
	}
	msg := &fakeMessaging{}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: msg, senders: []ChannelSender{email}})

	err := uc.Deliver(context.Background(), DeliverInput{NotificationID: testNotifID})
	require.NoError(t, err)
	assert.Empty(t, email.sent)
	assert.Empty(t, msg.events)
}

func TestDeliver_LostGuardSuppressesOutcome(t *testing.T) {
	repo := deliverRepo(pendingNotification(), fullRecipient(), nil)
	repo.updateStatusFn = func(context.Context, string, entity.Status, entity.Status) (bool, error) {
		return false, nil // canceled mid flight
	}
	msg := &fakeMessaging{}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: msg, senders: []ChannelSender{
		&fakeSender{channel: entity.ChannelEmail},
	}})

	err := uc.Deliver(context.Background(), DeliverInput{NotificationID: testNotifID})
	require.NoError(t, err)
	assert.Empty(t, msg.events)
}

func TestDeliver_MissingNotificationReturnsErrorForRedelivery(t *testing.T) {
	repo := &fakeRepoDB{
		getNotificationFn: func(context.Context, string) (*entity.Notification, error) {
			return nil, goerror.ErrNotFound
		},
	}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: &fakeMessaging{}})

	err := uc.Deliver(context.Background(), DeliverInput{NotificationID: testNotifID})
	require.Error(t, err)
}

func TestDeliver_PublishFailureStillFinalizesStatus(t *testing.T) {
	var final entity.Status
	repo := deliverRepo(pendingNotification(), fullRecipient(), nil)
	repo.updateStatusFn = func(_ context.Context, _ string, _, to entity.Status) (bool, error) {
		final = to
		return true, nil
	}
	msg := &fakeMessaging{err: errors.New("broker down")}
	uc := newTestUsecase(t, testDeps{repo: repo, msg: msg, senders: []ChannelSender{
		&fakeSender{channel: entity.ChannelEmail},
	}})

	err := uc.Deliver(context.Background(), DeliverInput{NotificationID: testNotifID})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSent, final)
	assert.Empty(t, msg.events)
}
