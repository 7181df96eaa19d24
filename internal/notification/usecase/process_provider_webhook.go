package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/pkg/goerror"
)

type ProviderWebhookInput struct {
	NotificationID string `validate:"required,uuid"`
	Channel        string `validate:"required,oneof=email sms push"`
	Event          string `validate:"required"`
}

// ProcessProviderWebhook records asynchronous delivery feedback from a
// downstream provider as an extra delivery log row. Events the service does
// not track, opens and clicks for example, are acknowledged and dropped.
func (s *Usecase) ProcessProviderWebhook(ctx context.Context, in ProviderWebhookInput) error {
	ctx, span := s.startSpan(ctx, "ProcessProviderWebhook")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	var status entity.DeliveryStatus
	switch in.Event {
	case "delivered":
		status = entity.DeliverySuccess
	case "bounce", "dropped", "spamreport":
		status = entity.DeliveryFailed
	default:
		slog.InfoContext(ctx, "ignoring untracked provider event",
			"notification_id", in.NotificationID, "event", in.Event)
		return nil
	}

	if _, err := s.repoDB.GetNotificationByID(ctx, in.NotificationID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("Notification not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get notification", "notification_id", in.NotificationID, "error", err)
		return goerror.NewServer(err)
	}

	l := entity.DeliveryLog{
		ID:             s.uid.Generate(),
		NotificationID: in.NotificationID,
		Channel:        entity.ChannelFromString(in.Channel),
		Status:         status,
		SentAt:         s.clock.Now(),
	}
	if status == entity.DeliveryFailed {
		l.ErrorMessage = "provider reported " + in.Event
	}

	if err := s.repoDB.CreateDeliveryLog(ctx, l); err != nil {
		slog.ErrorContext(ctx, "failed to repo create delivery log", "notification_id", in.NotificationID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
