package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/pkg/goerror"
	"github.com/heralddev/herald/internal/shared/event"
	"github.com/samber/lo"
)

type DeliverInput struct {
	NotificationID string `validate:"required,uuid"`
}

// Deliver fans a pending notification out to every channel the recipient
// allows and has contact details for, records one delivery log per attempt,
// and finalizes the notification status from the attempt results.
//
// Returned errors signal the broker to redeliver the message. Conditions
// that a retry cannot fix, such as a notification that is no longer
// pending, are logged and acknowledged instead.
func (s *Usecase) Deliver(ctx context.Context, in DeliverInput) error {
	ctx, span := s.startSpan(ctx, "Deliver")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.WarnContext(ctx, "dropping malformed delivery request", "notification_id", in.NotificationID, "error", err)
		return nil
	}

	notif, err := s.repoDB.GetNotificationByID(ctx, in.NotificationID)
	if errors.Is(err, goerror.ErrNotFound) {
		return fmt.Errorf("notification %s not found: %w", in.NotificationID, err)
	}
	if err != nil {
		return fmt.Errorf("get notification %s: %w", in.NotificationID, err)
	}

	if notif.Status != entity.StatusPending {
		slog.WarnContext(ctx, "skipping delivery of non pending notification",
			"notification_id", notif.ID, "status", notif.Status.String())
		return nil
	}

	recipient, err := s.repoDB.GetRecipient(ctx, notif.UserID)
	if err != nil {
		return fmt.Errorf("get recipient %s: %w", notif.UserID, err)
	}

	logs := s.attemptChannels(ctx, *recipient, *notif)

	if len(logs) > 0 {
		if err = s.repoDB.CreateDeliveryLogs(ctx, logs); err != nil {
			return fmt.Errorf("persist delivery logs for %s: %w", notif.ID, err)
		}
	}

	final := finalStatus(logs)
	ok, err := s.repoDB.UpdateNotificationStatus(ctx, notif.ID, entity.StatusPending, final)
	if err != nil {
		return fmt.Errorf("finalize notification %s: %w", notif.ID, err)
	}
	if !ok {
		// Canceled or finalized by someone else while we were sending.
		slog.WarnContext(ctx, "notification left pending state during delivery", "notification_id", notif.ID)
		return nil
	}

	s.emitOutcome(ctx, outcomePattern(final), notif, final)

	return nil
}

// attemptChannels sends over each eligible channel in a fixed order so two
// deliveries of the same notification produce logs in the same sequence.
func (s *Usecase) attemptChannels(ctx context.Context, r entity.Recipient, n entity.Notification) []entity.DeliveryLog {
	logs := make([]entity.DeliveryLog, 0, len(s.senders))
	for _, ch := range r.EligibleChannels() {
		sender, found := lo.Find(s.senders, func(cs ChannelSender) bool { return cs.Channel() == ch })
		if !found {
			slog.WarnContext(ctx, "no sender configured for channel", "channel", ch.String())
			continue
		}

		l := entity.DeliveryLog{
			ID:             s.uid.Generate(),
			NotificationID: n.ID,
			Channel:        ch,
			Status:         entity.DeliverySuccess,
			SentAt:         s.clock.Now(),
		}
		if err := sender.Send(ctx, r, n); err != nil {
			slog.ErrorContext(ctx, "failed to send notification",
				"notification_id", n.ID, "channel", ch.String(), "error", err)
			l.Status = entity.DeliveryFailed
			l.ErrorMessage = err.Error()
		}
		logs = append(logs, l)
	}

	return logs
}

// finalStatus aggregates attempt results. No successful attempt means
// FAILED, a mix means PARTIAL, all successes mean SENT. A recipient with no
// usable channel produces zero attempts and also counts as FAILED.
func finalStatus(logs []entity.DeliveryLog) entity.Status {
	succeeded := lo.CountBy(logs, func(l entity.DeliveryLog) bool { return l.Status == entity.DeliverySuccess })
	switch {
	case succeeded == 0:
		return entity.StatusFailed
	case succeeded < len(logs):
		return entity.StatusPartial
	default:
		return entity.StatusSent
	}
}

func outcomePattern(st entity.Status) string {
	switch st {
	case entity.StatusSent:
		return event.PatternNotificationSent
	case entity.StatusPartial:
		return event.PatternNotificationPartial
	default:
		return event.PatternNotificationFailed
	}
}
