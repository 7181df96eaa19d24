package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/heralddev/herald/internal/notification/usecase"
	"github.com/heralddev/herald/internal/pkg/instrument"
	"github.com/heralddev/herald/internal/pkg/messaging"
	"github.com/heralddev/herald/internal/pkg/uid"
	"github.com/heralddev/herald/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func pattern(headers []messaging.Header) string {
	for i := range headers {
		if headers[i].Key == event.HeaderPattern {
			return string(headers[i].Value)
		}
	}
	return ""
}

// HandleLaneMessage dispatches a lane message by its pattern header. All
// three lanes carry the same message shapes, only their urgency differs.
func (h *MQHandler) HandleLaneMessage(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "HandleLaneMessage")
	defer span.End()

	switch p := pattern(msg.Headers()); p {
	case event.PatternNotificationPending:
		return h.deliverPending(ctx, msg)
	case event.PatternNotificationSent,
		event.PatternNotificationPartial,
		event.PatternNotificationFailed,
		event.PatternNotificationCanceled:
		return h.logOutcome(ctx, msg, p)
	default:
		slog.WarnContext(ctx, "dropping lane message with unknown pattern", "pattern", p, "msg_body", string(msg.Body()))
		return nil
	}
}

func (h *MQHandler) deliverPending(ctx context.Context, msg messaging.Message) error {
	body := msg.Body()
	slog.InfoContext(ctx, "consume: pending notification", "msg_body", string(body))

	var payload event.NotificationPendingMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of pending notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.Deliver(ctx, usecase.DeliverInput{NotificationID: payload.NotificationID}); err != nil {
		slog.ErrorContext(ctx, "failed to deliver notification", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

// logOutcome acknowledges terminal transition events. They exist for
// downstream audit consumers, this service only records their arrival.
func (h *MQHandler) logOutcome(ctx context.Context, msg messaging.Message, p string) error {
	body := msg.Body()

	var payload event.NotificationOutcomeMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of notification outcome", "msg_body", string(body), "error", err)
		return nil
	}

	slog.InfoContext(ctx, "consume: notification outcome",
		"pattern", p, "notification_id", payload.NotificationID, "status", payload.Status)

	return nil
}
