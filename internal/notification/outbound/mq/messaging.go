package mq

import (
	"context"
	"encoding/json"

	"github.com/heralddev/herald/internal/pkg/instrument"
	"github.com/heralddev/herald/internal/pkg/messaging"
	"github.com/heralddev/herald/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

// Messaging publishes notification events on the three priority lanes.
type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

// EmitHigh publishes on the high priority lane.
func (m *Messaging) EmitHigh(ctx context.Context, pattern string, payload any) error {
	return m.emit(ctx, "EmitHigh", event.LaneHighDestination, pattern, payload)
}

// EmitMedium publishes on the medium priority lane.
func (m *Messaging) EmitMedium(ctx context.Context, pattern string, payload any) error {
	return m.emit(ctx, "EmitMedium", event.LaneMediumDestination, pattern, payload)
}

// EmitLow publishes on the low priority lane.
func (m *Messaging) EmitLow(ctx context.Context, pattern string, payload any) error {
	return m.emit(ctx, "EmitLow", event.LaneLowDestination, pattern, payload)
}

// Emit publishes on the medium lane, the default when no priority applies.
func (m *Messaging) Emit(ctx context.Context, pattern string, payload any) error {
	return m.emit(ctx, "Emit", event.LaneMediumDestination, pattern, payload)
}

func (m *Messaging) emit(ctx context.Context, name, destination, pattern string, payload any) error {
	ctx, span := m.ins.Tracer("notification.outbound.mq").Start(ctx, name)
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, destination, messaging.OutgoingMessage{
		Body: body,
		Headers: []messaging.Header{
			{Key: event.HeaderPattern, Value: []byte(pattern)},
			{Key: keyOfCorrelationID, Value: []byte(cID)},
		},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
