package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/heralddev/herald/internal/pkg/config"
	"github.com/heralddev/herald/internal/pkg/goroutine"
	"github.com/heralddev/herald/internal/pkg/instrument"
	"github.com/heralddev/herald/internal/pkg/messaging"
	"github.com/heralddev/herald/internal/pkg/uid"
	"github.com/heralddev/herald/internal/shared/event"
)

// RegisterMQConsumer starts one worker group per priority lane. Higher lanes
// get more concurrency so urgent notifications drain first under load.
func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.notification.consumer_names")

	var consumers = []struct {
		name        string
		topic       string // destination where publisher sent message
		concurrency int
		maxInFlight int
	}{
		{
			name:        event.LaneHighConsumer,
			topic:       event.LaneHighDestination,
			concurrency: 20,
			maxInFlight: 20,
		},
		{
			name:        event.LaneMediumConsumer,
			topic:       event.LaneMediumDestination,
			concurrency: 10,
			maxInFlight: 10,
		},
		{
			name:        event.LaneLowConsumer,
			topic:       event.LaneLowDestination,
			concurrency: 3,
			maxInFlight: 3,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					mqHandler.HandleLaneMessage,
					messaging.WithChannel(consumer.name),
					messaging.WithQueueGroup(consumer.name),
					messaging.WithGroup(consumer.name),
					messaging.WithSubscription(consumer.name),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(consumer.concurrency),
					messaging.WithMaxInFlight(consumer.maxInFlight),
				)
			})
		}
	}
}
