package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/pkg/clock"
	"github.com/heralddev/herald/internal/pkg/config"
	"github.com/heralddev/herald/internal/pkg/dlock"
	"github.com/heralddev/herald/internal/pkg/instrument"
	"github.com/heralddev/herald/internal/pkg/uid"
	"github.com/heralddev/herald/internal/pkg/validator"
	"github.com/heralddev/herald/internal/shared/event"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	CreateWithIdempotency(ctx context.Context, key string, keyExpiresAt time.Time, data entity.CreateNotification) (*entity.Notification, bool, error)
	GetNotificationByID(ctx context.Context, id string) (*entity.Notification, error)
	ListNotificationDetails(ctx context.Context, limit, offset int32) ([]entity.NotificationDetail, error)
	ListDeliveryLogs(ctx context.Context, notificationID string) ([]entity.DeliveryLog, error)
	ListFinishedDeliveryLogs(ctx context.Context, before time.Time) ([]entity.DeliveryLog, error)
	GetRecipient(ctx context.Context, userID string) (*entity.Recipient, error)
	UserExists(ctx context.Context, userID string) (bool, error)
	CreateDeliveryLogs(ctx context.Context, logs []entity.DeliveryLog) error
	CreateDeliveryLog(ctx context.Context, l entity.DeliveryLog) error
	UpdateNotificationStatus(ctx context.Context, id string, from, to entity.Status) (bool, error)
	DeleteExpiredIdempotencyKeys(ctx context.Context) (int64, error)
}

type repoMessaging interface {
	EmitHigh(ctx context.Context, pattern string, payload any) error
	EmitMedium(ctx context.Context, pattern string, payload any) error
	EmitLow(ctx context.Context, pattern string, payload any) error
	Emit(ctx context.Context, pattern string, payload any) error
}

// ChannelSender delivers one notification over one channel. It is exported
// so module wiring can assemble the sender set.
type ChannelSender interface {
	Channel() entity.Channel
	Send(ctx context.Context, r entity.Recipient, n entity.Notification) error
}

type repoArchive interface {
	WriteDeliveryLogs(ctx context.Context, at time.Time, logs []entity.DeliveryLog) (string, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	senders       []ChannelSender
	archive       repoArchive
	locker        dlock.Locker
	cfg           config.Config
	uid           uid.NumberID
	uuid          uid.StringID
	clock         clock.Clocker
	validator     validator.Validator
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Senders       []ChannelSender
	Archive       repoArchive
	Locker        dlock.Locker
	Config        config.Config
	UID           uid.NumberID
	UUID          uid.StringID
	Clock         clock.Clocker
	Validator     validator.Validator
	Instrument    instrument.Instrumentation
}

func NewNotification(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		senders:       dep.Senders,
		archive:       dep.Archive,
		locker:        dep.Locker,
		cfg:           dep.Config,
		uid:           dep.UID,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		validator:     dep.Validator,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

// emitForPriority routes an event to the lane matching the notification
// priority. Publish failures are logged and swallowed: the notification is
// already committed and must not fail because the broker hiccuped.
func (s *Usecase) emitForPriority(ctx context.Context, p entity.Priority, pattern string, payload any) {
	var err error
	switch p {
	case entity.PriorityHigh:
		err = s.repoMessaging.EmitHigh(ctx, pattern, payload)
	case entity.PriorityLow:
		err = s.repoMessaging.EmitLow(ctx, pattern, payload)
	default:
		err = s.repoMessaging.EmitMedium(ctx, pattern, payload)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish notification event", "pattern", pattern, "priority", p.String(), "error", err)
	}
}

// emitOutcome reports a terminal transition on the low lane, best effort.
func (s *Usecase) emitOutcome(ctx context.Context, pattern string, n *entity.Notification, status entity.Status) {
	err := s.repoMessaging.EmitLow(ctx, pattern, event.NotificationOutcomeMessage{
		NotificationID: n.ID,
		UserID:         n.UserID,
		Status:         status.String(),
		OccurredAt:     s.clock.Now(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish notification outcome", "pattern", pattern, "notification_id", n.ID, "error", err)
	}
}
