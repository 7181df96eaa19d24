package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/pkg/goerror"
	"github.com/heralddev/herald/internal/pkg/valueobject"
	"github.com/heralddev/herald/internal/shared/event"
)

type CreateInput struct {
	UserID         string `validate:"required,uuid"`
	ExternalID     string `validate:"required"`
	TemplateName   string `validate:"required,slug"`
	Content        valueobject.JSONMap
	Priority       string `validate:"required,oneof=high medium low"`
	IdempotencyKey string `validate:"required,uuid"`
}

// Create registers a notification exactly once per idempotency key and per
// (user, external id) pair, then asks a delivery worker to fan it out.
func (s *Usecase) Create(ctx context.Context, in CreateInput) (*entity.Notification, error) {
	ctx, span := s.startSpan(ctx, "Create")
	defer span.End()

	in.TemplateName = entity.NormalizeTemplateName(in.TemplateName)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	exists, err := s.repoDB.UserExists(ctx, in.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check user exists", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !exists {
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}

	keyExpiresAt := s.clock.Now().Add(s.cfg.GetHour("modules.notification.idempotency_ttl_hours"))
	notif, created, err := s.repoDB.CreateWithIdempotency(ctx, in.IdempotencyKey, keyExpiresAt, entity.CreateNotification{
		ID:           s.uuid.Generate(),
		UserID:       in.UserID,
		ExternalID:   in.ExternalID,
		TemplateName: in.TemplateName,
		Content:      in.Content,
		Priority:     entity.PriorityFromString(in.Priority),
	})
	if errors.Is(err, goerror.ErrConflict) {
		return nil, goerror.NewBusiness("Request is already being processed, retry later", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create notification", "user_id", in.UserID, "external_id", in.ExternalID, "error", err)
		return nil, goerror.NewServer(err)
	}

	// Replays and dedup hits return the stored notification without
	// re-emitting the pending event.
	if created {
		s.emitForPriority(ctx, notif.Priority, event.PatternNotificationPending, event.NotificationPendingMessage{
			NotificationID: notif.ID,
			UserID:         notif.UserID,
		})
	}

	return notif, nil
}
