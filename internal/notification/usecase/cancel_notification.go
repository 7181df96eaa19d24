package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/pkg/goerror"
	"github.com/heralddev/herald/internal/shared/event"
)

type CancelInput struct {
	ID string `validate:"required,uuid"`
}

type CancelOutput struct {
	ID         string
	Status     entity.Status
	CanceledAt time.Time
}

// Cancel moves a pending notification to CANCELED. Only PENDING
// notifications can be canceled; the status guard also resolves races
// against a concurrent delivery.
func (s *Usecase) Cancel(ctx context.Context, in CancelInput) (*CancelOutput, error) {
	ctx, span := s.startSpan(ctx, "Cancel")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	notif, err := s.repoDB.GetNotificationByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Notification not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get notification", "notification_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if notif.Status != entity.StatusPending {
		return nil, goerror.NewBusiness("Notification is already "+notif.Status.String()+" and cannot be canceled", goerror.CodeConflict)
	}

	ok, err := s.repoDB.UpdateNotificationStatus(ctx, notif.ID, entity.StatusPending, entity.StatusCanceled)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo cancel notification", "notification_id", notif.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !ok {
		// A delivery finished between our read and the update.
		return nil, goerror.NewBusiness("Notification is no longer pending and cannot be canceled", goerror.CodeConflict)
	}

	s.emitOutcome(ctx, event.PatternNotificationCanceled, notif, entity.StatusCanceled)

	return &CancelOutput{
		ID:         notif.ID,
		Status:     entity.StatusCanceled,
		CanceledAt: s.clock.Now(),
	}, nil
}
