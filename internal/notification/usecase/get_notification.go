package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/pkg/goerror"
)

type GetInput struct {
	ID string `validate:"required,uuid"`
}

func (s *Usecase) Get(ctx context.Context, in GetInput) (*entity.Notification, error) {
	ctx, span := s.startSpan(ctx, "Get")
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

	return notif, nil
}
