package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/pkg/goerror"
)

type ListLogsInput struct {
	NotificationID string `validate:"required,uuid"`
}

func (s *Usecase) ListLogs(ctx context.Context, in ListLogsInput) ([]entity.DeliveryLog, error) {
	ctx, span := s.startSpan(ctx, "ListLogs")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.GetNotificationByID(ctx, in.NotificationID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Notification not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get notification", "notification_id", in.NotificationID, "error", err)
		return nil, goerror.NewServer(err)
	}

	logs, err := s.repoDB.ListDeliveryLogs(ctx, in.NotificationID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list delivery logs", "notification_id", in.NotificationID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return logs, nil
}
