package usecase

import (
	"context"
	"log/slog"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/pkg/goerror"
)

type ListInput struct {
	Limit  int32 `validate:"omitempty,min=1,max=100"`
	Offset int32 `validate:"omitempty,min=0"`
}

func (s *Usecase) List(ctx context.Context, in ListInput) ([]entity.NotificationDetail, error) {
	ctx, span := s.startSpan(ctx, "List")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Limit == 0 {
		in.Limit = 20
	}

	items, err := s.repoDB.ListNotificationDetails(ctx, in.Limit, in.Offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list notifications", "error", err)
		return nil, goerror.NewServer(err)
	}

	return items, nil
}
