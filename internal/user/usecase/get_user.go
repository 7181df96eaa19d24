package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heralddev/herald/internal/pkg/goerror"
	"github.com/heralddev/herald/internal/user/entity"
)

type GetInput struct {
	ID string `validate:"required,uuid"`
}

func (s *Usecase) Get(ctx context.Context, in GetInput) (*entity.User, error) {
	ctx, span := s.startSpan(ctx, "Get")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user", "user_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return user, nil
}
