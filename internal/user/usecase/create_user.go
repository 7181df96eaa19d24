package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heralddev/herald/internal/pkg/goerror"
	"github.com/heralddev/herald/internal/user/entity"
)

type CreateInput struct {
	Email       string `validate:"required,email"`
	FullName    string `validate:"required,min=2,max=100"`
	PhoneNumber string `validate:"omitempty,phone"`
	PushToken   string `validate:"omitempty,max=255"`
}

type CreateOutput struct {
	ID    string
	Email string
}

// Create registers a user with every notification channel enabled. The
// channels a notification can actually use still depend on which contact
// details the user provided.
func (s *Usecase) Create(ctx context.Context, in CreateInput) (*CreateOutput, error) {
	ctx, span := s.startSpan(ctx, "Create")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	id := s.uuid.Generate()
	err := s.repoDB.CreateUserWithPreferences(ctx,
		entity.CreateUser{
			ID:          id,
			Email:       in.Email,
			FullName:    in.FullName,
			PhoneNumber: in.PhoneNumber,
			PushToken:   in.PushToken,
		},
		entity.Preferences{
			UserID:     id,
			AllowEmail: true,
			AllowSMS:   true,
			AllowPush:  true,
		},
	)
	if errors.Is(err, goerror.ErrConflict) {
		return nil, goerror.NewBusiness("Email is already registered", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create user", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CreateOutput{ID: id, Email: in.Email}, nil
}
