package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heralddev/herald/internal/pkg/goerror"
	"github.com/heralddev/herald/internal/user/entity"
)

type GetPreferencesInput struct {
	UserID string `validate:"required,uuid"`
}

func (s *Usecase) GetPreferences(ctx context.Context, in GetPreferencesInput) (*entity.Preferences, error) {
	ctx, span := s.startSpan(ctx, "GetPreferences")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	prefs, err := s.repoDB.GetPreferences(ctx, in.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get preferences", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return prefs, nil
}

type UpdatePreferencesInput struct {
	UserID     string `validate:"required,uuid"`
	AllowEmail bool
	AllowSMS   bool
	AllowPush  bool
}

func (s *Usecase) UpdatePreferences(ctx context.Context, in UpdatePreferencesInput) (*entity.Preferences, error) {
	ctx, span := s.startSpan(ctx, "UpdatePreferences")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	prefs := entity.Preferences{
		UserID:     in.UserID,
		AllowEmail: in.AllowEmail,
		AllowSMS:   in.AllowSMS,
		AllowPush:  in.AllowPush,
		UpdatedAt:  s.clock.Now(),
	}

	err := s.repoDB.UpdatePreferences(ctx, prefs)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update preferences", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &prefs, nil
}
