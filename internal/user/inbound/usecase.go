package inbound

import (
	"context"

	"github.com/heralddev/herald/internal/user/entity"
	"github.com/heralddev/herald/internal/user/usecase"
)

type uc interface {
	Create(ctx context.Context, in usecase.CreateInput) (*usecase.CreateOutput, error)
	Get(ctx context.Context, in usecase.GetInput) (*entity.User, error)
	GetPreferences(ctx context.Context, in usecase.GetPreferencesInput) (*entity.Preferences, error)
	UpdatePreferences(ctx context.Context, in usecase.UpdatePreferencesInput) (*entity.Preferences, error)
}
