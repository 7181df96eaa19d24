package usecase

import (
	"context"

	"github.com/heralddev/herald/internal/pkg/clock"
	"github.com/heralddev/herald/internal/pkg/instrument"
	"github.com/heralddev/herald/internal/pkg/uid"
	"github.com/heralddev/herald/internal/pkg/validator"
	"github.com/heralddev/herald/internal/user/entity"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	CreateUserWithPreferences(ctx context.Context, user entity.CreateUser, prefs entity.Preferences) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	GetPreferences(ctx context.Context, userID string) (*entity.Preferences, error)
	UpdatePreferences(ctx context.Context, p entity.Preferences) error
}

type Usecase struct {
	repoDB    repoDB
	uuid      uid.StringID
	clock     clock.Clocker
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	UUID       uid.StringID
	Clock      clock.Clocker
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func NewUser(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		uuid:      dep.UUID,
		clock:     dep.Clock,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("user.usecase").Start(ctx, name)
}
