package user

import (
	"github.com/heralddev/herald/internal/pkg/clock"
	"github.com/heralddev/herald/internal/pkg/instrument"
	"github.com/heralddev/herald/internal/pkg/router"
	"github.com/heralddev/herald/internal/pkg/uid"
	"github.com/heralddev/herald/internal/pkg/validator"
	"github.com/heralddev/herald/internal/user/inbound"
	"github.com/heralddev/herald/internal/user/outbound/db"
	"github.com/heralddev/herald/internal/user/usecase"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn     *pgxpool.Pool
	Instrument instrument.Instrumentation
	UUID       uid.StringID
	Clock      clock.Clocker
	Validator  validator.Validator
	Router     *router.Router
}

func New(dep Dependency) error {
	dbUser := db.NewDB(dep.DBConn, dep.Instrument)

	uc := usecase.NewUser(usecase.Dependency{
		RepoDB:     dbUser,
		UUID:       dep.UUID,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
