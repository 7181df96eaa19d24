package notification

import (
	"context"

	"github.com/heralddev/herald/internal/notification/inbound"
	"github.com/heralddev/herald/internal/notification/outbound/archive"
	"github.com/heralddev/herald/internal/notification/outbound/db"
	"github.com/heralddev/herald/internal/notification/outbound/mq"
	"github.com/heralddev/herald/internal/notification/outbound/sender"
	"github.com/heralddev/herald/internal/notification/usecase"
	"github.com/heralddev/herald/internal/pkg/clock"
	"github.com/heralddev/herald/internal/pkg/config"
	"github.com/heralddev/herald/internal/pkg/dlock"
	"github.com/heralddev/herald/internal/pkg/goroutine"
	"github.com/heralddev/herald/internal/pkg/hash"
	"github.com/heralddev/herald/internal/pkg/instrument"
	"github.com/heralddev/herald/internal/pkg/mail"
	"github.com/heralddev/herald/internal/pkg/messaging"
	"github.com/heralddev/herald/internal/pkg/router"
	"github.com/heralddev/herald/internal/pkg/storage"
	"github.com/heralddev/herald/internal/pkg/uid"
	"github.com/heralddev/herald/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	Ctx        context.Context
	DBConn     *pgxpool.Pool
	Messaging  messaging.Messaging
	Config     config.Config
	Instrument instrument.Instrumentation
	UID        uid.NumberID
	UUID       uid.StringID
	Clock      clock.Clocker
	Goroutine  *goroutine.Manager
	Validator  validator.Validator
	Router     *router.Router
	Mail       mail.Mail
	Storage    storage.Storage
	Locker     dlock.Locker
	HMAC       hash.Hash
}

func New(dep Dependency) error {
	dbNotif := db.NewDB(dep.DBConn, dep.Instrument)
	repoMQ := mq.NewMessaging(dep.Messaging, dep.Instrument)
	repoArchive := archive.New(dep.Storage, dep.Config.GetString("storage.buckets.archive"), dep.Instrument)

	senders := []usecase.ChannelSender{
		sender.NewEmail(dep.Mail, dep.Instrument),
		sender.NewSMS(
			dep.Config.GetString("providers.sms.endpoint"),
			dep.Config.GetString("providers.sms.api_key"),
			dep.Instrument,
		),
		sender.NewPush(
			dep.Config.GetString("providers.push.endpoint"),
			dep.Config.GetString("providers.push.api_key"),
			dep.Instrument,
		),
	}

	uc := usecase.NewNotification(usecase.Dependency{
		RepoDB:        dbNotif,
		RepoMessaging: repoMQ,
		Senders:       senders,
		Archive:       repoArchive,
		Locker:        dep.Locker,
		Config:        dep.Config,
		UID:           dep.UID,
		UUID:          dep.UUID,
		Clock:         dep.Clock,
		Validator:     dep.Validator,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.HMAC)
	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
		inbound.RegisterScheduledJobs(dep.Ctx, dep.Config, dep.Goroutine, uc)
	}

	return nil
}
