package app

import (
	"log/slog"
	"os"

	"github.com/heralddev/herald/internal/notification"
	"github.com/heralddev/herald/internal/user"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.user.enabled") {
		if err := user.New(user.Dependency{
			DBConn:     a.dbConn,
			Instrument: a.ins,
			UUID:       a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
			Router:     a.router,
		}); err != nil {
			slog.Error("failed to init module user", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			DBConn:     a.dbConn,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			Clock:      a.clock,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			Router:     a.router,
			Mail:       a.mail,
			Storage:    a.storage,
			Locker:     a.locker,
			HMAC:       a.hmac,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
