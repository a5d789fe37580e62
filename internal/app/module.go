package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/userbite/internal/user"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.users.enabled") {
		if err := user.New(a.ctx, user.Dependency{
			DBConn:      a.dbConn,
			Idempotency: a.idemp,
			Goroutine:   a.goroutine,
			Router:      a.router,
			Messaging:   a.messaging,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			Clock:       a.clock,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module users", "error", err)
			os.Exit(1)
		}
	}
}
