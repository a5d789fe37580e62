package user

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/userbite/internal/pkg/clock"
	"github.com/shandysiswandi/userbite/internal/pkg/config"
	"github.com/shandysiswandi/userbite/internal/pkg/goroutine"
	"github.com/shandysiswandi/userbite/internal/pkg/idempotency"
	"github.com/shandysiswandi/userbite/internal/pkg/instrument"
	"github.com/shandysiswandi/userbite/internal/pkg/mediator"
	"github.com/shandysiswandi/userbite/internal/pkg/messaging"
	"github.com/shandysiswandi/userbite/internal/pkg/router"
	"github.com/shandysiswandi/userbite/internal/pkg/uid"
	"github.com/shandysiswandi/userbite/internal/pkg/validator"
	"github.com/shandysiswandi/userbite/internal/user/entity"
	"github.com/shandysiswandi/userbite/internal/user/inbound"
	"github.com/shandysiswandi/userbite/internal/user/outbound/db"
	"github.com/shandysiswandi/userbite/internal/user/outbound/mq"
	"github.com/shandysiswandi/userbite/internal/user/usecase"
)

type Dependency struct {
	// DBConn selects the Postgres store; nil keeps users in memory.
	DBConn *pgxpool.Pool
	// Idempotency is optional; nil disables Idempotency-Key handling.
	Idempotency idempotency.Idempotency

	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Publisher        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(ctx context.Context, dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	ucDep := usecase.Dependency{
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Idempotency:   dep.Idempotency,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	}

	if dep.DBConn != nil {
		store := db.NewDB(dep.DBConn, dep.Instrument)
		if err := store.Migrate(ctx); err != nil {
			return err
		}
		ucDep.RepoDB = store
	} else {
		var seed []entity.User
		if dep.Config.GetBool("database.memory.seed") {
			seed = db.SeedUsers()
		}
		slog.InfoContext(ctx, "user module uses the in-memory store", "seeded_users", len(seed))
		ucDep.RepoDB = db.NewMemory(dep.Instrument, seed...)
	}

	uc := usecase.New(ucDep)

	b := mediator.NewBuilder(mediator.WithInstrument(dep.Instrument))
	if err := uc.Register(b, dep.Validator); err != nil {
		return err
	}

	inbound.RegisterHTTPEndpoint(dep.Router, b.Build())

	return nil
}
