package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/userbite/internal/pkg/clock"
	"github.com/shandysiswandi/userbite/internal/pkg/goerror"
	"github.com/shandysiswandi/userbite/internal/pkg/goroutine"
	"github.com/shandysiswandi/userbite/internal/pkg/idempotency"
	"github.com/shandysiswandi/userbite/internal/pkg/instrument"
	"github.com/shandysiswandi/userbite/internal/pkg/uid"
	"github.com/shandysiswandi/userbite/internal/user/entity"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// EventKind names a user lifecycle event.
type EventKind string

const (
	EventUserCreated EventKind = "user_created"
	EventUserUpdated EventKind = "user_updated"
	EventUserDeleted EventKind = "user_deleted"
)

// UserEvent is published after a user was changed.
type UserEvent struct {
	Kind       EventKind
	User       UserDTO
	OccurredAt time.Time
}

type repoMessaging interface {
	PublishUserEvent(ctx context.Context, evt UserEvent) error
}

type repoDB interface {
	CreateUser(ctx context.Context, user entity.User) error
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	FindUsers(ctx context.Context, filter entity.UserFilter) ([]entity.User, error)
	ListUsers(ctx context.Context, offset, limit int) (*entity.UserPage, error)
	UpdateUser(ctx context.Context, user entity.User) error
	DeleteUser(ctx context.Context, id int64) (*entity.User, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	// Idempotency is optional; without it Idempotency-Key is ignored.
	Idempotency idempotency.Idempotency
	UID         uid.NumberID
	Clock       clock.Clocker
	Instrument  instrument.Instrumentation
	Goroutine   *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	ins := dep.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}
	clk := dep.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		uid:           dep.UID,
		clock:         clk,
		ins:           ins,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("user.usecase").Start(ctx, name)
}

// repoFailure converts a repository error into the error returned to callers.
// Cancellation passes through untouched.
func repoFailure(ctx context.Context, span trace.Span, msg string, err error, args ...any) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	slog.ErrorContext(ctx, msg, append(args, "error", err)...)

	return goerror.NewServer(err)
}

// publish sends the event in the background. The request context is detached
// so the publish outlives the response.
func (s *Usecase) publish(ctx context.Context, kind EventKind, user entity.User) {
	if s.repoMessaging == nil {
		return
	}

	evt := UserEvent{Kind: kind, User: toUserDTO(user), OccurredAt: s.clock.Now()}
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishUserEvent(ctx, evt); err != nil {
			slog.ErrorContext(ctx, "failed to publish user event", "kind", kind, "user_id", user.ID, "error", err)
		}
		return nil
	})
}
