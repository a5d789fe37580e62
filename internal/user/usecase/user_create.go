package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/userbite/internal/pkg/goerror"
	"github.com/shandysiswandi/userbite/internal/pkg/idempotency"
	"github.com/shandysiswandi/userbite/internal/user/entity"
	"go.opentelemetry.io/otel/trace"
)

// CreateUserCommand registers a new user.
type CreateUserCommand struct {
	GivenNames   string
	LastName     string
	EmailAddress string
	MobileNumber string

	// IdempotencyKey, when set, makes retries return the first created user.
	IdempotencyKey string
}

func (s *Usecase) CreateUser(ctx context.Context, cmd CreateUserCommand) (UserDTO, error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer span.End()

	key := strings.TrimSpace(cmd.IdempotencyKey)
	if key == "" || s.idemp == nil {
		return s.createUser(ctx, cmd)
	}

	raw, replayed, err := s.idemp.Exec(ctx, key, func(ctx context.Context) ([]byte, error) {
		dto, err := s.createUser(ctx, cmd)
		if err != nil {
			return nil, err
		}
		return json.Marshal(dto)
	})
	if errors.Is(err, idempotency.ErrAlreadyInProgress) {
		slog.WarnContext(ctx, "create user with same idempotency key in progress", "idempotency_key", key)
		return UserDTO{}, goerror.NewBusiness("A request with this Idempotency-Key is still in progress", goerror.CodeConflict)
	}
	if err != nil {
		var gerr *goerror.Error
		if errors.As(err, &gerr) {
			return UserDTO{}, err
		}
		return UserDTO{}, repoFailure(ctx, span, "failed to run idempotent create user", err, "idempotency_key", key)
	}

	var dto UserDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return UserDTO{}, repoFailure(ctx, span, "failed to decode stored create user result", err, "idempotency_key", key)
	}
	if replayed {
		slog.InfoContext(ctx, "create user replayed from idempotency key", "idempotency_key", key, "user_id", dto.ID)
	}

	return dto, nil
}

func (s *Usecase) createUser(ctx context.Context, cmd CreateUserCommand) (UserDTO, error) {
	user := entity.User{
		ID:         s.uid.Generate(),
		GivenNames: strings.TrimSpace(cmd.GivenNames),
		LastName:   strings.TrimSpace(cmd.LastName),
		ContactDetail: entity.ContactDetail{
			EmailAddress: strings.TrimSpace(cmd.EmailAddress),
			MobileNumber: strings.TrimSpace(cmd.MobileNumber),
		},
	}

	if err := s.repoDB.CreateUser(ctx, user); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "user id already taken", "user_id", user.ID)
			return UserDTO{}, goerror.NewBusiness("User already exists", goerror.CodeConflict)
		}
		return UserDTO{}, repoFailure(ctx, trace.SpanFromContext(ctx), "failed to repo create user", err, "user_id", user.ID)
	}

	s.publish(ctx, EventUserCreated, user)

	return toUserDTO(user), nil
}
