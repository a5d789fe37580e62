package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/userbite/internal/pkg/goerror"
	"github.com/shandysiswandi/userbite/internal/user/entity"
)

// UpdateUserCommand replaces the names and contact detail of a user.
type UpdateUserCommand struct {
	ID           int64
	GivenNames   string
	LastName     string
	EmailAddress string
	MobileNumber string
}

func (s *Usecase) UpdateUser(ctx context.Context, cmd UpdateUserCommand) (Result[UserDTO], error) {
	ctx, span := s.startSpan(ctx, "UpdateUser")
	defer span.End()

	user := entity.User{
		ID:         cmd.ID,
		GivenNames: strings.TrimSpace(cmd.GivenNames),
		LastName:   strings.TrimSpace(cmd.LastName),
		ContactDetail: entity.ContactDetail{
			EmailAddress: strings.TrimSpace(cmd.EmailAddress),
			MobileNumber: strings.TrimSpace(cmd.MobileNumber),
		},
	}

	err := s.repoDB.UpdateUser(ctx, user)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user to update not found", "user_id", cmd.ID)
		return NotFound[UserDTO](), nil
	}
	if err != nil {
		return Result[UserDTO]{}, repoFailure(ctx, span, "failed to repo update user", err, "user_id", cmd.ID)
	}

	s.publish(ctx, EventUserUpdated, user)

	return Found(toUserDTO(user)), nil
}
