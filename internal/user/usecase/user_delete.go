package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/userbite/internal/pkg/goerror"
)

// DeleteUserCommand removes a user and their contact detail.
type DeleteUserCommand struct {
	ID int64
}

// DeleteUser returns the user as it was before removal.
func (s *Usecase) DeleteUser(ctx context.Context, cmd DeleteUserCommand) (Result[UserDTO], error) {
	ctx, span := s.startSpan(ctx, "DeleteUser")
	defer span.End()

	user, err := s.repoDB.DeleteUser(ctx, cmd.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user to delete not found", "user_id", cmd.ID)
		return NotFound[UserDTO](), nil
	}
	if err != nil {
		return Result[UserDTO]{}, repoFailure(ctx, span, "failed to repo delete user", err, "user_id", cmd.ID)
	}

	s.publish(ctx, EventUserDeleted, *user)

	return Found(toUserDTO(*user)), nil
}
