package usecase

import (
	"context"
	"errors"

	"github.com/shandysiswandi/userbite/internal/pkg/goerror"
)

type GetUserQuery struct {
	ID int64
}

func (s *Usecase) GetUser(ctx context.Context, q GetUserQuery) (Result[UserDTO], error) {
	ctx, span := s.startSpan(ctx, "GetUser")
	defer span.End()

	user, err := s.repoDB.GetUserByID(ctx, q.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return NotFound[UserDTO](), nil
	}
	if err != nil {
		return Result[UserDTO]{}, repoFailure(ctx, span, "failed to repo get user by id", err, "user_id", q.ID)
	}

	return Found(toUserDTO(*user)), nil
}
