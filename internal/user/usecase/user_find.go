package usecase

import (
	"context"

	"github.com/shandysiswandi/userbite/internal/user/entity"
)

// FindUsersQuery searches users by name. Blank fields match everyone.
type FindUsersQuery struct {
	GivenNames string
	LastName   string
}

func (s *Usecase) FindUsers(ctx context.Context, q FindUsersQuery) ([]UserDTO, error) {
	ctx, span := s.startSpan(ctx, "FindUsers")
	defer span.End()

	users, err := s.repoDB.FindUsers(ctx, entity.UserFilter{GivenNames: q.GivenNames, LastName: q.LastName})
	if err != nil {
		return nil, repoFailure(ctx, span, "failed to repo find users", err, "given_names", q.GivenNames, "last_name", q.LastName)
	}

	return toUserDTOs(users), nil
}
