package usecase

import (
	"errors"

	"github.com/shandysiswandi/userbite/internal/pkg/mediator"
	"github.com/shandysiswandi/userbite/internal/pkg/validator"
)

// Register binds every user command and query to its handler on b.
func (s *Usecase) Register(b *mediator.Builder, v validator.Validator) error {
	return errors.Join(
		mediator.Register(b, mediator.HandlerFunc[CreateUserCommand, UserDTO](s.CreateUser), createUserValidators(v)...),
		mediator.Register(b, mediator.HandlerFunc[UpdateUserCommand, Result[UserDTO]](s.UpdateUser), updateUserValidators(v)...),
		mediator.Register(b, mediator.HandlerFunc[DeleteUserCommand, Result[UserDTO]](s.DeleteUser), deleteUserValidators(v)...),
		mediator.Register(b, mediator.HandlerFunc[GetUserQuery, Result[UserDTO]](s.GetUser), getUserValidators(v)...),
		mediator.Register(b, mediator.HandlerFunc[FindUsersQuery, []UserDTO](s.FindUsers)),
		mediator.Register(b, mediator.HandlerFunc[ListUsersQuery, Paginated[UserDTO]](s.ListUsers), listUsersValidators(v)...),
	)
}
