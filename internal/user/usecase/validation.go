package usecase

import (
	"github.com/shandysiswandi/userbite/internal/pkg/mediator"
	"github.com/shandysiswandi/userbite/internal/pkg/validator"
)

// The structs below are the rule views checked for each request. Each view
// is one independent validator so failures from all of them are reported
// together.

type requiredUserFields struct {
	GivenNames   string `validate:"required,notblank"`
	LastName     string `validate:"required,notblank"`
	EmailAddress string `validate:"required,notblank"`
	MobileNumber string `validate:"required,notblank"`
}

type requiredUpdateFields struct {
	ID           int64  `validate:"gt=0"`
	GivenNames   string `validate:"required,notblank"`
	LastName     string `validate:"required,notblank"`
	EmailAddress string `validate:"required,notblank"`
	MobileNumber string `validate:"required,notblank"`
}

type contactFields struct {
	EmailAddress string `validate:"omitempty,email"`
	MobileNumber string `validate:"omitempty,phone"`
}

type userIdentity struct {
	ID int64 `validate:"gt=0"`
}

type pageWindow struct {
	PageNumber   int `validate:"gt=0,lte=2147483647"`
	ItemsPerPage int `validate:"gt=0,lte=100"`
}

func createUserValidators(v validator.Validator) []mediator.Validator[CreateUserCommand] {
	return []mediator.Validator[CreateUserCommand]{
		validator.Rules(v, func(c CreateUserCommand) any {
			return requiredUserFields{
				GivenNames:   c.GivenNames,
				LastName:     c.LastName,
				EmailAddress: c.EmailAddress,
				MobileNumber: c.MobileNumber,
			}
		}),
		validator.Rules(v, func(c CreateUserCommand) any {
			return contactFields{EmailAddress: c.EmailAddress, MobileNumber: c.MobileNumber}
		}),
	}
}

func updateUserValidators(v validator.Validator) []mediator.Validator[UpdateUserCommand] {
	return []mediator.Validator[UpdateUserCommand]{
		validator.Rules(v, func(c UpdateUserCommand) any {
			return requiredUpdateFields{
				ID:           c.ID,
				GivenNames:   c.GivenNames,
				LastName:     c.LastName,
				EmailAddress: c.EmailAddress,
				MobileNumber: c.MobileNumber,
			}
		}),
		validator.Rules(v, func(c UpdateUserCommand) any {
			return contactFields{EmailAddress: c.EmailAddress, MobileNumber: c.MobileNumber}
		}),
	}
}

func deleteUserValidators(v validator.Validator) []mediator.Validator[DeleteUserCommand] {
	return []mediator.Validator[DeleteUserCommand]{
		validator.Rules(v, func(c DeleteUserCommand) any { return userIdentity{ID: c.ID} }),
	}
}

func getUserValidators(v validator.Validator) []mediator.Validator[GetUserQuery] {
	return []mediator.Validator[GetUserQuery]{
		validator.Rules(v, func(q GetUserQuery) any { return userIdentity{ID: q.ID} }),
	}
}

func listUsersValidators(v validator.Validator) []mediator.Validator[ListUsersQuery] {
	return []mediator.Validator[ListUsersQuery]{
		validator.Rules(v, func(q ListUsersQuery) any {
			return pageWindow{PageNumber: q.PageNumber, ItemsPerPage: q.ItemsPerPage}
		}),
	}
}
