package usecase

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/userbite/internal/user/entity"
)

// UserDTO is the outward representation of a user.
type UserDTO struct {
	ID           int64  `json:"id"`
	GivenNames   string `json:"given_names"`
	LastName     string `json:"last_name"`
	FullName     string `json:"full_name"`
	EmailAddress string `json:"email_address"`
	MobileNumber string `json:"mobile_number"`
}

func toUserDTO(u entity.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		GivenNames:   u.GivenNames,
		LastName:     u.LastName,
		FullName:     u.FullName(),
		EmailAddress: u.ContactDetail.EmailAddress,
		MobileNumber: u.ContactDetail.MobileNumber,
	}
}

func toUserDTOs(users []entity.User) []UserDTO {
	return lo.Map(users, func(u entity.User, _ int) UserDTO {
		return toUserDTO(u)
	})
}
