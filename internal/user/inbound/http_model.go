package inbound

import (
	"net/http"
	"strconv"

	"github.com/samber/lo"
	"github.com/shandysiswandi/userbite/internal/user/usecase"
)

type UserResponse struct {
	ID           int64  `json:"id,string" example:"1893726405612781568"`
	GivenNames   string `json:"given_names" example:"Jane"`
	LastName     string `json:"last_name" example:"Doe"`
	FullName     string `json:"full_name" example:"Jane Doe"`
	EmailAddress string `json:"email_address" example:"jane@example.com"`
	MobileNumber string `json:"mobile_number" example:"+1 555 0100"`
}

func toUserResponse(u usecase.UserDTO) UserResponse {
	return UserResponse{
		ID:           u.ID,
		GivenNames:   u.GivenNames,
		LastName:     u.LastName,
		FullName:     u.FullName,
		EmailAddress: u.EmailAddress,
		MobileNumber: u.MobileNumber,
	}
}

func toUserResponses(users []usecase.UserDTO) []UserResponse {
	return lo.Map(users, func(u usecase.UserDTO, _ int) UserResponse {
		return toUserResponse(u)
	})
}

type CreateUserRequest struct {
	GivenNames   string `json:"given_names"`
	LastName     string `json:"last_name"`
	EmailAddress string `json:"email_address"`
	MobileNumber string `json:"mobile_number"`
}

type CreateUserResponse struct {
	User UserResponse
}

func (CreateUserResponse) StatusCode() int {
	return http.StatusCreated
}

func (CreateUserResponse) Message() string {
	return "User created successfully"
}

func (r CreateUserResponse) Header() http.Header {
	h := http.Header{}
	h.Set("Location", "/api/v1/users/"+strconv.FormatInt(r.User.ID, 10))
	return h
}

func (r CreateUserResponse) Data() any {
	return r.User
}

type UpdateUserRequest struct {
	GivenNames   string `json:"given_names"`
	LastName     string `json:"last_name"`
	EmailAddress string `json:"email_address"`
	MobileNumber string `json:"mobile_number"`
}

type UpdateUserResponse struct {
	User UserResponse
}

func (UpdateUserResponse) Message() string {
	return "User updated successfully"
}

func (r UpdateUserResponse) Data() any {
	return r.User
}

type DeleteUserResponse struct {
	User UserResponse
}

func (DeleteUserResponse) Message() string {
	return "User deleted successfully"
}

func (r DeleteUserResponse) Data() any {
	return r.User
}

type Pagination struct {
	PageNumber   int   `json:"page_number"`
	ItemsPerPage int   `json:"items_per_page"`
	TotalItems   int64 `json:"total_items"`
	HasNextPage  bool  `json:"has_next_page"`
}

type ListUsersResponse struct {
	Users      []UserResponse
	Pagination Pagination
}

func (r ListUsersResponse) Data() any {
	return r.Users
}

func (r ListUsersResponse) Meta() map[string]any {
	return map[string]any{"pagination": r.Pagination}
}
