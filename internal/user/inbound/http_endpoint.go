package inbound

import (
	"github.com/shandysiswandi/userbite/internal/pkg/goerror"
	"github.com/shandysiswandi/userbite/internal/pkg/mediator"
	"github.com/shandysiswandi/userbite/internal/pkg/router"
	"github.com/shandysiswandi/userbite/internal/user/usecase"
)

// HTTPEndpoint translates HTTP requests into user commands and queries and
// dispatches them through the mediator.
type HTTPEndpoint struct {
	m *mediator.Mediator
}

var errUserNotFound = goerror.NewNotFound("User not found")

func found(res usecase.Result[usecase.UserDTO]) (UserResponse, error) {
	user, ok := res.Get()
	if !ok {
		return UserResponse{}, errUserNotFound
	}
	return toUserResponse(user), nil
}

// GetUser returns one user by id.
// @Summary Get user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} router.successResponse{data=UserResponse}
// @Failure 400 {object} router.errorResponse "Invalid id"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/users/{id} [get]
func (h *HTTPEndpoint) GetUser(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	res, err := mediator.Send[usecase.Result[usecase.UserDTO]](r.Context(), h.m, usecase.GetUserQuery{ID: id})
	if err != nil {
		return nil, err
	}

	return found(res)
}

// FindUsers searches users by name.
// @Summary Search users
// @Description Case-insensitive substring match on given names and last name. Blank filters are ignored.
// @Tags Users
// @Produce json
// @Param given_names query string false "Given names contain"
// @Param last_name query string false "Last name contains"
// @Success 200 {object} router.successResponse{data=[]UserResponse}
// @Router /api/v1/users-search [get]
func (h *HTTPEndpoint) FindUsers(r *router.Request) (any, error) {
	users, err := mediator.Send[[]usecase.UserDTO](r.Context(), h.m, usecase.FindUsersQuery{
		GivenNames: r.GetQuery("given_names"),
		LastName:   r.GetQuery("last_name"),
	})
	if err != nil {
		return nil, err
	}

	return toUserResponses(users), nil
}

// ListUsers pages through all users.
// @Summary List users
// @Tags Users
// @Produce json
// @Param page_number query int false "Page number, starting at 1" default(1)
// @Param items_per_page query int false "Page size, at most 100" default(10)
// @Success 200 {object} router.successResponse{data=[]UserResponse}
// @Failure 400 {object} router.errorResponse "Invalid query"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/users [get]
func (h *HTTPEndpoint) ListUsers(r *router.Request) (any, error) {
	page, err := r.GetQueryInt("page_number", 1)
	if err != nil {
		return nil, err
	}
	size, err := r.GetQueryInt("items_per_page", usecase.DefaultItemsPerPage)
	if err != nil {
		return nil, err
	}

	res, err := mediator.Send[usecase.Paginated[usecase.UserDTO]](r.Context(), h.m, usecase.ListUsersQuery{
		PageNumber:   page,
		ItemsPerPage: size,
	})
	if err != nil {
		return nil, err
	}

	return ListUsersResponse{
		Users: toUserResponses(res.Data),
		Pagination: Pagination{
			PageNumber:   res.PageNumber,
			ItemsPerPage: res.ItemsPerPage,
			TotalItems:   res.Total,
			HasNextPage:  res.HasNextPage,
		},
	}, nil
}

// CreateUser registers a new user.
// @Summary Create user
// @Description A repeated Idempotency-Key returns the user created by the first request.
// @Tags Users
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client supplied key for safe retries"
// @Param request body CreateUserRequest true "User payload"
// @Success 201 {object} router.successResponse{data=UserResponse}
// @Header 201 {string} Location "/api/v1/users/{id}"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Request with the same key in progress"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/users [post]
func (h *HTTPEndpoint) CreateUser(r *router.Request) (any, error) {
	var req CreateUserRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	user, err := mediator.Send[usecase.UserDTO](r.Context(), h.m, usecase.CreateUserCommand{
		GivenNames:     req.GivenNames,
		LastName:       req.LastName,
		EmailAddress:   req.EmailAddress,
		MobileNumber:   req.MobileNumber,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return nil, err
	}

	return CreateUserResponse{User: toUserResponse(user)}, nil
}

// UpdateUser replaces the names and contact detail of a user.
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "User payload"
// @Success 200 {object} router.successResponse{data=UserResponse}
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/users/{id} [put]
func (h *HTTPEndpoint) UpdateUser(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UpdateUserRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	res, err := mediator.Send[usecase.Result[usecase.UserDTO]](r.Context(), h.m, usecase.UpdateUserCommand{
		ID:           id,
		GivenNames:   req.GivenNames,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		return nil, err
	}

	user, err := found(res)
	if err != nil {
		return nil, err
	}

	return UpdateUserResponse{User: user}, nil
}

// DeleteUser removes a user and returns it as it was.
// @Summary Delete user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} router.successResponse{data=UserResponse}
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/users/{id} [delete]
func (h *HTTPEndpoint) DeleteUser(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	res, err := mediator.Send[usecase.Result[usecase.UserDTO]](r.Context(), h.m, usecase.DeleteUserCommand{ID: id})
	if err != nil {
		return nil, err
	}

	user, err := found(res)
	if err != nil {
		return nil, err
	}

	return DeleteUserResponse{User: user}, nil
}
