package usecase

import (
	"context"
)

// DefaultItemsPerPage is used by callers that receive no page size.
const DefaultItemsPerPage = 10

// ListUsersQuery pages through all users in insertion order.
type ListUsersQuery struct {
	PageNumber   int
	ItemsPerPage int
}

func (s *Usecase) ListUsers(ctx context.Context, q ListUsersQuery) (Paginated[UserDTO], error) {
	ctx, span := s.startSpan(ctx, "ListUsers")
	defer span.End()

	// PageNumber and ItemsPerPage are bounded by validation, so the product
	// fits in int64.
	offset := (int64(q.PageNumber) - 1) * int64(q.ItemsPerPage)
	page, err := s.repoDB.ListUsers(ctx, int(offset), q.ItemsPerPage)
	if err != nil {
		return Paginated[UserDTO]{}, repoFailure(ctx, span, "failed to repo list users", err, "page_number", q.PageNumber, "items_per_page", q.ItemsPerPage)
	}

	return Paginated[UserDTO]{
		Data:         toUserDTOs(page.Users),
		HasNextPage:  int64(q.PageNumber)*int64(q.ItemsPerPage) < page.Total,
		Total:        page.Total,
		PageNumber:   q.PageNumber,
		ItemsPerPage: q.ItemsPerPage,
	}, nil
}
