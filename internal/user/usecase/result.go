package usecase

// Result is the outcome of an operation addressing a single user by id.
// A missing user is a regular outcome, not an error.
type Result[T any] struct {
	value T
	found bool
}

// Found wraps an existing value.
func Found[T any](v T) Result[T] {
	return Result[T]{value: v, found: true}
}

// NotFound reports that the addressed entity does not exist.
func NotFound[T any]() Result[T] {
	return Result[T]{}
}

// Get returns the value and whether it exists.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.found
}

// IsNotFound reports whether the entity was missing.
func (r Result[T]) IsNotFound() bool {
	return !r.found
}

// Paginated is one page of items with the information needed to continue.
type Paginated[T any] struct {
	Data         []T
	HasNextPage  bool
	Total        int64
	PageNumber   int
	ItemsPerPage int
}
