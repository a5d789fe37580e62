package mediator

import (
	"context"
	"strings"
)

// Failure describes one violated rule on a request field.
type Failure struct {
	// Field is the path of the offending field, e.g. "GivenNames".
	Field string
	// Message is the human readable reason.
	Message string
}

// Outcome is the verdict of one validator for one request.
//
// An Outcome without failures is valid.
type Outcome struct {
	Failures []Failure
}

// Valid returns an outcome reporting no failures.
func Valid() Outcome {
	return Outcome{}
}

// Invalid returns an outcome carrying the given failures in order.
func Invalid(failures ...Failure) Outcome {
	return Outcome{Failures: failures}
}

// IsValid reports whether the outcome carries no failures.
func (o Outcome) IsValid() bool {
	return len(o.Failures) == 0
}

// Validator inspects a request and reports its outcome.
//
// Implementations must not mutate the request or any shared state; they may
// perform read-only lookups and must honor ctx. A returned error means the
// check itself could not complete and is propagated to the caller as is.
type Validator[R any] interface {
	Validate(ctx context.Context, req R) (Outcome, error)
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc[R any] func(ctx context.Context, req R) (Outcome, error)

// Validate calls f(ctx, req).
func (f ValidatorFunc[R]) Validate(ctx context.Context, req R) (Outcome, error) {
	return f(ctx, req)
}

// ValidationError aggregates the failures of every validator that reported
// the request invalid. Order across validators is not significant.
type ValidationError struct {
	Failures []Failure
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Failures) == 0 {
		return "mediator: validation failed"
	}

	var b strings.Builder
	b.WriteString("mediator: validation failed: ")
	for i, f := range e.Failures {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Field)
		b.WriteString(": ")
		b.WriteString(f.Message)
	}

	return b.String()
}
