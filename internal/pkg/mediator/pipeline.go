package mediator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/userbite/internal/pkg/stacktrace"
	"golang.org/x/sync/errgroup"
)

// ErrValidatorPanic is returned when a validator panics.
var ErrValidatorPanic = errors.New("mediator: validator panicked")

// Next is the remainder of the processing chain, ending in the handler.
type Next[T any] func(ctx context.Context) (T, error)

// Validate runs every validator against req concurrently and waits for all of
// them. If any of them reports failures, next is not called and a
// *ValidationError holding all failures is returned. Otherwise next is called
// exactly once and its result is returned unchanged.
//
// Cancellation of ctx observed before the verdict is reached wins over both
// validation failures and validator errors: the context error is returned and
// next is not called. Errors returned by a validator or by next are not
// wrapped.
func Validate[R, T any](ctx context.Context, req R, validators []Validator[R], next Next[T]) (T, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	if len(validators) > 0 {
		failures, err := collect(ctx, req, validators)
		if err != nil {
			return zero, err
		}

		if len(failures) > 0 {
			return zero, &ValidationError{Failures: failures}
		}
	}

	return next(ctx)
}

func collect[R any](ctx context.Context, req R, validators []Validator[R]) ([]Failure, error) {
	outcomes := make([]Outcome, len(validators))

	g, gctx := errgroup.WithContext(ctx)
	for i, v := range validators {
		g.Go(func() (err error) {
			defer func() {
				if rvr := recover(); rvr != nil {
					slog.ErrorContext(ctx, "panic occurred in validator", "because", rvr, "stack", stacktrace.Capture(0))
					err = fmt.Errorf("%w: %v", ErrValidatorPanic, rvr)
				}
			}()

			out, err := v.Validate(gctx, req)
			if err != nil {
				return err
			}

			outcomes[i] = out
			return nil
		})
	}

	err := g.Wait()
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	if err != nil {
		return nil, err
	}

	var failures []Failure
	for _, out := range outcomes {
		failures = append(failures, out.Failures...)
	}

	return failures, nil
}
