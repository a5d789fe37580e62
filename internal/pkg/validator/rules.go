package validator

import (
	"context"
	"errors"

	"github.com/shandysiswandi/userbite/internal/pkg/mediator"
)

// Rules adapts struct validation to a mediator validator for requests of type R.
//
// view selects the struct whose tags are checked; nil checks the request
// itself. Failed rules become failures, any other error is returned as is.
func Rules[R any](v Validator, view func(R) any) mediator.Validator[R] {
	return mediator.ValidatorFunc[R](func(ctx context.Context, req R) (mediator.Outcome, error) {
		if err := ctx.Err(); err != nil {
			return mediator.Outcome{}, err
		}

		var target any = req
		if view != nil {
			target = view(req)
		}

		err := v.Validate(target)
		if err == nil {
			return mediator.Valid(), nil
		}

		var verr V10ValidationError
		if !errors.As(err, &verr) {
			return mediator.Outcome{}, err
		}

		failures := make([]mediator.Failure, 0, len(verr))
		for _, fe := range verr {
			failures = append(failures, mediator.Failure{Field: fe.Field, Message: fe.Message})
		}

		return mediator.Invalid(failures...), nil
	})
}
