package validator

// Validator validates a struct against its `validate` tags.
//
// Implementations return a V10ValidationError when one or more rules fail and
// any other error when validation could not run.
type Validator interface {
	Validate(data any) error
}
