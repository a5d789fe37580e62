package validator

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/userbite/internal/pkg/mediator"
)

type person struct {
	GivenNames string `validate:"required"`
	LastName   string `validate:"required"`
}

type contact struct {
	EmailAddress string `validate:"omitempty,email"`
	MobileNumber string `validate:"omitempty,phone"`
}

type paging struct {
	PageNumber   int `validate:"gt=0"`
	ItemsPerPage int `validate:"gt=0,lte=100"`
}

func newValidator(t *testing.T) *V10Validator {
	t.Helper()

	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator: %v", err)
	}
	return v
}

func TestV10Validator_Validate(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name string
		data any
		want V10ValidationError
	}{
		{name: "valid person", data: person{GivenNames: "Jane", LastName: "Doe"}},
		{
			name: "empty given names",
			data: person{LastName: "Doe"},
			want: V10ValidationError{{Field: "GivenNames", Message: "GivenNames must not be empty"}},
		},
		{
			name: "both empty keeps field order",
			data: person{},
			want: V10ValidationError{
				{Field: "GivenNames", Message: "GivenNames must not be empty"},
				{Field: "LastName", Message: "LastName must not be empty"},
			},
		},
		{name: "empty contact is skipped", data: contact{}},
		{name: "valid contact", data: contact{EmailAddress: "a@b.com", MobileNumber: "+1 (555) 010-2030"}},
		{
			name: "bad contact",
			data: contact{EmailAddress: "not-an-email", MobileNumber: "call me"},
			want: V10ValidationError{
				{Field: "EmailAddress", Message: "EmailAddress must be a valid email address"},
				{Field: "MobileNumber", Message: "MobileNumber must be a valid phone number"},
			},
		},
		{
			name: "zero page",
			data: paging{PageNumber: 0, ItemsPerPage: 10},
			want: V10ValidationError{{Field: "PageNumber", Message: "PageNumber must be greater than 0"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.data)

			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var got V10ValidationError
			if !errors.As(err, &got) {
				t.Fatalf("expected V10ValidationError, got %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("error %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestV10Validator_NotAStruct(t *testing.T) {
	v := newValidator(t)

	err := v.Validate("plain string")

	var verr V10ValidationError
	if err == nil || errors.As(err, &verr) {
		t.Fatalf("expected a non-validation error, got %v", err)
	}
}

func TestRules_MapsFailures(t *testing.T) {
	// Arrange
	v := newValidator(t)
	type createReq struct {
		GivenNames string
		LastName   string
	}
	rule := Rules(v, func(r createReq) any {
		return person{GivenNames: r.GivenNames, LastName: r.LastName}
	})

	// Act
	out, err := rule.Validate(context.Background(), createReq{LastName: "Doe"})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.IsValid() {
		t.Fatal("expected invalid outcome")
	}
	want := mediator.Failure{Field: "GivenNames", Message: "GivenNames must not be empty"}
	if len(out.Failures) != 1 || out.Failures[0] != want {
		t.Fatalf("unexpected failures %+v", out.Failures)
	}
}

func TestRules_ValidatesRequestItself(t *testing.T) {
	v := newValidator(t)
	rule := Rules[paging](v, nil)

	out, err := rule.Validate(context.Background(), paging{PageNumber: 1, ItemsPerPage: 10})

	if err != nil || !out.IsValid() {
		t.Fatalf("expected valid outcome, got %+v %v", out, err)
	}
}

func TestRules_PropagatesOtherErrors(t *testing.T) {
	errBroken := errors.New("broken")
	rule := Rules[paging](validatorFunc(func(any) error { return errBroken }), nil)

	_, err := rule.Validate(context.Background(), paging{})

	if !errors.Is(err, errBroken) {
		t.Fatalf("expected errBroken, got %v", err)
	}
}

func TestRules_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rule := Rules[paging](validatorFunc(func(any) error {
		t.Fatal("validation must not run")
		return nil
	}), nil)

	_, err := rule.Validate(ctx, paging{})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type validatorFunc func(any) error

func (f validatorFunc) Validate(data any) error { return f(data) }
