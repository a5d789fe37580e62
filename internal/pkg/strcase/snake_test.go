package strcase

import "testing"

func TestToLowerSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "ID", want: "id"},
		{in: "GivenNames", want: "given_names"},
		{in: "EmailAddress", want: "email_address"},
		{in: "userID", want: "user_id"},
		{in: "Contact.MobileNumber", want: "contact.mobile_number"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ToLowerSnake(tt.in); got != tt.want {
				t.Fatalf("ToLowerSnake(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
