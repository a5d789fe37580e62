package instrument

import (
	"net/http"
	"testing"
)

func TestMasker_Value(t *testing.T) {
	m := NewMasker([]string{"Password", "email_address:partial", " mobile_number : partial ", ""})

	tests := []struct {
		name   string
		key    string
		in     any
		want   any
		masked bool
	}{
		{name: "full", key: "password", in: "hunter2", want: MaskedValue, masked: true},
		{name: "case insensitive", key: "PASSWORD", in: "hunter2", want: MaskedValue, masked: true},
		{name: "partial email", key: "email_address", in: "jane@example.com", want: "j***@example.com", masked: true},
		{name: "partial mobile", key: "mobile_number", in: "+1 555 0100", want: "***00", masked: true},
		{name: "partial short", key: "mobile_number", in: "123", want: MaskedValue, masked: true},
		{name: "partial non string", key: "email_address", in: 42, want: MaskedValue, masked: true},
		{name: "unlisted", key: "last_name", in: "Doe", want: "Doe", masked: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, masked := m.Value(tt.key, tt.in)

			if masked != tt.masked || got != tt.want {
				t.Fatalf("Value(%q, %v) = %v, %v; want %v, %v", tt.key, tt.in, got, masked, tt.want, tt.masked)
			}
		})
	}
}

func TestMasker_JSON(t *testing.T) {
	m := NewMasker([]string{"email_address:partial"})

	out, ok := m.JSON([]byte(`{"data":[{"email_address":"ada@example.com","last_name":"Lovelace"}]}`))

	if !ok {
		t.Fatal("expected payload to be masked")
	}
	if want := `{"data":[{"email_address":"a***@example.com","last_name":"Lovelace"}]}`; string(out) != want {
		t.Fatalf("got %s, want %s", out, want)
	}
	if _, ok := m.JSON([]byte("plain text")); ok {
		t.Fatal("non JSON payload must be reported as such")
	}
}

func TestMasker_Headers(t *testing.T) {
	m := NewMasker([]string{"authorization"})
	h := http.Header{"Authorization": []string{"Bearer abc"}, "Accept": []string{"application/json"}}

	got := m.Headers(h)

	if got.Get("Authorization") != MaskedValue || got.Get("Accept") != "application/json" {
		t.Fatalf("unexpected headers %v", got)
	}
	if h.Get("Authorization") != "Bearer abc" {
		t.Fatal("input headers must not change")
	}
}

func TestMasker_Empty(t *testing.T) {
	var nilMasker *Masker

	if !nilMasker.Empty() || !NewMasker(nil).Empty() {
		t.Fatal("expected empty maskers")
	}
	if v, masked := nilMasker.Value("password", "x"); masked || v != "x" {
		t.Fatalf("nil masker changed value to %v", v)
	}
}
