package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/shandysiswandi/userbite/internal/pkg/clock"
	"github.com/shandysiswandi/userbite/internal/pkg/config"
	"github.com/shandysiswandi/userbite/internal/pkg/goroutine"
	"github.com/shandysiswandi/userbite/internal/pkg/instrument"
	"github.com/shandysiswandi/userbite/internal/pkg/messaging"
	"github.com/shandysiswandi/userbite/internal/pkg/router"
	"github.com/shandysiswandi/userbite/internal/pkg/validator"
)

type seqID struct{ n atomic.Int64 }

func (s *seqID) Generate() int64 { return 1000 + s.n.Add(1) }

type fixedCID string

func (f fixedCID) Generate() string { return string(f) }

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"error"`
}

type userBody struct {
	ID           string `json:"id"`
	GivenNames   string `json:"given_names"`
	LastName     string `json:"last_name"`
	FullName     string `json:"full_name"`
	EmailAddress string `json:"email_address"`
	MobileNumber string `json:"mobile_number"`
}

type server struct {
	handler http.Handler
	pub     *messaging.Memory
	gm      *goroutine.Manager
}

func newServer(t *testing.T) server {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("database:\n  memory:\n    seed: true\n"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	ins := instrument.NewNoop()
	r := router.NewRouter(router.Config{Config: cfg, UUID: fixedCID("cid-test"), Instrument: ins})
	pub := messaging.NewMemory()
	gm := goroutine.NewManager(4)

	if err := New(context.Background(), Dependency{
		Goroutine:  gm,
		Router:     r,
		Messaging:  pub,
		Config:     cfg,
		Instrument: ins,
		UID:        &seqID{},
		Clock:      clock.New(),
		Validator:  v,
	}); err != nil {
		t.Fatalf("module: %v", err)
	}

	return server{handler: r, pub: pub, gm: gm}
}

func (s server) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var rd *bytes.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func TestNew_RequiresDependencies(t *testing.T) {
	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	err = New(context.Background(), Dependency{Validator: v})

	if err == nil {
		t.Fatal("expected missing dependencies to be rejected")
	}
}

func TestHTTP_GetUser(t *testing.T) {
	s := newServer(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantMsg    string
	}{
		{name: "existing", path: "/api/v1/users/1", wantStatus: http.StatusOK},
		{name: "missing", path: "/api/v1/users/404", wantStatus: http.StatusNotFound, wantMsg: "User not found"},
		{name: "zero id", path: "/api/v1/users/0", wantStatus: http.StatusUnprocessableEntity, wantMsg: "Validation error"},
		{name: "not a number", path: "/api/v1/users/abc", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(t, http.MethodGet, tt.path, "")

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantMsg != "" && env.Message != tt.wantMsg {
				t.Fatalf("message = %q, want %q", env.Message, tt.wantMsg)
			}
			if rec.Header().Get(router.HeaderCorrelationID) != "cid-test" {
				t.Fatalf("missing correlation id header")
			}
		})
	}
}

func TestHTTP_CreateUser(t *testing.T) {
	// Arrange
	s := newServer(t)
	body := `{"given_names":"Jane","last_name":"Doe","email_address":"jane@example.com","mobile_number":"+1 555 0100"}`

	// Act
	rec, env := s.do(t, http.MethodPost, "/api/v1/users", body)

	// Assert
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/api/v1/users/1001" {
		t.Fatalf("Location = %q", loc)
	}
	var got userBody
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if got.ID != "1001" || got.FullName != "Jane Doe" {
		t.Fatalf("unexpected user %+v", got)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/v1/users/1001", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("created user not readable, status %d", rec.Code)
	}

	if err := s.gm.Wait(); err != nil {
		t.Fatalf("background: %v", err)
	}
	if n := len(s.pub.Messages()); n != 1 {
		t.Fatalf("expected one published event, got %d", n)
	}
}

func TestHTTP_CreateUser_ValidationErrors(t *testing.T) {
	s := newServer(t)
	body := `{"given_names":"","last_name":"Doe","email_address":"nope","mobile_number":"555"}`

	rec, env := s.do(t, http.MethodPost, "/api/v1/users", body)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	got := make([]string, 0, len(env.Error))
	for _, e := range env.Error {
		got = append(got, e.Field+"|"+e.Message)
	}
	sort.Strings(got)
	want := []string{
		"email_address|EmailAddress must be a valid email address",
		"given_names|GivenNames must not be empty",
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("errors = %v, want %v", got, want)
	}
}

func TestHTTP_WriteUser_BlankNames(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "create", method: http.MethodPost, path: "/api/v1/users"},
		{name: "update", method: http.MethodPut, path: "/api/v1/users/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t)
			body := `{"given_names":"   ","last_name":"  ","email_address":"jane@example.com","mobile_number":"555 0100"}`

			rec, env := s.do(t, tt.method, tt.path, body)

			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
			}
			got := make([]string, 0, len(env.Error))
			for _, e := range env.Error {
				got = append(got, e.Field+"|"+e.Message)
			}
			sort.Strings(got)
			want := []string{
				"given_names|GivenNames must not be empty",
				"last_name|LastName must not be empty",
			}
			if strings.Join(got, ",") != strings.Join(want, ",") {
				t.Fatalf("errors = %v, want %v", got, want)
			}
		})
	}
}

func TestHTTP_CreateUser_MalformedBody(t *testing.T) {
	s := newServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/users", `{"given_names":`)

	if rec.Code != http.StatusBadRequest || env.Message != "Invalid request body" {
		t.Fatalf("status = %d message = %q", rec.Code, env.Message)
	}
}

func TestHTTP_UpdateAndDelete(t *testing.T) {
	s := newServer(t)
	body := `{"given_names":"Grace Brewster","last_name":"Hopper","email_address":"grace@example.com","mobile_number":"555"}`

	rec, env := s.do(t, http.MethodPut, "/api/v1/users/3", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d (%s)", rec.Code, rec.Body.String())
	}
	var updated userBody
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.FullName != "Grace Brewster Hopper" {
		t.Fatalf("unexpected user %+v", updated)
	}

	rec, _ = s.do(t, http.MethodPut, "/api/v1/users/404", body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("update missing status = %d", rec.Code)
	}

	rec, _ = s.do(t, http.MethodDelete, "/api/v1/users/3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec, _ = s.do(t, http.MethodDelete, "/api/v1/users/3", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", rec.Code)
	}
}

func TestHTTP_ListUsers(t *testing.T) {
	s := newServer(t)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantLen    int
		wantNext   bool
	}{
		{name: "defaults", query: "", wantStatus: http.StatusOK, wantLen: 5, wantNext: false},
		{name: "second page", query: "?page_number=2&items_per_page=2", wantStatus: http.StatusOK, wantLen: 2, wantNext: true},
		{name: "page zero", query: "?page_number=0", wantStatus: http.StatusUnprocessableEntity},
		{name: "too large", query: "?items_per_page=500", wantStatus: http.StatusUnprocessableEntity},
		{name: "largest page size", query: "?items_per_page=100", wantStatus: http.StatusOK, wantLen: 5, wantNext: false},
		{name: "page number wraps offset", query: "?page_number=1844674407370955162&items_per_page=10", wantStatus: http.StatusUnprocessableEntity},
		{name: "page number past int32", query: "?page_number=922337203685477581&items_per_page=10", wantStatus: http.StatusUnprocessableEntity},
		{name: "not a number", query: "?page_number=x", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(t, http.MethodGet, "/api/v1/users"+tt.query, "")

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var users []userBody
			if err := json.Unmarshal(env.Data, &users); err != nil {
				t.Fatalf("decode: %v", err)
			}
			pagination, _ := env.Meta["pagination"].(map[string]any)
			if len(users) != tt.wantLen || pagination["has_next_page"] != tt.wantNext || pagination["total_items"] != float64(5) {
				t.Fatalf("got %d users, meta %v", len(users), env.Meta)
			}
		})
	}
}

func TestHTTP_FindUsers(t *testing.T) {
	s := newServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/users-search?given_names=GRA", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var users []userBody
	if err := json.Unmarshal(env.Data, &users); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(users) != 1 || users[0].LastName != "Hopper" {
		t.Fatalf("unexpected users %+v", users)
	}
}
