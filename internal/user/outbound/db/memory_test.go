package db

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shandysiswandi/userbite/internal/pkg/goerror"
	"github.com/shandysiswandi/userbite/internal/user/entity"
)

func newUser(id int64, given, last string) entity.User {
	return entity.User{
		ID:         id,
		GivenNames: given,
		LastName:   last,
		ContactDetail: entity.ContactDetail{
			EmailAddress: "u@example.com",
			MobileNumber: "555",
		},
	}
}

func TestMemory_CreateGet(t *testing.T) {
	// Arrange
	m := NewMemory(nil)
	ctx := context.Background()

	// Act
	err := m.CreateUser(ctx, newUser(7, "Jane", "Doe"))

	// Assert
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := m.GetUserByID(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FullName() != "Jane Doe" || got.ContactDetail.EmailAddress != "u@example.com" {
		t.Fatalf("unexpected user %+v", got)
	}
	if err := m.CreateUser(ctx, newUser(7, "Other", "Person")); !errors.Is(err, goerror.ErrConflict) {
		t.Fatalf("duplicate id: expected ErrConflict, got %v", err)
	}
}

func TestMemory_NotFound(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()

	if _, err := m.GetUserByID(ctx, 1); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	if err := m.UpdateUser(ctx, newUser(1, "a", "b")); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if _, err := m.DeleteUser(ctx, 1); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestMemory_UpdateDelete(t *testing.T) {
	// Arrange
	m := NewMemory(nil, newUser(1, "Jane", "Doe"), newUser(2, "John", "Roe"))
	ctx := context.Background()
	changed := newUser(1, "Janet", "Doe")
	changed.ContactDetail.MobileNumber = "+1 555 0100"

	// Act
	if err := m.UpdateUser(ctx, changed); err != nil {
		t.Fatalf("update: %v", err)
	}
	deleted, err := m.DeleteUser(ctx, 1)

	// Assert
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.GivenNames != "Janet" || deleted.ContactDetail.MobileNumber != "+1 555 0100" {
		t.Fatalf("delete must return the stored row, got %+v", deleted)
	}
	page, err := m.ListUsers(ctx, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 || len(page.Users) != 1 || page.Users[0].ID != 2 {
		t.Fatalf("unexpected page after delete %+v", page)
	}
}

func TestMemory_FindUsers(t *testing.T) {
	m := NewMemory(nil, SeedUsers()...)

	tests := []struct {
		name   string
		filter entity.UserFilter
		want   []int64
	}{
		{name: "empty filter matches all", filter: entity.UserFilter{}, want: []int64{1, 2, 3, 4, 5}},
		{name: "given names case-insensitive", filter: entity.UserFilter{GivenNames: "ALAN"}, want: []int64{2}},
		{name: "last name substring", filter: entity.UserFilter{LastName: "ov"}, want: []int64{1, 5}},
		{name: "both must match", filter: entity.UserFilter{GivenNames: "a", LastName: "hop"}, want: []int64{3}},
		{name: "blank filter ignored", filter: entity.UserFilter{GivenNames: "  ", LastName: "turing"}, want: []int64{2}},
		{name: "no match", filter: entity.UserFilter{LastName: "zzz"}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.FindUsers(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("find: %v", err)
			}

			ids := make([]int64, 0, len(got))
			for _, u := range got {
				ids = append(ids, u.ID)
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("got ids %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Fatalf("got ids %v, want %v", ids, tt.want)
				}
			}
		})
	}
}

func TestMemory_ListUsers(t *testing.T) {
	m := NewMemory(nil, SeedUsers()...)

	tests := []struct {
		name    string
		offset  int
		limit   int
		wantIDs []int64
	}{
		{name: "first page", offset: 0, limit: 2, wantIDs: []int64{1, 2}},
		{name: "last partial page", offset: 4, limit: 2, wantIDs: []int64{5}},
		{name: "past the end", offset: 10, limit: 2, wantIDs: []int64{}},
		{name: "negative offset", offset: -3, limit: 1, wantIDs: []int64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := m.ListUsers(context.Background(), tt.offset, tt.limit)
			if err != nil {
				t.Fatalf("list: %v", err)
			}

			if page.Total != 5 {
				t.Fatalf("total = %d, want 5", page.Total)
			}
			if len(page.Users) != len(tt.wantIDs) {
				t.Fatalf("got %d users, want %d", len(page.Users), len(tt.wantIDs))
			}
			for i, u := range page.Users {
				if u.ID != tt.wantIDs[i] {
					t.Fatalf("user[%d] = %d, want %d", i, u.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestMemory_CanceledContext(t *testing.T) {
	m := NewMemory(nil, SeedUsers()...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.GetUserByID(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("get: expected context.Canceled, got %v", err)
	}
	if _, err := m.ListUsers(ctx, 0, 10); !errors.Is(err, context.Canceled) {
		t.Fatalf("list: expected context.Canceled, got %v", err)
	}
	if err := m.CreateUser(ctx, newUser(99, "a", "b")); !errors.Is(err, context.Canceled) {
		t.Fatalf("create: expected context.Canceled, got %v", err)
	}
}

func TestMemory_ListSnapshotUnderConcurrentWrites(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Go(func() {
		for i := range 200 {
			_ = m.CreateUser(ctx, newUser(int64(i+1), "n", "n"))
		}
	})

	for range 200 {
		page, err := m.ListUsers(ctx, 0, 1000)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if int64(len(page.Users)) != page.Total {
			t.Fatalf("page and total disagree: %d users, total %d", len(page.Users), page.Total)
		}
	}
	wg.Wait()
}
