package db

import (
	"context"
	"slices"
	"sync"

	"github.com/shandysiswandi/userbite/internal/pkg/goerror"
	"github.com/shandysiswandi/userbite/internal/pkg/instrument"
	"github.com/shandysiswandi/userbite/internal/user/entity"
)

type userRow struct {
	givenNames string
	lastName   string
}

// Memory is an in-process relational store with a users table and a
// contact_details table keyed by user id. Rows keep insertion order.
//
// It is safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	users    map[int64]userRow
	contacts map[int64]entity.ContactDetail
	order    []int64
	ins      instrument.Instrumentation
}

// NewMemory returns a store holding seed in the given order.
func NewMemory(ins instrument.Instrumentation, seed ...entity.User) *Memory {
	if ins == nil {
		ins = instrument.NewNoop()
	}

	m := &Memory{
		users:    make(map[int64]userRow, len(seed)),
		contacts: make(map[int64]entity.ContactDetail, len(seed)),
		ins:      ins,
	}
	for _, u := range seed {
		if _, ok := m.users[u.ID]; ok {
			continue
		}
		m.insert(u)
	}

	return m
}

// SeedUsers is the sample data loaded when the memory store starts seeded.
func SeedUsers() []entity.User {
	return []entity.User{
		{ID: 1, GivenNames: "Ada", LastName: "Lovelace", ContactDetail: entity.ContactDetail{EmailAddress: "ada@example.com", MobileNumber: "+44 20 7946 0001"}},
		{ID: 2, GivenNames: "Alan Mathison", LastName: "Turing", ContactDetail: entity.ContactDetail{EmailAddress: "alan@example.com", MobileNumber: "+44 20 7946 0002"}},
		{ID: 3, GivenNames: "Grace", LastName: "Hopper", ContactDetail: entity.ContactDetail{EmailAddress: "grace@example.com", MobileNumber: "+1 202 555 0103"}},
		{ID: 4, GivenNames: "Edsger Wybe", LastName: "Dijkstra", ContactDetail: entity.ContactDetail{EmailAddress: "edsger@example.com", MobileNumber: "+31 20 555 0104"}},
		{ID: 5, GivenNames: "Barbara", LastName: "Liskov", ContactDetail: entity.ContactDetail{EmailAddress: "barbara@example.com", MobileNumber: "+1 617 555 0105"}},
	}
}

func (m *Memory) insert(u entity.User) {
	m.users[u.ID] = userRow{givenNames: u.GivenNames, lastName: u.LastName}
	m.contacts[u.ID] = u.ContactDetail
	m.order = append(m.order, u.ID)
}

// row joins the two tables. Callers hold the lock.
func (m *Memory) row(id int64) (entity.User, bool) {
	u, ok := m.users[id]
	if !ok {
		return entity.User{}, false
	}

	return entity.User{
		ID:            id,
		GivenNames:    u.givenNames,
		LastName:      u.lastName,
		ContactDetail: m.contacts[id],
	}, true
}

func (m *Memory) CreateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := startSpan(ctx, m.ins, "CreateUser")
	defer func() { endSpan(span, err) }()

	if err = ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; ok {
		return goerror.ErrConflict
	}
	m.insert(user)

	return nil
}

func (m *Memory) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := startSpan(ctx, m.ins, "GetUserByID")
	defer func() { endSpan(span, err) }()

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.row(id)
	if !ok {
		return nil, goerror.ErrNotFound
	}

	return &user, nil
}

func (m *Memory) FindUsers(ctx context.Context, filter entity.UserFilter) (_ []entity.User, err error) {
	ctx, span := startSpan(ctx, m.ins, "FindUsers")
	defer func() { endSpan(span, err) }()

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]entity.User, 0)
	for _, id := range m.order {
		if u, _ := m.row(id); filter.Match(u) {
			users = append(users, u)
		}
	}

	return users, nil
}

// ListUsers cuts the page and counts the total under the same read lock.
func (m *Memory) ListUsers(ctx context.Context, offset, limit int) (_ *entity.UserPage, err error) {
	ctx, span := startSpan(ctx, m.ins, "ListUsers")
	defer func() { endSpan(span, err) }()

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	total := len(m.order)
	start := min(max(offset, 0), total)
	end := min(start+max(limit, 0), total)

	users := make([]entity.User, 0, end-start)
	for _, id := range m.order[start:end] {
		u, _ := m.row(id)
		users = append(users, u)
	}

	return &entity.UserPage{Users: users, Total: int64(total)}, nil
}

func (m *Memory) UpdateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := startSpan(ctx, m.ins, "UpdateUser")
	defer func() { endSpan(span, err) }()

	if err = ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return goerror.ErrNotFound
	}
	m.users[user.ID] = userRow{givenNames: user.GivenNames, lastName: user.LastName}
	m.contacts[user.ID] = user.ContactDetail

	return nil
}

func (m *Memory) DeleteUser(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := startSpan(ctx, m.ins, "DeleteUser")
	defer func() { endSpan(span, err) }()

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.row(id)
	if !ok {
		return nil, goerror.ErrNotFound
	}
	delete(m.users, id)
	delete(m.contacts, id)
	m.order = slices.DeleteFunc(m.order, func(v int64) bool { return v == id })

	return &user, nil
}
