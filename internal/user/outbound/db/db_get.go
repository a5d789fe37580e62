package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/userbite/internal/user/entity"
)

const selectUser = `SELECT u.id, u.given_names, u.last_name, c.email_address, c.mobile_number
FROM users u
JOIN user_contact_details c ON c.user_id = u.id`

func scanUser(row pgx.Row) (entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.GivenNames, &u.LastName, &u.ContactDetail.EmailAddress, &u.ContactDetail.MobileNumber)
	return u, err
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := startSpan(ctx, s.ins, "GetUserByID")
	defer func() { endSpan(span, err) }()

	user, err := scanUser(s.conn.QueryRow(ctx, selectUser+` WHERE u.id = $1`, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

func (s *DB) FindUsers(ctx context.Context, filter entity.UserFilter) (_ []entity.User, err error) {
	ctx, span := startSpan(ctx, s.ins, "FindUsers")
	defer func() { endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, selectUser+`
WHERE ($1 = '' OR strpos(lower(u.given_names), lower($1)) > 0)
  AND ($2 = '' OR strpos(lower(u.last_name), lower($2)) > 0)
ORDER BY u.created_at, u.id`, strings.TrimSpace(filter.GivenNames), strings.TrimSpace(filter.LastName))
	if err != nil {
		return nil, s.mapError(err)
	}

	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.User, error) {
		return scanUser(row)
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return users, nil
}

// ListUsers reads the page and the total inside one repeatable-read
// transaction so both come from the same snapshot. Users are ordered by
// creation time, then id, matching the insertion order of the memory store.
func (s *DB) ListUsers(ctx context.Context, offset, limit int) (_ *entity.UserPage, err error) {
	ctx, span := startSpan(ctx, s.ins, "ListUsers")
	defer func() { endSpan(span, err) }()

	page := &entity.UserPage{Users: []entity.User{}}
	err = s.inTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&page.Total); err != nil {
			return err
		}

		rows, err := tx.Query(ctx, selectUser+` ORDER BY u.created_at, u.id LIMIT $1 OFFSET $2`, limit, max(offset, 0))
		if err != nil {
			return err
		}

		page.Users, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.User, error) {
			return scanUser(row)
		})
		return err
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return page, nil
}
