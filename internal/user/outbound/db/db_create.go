package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/userbite/internal/user/entity"
)

func (s *DB) CreateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := startSpan(ctx, s.ins, "CreateUser")
	defer func() { endSpan(span, err) }()

	err = s.mapError(s.inTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO users (id, given_names, last_name) VALUES ($1, $2, $3)`,
			user.ID, user.GivenNames, user.LastName,
		); err != nil {
			return err
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO user_contact_details (user_id, email_address, mobile_number) VALUES ($1, $2, $3)`,
			user.ID, user.ContactDetail.EmailAddress, user.ContactDetail.MobileNumber,
		)
		return err
	}))
	return err
}
