package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/userbite/internal/pkg/goerror"
	"github.com/shandysiswandi/userbite/internal/user/entity"
)

func (s *DB) UpdateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := startSpan(ctx, s.ins, "UpdateUser")
	defer func() { endSpan(span, err) }()

	err = s.mapError(s.inTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE users SET given_names = $2, last_name = $3, updated_at = now() WHERE id = $1`,
			user.ID, user.GivenNames, user.LastName,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return goerror.ErrNotFound
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO user_contact_details (user_id, email_address, mobile_number) VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET email_address = EXCLUDED.email_address, mobile_number = EXCLUDED.mobile_number`,
			user.ID, user.ContactDetail.EmailAddress, user.ContactDetail.MobileNumber,
		)
		return err
	}))
	return err
}
