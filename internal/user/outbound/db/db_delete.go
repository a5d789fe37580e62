package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/userbite/internal/user/entity"
)

// DeleteUser removes the user and, through the cascade, its contact detail.
// The row as it was before removal is returned.
func (s *DB) DeleteUser(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := startSpan(ctx, s.ins, "DeleteUser")
	defer func() { endSpan(span, err) }()

	var user entity.User
	err = s.mapError(s.inTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var err error
		user, err = scanUser(tx.QueryRow(ctx, selectUser+` WHERE u.id = $1 FOR UPDATE OF u`, id))
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		return err
	}))
	if err != nil {
		return nil, err
	}

	return &user, nil
}
