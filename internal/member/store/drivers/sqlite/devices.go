package sqlite

import (
	"context"
	"database/sql"

	"github.com/momentree/momentree/internal/member/domain"
)

type devicesRepo struct {
	db *sql.DB
}

// RegisterDevice upserts on the device token: re-registering a token moves
// it to the registering member, which is what happens when a phone changes
// owners between accounts.
func (r *devicesRepo) RegisterDevice(ctx context.Context, d domain.Device) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO devices (id, member_id, token, platform)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(token) DO UPDATE SET
		     member_id = excluded.member_id,
		     platform  = excluded.platform`,
		d.ID, d.MemberID, d.Token, d.Platform)
	return err
}

func (r *devicesRepo) ListDeviceTokens(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT token FROM devices ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (r *devicesRepo) DeleteDevicesOfDeletedMembers(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM devices
		 WHERE member_id IN (SELECT id FROM members WHERE status = ?)`,
		domain.StatusDelete)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
