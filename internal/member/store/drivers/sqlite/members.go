package sqlite

import (
	"context"
	"database/sql"

	"github.com/momentree/momentree/internal/member/domain"
	"github.com/momentree/momentree/internal/member/store"
)

type membersRepo struct {
	db *sql.DB
}

const memberColumns = `id, username, nickname, role, status, sign_up_type, created_at, updated_at`

func scanMember(row *sql.Row) (domain.Member, error) {
	var m domain.Member
	err := row.Scan(
		&m.ID, &m.Username, &m.Nickname, &m.Role, &m.Status, &m.SignUpType,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return domain.Member{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membersRepo) GetMemberByID(ctx context.Context, id string) (domain.Member, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = ?`, id)
	return scanMember(row)
}

func (r *membersRepo) GetMemberByUsername(ctx context.Context, username string) (domain.Member, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE username = ?`, username)
	return scanMember(row)
}

func (r *membersRepo) CreateMember(ctx context.Context, m domain.Member) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO members (id, username, nickname, role, status, sign_up_type)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Username, m.Nickname, m.Role, m.Status, m.SignUpType)
	return mapConstraint(err)
}

func (r *membersRepo) Activate(ctx context.Context, memberID, nickname string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE members
		 SET status = ?, nickname = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = ?`,
		domain.StatusActive, nickname, memberID, domain.StatusPreactive)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *membersRepo) MarkDeleted(ctx context.Context, memberID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE members
		 SET status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = ?`,
		domain.StatusDelete, memberID, domain.StatusActive)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
