package sqlite

import (
	"context"
	"database/sql"

	"github.com/momentree/momentree/internal/member/domain"
	"github.com/momentree/momentree/internal/member/store"
)

type postsRepo struct {
	db *sql.DB
}

const postColumns = `id, author_id, title, body, media_url, created_at, updated_at`

func (r *postsRepo) CreatePost(ctx context.Context, p domain.Post) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, author_id, title, body, media_url)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.AuthorID, p.Title, p.Body, p.MediaURL)
	return mapConstraint(err)
}

func (r *postsRepo) GetPostByID(ctx context.Context, id string) (domain.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, id)

	var p domain.Post
	err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.MediaURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Post{}, mapNotFound(err)
	}
	return p, nil
}

// ListPosts pages newest-first on the ULID primary key. The cursor is the id
// of the last post the caller has seen; an empty cursor starts at the top.
func (r *postsRepo) ListPosts(ctx context.Context, cursor string, limit int) ([]domain.Post, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if cursor == "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+postColumns+` FROM posts ORDER BY id DESC LIMIT ?`, limit)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+postColumns+` FROM posts WHERE id < ? ORDER BY id DESC LIMIT ?`,
			cursor, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.MediaURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *postsRepo) UpdatePost(ctx context.Context, p domain.Post) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts
		 SET title = ?, body = ?, media_url = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		p.Title, p.Body, p.MediaURL, p.ID)
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

func (r *postsRepo) DeletePost(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
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
