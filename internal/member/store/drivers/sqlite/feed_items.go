package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/momentree/momentree/internal/member/domain"
)

type feedItemsRepo struct {
	db *sql.DB
}

func (r *feedItemsRepo) UpsertFeedItem(ctx context.Context, item domain.FeedItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO feed_items (id, source_id, title, summary, link, published_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source_id) DO UPDATE SET
		     title   = excluded.title,
		     summary = excluded.summary,
		     link    = excluded.link`,
		item.ID, item.SourceID, item.Title, item.Summary, item.Link, item.PublishedAt)
	return err
}

func (r *feedItemsRepo) ListFeedItems(ctx context.Context, cursor string, limit int) ([]domain.FeedItem, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if cursor == "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, source_id, title, summary, link, published_at, imported_at
			 FROM feed_items ORDER BY id DESC LIMIT ?`, limit)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, source_id, title, summary, link, published_at, imported_at
			 FROM feed_items WHERE id < ? ORDER BY id DESC LIMIT ?`,
			cursor, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FeedItem
	for rows.Next() {
		var item domain.FeedItem
		if err := rows.Scan(&item.ID, &item.SourceID, &item.Title, &item.Summary,
			&item.Link, &item.PublishedAt, &item.ImportedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *feedItemsRepo) DeleteFeedItemsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM feed_items WHERE imported_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
