package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/momentree/momentree/internal/member/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Members() store.Members     { return &membersRepo{db: s.db} }
func (s *Store) Posts() store.Posts         { return &postsRepo{db: s.db} }
func (s *Store) Devices() store.Devices     { return &devicesRepo{db: s.db} }
func (s *Store) FeedItems() store.FeedItems { return &feedItemsRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint converts a sqlite unique-constraint violation into the
// store-level sentinel so callers don't match on driver strings.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}
