// Package redis implements the revocable refresh-session store on a
// TTL-capable Redis instance. Keys are the raw refresh token string (no
// bearer prefix), values the owning username; Redis key expiry is the
// session TTL, so an abandoned session disappears on its own.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// opTimeout bounds every store operation so a hung Redis node fails the one
// request instead of wedging the request pipeline.
const opTimeout = 3 * time.Second

type Sessions struct {
	client *goredis.Client
}

// NewSessions connects to Redis and verifies the connection before returning.
func NewSessions(addr, password string, db int) (*Sessions, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connect failed: %w", err)
	}

	return &Sessions{client: client}, nil
}

func (s *Sessions) Save(ctx context.Context, refreshToken, username string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, refreshToken, username, ttl).Err(); err != nil {
		return fmt.Errorf("save session failed: %w", err)
	}
	return nil
}

func (s *Sessions) Lookup(ctx context.Context, refreshToken string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	username, err := s.client.Get(ctx, refreshToken).Result()
	switch {
	case err == goredis.Nil:
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("lookup session failed: %w", err)
	}
	return username, true, nil
}

func (s *Sessions) Delete(ctx context.Context, refreshToken string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	removed, err := s.client.Del(ctx, refreshToken).Result()
	if err != nil {
		return false, fmt.Errorf("delete session failed: %w", err)
	}
	return removed > 0, nil
}

func (s *Sessions) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (s *Sessions) Close() error { return s.client.Close() }
