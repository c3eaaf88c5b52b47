package store

import (
	"context"
	"time"
)

// Sessions is the revocable refresh-session store: an external TTL-capable
// key/value service mapping an issued refresh token to the owning username.
// It is the single source of truth for whether a refresh token is still
// sessionable; access tokens never touch it.
//
// Every operation must observe a bounded timeout. A hung store fails the one
// request, not the pipeline.
type Sessions interface {
	// Save records refreshToken -> username with the given TTL. A failure
	// here must fail the login: tokens that cannot later be revoked must
	// never reach the client.
	Save(ctx context.Context, refreshToken, username string, ttl time.Duration) error

	// Lookup returns the owning username for a refresh token. found=false
	// means the session was terminated or never existed, which every
	// refresh-scoped operation treats as invalid.
	Lookup(ctx context.Context, refreshToken string) (username string, found bool, err error)

	// Delete removes the session record. removed=false means the entry was
	// already gone; callers treat that as already-logged-out but log it
	// distinctly for audit.
	Delete(ctx context.Context, refreshToken string) (removed bool, err error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}
