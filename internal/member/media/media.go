// Package media stores member-uploaded files in object storage.
package media

import (
	"context"
	"io"
)

// Store persists uploaded objects and returns a URL the client can embed.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
