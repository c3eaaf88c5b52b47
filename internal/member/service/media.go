package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/momentree/momentree/internal/member/media"
	"github.com/momentree/momentree/pkg/idx"
)

// ErrInvalidUpload reports an upload with no content or a rejected type.
var ErrInvalidUpload = errors.New("invalid_upload")

// allowed upload content types. Anything else is rejected before touching
// object storage.
var allowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
	"video/mp4":  {},
}

// MediaService stores member uploads in object storage and hands back the
// public URL to embed in a post.
type MediaService struct {
	Store media.Store
}

// Upload streams the file to object storage under a fresh ULID key, keeping
// the original extension for content negotiation downstream.
func (s *MediaService) Upload(ctx context.Context, memberID, filename, contentType string, body io.Reader) (string, error) {
	if _, ok := allowedContentTypes[contentType]; !ok {
		return "", fmt.Errorf("%w: content type %q", ErrInvalidUpload, contentType)
	}

	key := "media/" + idx.New().String() + path.Ext(filename)
	url, err := s.Store.Put(ctx, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("store upload failed: %w", err)
	}
	return url, nil
}
