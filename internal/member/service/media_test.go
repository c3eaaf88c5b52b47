package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// memMediaStore records what was uploaded and returns a fake URL.
type memMediaStore struct {
	keys []string
}

func (m *memMediaStore) Put(_ context.Context, key, _ string, body io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	m.keys = append(m.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func TestUpload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stores under a fresh key keeping the extension", func(t *testing.T) {
		store := &memMediaStore{}
		svc := &MediaService{Store: store}

		url, err := svc.Upload(ctx, "m1", "photo.jpg", "image/jpeg", strings.NewReader("bytes"))
		require.NoError(t, err)
		require.Len(t, store.keys, 1)
		require.True(t, strings.HasSuffix(store.keys[0], ".jpg"))
		require.Contains(t, url, store.keys[0])
	})

	t.Run("uploads of the same filename do not collide", func(t *testing.T) {
		store := &memMediaStore{}
		svc := &MediaService{Store: store}

		_, err := svc.Upload(ctx, "m1", "photo.png", "image/png", strings.NewReader("one"))
		require.NoError(t, err)
		_, err = svc.Upload(ctx, "m2", "photo.png", "image/png", strings.NewReader("two"))
		require.NoError(t, err)

		require.NotEqual(t, store.keys[0], store.keys[1])
	})

	t.Run("rejects unknown content types", func(t *testing.T) {
		svc := &MediaService{Store: &memMediaStore{}}

		_, err := svc.Upload(ctx, "m1", "script.sh", "application/x-sh", strings.NewReader("#!"))
		require.ErrorIs(t, err, ErrInvalidUpload)
	})
}
