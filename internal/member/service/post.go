package service

import (
	"context"
	"strings"

	"github.com/momentree/momentree/internal/member/domain"
	"github.com/momentree/momentree/internal/member/store"
	"github.com/momentree/momentree/pkg/idx"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PostService owns member-authored content. Writes are gated on the author
// being ACTIVE; mutation additionally requires ownership (or ADMIN).
type PostService struct {
	Posts store.Posts
}

// CreatePost inserts a new post authored by the principal.
func (s *PostService) CreatePost(ctx context.Context, author domain.Principal, title, body, mediaURL string) (domain.Post, error) {
	if author.Member.Status != domain.StatusActive {
		return domain.Post{}, ErrInvalidMemberState
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Post{}, ErrInvalidPost
	}

	post := domain.Post{
		ID:       idx.New().String(),
		AuthorID: author.Member.ID,
		Title:    title,
		Body:     body,
		MediaURL: mediaURL,
	}
	if err := s.Posts.CreatePost(ctx, post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// GetPost fetches one post.
func (s *PostService) GetPost(ctx context.Context, id string) (domain.Post, error) {
	return s.Posts.GetPostByID(ctx, id)
}

// ListPosts pages newest-first. The cursor is the last seen post id; limit
// defaults to 20 and is capped at 100. The returned cursor is empty when the
// page was not full.
func (s *PostService) ListPosts(ctx context.Context, cursor string, limit int) ([]domain.Post, string, error) {
	if cursor != "" {
		if _, err := idx.Parse(cursor); err != nil {
			return nil, "", ErrInvalidCursor
		}
	}
	limit = clampLimit(limit)

	posts, err := s.Posts.ListPosts(ctx, cursor, limit)
	if err != nil {
		return nil, "", err
	}

	next := ""
	if len(posts) == limit {
		next = posts[len(posts)-1].ID
	}
	return posts, next, nil
}

// UpdatePost rewrites a post. Only the author or an admin may touch it.
func (s *PostService) UpdatePost(ctx context.Context, caller domain.Principal, id, title, body, mediaURL string) (domain.Post, error) {
	post, err := s.Posts.GetPostByID(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	if post.AuthorID != caller.Member.ID && !caller.IsAdmin() {
		return domain.Post{}, ErrForbidden
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Post{}, ErrInvalidPost
	}

	post.Title = title
	post.Body = body
	post.MediaURL = mediaURL
	if err := s.Posts.UpdatePost(ctx, post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// DeletePost removes a post, with the same ownership rule as UpdatePost.
func (s *PostService) DeletePost(ctx context.Context, caller domain.Principal, id string) error {
	post, err := s.Posts.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != caller.Member.ID && !caller.IsAdmin() {
		return ErrForbidden
	}
	return s.Posts.DeletePost(ctx, id)
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultPageSize
	case limit > maxPageSize:
		return maxPageSize
	}
	return limit
}
