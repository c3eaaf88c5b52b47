package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/momentree/momentree/internal/member/domain"
	"github.com/momentree/momentree/internal/member/identity"
	"github.com/momentree/momentree/internal/member/store"
)

// memMembers is an in-memory store.Members used by orchestrator tests.
type memMembers struct {
	mu      sync.Mutex
	byID    map[string]domain.Member
	byName  map[string]domain.Member
	failAll bool
}

func newMemMembers() *memMembers {
	return &memMembers{
		byID:   make(map[string]domain.Member),
		byName: make(map[string]domain.Member),
	}
}

func (m *memMembers) put(member domain.Member) {
	m.byID[member.ID] = member
	m.byName[member.Username] = member
}

func (m *memMembers) GetMemberByID(_ context.Context, id string) (domain.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	member, ok := m.byID[id]
	if !ok {
		return domain.Member{}, store.ErrNotFound
	}
	return member, nil
}

func (m *memMembers) GetMemberByUsername(_ context.Context, username string) (domain.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	member, ok := m.byName[username]
	if !ok {
		return domain.Member{}, store.ErrNotFound
	}
	return member, nil
}

func (m *memMembers) CreateMember(_ context.Context, member domain.Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errors.New("members store down")
	}
	if _, ok := m.byName[member.Username]; ok {
		return store.ErrAlreadyExists
	}
	m.put(member)
	return nil
}

func (m *memMembers) Activate(_ context.Context, memberID, nickname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	member, ok := m.byID[memberID]
	if !ok || member.Status != domain.StatusPreactive {
		return store.ErrNotFound
	}
	member.Status = domain.StatusActive
	member.Nickname = nickname
	m.put(member)
	return nil
}

func (m *memMembers) MarkDeleted(_ context.Context, memberID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	member, ok := m.byID[memberID]
	if !ok || member.Status != domain.StatusActive {
		return store.ErrNotFound
	}
	member.Status = domain.StatusDelete
	m.put(member)
	return nil
}

// memSessions is an in-memory store.Sessions.
type memSessions struct {
	mu       sync.Mutex
	records  map[string]string
	saveErr  error
	saveTTLs map[string]time.Duration
}

func newMemSessions() *memSessions {
	return &memSessions{
		records:  make(map[string]string),
		saveTTLs: make(map[string]time.Duration),
	}
}

func (s *memSessions) Save(_ context.Context, refreshToken, username string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.records[refreshToken] = username
	s.saveTTLs[refreshToken] = ttl
	return nil
}

func (s *memSessions) Lookup(_ context.Context, refreshToken string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	username, ok := s.records[refreshToken]
	return username, ok, nil
}

func (s *memSessions) Delete(_ context.Context, refreshToken string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[refreshToken]
	delete(s.records, refreshToken)
	return ok, nil
}

func (s *memSessions) Ping(context.Context) error { return nil }

// stubStrategy resolves any payload for a single provider without touching
// the network.
type stubStrategy struct {
	provider domain.Provider
}

func (s stubStrategy) Supports(p domain.Provider) bool { return p == s.provider }

func (s stubStrategy) Resolve(_ context.Context, payload identity.Payload) (identity.Profile, error) {
	if payload.ID == "" {
		return identity.Profile{}, identity.ErrInvalidPayload
	}
	return identity.Profile{
		Provider:    s.provider,
		ExternalID:  payload.ID,
		DisplayName: payload.Nickname,
	}, nil
}

// memPosts is an in-memory store.Posts, ordered by descending id like the
// sqlite driver.
type memPosts struct {
	mu    sync.Mutex
	posts map[string]domain.Post
}

func newMemPosts() *memPosts {
	return &memPosts{posts: make(map[string]domain.Post)}
}

func (p *memPosts) CreatePost(_ context.Context, post domain.Post) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.posts[post.ID]; ok {
		return store.ErrAlreadyExists
	}
	p.posts[post.ID] = post
	return nil
}

func (p *memPosts) GetPostByID(_ context.Context, id string) (domain.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	post, ok := p.posts[id]
	if !ok {
		return domain.Post{}, store.ErrNotFound
	}
	return post, nil
}

func (p *memPosts) ListPosts(_ context.Context, cursor string, limit int) ([]domain.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var ids []string
	for id := range p.posts {
		if cursor == "" || id < cursor {
			ids = append(ids, id)
		}
	}
	// Descending lexicographic order matches ULID recency.
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			if ids[j] > ids[i] {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	out := make([]domain.Post, 0, len(ids))
	for _, id := range ids {
		out = append(out, p.posts[id])
	}
	return out, nil
}

func (p *memPosts) UpdatePost(_ context.Context, post domain.Post) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.posts[post.ID]; !ok {
		return store.ErrNotFound
	}
	p.posts[post.ID] = post
	return nil
}

func (p *memPosts) DeletePost(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(p.posts, id)
	return nil
}
