package http

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/momentree/momentree/internal/member/domain"
	"github.com/momentree/momentree/internal/member/identity"
	"github.com/momentree/momentree/internal/member/service"
	"github.com/momentree/momentree/internal/member/store"
	"github.com/momentree/momentree/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// fakeMembers is the minimal store.Members the handler tests need.
type fakeMembers struct {
	mu     sync.Mutex
	byID   map[string]domain.Member
	byName map[string]domain.Member
}

func newFakeMembers() *fakeMembers {
	return &fakeMembers{
		byID:   make(map[string]domain.Member),
		byName: make(map[string]domain.Member),
	}
}

func (f *fakeMembers) put(m domain.Member) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[m.ID] = m
	f.byName[m.Username] = m
}

func (f *fakeMembers) GetMemberByID(_ context.Context, id string) (domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byID[id]
	if !ok {
		return domain.Member{}, store.ErrNotFound
	}
	return m, nil
}

func (f *fakeMembers) GetMemberByUsername(_ context.Context, username string) (domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byName[username]
	if !ok {
		return domain.Member{}, store.ErrNotFound
	}
	return m, nil
}

func (f *fakeMembers) CreateMember(_ context.Context, m domain.Member) error {
	f.mu.Lock()
	if _, ok := f.byName[m.Username]; ok {
		f.mu.Unlock()
		return store.ErrAlreadyExists
	}
	f.mu.Unlock()
	f.put(m)
	return nil
}

func (f *fakeMembers) Activate(_ context.Context, memberID, nickname string) error {
	f.mu.Lock()
	m, ok := f.byID[memberID]
	f.mu.Unlock()
	if !ok || m.Status != domain.StatusPreactive {
		return store.ErrNotFound
	}
	m.Status = domain.StatusActive
	m.Nickname = nickname
	f.put(m)
	return nil
}

func (f *fakeMembers) MarkDeleted(_ context.Context, memberID string) error {
	f.mu.Lock()
	m, ok := f.byID[memberID]
	f.mu.Unlock()
	if !ok || m.Status != domain.StatusActive {
		return store.ErrNotFound
	}
	m.Status = domain.StatusDelete
	f.put(m)
	return nil
}

// fakeSessions is the minimal store.Sessions the handler tests need.
type fakeSessions struct {
	mu      sync.Mutex
	records map[string]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{records: make(map[string]string)}
}

func (f *fakeSessions) Save(_ context.Context, token, username string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[token] = username
	return nil
}

func (f *fakeSessions) Lookup(_ context.Context, token string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	username, ok := f.records[token]
	return username, ok, nil
}

func (f *fakeSessions) Delete(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.records[token]
	delete(f.records, token)
	return ok, nil
}

func (f *fakeSessions) Ping(context.Context) error { return nil }

// passthroughStrategy resolves any non-empty payload for one provider.
type passthroughStrategy struct {
	provider domain.Provider
}

func (s passthroughStrategy) Supports(p domain.Provider) bool { return p == s.provider }

func (s passthroughStrategy) Resolve(_ context.Context, payload identity.Payload) (identity.Profile, error) {
	if payload.ID == "" {
		return identity.Profile{}, identity.ErrInvalidPayload
	}
	return identity.Profile{Provider: s.provider, ExternalID: payload.ID}, nil
}

func newTestAuthService(t *testing.T) (*service.AuthService, *fakeMembers, *fakeSessions) {
	t.Helper()

	codec, err := jwtx.NewCodec([]byte(testSecret), "momentree-test")
	require.NoError(t, err)

	members := newFakeMembers()
	sessions := newFakeSessions()

	return &service.AuthService{
		Codec:      codec,
		Members:    members,
		Sessions:   sessions,
		Strategies: identity.NewRegistry(passthroughStrategy{provider: domain.ProviderKakao}),
		AccessTTL:  jwtx.DefaultAccessTokenTTL,
		RefreshTTL: jwtx.DefaultRefreshTokenTTL,
	}, members, sessions
}
