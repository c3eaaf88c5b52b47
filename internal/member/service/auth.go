package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/momentree/momentree/internal/member/domain"
	"github.com/momentree/momentree/internal/member/identity"
	"github.com/momentree/momentree/internal/member/store"
	"github.com/momentree/momentree/pkg/idx"
	"github.com/momentree/momentree/pkg/jwtx"
	"github.com/momentree/momentree/pkg/slogx"
)

// AuthService owns login and logout orchestration and everything token:
// issuing pairs, verifying access tokens for the middleware, and the
// refresh-session lifecycle. It exclusively owns member creation; it never
// mutates an existing member's status.
type AuthService struct {
	Codec      *jwtx.Codec
	Members    store.Members
	Sessions   store.Sessions
	Strategies *identity.Registry
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// LoginResult is what a completed login hands to the HTTP layer.
type LoginResult struct {
	Member domain.Member
	Tokens domain.TokenPair
}

// Login resolves the provider payload to an internal member, creating the
// member on first contact, then issues a token pair and records the refresh
// half in the session store.
//
// A session-store write failure fails the whole login: returning tokens that
// can never be revoked is worse than asking the client to retry.
func (s *AuthService) Login(ctx context.Context, provider domain.Provider, payload identity.Payload) (*LoginResult, error) {
	l := slogx.FromContext(ctx)

	// 1. Normalize the external identity.
	profile, err := s.Strategies.Resolve(ctx, provider, payload)
	if err != nil {
		return nil, err
	}

	// 2. The provider-qualified username is the stable join key.
	username := domain.Username(profile.Provider, profile.ExternalID)

	// 3. Find or create the member. Creation races on the unique username
	// are resolved by re-reading the winner's row.
	member, err := s.Members.GetMemberByUsername(ctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		member = domain.Member{
			ID:         idx.New().String(),
			Username:   username,
			Role:       domain.RoleUser,
			Status:     domain.StatusPreactive,
			SignUpType: profile.Provider,
		}
		if err := s.Members.CreateMember(ctx, member); err != nil {
			if !errors.Is(err, store.ErrAlreadyExists) {
				return nil, fmt.Errorf("create member failed: %w", err)
			}
			if member, err = s.Members.GetMemberByUsername(ctx, username); err != nil {
				return nil, fmt.Errorf("load member failed: %w", err)
			}
		} else {
			l.Info("member created", "member_id", member.ID, "provider", profile.Provider)
		}
	case err != nil:
		return nil, fmt.Errorf("load member failed: %w", err)
	}

	// 4. DELETE is terminal for authentication.
	if member.Status == domain.StatusDelete {
		return nil, ErrMemberDeleted
	}

	// 5. Issue the pair.
	tokens, err := s.IssueTokens(member)
	if err != nil {
		return nil, err
	}

	// 6. Persist the refresh session; failure here fails the login.
	if err := s.Sessions.Save(ctx, tokens.RefreshToken, member.Username, s.RefreshTTL); err != nil {
		return nil, fmt.Errorf("persist refresh session failed: %w", err)
	}

	return &LoginResult{Member: member, Tokens: tokens}, nil
}

// IssueTokens mints an access/refresh pair for the member. No side effects;
// the caller decides whether the refresh half becomes a session.
func (s *AuthService) IssueTokens(m domain.Member) (domain.TokenPair, error) {
	now := time.Now().UTC()

	access, err := s.Codec.Issue(m.ID, m.Username, string(m.Role), jwtx.CategoryAccess, s.AccessTTL, now)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.Codec.Issue(m.ID, m.Username, string(m.Role), jwtx.CategoryRefresh, s.RefreshTTL, now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.AccessTTL,
	}, nil
}

// Logout validates the presented refresh token and removes its session
// record. Deleting an already-absent record is not an error for the caller
// (the net effect holds), but it is logged distinctly for audit.
func (s *AuthService) Logout(ctx context.Context, bearerRefresh string) error {
	l := slogx.FromContext(ctx)

	// 1. The token must carry the bearer prefix.
	raw, ok := jwtx.StripBearer(bearerRefresh)
	if !ok {
		return ErrMalformedToken
	}

	// 2. Signature first, then expiry.
	claims, err := s.Codec.Decode(raw)
	switch {
	case errors.Is(err, jwtx.ErrMalformed):
		return ErrMalformedToken
	case err != nil:
		return ErrInvalidToken
	}
	if claims.Expired(time.Now().UTC()) {
		return ErrExpiredToken
	}

	// 3. An access token must never terminate a session.
	if claims.Category != jwtx.CategoryRefresh {
		l.Warn("logout with non-refresh token", "category", claims.Category, "member_id", claims.Subject)
		return ErrCategoryMismatch
	}

	// 4. Idempotent delete.
	removed, err := s.Sessions.Delete(ctx, raw)
	if err != nil {
		return fmt.Errorf("delete refresh session failed: %w", err)
	}
	if !removed {
		l.Info("logout of absent session", "member_id", claims.Subject)
	}
	return nil
}

// Reissue exchanges a valid, still-sessioned refresh token for a fresh
// access token. Unlike logout, the session record must exist: absence means
// the session was terminated and the client has to log in again.
func (s *AuthService) Reissue(ctx context.Context, bearerRefresh string) (string, error) {
	raw, ok := jwtx.StripBearer(bearerRefresh)
	if !ok {
		return "", ErrMalformedToken
	}

	claims, err := s.Codec.Decode(raw)
	switch {
	case errors.Is(err, jwtx.ErrMalformed):
		return "", ErrMalformedToken
	case err != nil:
		return "", ErrInvalidToken
	}
	now := time.Now().UTC()
	if claims.Expired(now) {
		return "", ErrExpiredToken
	}
	if claims.Category != jwtx.CategoryRefresh {
		return "", ErrCategoryMismatch
	}

	username, found, err := s.Sessions.Lookup(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("lookup refresh session failed: %w", err)
	}
	if !found {
		return "", ErrSessionNotFound
	}

	member, err := s.Members.GetMemberByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("load member failed: %w", err)
	}
	if member.Status == domain.StatusDelete {
		return "", ErrMemberDeleted
	}

	return s.Codec.Issue(member.ID, member.Username, string(member.Role), jwtx.CategoryAccess, s.AccessTTL, now)
}

// Authenticate verifies a bearer access token end to end (signature, expiry,
// category) and resolves the member it names. A verified token whose member
// row is missing, or whose member is DELETE, yields ErrNotAuthenticated so
// the middleware can pass the request through anonymously.
func (s *AuthService) Authenticate(ctx context.Context, bearerAccess string) (domain.Principal, error) {
	raw, ok := jwtx.StripBearer(bearerAccess)
	if !ok {
		return domain.Principal{}, ErrMalformedToken
	}

	claims, err := s.Codec.Verify(raw, jwtx.CategoryAccess, time.Now().UTC())
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		return domain.Principal{}, ErrExpiredToken
	case errors.Is(err, jwtx.ErrCategory):
		return domain.Principal{}, ErrCategoryMismatch
	case errors.Is(err, jwtx.ErrMalformed):
		return domain.Principal{}, ErrMalformedToken
	case err != nil:
		return domain.Principal{}, ErrInvalidToken
	}

	member, err := s.Members.GetMemberByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Principal{}, ErrNotAuthenticated
		}
		return domain.Principal{}, fmt.Errorf("load member failed: %w", err)
	}
	if member.Status == domain.StatusDelete {
		return domain.Principal{}, ErrNotAuthenticated
	}

	return domain.Principal{Member: member, Role: member.Role}, nil
}
