package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. The refresh TTL is deliberately long (roughly six
// months) so a member only re-authenticates with their identity provider
// when the session store entry has also lapsed.
const (
	DefaultAccessTokenTTL  = 30 * time.Minute
	DefaultRefreshTokenTTL = 4368 * time.Hour // 182 days
)

// Category states what a token may be used for. It is carried inside the
// signed claims so a verified token can never be repurposed: an access token
// presented where a refresh token is required fails the category check before
// any other processing happens.
type Category string

const (
	CategoryAccess  Category = "access"
	CategoryRefresh Category = "refresh"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryAccess, CategoryRefresh:
		return true
	}
	return false
}

// Claims are the token claims used across the service. Keep changes additive
// to preserve compatibility with tokens already in the wild.
type Claims struct {
	jwt.RegisteredClaims

	// Category is "access" or "refresh".
	Category Category `json:"cat"`

	// Username is the provider-qualified identity, e.g. "KAKAO 1234".
	Username string `json:"username,omitempty"`

	// Role is the member role name (USER, ADMIN).
	Role string `json:"role,omitempty"`
}

// NewClaims builds minimally-correct claims for a token of the given
// category. Subject is the internal member id.
func NewClaims(
	subject, username, role string,
	category Category,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Category: category,
		Username: username,
		Role:     role,
	}
}

// Expired reports whether the claims have expired at the given instant.
// A token issued with a zero TTL is expired the moment it is minted.
// Expiry is a separate query from Decode so each caller can apply the
// policy its token category requires.
func (c Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true // no exp claim, treat as unusable
	}
	return !now.Before(c.ExpiresAt.Time)
}
