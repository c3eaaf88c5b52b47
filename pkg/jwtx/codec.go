package jwtx

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// BearerPrefix is the scheme expected on every token the service accepts,
// whether it arrives in a header or a request body.
const BearerPrefix = "Bearer "

const minSecretLen = 32

var (
	// ErrMalformed reports a token string that is not a parseable JWT, or a
	// bearer value without the expected prefix.
	ErrMalformed = errors.New("malformed_token")

	// ErrSignature reports a token that was not signed with this service's key.
	ErrSignature = errors.New("invalid_signature")

	// ErrExpired reports a structurally valid token past its expiry.
	ErrExpired = errors.New("expired_token")

	// ErrCategory reports a token presented for the wrong purpose, e.g. an
	// access token sent to a refresh-scoped operation.
	ErrCategory = errors.New("category_mismatch")

	// ErrWeakSecret reports a signing secret shorter than the HS256 minimum
	// this service enforces.
	ErrWeakSecret = errors.New("signing secret must be at least 32 bytes")
)

// Codec signs and decodes bearer tokens with a single symmetric key. The key
// is loaded once at startup and must be identical across every instance that
// verifies tokens issued elsewhere. Decode checks the signature only; expiry
// and category are explicit follow-up checks (Claims.Expired, Claims.Category)
// so access-token verification stays a pure, storage-free operation.
type Codec struct {
	key    []byte
	issuer string
}

// NewCodec wraps the symmetric signing secret into a codec.
func NewCodec(secret []byte, issuer string) (*Codec, error) {
	if len(secret) < minSecretLen {
		return nil, ErrWeakSecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Codec{key: key, issuer: issuer}, nil
}

// Issuer returns the issuer claim stamped on minted tokens.
func (c *Codec) Issuer() string { return c.issuer }

// Issue signs claims for the given category and TTL. No side effects.
func (c *Codec) Issue(subject, username, role string, category Category, ttl time.Duration, now time.Time) (string, error) {
	if !category.Valid() {
		return "", ErrCategory
	}
	claims := NewClaims(subject, username, role, category, ttl, c.issuer, now)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.key)
}

// Decode parses the token and verifies its signature. It deliberately does
// not validate expiry: callers check Claims.Expired and the category with the
// policy their operation requires.
func (c *Codec) Decode(tokenString string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return Claims{}, ErrSignature
	default:
		return Claims{}, ErrMalformed
	}
}

// Verify decodes the token and enforces signature, expiry, and the expected
// category, in that order. This is the single safe path request handling
// goes through before any claim is trusted.
func (c *Codec) Verify(tokenString string, want Category, now time.Time) (Claims, error) {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return Claims{}, err
	}
	if claims.Expired(now) {
		return Claims{}, ErrExpired
	}
	if claims.Category != want {
		return Claims{}, ErrCategory
	}
	return claims, nil
}

// StripBearer removes the "Bearer " scheme from a token value. It returns
// false when the prefix is absent, which every consumer treats as a
// malformed token rather than guessing at the raw value.
func StripBearer(v string) (string, bool) {
	if !strings.HasPrefix(v, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(v, BearerPrefix))
	if token == "" {
		return "", false
	}
	return token, true
}
