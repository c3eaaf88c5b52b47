// Package identity turns provider-supplied login payloads into a normalized
// internal profile. One strategy exists per supported provider; the registry
// dispatches on the provider tag in a fixed order decided at startup, so
// resolution is deterministic rather than best-effort.
//
// Strategies may call the provider's profile-verification endpoint, but they
// never issue tokens; claim construction stays with the login orchestrator.
package identity

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/momentree/momentree/internal/member/domain"
)

var (
	// ErrUnsupportedProvider reports a provider tag no strategy claims.
	ErrUnsupportedProvider = errors.New("unsupported_provider")

	// ErrInvalidPayload reports a login payload missing required fields.
	ErrInvalidPayload = errors.New("invalid_login_payload")

	// ErrVerificationFailed reports a provider profile check that did not
	// confirm the presented identity.
	ErrVerificationFailed = errors.New("provider_verification_failed")
)

// Payload is the client-supplied login body. The external OAuth handshake
// happens on the client; this service only receives its outcome.
type Payload struct {
	ID          string `json:"id"`
	Nickname    string `json:"nickname,omitempty"`
	AccessToken string `json:"accessToken,omitempty"` // provider token, verified when present
}

// Profile is the normalized internal identity a strategy resolves to.
type Profile struct {
	Provider    domain.Provider
	ExternalID  string
	DisplayName string
}

// Strategy adapts one external identity provider.
type Strategy interface {
	// Supports reports whether this strategy claims the provider tag.
	Supports(p domain.Provider) bool

	// Resolve converts the login payload into a normalized profile,
	// optionally confirming it against the provider's profile endpoint.
	Resolve(ctx context.Context, payload Payload) (Profile, error)
}

// Registry selects the first strategy claiming a provider tag. The slice
// order is fixed at construction, so the same tag always resolves to the
// same strategy.
type Registry struct {
	strategies []Strategy
}

func NewRegistry(strategies ...Strategy) *Registry {
	return &Registry{strategies: strategies}
}

// Resolve dispatches to the strategy for the given provider.
func (r *Registry) Resolve(ctx context.Context, p domain.Provider, payload Payload) (Profile, error) {
	for _, s := range r.strategies {
		if s.Supports(p) {
			return s.Resolve(ctx, payload)
		}
	}
	return Profile{}, ErrUnsupportedProvider
}

func defaultHTTPClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: 10 * time.Second}
}
