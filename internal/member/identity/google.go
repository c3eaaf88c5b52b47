package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/momentree/momentree/internal/member/domain"
)

const defaultGoogleProfileURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// GoogleConfig holds the Google strategy configuration.
type GoogleConfig struct {
	ProfileURL string
	HTTPClient *http.Client
}

// Google resolves Google login payloads. The external id is the OIDC "sub".
type Google struct {
	profileURL string
	httpClient *http.Client
}

func NewGoogle(cfg GoogleConfig) *Google {
	if cfg.ProfileURL == "" {
		cfg.ProfileURL = defaultGoogleProfileURL
	}
	return &Google{
		profileURL: cfg.ProfileURL,
		httpClient: defaultHTTPClient(cfg.HTTPClient),
	}
}

func (g *Google) Supports(p domain.Provider) bool { return p == domain.ProviderGoogle }

func (g *Google) Resolve(ctx context.Context, payload Payload) (Profile, error) {
	if payload.ID == "" {
		return Profile{}, ErrInvalidPayload
	}

	profile := Profile{
		Provider:    domain.ProviderGoogle,
		ExternalID:  payload.ID,
		DisplayName: payload.Nickname,
	}

	if payload.AccessToken == "" {
		return profile, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.profileURL, nil)
	if err != nil {
		return Profile{}, err
	}
	req.Header.Set("Authorization", "Bearer "+payload.AccessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("google userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, ErrVerificationFailed
	}

	var body struct {
		Sub  string `json:"sub"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Profile{}, fmt.Errorf("google userinfo decode failed: %w", err)
	}

	if body.Sub != payload.ID {
		return Profile{}, ErrVerificationFailed
	}
	if profile.DisplayName == "" {
		profile.DisplayName = body.Name
	}

	return profile, nil
}
