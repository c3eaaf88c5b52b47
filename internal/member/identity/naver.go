package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/momentree/momentree/internal/member/domain"
)

const defaultNaverProfileURL = "https://openapi.naver.com/v1/nid/me"

// NaverConfig holds the Naver strategy configuration.
type NaverConfig struct {
	ProfileURL string
	HTTPClient *http.Client
}

// Naver resolves Naver login payloads, mirroring the Kakao strategy shape.
type Naver struct {
	profileURL string
	httpClient *http.Client
}

func NewNaver(cfg NaverConfig) *Naver {
	if cfg.ProfileURL == "" {
		cfg.ProfileURL = defaultNaverProfileURL
	}
	return &Naver{
		profileURL: cfg.ProfileURL,
		httpClient: defaultHTTPClient(cfg.HTTPClient),
	}
}

func (n *Naver) Supports(p domain.Provider) bool { return p == domain.ProviderNaver }

func (n *Naver) Resolve(ctx context.Context, payload Payload) (Profile, error) {
	if payload.ID == "" {
		return Profile{}, ErrInvalidPayload
	}

	profile := Profile{
		Provider:    domain.ProviderNaver,
		ExternalID:  payload.ID,
		DisplayName: payload.Nickname,
	}

	if payload.AccessToken == "" {
		return profile, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.profileURL, nil)
	if err != nil {
		return Profile{}, err
	}
	req.Header.Set("Authorization", "Bearer "+payload.AccessToken)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("naver profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, ErrVerificationFailed
	}

	var body struct {
		Response struct {
			ID       string `json:"id"`
			Nickname string `json:"nickname"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Profile{}, fmt.Errorf("naver profile decode failed: %w", err)
	}

	if body.Response.ID != payload.ID {
		return Profile{}, ErrVerificationFailed
	}
	if profile.DisplayName == "" {
		profile.DisplayName = body.Response.Nickname
	}

	return profile, nil
}
