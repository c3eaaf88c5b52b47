package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/momentree/momentree/internal/member/domain"
)

const defaultKakaoProfileURL = "https://kapi.kakao.com/v2/user/me"

// KakaoConfig holds the Kakao strategy configuration.
type KakaoConfig struct {
	ProfileURL string
	HTTPClient *http.Client
}

// Kakao resolves Kakao login payloads. When the payload carries a Kakao
// access token the strategy confirms the external id against Kakao's profile
// endpoint; otherwise the payload id is taken as-is.
type Kakao struct {
	profileURL string
	httpClient *http.Client
}

func NewKakao(cfg KakaoConfig) *Kakao {
	if cfg.ProfileURL == "" {
		cfg.ProfileURL = defaultKakaoProfileURL
	}
	return &Kakao{
		profileURL: cfg.ProfileURL,
		httpClient: defaultHTTPClient(cfg.HTTPClient),
	}
}

func (k *Kakao) Supports(p domain.Provider) bool { return p == domain.ProviderKakao }

func (k *Kakao) Resolve(ctx context.Context, payload Payload) (Profile, error) {
	if payload.ID == "" {
		return Profile{}, ErrInvalidPayload
	}

	profile := Profile{
		Provider:    domain.ProviderKakao,
		ExternalID:  payload.ID,
		DisplayName: payload.Nickname,
	}

	if payload.AccessToken == "" {
		return profile, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.profileURL, nil)
	if err != nil {
		return Profile{}, err
	}
	req.Header.Set("Authorization", "Bearer "+payload.AccessToken)

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("kakao profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, ErrVerificationFailed
	}

	var body struct {
		ID         int64 `json:"id"`
		Properties struct {
			Nickname string `json:"nickname"`
		} `json:"properties"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Profile{}, fmt.Errorf("kakao profile decode failed: %w", err)
	}

	if strconv.FormatInt(body.ID, 10) != payload.ID {
		return Profile{}, ErrVerificationFailed
	}
	if profile.DisplayName == "" {
		profile.DisplayName = body.Properties.Nickname
	}

	return profile, nil
}
