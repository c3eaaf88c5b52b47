package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/momentree/momentree/internal/member/domain"
	"github.com/stretchr/testify/require"
)

func testRegistry() *Registry {
	return NewRegistry(
		NewKakao(KakaoConfig{}),
		NewNaver(NaverConfig{}),
		NewGoogle(GoogleConfig{}),
	)
}

func TestRegistryDispatch(t *testing.T) {
	t.Parallel()

	reg := testRegistry()
	ctx := context.Background()

	t.Run("resolves each supported provider", func(t *testing.T) {
		for _, p := range []domain.Provider{domain.ProviderKakao, domain.ProviderNaver, domain.ProviderGoogle} {
			profile, err := reg.Resolve(ctx, p, Payload{ID: "1234", Nickname: "mo"})
			require.NoError(t, err)
			require.Equal(t, p, profile.Provider)
			require.Equal(t, "1234", profile.ExternalID)
			require.Equal(t, "mo", profile.DisplayName)
		}
	})

	t.Run("unknown provider tag fails", func(t *testing.T) {
		_, err := reg.Resolve(ctx, domain.Provider("APPLE"), Payload{ID: "1234"})
		require.ErrorIs(t, err, ErrUnsupportedProvider)
	})

	t.Run("empty external id fails", func(t *testing.T) {
		_, err := reg.Resolve(ctx, domain.ProviderKakao, Payload{})
		require.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("dispatch is stable", func(t *testing.T) {
		for range 10 {
			profile, err := reg.Resolve(ctx, domain.ProviderNaver, Payload{ID: "77"})
			require.NoError(t, err)
			require.Equal(t, domain.ProviderNaver, profile.Provider)
		}
	})
}

func TestKakaoVerification(t *testing.T) {
	t.Parallel()

	t.Run("confirms matching profile", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "Bearer kakao-token", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":         1234,
				"properties": map[string]string{"nickname": "kakao-mo"},
			})
		}))
		defer srv.Close()

		k := NewKakao(KakaoConfig{ProfileURL: srv.URL, HTTPClient: srv.Client()})
		profile, err := k.Resolve(context.Background(), Payload{ID: "1234", AccessToken: "kakao-token"})
		require.NoError(t, err)
		require.Equal(t, "1234", profile.ExternalID)
		require.Equal(t, "kakao-mo", profile.DisplayName)
	})

	t.Run("rejects mismatched id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"id": 9999})
		}))
		defer srv.Close()

		k := NewKakao(KakaoConfig{ProfileURL: srv.URL, HTTPClient: srv.Client()})
		_, err := k.Resolve(context.Background(), Payload{ID: "1234", AccessToken: "kakao-token"})
		require.ErrorIs(t, err, ErrVerificationFailed)
	})

	t.Run("rejects provider error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		k := NewKakao(KakaoConfig{ProfileURL: srv.URL, HTTPClient: srv.Client()})
		_, err := k.Resolve(context.Background(), Payload{ID: "1234", AccessToken: "bad"})
		require.ErrorIs(t, err, ErrVerificationFailed)
	})
}

func TestGoogleVerification(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"sub": "sub-1", "name": "Mo"})
	}))
	defer srv.Close()

	g := NewGoogle(GoogleConfig{ProfileURL: srv.URL, HTTPClient: srv.Client()})
	profile, err := g.Resolve(context.Background(), Payload{ID: "sub-1", AccessToken: "tok"})
	require.NoError(t, err)
	require.Equal(t, "Mo", profile.DisplayName)

	_, err = g.Resolve(context.Background(), Payload{ID: "other", AccessToken: "tok"})
	require.ErrorIs(t, err, ErrVerificationFailed)
}
