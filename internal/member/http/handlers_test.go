package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/momentree/momentree/internal/member/domain"
	"github.com/momentree/momentree/internal/member/service"
	"github.com/momentree/momentree/pkg/idx"
	"github.com/momentree/momentree/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLoginHandler(t *testing.T) {
	t.Parallel()

	t.Run("first login creates a PREACTIVE member and returns both tokens", func(t *testing.T) {
		auth, members, sessions := newTestAuthService(t)
		handler := &LoginHandler{AuthService: auth}

		req := postJSON("/v1/auth/login/KAKAO", `{"id":"12345"}`)
		req.SetPathValue("provider", "KAKAO")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		access := rec.Header().Get("Authorization")
		refresh := rec.Header().Get("Refresh_token")
		require.True(t, strings.HasPrefix(access, jwtx.BearerPrefix))
		require.True(t, strings.HasPrefix(refresh, jwtx.BearerPrefix))
		require.NotEqual(t, access, refresh)

		var body loginResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.False(t, body.IsActivate)

		member, err := members.GetMemberByUsername(req.Context(), "KAKAO 12345")
		require.NoError(t, err)
		require.Equal(t, domain.StatusPreactive, member.Status)

		require.Len(t, sessions.records, 1)
	})

	t.Run("active member logs in as activated", func(t *testing.T) {
		auth, members, _ := newTestAuthService(t)
		members.put(domain.Member{
			ID:       idx.New().String(),
			Username: "KAKAO 777",
			Nickname: "Jamie",
			Role:     domain.RoleUser,
			Status:   domain.StatusActive,
		})
		handler := &LoginHandler{AuthService: auth}

		req := postJSON("/v1/auth/login/KAKAO", `{"id":"777"}`)
		req.SetPathValue("provider", "KAKAO")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body loginResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.True(t, body.IsActivate)
		require.Equal(t, "Jamie", body.Nickname)
	})

	t.Run("unknown provider is 400 unsupported_provider", func(t *testing.T) {
		auth, _, _ := newTestAuthService(t)
		handler := &LoginHandler{AuthService: auth}

		req := postJSON("/v1/auth/login/MYSPACE", `{"id":"1"}`)
		req.SetPathValue("provider", "MYSPACE")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Equal(t, "unsupported_provider", body.Code)
	})

	t.Run("empty external id is 400", func(t *testing.T) {
		auth, _, _ := newTestAuthService(t)
		handler := &LoginHandler{AuthService: auth}

		req := postJSON("/v1/auth/login/KAKAO", `{"id":""}`)
		req.SetPathValue("provider", "KAKAO")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("deleted member is 403", func(t *testing.T) {
		auth, members, _ := newTestAuthService(t)
		members.put(domain.Member{
			ID:       idx.New().String(),
			Username: "KAKAO 666",
			Role:     domain.RoleUser,
			Status:   domain.StatusDelete,
		})
		handler := &LoginHandler{AuthService: auth}

		req := postJSON("/v1/auth/login/KAKAO", `{"id":"666"}`)
		req.SetPathValue("provider", "KAKAO")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		auth, _, _ := newTestAuthService(t)
		handler := &LoginHandler{AuthService: auth}

		req := postJSON("/v1/auth/login/KAKAO", `{"id":`)
		req.SetPathValue("provider", "KAKAO")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func login(t *testing.T, auth *service.AuthService, externalID string) (access, refresh string) {
	t.Helper()

	handler := &LoginHandler{AuthService: auth}
	req := postJSON("/v1/auth/login/KAKAO", `{"id":"`+externalID+`"}`)
	req.SetPathValue("provider", "KAKAO")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	return rec.Header().Get("Authorization"), rec.Header().Get("Refresh_token")
}

func TestLogoutHandler(t *testing.T) {
	t.Parallel()

	t.Run("removes the refresh session", func(t *testing.T) {
		auth, _, sessions := newTestAuthService(t)
		_, refresh := login(t, auth, "12345")

		handler := &LogoutHandler{AuthService: auth}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, postJSON("/v1/auth/logout", `{"refreshToken":"`+refresh+`"}`))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, sessions.records)
	})

	t.Run("access token in the refresh slot is 401", func(t *testing.T) {
		auth, _, _ := newTestAuthService(t)
		access, _ := login(t, auth, "12345")

		handler := &LogoutHandler{AuthService: auth}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, postJSON("/v1/auth/logout", `{"refreshToken":"`+access+`"}`))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is 400", func(t *testing.T) {
		auth, _, _ := newTestAuthService(t)

		handler := &LogoutHandler{AuthService: auth}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, postJSON("/v1/auth/logout", `{"refreshToken":"nonsense"}`))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReissueHandler(t *testing.T) {
	t.Parallel()

	t.Run("sessioned refresh token yields a fresh access token", func(t *testing.T) {
		auth, _, _ := newTestAuthService(t)
		_, refresh := login(t, auth, "12345")

		handler := &ReissueHandler{AuthService: auth}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, postJSON("/v1/auth/reissue", `{"refreshToken":"`+refresh+`"}`))

		require.Equal(t, http.StatusOK, rec.Code)

		var body reissueResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Equal(t, "Bearer", body.TokenType)

		claims, err := auth.Codec.Verify(body.AccessToken, jwtx.CategoryAccess, time.Now().UTC())
		require.NoError(t, err)
		require.Equal(t, "KAKAO 12345", claims.Username)
	})

	t.Run("terminated session is 401", func(t *testing.T) {
		auth, _, sessions := newTestAuthService(t)
		_, refresh := login(t, auth, "12345")
		clear(sessions.records)

		handler := &ReissueHandler{AuthService: auth}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, postJSON("/v1/auth/reissue", `{"refreshToken":"`+refresh+`"}`))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMemberHandler(t *testing.T) {
	t.Parallel()

	seed := func(members *fakeMembers, status domain.Status) domain.Member {
		m := domain.Member{
			ID:         idx.New().String(),
			Username:   "KAKAO 1",
			Role:       domain.RoleUser,
			Status:     status,
			SignUpType: domain.ProviderKakao,
		}
		members.put(m)
		return m
	}

	asPrincipal := func(req *http.Request, m domain.Member) *http.Request {
		p := domain.Principal{Member: m, Role: m.Role}
		return req.WithContext(contextWithPrincipal(req.Context(), p))
	}

	t.Run("me returns the member summary", func(t *testing.T) {
		members := newFakeMembers()
		m := seed(members, domain.StatusActive)
		m.Nickname = "Jamie"
		members.put(m)

		handler := &MemberHandler{MemberService: &service.MemberService{Members: members}}
		req := asPrincipal(httptest.NewRequest(http.MethodGet, "/v1/members/me", nil), m)

		rec := httptest.NewRecorder()
		handler.HandleMe(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body memberResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Equal(t, m.ID, body.ID)
		require.Equal(t, "Jamie", body.Nickname)
		require.Equal(t, "KAKAO", body.SignUpType)
		require.True(t, body.IsActivate)
	})

	t.Run("activate moves PREACTIVE to ACTIVE", func(t *testing.T) {
		members := newFakeMembers()
		m := seed(members, domain.StatusPreactive)

		handler := &MemberHandler{MemberService: &service.MemberService{Members: members}}
		req := asPrincipal(postJSON("/v1/members/activate", `{"nickname":"Jamie"}`), m)

		rec := httptest.NewRecorder()
		handler.HandleActivate(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body memberResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Equal(t, "Jamie", body.Nickname)
		require.True(t, body.IsActivate)
	})

	t.Run("activating an ACTIVE member is 409", func(t *testing.T) {
		members := newFakeMembers()
		m := seed(members, domain.StatusActive)

		handler := &MemberHandler{MemberService: &service.MemberService{Members: members}}
		req := asPrincipal(postJSON("/v1/members/activate", `{"nickname":"Other"}`), m)

		rec := httptest.NewRecorder()
		handler.HandleActivate(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("delete moves ACTIVE to DELETE", func(t *testing.T) {
		members := newFakeMembers()
		m := seed(members, domain.StatusActive)

		handler := &MemberHandler{MemberService: &service.MemberService{Members: members}}
		req := asPrincipal(httptest.NewRequest(http.MethodDelete, "/v1/members/me", nil), m)

		rec := httptest.NewRecorder()
		handler.HandleDelete(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		stored, err := members.GetMemberByID(req.Context(), m.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusDelete, stored.Status)
	})

	t.Run("deleting a PREACTIVE member is 409", func(t *testing.T) {
		members := newFakeMembers()
		m := seed(members, domain.StatusPreactive)

		handler := &MemberHandler{MemberService: &service.MemberService{Members: members}}
		req := asPrincipal(httptest.NewRequest(http.MethodDelete, "/v1/members/me", nil), m)

		rec := httptest.NewRecorder()
		handler.HandleDelete(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)
	})
}
