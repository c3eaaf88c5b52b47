package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/momentree/momentree/internal/member/domain"
	"github.com/momentree/momentree/internal/member/identity"
	"github.com/momentree/momentree/internal/member/service"
	"github.com/momentree/momentree/pkg/httpx"
	"github.com/momentree/momentree/pkg/jwtx"
	"github.com/momentree/momentree/pkg/slogx"
)

// LoginHandler serves POST /v1/auth/login/{provider}. A successful login
// returns the token pair in response headers and the member summary in the
// body. Unknown members are created in PREACTIVE on first contact.
type LoginHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	ID          string `json:"id"`
	Nickname    string `json:"nickname,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
}

type loginResponse struct {
	Nickname   string `json:"nickname"`
	IsActivate bool   `json:"isActivate"`
}

// ServeHTTP godoc
//
//	@Summary		Login with an external identity provider
//	@Description	Resolves the provider payload to a member, creating the member in PREACTIVE on first login.
//	@Description	The access token is returned in the Authorization header and the refresh token in the Refresh_token header, both with a Bearer prefix.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			provider	path		string			true	"Identity provider"	Enums(KAKAO, NAVER, GOOGLE)
//	@Param			request		body		loginRequest	true	"External identity payload"
//	@Success		200			{object}	loginResponse	"nickname, isActivate"
//	@Header			200			{string}	Authorization	"Bearer access token"
//	@Header			200			{string}	Refresh_token	"Bearer refresh token"
//	@Failure		400			{object}	APIError		"unknown provider or invalid payload"
//	@Failure		403			{object}	APIError		"member is deleted"
//	@Failure		500			{object}	APIError		"internal server error"
//	@Router			/v1/auth/login/{provider} [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	provider, err := domain.ParseProvider(r.PathValue("provider"))
	if err != nil {
		(&APIError{
			StatusCode:  http.StatusBadRequest,
			Code:        "unsupported_provider",
			Description: "unknown identity provider",
		}).WriteError(w)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrBadRequest.WriteError(w)
		return
	}

	result, err := h.AuthService.Login(ctx, provider, identity.Payload{
		ID:          req.ID,
		Nickname:    req.Nickname,
		AccessToken: req.AccessToken,
	})
	if err != nil {
		log.Warn("login failed", "provider", provider, "error", err)
		writeLoginError(w, err)
		return
	}

	w.Header().Set("Authorization", jwtx.BearerPrefix+result.Tokens.AccessToken)
	w.Header().Set("Refresh_token", jwtx.BearerPrefix+result.Tokens.RefreshToken)
	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Nickname:   result.Member.Nickname,
		IsActivate: result.Member.Status == domain.StatusActive,
	})
}

func writeLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identity.ErrUnsupportedProvider), errors.Is(err, identity.ErrInvalidPayload):
		ErrBadRequest.WriteError(w)
	case errors.Is(err, identity.ErrVerificationFailed):
		(&APIError{
			StatusCode:  http.StatusUnauthorized,
			Code:        "verification_failed",
			Description: "the provider rejected the presented credentials",
		}).WriteError(w)
	default:
		writeServiceError(w, err)
	}
}

// LogoutHandler serves POST /v1/auth/logout. The refresh token travels in
// the request body with its Bearer prefix intact.
type LogoutHandler struct {
	AuthService *service.AuthService
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ServeHTTP godoc
//
//	@Summary		Logout
//	@Description	Validates the refresh token and removes its session record. Removing an already-absent session still succeeds.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	logoutRequest	true	"Bearer-prefixed refresh token"
//	@Success		200		"session terminated"
//	@Failure		400		{object}	APIError	"malformed token"
//	@Failure		401		{object}	APIError	"invalid, expired or wrong-category token"
//	@Failure		500		{object}	APIError	"internal server error"
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrBadRequest.WriteError(w)
		return
	}

	if err := h.AuthService.Logout(ctx, req.RefreshToken); err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("{}"))
}

// ReissueHandler serves POST /v1/auth/reissue, exchanging a still-sessioned
// refresh token for a fresh access token.
type ReissueHandler struct {
	AuthService *service.AuthService
}

type reissueRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type reissueResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// ServeHTTP godoc
//
//	@Summary		Reissue an access token
//	@Description	Exchanges a valid refresh token for a fresh access token. The refresh session must still exist; a terminated session requires a new login.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		reissueRequest	true	"Bearer-prefixed refresh token"
//	@Success		200		{object}	reissueResponse	"accessToken, tokenType"
//	@Failure		400		{object}	APIError		"malformed token"
//	@Failure		401		{object}	APIError		"invalid, expired, wrong-category or unsessioned token"
//	@Failure		403		{object}	APIError		"member is deleted"
//	@Failure		500		{object}	APIError		"internal server error"
//	@Router			/v1/auth/reissue [post].
func (h *ReissueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req reissueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrBadRequest.WriteError(w)
		return
	}

	access, err := h.AuthService.Reissue(ctx, req.RefreshToken)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, reissueResponse{
		AccessToken: access,
		TokenType:   "Bearer",
	})
}
