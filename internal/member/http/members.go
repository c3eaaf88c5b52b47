package http

import (
	"encoding/json"
	"net/http"

	"github.com/momentree/momentree/internal/member/domain"
	"github.com/momentree/momentree/internal/member/service"
	"github.com/momentree/momentree/pkg/httpx"
	"github.com/momentree/momentree/pkg/slogx"
)

// MemberHandler serves the authenticated member surface.
type MemberHandler struct {
	MemberService *service.MemberService
}

type memberResponse struct {
	ID         string `json:"id"`
	Nickname   string `json:"nickname"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	SignUpType string `json:"signUpType"`
	IsActivate bool   `json:"isActivate"`
}

func toMemberResponse(m domain.Member) memberResponse {
	return memberResponse{
		ID:         m.ID,
		Nickname:   m.Nickname,
		Role:       string(m.Role),
		Status:     string(m.Status),
		SignUpType: string(m.SignUpType),
		IsActivate: m.Status == domain.StatusActive,
	}
}

// HandleMe godoc
//
//	@Summary		Get the authenticated member
//	@Tags			Members
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	memberResponse
//	@Failure		401	{object}	APIError	"missing or invalid access token"
//	@Failure		500	{object}	APIError	"internal server error"
//	@Router			/v1/members/me [get].
func (h *MemberHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		ErrUnauthorized.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMemberResponse(principal.Member))
}

type activateRequest struct {
	Nickname string `json:"nickname"`
}

// HandleActivate godoc
//
//	@Summary		Activate the authenticated member
//	@Description	Sets the nickname and moves the member from PREACTIVE to ACTIVE. Any other starting state fails with invalid_member_state.
//	@Tags			Members
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		activateRequest	true	"Nickname to set"
//	@Success		200		{object}	memberResponse
//	@Failure		401		{object}	APIError	"missing or invalid access token"
//	@Failure		409		{object}	APIError	"member is not PREACTIVE or nickname is empty"
//	@Failure		500		{object}	APIError	"internal server error"
//	@Router			/v1/members/activate [post].
func (h *MemberHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		ErrUnauthorized.WriteError(w)
		return
	}

	var req activateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrBadRequest.WriteError(w)
		return
	}

	member, err := h.MemberService.Activate(ctx, principal.Member.ID, req.Nickname)
	if err != nil {
		log.Warn("activation failed", "member_id", principal.Member.ID, "error", err)
		writeServiceError(w, err)
		return
	}

	log.Info("member activated", "member_id", member.ID)
	httpx.WriteJSON(w, http.StatusOK, toMemberResponse(member))
}

// HandleDelete godoc
//
//	@Summary		Delete the authenticated member
//	@Description	Moves the member from ACTIVE to DELETE. The member stops being authenticatable; the row is kept for attribution.
//	@Tags			Members
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	"member deleted"
//	@Failure		401	{object}	APIError	"missing or invalid access token"
//	@Failure		409	{object}	APIError	"member is not ACTIVE"
//	@Failure		500	{object}	APIError	"internal server error"
//	@Router			/v1/members/me [delete].
func (h *MemberHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		ErrUnauthorized.WriteError(w)
		return
	}

	if err := h.MemberService.Delete(ctx, principal.Member.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	log.Info("member deleted", "member_id", principal.Member.ID)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("{}"))
}
