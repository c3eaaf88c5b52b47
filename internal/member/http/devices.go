package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/momentree/momentree/internal/member/domain"
	"github.com/momentree/momentree/internal/member/store"
	"github.com/momentree/momentree/pkg/httpx"
	"github.com/momentree/momentree/pkg/idx"
	"github.com/momentree/momentree/pkg/slogx"
)

// DeviceHandler serves POST /v1/devices, registering a push token for the
// authenticated member. Re-registering the same token is an upsert.
type DeviceHandler struct {
	Devices store.Devices
}

type registerDeviceRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

// ServeHTTP godoc
//
//	@Summary		Register a device for push notifications
//	@Tags			Devices
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	registerDeviceRequest	true	"Device token and platform"
//	@Success		201		"device registered"
//	@Failure		400		{object}	APIError	"missing token"
//	@Failure		401		{object}	APIError	"missing or invalid access token"
//	@Failure		500		{object}	APIError	"internal server error"
//	@Router			/v1/devices [post].
func (h *DeviceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		ErrUnauthorized.WriteError(w)
		return
	}

	var req registerDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrBadRequest.WriteError(w)
		return
	}
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		ErrBadRequest.WriteError(w)
		return
	}

	device := domain.Device{
		ID:       idx.New().String(),
		MemberID: principal.Member.ID,
		Token:    req.Token,
		Platform: req.Platform,
	}
	if err := h.Devices.RegisterDevice(ctx, device); err != nil {
		log.Error("device registration failed", "member_id", principal.Member.ID, "error", err)
		writeServiceError(w, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte("{}"))
}
