package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/momentree/momentree/internal/member/service"
	"github.com/momentree/momentree/pkg/httpx"
	"github.com/momentree/momentree/pkg/slogx"
)

// NotifyHandler serves POST /v1/notifications/broadcast. Admin only; the
// route guard enforces that.
type NotifyHandler struct {
	NotifyService *service.NotifyService
}

type broadcastRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ServeHTTP godoc
//
//	@Summary		Broadcast a push notification
//	@Description	Fans the message out to every registered device. Per-device delivery failures are counted, not fatal.
//	@Tags			Notifications
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		broadcastRequest		true	"Notification content"
//	@Success		200		{object}	service.BroadcastResult	"total, delivered, failed"
//	@Failure		400		{object}	APIError				"missing title"
//	@Failure		401		{object}	APIError				"missing or invalid access token"
//	@Failure		403		{object}	APIError				"caller is not an admin"
//	@Failure		500		{object}	APIError				"internal server error"
//	@Router			/v1/notifications/broadcast [post].
func (h *NotifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req broadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrBadRequest.WriteError(w)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		ErrBadRequest.WriteError(w)
		return
	}

	result, err := h.NotifyService.Broadcast(ctx, req.Title, req.Body)
	if err != nil {
		log.Error("broadcast failed", "error", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, result)
}
