package http

import (
	"net/http"

	"github.com/momentree/momentree/internal/member/service"
	"github.com/momentree/momentree/pkg/httpx"
	"github.com/momentree/momentree/pkg/slogx"
)

// maxUploadBytes caps a single multipart upload at 32 MiB.
const maxUploadBytes = 32 << 20

// MediaHandler serves POST /v1/media for member file uploads.
type MediaHandler struct {
	MediaService *service.MediaService
}

type mediaResponse struct {
	URL string `json:"url"`
}

// ServeHTTP godoc
//
//	@Summary		Upload a media file
//	@Description	Accepts a multipart form with a "file" part and stores it in object storage. Returns the public URL to embed in a post.
//	@Tags			Media
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file			true	"File to upload"
//	@Success		201		{object}	mediaResponse	"url"
//	@Failure		400		{object}	APIError		"missing file part or rejected content type"
//	@Failure		401		{object}	APIError		"missing or invalid access token"
//	@Failure		500		{object}	APIError		"internal server error"
//	@Router			/v1/media [post].
func (h *MediaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		ErrUnauthorized.WriteError(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		ErrBadRequest.WriteError(w)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		ErrBadRequest.WriteError(w)
		return
	}
	defer file.Close()

	url, err := h.MediaService.Upload(ctx, principal.Member.ID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		log.Warn("media upload failed", "member_id", principal.Member.ID, "error", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, mediaResponse{URL: url})
}
