package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/momentree/momentree/internal/member/domain"
	"github.com/momentree/momentree/internal/member/service"
	"github.com/momentree/momentree/pkg/httpx"
)

// PostHandler serves member-authored content.
type PostHandler struct {
	PostService *service.PostService
}

type postRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	MediaURL string `json:"mediaUrl,omitempty"`
}

type postResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	MediaURL  string    `json:"mediaUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type postListResponse struct {
	Posts      []postResponse `json:"posts"`
	NextCursor string         `json:"nextCursor,omitempty"`
}

func toPostResponse(p domain.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Title:     p.Title,
		Body:      p.Body,
		MediaURL:  p.MediaURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// HandleCreate godoc
//
//	@Summary		Create a post
//	@Description	Only ACTIVE members may write. Title is required.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		postRequest	true	"Post content"
//	@Success		201		{object}	postResponse
//	@Failure		400		{object}	APIError	"empty title"
//	@Failure		401		{object}	APIError	"missing or invalid access token"
//	@Failure		409		{object}	APIError	"member is not ACTIVE"
//	@Failure		500		{object}	APIError	"internal server error"
//	@Router			/v1/posts [post].
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		ErrUnauthorized.WriteError(w)
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrBadRequest.WriteError(w)
		return
	}

	post, err := h.PostService.CreatePost(ctx, principal, req.Title, req.Body, req.MediaURL)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toPostResponse(post))
}

// HandleGet godoc
//
//	@Summary	Get a post
//	@Tags		Posts
//	@Produce	json
//	@Param		id	path		string	true	"Post id"
//	@Success	200	{object}	postResponse
//	@Failure	404	{object}	APIError	"post does not exist"
//	@Failure	500	{object}	APIError	"internal server error"
//	@Router		/v1/posts/{id} [get].
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	post, err := h.PostService.GetPost(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPostResponse(post))
}

// HandleList godoc
//
//	@Summary		List posts
//	@Description	Cursor-paginated, newest first. Pass the returned nextCursor to fetch the following page.
//	@Tags			Posts
//	@Produce		json
//	@Param			cursor	query		string	false	"Last seen post id"
//	@Param			limit	query		int		false	"Page size (default 20, max 100)"
//	@Success		200		{object}	postListResponse
//	@Failure		400		{object}	APIError	"invalid cursor"
//	@Failure		500		{object}	APIError	"internal server error"
//	@Router			/v1/posts [get].
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("cursor")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	posts, next, err := h.PostService.ListPosts(r.Context(), cursor, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := postListResponse{Posts: make([]postResponse, 0, len(posts)), NextCursor: next}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, toPostResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleUpdate godoc
//
//	@Summary		Update a post
//	@Description	Only the author or an admin may update.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"Post id"
//	@Param			request	body		postRequest	true	"New content"
//	@Success		200		{object}	postResponse
//	@Failure		400		{object}	APIError	"empty title"
//	@Failure		401		{object}	APIError	"missing or invalid access token"
//	@Failure		403		{object}	APIError	"caller does not own the post"
//	@Failure		404		{object}	APIError	"post does not exist"
//	@Failure		500		{object}	APIError	"internal server error"
//	@Router			/v1/posts/{id} [put].
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		ErrUnauthorized.WriteError(w)
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrBadRequest.WriteError(w)
		return
	}

	post, err := h.PostService.UpdatePost(ctx, principal, r.PathValue("id"), req.Title, req.Body, req.MediaURL)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPostResponse(post))
}

// HandleDelete godoc
//
//	@Summary		Delete a post
//	@Description	Only the author or an admin may delete.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path	string	true	"Post id"
//	@Success		200	"post deleted"
//	@Failure		401	{object}	APIError	"missing or invalid access token"
//	@Failure		403	{object}	APIError	"caller does not own the post"
//	@Failure		404	{object}	APIError	"post does not exist"
//	@Failure		500	{object}	APIError	"internal server error"
//	@Router			/v1/posts/{id} [delete].
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		ErrUnauthorized.WriteError(w)
		return
	}

	if err := h.PostService.DeletePost(ctx, principal, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("{}"))
}
