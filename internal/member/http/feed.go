package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/momentree/momentree/internal/member/domain"
	"github.com/momentree/momentree/internal/member/service"
	"github.com/momentree/momentree/pkg/httpx"
)

// FeedHandler serves GET /v1/feed, the items imported from the external feed.
type FeedHandler struct {
	FeedService *service.FeedService
}

type feedItemResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Link        string    `json:"link,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}

type feedListResponse struct {
	Items      []feedItemResponse `json:"items"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

func toFeedItemResponse(item domain.FeedItem) feedItemResponse {
	return feedItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Summary:     item.Summary,
		Link:        item.Link,
		PublishedAt: item.PublishedAt,
	}
}

// ServeHTTP godoc
//
//	@Summary		List imported feed items
//	@Description	Cursor-paginated, newest first.
//	@Tags			Feed
//	@Produce		json
//	@Param			cursor	query		string	false	"Last seen item id"
//	@Param			limit	query		int		false	"Page size (default 20, max 100)"
//	@Success		200		{object}	feedListResponse
//	@Failure		400		{object}	APIError	"invalid cursor"
//	@Failure		500		{object}	APIError	"internal server error"
//	@Router			/v1/feed [get].
func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("cursor")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, next, err := h.FeedService.ListFeedItems(r.Context(), cursor, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := feedListResponse{Items: make([]feedItemResponse, 0, len(items)), NextCursor: next}
	for _, item := range items {
		resp.Items = append(resp.Items, toFeedItemResponse(item))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
