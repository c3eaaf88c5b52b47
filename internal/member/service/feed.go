package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/momentree/momentree/internal/member/domain"
	"github.com/momentree/momentree/internal/member/store"
	"github.com/momentree/momentree/pkg/idx"
)

// FeedService periodically imports items from the external data feed and
// serves the imported rows. The importer is a background worker with the
// same lifecycle as housekeeping: run once at start, then on every tick,
// until Stop.
type FeedService struct {
	FeedItems store.FeedItems
	Logger    *slog.Logger
	URL       string
	Interval  time.Duration
	Client    *http.Client

	stopCh chan struct{}
	doneCh chan struct{}
}

// feedEntry is the upstream wire format.
type feedEntry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"publishedAt"`
}

func NewFeedService(feedItems store.FeedItems, logger *slog.Logger, url string, interval time.Duration, client *http.Client) *FeedService {
	if interval <= 0 {
		interval = time.Hour
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &FeedService{
		FeedItems: feedItems,
		Logger:    logger,
		URL:       url,
		Interval:  interval,
		Client:    client,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background import worker. Non-blocking.
func (s *FeedService) Start() {
	go s.run()
	s.Logger.Info("feed importer started", "interval", s.Interval)
}

// Stop gracefully shuts down the worker, blocking until any in-progress
// import finishes.
func (s *FeedService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("feed importer stopped")
}

func (s *FeedService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	if err := s.ImportOnce(context.Background()); err != nil {
		s.Logger.Error("feed import failed", "error", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := s.ImportOnce(context.Background()); err != nil {
				s.Logger.Error("feed import failed", "error", err)
			}
		case <-s.stopCh:
			return
		}
	}
}

// ImportOnce fetches the feed and upserts every entry, dedup'd by the
// upstream source id. A bad entry is skipped, not fatal to the batch.
func (s *FeedService) ImportOnce(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch feed failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch feed failed: status %d", resp.StatusCode)
	}

	var entries []feedEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return fmt.Errorf("decode feed failed: %w", err)
	}

	var imported int
	for _, e := range entries {
		if e.ID == "" || e.Title == "" {
			s.Logger.Warn("skipping feed entry without id or title")
			continue
		}
		item := domain.FeedItem{
			ID:          idx.New().String(),
			SourceID:    e.ID,
			Title:       e.Title,
			Summary:     e.Summary,
			Link:        e.Link,
			PublishedAt: e.PublishedAt,
		}
		if err := s.FeedItems.UpsertFeedItem(ctx, item); err != nil {
			s.Logger.Error("upsert feed item failed", "source_id", e.ID, "error", err)
			continue
		}
		imported++
	}

	s.Logger.Info("feed import completed", "entries", len(entries), "imported", imported)
	return nil
}

// ListFeedItems pages the imported items newest-first, mirroring ListPosts.
func (s *FeedService) ListFeedItems(ctx context.Context, cursor string, limit int) ([]domain.FeedItem, string, error) {
	if cursor != "" {
		if _, err := idx.Parse(cursor); err != nil {
			return nil, "", ErrInvalidCursor
		}
	}
	limit = clampLimit(limit)

	items, err := s.FeedItems.ListFeedItems(ctx, cursor, limit)
	if err != nil {
		return nil, "", err
	}

	next := ""
	if len(items) == limit {
		next = items[len(items)-1].ID
	}
	return items, next, nil
}
