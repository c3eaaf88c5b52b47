package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/momentree/momentree/internal/member/store"
)

// HousekeepingService prunes rows nothing serves anymore: feed items past
// the retention window and device registrations whose owner was deleted.
// Refresh sessions expire on their own via store TTLs and need no sweep.
type HousekeepingService struct {
	Devices   store.Devices
	FeedItems store.FeedItems
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

func NewHousekeepingService(devices store.Devices, feedItems store.FeedItems, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = 90 * 24 * time.Hour
	}
	return &HousekeepingService{
		Devices:   devices,
		FeedItems: feedItems,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background cleanup worker. Non-blocking.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping started", "interval", s.Interval, "retention", s.Retention)
}

// Stop gracefully shuts down the worker, blocking until any in-progress
// sweep finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().Add(-s.Retention)
	pruned, err := s.FeedItems.DeleteFeedItemsBefore(ctx, cutoff)
	if err != nil {
		s.Logger.Error("prune feed items failed", "error", err)
	} else if pruned > 0 {
		s.Logger.Info("pruned stale feed items", "count", pruned)
	}

	removed, err := s.Devices.DeleteDevicesOfDeletedMembers(ctx)
	if err != nil {
		s.Logger.Error("prune devices failed", "error", err)
	} else if removed > 0 {
		s.Logger.Info("pruned devices of deleted members", "count", removed)
	}
}
