package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/momentree/momentree/internal/member/push"
	"github.com/momentree/momentree/internal/member/store"
)

const broadcastWorkers = 8

// NotifyService fans a notification out to every registered device through
// the push gateway. Delivery is best effort: one dead token never blocks the
// rest of the batch.
type NotifyService struct {
	Devices store.Devices
	Sender  push.Sender
	Logger  *slog.Logger
}

// BroadcastResult summarizes a fan-out for the admin caller.
type BroadcastResult struct {
	Total     int `json:"total"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

// Broadcast sends title/body to every registered device token using a bounded
// worker pool. Individual send failures are logged and counted, not returned.
func (s *NotifyService) Broadcast(ctx context.Context, title, body string) (BroadcastResult, error) {
	tokens, err := s.Devices.ListDeviceTokens(ctx)
	if err != nil {
		return BroadcastResult{}, err
	}

	result := BroadcastResult{Total: len(tokens)}
	if len(tokens) == 0 {
		return result, nil
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		tokenCh = make(chan string)
	)

	workers := broadcastWorkers
	if len(tokens) < workers {
		workers = len(tokens)
	}

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for token := range tokenCh {
				err := s.Sender.Send(ctx, token, title, body)
				mu.Lock()
				if err != nil {
					result.Failed++
				} else {
					result.Delivered++
				}
				mu.Unlock()
				if err != nil {
					s.Logger.Warn("push delivery failed", "error", err)
				}
			}
		}()
	}

	for _, token := range tokens {
		tokenCh <- token
	}
	close(tokenCh)
	wg.Wait()

	s.Logger.Info("broadcast completed",
		"total", result.Total,
		"delivered", result.Delivered,
		"failed", result.Failed,
	)
	return result, nil
}
