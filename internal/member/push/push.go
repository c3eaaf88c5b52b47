// Package push delivers notifications to member devices through an external
// push gateway.
package push

import "context"

// Sender delivers one notification to one device token.
type Sender interface {
	Send(ctx context.Context, token, title, body string) error
}

// Nop discards every notification. Used when no gateway is configured.
type Nop struct{}

func (Nop) Send(context.Context, string, string, string) error { return nil }
