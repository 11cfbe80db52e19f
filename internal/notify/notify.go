// Package notify coordinates notification delivery across channels.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cryptoalerts/internal/notify/email"
	"cryptoalerts/internal/notify/retry"
	"cryptoalerts/internal/notify/strategy"
)

// ErrUnsupportedChannel is returned when no sender is registered for the
// requested channel. The channel set is closed; sms is a recognized value
// with no sender wired yet.
var ErrUnsupportedChannel = errors.New("unsupported notification channel")

// Notifier dispatches fired-alert notifications to the sender registered
// for the alert's channel.
type Notifier struct {
	registry *strategy.Registry
}

// NewNotifier creates a notifier with the default channel senders registered.
func NewNotifier() *Notifier {
	registry := strategy.NewRegistry()
	registry.Register(email.NewSender())
	slog.Info("Registered notification channels", "channels", registry.List())
	return NewNotifierWithRegistry(registry)
}

// NewNotifierWithRegistry creates a notifier with a custom registry.
// Useful for testing and custom channel configurations.
func NewNotifierWithRegistry(registry *strategy.Registry) *Notifier {
	return &Notifier{registry: registry}
}

// Notify sends a trigger notification on the given channel. Transient send
// failures are retried with a fixed delay; the caller decides what a final
// failure means (for the checker: leave the alert active).
func (n *Notifier) Notify(ctx context.Context, channel, address string, t *strategy.Trigger) error {
	sender, ok := n.registry.Get(channel)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedChannel, channel)
	}

	cfg := retry.DefaultConfig()
	operation := fmt.Sprintf("send_%s_%s", channel, t.AlertID)
	return retry.WithRetry(ctx, cfg, operation, func() error {
		return sender.Send(ctx, address, t)
	})
}
