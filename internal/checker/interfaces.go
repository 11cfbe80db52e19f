// Package checker implements the alert evaluation and notification cycle.
package checker

import (
	"context"

	"cryptoalerts/internal/assets"
	"cryptoalerts/internal/notify/strategy"
	"cryptoalerts/internal/store"
)

// AlertStore provides the alert and contact operations a cycle needs.
type AlertStore interface {
	// ListActiveAlerts returns all alerts with active = true.
	ListActiveAlerts(ctx context.Context) ([]*store.Alert, error)

	// GetUserContact returns the contact record for a user, or
	// store.ErrContactNotFound.
	GetUserContact(ctx context.Context, userID string) (*store.UserContact, error)

	// MarkTriggered deactivates an alert if it is still active and reports
	// whether the row was updated.
	MarkTriggered(ctx context.Context, alertID string) (bool, error)
}

// PriceFetcher fetches current quotes for a set of asset ids in one
// batched upstream call.
type PriceFetcher interface {
	FetchPrices(ctx context.Context, assetIDs []string) (map[string]assets.Quote, error)
}

// Notifier delivers a fired-alert notification on a channel.
type Notifier interface {
	Notify(ctx context.Context, channel, address string, t *strategy.Trigger) error
}
