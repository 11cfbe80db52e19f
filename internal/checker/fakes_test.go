// Package checker provides test fakes for the checker dependencies.
package checker

import (
	"context"

	"cryptoalerts/internal/assets"
	"cryptoalerts/internal/notify/strategy"
	"cryptoalerts/internal/store"
)

// fakeStore implements AlertStore for testing.
type fakeStore struct {
	// Callbacks for each method (set these to control behavior)
	ListActiveAlertsFn func(ctx context.Context) ([]*store.Alert, error)
	GetUserContactFn   func(ctx context.Context, userID string) (*store.UserContact, error)
	MarkTriggeredFn    func(ctx context.Context, alertID string) (bool, error)

	markTriggeredCalls []string
}

func (f *fakeStore) ListActiveAlerts(ctx context.Context) ([]*store.Alert, error) {
	if f.ListActiveAlertsFn != nil {
		return f.ListActiveAlertsFn(ctx)
	}
	return []*store.Alert{}, nil
}

func (f *fakeStore) GetUserContact(ctx context.Context, userID string) (*store.UserContact, error) {
	if f.GetUserContactFn != nil {
		return f.GetUserContactFn(ctx, userID)
	}
	return &store.UserContact{UserID: userID, Email: userID + "@example.com"}, nil
}

func (f *fakeStore) MarkTriggered(ctx context.Context, alertID string) (bool, error) {
	f.markTriggeredCalls = append(f.markTriggeredCalls, alertID)
	if f.MarkTriggeredFn != nil {
		return f.MarkTriggeredFn(ctx, alertID)
	}
	return true, nil
}

// fakePrices implements PriceFetcher for testing.
type fakePrices struct {
	FetchPricesFn func(ctx context.Context, assetIDs []string) (map[string]assets.Quote, error)

	fetchCalls [][]string
}

func (f *fakePrices) FetchPrices(ctx context.Context, assetIDs []string) (map[string]assets.Quote, error) {
	f.fetchCalls = append(f.fetchCalls, assetIDs)
	if f.FetchPricesFn != nil {
		return f.FetchPricesFn(ctx, assetIDs)
	}
	return map[string]assets.Quote{}, nil
}

// fakeNotifier implements Notifier for testing.
type fakeNotifier struct {
	NotifyFn func(ctx context.Context, channel, address string, t *strategy.Trigger) error

	sent []sentNotification
}

type sentNotification struct {
	channel string
	address string
	trigger *strategy.Trigger
}

func (f *fakeNotifier) Notify(ctx context.Context, channel, address string, t *strategy.Trigger) error {
	f.sent = append(f.sent, sentNotification{channel: channel, address: address, trigger: t})
	if f.NotifyFn != nil {
		return f.NotifyFn(ctx, channel, address, t)
	}
	return nil
}
