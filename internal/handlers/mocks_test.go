// Package handlers provides test mocks for handler dependencies.
package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"cryptoalerts/internal/assets"
	"cryptoalerts/internal/events"
)

// mockDirectory implements AssetDirectory for testing.
type mockDirectory struct {
	// Callbacks for each method (set these to control behavior)
	MapFn      func(ctx context.Context) ([]assets.AssetMeta, error)
	GetMetaFn  func(ctx context.Context, assetID string) (*assets.AssetMeta, error)
	GetQuoteFn func(ctx context.Context, assetID string) (*assets.Quote, error)
}

func (m *mockDirectory) Map(ctx context.Context) ([]assets.AssetMeta, error) {
	if m.MapFn != nil {
		return m.MapFn(ctx)
	}
	return []assets.AssetMeta{}, nil
}

func (m *mockDirectory) GetMeta(ctx context.Context, assetID string) (*assets.AssetMeta, error) {
	if m.GetMetaFn != nil {
		return m.GetMetaFn(ctx, assetID)
	}
	return &assets.AssetMeta{ID: 1, Name: "Bitcoin", Symbol: "BTC", Slug: "bitcoin", IsActive: 1}, nil
}

func (m *mockDirectory) GetQuote(ctx context.Context, assetID string) (*assets.Quote, error) {
	if m.GetQuoteFn != nil {
		return m.GetQuoteFn(ctx, assetID)
	}
	return &assets.Quote{
		AssetID: assetID,
		Name:    "Bitcoin",
		Symbol:  "BTC",
		Price:   decimal.RequireFromString("50000"),
	}, nil
}

// mockPublisher implements AlertPublisher for testing.
type mockPublisher struct {
	PublishFn func(ctx context.Context, created *events.AlertCreated) error

	published []*events.AlertCreated
}

func (m *mockPublisher) Publish(ctx context.Context, created *events.AlertCreated) error {
	m.published = append(m.published, created)
	if m.PublishFn != nil {
		return m.PublishFn(ctx, created)
	}
	return nil
}
