package handlers

import (
	"context"

	"cryptoalerts/internal/assets"
	"cryptoalerts/internal/events"
)

// AssetDirectory resolves asset metadata and current quotes.
type AssetDirectory interface {
	// Map returns the full asset directory.
	Map(ctx context.Context) ([]assets.AssetMeta, error)

	// GetMeta returns metadata for one asset, or assets.ErrAssetNotFound.
	GetMeta(ctx context.Context, assetID string) (*assets.AssetMeta, error)

	// GetQuote returns the current quote for one asset.
	GetQuote(ctx context.Context, assetID string) (*assets.Quote, error)
}

// AlertPublisher publishes validated alerts for asynchronous persistence.
type AlertPublisher interface {
	Publish(ctx context.Context, created *events.AlertCreated) error
}
