package assets

import "github.com/shopspring/decimal"

// AssetMeta describes one entry of the upstream asset directory.
type AssetMeta struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Slug     string `json:"slug"`
	IsActive int    `json:"is_active"`
}

// Quote is a price observation for one asset at one point in time.
// Quotes are ephemeral: they are used for evaluation and display but
// never persisted.
type Quote struct {
	AssetID     string          `json:"asset_id"`
	Name        string          `json:"name"`
	Symbol      string          `json:"symbol"`
	Price       decimal.Decimal `json:"price"`
	LastUpdated string          `json:"last_updated"`
}
