// Package events defines the event structures published on the alerts.created topic.
package events

import "github.com/shopspring/decimal"

// SchemaVersion is the current schema version for alert events.
const SchemaVersion = 1

// AlertCreated represents a validated alert published by the intake API.
// The alert-writer consumes these events and persists them; delivery is
// at-least-once, so the event carries everything needed for an idempotent
// full-replacement write keyed by alert_id.
type AlertCreated struct {
	AlertID       string          `json:"alert_id"`
	SchemaVersion int             `json:"schema_version"`
	UserID        string          `json:"user_id"`
	AssetID       string          `json:"asset_id"`
	TargetPrice   decimal.Decimal `json:"target_price"`
	Condition     string          `json:"condition"`
	Channel       string          `json:"channel"`
	Email         string          `json:"email,omitempty"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	CreatedAt     int64           `json:"created_at"` // unix seconds
}
