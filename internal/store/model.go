package store

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Alert condition directions.
const (
	ConditionAbove = "above"
	ConditionBelow = "below"
)

// Notification channels.
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// PlaceholderEmail is the reserved marker for a user without a usable
// contact address. Alerts owned by such a user are never deactivated.
const PlaceholderEmail = "no-email@example.com"

var (
	// ErrAlertNotFound is returned when no alert exists for the given id.
	ErrAlertNotFound = errors.New("alert not found")
	// ErrContactNotFound is returned when no contact record exists for the user.
	ErrContactNotFound = errors.New("user contact not found")
)

// Alert is a user's standing request to be notified when an asset's price
// crosses a threshold. Alerts are single-shot: once active becomes false
// it never becomes true again, and triggered_at is set only by a firing.
type Alert struct {
	AlertID       string          `json:"alert_id"`
	UserID        string          `json:"user_id"`
	AssetID       string          `json:"asset_id"`
	TargetPrice   decimal.Decimal `json:"target_price"`
	Condition     string          `json:"condition"`
	Channel       string          `json:"channel"`
	CreationPrice decimal.Decimal `json:"creation_price"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	TriggeredAt   *time.Time      `json:"triggered_at,omitempty"`
}

// UserContact is the delivery address for a user's notifications.
type UserContact struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Notifiable reports whether the contact carries a usable address.
func (c *UserContact) Notifiable() bool {
	return c != nil && c.Email != "" && c.Email != PlaceholderEmail
}
