// Package strategy defines the channel sender interface and dispatch registry.
package strategy

import (
	"context"

	"github.com/shopspring/decimal"
)

// Trigger carries everything a channel sender needs to describe a fired alert.
type Trigger struct {
	AlertID      string
	AssetID      string
	AssetName    string
	AssetSymbol  string
	Condition    string
	TargetPrice  decimal.Decimal
	CurrentPrice decimal.Decimal
}

// ChannelSender is implemented by each notification channel.
type ChannelSender interface {
	// Send delivers a trigger notification to the given address.
	Send(ctx context.Context, address string, t *Trigger) error

	// Type returns the channel this sender handles (e.g. "email").
	Type() string
}

// Registry maps notification channels to their senders. Channels are a
// closed set: dispatching to an unregistered channel is a capability
// check, not an error inside the registry.
type Registry struct {
	senders map[string]ChannelSender
}

// NewRegistry creates an empty sender registry.
func NewRegistry() *Registry {
	return &Registry{
		senders: make(map[string]ChannelSender),
	}
}

// Register adds a channel sender.
func (r *Registry) Register(sender ChannelSender) {
	r.senders[sender.Type()] = sender
}

// Get retrieves the sender for a channel.
func (r *Registry) Get(channel string) (ChannelSender, bool) {
	sender, ok := r.senders[channel]
	return sender, ok
}

// List returns all registered channels.
func (r *Registry) List() []string {
	channels := make([]string, 0, len(r.senders))
	for c := range r.senders {
		channels = append(channels, c)
	}
	return channels
}
