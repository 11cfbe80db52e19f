// Package writer persists published alert events into the alert store.
package writer

import (
	"context"

	"github.com/segmentio/kafka-go"

	"cryptoalerts/internal/events"
	"cryptoalerts/internal/store"
)

// MessageReader reads alert created events from the message queue.
type MessageReader interface {
	// ReadMessage reads the next message and returns the parsed event.
	// The raw message is returned for offset tracking.
	ReadMessage(ctx context.Context) (*events.AlertCreated, *kafka.Message, error)

	// CommitMessage commits the offset for the given message.
	CommitMessage(ctx context.Context, msg *kafka.Message) error

	// Close closes the reader and releases resources.
	Close() error
}

// AlertStorage persists alerts and user contacts.
type AlertStorage interface {
	// UpsertUserContact records the user's contact address, last write wins.
	UpsertUserContact(ctx context.Context, userID, email string) error

	// CreateAlert writes the alert record; the write is an idempotent
	// full replacement keyed by alert id.
	CreateAlert(ctx context.Context, alert *store.Alert) error
}
