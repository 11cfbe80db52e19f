// Package writer provides test fakes for the processor dependencies.
package writer

import (
	"context"
	"io"

	"github.com/segmentio/kafka-go"

	"cryptoalerts/internal/events"
	"cryptoalerts/internal/store"
)

// fakeReader implements MessageReader, feeding a fixed sequence of events.
// After the sequence is exhausted ReadMessage returns io.EOF wrapped in a
// context cancellation so Run exits cleanly.
type fakeReader struct {
	queue  []*events.AlertCreated
	cancel context.CancelFunc

	commits []kafka.Message
}

func (f *fakeReader) ReadMessage(ctx context.Context) (*events.AlertCreated, *kafka.Message, error) {
	if len(f.queue) == 0 {
		f.cancel()
		return nil, nil, io.EOF
	}
	created := f.queue[0]
	f.queue = f.queue[1:]
	msg := &kafka.Message{Key: []byte(created.AlertID)}
	return created, msg, nil
}

func (f *fakeReader) CommitMessage(ctx context.Context, msg *kafka.Message) error {
	f.commits = append(f.commits, *msg)
	return nil
}

func (f *fakeReader) Close() error { return nil }

// fakeStorage implements AlertStorage for testing.
type fakeStorage struct {
	UpsertUserContactFn func(ctx context.Context, userID, email string) error
	CreateAlertFn       func(ctx context.Context, alert *store.Alert) error

	contacts map[string]string
	alerts   map[string]*store.Alert
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		contacts: make(map[string]string),
		alerts:   make(map[string]*store.Alert),
	}
}

func (f *fakeStorage) UpsertUserContact(ctx context.Context, userID, email string) error {
	if f.UpsertUserContactFn != nil {
		if err := f.UpsertUserContactFn(ctx, userID, email); err != nil {
			return err
		}
	}
	f.contacts[userID] = email
	return nil
}

func (f *fakeStorage) CreateAlert(ctx context.Context, alert *store.Alert) error {
	if f.CreateAlertFn != nil {
		if err := f.CreateAlertFn(ctx, alert); err != nil {
			return err
		}
	}
	f.alerts[alert.AlertID] = alert
	return nil
}
