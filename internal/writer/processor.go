package writer

import (
	"context"
	"log/slog"
	"time"

	"cryptoalerts/internal/events"
	"cryptoalerts/internal/store"
)

// Processor consumes alert created events and writes them to the store.
type Processor struct {
	reader  MessageReader
	storage AlertStorage
	metrics MetricsRecorder
}

// NewProcessor creates a processor with no-op metrics.
func NewProcessor(reader MessageReader, storage AlertStorage) *Processor {
	return NewProcessorWithMetrics(reader, storage, nil)
}

// NewProcessorWithMetrics creates a processor with the provided metrics
// recorder. If m is nil, a no-op implementation is used.
func NewProcessorWithMetrics(reader MessageReader, storage AlertStorage, m MetricsRecorder) *Processor {
	if m == nil {
		m = NoOpMetrics{}
	}
	return &Processor{
		reader:  reader,
		storage: storage,
		metrics: m,
	}
}

// Run continuously reads alert created events, persists them, and commits
// offsets only after a successful write. A crash between write and commit
// redelivers the event; the write is idempotent so redelivery is safe.
func (p *Processor) Run(ctx context.Context) error {
	slog.Info("Starting alert persistence loop")

	for {
		select {
		case <-ctx.Done():
			slog.Info("Alert persistence loop stopped")
			return nil
		default:
			created, msg, err := p.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				slog.Error("Failed to read alert created event", "error", err)
				continue
			}

			p.metrics.RecordReceived()

			if !p.processMessage(ctx, created) {
				continue
			}

			if err := p.reader.CommitMessage(ctx, msg); err != nil {
				slog.Error("Failed to commit offset",
					"alert_id", created.AlertID,
					"error", err,
				)
				// The event will be redelivered and rewritten; the write
				// is idempotent so that is safe.
			}
		}
	}
}

// processMessage persists one alert event. Returns true if the write
// succeeded and the message should be committed.
func (p *Processor) processMessage(ctx context.Context, created *events.AlertCreated) bool {
	slog.Debug("Received alert created event",
		"alert_id", created.AlertID,
		"user_id", created.UserID,
		"asset_id", created.AssetID,
	)

	// Record the contact first so the checker can reach the owner as soon
	// as the alert is visible. Events without an email leave the existing
	// contact untouched.
	if created.Email != "" {
		if err := p.storage.UpsertUserContact(ctx, created.UserID, created.Email); err != nil {
			slog.Error("Failed to upsert user contact",
				"alert_id", created.AlertID,
				"user_id", created.UserID,
				"error", err,
			)
			p.metrics.RecordError()
			return false
		}
	}

	alert := &store.Alert{
		AlertID:       created.AlertID,
		UserID:        created.UserID,
		AssetID:       created.AssetID,
		TargetPrice:   created.TargetPrice,
		Condition:     created.Condition,
		Channel:       created.Channel,
		CreationPrice: created.CurrentPrice,
		Active:        true,
		CreatedAt:     time.Unix(created.CreatedAt, 0).UTC(),
	}
	if err := p.storage.CreateAlert(ctx, alert); err != nil {
		slog.Error("Failed to persist alert",
			"alert_id", created.AlertID,
			"error", err,
		)
		p.metrics.RecordError()
		return false
	}

	p.metrics.RecordProcessed()
	slog.Info("Alert persisted",
		"alert_id", created.AlertID,
		"user_id", created.UserID,
		"asset_id", created.AssetID,
	)
	return true
}
