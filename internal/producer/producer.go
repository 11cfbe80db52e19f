// Package producer provides Kafka producer functionality for the alerts.created topic.
package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"cryptoalerts/internal/events"
	kafkautil "cryptoalerts/internal/kafka"
)

// Producer wraps a Kafka writer and publishes alert created events.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer with the specified brokers and topic.
// The producer is configured for at-least-once delivery with synchronous writes.
func NewProducer(brokers string, topic string) (*Producer, error) {
	if err := kafkautil.ValidateProducerParams(brokers, topic); err != nil {
		return nil, err
	}

	brokerList := kafkautil.ParseBrokers(brokers)

	slog.Info("Initializing Kafka producer",
		"brokers", brokerList,
		"topic", topic,
	)

	// Hash balancer partitions by message key (alert_id), so redeliveries
	// of the same alert land on the same partition.
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokerList...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: kafkautil.WriteTimeout,
		RequiredAcks: kafka.RequireOne,
		Async:        false, // synchronous writes so publish errors surface to the caller
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}, nil
}

// Publish serializes an alert created event to JSON and publishes it to Kafka.
// The message is keyed by alert_id.
func (p *Producer) Publish(ctx context.Context, created *events.AlertCreated) error {
	payload, err := json.Marshal(created)
	if err != nil {
		slog.Error("Failed to marshal alert created event",
			"alert_id", created.AlertID,
			"error", err,
		)
		return fmt.Errorf("failed to marshal alert created event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(created.AlertID),
		Value: payload,
		Headers: []kafka.Header{
			{
				Key:   "schema_version",
				Value: []byte(fmt.Sprintf("%d", created.SchemaVersion)),
			},
			{
				Key:   "alert_id",
				Value: []byte(created.AlertID),
			},
		},
		Time: time.Unix(created.CreatedAt, 0),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		slog.Error("Failed to write message to Kafka",
			"alert_id", created.AlertID,
			"topic", p.topic,
			"error", err,
		)
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	slog.Info("Published alert created event",
		"alert_id", created.AlertID,
		"user_id", created.UserID,
		"asset_id", created.AssetID,
	)

	return nil
}

// Close gracefully closes the Kafka writer.
func (p *Producer) Close() error {
	slog.Info("Closing Kafka producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		slog.Error("Error closing Kafka producer", "error", err)
		return err
	}
	return nil
}
