// Package consumer provides Kafka consumer functionality for the alerts.created topic.
package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"cryptoalerts/internal/events"
	kafkautil "cryptoalerts/internal/kafka"
)

// Consumer wraps a Kafka reader and consumes alert created events.
type Consumer struct {
	reader *kafka.Reader
	topic  string
}

// NewConsumer creates a new Kafka consumer with the specified brokers, topic,
// and consumer group. The consumer is configured for at-least-once delivery.
func NewConsumer(brokers string, topic string, groupID string) (*Consumer, error) {
	if err := kafkautil.ValidateConsumerParams(brokers, topic, groupID); err != nil {
		return nil, err
	}

	brokerList := kafkautil.ParseBrokers(brokers)

	slog.Info("Initializing Kafka consumer",
		"brokers", brokerList,
		"topic", topic,
		"group_id", groupID,
	)

	reader := kafka.NewReader(kafkautil.NewReaderConfig(brokerList, topic, groupID))

	return &Consumer{
		reader: reader,
		topic:  topic,
	}, nil
}

// ReadMessage reads the next message and deserializes it as an AlertCreated event.
// The raw message is returned alongside the event for offset tracking.
//
// FetchMessage, not reader.ReadMessage: with a GroupID set, ReadMessage
// schedules the offset for commit as soon as the message is read, which
// would commit failed writes. FetchMessage leaves the offset untouched
// until CommitMessage is called.
func (c *Consumer) ReadMessage(ctx context.Context) (*events.AlertCreated, *kafka.Message, error) {
	msg, err := c.reader.FetchMessage(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read message from Kafka: %w", err)
	}

	var created events.AlertCreated
	if err := json.Unmarshal(msg.Value, &created); err != nil {
		return nil, &msg, fmt.Errorf("failed to unmarshal alert created event: %w", err)
	}

	return &created, &msg, nil
}

// CommitMessage commits the offset for the given message. Call this only
// after the message has been fully processed.
func (c *Consumer) CommitMessage(ctx context.Context, msg *kafka.Message) error {
	return c.reader.CommitMessages(ctx, *msg)
}

// Close gracefully closes the Kafka reader.
func (c *Consumer) Close() error {
	slog.Info("Closing Kafka consumer", "topic", c.topic)
	if err := c.reader.Close(); err != nil {
		slog.Error("Error closing Kafka consumer", "error", err)
		return err
	}
	return nil
}
