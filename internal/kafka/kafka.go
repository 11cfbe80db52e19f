// Package kafka provides shared Kafka configuration helpers for all services.
package kafka

import (
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	// WriteTimeout is the maximum time to wait for a Kafka write operation.
	WriteTimeout = 10 * time.Second
	// MaxPollWait is the maximum time a reader waits for new data.
	MaxPollWait = 1 * time.Second
)

// ParseBrokers parses a comma-separated broker list and trims whitespace.
func ParseBrokers(brokers string) []string {
	if brokers == "" {
		return nil
	}
	brokerList := strings.Split(brokers, ",")
	for i := range brokerList {
		brokerList[i] = strings.TrimSpace(brokerList[i])
	}
	return brokerList
}

// ValidateProducerParams validates common producer parameters.
func ValidateProducerParams(brokers, topic string) error {
	if brokers == "" {
		return fmt.Errorf("brokers cannot be empty")
	}
	if topic == "" {
		return fmt.Errorf("topic cannot be empty")
	}
	return nil
}

// ValidateConsumerParams validates common consumer parameters.
func ValidateConsumerParams(brokers, topic, groupID string) error {
	if err := ValidateProducerParams(brokers, topic); err != nil {
		return err
	}
	if groupID == "" {
		return fmt.Errorf("groupID cannot be empty")
	}
	return nil
}

// NewReaderConfig creates the standard reader configuration for
// at-least-once delivery, shared by all consumers.
func NewReaderConfig(brokers []string, topic, groupID string) kafka.ReaderConfig {
	return kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,    // return as soon as any data is available
		MaxBytes: 10e6, // 10MB
		MaxWait:  MaxPollWait,
		// CommitInterval zero makes CommitMessages synchronous. Offsets
		// advance only through an explicit commit after a successful
		// write; a failed write is redelivered, never dropped.
		CommitInterval: 0,
		StartOffset:    kafka.FirstOffset, // read from the beginning when no committed offset exists
	}
}
