// Package config provides configuration parsing and validation for the
// crypto alert services.
package config

import (
	"fmt"
	"time"
)

// IntakeConfig holds all configuration parameters for the intake API.
type IntakeConfig struct {
	HTTPPort        string
	KafkaBrokers    string
	AlertsTopic     string
	PriceAPIBaseURL string
	PriceAPIKey     string
	RedisAddr       string
}

// Validate checks that all required configuration fields are set.
// RedisAddr is optional; without it metrics reporting is disabled.
func (c *IntakeConfig) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("http-port cannot be empty")
	}
	if c.KafkaBrokers == "" {
		return fmt.Errorf("kafka-brokers cannot be empty")
	}
	if c.AlertsTopic == "" {
		return fmt.Errorf("alerts-topic cannot be empty")
	}
	if c.PriceAPIBaseURL == "" {
		return fmt.Errorf("price-api-base-url cannot be empty")
	}
	if c.PriceAPIKey == "" {
		return fmt.Errorf("price-api-key cannot be empty")
	}
	return nil
}

// WriterConfig holds all configuration parameters for the alert writer.
type WriterConfig struct {
	KafkaBrokers    string
	AlertsTopic     string
	ConsumerGroupID string
	PostgresDSN     string
	RedisAddr       string
}

// Validate checks that all required configuration fields are set.
func (c *WriterConfig) Validate() error {
	if c.KafkaBrokers == "" {
		return fmt.Errorf("kafka-brokers cannot be empty")
	}
	if c.AlertsTopic == "" {
		return fmt.Errorf("alerts-topic cannot be empty")
	}
	if c.ConsumerGroupID == "" {
		return fmt.Errorf("consumer-group-id cannot be empty")
	}
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres-dsn cannot be empty")
	}
	return nil
}

// CheckerConfig holds all configuration parameters for the price checker.
type CheckerConfig struct {
	HTTPPort        string
	PostgresDSN     string
	PriceAPIBaseURL string
	PriceAPIKey     string
	CheckInterval   time.Duration
	RedisAddr       string
}

// Validate checks that all required configuration fields are set.
// CheckInterval of zero disables the internal ticker; cycles then run
// only on demand through the HTTP endpoint.
func (c *CheckerConfig) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("http-port cannot be empty")
	}
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres-dsn cannot be empty")
	}
	if c.PriceAPIBaseURL == "" {
		return fmt.Errorf("price-api-base-url cannot be empty")
	}
	if c.PriceAPIKey == "" {
		return fmt.Errorf("price-api-key cannot be empty")
	}
	if c.CheckInterval < 0 {
		return fmt.Errorf("check-interval cannot be negative")
	}
	return nil
}
