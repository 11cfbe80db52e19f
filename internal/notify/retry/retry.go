// Package retry provides bounded retry for transient notification send failures.
package retry

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Config defines retry behavior.
type Config struct {
	MaxRetries int           // retry attempts after the first try (0 = no retries)
	Backoff    time.Duration // fixed delay between attempts
}

// DefaultConfig returns the default send retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 2,
		Backoff:    500 * time.Millisecond,
	}
}

// nonRetryable marks permanent failures that a retry cannot fix.
var nonRetryable = []string{
	"not verified", // SES sandbox recipient
	"invalid",
	"malformed",
	"recipient is required",
	"unsupported notification channel",
}

// retryable marks transient failures worth another attempt.
var retryable = []string{
	"timeout",
	"connection refused",
	"connection reset",
	"temporary",
	"rate limit",
	"throttl",
	"502",
	"503",
	"504",
	"too many requests",
	"try again",
}

// IsRetryable reports whether an error is transient. Unknown errors are
// not retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	for _, s := range nonRetryable {
		if strings.Contains(errStr, s) {
			return false
		}
	}
	for _, s := range retryable {
		if strings.Contains(errStr, s) {
			return true
		}
	}
	return false
}

// WithRetry executes fn, retrying transient failures with a fixed delay.
func WithRetry(ctx context.Context, cfg Config, operation string, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 0 {
				slog.Info("Operation succeeded after retry",
					"operation", operation,
					"attempt", attempt+1,
				)
			}
			return nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return err
		}
		if attempt >= cfg.MaxRetries {
			slog.Warn("Max retries exceeded",
				"operation", operation,
				"attempts", attempt+1,
				"error", err,
			)
			return err
		}

		slog.Warn("Operation failed, retrying",
			"operation", operation,
			"attempt", attempt+1,
			"backoff", cfg.Backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cfg.Backoff):
		}
	}

	return lastErr
}
