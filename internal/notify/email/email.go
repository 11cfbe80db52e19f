// Package email implements the email notification channel on top of the
// provider registry.
package email

import (
	"context"
	"fmt"
	"strings"

	"cryptoalerts/internal/notify/email/provider"
	"cryptoalerts/internal/notify/payload"
	"cryptoalerts/internal/notify/strategy"
)

// Sender sends fired-alert emails through the best available provider.
type Sender struct {
	providers *provider.Registry
	from      string
}

// NewSender creates an email sender with all providers registered.
// EMAIL_PROVIDER selects the primary backend ("resend" by default);
// the remaining backends serve as fallbacks.
func NewSender() *Sender {
	registry := provider.NewRegistry()
	registry.Register(provider.NewResendProvider())
	registry.Register(provider.NewSESProvider())
	registry.Register(provider.NewSMTPProvider())

	primary := provider.GetEnvOrDefault("EMAIL_PROVIDER", "resend")
	if err := registry.SetPrimary(primary); err != nil {
		// Unknown name in the env var: keep going, pick() falls back to
		// any configured provider.
		primary = ""
	}
	switch primary {
	case "ses":
		registry.SetFallback("resend", "smtp")
	case "smtp":
		registry.SetFallback("resend", "ses")
	default:
		registry.SetFallback("ses", "smtp")
	}

	return NewSenderWithRegistry(registry, provider.GetEnvOrDefault("EMAIL_FROM", "alerts@cryptoalerts.local"))
}

// NewSenderWithRegistry creates an email sender with a custom provider
// registry. Useful for testing.
func NewSenderWithRegistry(registry *provider.Registry, from string) *Sender {
	return &Sender{
		providers: registry,
		from:      from,
	}
}

// Type returns the channel this sender handles.
func (s *Sender) Type() string {
	return "email"
}

// Send renders the alert payload and sends it to the given address.
func (s *Sender) Send(ctx context.Context, address string, t *strategy.Trigger) error {
	if address == "" {
		return fmt.Errorf("email recipient is required")
	}
	if !strings.Contains(address, "@") {
		return fmt.Errorf("invalid email address format: %q", address)
	}

	content := payload.BuildEmailPayload(t)

	return s.providers.Send(ctx, &provider.EmailRequest{
		From:    s.from,
		To:      []string{address},
		Subject: content.Subject,
		Body:    content.Body,
		HTML:    content.HTML,
	})
}
