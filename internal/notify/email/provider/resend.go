package provider

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/resend/resend-go/v2"
)

// ResendProvider implements email sending via the Resend API.
type ResendProvider struct {
	client *resend.Client
}

// NewResendProvider creates a Resend email provider from RESEND_API_KEY.
func NewResendProvider() *ResendProvider {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		slog.Warn("RESEND_API_KEY not set, Resend provider will be unavailable")
		return &ResendProvider{}
	}
	return &ResendProvider{
		client: resend.NewClient(apiKey),
	}
}

// Name returns the provider name.
func (p *ResendProvider) Name() string {
	return "resend"
}

// IsConfigured returns true if an API key was provided.
func (p *ResendProvider) IsConfigured() bool {
	return p.client != nil
}

// Send sends an email via Resend.
func (p *ResendProvider) Send(ctx context.Context, req *EmailRequest) error {
	if p.client == nil {
		return fmt.Errorf("resend client not initialized")
	}
	if len(req.To) == 0 {
		return fmt.Errorf("recipient is required")
	}

	params := &resend.SendEmailRequest{
		From:    req.From,
		To:      req.To,
		Subject: req.Subject,
		Text:    req.Body,
		Html:    req.HTML,
	}

	sent, err := p.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	slog.Info("Email sent via Resend",
		"message_id", sent.Id,
		"to", req.To,
		"subject", req.Subject,
	)
	return nil
}
