package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// SMTPProvider implements email sending via plain SMTP. It is the local
// development fallback (MailHog and friends); TLS-only commercial relays
// should go through Resend or SES instead.
type SMTPProvider struct {
	host     string
	port     string
	user     string
	password string
}

// NewSMTPProvider creates an SMTP provider from SMTP_HOST/SMTP_PORT
// (and optional SMTP_USER/SMTP_PASSWORD).
func NewSMTPProvider() *SMTPProvider {
	return &SMTPProvider{
		host:     GetEnvOrDefault("SMTP_HOST", "localhost"),
		port:     GetEnvOrDefault("SMTP_PORT", "1025"),
		user:     GetEnvOrDefault("SMTP_USER", ""),
		password: GetEnvOrDefault("SMTP_PASSWORD", ""),
	}
}

// Name returns the provider name.
func (p *SMTPProvider) Name() string {
	return "smtp"
}

// IsConfigured returns true if a host is set.
func (p *SMTPProvider) IsConfigured() bool {
	return p.host != ""
}

// Send sends an email via SMTP.
func (p *SMTPProvider) Send(ctx context.Context, req *EmailRequest) error {
	if len(req.To) == 0 {
		return fmt.Errorf("recipient is required")
	}

	msg := buildMessage(req)
	addr := fmt.Sprintf("%s:%s", p.host, p.port)

	var auth smtp.Auth
	if p.user != "" && p.password != "" {
		auth = smtp.PlainAuth("", p.user, p.password, p.host)
	}

	if err := smtp.SendMail(addr, auth, req.From, req.To, msg); err != nil {
		return fmt.Errorf("smtp send via %s failed: %w", addr, err)
	}

	slog.Info("Email sent via SMTP",
		"server", addr,
		"to", req.To,
		"subject", req.Subject,
	)
	return nil
}

// buildMessage assembles RFC 822 headers and body. HTML is preferred when set.
func buildMessage(req *EmailRequest) []byte {
	var sb strings.Builder
	sb.WriteString("From: " + req.From + "\r\n")
	sb.WriteString("To: " + strings.Join(req.To, ", ") + "\r\n")
	sb.WriteString("Subject: " + req.Subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	if req.HTML != "" {
		sb.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		sb.WriteString(req.HTML)
	} else {
		sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		sb.WriteString(req.Body)
	}
	sb.WriteString("\r\n")
	return []byte(sb.String())
}
