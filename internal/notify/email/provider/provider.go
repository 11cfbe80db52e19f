// Package provider defines the email provider interface and registry.
// Multiple backends (Resend, SES, SMTP) are registered with a primary
// and ordered fallbacks.
package provider

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// EmailRequest represents an email to be sent.
type EmailRequest struct {
	From    string
	To      []string
	Subject string
	Body    string // plain text body
	HTML    string // HTML body (optional)
}

// Provider is the interface that all email providers implement.
type Provider interface {
	// Name returns the provider name (e.g. "resend", "ses", "smtp").
	Name() string

	// Send sends an email using this provider.
	Send(ctx context.Context, req *EmailRequest) error

	// IsConfigured returns true if the provider is usable as configured.
	IsConfigured() bool
}

// Registry manages email providers with fallback support.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	primary   string
	fallback  []string
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider to the registry.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
	slog.Info("Registered email provider", "name", p.Name(), "configured", p.IsConfigured())
}

// SetPrimary sets the primary provider by name.
func (r *Registry) SetPrimary(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("provider %q not registered", name)
	}
	r.primary = name
	return nil
}

// SetFallback sets the fallback providers in order.
func (r *Registry) SetFallback(names ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range names {
		if _, ok := r.providers[name]; !ok {
			return fmt.Errorf("provider %q not registered", name)
		}
	}
	r.fallback = names
	return nil
}

// Get returns a provider by name.
func (r *Registry) Get(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// pick returns the primary configured provider, falling back in order.
func (r *Registry) pick() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.primary != "" {
		if p, ok := r.providers[r.primary]; ok && p.IsConfigured() {
			return p, nil
		}
	}
	for _, name := range r.fallback {
		if p, ok := r.providers[name]; ok && p.IsConfigured() {
			slog.Warn("Primary email provider not configured, using fallback",
				"primary", r.primary,
				"fallback", name,
			)
			return p, nil
		}
	}
	for name, p := range r.providers {
		if p.IsConfigured() {
			slog.Warn("Using first available email provider", "name", name)
			return p, nil
		}
	}
	return nil, fmt.Errorf("no configured email provider available")
}

// Send sends an email using the best available provider, falling back to
// the remaining configured providers when the chosen one fails.
func (r *Registry) Send(ctx context.Context, req *EmailRequest) error {
	chosen, err := r.pick()
	if err != nil {
		return err
	}

	err = chosen.Send(ctx, req)
	if err == nil {
		return nil
	}

	r.mu.RLock()
	fallbacks := r.fallback
	r.mu.RUnlock()

	for _, name := range fallbacks {
		p, ok := r.Get(name)
		if !ok || !p.IsConfigured() || p.Name() == chosen.Name() {
			continue
		}
		slog.Warn("Email provider failed, trying fallback",
			"failed", chosen.Name(),
			"fallback", name,
			"error", err,
		)
		if fbErr := p.Send(ctx, req); fbErr == nil {
			return nil
		}
	}

	return fmt.Errorf("email send via %s failed: %w", chosen.Name(), err)
}

// GetEnvOrDefault returns the environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
