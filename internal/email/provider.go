// Package email sends transactional mail (admin password resets) through a
// config-selected provider.
package email

import (
	"context"
	"fmt"
)

type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Provider interface {
	SendEmail(ctx context.Context, email *Email) error
}

type Config struct {
	Provider string
	APIKey   string
	From     string
	Domain   string // Mailgun only
}

func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "resend":
		return NewResendProvider(cfg.APIKey, cfg.From), nil
	case "postmark":
		return NewPostmarkProvider(cfg.APIKey, cfg.From), nil
	case "mailgun":
		return NewMailgunProvider(cfg.APIKey, cfg.Domain, cfg.From), nil
	default:
		return nil, fmt.Errorf("EMAIL_PROVIDER must be 'resend', 'postmark', or 'mailgun'")
	}
}
