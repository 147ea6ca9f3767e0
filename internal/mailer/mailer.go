// AngelaMos | 2026
// mailer.go

// Package mailer hands rendered messages to an email delivery provider.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/foodhall/internal/config"
)

type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Provider delivers one message and returns the provider's message id.
type Provider interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// New builds the provider selected by cfg.Provider.
func New(cfg config.EmailConfig, logger *slog.Logger) (Provider, error) {
	switch cfg.Provider {
	case "http":
		return NewHTTPProvider(cfg), nil
	case "smtp":
		return NewSMTPProvider(cfg), nil
	case "log", "":
		return NewLogProvider(logger), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
