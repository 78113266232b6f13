// Package mailer delivers rendered emails through a transactional email provider.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ramosdigital/contact-api/internal/config"
	"github.com/ramosdigital/contact-api/internal/logging"
)

// ErrNotConfigured is returned when the selected provider lacks credentials.
var ErrNotConfigured = errors.New("email provider not configured")

// Message is a single outbound email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
	Tags    map[string]string
}

// SendResult describes an accepted message.
type SendResult struct {
	Provider  string
	MessageID string
	SentAt    time.Time
}

// Sender delivers a message. Implementations make a single attempt.
type Sender interface {
	Send(ctx context.Context, msg *Message) (*SendResult, error)
	Name() string
}

// Validate checks the fields every provider needs.
func (m *Message) Validate() error {
	if m.From == "" {
		return errors.New("message has no sender")
	}
	if len(m.To) == 0 {
		return errors.New("message has no recipients")
	}
	if m.Subject == "" {
		return errors.New("message has no subject")
	}
	if m.Text == "" && m.HTML == "" {
		return errors.New("message has no body")
	}
	return nil
}

// New builds the sender selected by cfg.EmailProvider.
func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (Sender, error) {
	switch cfg.EmailProvider {
	case config.ProviderResend:
		if cfg.ResendAPIKey == "" {
			return nil, fmt.Errorf("resend: %w", ErrNotConfigured)
		}
		return NewResendSender(cfg.ResendAPIKey, nil), nil
	case config.ProviderSES:
		sender, err := NewSESSender(ctx, cfg.AWSRegion, cfg.AWSAccessKey, cfg.AWSSecretKey)
		if err != nil {
			return nil, err
		}
		return sender, nil
	case config.ProviderLog:
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q: %w", cfg.EmailProvider, ErrNotConfigured)
	}
}
