// Package email provides transactional email delivery for account flows.
// Emails are rendered from embedded HTML templates and sent over SMTP; when
// no SMTP server is configured a no-op sender is used so the rest of the
// application works without email infrastructure.
package email

import (
	"context"

	"asvab_prep_backend/platform/config"
	"asvab_prep_backend/platform/logger"
)

type Sender interface {
	SendVerificationEmail(ctx context.Context, toEmail, verifyURL string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, resetURL string) error
}

// NoopSender discards all emails. Used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) SendVerificationEmail(ctx context.Context, toEmail, verifyURL string) error {
	return nil
}

func (NoopSender) SendPasswordResetEmail(ctx context.Context, toEmail, resetURL string) error {
	return nil
}

var (
	_ Sender = (*SMTPSender)(nil)
	_ Sender = NoopSender{}
)

// NewSender selects the sender implementation based on configuration.
func NewSender(cfg config.EmailConfig, log *logger.Logger) Sender {
	if !cfg.GetEmailEnabled() {
		log.Info("email delivery disabled, using noop sender")
		return NoopSender{}
	}

	log.Info("email delivery enabled", "host", cfg.GetSMTPHost())
	return NewSMTPSender(cfg)
}
