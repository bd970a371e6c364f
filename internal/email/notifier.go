package email

import (
	"context"
	"strings"

	"asvab_prep_backend/internal/events"
	"asvab_prep_backend/platform/config"
	"asvab_prep_backend/platform/logger"
)

// Notifier subscribes to auth domain events and sends the corresponding
// transactional emails. Domain modules publish events and never touch email
// providers or templates directly.
type Notifier struct {
	sender Sender
	cfg    config.AppConfig
	log    *logger.Logger
}

// NewNotifier creates a notifier backed by the given sender.
func NewNotifier(sender Sender, cfg config.AppConfig, log *logger.Logger) *Notifier {
	return &Notifier{sender: sender, cfg: cfg, log: log}
}

// RegisterHandlers subscribes to the auth events that trigger emails.
func (n *Notifier) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.UserSignedUp{}.EventName(), n)
	bus.Subscribe(events.EmailVerificationRequested{}.EventName(), n)
	bus.Subscribe(events.PasswordResetRequested{}.EventName(), n)

	n.log.Info("email notifier registered event handlers")
}

// Handle routes events to the appropriate email.
func (n *Notifier) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.UserSignedUp:
		return n.sendVerification(ctx, e.UserID.String(), e.Email, e.VerifyToken)
	case events.EmailVerificationRequested:
		return n.sendVerification(ctx, e.UserID.String(), e.Email, e.VerifyToken)
	case events.PasswordResetRequested:
		return n.sendPasswordReset(ctx, e.UserID.String(), e.Email, e.ResetToken)
	default:
		n.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (n *Notifier) sendVerification(ctx context.Context, userID, toEmail, token string) error {
	verifyURL := n.buildURL("/verify-email", token)
	if err := n.sender.SendVerificationEmail(ctx, toEmail, verifyURL); err != nil {
		n.log.Error("failed to send verification email", "userId", userID, "email", toEmail, "error", err)
		return err
	}
	n.log.Info("verification email sent", "userId", userID, "email", toEmail)
	return nil
}

func (n *Notifier) sendPasswordReset(ctx context.Context, userID, toEmail, token string) error {
	resetURL := n.buildURL("/reset-password", token)
	if err := n.sender.SendPasswordResetEmail(ctx, toEmail, resetURL); err != nil {
		n.log.Error("failed to send password reset email", "userId", userID, "email", toEmail, "error", err)
		return err
	}
	n.log.Info("password reset email sent", "userId", userID, "email", toEmail)
	return nil
}

func (n *Notifier) buildURL(path, token string) string {
	base := strings.TrimRight(n.cfg.GetAppBaseURL(), "/")
	return base + path + "?token=" + token
}
