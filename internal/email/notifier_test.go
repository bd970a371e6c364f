package email

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/events"
	"asvab_prep_backend/platform/logger"
)

type testAppConfig struct{}

func (testAppConfig) GetAppBaseURL() string { return "https://app.example.com/" }

type testSender struct {
	verificationCalls int
	resetCalls        int
	lastTo            string
	lastURL           string
}

func (s *testSender) SendVerificationEmail(_ context.Context, toEmail, verifyURL string) error {
	s.verificationCalls++
	s.lastTo = toEmail
	s.lastURL = verifyURL
	return nil
}

func (s *testSender) SendPasswordResetEmail(_ context.Context, toEmail, resetURL string) error {
	s.resetCalls++
	s.lastTo = toEmail
	s.lastURL = resetURL
	return nil
}

func TestNotifierSendsVerificationOnSignUp(t *testing.T) {
	sender := &testSender{}
	n := NewNotifier(sender, testAppConfig{}, logger.New("development"))

	err := n.Handle(context.Background(), events.UserSignedUp{
		BaseEvent:   events.NewBaseEvent(),
		UserID:      uuid.New(),
		Email:       "recruit@example.com",
		VerifyToken: "tok-123",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if sender.verificationCalls != 1 {
		t.Fatalf("verification calls = %d, want 1", sender.verificationCalls)
	}
	if sender.lastTo != "recruit@example.com" {
		t.Errorf("sent to %q", sender.lastTo)
	}
	if sender.lastURL != "https://app.example.com/verify-email?token=tok-123" {
		t.Errorf("verify URL = %q", sender.lastURL)
	}
}

func TestNotifierSendsPasswordReset(t *testing.T) {
	sender := &testSender{}
	n := NewNotifier(sender, testAppConfig{}, logger.New("development"))

	err := n.Handle(context.Background(), events.PasswordResetRequested{
		BaseEvent:  events.NewBaseEvent(),
		UserID:     uuid.New(),
		Email:      "recruit@example.com",
		ResetToken: "tok-456",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if sender.resetCalls != 1 {
		t.Fatalf("reset calls = %d, want 1", sender.resetCalls)
	}
	if sender.lastURL != "https://app.example.com/reset-password?token=tok-456" {
		t.Errorf("reset URL = %q", sender.lastURL)
	}
}

func TestRenderEmailTemplates(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     emailData
	}{
		{
			name:     "verification",
			template: "verification.html",
			data: emailData{
				Title:    "Verify your email address",
				Heading:  "Verify your email address",
				CTALabel: "Verify email",
				CTAURL:   "https://app.example.com/verify-email?token=abc",
			},
		},
		{
			name:     "password reset",
			template: "password_reset.html",
			data: emailData{
				Title:    "Reset your password",
				Heading:  "Reset your password",
				CTALabel: "Reset password",
				CTAURL:   "https://app.example.com/reset-password?token=abc",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := renderEmailTemplate(tt.template, tt.data)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if !strings.Contains(html, "token=abc") {
				t.Error("rendered email missing CTA URL")
			}
			if !strings.Contains(html, "ASVAB Prep") {
				t.Error("rendered email missing brand header")
			}
		})
	}
}
