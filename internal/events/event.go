// Package events defines the domain events modules publish and re-exports
// the platform bus so modules need a single import.
package events

import (
	"asvab_prep_backend/platform/events"

	"github.com/google/uuid"
)

// Aliases into platform/events, which owns the bus machinery.
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// UserSignedUp is published once registration commits. It carries the
// initial email verification token.
type UserSignedUp struct {
	BaseEvent
	UserID      uuid.UUID `json:"userId"`
	Email       string    `json:"email"`
	VerifyToken string    `json:"verifyToken"`
}

func (e UserSignedUp) EventName() string { return "auth.user.signed_up" }

// EmailVerificationRequested is published when an unverified user asks for
// the verification email to be resent.
type EmailVerificationRequested struct {
	BaseEvent
	UserID      uuid.UUID `json:"userId"`
	Email       string    `json:"email"`
	VerifyToken string    `json:"verifyToken"`
}

func (e EmailVerificationRequested) EventName() string { return "auth.email.verification_requested" }

// PasswordResetRequested is published when a password reset is requested
// for an existing account.
type PasswordResetRequested struct {
	BaseEvent
	UserID     uuid.UUID `json:"userId"`
	Email      string    `json:"email"`
	ResetToken string    `json:"resetToken"`
}

func (e PasswordResetRequested) EventName() string { return "auth.password.reset_requested" }

// SearchExecuted is published after every authenticated search. The search
// module's history recorder subscribes to it; recording happens off the
// request path and failures never reach the caller.
type SearchExecuted struct {
	BaseEvent
	UserID      uuid.UUID `json:"userId"`
	Query       string    `json:"query"`
	ResultCount int       `json:"resultCount"`
}

func (e SearchExecuted) EventName() string { return "search.executed" }
