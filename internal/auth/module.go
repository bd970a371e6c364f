// Package auth implements account registration, login, and token lifecycle
// management. Access tokens are short-lived HS256 JWTs; refresh tokens are
// opaque, stored hashed, and rotated on every use.
//
// The module publishes UserSignedUp, EmailVerificationRequested, and
// PasswordResetRequested events; email delivery is handled by subscribers.
package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"asvab_prep_backend/internal/auth/handler"
	"asvab_prep_backend/internal/auth/repository"
	"asvab_prep_backend/internal/auth/service"
	"asvab_prep_backend/internal/events"
	apphttp "asvab_prep_backend/internal/http"
	"asvab_prep_backend/platform/config"
	"asvab_prep_backend/platform/logger"
	"asvab_prep_backend/platform/validator"
)

// Module wires the auth bounded context together.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

var _ apphttp.Module = (*Module)(nil)

// NewModule constructs the auth module with its repository, service, and handler.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "auth" }

// Service exposes the auth service for cross-module use.
func (m *Module) Service() *service.Service { return m.service }

// RegisterRoutes mounts the auth endpoints. Credential endpoints sit behind
// the stricter auth rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	{
		authGroup.POST("/register", m.handler.Register)
		authGroup.POST("/login", m.handler.Login)
		authGroup.POST("/refresh", m.handler.Refresh)
		authGroup.POST("/logout", m.handler.Logout)
		authGroup.POST("/verify-email", m.handler.VerifyEmail)
		authGroup.POST("/resend-verification", m.handler.ResendVerification)
		authGroup.POST("/forgot-password", m.handler.ForgotPassword)
		authGroup.POST("/reset-password", m.handler.ResetPassword)
	}

	ctx.Protected.GET("/users/me", m.handler.Me)
	ctx.Admin.PUT("/users/:id/roles", m.handler.SetUserRoles)
}
