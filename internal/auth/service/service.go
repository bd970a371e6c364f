package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"asvab_prep_backend/internal/auth/password"
	"asvab_prep_backend/internal/auth/repository"
	"asvab_prep_backend/internal/auth/token"
	"asvab_prep_backend/internal/events"
	"asvab_prep_backend/platform/apperr"
	"asvab_prep_backend/platform/config"
	"asvab_prep_backend/platform/logger"
)

const (
	accessTokenType = "access"

	// RoleUser is assigned to every account; RoleAdmin unlocks the admin routes.
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const invalidCredentialsMessage = "invalid credentials"

// TokenPair holds the credentials returned by login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Profile is the caller-facing view of a user account.
type Profile struct {
	ID            uuid.UUID
	Email         string
	EmailVerified bool
	FirstName     *string
	LastName      *string
	Roles         []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Service implements registration, login, and token lifecycle management.
type Service struct {
	repo repository.Repository
	cfg  config.AuthServiceConfig
	bus  events.Bus
	log  *logger.Logger
}

// New creates the auth service.
func New(repo repository.Repository, cfg config.AuthServiceConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, log: log}
}

// Register creates an account, assigns roles, and requests email verification.
// When email delivery is disabled the account is verified immediately so that
// self-hosted installs without SMTP stay usable.
func (s *Service) Register(ctx context.Context, email, plainPassword string, firstName, lastName *string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to create account", err)
	}

	roles := []string{RoleUser}
	if s.isBootstrapAdmin(email) {
		roles = append(roles, RoleAdmin)
	}

	emailEnabled := s.cfg.GetEmailEnabled()
	user, err := s.repo.CreateUser(ctx, repository.CreateUserParams{
		Email:         email,
		PasswordHash:  hash,
		FirstName:     firstName,
		LastName:      lastName,
		EmailVerified: !emailEnabled,
		Roles:         roles,
	})
	if err != nil {
		return err
	}

	s.log.AuthEvent("register", email, true, "")

	if !emailEnabled {
		return nil
	}

	verifyToken, err := s.issueUserToken(ctx, user.ID, repository.TokenTypeEmailVerify, s.cfg.GetVerifyTokenTTL())
	if err != nil {
		return err
	}

	s.bus.Publish(ctx, events.UserSignedUp{
		BaseEvent:   events.NewBaseEvent(),
		UserID:      user.ID,
		Email:       user.Email,
		VerifyToken: verifyToken,
	})
	return nil
}

// Login checks credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("login", email, false, "unknown email")
		return TokenPair{}, apperr.Unauthorized(invalidCredentialsMessage)
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("login", email, false, "wrong password")
		return TokenPair{}, apperr.Unauthorized(invalidCredentialsMessage)
	}

	if !user.EmailVerified {
		return TokenPair{}, apperr.Forbidden("email not verified")
	}

	pair, err := s.issueTokenPair(ctx, user.ID)
	if err != nil {
		return TokenPair{}, err
	}

	s.log.AuthEvent("login", email, true, "")
	return pair, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	hash := token.Hash(refreshToken)

	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return TokenPair{}, apperr.Unauthorized("invalid refresh token")
	}

	if time.Now().After(expiresAt) {
		_ = s.repo.RevokeRefreshToken(ctx, hash)
		return TokenPair{}, apperr.Unauthorized("refresh token expired")
	}

	if err := s.repo.RevokeRefreshToken(ctx, hash); err != nil {
		return TokenPair{}, err
	}

	return s.issueTokenPair(ctx, userID)
}

// Logout revokes the presented refresh token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.repo.RevokeRefreshToken(ctx, token.Hash(refreshToken))
}

// VerifyEmail consumes a verification token and marks the account verified.
func (s *Service) VerifyEmail(ctx context.Context, rawToken string) error {
	hash := token.Hash(rawToken)

	userID, expiresAt, err := s.repo.GetUserToken(ctx, hash, repository.TokenTypeEmailVerify)
	if err != nil {
		return apperr.BadRequest("invalid verification token")
	}
	if time.Now().After(expiresAt) {
		return apperr.BadRequest("verification token expired")
	}

	if err := s.repo.MarkEmailVerified(ctx, userID); err != nil {
		return err
	}
	_ = s.repo.UseUserToken(ctx, hash, repository.TokenTypeEmailVerify)

	s.log.AuthEvent("verify_email", userID.String(), true, "")
	return nil
}

// ResendVerification issues a fresh verification token for an unverified
// account. Responds identically whether or not the account exists.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil || user.EmailVerified {
		return nil
	}

	verifyToken, err := s.issueUserToken(ctx, user.ID, repository.TokenTypeEmailVerify, s.cfg.GetVerifyTokenTTL())
	if err != nil {
		return err
	}

	s.bus.Publish(ctx, events.EmailVerificationRequested{
		BaseEvent:   events.NewBaseEvent(),
		UserID:      user.ID,
		Email:       user.Email,
		VerifyToken: verifyToken,
	})
	return nil
}

// ForgotPassword issues a reset token. Responds identically whether or not
// the account exists, so the endpoint cannot be used to probe emails.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil
	}

	resetToken, err := s.issueUserToken(ctx, user.ID, repository.TokenTypePasswordReset, s.cfg.GetResetTokenTTL())
	if err != nil {
		return err
	}

	s.bus.Publish(ctx, events.PasswordResetRequested{
		BaseEvent:  events.NewBaseEvent(),
		UserID:     user.ID,
		Email:      user.Email,
		ResetToken: resetToken,
	})
	return nil
}

// ResetPassword consumes a reset token, replaces the password, and revokes
// all outstanding refresh tokens.
func (s *Service) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	hash := token.Hash(rawToken)

	userID, expiresAt, err := s.repo.GetUserToken(ctx, hash, repository.TokenTypePasswordReset)
	if err != nil {
		return apperr.BadRequest("invalid reset token")
	}
	if time.Now().After(expiresAt) {
		return apperr.BadRequest("reset token expired")
	}

	passwordHash, err := password.Hash(newPassword)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to reset password", err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}

	_ = s.repo.UseUserToken(ctx, hash, repository.TokenTypePasswordReset)
	_ = s.repo.RevokeAllRefreshTokens(ctx, userID)

	s.log.AuthEvent("reset_password", userID.String(), true, "")
	return nil
}

// Me returns the caller's profile including roles.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (Profile, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	roles, err := s.repo.GetUserRoles(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	return Profile{
		ID:            user.ID,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Roles:         roles,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}, nil
}

// SetUserRoles replaces the role set for a user (admin operation).
func (s *Service) SetUserRoles(ctx context.Context, userID uuid.UUID, roles []string) error {
	for _, role := range roles {
		if role != RoleUser && role != RoleAdmin {
			return apperr.Validation("unknown role: " + role)
		}
	}
	return s.repo.SetUserRoles(ctx, userID, roles)
}

func (s *Service) issueTokenPair(ctx context.Context, userID uuid.UUID) (TokenPair, error) {
	roles, err := s.repo.GetUserRoles(ctx, userID)
	if err != nil {
		return TokenPair{}, err
	}

	accessToken, err := s.signAccessToken(userID, roles)
	if err != nil {
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}

	refreshToken, err := token.New(48)
	if err != nil {
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "failed to issue token", err)
	}

	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, userID, token.Hash(refreshToken), expiresAt); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *Service) signAccessToken(userID uuid.UUID, roles []string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"type":  accessTokenType,
		"roles": roles,
		"exp":   now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":   now.Unix(),
	}

	signed := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return signed.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}

func (s *Service) issueUserToken(ctx context.Context, userID uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	raw, err := token.New(32)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to issue token", err)
	}

	expiresAt := time.Now().Add(ttl)
	if err := s.repo.CreateUserToken(ctx, userID, token.Hash(raw), tokenType, expiresAt); err != nil {
		return "", err
	}
	return raw, nil
}

func (s *Service) isBootstrapAdmin(email string) bool {
	for _, admin := range s.cfg.GetAdminEmails() {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}
