// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/internal/platform/sec"
	"github.com/melodiahq/melodia/pkg/uuid"
)

// TokenProvider defines the contract for generating signed access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// Changes to hashing, registration, or login logic must be reviewed by the
// security team.
type Service struct {
	users         UserRepository
	sessions      SessionRepository
	resetTokens   TokenStore
	verifyTokens  TokenStore
	tokenProvider TokenProvider
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	users UserRepository,
	sessions SessionRepository,
	resetTokens TokenStore,
	verifyTokens TokenStore,
	tokenProvider TokenProvider,
) *Service {
	return &Service{
		users:         users,
		sessions:      sessions,
		resetTokens:   resetTokens,
		verifyTokens:  verifyTokens,
		tokenProvider: tokenProvider,
	}
}

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// Register validates, hashes, and persists a brand new user account.
// New accounts always start as plain members; artist status is granted
// separately through the verification flow in the account package.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if _, err := service.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}
	if _, err := service.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
		Role:         sec.RoleMember,
		IsVerified:   false,
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	// Email delivery is out of band; losing the token just means the user
	// requests another verification email.
	token, err := sec.GenerateSecureToken(VerificationTokenLength)
	if err == nil {
		_ = service.verifyTokens.Set(ctx, token, user.ID, VerificationTokenTTL)
	}

	return user, nil
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login     string // Username or email.
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

// Login validates user credentials and issues a token pair.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.users.FindByEmail(ctx, input.Login)
	if err != nil {
		user, err = service.users.FindByUsername(ctx, input.Login)
	}

	// Generic message on both lookup and password failure to prevent
	// account enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.issueSession(ctx, user, input.UserAgent, input.IPAddress)
}

// Logout permanently revokes the session behind the given refresh token.
// Unknown or already-revoked tokens are treated as success (idempotent).
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	session, err := service.sessions.FindByTokenHash(ctx, sec.HashToken(refreshToken))
	if err != nil {
		return nil
	}

	if err := service.sessions.Revoke(ctx, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// RefreshSession implements refresh token rotation: the presented token is
// revoked before a fresh pair is issued, so a replayed token fails.
func (service *Service) RefreshSession(ctx context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	session, err := service.sessions.FindByTokenHash(ctx, sec.HashToken(refreshToken))
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	if err := service.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	user, err := service.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	return service.issueSession(ctx, user, userAgent, ipAddress)
}

// issueSession generates the access/refresh pair and persists the tracking
// session for the given user.
func (service *Service) issueSession(ctx context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
		IsRevoked: false,
	}

	if err := service.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// RequestPasswordReset initiates the forgot-password flow. If the email is
// unknown it returns success with an empty token to prevent enumeration.
func (service *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	if err := service.resetTokens.Set(ctx, token, user.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

// ResetPassword completes the forgot-password flow. All active sessions for
// the user are revoked once the new password is in place.
func (service *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := service.resetTokens.Get(ctx, token)
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	if err := service.users.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	_ = service.sessions.RevokeAll(ctx, userID)
	_ = service.resetTokens.Delete(ctx, token)

	return nil
}

// ChangePassword lets an authenticated user rotate their credentials. All
// refresh sessions except the current one are revoked afterwards.
func (service *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword, currentRefreshToken string) error {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.users.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	session, err := service.sessions.FindByTokenHash(ctx, sec.HashToken(currentRefreshToken))
	if err == nil {
		_ = service.sessions.RevokeOthers(ctx, userID, session.ID)
	}

	return nil
}

// VerifyEmail confirms a user's email address using a secure token.
func (service *Service) VerifyEmail(ctx context.Context, token string) error {
	userID, err := service.verifyTokens.Get(ctx, token)
	if err != nil {
		return err
	}

	if err := service.users.MarkVerified(ctx, userID); err != nil {
		return fmt.Errorf("auth_service_verify_email_failed: %w", err)
	}

	_ = service.verifyTokens.Delete(ctx, token)
	return nil
}
