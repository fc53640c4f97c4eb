// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

/*
Package auth implements the user identity and session management layer.

It defines the core identity entities (User, Session) and the logic for
registration, login, token rotation, and credential recovery.

# Architecture

  - Service: orchestrates the authentication flows.
  - Repositories: Postgres for accounts and sessions, Redis for short-lived
    reset and verification tokens.
  - Security: bcrypt password hashing and RSA-signed JWTs from the sec package.
*/
package auth

import (
	"time"

	"github.com/melodiahq/melodia/internal/platform/sec"
)

// User represents a registered member of the Melodia platform.
//
// Artist-specific state (verification status, stage name) lives in the
// account package; auth only cares about identity and credentials.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	DisplayName  string       `json:"display_name"`
	AvatarURL    string       `json:"avatar_url,omitempty"`
	Role         sec.UserRole `json:"role"`
	IsVerified   bool         `json:"is_verified"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session represents an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// Field names used for validation errors and response payload keys.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldDisplayName     = "display_name"
	FieldLogin           = "login"
	FieldToken           = "token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldMessage         = "message"
)
