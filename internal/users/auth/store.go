// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package auth

import (
	"context"
	"time"
)

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {
	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a brand-new user account.
	Create(ctx context.Context, user *User) error

	// UpdatePassword replaces only the user's password hash.
	UpdatePassword(ctx context.Context, userID, newHash string) error

	// MarkVerified flips the account to isverified = true.
	MarkVerified(ctx context.Context, userID string) error
}

// SessionRepository defines the data access contract for refresh-token sessions.
type SessionRepository interface {
	// Create persists a new tracking session for an authenticated login.
	Create(ctx context.Context, session *Session) error

	// FindByTokenHash returns the active, unexpired session matching the hash.
	FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error)

	// Revoke marks a specific session as permanently invalidated.
	Revoke(ctx context.Context, sessionID string) error

	// RevokeAll revokes every active session belonging to the user.
	RevokeAll(ctx context.Context, userID string) error

	// RevokeOthers revokes all of the user's sessions except the current one.
	RevokeOthers(ctx context.Context, userID, currentSessionID string) error

	// DeleteExpired physically removes sessions past their expiration.
	DeleteExpired(ctx context.Context) error
}

// TokenStore is the contract for volatile single-use tokens (password reset,
// email verification). Implementations map token -> userID with a TTL.
type TokenStore interface {
	Set(ctx context.Context, token string, userID string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}
