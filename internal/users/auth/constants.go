// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package auth

import "time"

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// Kept short to limit the blast radius of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a refresh session remains valid.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random refresh token.
	RefreshTokenLength = 32

	// ResetTokenTTL is the lifetime of a password reset token.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of a password reset token.
	ResetTokenLength = 32

	// VerificationTokenTTL is the lifetime of an email verification token.
	// Long-lived because users may not check email immediately.
	VerificationTokenTTL = 24 * time.Hour

	// VerificationTokenLength is the byte length of a verification token.
	VerificationTokenLength = 32
)
