// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

/*
Package account handles user profile management and the artist directory.

It provides functionality for users to view and update their identity data,
and implements the artist verification lifecycle: a member requests artist
status, an admin approves or rejects the request, and approval promotes the
account to the artist role with a public, slug-addressable profile.

# Architecture

  - Entities: Profile (the account projection), ArtistStatus.
  - Service: orchestrates profile updates and the verification flow.
  - The catalog packages consume this package through their own ArtistDirectory
    interfaces, keeping moderation of content decoupled from identity.
*/
package account

import (
	"context"
	"time"

	"github.com/melodiahq/melodia/pkg/pagination"
)

// ArtistStatus tracks where an account stands in the artist verification flow.
type ArtistStatus string

const (
	// ArtistStatusNone is the default for accounts that never applied.
	ArtistStatusNone ArtistStatus = "NONE"
	// ArtistStatusRequested means the application awaits admin review.
	ArtistStatusRequested ArtistStatus = "REQUESTED"
	// ArtistStatusApproved means the account holds verified artist standing.
	ArtistStatusApproved ArtistStatus = "APPROVED"
	// ArtistStatusRejected means the last application was declined.
	// A rejected account may apply again.
	ArtistStatusRejected ArtistStatus = "REJECTED"
)

// Profile is the account projection used by the profile and directory
// endpoints. PasswordHash never crosses this boundary.
type Profile struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email,omitempty"`
	DisplayName  string       `json:"display_name"`
	AvatarURL    string       `json:"avatar_url,omitempty"`
	Bio          string       `json:"bio,omitempty"`
	Role         string       `json:"role"`
	ArtistStatus ArtistStatus `json:"artist_status"`
	ArtistName   string       `json:"artist_name,omitempty"`
	ArtistSlug   string       `json:"artist_slug,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Public strips private fields for unauthenticated consumers.
func (p *Profile) Public() *Profile {
	clone := *p
	clone.Email = ""
	return &clone
}

// Repository defines the persistence contract for account profiles and the
// artist directory.
type Repository interface {
	// FindByID retrieves a profile by account ID.
	FindByID(ctx context.Context, id string) (*Profile, error)

	// FindArtistBySlug retrieves an approved artist by their public slug.
	FindArtistBySlug(ctx context.Context, slug string) (*Profile, error)

	// UpdateProfile persists the mutable profile fields.
	UpdateProfile(ctx context.Context, profile *Profile) error

	// SoftDelete flags an account as logically deleted.
	SoftDelete(ctx context.Context, id string) error

	// SetArtistStatus transitions the verification state. On approval the
	// role and slug are written in the same statement.
	SetArtistStatus(ctx context.Context, userID string, status ArtistStatus, artistName, artistSlug, role string) error

	// ListByArtistStatus pages through accounts in a verification state,
	// oldest request first.
	ListByArtistStatus(ctx context.Context, status ArtistStatus, params pagination.Params) ([]*Profile, int, error)

	// CountArtistSlug reports how many accounts already use slugs derived
	// from the given base, for collision suffixing.
	CountArtistSlug(ctx context.Context, base string) (int, error)
}

// SessionRevoker terminates refresh sessions when an account is deleted.
type SessionRevoker interface {
	RevokeAll(ctx context.Context, userID string) error
}

// Auditor records admin actions in the system audit log.
type Auditor interface {
	Record(ctx context.Context, actorID, action, targetID, description string)
}
