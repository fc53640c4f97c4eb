// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/internal/platform/audit"
	"github.com/melodiahq/melodia/internal/platform/sec"
	"github.com/melodiahq/melodia/pkg/pagination"
	"github.com/melodiahq/melodia/pkg/slug"
)

// Service orchestrates business logic for profiles and artist verification.
type Service struct {
	repository Repository
	sessions   SessionRevoker
	auditor    Auditor
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, sessions SessionRevoker, auditor Auditor, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		sessions:   sessions,
		auditor:    auditor,
		logger:     logger,
	}
}

// GetProfile retrieves the full private identity of a user.
func (service *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return service.repository.FindByID(ctx, userID)
}

// GetArtistBySlug resolves a public artist page by slug.
func (service *Service) GetArtistBySlug(ctx context.Context, artistSlug string) (*Profile, error) {
	profile, err := service.repository.FindArtistBySlug(ctx, artistSlug)
	if err != nil {
		return nil, err
	}
	return profile.Public(), nil
}

// UpdateProfileInput defines the mutable subset of profile fields.
// Nil pointers leave the current value untouched.
type UpdateProfileInput struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
}

// UpdateProfile applies a partial set of changes to a user's account metadata.
func (service *Service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*Profile, error) {
	profile, err := service.repository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		profile.DisplayName = *input.DisplayName
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		profile.AvatarURL = *input.AvatarURL
	}

	if err := service.repository.UpdateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return profile, nil
}

// DeleteAccount soft-deletes a user account and terminates every active
// session to force a global sign-out.
func (service *Service) DeleteAccount(ctx context.Context, userID string) error {
	if err := service.repository.SoftDelete(ctx, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	_ = service.sessions.RevokeAll(ctx, userID)

	service.logger.Warn("user_account_deleted", slog.String("user_id", userID))

	return nil
}

// RequestArtistVerification files an application for artist standing.
// Accounts with a pending or approved application cannot apply again;
// a rejected account may retry with a new artist name.
func (service *Service) RequestArtistVerification(ctx context.Context, userID, artistName string) (*Profile, error) {
	profile, err := service.repository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch profile.ArtistStatus {
	case ArtistStatusRequested:
		return nil, apperr.Conflict("An artist application is already pending review")
	case ArtistStatusApproved:
		return nil, apperr.Conflict("This account already has artist standing")
	}

	err = service.repository.SetArtistStatus(ctx, userID, ArtistStatusRequested, artistName, "", profile.Role)
	if err != nil {
		return nil, fmt.Errorf("account_service_request_artist_failed: %w", err)
	}

	profile.ArtistStatus = ArtistStatusRequested
	profile.ArtistName = artistName

	service.logger.Info("artist_verification_requested",
		slog.String("user_id", userID),
		slog.String("artist_name", artistName),
	)

	return profile, nil
}

// ApproveArtist grants artist standing to a pending application. The account
// is promoted to the artist role and receives a unique public slug.
func (service *Service) ApproveArtist(ctx context.Context, adminID, userID string) (*Profile, error) {
	profile, err := service.repository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.ArtistStatus != ArtistStatusRequested {
		return nil, apperr.Unprocessable("Only pending artist applications can be approved")
	}

	artistSlug, err := service.uniqueSlug(ctx, profile.ArtistName)
	if err != nil {
		return nil, err
	}

	err = service.repository.SetArtistStatus(ctx, userID, ArtistStatusApproved, profile.ArtistName, artistSlug, string(sec.RoleArtist))
	if err != nil {
		return nil, fmt.Errorf("account_service_approve_artist_failed: %w", err)
	}

	profile.ArtistStatus = ArtistStatusApproved
	profile.ArtistSlug = artistSlug
	profile.Role = string(sec.RoleArtist)

	service.auditor.Record(ctx, adminID, audit.ActionArtistApproved, userID, "Artist application approved: "+profile.ArtistName)

	return profile, nil
}

// RejectArtist declines a pending application. The account keeps its current
// role and may apply again later.
func (service *Service) RejectArtist(ctx context.Context, adminID, userID, reason string) (*Profile, error) {
	profile, err := service.repository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.ArtistStatus != ArtistStatusRequested {
		return nil, apperr.Unprocessable("Only pending artist applications can be rejected")
	}

	err = service.repository.SetArtistStatus(ctx, userID, ArtistStatusRejected, profile.ArtistName, "", profile.Role)
	if err != nil {
		return nil, fmt.Errorf("account_service_reject_artist_failed: %w", err)
	}

	profile.ArtistStatus = ArtistStatusRejected

	service.auditor.Record(ctx, adminID, audit.ActionArtistRejected, userID, "Artist application rejected: "+reason)

	return profile, nil
}

// ListPendingArtists pages through applications awaiting review, oldest first.
func (service *Service) ListPendingArtists(ctx context.Context, params pagination.Params) ([]*Profile, int, error) {
	return service.repository.ListByArtistStatus(ctx, ArtistStatusRequested, params)
}

// IsApprovedArtist reports whether the account holds verified artist
// standing. The catalog packages gate song and album creation on this.
func (service *Service) IsApprovedArtist(ctx context.Context, userID string) (bool, error) {
	profile, err := service.repository.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return profile.ArtistStatus == ArtistStatusApproved, nil
}

// uniqueSlug derives a collision-free slug from the artist name by counting
// existing derivatives and suffixing when needed.
func (service *Service) uniqueSlug(ctx context.Context, artistName string) (string, error) {
	base := slug.From(artistName)
	if base == "" {
		base = "artist"
	}

	existing, err := service.repository.CountArtistSlug(ctx, base)
	if err != nil {
		return "", fmt.Errorf("account_service_slug_check_failed: %w", err)
	}
	if existing == 0 {
		return base, nil
	}
	return base + "-" + strconv.Itoa(existing+1), nil
}
