// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package album

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/melodiahq/melodia/internal/catalog/song"
	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/internal/platform/audit"
	"github.com/melodiahq/melodia/pkg/pagination"
	"github.com/melodiahq/melodia/pkg/pointer"
	"github.com/melodiahq/melodia/pkg/uuid"
)

// ArtistDirectory answers whether a user is a verified artist.
type ArtistDirectory interface {
	IsApprovedArtist(ctx context.Context, userID string) (bool, error)
}

// Auditor records administrative actions.
type Auditor interface {
	Record(ctx context.Context, actorID, action, targetID, description string)
}

// TrackLister reads the songs attached to an album.
type TrackLister interface {
	ListByAlbum(ctx context.Context, albumID string) ([]*song.Song, error)
}

// Service implements album workflows on top of a Repository.
type Service struct {
	repository Repository
	directory  ArtistDirectory
	tracks     TrackLister
	auditor    Auditor
	logger     *slog.Logger
}

func NewService(repository Repository, directory ArtistDirectory, tracks TrackLister, auditor Auditor, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		directory:  directory,
		tracks:     tracks,
		auditor:    auditor,
		logger:     logger,
	}
}

// CreateInput holds the fields for creating an album.
type CreateInput struct {
	Title       string
	Description string
	Language    string
	ReleaseType string
	CoverKey    string
}

// UpdateInput carries optional field updates. Nil fields are unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
	Language    *string
	ReleaseType *string
	CoverKey    *string
}

// Create authors a new draft album for a verified artist.
func (service *Service) Create(ctx context.Context, artistID string, input CreateInput) (*Album, error) {
	approved, err := service.directory.IsApprovedArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, apperr.ValidationError("Only verified artists can create albums")
	}

	releaseType := input.ReleaseType
	if releaseType == "" {
		releaseType = ReleaseAlbum
	}

	newAlbum := &Album{
		ID:          uuid.New(),
		Title:       input.Title,
		ArtistID:    artistID,
		Description: input.Description,
		Language:    input.Language,
		ReleaseType: releaseType,
		CoverKey:    input.CoverKey,
		Status:      StatusDraft,
	}

	if err := service.repository.Create(ctx, newAlbum); err != nil {
		return nil, fmt.Errorf("album_service_create_failed: %w", err)
	}

	service.logger.Info("album_created",
		slog.String("album_id", newAlbum.ID),
		slog.String("artist_id", artistID),
	)

	return newAlbum, nil
}

// CreateForArtist lets an admin author a draft album on behalf of a
// verified artist. The action is audited.
func (service *Service) CreateForArtist(ctx context.Context, adminID, artistID string, input CreateInput) (*Album, error) {
	created, err := service.Create(ctx, artistID, input)
	if err != nil {
		return nil, err
	}

	service.auditor.Record(ctx, adminID, audit.ActionAlbumCreated, created.ID,
		"Album created on behalf of artist "+artistID)

	return created, nil
}

// Update edits album metadata. Only the owner or an admin may edit, and
// only while the album is still a draft.
func (service *Service) Update(ctx context.Context, callerID string, isAdmin bool, albumID string, input UpdateInput) (*Album, error) {
	existing, err := service.repository.FindByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if existing.ArtistID != callerID && !isAdmin {
		return nil, apperr.Forbidden("You do not own this album")
	}
	if existing.Status != StatusDraft {
		return nil, apperr.Unprocessable("Only draft albums can be edited")
	}

	existing.Title = pointer.Fallback(input.Title, existing.Title)
	existing.Description = pointer.Fallback(input.Description, existing.Description)
	existing.Language = pointer.Fallback(input.Language, existing.Language)
	existing.ReleaseType = pointer.Fallback(input.ReleaseType, existing.ReleaseType)
	existing.CoverKey = pointer.Fallback(input.CoverKey, existing.CoverKey)

	if err := service.repository.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("album_service_update_failed: %w", err)
	}

	return existing, nil
}

// Submit moves a draft album and every song attached to it to the
// moderation queue in one step. An album needs at least one song.
func (service *Service) Submit(ctx context.Context, artistID, albumID string) (*Album, error) {
	existing, err := service.repository.FindByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if existing.ArtistID != artistID {
		return nil, apperr.Forbidden("You do not own this album")
	}

	return service.submit(ctx, existing)
}

// SubmitForArtist lets an admin submit a draft album on the artist's
// behalf. The action is audited.
func (service *Service) SubmitForArtist(ctx context.Context, adminID, albumID string) (*Album, error) {
	existing, err := service.repository.FindByID(ctx, albumID)
	if err != nil {
		return nil, err
	}

	submitted, err := service.submit(ctx, existing)
	if err != nil {
		return nil, err
	}

	service.auditor.Record(ctx, adminID, audit.ActionAlbumSubmitted, albumID,
		"Album submitted on behalf of artist "+existing.ArtistID)

	return submitted, nil
}

func (service *Service) submit(ctx context.Context, existing *Album) (*Album, error) {
	if existing.Status != StatusDraft {
		return nil, apperr.Unprocessable("Only draft albums can be submitted")
	}

	moved, err := service.repository.SubmitCascade(ctx, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("album_service_submit_failed: %w", err)
	}
	if moved == 0 {
		return nil, apperr.ValidationError("An album must contain at least one song before submission")
	}

	existing.Status = StatusPending

	service.logger.Info("album_submitted",
		slog.String("album_id", existing.ID),
		slog.Int("songs_moved", moved),
	)

	return existing, nil
}

// Approve marks an album APPROVED and clears any reject reason. Like the
// song variant this is an unconditional administrative override.
func (service *Service) Approve(ctx context.Context, adminID, albumID string) (*Album, error) {
	existing, err := service.repository.FindByID(ctx, albumID)
	if err != nil {
		return nil, err
	}

	if err := service.repository.SetStatus(ctx, albumID, StatusApproved, ""); err != nil {
		return nil, fmt.Errorf("album_service_approve_failed: %w", err)
	}

	existing.Status = StatusApproved
	existing.RejectReason = ""

	service.auditor.Record(ctx, adminID, audit.ActionAlbumApproved, albumID, "Album approved: "+existing.Title)

	return existing, nil
}

// Reject declines an album with a stored reason.
func (service *Service) Reject(ctx context.Context, adminID, albumID, reason string) (*Album, error) {
	existing, err := service.repository.FindByID(ctx, albumID)
	if err != nil {
		return nil, err
	}

	if err := service.repository.SetStatus(ctx, albumID, StatusRejected, reason); err != nil {
		return nil, fmt.Errorf("album_service_reject_failed: %w", err)
	}

	existing.Status = StatusRejected
	existing.RejectReason = reason

	service.auditor.Record(ctx, adminID, audit.ActionAlbumRejected, albumID, "Album rejected: "+reason)

	return existing, nil
}

// Get returns an album respecting visibility: non-approved albums are
// only visible to their owner and admins.
func (service *Service) Get(ctx context.Context, albumID, callerID string, isAdmin bool) (*Album, error) {
	existing, err := service.repository.FindByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if existing.Status != StatusApproved && existing.ArtistID != callerID && !isAdmin {
		return nil, apperr.NotFound("Album")
	}
	return existing, nil
}

// Tracks lists the songs attached to an album, subject to the same
// visibility rules as Get. Listeners only see approved tracks.
func (service *Service) Tracks(ctx context.Context, albumID, callerID string, isAdmin bool) ([]*song.Song, error) {
	existing, err := service.Get(ctx, albumID, callerID, isAdmin)
	if err != nil {
		return nil, err
	}

	songs, err := service.tracks.ListByAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}

	if existing.ArtistID == callerID || isAdmin {
		return songs, nil
	}

	visible := make([]*song.Song, 0, len(songs))
	for _, track := range songs {
		if track.Status == song.StatusApproved {
			visible = append(visible, track)
		}
	}
	return visible, nil
}

func (service *Service) ListMine(ctx context.Context, artistID string, params pagination.Params) ([]*Album, int, error) {
	return service.repository.ListByArtist(ctx, artistID, params)
}

func (service *Service) ListPublicByArtist(ctx context.Context, artistID string, params pagination.Params) ([]*Album, int, error) {
	return service.repository.ListApprovedByArtist(ctx, artistID, params)
}

func (service *Service) ListPending(ctx context.Context, params pagination.Params) ([]*Album, int, error) {
	return service.repository.ListPending(ctx, params)
}
