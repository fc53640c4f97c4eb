// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package song

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/internal/platform/audit"
	"github.com/melodiahq/melodia/pkg/pagination"
	"github.com/melodiahq/melodia/pkg/uuid"
)

// ArtistDirectory gates content creation on verified artist standing.
type ArtistDirectory interface {
	IsApprovedArtist(ctx context.Context, userID string) (bool, error)
}

// Auditor records admin actions in the system audit log.
type Auditor interface {
	Record(ctx context.Context, actorID, action, targetID, description string)
}

// Service orchestrates song lifecycle business logic.
type Service struct {
	repository Repository
	directory  ArtistDirectory
	auditor    Auditor
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, directory ArtistDirectory, auditor Auditor, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		directory:  directory,
		auditor:    auditor,
		logger:     logger,
	}
}

// CreateInput holds the fields for creating or updating a song.
type CreateInput struct {
	Title           string
	Genre           string
	Language        string
	Lyrics          string
	Description     string
	DurationSeconds int
	AudioKey        string
	CoverKey        string
	AlbumID         *string
	TrackNumber     *int
}

// Create authors a new draft song for a verified artist. If the input links
// an album, the album must belong to the same artist and still be a draft.
func (service *Service) Create(ctx context.Context, artistID string, input CreateInput) (*Song, error) {
	approved, err := service.directory.IsApprovedArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, apperr.ValidationError("Only verified artists can create songs")
	}

	if err := service.validateAlbumLink(ctx, artistID, input.AlbumID, false); err != nil {
		return nil, err
	}

	newSong := &Song{
		ID:              uuid.New(),
		Title:           input.Title,
		ArtistID:        artistID,
		AlbumID:         input.AlbumID,
		TrackNumber:     input.TrackNumber,
		Genre:           input.Genre,
		Language:        input.Language,
		Lyrics:          input.Lyrics,
		Description:     input.Description,
		DurationSeconds: input.DurationSeconds,
		AudioKey:        input.AudioKey,
		CoverKey:        input.CoverKey,
		Status:          StatusDraft,
	}

	if err := service.repository.Create(ctx, newSong); err != nil {
		return nil, fmt.Errorf("song_service_create_failed: %w", err)
	}

	service.logger.Info("song_created",
		slog.String("song_id", newSong.ID),
		slog.String("artist_id", artistID),
	)

	return newSong, nil
}

// CreateForArtist lets an admin author a draft on behalf of a verified
// artist. The action is audited.
func (service *Service) CreateForArtist(ctx context.Context, adminID, artistID string, input CreateInput) (*Song, error) {
	approved, err := service.directory.IsApprovedArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, apperr.ValidationError("Target account is not a verified artist")
	}

	// Admins may link songs into an owned album regardless of its status.
	if err := service.validateAlbumLink(ctx, artistID, input.AlbumID, true); err != nil {
		return nil, err
	}

	newSong := &Song{
		ID:              uuid.New(),
		Title:           input.Title,
		ArtistID:        artistID,
		AlbumID:         input.AlbumID,
		TrackNumber:     input.TrackNumber,
		Genre:           input.Genre,
		Language:        input.Language,
		Lyrics:          input.Lyrics,
		Description:     input.Description,
		DurationSeconds: input.DurationSeconds,
		AudioKey:        input.AudioKey,
		CoverKey:        input.CoverKey,
		Status:          StatusDraft,
	}

	if err := service.repository.Create(ctx, newSong); err != nil {
		return nil, fmt.Errorf("song_service_admin_create_failed: %w", err)
	}

	service.auditor.Record(ctx, adminID, audit.ActionSongCreated, newSong.ID, "Song created for artist "+artistID)

	return newSong, nil
}

// UpdateInput is the partial-update payload. Nil pointers leave values
// untouched. A non-nil AlbumID relinks the song; unlinking happens by
// deleting and recreating the draft.
type UpdateInput struct {
	Title           *string
	Genre           *string
	Language        *string
	Lyrics          *string
	Description     *string
	DurationSeconds *int
	AudioKey        *string
	CoverKey        *string
	AlbumID         *string
	TrackNumber     *int
}

// Update modifies a song. Only the owning artist or an admin may update;
// non-admin edits are limited to songs still in an editable state.
func (service *Service) Update(ctx context.Context, callerID string, isAdmin bool, songID string, input UpdateInput) (*Song, error) {
	existing, err := service.repository.FindByID(ctx, songID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && existing.ArtistID != callerID {
		return nil, apperr.Forbidden("You do not own this song")
	}
	if !isAdmin && !existing.Status.Editable() {
		return nil, apperr.Unprocessable("Song can no longer be edited in status " + string(existing.Status))
	}

	if input.Title != nil {
		existing.Title = *input.Title
	}
	if input.Genre != nil {
		existing.Genre = *input.Genre
	}
	if input.Language != nil {
		existing.Language = *input.Language
	}
	if input.Lyrics != nil {
		existing.Lyrics = *input.Lyrics
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.TrackNumber != nil {
		existing.TrackNumber = input.TrackNumber
	}
	if input.DurationSeconds != nil {
		existing.DurationSeconds = *input.DurationSeconds
	}
	if input.AudioKey != nil {
		existing.AudioKey = *input.AudioKey
	}
	if input.CoverKey != nil {
		existing.CoverKey = *input.CoverKey
	}
	if input.AlbumID != nil {
		if err := service.validateAlbumLink(ctx, existing.ArtistID, input.AlbumID, isAdmin); err != nil {
			return nil, err
		}
		existing.AlbumID = input.AlbumID
	}

	if err := service.repository.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("song_service_update_failed: %w", err)
	}

	return existing, nil
}

// Submit moves a standalone draft song into the review queue. Album-linked
// songs are submitted through their album's cascading submit instead.
func (service *Service) Submit(ctx context.Context, artistID, songID string) (*Song, error) {
	existing, err := service.repository.FindByID(ctx, songID)
	if err != nil {
		return nil, err
	}

	if existing.ArtistID != artistID {
		return nil, apperr.Forbidden("You do not own this song")
	}
	if existing.AlbumID != nil {
		return nil, apperr.ValidationError("Album-linked songs are submitted together with their album")
	}
	if existing.Status != StatusDraft {
		return nil, apperr.Unprocessable("Only draft songs can be submitted for review")
	}

	if err := service.repository.SetStatus(ctx, songID, StatusPending, "", nil); err != nil {
		return nil, fmt.Errorf("song_service_submit_failed: %w", err)
	}

	existing.Status = StatusPending

	service.logger.Info("song_submitted", slog.String("song_id", songID))

	return existing, nil
}

// Approve publishes a song. The transition is an unconditional
// administrative override: it applies from any current status, which is
// also how a taken-down song is restored outside the complaint flow.
func (service *Service) Approve(ctx context.Context, adminID, songID string) (*Song, error) {
	existing, err := service.repository.FindByID(ctx, songID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	publishedAt := existing.PublishedAt
	if publishedAt == nil {
		publishedAt = &now
	}

	if err := service.repository.SetStatus(ctx, songID, StatusApproved, "", publishedAt); err != nil {
		return nil, fmt.Errorf("song_service_approve_failed: %w", err)
	}

	existing.Status = StatusApproved
	existing.RejectReason = ""
	existing.PublishedAt = publishedAt

	service.auditor.Record(ctx, adminID, audit.ActionSongApproved, songID, "Song approved: "+existing.Title)

	return existing, nil
}

// Reject declines a song with a stored reason. Like Approve, this is an
// unconditional administrative override.
func (service *Service) Reject(ctx context.Context, adminID, songID, reason string) (*Song, error) {
	existing, err := service.repository.FindByID(ctx, songID)
	if err != nil {
		return nil, err
	}

	if err := service.repository.SetStatus(ctx, songID, StatusRejected, reason, nil); err != nil {
		return nil, fmt.Errorf("song_service_reject_failed: %w", err)
	}

	existing.Status = StatusRejected
	existing.RejectReason = reason

	service.auditor.Record(ctx, adminID, audit.ActionSongRejected, songID, "Song rejected: "+reason)

	return existing, nil
}

// Get returns a song respecting visibility: non-approved songs are only
// visible to their owner and admins.
func (service *Service) Get(ctx context.Context, songID, callerID string, isAdmin bool) (*Song, error) {
	existing, err := service.repository.FindByID(ctx, songID)
	if err != nil {
		return nil, err
	}

	if existing.Status != StatusApproved && !isAdmin && existing.ArtistID != callerID {
		return nil, apperr.NotFound("Song")
	}

	return existing, nil
}

// ListMine pages through the caller's own songs in every status.
func (service *Service) ListMine(ctx context.Context, artistID string, params pagination.Params) ([]*Song, int, error) {
	return service.repository.ListByArtist(ctx, artistID, params)
}

// ListPublicByArtist pages through an artist's approved catalog.
func (service *Service) ListPublicByArtist(ctx context.Context, artistID string, params pagination.Params) ([]*Song, int, error) {
	return service.repository.ListApprovedByArtist(ctx, artistID, params)
}

// ListPending pages through the admin review queue. Scope narrows the queue
// to standalone or album-linked songs; empty means everything.
func (service *Service) ListPending(ctx context.Context, scope string, params pagination.Params) ([]*Song, int, error) {
	switch scope {
	case PendingScopeAll, PendingScopeStandalone, PendingScopeAlbum:
	default:
		return nil, 0, apperr.ValidationError("Scope must be standalone or album")
	}

	return service.repository.ListPending(ctx, scope, params)
}

// ListByAlbum returns an album's track list.
func (service *Service) ListByAlbum(ctx context.Context, albumID string) ([]*Song, error) {
	return service.repository.ListByAlbum(ctx, albumID)
}

// validateAlbumLink checks that a target album exists, is owned by the
// artist, and (for non-admins) still accepts new tracks.
func (service *Service) validateAlbumLink(ctx context.Context, artistID string, albumID *string, isAdmin bool) error {
	if albumID == nil {
		return nil
	}

	ref, err := service.repository.GetAlbumRef(ctx, *albumID)
	if err != nil {
		return err
	}
	if ref.ArtistID != artistID {
		return apperr.ValidationError("Album belongs to a different artist")
	}
	if !isAdmin && ref.Status != string(StatusDraft) {
		return apperr.Unprocessable("Songs can only be added to draft albums")
	}

	return nil
}
