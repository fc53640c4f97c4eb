// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package playlist

import (
	"context"
	"fmt"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/pkg/pagination"
	"github.com/melodiahq/melodia/pkg/pointer"
	"github.com/melodiahq/melodia/pkg/uuid"
)

// Service implements playlist workflows. Playlists are private: every
// operation beyond creation is owner-only.
type Service struct {
	repository Repository
}

func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// UpdateInput carries optional field updates. Nil fields are unchanged.
type UpdateInput struct {
	Name        *string
	Description *string
}

func (service *Service) Create(ctx context.Context, ownerID, name, description string) (*Playlist, error) {
	created := &Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}

	if err := service.repository.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("playlist_service_create_failed: %w", err)
	}
	return created, nil
}

func (service *Service) Update(ctx context.Context, ownerID, playlistID string, input UpdateInput) (*Playlist, error) {
	existing, err := service.owned(ctx, ownerID, playlistID)
	if err != nil {
		return nil, err
	}

	existing.Name = pointer.Fallback(input.Name, existing.Name)
	existing.Description = pointer.Fallback(input.Description, existing.Description)

	if err := service.repository.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("playlist_service_update_failed: %w", err)
	}
	return existing, nil
}

func (service *Service) Delete(ctx context.Context, ownerID, playlistID string) error {
	if _, err := service.owned(ctx, ownerID, playlistID); err != nil {
		return err
	}
	if err := service.repository.Delete(ctx, playlistID); err != nil {
		return fmt.Errorf("playlist_service_delete_failed: %w", err)
	}
	return nil
}

// Get returns the playlist with its tracks.
func (service *Service) Get(ctx context.Context, ownerID, playlistID string) (*Detail, error) {
	existing, err := service.owned(ctx, ownerID, playlistID)
	if err != nil {
		return nil, err
	}

	tracks, err := service.repository.ListTracks(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	return &Detail{Playlist: *existing, Songs: tracks}, nil
}

func (service *Service) ListMine(ctx context.Context, ownerID string, params pagination.Params) ([]*Playlist, int, error) {
	return service.repository.ListByOwner(ctx, ownerID, params)
}

// AddSong links a song into the playlist. Duplicates are silently
// accepted.
func (service *Service) AddSong(ctx context.Context, ownerID, playlistID, songID string) error {
	if _, err := service.owned(ctx, ownerID, playlistID); err != nil {
		return err
	}

	exists, err := service.repository.SongExists(ctx, songID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Song")
	}

	if err := service.repository.AddSong(ctx, playlistID, songID); err != nil {
		return fmt.Errorf("playlist_service_add_song_failed: %w", err)
	}
	return nil
}

func (service *Service) RemoveSong(ctx context.Context, ownerID, playlistID, songID string) error {
	if _, err := service.owned(ctx, ownerID, playlistID); err != nil {
		return err
	}
	if err := service.repository.RemoveSong(ctx, playlistID, songID); err != nil {
		return fmt.Errorf("playlist_service_remove_song_failed: %w", err)
	}
	return nil
}

func (service *Service) owned(ctx context.Context, ownerID, playlistID string) (*Playlist, error) {
	existing, err := service.repository.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		// Hide other people's playlists entirely.
		return nil, apperr.NotFound("Playlist")
	}
	return existing, nil
}
