// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package favorite

import (
	"context"
	"fmt"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/pkg/pagination"
)

// Service implements the favorites workflows.
type Service struct {
	repository Repository
}

func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// Add favorites a song. Re-favoriting is silently accepted.
func (service *Service) Add(ctx context.Context, userID, songID string) error {
	exists, err := service.repository.SongExists(ctx, songID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Song")
	}

	if err := service.repository.Add(ctx, userID, songID); err != nil {
		return fmt.Errorf("favorite_service_add_failed: %w", err)
	}
	return nil
}

// Remove unfavors a song. Removing an absent favorite is fine.
func (service *Service) Remove(ctx context.Context, userID, songID string) error {
	if err := service.repository.Remove(ctx, userID, songID); err != nil {
		return fmt.Errorf("favorite_service_remove_failed: %w", err)
	}
	return nil
}

// List returns the listener's favorited songs that are still published.
func (service *Service) List(ctx context.Context, userID string, params pagination.Params) ([]*SongSummary, int, error) {
	return service.repository.ListSongs(ctx, userID, params)
}
