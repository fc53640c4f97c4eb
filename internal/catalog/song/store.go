// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package song

import (
	"context"
	"time"

	"github.com/melodiahq/melodia/pkg/pagination"
)

// Repository defines the persistence contract for songs.
type Repository interface {
	// Create persists a new draft song.
	Create(ctx context.Context, song *Song) error

	// FindByID returns the song with the given ID.
	FindByID(ctx context.Context, id string) (*Song, error)

	// Update persists mutable song fields (title, genre, duration, keys,
	// album linkage).
	Update(ctx context.Context, song *Song) error

	// SetStatus transitions the moderation state. RejectReason is cleared
	// unless provided; publishedAt is written only when non-nil.
	SetStatus(ctx context.Context, id string, status Status, rejectReason string, publishedAt *time.Time) error

	// ListByArtist pages through every song owned by the artist.
	ListByArtist(ctx context.Context, artistID string, params pagination.Params) ([]*Song, int, error)

	// ListApprovedByArtist pages through the artist's public catalog.
	ListApprovedByArtist(ctx context.Context, artistID string, params pagination.Params) ([]*Song, int, error)

	// ListPending pages through the admin review queue, oldest first,
	// optionally narrowed to standalone or album-linked songs.
	ListPending(ctx context.Context, scope string, params pagination.Params) ([]*Song, int, error)

	// ListByAlbum returns all songs linked to an album in track order.
	ListByAlbum(ctx context.Context, albumID string) ([]*Song, error)

	// GetAlbumRef resolves the minimal album projection for linkage checks.
	GetAlbumRef(ctx context.Context, albumID string) (*AlbumRef, error)
}
