// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package playlist

import (
	"context"

	"github.com/melodiahq/melodia/pkg/pagination"
)

// Repository is the persistence contract for playlists.
type Repository interface {
	Create(ctx context.Context, playlist *Playlist) error
	FindByID(ctx context.Context, id string) (*Playlist, error)
	Update(ctx context.Context, playlist *Playlist) error
	Delete(ctx context.Context, id string) error

	ListByOwner(ctx context.Context, ownerID string, params pagination.Params) ([]*Playlist, int, error)
	ListTracks(ctx context.Context, playlistID string) ([]*Track, error)

	// AddSong links a song; linking twice changes nothing.
	AddSong(ctx context.Context, playlistID, songID string) error
	RemoveSong(ctx context.Context, playlistID, songID string) error

	SongExists(ctx context.Context, songID string) (bool, error)
}
