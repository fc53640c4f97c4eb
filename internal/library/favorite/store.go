// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package favorite

import (
	"context"

	"github.com/melodiahq/melodia/pkg/pagination"
)

// Repository is the persistence contract for favorites.
type Repository interface {
	// Add records the favorite; adding an existing one changes nothing.
	Add(ctx context.Context, userID, songID string) error
	Remove(ctx context.Context, userID, songID string) error

	// ListSongs returns the listener's favorites joined against the
	// catalog, restricted to published songs.
	ListSongs(ctx context.Context, userID string, params pagination.Params) ([]*SongSummary, int, error)

	SongExists(ctx context.Context, songID string) (bool, error)
}
