// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package streaming

import (
	"context"
	"time"
)

// Repository is the persistence contract for the stream ledger.
type Repository interface {
	Append(ctx context.Context, stream *Stream) error
	GetSongRef(ctx context.Context, songID string) (*SongRef, error)

	// TotalForMonth counts qualifying streams in a "YYYY-MM" month.
	TotalForMonth(ctx context.Context, month string) (int, error)

	// PerArtistForMonth counts qualifying streams grouped by the streamed
	// song's artist for a "YYYY-MM" month.
	PerArtistForMonth(ctx context.Context, month string) ([]ArtistStreams, error)
}

// RecentStore maintains the per-listener recently-played projection.
type RecentStore interface {
	Add(ctx context.Context, userID, songID string, playedAt time.Time) error
	List(ctx context.Context, userID string) ([]RecentPlay, error)
}
