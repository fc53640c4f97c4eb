// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

// Package streaming owns the append-only stream ledger and the delivery
// path for audio. A play only enters the ledger once it clears the
// configured duration floor; shorter plays are dropped silently so
// replay-fraud never reaches the payout math.
package streaming

import "time"

// Stream is one qualifying play of a song by a listener.
type Stream struct {
	ID              string    `json:"id"`
	SongID          string    `json:"song_id"`
	UserID          string    `json:"user_id"`
	DurationSeconds int       `json:"duration_seconds"`
	PlayedAt        time.Time `json:"played_at"`
}

// RecentPlay is one entry of the recently-played projection.
type RecentPlay struct {
	SongID   string    `json:"song_id"`
	PlayedAt time.Time `json:"played_at"`
}

// ArtistStreams is a per-artist stream count for one month.
type ArtistStreams struct {
	ArtistID string
	Streams  int
}

// SongRef is the slice of a song row the streaming flow needs.
type SongRef struct {
	ID       string
	ArtistID string
	AudioKey string
	Status   string
}

const (
	FieldSongID   = "song_id"
	FieldDuration = "duration_seconds"
)
