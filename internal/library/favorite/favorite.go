// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

// Package favorite lets listeners keep a flat list of liked songs.
package favorite

import "time"

// Favorite links a listener to a song. Adding twice is a no-op.
type Favorite struct {
	UserID    string    `json:"user_id"`
	SongID    string    `json:"song_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SongSummary is the catalog slice shown in favorite listings. Only
// published songs surface; favorites pointing at removed or taken-down
// songs stay stored but hidden.
type SongSummary struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	ArtistID        string `json:"artist_id"`
	Genre           string `json:"genre,omitempty"`
	DurationSeconds int    `json:"duration_seconds"`
	CoverKey        string `json:"cover_key,omitempty"`
}

const FieldSongID = "song_id"
