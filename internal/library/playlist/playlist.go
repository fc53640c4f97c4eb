// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

// Package playlist implements listener-owned playlists.
package playlist

import "time"

// Playlist is an ordered, listener-owned collection of songs.
type Playlist struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Track is the catalog slice shown inside a playlist.
type Track struct {
	SongID          string    `json:"song_id"`
	Title           string    `json:"title"`
	ArtistID        string    `json:"artist_id"`
	DurationSeconds int       `json:"duration_seconds"`
	Status          string    `json:"status"`
	AddedAt         time.Time `json:"added_at"`
}

// Detail is a playlist together with its tracks.
type Detail struct {
	Playlist
	Songs []*Track `json:"songs"`
}

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldSongID      = "song_id"
)
