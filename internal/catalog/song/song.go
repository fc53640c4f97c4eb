// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

/*
Package song implements the song half of the content moderation engine.

Every song moves through a fixed review lifecycle before listeners can
stream it:

	DRAFT → PENDING → APPROVED | REJECTED
	APPROVED ⇄ TAKEN_DOWN (complaint suspension / restore)

Artists author drafts and submit standalone songs for review; album-linked
songs are submitted together with their album. Admins approve or reject, and
every admin decision lands in the audit log.

# Architecture

  - Service: ownership checks, state transitions, verified-artist gating.
  - Repository: pgx-backed persistence over catalog.song.
  - The album package owns the cascading submit; this package only exposes
    the per-album track listing it needs.
*/
package song

import "time"

// Status is the moderation state of a song.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusTakenDown Status = "TAKEN_DOWN"
)

// Editable reports whether an artist may still modify the song.
// Admins are not bound by this.
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusPending
}

// Review queue scopes. Album-linked songs usually get reviewed alongside
// their album, so admins can narrow the queue to one side or the other.
const (
	PendingScopeAll        = ""
	PendingScopeStandalone = "standalone"
	PendingScopeAlbum      = "album"
)

// Song represents a single track in the catalog.
//
// AudioKey and CoverKey are opaque object-storage keys; the streaming
// package turns them into short-lived presigned URLs.
type Song struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	ArtistID        string     `json:"artist_id"`
	AlbumID         *string    `json:"album_id,omitempty"`
	TrackNumber     *int       `json:"track_number,omitempty"`
	Genre           string     `json:"genre,omitempty"`
	Language        string     `json:"language,omitempty"`
	Lyrics          string     `json:"lyrics"`
	Description     string     `json:"description,omitempty"`
	DurationSeconds int        `json:"duration_seconds"`
	AudioKey        string     `json:"-"`
	CoverKey        string     `json:"cover_key,omitempty"`
	Status          Status     `json:"status"`
	RejectReason    string     `json:"reject_reason,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// AlbumRef is the minimal album projection needed to validate song-album
// linkage without importing the album package.
type AlbumRef struct {
	ID       string
	ArtistID string
	Status   string
}

// Field names used in validation errors.
const (
	FieldTitle       = "title"
	FieldGenre       = "genre"
	FieldLanguage    = "language"
	FieldLyrics      = "lyrics"
	FieldDescription = "description"
	FieldDuration    = "duration_seconds"
	FieldAudioKey    = "audio_key"
	FieldAlbumID     = "album_id"
	FieldReason      = "reason"
)
