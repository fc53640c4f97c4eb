// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

// Package album manages album records and the album half of the catalog
// moderation flow. Albums move DRAFT -> PENDING -> APPROVED | REJECTED;
// submitting an album drags every attached song to PENDING with it.
package album

import "time"

// Status is the moderation state of an album.
type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Album is a collection of songs released together by one artist.
type Album struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ArtistID     string    `json:"artist_id"`
	Description  string    `json:"description,omitempty"`
	Language     string    `json:"language,omitempty"`
	ReleaseType  string    `json:"release_type"`
	CoverKey     string    `json:"cover_key,omitempty"`
	Status       Status    `json:"status"`
	RejectReason string    `json:"reject_reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Release types accepted for an album.
const (
	ReleaseAlbum   = "ALBUM"
	ReleaseEP      = "EP"
	ReleaseSingle  = "SINGLE"
	ReleaseCompile = "COMPILATION"
)

// ReleaseTypes lists the accepted release_type values for validation.
var ReleaseTypes = []string{ReleaseAlbum, ReleaseEP, ReleaseSingle, ReleaseCompile}

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldLanguage    = "language"
	FieldReleaseType = "release_type"
	FieldReason      = "reason"
)
