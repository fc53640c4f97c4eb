// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

// Package complaint handles listener complaints against published songs.
// Filing a complaint suspends the song immediately (TAKEN_DOWN); an admin
// later resolves it by restoring or removing the song.
package complaint

import "time"

// Status of a complaint.
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusResolved Status = "RESOLVED"
)

// Action is the typed admin decision on a complaint.
type Action string

const (
	// ActionRestore puts the song back to APPROVED.
	ActionRestore Action = "RESTORE"
	// ActionRemove rejects the song permanently.
	ActionRemove Action = "REMOVE"
)

// Actions lists the accepted resolution values for validation.
var Actions = []string{string(ActionRestore), string(ActionRemove)}

// Complaint is a listener report against a song.
type Complaint struct {
	ID         string     `json:"id"`
	SongID     string     `json:"song_id"`
	ReporterID string     `json:"reporter_id"`
	Reason     string     `json:"reason"`
	Status     Status     `json:"status"`
	Action     Action     `json:"action,omitempty"`
	ResolvedBy string     `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// SongRef is the slice of a song row the complaint flow needs.
type SongRef struct {
	ID     string
	Title  string
	Status string
}

const (
	FieldSongID = "song_id"
	FieldReason = "reason"
	FieldAction = "action"
)
