// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

// Package dispute resolves ownership disputes between two songs claiming
// the same work. Resolution is exclusive and final: the winning song is
// approved, the losing one rejected, in a single transaction.
package dispute

import "time"

// Status of a dispute.
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusResolved Status = "RESOLVED"
)

// Dispute pits two song claims against each other. Disputes enter the
// system through back-office tooling; the API only resolves and lists
// them.
type Dispute struct {
	ID           string     `json:"id"`
	SongAID      string     `json:"song_a_id"`
	SongBID      string     `json:"song_b_id"`
	Reason       string     `json:"reason"`
	Status       Status     `json:"status"`
	WinnerSongID string     `json:"winner_song_id,omitempty"`
	ResolvedBy   string     `json:"resolved_by,omitempty"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

const FieldWinner = "winner_song_id"
