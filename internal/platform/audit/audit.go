// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

/*
Package audit records administrative actions in an append-only log.

Every privileged mutation performed on behalf of another party (approving a
song, rejecting an artist application, marking a payout paid) leaves an entry
of the form (actor, action tag, target, free-text description). Entries are
never updated or deleted.
*/
package audit

import "time"

// Entry is one appended admin action.
type Entry struct {
	ID          string    `json:"id"`
	ActorID     string    `json:"actor_id"`
	Action      string    `json:"action"`
	TargetID    string    `json:"target_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Action tags. One tag per auditable admin operation; free text goes in the
// description, never in the tag.
const (
	ActionSongApproved       = "SONG_APPROVED"
	ActionSongRejected       = "SONG_REJECTED"
	ActionSongCreated        = "SONG_CREATED_FOR_ARTIST"
	ActionAlbumApproved      = "ALBUM_APPROVED"
	ActionAlbumRejected      = "ALBUM_REJECTED"
	ActionAlbumCreated       = "ALBUM_CREATED_FOR_ARTIST"
	ActionAlbumSubmitted     = "ALBUM_SUBMITTED_FOR_ARTIST"
	ActionArtistApproved     = "ARTIST_APPROVED"
	ActionArtistRejected     = "ARTIST_REJECTED"
	ActionComplaintResolved  = "COMPLAINT_RESOLVED"
	ActionDisputeResolved    = "DISPUTE_RESOLVED"
	ActionPayoutRunCompleted = "PAYOUT_RUN_COMPLETED"
	ActionPayoutMarkedPaid   = "PAYOUT_MARKED_PAID"
)

// Stats holds the moderation-workload counters for the admin dashboard.
type Stats struct {
	PendingArtists int `json:"pending_artists"`
	PendingSongs   int `json:"pending_songs"`
	PendingAlbums  int `json:"pending_albums"`
	OpenComplaints int `json:"open_complaints"`
	OpenDisputes   int `json:"open_disputes"`
}
