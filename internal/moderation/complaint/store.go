// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package complaint

import (
	"context"
	"time"

	"github.com/melodiahq/melodia/pkg/pagination"
)

// Repository is the persistence contract for complaints.
type Repository interface {
	// File inserts the complaint and forces the reported song to
	// TAKEN_DOWN, both in a single transaction.
	File(ctx context.Context, complaint *Complaint) error

	FindByID(ctx context.Context, id string) (*Complaint, error)

	// Resolve flags the complaint RESOLVED with the admin's decision and
	// moves the song to the given status, both in a single transaction.
	Resolve(ctx context.Context, complaintID string, action Action, songStatus string, resolverID string, resolvedAt time.Time) error

	GetSongRef(ctx context.Context, songID string) (*SongRef, error)

	ListByReporter(ctx context.Context, reporterID string, params pagination.Params) ([]*Complaint, int, error)
	ListOpen(ctx context.Context, params pagination.Params) ([]*Complaint, int, error)
}
