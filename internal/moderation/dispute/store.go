// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package dispute

import (
	"context"
	"time"

	"github.com/melodiahq/melodia/pkg/pagination"
)

// Repository is the persistence contract for disputes.
type Repository interface {
	// Create registers a dispute between two songs. Used by back-office
	// ingestion, not exposed over HTTP.
	Create(ctx context.Context, dispute *Dispute) error

	FindByID(ctx context.Context, id string) (*Dispute, error)

	// Resolve approves the winner, rejects the loser and closes the
	// dispute, all in a single transaction.
	Resolve(ctx context.Context, disputeID, winnerSongID, loserSongID, resolverID string, resolvedAt time.Time) error

	ListOpen(ctx context.Context, params pagination.Params) ([]*Dispute, int, error)
}
