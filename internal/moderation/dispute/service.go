// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package dispute

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/internal/platform/audit"
	"github.com/melodiahq/melodia/pkg/pagination"
)

// Auditor records administrative actions.
type Auditor interface {
	Record(ctx context.Context, actorID, action, targetID, description string)
}

// Service implements dispute resolution on top of a Repository.
type Service struct {
	repository Repository
	auditor    Auditor
	logger     *slog.Logger
}

func NewService(repository Repository, auditor Auditor, logger *slog.Logger) *Service {
	return &Service{repository: repository, auditor: auditor, logger: logger}
}

// Resolve picks the winning claim. The winner must be one of the two
// songs referenced by the dispute; anything else is rejected before any
// write. A resolved dispute stays resolved.
func (service *Service) Resolve(ctx context.Context, adminID, disputeID, winnerSongID string) (*Dispute, error) {
	existing, err := service.repository.FindByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if existing.Status == StatusResolved {
		return nil, apperr.Unprocessable("Dispute is already resolved")
	}

	var loserSongID string
	switch winnerSongID {
	case existing.SongAID:
		loserSongID = existing.SongBID
	case existing.SongBID:
		loserSongID = existing.SongAID
	default:
		return nil, apperr.ValidationError("Winner must be one of the disputed songs")
	}

	now := time.Now()
	if err := service.repository.Resolve(ctx, disputeID, winnerSongID, loserSongID, adminID, now); err != nil {
		return nil, fmt.Errorf("dispute_service_resolve_failed: %w", err)
	}

	existing.Status = StatusResolved
	existing.WinnerSongID = winnerSongID
	existing.ResolvedBy = adminID
	existing.ResolvedAt = &now

	service.auditor.Record(ctx, adminID, audit.ActionDisputeResolved, disputeID,
		"Dispute resolved in favor of song "+winnerSongID)

	service.logger.Info("dispute_resolved",
		slog.String("dispute_id", disputeID),
		slog.String("winner_song_id", winnerSongID),
		slog.String("loser_song_id", loserSongID),
	)

	return existing, nil
}

func (service *Service) Get(ctx context.Context, disputeID string) (*Dispute, error) {
	return service.repository.FindByID(ctx, disputeID)
}

func (service *Service) ListOpen(ctx context.Context, params pagination.Params) ([]*Dispute, int, error) {
	return service.repository.ListOpen(ctx, params)
}
