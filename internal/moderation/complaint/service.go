// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package complaint

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/internal/platform/audit"
	"github.com/melodiahq/melodia/pkg/pagination"
	"github.com/melodiahq/melodia/pkg/uuid"
)

// Auditor records administrative actions.
type Auditor interface {
	Record(ctx context.Context, actorID, action, targetID, description string)
}

// Service implements the complaint workflow on top of a Repository.
type Service struct {
	repository Repository
	auditor    Auditor
	logger     *slog.Logger
}

func NewService(repository Repository, auditor Auditor, logger *slog.Logger) *Service {
	return &Service{repository: repository, auditor: auditor, logger: logger}
}

// File logs a complaint against a song and suspends it in the same
// transaction. The suspension happens before any admin looks at the
// report: suspicious content goes dark first, questions come later.
func (service *Service) File(ctx context.Context, reporterID, songID, reason string) (*Complaint, error) {
	if _, err := service.repository.GetSongRef(ctx, songID); err != nil {
		return nil, err
	}

	newComplaint := &Complaint{
		ID:         uuid.New(),
		SongID:     songID,
		ReporterID: reporterID,
		Reason:     reason,
		Status:     StatusOpen,
	}

	if err := service.repository.File(ctx, newComplaint); err != nil {
		return nil, fmt.Errorf("complaint_service_file_failed: %w", err)
	}

	service.logger.Info("complaint_filed",
		slog.String("complaint_id", newComplaint.ID),
		slog.String("song_id", songID),
	)

	return newComplaint, nil
}

// Resolve applies an admin decision: RESTORE puts the song back to
// APPROVED, REMOVE rejects it. Any other action value fails validation
// before anything is written. Re-resolving a resolved complaint is
// allowed so admins can correct an earlier decision.
func (service *Service) Resolve(ctx context.Context, adminID, complaintID string, action Action) (*Complaint, error) {
	var songStatus string
	switch action {
	case ActionRestore:
		songStatus = "APPROVED"
	case ActionRemove:
		songStatus = "REJECTED"
	default:
		return nil, apperr.ValidationError("Action must be RESTORE or REMOVE")
	}

	existing, err := service.repository.FindByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := service.repository.Resolve(ctx, complaintID, action, songStatus, adminID, now); err != nil {
		return nil, fmt.Errorf("complaint_service_resolve_failed: %w", err)
	}

	existing.Status = StatusResolved
	existing.Action = action
	existing.ResolvedBy = adminID
	existing.ResolvedAt = &now

	service.auditor.Record(ctx, adminID, audit.ActionComplaintResolved, complaintID,
		"Complaint resolved with "+string(action))

	return existing, nil
}

func (service *Service) ListMine(ctx context.Context, reporterID string, params pagination.Params) ([]*Complaint, int, error) {
	return service.repository.ListByReporter(ctx, reporterID, params)
}

func (service *Service) ListOpen(ctx context.Context, params pagination.Params) ([]*Complaint, int, error) {
	return service.repository.ListOpen(ctx, params)
}
