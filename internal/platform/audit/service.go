// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package audit

import (
	"context"
	"log/slog"

	"github.com/melodiahq/melodia/pkg/uuid"
)

// Service exposes the audit trail to domain services and the admin API.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Record appends one admin action. A failed append is logged but never fails
// the operation being audited: the primary mutation has already committed and
// must not be reported as an error to the actor.
func (service *Service) Record(ctx context.Context, actorID, action, targetID, description string) {
	entry := &Entry{
		ID:          uuid.New(),
		ActorID:     actorID,
		Action:      action,
		TargetID:    targetID,
		Description: description,
	}

	if err := service.repo.Append(ctx, entry); err != nil {
		service.logger.Error("audit_append_failed",
			slog.String("action", action),
			slog.String("target_id", targetID),
			slog.Any("error", err),
		)
		return
	}

	service.logger.Info("admin_action_recorded",
		slog.String("actor_id", actorID),
		slog.String("action", action),
		slog.String("target_id", targetID),
	)
}

// ListRecent returns the newest entries for the admin console.
func (service *Service) ListRecent(ctx context.Context, limit int) ([]*Entry, error) {
	return service.repo.ListRecent(ctx, limit)
}

// DashboardStats returns the moderation-workload counters.
func (service *Service) DashboardStats(ctx context.Context) (*Stats, error) {
	return service.repo.Stats(ctx)
}
