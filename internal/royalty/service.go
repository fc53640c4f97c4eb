// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package royalty

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/internal/platform/audit"
	"github.com/melodiahq/melodia/internal/streaming"
	"github.com/melodiahq/melodia/pkg/pagination"
	"github.com/melodiahq/melodia/pkg/uuid"
)

// RevenueSource reports settled subscription revenue per month.
type RevenueSource interface {
	MonthlyRevenue(ctx context.Context, month string) (float64, error)
}

// StreamCounter reports qualifying stream counts per month.
type StreamCounter interface {
	TotalForMonth(ctx context.Context, month string) (int, error)
	PerArtistForMonth(ctx context.Context, month string) ([]streaming.ArtistStreams, error)
}

// Auditor records administrative actions.
type Auditor interface {
	Record(ctx context.Context, actorID, action, targetID, description string)
}

// Service implements the payout engine.
type Service struct {
	repository Repository
	revenue    RevenueSource
	streams    StreamCounter
	auditor    Auditor
	share      float64
	logger     *slog.Logger
}

// NewService wires the payout engine. share is the fraction of monthly
// revenue distributed to artists.
func NewService(repository Repository, revenue RevenueSource, streams StreamCounter, auditor Auditor, share float64, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		revenue:    revenue,
		streams:    streams,
		auditor:    auditor,
		share:      share,
		logger:     logger,
	}
}

// Run computes the payout pool for one month and books one payout row
// per streamed artist. The insert ignores (artist, month) pairs that
// already exist, so re-running a month is a no-op and a partially failed
// run can simply be retried. Months without revenue or without streams
// produce no rows.
func (service *Service) Run(ctx context.Context, adminID, month string) (*RunResult, error) {
	result := &RunResult{Month: month}

	revenue, err := service.revenue.MonthlyRevenue(ctx, month)
	if err != nil {
		return nil, err
	}
	result.Revenue = revenue
	if revenue == 0 {
		service.logger.Info("payout_run_skipped", slog.String("month", month), slog.String("why", "no revenue"))
		return result, nil
	}

	pool := revenue * service.share
	result.Pool = pool

	total, err := service.streams.TotalForMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	result.TotalStreams = total
	if total == 0 {
		service.logger.Info("payout_run_skipped", slog.String("month", month), slog.String("why", "no streams"))
		return result, nil
	}

	perArtist, err := service.streams.PerArtistForMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	payouts := make([]*Payout, 0, len(perArtist))
	for _, counts := range perArtist {
		payouts = append(payouts, &Payout{
			ID:       uuid.New(),
			ArtistID: counts.ArtistID,
			Month:    month,
			Streams:  counts.Streams,
			Amount:   pool * float64(counts.Streams) / float64(total),
			Status:   StatusPending,
		})
	}
	result.Artists = len(payouts)

	inserted, err := service.repository.InsertIgnoring(ctx, payouts)
	if err != nil {
		return nil, fmt.Errorf("royalty_service_run_failed: %w", err)
	}
	result.Inserted = inserted

	service.auditor.Record(ctx, adminID, audit.ActionPayoutRunCompleted, month,
		fmt.Sprintf("Payout run for %s: %d artists, %d new rows", month, result.Artists, inserted))

	service.logger.Info("payout_run_completed",
		slog.String("month", month),
		slog.Float64("pool", pool),
		slog.Int("artists", result.Artists),
		slog.Int("inserted", inserted),
	)

	return result, nil
}

// MarkPaid settles a pending payout.
func (service *Service) MarkPaid(ctx context.Context, adminID, payoutID string) (*Payout, error) {
	existing, err := service.repository.FindByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if existing.Status == StatusPaid {
		return nil, apperr.Unprocessable("Payout is already paid")
	}

	now := time.Now()
	if err := service.repository.MarkPaid(ctx, payoutID, now); err != nil {
		return nil, fmt.Errorf("royalty_service_mark_paid_failed: %w", err)
	}

	existing.Status = StatusPaid
	existing.PaidAt = &now

	service.auditor.Record(ctx, adminID, audit.ActionPayoutMarkedPaid, payoutID,
		"Payout settled for artist "+existing.ArtistID)

	return existing, nil
}

// ListByMonth returns one month's payouts for the admin ledger view.
func (service *Service) ListByMonth(ctx context.Context, month string, params pagination.Params) ([]*Payout, int, error) {
	return service.repository.ListByMonth(ctx, month, params)
}

// ListMine returns an artist's own earnings history.
func (service *Service) ListMine(ctx context.Context, artistID string, params pagination.Params) ([]*Payout, int, error) {
	return service.repository.ListByArtist(ctx, artistID, params)
}
