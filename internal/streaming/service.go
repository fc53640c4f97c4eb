// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package streaming

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/internal/platform/constants"
	"github.com/melodiahq/melodia/pkg/uuid"
)

// SubscriptionChecker gates streaming behind an active subscription.
type SubscriptionChecker interface {
	HasActive(ctx context.Context, userID string) (bool, error)
}

// Presigner exchanges a storage key for a time-limited fetch URL.
type Presigner interface {
	PresignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Service implements the streaming flows.
type Service struct {
	repository    Repository
	recent        RecentStore
	subscriptions SubscriptionChecker
	presigner     Presigner
	minSeconds    int
	logger        *slog.Logger
}

// NewService wires the streaming service. minSeconds is the anti-fraud
// duration floor; plays shorter than it never reach the ledger.
func NewService(repository Repository, recent RecentStore, subscriptions SubscriptionChecker, presigner Presigner, minSeconds int, logger *slog.Logger) *Service {
	return &Service{
		repository:    repository,
		recent:        recent,
		subscriptions: subscriptions,
		presigner:     presigner,
		minSeconds:    minSeconds,
		logger:        logger,
	}
}

// StreamURLResult carries the presigned URL and its expiry.
type StreamURLResult struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StreamURL hands an active subscriber a presigned URL for a published
// song's audio. Unpublished songs are indistinguishable from missing ones.
func (service *Service) StreamURL(ctx context.Context, userID, songID string) (*StreamURLResult, error) {
	ref, err := service.repository.GetSongRef(ctx, songID)
	if err != nil {
		return nil, err
	}
	if ref.Status != "APPROVED" {
		return nil, apperr.NotFound("Song")
	}

	active, err := service.subscriptions.HasActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, apperr.Forbidden("An active subscription is required to stream")
	}

	signed, err := service.presigner.PresignedGetURL(ctx, ref.AudioKey, constants.StreamURLTTL)
	if err != nil {
		return nil, fmt.Errorf("streaming_service_presign_failed: %w", err)
	}

	return &StreamURLResult{
		URL:       signed,
		ExpiresAt: time.Now().Add(constants.StreamURLTTL),
	}, nil
}

// LogStream records a finished play. Plays below the duration floor are
// acknowledged but leave no trace: no ledger row, no recently-played
// update. The caller cannot tell the difference, which keeps probing for
// the floor uninteresting.
func (service *Service) LogStream(ctx context.Context, userID, songID string, durationSeconds int) error {
	if durationSeconds < service.minSeconds {
		service.logger.Debug("stream_below_floor",
			slog.String("song_id", songID),
			slog.Int("duration_seconds", durationSeconds),
		)
		return nil
	}

	if _, err := service.repository.GetSongRef(ctx, songID); err != nil {
		return err
	}

	entry := &Stream{
		ID:              uuid.New(),
		SongID:          songID,
		UserID:          userID,
		DurationSeconds: durationSeconds,
		PlayedAt:        time.Now(),
	}

	if err := service.repository.Append(ctx, entry); err != nil {
		return fmt.Errorf("streaming_service_log_failed: %w", err)
	}

	// The projection is best-effort: a Redis hiccup must not fail a
	// ledger write that already committed.
	if err := service.recent.Add(ctx, userID, songID, entry.PlayedAt); err != nil {
		service.logger.Warn("recently_played_update_failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// RecentlyPlayed returns the listener's projection, newest first.
func (service *Service) RecentlyPlayed(ctx context.Context, userID string) ([]RecentPlay, error) {
	return service.recent.List(ctx, userID)
}

// TotalForMonth reports the number of qualifying streams in a month.
func (service *Service) TotalForMonth(ctx context.Context, month string) (int, error) {
	return service.repository.TotalForMonth(ctx, month)
}

// PerArtistForMonth reports qualifying streams grouped by artist.
func (service *Service) PerArtistForMonth(ctx context.Context, month string) ([]ArtistStreams, error) {
	return service.repository.PerArtistForMonth(ctx, month)
}
