// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package royalty

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/internal/platform/audit"
	"github.com/melodiahq/melodia/internal/streaming"
	"github.com/melodiahq/melodia/pkg/pagination"
)

type fakeRepo struct {
	payouts map[string]*Payout // keyed by artistid|month
	byID    map[string]*Payout
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{payouts: map[string]*Payout{}, byID: map[string]*Payout{}}
}

func (r *fakeRepo) InsertIgnoring(_ context.Context, payouts []*Payout) (int, error) {
	inserted := 0
	for _, p := range payouts {
		key := p.ArtistID + "|" + p.Month
		if _, exists := r.payouts[key]; exists {
			continue
		}
		r.payouts[key] = p
		r.byID[p.ID] = p
		inserted++
	}
	return inserted, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*Payout, error) {
	if p, ok := r.byID[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, apperr.NotFound("Payout")
}

func (r *fakeRepo) MarkPaid(_ context.Context, id string, paidAt time.Time) error {
	p, ok := r.byID[id]
	if !ok {
		return apperr.NotFound("Payout")
	}
	if p.Status != StatusPending {
		return apperr.Unprocessable("Payout is already paid")
	}
	p.Status = StatusPaid
	p.PaidAt = &paidAt
	return nil
}

func (r *fakeRepo) ListByMonth(_ context.Context, month string, _ pagination.Params) ([]*Payout, int, error) {
	var out []*Payout
	for _, p := range r.payouts {
		if p.Month == month {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) ListByArtist(_ context.Context, artistID string, _ pagination.Params) ([]*Payout, int, error) {
	var out []*Payout
	for _, p := range r.payouts {
		if p.ArtistID == artistID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

type fakeRevenue struct {
	byMonth map[string]float64
}

func (f *fakeRevenue) MonthlyRevenue(_ context.Context, month string) (float64, error) {
	return f.byMonth[month], nil
}

type fakeStreams struct {
	perArtist map[string][]streaming.ArtistStreams
}

func (f *fakeStreams) TotalForMonth(_ context.Context, month string) (int, error) {
	total := 0
	for _, counts := range f.perArtist[month] {
		total += counts.Streams
	}
	return total, nil
}

func (f *fakeStreams) PerArtistForMonth(_ context.Context, month string) ([]streaming.ArtistStreams, error) {
	return f.perArtist[month], nil
}

type recordingAuditor struct {
	actions []string
}

func (a *recordingAuditor) Record(_ context.Context, _, action, _, _ string) {
	a.actions = append(a.actions, action)
}

func newTestService(revenue map[string]float64, plays map[string][]streaming.ArtistStreams) (*Service, *fakeRepo, *recordingAuditor) {
	repo := newFakeRepo()
	auditor := &recordingAuditor{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewService(repo, &fakeRevenue{byMonth: revenue}, &fakeStreams{perArtist: plays}, auditor, 0.70, logger)
	return service, repo, auditor
}

func TestRun_SplitsPoolProportionally(t *testing.T) {
	service, repo, auditor := newTestService(
		map[string]float64{"2026-07": 1000},
		map[string][]streaming.ArtistStreams{"2026-07": {
			{ArtistID: "artist-1", Streams: 750},
			{ArtistID: "artist-2", Streams: 250},
		}},
	)

	result, err := service.Run(context.Background(), "admin-1", "2026-07")

	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.InDelta(t, 700.0, result.Pool, 0.0001)

	payouts, _, err := repo.ListByMonth(context.Background(), "2026-07", pagination.Params{})
	require.NoError(t, err)

	var sum float64
	byArtist := map[string]float64{}
	for _, p := range payouts {
		sum += p.Amount
		byArtist[p.ArtistID] = p.Amount
	}
	// The whole pool is distributed, proportional to stream counts.
	assert.InDelta(t, 700.0, sum, 0.0001)
	assert.InDelta(t, 525.0, byArtist["artist-1"], 0.0001)
	assert.InDelta(t, 175.0, byArtist["artist-2"], 0.0001)
	assert.Contains(t, auditor.actions, audit.ActionPayoutRunCompleted)
}

func TestRun_IsIdempotent(t *testing.T) {
	service, repo, _ := newTestService(
		map[string]float64{"2026-07": 1000},
		map[string][]streaming.ArtistStreams{"2026-07": {
			{ArtistID: "artist-1", Streams: 10},
		}},
	)

	first, err := service.Run(context.Background(), "admin-1", "2026-07")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Inserted)

	second, err := service.Run(context.Background(), "admin-1", "2026-07")
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted)
	assert.Len(t, repo.payouts, 1)
}

func TestRun_ZeroRevenueMonth(t *testing.T) {
	service, repo, _ := newTestService(
		map[string]float64{},
		map[string][]streaming.ArtistStreams{"2030-01": {
			{ArtistID: "artist-1", Streams: 500},
		}},
	)

	result, err := service.Run(context.Background(), "admin-1", "2030-01")

	require.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
	assert.Empty(t, repo.payouts)
}

func TestRun_ZeroStreamMonth(t *testing.T) {
	service, repo, _ := newTestService(
		map[string]float64{"2030-01": 5000},
		map[string][]streaming.ArtistStreams{},
	)

	result, err := service.Run(context.Background(), "admin-1", "2030-01")

	require.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
	assert.Empty(t, repo.payouts)
}

func TestMarkPaid_OnceOnly(t *testing.T) {
	service, _, auditor := newTestService(
		map[string]float64{"2026-07": 100},
		map[string][]streaming.ArtistStreams{"2026-07": {
			{ArtistID: "artist-1", Streams: 5},
		}},
	)

	_, err := service.Run(context.Background(), "admin-1", "2026-07")
	require.NoError(t, err)

	payouts, _, err := service.ListByMonth(context.Background(), "2026-07", pagination.Params{})
	require.NoError(t, err)
	require.Len(t, payouts, 1)

	paid, err := service.MarkPaid(context.Background(), "admin-1", payouts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	assert.Contains(t, auditor.actions, audit.ActionPayoutMarkedPaid)

	_, err = service.MarkPaid(context.Background(), "admin-1", payouts[0].ID)
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
}
