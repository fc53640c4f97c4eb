// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package dispute

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
	"github.com/melodiahq/melodia/pkg/pagination"
)

type fakeRepo struct {
	disputes map[string]*Dispute
	songs    map[string]string // song ID -> status
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{disputes: map[string]*Dispute{}, songs: map[string]string{}}
}

func (r *fakeRepo) Create(_ context.Context, dispute *Dispute) error {
	r.disputes[dispute.ID] = dispute
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*Dispute, error) {
	if d, ok := r.disputes[id]; ok {
		clone := *d
		return &clone, nil
	}
	return nil, apperr.NotFound("Dispute")
}

func (r *fakeRepo) Resolve(_ context.Context, disputeID, winnerSongID, loserSongID, resolverID string, resolvedAt time.Time) error {
	existing, ok := r.disputes[disputeID]
	if !ok || existing.Status != StatusOpen {
		return apperr.Unprocessable("Dispute is already resolved")
	}
	r.songs[winnerSongID] = "APPROVED"
	r.songs[loserSongID] = "REJECTED"
	existing.Status = StatusResolved
	existing.WinnerSongID = winnerSongID
	existing.ResolvedBy = resolverID
	existing.ResolvedAt = &resolvedAt
	return nil
}

func (r *fakeRepo) ListOpen(_ context.Context, _ pagination.Params) ([]*Dispute, int, error) {
	var out []*Dispute
	for _, d := range r.disputes {
		if d.Status == StatusOpen {
			out = append(out, d)
		}
	}
	return out, len(out), nil
}

type recordingAuditor struct {
	actions []string
}

func (a *recordingAuditor) Record(_ context.Context, _, action, _, _ string) {
	a.actions = append(a.actions, action)
}

func newTestService() (*Service, *fakeRepo, *recordingAuditor) {
	repo := newFakeRepo()
	auditor := &recordingAuditor{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, auditor, logger), repo, auditor
}

func seedDispute(repo *fakeRepo) *Dispute {
	seeded := &Dispute{
		ID:      "disp-1",
		SongAID: "song-a",
		SongBID: "song-b",
		Reason:  "Both claim the same master",
		Status:  StatusOpen,
	}
	repo.disputes[seeded.ID] = seeded
	repo.songs["song-a"] = "TAKEN_DOWN"
	repo.songs["song-b"] = "TAKEN_DOWN"
	return seeded
}

func TestResolve_WinnerApprovedLoserRejected(t *testing.T) {
	service, repo, auditor := newTestService()
	seedDispute(repo)

	resolved, err := service.Resolve(context.Background(), "admin-1", "disp-1", "song-a")

	require.NoError(t, err)
	assert.Equal(t, StatusResolved, resolved.Status)
	assert.Equal(t, "song-a", resolved.WinnerSongID)
	assert.Equal(t, "APPROVED", repo.songs["song-a"])
	assert.Equal(t, "REJECTED", repo.songs["song-b"])
	assert.Contains(t, auditor.actions, audit.ActionDisputeResolved)
}

func TestResolve_WinnerMustBeAParty(t *testing.T) {
	service, repo, _ := newTestService()
	seedDispute(repo)

	_, err := service.Resolve(context.Background(), "admin-1", "disp-1", "song-unrelated")

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Equal(t, StatusOpen, repo.disputes["disp-1"].Status)
	assert.Equal(t, "TAKEN_DOWN", repo.songs["song-a"])
	assert.Equal(t, "TAKEN_DOWN", repo.songs["song-b"])
}

func TestResolve_IsFinal(t *testing.T) {
	service, repo, _ := newTestService()
	seedDispute(repo)

	_, err := service.Resolve(context.Background(), "admin-1", "disp-1", "song-b")
	require.NoError(t, err)

	_, err = service.Resolve(context.Background(), "admin-2", "disp-1", "song-a")
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
	// The first verdict stands.
	assert.Equal(t, "APPROVED", repo.songs["song-b"])
	assert.Equal(t, "REJECTED", repo.songs["song-a"])
}
