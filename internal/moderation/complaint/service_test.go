// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package complaint

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
	complaints map[string]*Complaint
	songs      map[string]*SongRef
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{complaints: map[string]*Complaint{}, songs: map[string]*SongRef{}}
}

func (r *fakeRepo) File(_ context.Context, filed *Complaint) error {
	song, ok := r.songs[filed.SongID]
	if !ok {
		return apperr.NotFound("Song")
	}
	r.complaints[filed.ID] = filed
	song.Status = "TAKEN_DOWN"
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*Complaint, error) {
	if c, ok := r.complaints[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, apperr.NotFound("Complaint")
}

func (r *fakeRepo) Resolve(_ context.Context, complaintID string, action Action, songStatus string, resolverID string, resolvedAt time.Time) error {
	existing, ok := r.complaints[complaintID]
	if !ok {
		return apperr.NotFound("Complaint")
	}
	song, ok := r.songs[existing.SongID]
	if !ok {
		return apperr.NotFound("Song")
	}
	existing.Status = StatusResolved
	existing.Action = action
	existing.ResolvedBy = resolverID
	existing.ResolvedAt = &resolvedAt
	song.Status = songStatus
	return nil
}

func (r *fakeRepo) GetSongRef(_ context.Context, songID string) (*SongRef, error) {
	if s, ok := r.songs[songID]; ok {
		return s, nil
	}
	return nil, apperr.NotFound("Song")
}

func (r *fakeRepo) ListByReporter(_ context.Context, reporterID string, _ pagination.Params) ([]*Complaint, int, error) {
	var out []*Complaint
	for _, c := range r.complaints {
		if c.ReporterID == reporterID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) ListOpen(_ context.Context, _ pagination.Params) ([]*Complaint, int, error) {
	var out []*Complaint
	for _, c := range r.complaints {
		if c.Status == StatusOpen {
			out = append(out, c)
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

func TestFile_SuspendsSongImmediately(t *testing.T) {
	service, repo, _ := newTestService()
	repo.songs["song-1"] = &SongRef{ID: "song-1", Title: "Glass Harbor", Status: "APPROVED"}

	filed, err := service.File(context.Background(), "listener-1", "song-1", "Stolen master recording")

	require.NoError(t, err)
	assert.Equal(t, StatusOpen, filed.Status)
	// The takedown happens at filing time, before any admin touches it.
	assert.Equal(t, "TAKEN_DOWN", repo.songs["song-1"].Status)
}

func TestFile_UnknownSong(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.File(context.Background(), "listener-1", "missing", "whatever")

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestResolve_RestorePutsSongBack(t *testing.T) {
	service, repo, auditor := newTestService()
	repo.songs["song-1"] = &SongRef{ID: "song-1", Status: "APPROVED"}
	filed, err := service.File(context.Background(), "listener-1", "song-1", "Noise")
	require.NoError(t, err)

	resolved, err := service.Resolve(context.Background(), "admin-1", filed.ID, ActionRestore)

	require.NoError(t, err)
	assert.Equal(t, StatusResolved, resolved.Status)
	assert.Equal(t, ActionRestore, resolved.Action)
	assert.Equal(t, "APPROVED", repo.songs["song-1"].Status)
	assert.Contains(t, auditor.actions, audit.ActionComplaintResolved)
}

func TestResolve_RemoveRejectsSong(t *testing.T) {
	service, repo, _ := newTestService()
	repo.songs["song-1"] = &SongRef{ID: "song-1", Status: "APPROVED"}
	filed, err := service.File(context.Background(), "listener-1", "song-1", "Plagiarism")
	require.NoError(t, err)

	_, err = service.Resolve(context.Background(), "admin-1", filed.ID, ActionRemove)

	require.NoError(t, err)
	assert.Equal(t, "REJECTED", repo.songs["song-1"].Status)
}

func TestResolve_UnknownActionWritesNothing(t *testing.T) {
	service, repo, _ := newTestService()
	repo.songs["song-1"] = &SongRef{ID: "song-1", Status: "APPROVED"}
	filed, err := service.File(context.Background(), "listener-1", "song-1", "Spam")
	require.NoError(t, err)

	_, err = service.Resolve(context.Background(), "admin-1", filed.ID, Action("ESCALATE"))

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Equal(t, StatusOpen, repo.complaints[filed.ID].Status)
	assert.Equal(t, "TAKEN_DOWN", repo.songs["song-1"].Status)
}

func TestResolve_CanCorrectEarlierDecision(t *testing.T) {
	service, repo, _ := newTestService()
	repo.songs["song-1"] = &SongRef{ID: "song-1", Status: "APPROVED"}
	filed, err := service.File(context.Background(), "listener-1", "song-1", "Rights claim")
	require.NoError(t, err)

	_, err = service.Resolve(context.Background(), "admin-1", filed.ID, ActionRemove)
	require.NoError(t, err)

	// A second look restores the song; re-resolution is allowed.
	_, err = service.Resolve(context.Background(), "admin-2", filed.ID, ActionRestore)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", repo.songs["song-1"].Status)
	assert.Equal(t, "admin-2", repo.complaints[filed.ID].ResolvedBy)
}
