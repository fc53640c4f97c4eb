// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package song

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
	"github.com/melodiahq/melodia/pkg/pointer"
	"github.com/melodiahq/melodia/pkg/uuid"
)

type fakeRepo struct {
	songs  map[string]*Song
	albums map[string]*AlbumRef
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{songs: map[string]*Song{}, albums: map[string]*AlbumRef{}}
}

func (r *fakeRepo) Create(_ context.Context, song *Song) error {
	r.songs[song.ID] = song
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*Song, error) {
	if s, ok := r.songs[id]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, apperr.NotFound("Song")
}

func (r *fakeRepo) Update(_ context.Context, song *Song) error {
	r.songs[song.ID] = song
	return nil
}

func (r *fakeRepo) SetStatus(_ context.Context, id string, status Status, rejectReason string, publishedAt *time.Time) error {
	s, ok := r.songs[id]
	if !ok {
		return apperr.NotFound("Song")
	}
	s.Status = status
	s.RejectReason = rejectReason
	if publishedAt != nil {
		s.PublishedAt = publishedAt
	}
	return nil
}

func (r *fakeRepo) ListByArtist(_ context.Context, artistID string, _ pagination.Params) ([]*Song, int, error) {
	var out []*Song
	for _, s := range r.songs {
		if s.ArtistID == artistID {
			out = append(out, s)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) ListApprovedByArtist(_ context.Context, artistID string, _ pagination.Params) ([]*Song, int, error) {
	var out []*Song
	for _, s := range r.songs {
		if s.ArtistID == artistID && s.Status == StatusApproved {
			out = append(out, s)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) ListPending(_ context.Context, scope string, _ pagination.Params) ([]*Song, int, error) {
	var out []*Song
	for _, s := range r.songs {
		if s.Status != StatusPending {
			continue
		}
		if scope == PendingScopeStandalone && s.AlbumID != nil {
			continue
		}
		if scope == PendingScopeAlbum && s.AlbumID == nil {
			continue
		}
		out = append(out, s)
	}
	return out, len(out), nil
}

func (r *fakeRepo) ListByAlbum(_ context.Context, albumID string) ([]*Song, error) {
	var out []*Song
	for _, s := range r.songs {
		if s.AlbumID != nil && *s.AlbumID == albumID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetAlbumRef(_ context.Context, albumID string) (*AlbumRef, error) {
	if ref, ok := r.albums[albumID]; ok {
		return ref, nil
	}
	return nil, apperr.NotFound("Album")
}

type fakeDirectory struct {
	approved map[string]bool
}

func (d *fakeDirectory) IsApprovedArtist(_ context.Context, userID string) (bool, error) {
	return d.approved[userID], nil
}

type recordingAuditor struct {
	actions []string
}

func (a *recordingAuditor) Record(_ context.Context, _, action, _, _ string) {
	a.actions = append(a.actions, action)
}

func newTestService(approvedArtists ...string) (*Service, *fakeRepo, *recordingAuditor) {
	repo := newFakeRepo()
	directory := &fakeDirectory{approved: map[string]bool{}}
	for _, id := range approvedArtists {
		directory.approved[id] = true
	}
	auditor := &recordingAuditor{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, directory, auditor, logger), repo, auditor
}

func draftInput() CreateInput {
	return CreateInput{
		Title:           "Glass Harbor",
		Genre:           "ambient",
		Lyrics:          "salt on the window / the tide pulls the light away",
		DurationSeconds: 212,
		AudioKey:        "audio/glass-harbor.flac",
	}
}

func TestCreate_RequiresVerifiedArtist(t *testing.T) {
	service, _, _ := newTestService() // no approved artists

	_, err := service.Create(context.Background(), "member-1", draftInput())

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestCreate_StartsAsDraft(t *testing.T) {
	service, _, _ := newTestService("artist-1")

	created, err := service.Create(context.Background(), "artist-1", draftInput())

	require.NoError(t, err)
	assert.Equal(t, StatusDraft, created.Status)
	assert.Nil(t, created.PublishedAt)
}

func TestCreate_RejectsForeignAlbum(t *testing.T) {
	service, repo, _ := newTestService("artist-1")
	repo.albums["alb-1"] = &AlbumRef{ID: "alb-1", ArtistID: "artist-2", Status: "DRAFT"}

	input := draftInput()
	input.AlbumID = pointer.To("alb-1")
	_, err := service.Create(context.Background(), "artist-1", input)

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestCreate_RejectsSubmittedAlbum(t *testing.T) {
	service, repo, _ := newTestService("artist-1")
	repo.albums["alb-1"] = &AlbumRef{ID: "alb-1", ArtistID: "artist-1", Status: "PENDING"}

	input := draftInput()
	input.AlbumID = pointer.To("alb-1")
	_, err := service.Create(context.Background(), "artist-1", input)

	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
}

func TestSubmit_StandaloneDraftMovesToPending(t *testing.T) {
	service, _, _ := newTestService("artist-1")

	created, err := service.Create(context.Background(), "artist-1", draftInput())
	require.NoError(t, err)

	submitted, err := service.Submit(context.Background(), "artist-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, submitted.Status)
}

func TestSubmit_RejectsAlbumLinkedSong(t *testing.T) {
	service, repo, _ := newTestService("artist-1")
	repo.albums["alb-1"] = &AlbumRef{ID: "alb-1", ArtistID: "artist-1", Status: "DRAFT"}

	input := draftInput()
	input.AlbumID = pointer.To("alb-1")
	created, err := service.Create(context.Background(), "artist-1", input)
	require.NoError(t, err)

	_, err = service.Submit(context.Background(), "artist-1", created.ID)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestSubmit_OwnerOnly(t *testing.T) {
	service, _, _ := newTestService("artist-1")

	created, err := service.Create(context.Background(), "artist-1", draftInput())
	require.NoError(t, err)

	_, err = service.Submit(context.Background(), "artist-2", created.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

func TestUpdate_ArtistBlockedAfterModeration(t *testing.T) {
	service, repo, _ := newTestService("artist-1")

	created, err := service.Create(context.Background(), "artist-1", draftInput())
	require.NoError(t, err)
	repo.songs[created.ID].Status = StatusApproved

	_, err = service.Update(context.Background(), "artist-1", false, created.ID, UpdateInput{
		Title: pointer.To("New Title"),
	})
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)

	// An admin can still edit.
	updated, err := service.Update(context.Background(), "admin-1", true, created.ID, UpdateInput{
		Title: pointer.To("New Title"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
}

func TestApprove_SetsPublishedAtOnce(t *testing.T) {
	service, repo, auditor := newTestService("artist-1")

	created, err := service.Create(context.Background(), "artist-1", draftInput())
	require.NoError(t, err)

	approved, err := service.Approve(context.Background(), "admin-1", created.ID)
	require.NoError(t, err)
	require.NotNil(t, approved.PublishedAt)
	first := *approved.PublishedAt
	assert.Contains(t, auditor.actions, audit.ActionSongApproved)

	// Re-approving (e.g. restore after takedown) keeps the original date.
	repo.songs[created.ID].Status = StatusTakenDown
	restored, err := service.Approve(context.Background(), "admin-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, first, *restored.PublishedAt)
}

func TestReject_StoresReason(t *testing.T) {
	service, _, auditor := newTestService("artist-1")

	created, err := service.Create(context.Background(), "artist-1", draftInput())
	require.NoError(t, err)

	rejected, err := service.Reject(context.Background(), "admin-1", created.ID, "Rights unverified")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
	assert.Equal(t, "Rights unverified", rejected.RejectReason)
	assert.Contains(t, auditor.actions, audit.ActionSongRejected)
}

func TestGet_HidesDraftsFromStrangers(t *testing.T) {
	service, _, _ := newTestService("artist-1")

	created, err := service.Create(context.Background(), "artist-1", draftInput())
	require.NoError(t, err)

	_, err = service.Get(context.Background(), created.ID, "stranger", false)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	got, err := service.Get(context.Background(), created.ID, "artist-1", false)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

// Guard against fake drift: IDs must be real UUIDs like production rows.
func TestCreate_AssignsUUID(t *testing.T) {
	service, _, _ := newTestService("artist-1")

	created, err := service.Create(context.Background(), "artist-1", draftInput())
	require.NoError(t, err)
	assert.True(t, uuid.IsValid(created.ID))
}

func TestListPending_ScopeFilters(t *testing.T) {
	service, repo, _ := newTestService("artist-1")

	repo.songs["solo"] = &Song{ID: "solo", ArtistID: "artist-1", Status: StatusPending}
	repo.songs["track"] = &Song{ID: "track", ArtistID: "artist-1", AlbumID: pointer.To("alb-1"), Status: StatusPending}

	standalone, total, err := service.ListPending(context.Background(), PendingScopeStandalone, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, standalone, 1)
	assert.Equal(t, "solo", standalone[0].ID)

	_, _, err = service.ListPending(context.Background(), "drafts", pagination.Params{Page: 1, Limit: 20})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
