// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package album

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodiahq/melodia/internal/catalog/song"
	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/internal/platform/audit"
	"github.com/melodiahq/melodia/pkg/pagination"
	"github.com/melodiahq/melodia/pkg/pointer"
)

type fakeRepo struct {
	albums map[string]*Album
	songs  []*song.Song
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{albums: map[string]*Album{}}
}

func (r *fakeRepo) Create(_ context.Context, album *Album) error {
	r.albums[album.ID] = album
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*Album, error) {
	if a, ok := r.albums[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, apperr.NotFound("Album")
}

func (r *fakeRepo) Update(_ context.Context, album *Album) error {
	r.albums[album.ID] = album
	return nil
}

func (r *fakeRepo) SetStatus(_ context.Context, id string, status Status, rejectReason string) error {
	a, ok := r.albums[id]
	if !ok {
		return apperr.NotFound("Album")
	}
	a.Status = status
	a.RejectReason = rejectReason
	return nil
}

func (r *fakeRepo) SubmitCascade(_ context.Context, albumID string) (int, error) {
	moved := 0
	for _, track := range r.songs {
		if track.AlbumID != nil && *track.AlbumID == albumID {
			track.Status = song.StatusPending
			moved++
		}
	}
	if moved == 0 {
		return 0, nil
	}
	r.albums[albumID].Status = StatusPending
	return moved, nil
}

func (r *fakeRepo) ListByArtist(_ context.Context, artistID string, _ pagination.Params) ([]*Album, int, error) {
	var out []*Album
	for _, a := range r.albums {
		if a.ArtistID == artistID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) ListApprovedByArtist(_ context.Context, artistID string, _ pagination.Params) ([]*Album, int, error) {
	var out []*Album
	for _, a := range r.albums {
		if a.ArtistID == artistID && a.Status == StatusApproved {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) ListPending(_ context.Context, _ pagination.Params) ([]*Album, int, error) {
	var out []*Album
	for _, a := range r.albums {
		if a.Status == StatusPending {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

// fakeTracks reads from the same slice the repo cascades over.
type fakeTracks struct {
	repo *fakeRepo
}

func (t *fakeTracks) ListByAlbum(_ context.Context, albumID string) ([]*song.Song, error) {
	var out []*song.Song
	for _, track := range t.repo.songs {
		if track.AlbumID != nil && *track.AlbumID == albumID {
			out = append(out, track)
		}
	}
	return out, nil
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
	return NewService(repo, directory, &fakeTracks{repo: repo}, auditor, logger), repo, auditor
}

func seedDraftAlbum(repo *fakeRepo, artistID string, songCount int) *Album {
	created := &Album{
		ID:          "alb-1",
		Title:       "Night Circuit",
		ArtistID:    artistID,
		ReleaseType: ReleaseAlbum,
		Status:      StatusDraft,
	}
	repo.albums[created.ID] = created
	for i := 0; i < songCount; i++ {
		repo.songs = append(repo.songs, &song.Song{
			ID:       "track-" + string(rune('a'+i)),
			ArtistID: artistID,
			AlbumID:  pointer.To(created.ID),
			Status:   song.StatusDraft,
		})
	}
	return created
}

func TestCreate_RequiresVerifiedArtist(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Create(context.Background(), "member-1", CreateInput{Title: "Demo"})

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestCreate_DefaultsReleaseType(t *testing.T) {
	service, _, _ := newTestService("artist-1")

	created, err := service.Create(context.Background(), "artist-1", CreateInput{Title: "Demo"})

	require.NoError(t, err)
	assert.Equal(t, StatusDraft, created.Status)
	assert.Equal(t, ReleaseAlbum, created.ReleaseType)
}

func TestSubmit_CascadesToAllSongs(t *testing.T) {
	service, repo, _ := newTestService("artist-1")
	seedDraftAlbum(repo, "artist-1", 3)

	submitted, err := service.Submit(context.Background(), "artist-1", "alb-1")

	require.NoError(t, err)
	assert.Equal(t, StatusPending, submitted.Status)
	assert.Equal(t, StatusPending, repo.albums["alb-1"].Status)
	for _, track := range repo.songs {
		assert.Equal(t, song.StatusPending, track.Status)
	}
}

func TestSubmit_EmptyAlbumFailsAndChangesNothing(t *testing.T) {
	service, repo, _ := newTestService("artist-1")
	seedDraftAlbum(repo, "artist-1", 0)

	_, err := service.Submit(context.Background(), "artist-1", "alb-1")

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Equal(t, StatusDraft, repo.albums["alb-1"].Status)
}

func TestSubmit_OwnerOnly(t *testing.T) {
	service, repo, _ := newTestService("artist-1")
	seedDraftAlbum(repo, "artist-1", 1)

	_, err := service.Submit(context.Background(), "artist-2", "alb-1")

	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

func TestSubmitForArtist_IsAudited(t *testing.T) {
	service, repo, auditor := newTestService("artist-1")
	seedDraftAlbum(repo, "artist-1", 2)

	_, err := service.SubmitForArtist(context.Background(), "admin-1", "alb-1")

	require.NoError(t, err)
	assert.Contains(t, auditor.actions, audit.ActionAlbumSubmitted)
}

func TestUpdate_DraftOnly(t *testing.T) {
	service, repo, _ := newTestService("artist-1")
	seedDraftAlbum(repo, "artist-1", 1)

	updated, err := service.Update(context.Background(), "artist-1", false, "alb-1", UpdateInput{
		Title: pointer.To("Night Circuit (Deluxe)"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Night Circuit (Deluxe)", updated.Title)

	repo.albums["alb-1"].Status = StatusPending

	_, err = service.Update(context.Background(), "artist-1", false, "alb-1", UpdateInput{
		Title: pointer.To("Renamed"),
	})
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
}

func TestReject_PersistsReason(t *testing.T) {
	service, repo, auditor := newTestService("artist-1")
	seedDraftAlbum(repo, "artist-1", 1)

	rejected, err := service.Reject(context.Background(), "admin-1", "alb-1", "Incomplete metadata")

	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
	assert.Equal(t, "Incomplete metadata", rejected.RejectReason)
	assert.Equal(t, "Incomplete metadata", repo.albums["alb-1"].RejectReason)
	assert.Contains(t, auditor.actions, audit.ActionAlbumRejected)
}

func TestTracks_ListenersOnlySeeApproved(t *testing.T) {
	service, repo, _ := newTestService("artist-1")
	seedDraftAlbum(repo, "artist-1", 2)
	repo.albums["alb-1"].Status = StatusApproved
	repo.songs[0].Status = song.StatusApproved

	visible, err := service.Tracks(context.Background(), "alb-1", "listener-1", false)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	all, err := service.Tracks(context.Background(), "alb-1", "artist-1", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
