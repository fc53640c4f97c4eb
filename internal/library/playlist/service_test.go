// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package playlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/pkg/pagination"
	"github.com/melodiahq/melodia/pkg/pointer"
)

type fakeRepo struct {
	playlists map[string]*Playlist
	members   map[string]map[string]bool // playlist ID -> song IDs
	songs     map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		playlists: map[string]*Playlist{},
		members:   map[string]map[string]bool{},
		songs:     map[string]bool{},
	}
}

func (r *fakeRepo) Create(_ context.Context, p *Playlist) error {
	r.playlists[p.ID] = p
	r.members[p.ID] = map[string]bool{}
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*Playlist, error) {
	if p, ok := r.playlists[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, apperr.NotFound("Playlist")
}

func (r *fakeRepo) Update(_ context.Context, p *Playlist) error {
	r.playlists[p.ID] = p
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	delete(r.playlists, id)
	delete(r.members, id)
	return nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, ownerID string, _ pagination.Params) ([]*Playlist, int, error) {
	var out []*Playlist
	for _, p := range r.playlists {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) ListTracks(_ context.Context, playlistID string) ([]*Track, error) {
	var out []*Track
	for songID := range r.members[playlistID] {
		out = append(out, &Track{SongID: songID})
	}
	return out, nil
}

func (r *fakeRepo) AddSong(_ context.Context, playlistID, songID string) error {
	r.members[playlistID][songID] = true
	return nil
}

func (r *fakeRepo) RemoveSong(_ context.Context, playlistID, songID string) error {
	delete(r.members[playlistID], songID)
	return nil
}

func (r *fakeRepo) SongExists(_ context.Context, songID string) (bool, error) {
	return r.songs[songID], nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo), repo
}

func TestPlaylist_OwnerOnlyAccess(t *testing.T) {
	service, _ := newTestService()

	created, err := service.Create(context.Background(), "owner-1", "Late Night", "")
	require.NoError(t, err)

	_, err = service.Get(context.Background(), "someone-else", created.ID)
	require.Error(t, err)
	// Other users cannot even learn the playlist exists.
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.Update(context.Background(), "someone-else", created.ID, UpdateInput{
		Name: pointer.To("Hijacked"),
	})
	require.Error(t, err)
}

func TestAddSong_DuplicateIsNoop(t *testing.T) {
	service, repo := newTestService()
	repo.songs["song-1"] = true

	created, err := service.Create(context.Background(), "owner-1", "Late Night", "")
	require.NoError(t, err)

	require.NoError(t, service.AddSong(context.Background(), "owner-1", created.ID, "song-1"))
	require.NoError(t, service.AddSong(context.Background(), "owner-1", created.ID, "song-1"))

	detail, err := service.Get(context.Background(), "owner-1", created.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Songs, 1)
}

func TestAddSong_UnknownSong(t *testing.T) {
	service, _ := newTestService()

	created, err := service.Create(context.Background(), "owner-1", "Late Night", "")
	require.NoError(t, err)

	err = service.AddSong(context.Background(), "owner-1", created.ID, "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestRemoveSong_AbsentIsNoop(t *testing.T) {
	service, repo := newTestService()
	repo.songs["song-1"] = true

	created, err := service.Create(context.Background(), "owner-1", "Late Night", "")
	require.NoError(t, err)

	require.NoError(t, service.RemoveSong(context.Background(), "owner-1", created.ID, "song-1"))
}
