// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package favorite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/pkg/pagination"
)

type fakeRepo struct {
	favorites map[string]map[string]bool // user ID -> song IDs
	songs     map[string]*SongSummary
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		favorites: map[string]map[string]bool{},
		songs:     map[string]*SongSummary{},
	}
}

func (r *fakeRepo) Add(_ context.Context, userID, songID string) error {
	if r.favorites[userID] == nil {
		r.favorites[userID] = map[string]bool{}
	}
	r.favorites[userID][songID] = true
	return nil
}

func (r *fakeRepo) Remove(_ context.Context, userID, songID string) error {
	delete(r.favorites[userID], songID)
	return nil
}

func (r *fakeRepo) ListSongs(_ context.Context, userID string, _ pagination.Params) ([]*SongSummary, int, error) {
	var out []*SongSummary
	for songID := range r.favorites[userID] {
		if summary, ok := r.songs[songID]; ok {
			out = append(out, summary)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) SongExists(_ context.Context, songID string) (bool, error) {
	_, ok := r.songs[songID]
	return ok, nil
}

func TestAdd_UnknownSong(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	err := service.Add(context.Background(), "user-1", "ghost-song")

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.Empty(t, repo.favorites["user-1"])
}

func TestAdd_DuplicateIsNoop(t *testing.T) {
	repo := newFakeRepo()
	repo.songs["song-1"] = &SongSummary{ID: "song-1", Title: "Afterglow"}
	service := NewService(repo)

	require.NoError(t, service.Add(context.Background(), "user-1", "song-1"))
	require.NoError(t, service.Add(context.Background(), "user-1", "song-1"))

	songs, total, err := service.List(context.Background(), "user-1", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, songs, 1)
	assert.Equal(t, "Afterglow", songs[0].Title)
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	assert.NoError(t, service.Remove(context.Background(), "user-1", "never-favorited"))
}
