// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package streaming

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodiahq/melodia/internal/platform/apperr"
)

type fakeRepo struct {
	songs   map[string]*SongRef
	streams []*Stream
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{songs: map[string]*SongRef{}}
}

func (r *fakeRepo) Append(_ context.Context, stream *Stream) error {
	r.streams = append(r.streams, stream)
	return nil
}

func (r *fakeRepo) GetSongRef(_ context.Context, songID string) (*SongRef, error) {
	if s, ok := r.songs[songID]; ok {
		return s, nil
	}
	return nil, apperr.NotFound("Song")
}

func (r *fakeRepo) TotalForMonth(_ context.Context, month string) (int, error) {
	total := 0
	for _, s := range r.streams {
		if s.PlayedAt.Format("2006-01") == month {
			total++
		}
	}
	return total, nil
}

func (r *fakeRepo) PerArtistForMonth(_ context.Context, month string) ([]ArtistStreams, error) {
	byArtist := map[string]int{}
	for _, s := range r.streams {
		if s.PlayedAt.Format("2006-01") == month {
			byArtist[r.songs[s.SongID].ArtistID]++
		}
	}
	var out []ArtistStreams
	for artistID, count := range byArtist {
		out = append(out, ArtistStreams{ArtistID: artistID, Streams: count})
	}
	return out, nil
}

type fakeRecent struct {
	plays map[string][]RecentPlay
}

func (r *fakeRecent) Add(_ context.Context, userID, songID string, playedAt time.Time) error {
	r.plays[userID] = append([]RecentPlay{{SongID: songID, PlayedAt: playedAt}}, r.plays[userID]...)
	return nil
}

func (r *fakeRecent) List(_ context.Context, userID string) ([]RecentPlay, error) {
	return r.plays[userID], nil
}

type fakeSubscriptions struct {
	active map[string]bool
}

func (s *fakeSubscriptions) HasActive(_ context.Context, userID string) (bool, error) {
	return s.active[userID], nil
}

type fakePresigner struct{}

func (p *fakePresigner) PresignedGetURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://media.test/" + key + "?signed", nil
}

func newTestService(subscribers ...string) (*Service, *fakeRepo, *fakeRecent) {
	repo := newFakeRepo()
	recent := &fakeRecent{plays: map[string][]RecentPlay{}}
	subs := &fakeSubscriptions{active: map[string]bool{}}
	for _, id := range subscribers {
		subs.active[id] = true
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, recent, subs, &fakePresigner{}, 30, logger), repo, recent
}

func TestStreamURL_RequiresApprovedSong(t *testing.T) {
	service, repo, _ := newTestService("listener-1")
	repo.songs["song-1"] = &SongRef{ID: "song-1", AudioKey: "audio/a.m4a", Status: "PENDING"}

	_, err := service.StreamURL(context.Background(), "listener-1", "song-1")

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestStreamURL_RequiresSubscription(t *testing.T) {
	service, repo, _ := newTestService()
	repo.songs["song-1"] = &SongRef{ID: "song-1", AudioKey: "audio/a.m4a", Status: "APPROVED"}

	_, err := service.StreamURL(context.Background(), "freeloader", "song-1")

	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

func TestStreamURL_SignsAudioKey(t *testing.T) {
	service, repo, _ := newTestService("listener-1")
	repo.songs["song-1"] = &SongRef{ID: "song-1", AudioKey: "audio/a.m4a", Status: "APPROVED"}

	result, err := service.StreamURL(context.Background(), "listener-1", "song-1")

	require.NoError(t, err)
	assert.Equal(t, "https://media.test/audio/a.m4a?signed", result.URL)
	assert.True(t, result.ExpiresAt.After(time.Now()))
}

func TestLogStream_BelowFloorLeavesNoTrace(t *testing.T) {
	service, repo, recent := newTestService("listener-1")
	repo.songs["song-1"] = &SongRef{ID: "song-1", ArtistID: "artist-1", Status: "APPROVED"}

	err := service.LogStream(context.Background(), "listener-1", "song-1", 29)

	require.NoError(t, err)
	assert.Empty(t, repo.streams)
	assert.Empty(t, recent.plays["listener-1"])
}

func TestLogStream_AtFloorCountsEverywhere(t *testing.T) {
	service, repo, recent := newTestService("listener-1")
	repo.songs["song-1"] = &SongRef{ID: "song-1", ArtistID: "artist-1", Status: "APPROVED"}

	err := service.LogStream(context.Background(), "listener-1", "song-1", 30)

	require.NoError(t, err)
	require.Len(t, repo.streams, 1)
	assert.Equal(t, 30, repo.streams[0].DurationSeconds)
	require.Len(t, recent.plays["listener-1"], 1)
	assert.Equal(t, "song-1", recent.plays["listener-1"][0].SongID)
}

func TestLogStream_UnknownSong(t *testing.T) {
	service, _, _ := newTestService("listener-1")

	err := service.LogStream(context.Background(), "listener-1", "missing", 120)

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestMonthAggregates(t *testing.T) {
	service, repo, _ := newTestService("listener-1")
	repo.songs["song-1"] = &SongRef{ID: "song-1", ArtistID: "artist-1", Status: "APPROVED"}
	repo.songs["song-2"] = &SongRef{ID: "song-2", ArtistID: "artist-2", Status: "APPROVED"}

	for i := 0; i < 3; i++ {
		require.NoError(t, service.LogStream(context.Background(), "listener-1", "song-1", 45))
	}
	require.NoError(t, service.LogStream(context.Background(), "listener-1", "song-2", 45))

	month := time.Now().Format("2006-01")
	total, err := service.TotalForMonth(context.Background(), month)
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	perArtist, err := service.PerArtistForMonth(context.Background(), month)
	require.NoError(t, err)
	assert.Len(t, perArtist, 2)
}
