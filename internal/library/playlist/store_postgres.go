// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package playlist

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/internal/platform/dberr"
	"github.com/melodiahq/melodia/pkg/pagination"
)

// PostgresRepository implements Repository using pgx over the library
// schema.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL implementation of Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(ctx context.Context, playlist *Playlist) error {
	const query = `
		INSERT INTO library.playlist (id, ownerid, name, description, createdat, updatedat)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`

	now := time.Now()
	playlist.CreatedAt = now
	playlist.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		playlist.ID,
		playlist.OwnerID,
		playlist.Name,
		playlist.Description,
		playlist.CreatedAt,
		playlist.UpdatedAt,
	)

	return dberr.Wrap(err, "create_playlist")
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Playlist, error) {
	const query = `
		SELECT id, ownerid, name, COALESCE(description, ''), createdat, updatedat
		FROM library.playlist WHERE id = $1`

	result := &Playlist{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.OwnerID,
		&result.Name,
		&result.Description,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Playlist")
		}
		return nil, dberr.Wrap(err, "find_playlist")
	}
	return result, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, playlist *Playlist) error {
	const query = `
		UPDATE library.playlist
		SET name = $2, description = NULLIF($3, ''), updatedat = $4
		WHERE id = $1`

	playlist.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(ctx, query,
		playlist.ID,
		playlist.Name,
		playlist.Description,
		playlist.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_playlist")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Playlist")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	// Membership rows go with the playlist via ON DELETE CASCADE.
	const query = `DELETE FROM library.playlist WHERE id = $1`

	_, err := repository.pool.Exec(ctx, query, id)
	return dberr.Wrap(err, "delete_playlist")
}

func (repository *PostgresRepository) ListByOwner(ctx context.Context, ownerID string, params pagination.Params) ([]*Playlist, int, error) {
	const countQuery = `SELECT count(*) FROM library.playlist WHERE ownerid = $1`

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_playlists")
	}

	const query = `
		SELECT id, ownerid, name, COALESCE(description, ''), createdat, updatedat
		FROM library.playlist WHERE ownerid = $1
		ORDER BY updatedat DESC LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(ctx, query, ownerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_playlists")
	}
	defer rows.Close()

	var playlists []*Playlist
	for rows.Next() {
		result := &Playlist{}
		err := rows.Scan(
			&result.ID,
			&result.OwnerID,
			&result.Name,
			&result.Description,
			&result.CreatedAt,
			&result.UpdatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_playlist")
		}
		playlists = append(playlists, result)
	}
	return playlists, total, nil
}

func (repository *PostgresRepository) ListTracks(ctx context.Context, playlistID string) ([]*Track, error) {
	const query = `
		SELECT song.id, song.title, song.artistid, song.durationseconds, song.status, entry.addedat
		FROM library.playlistsong entry
		JOIN catalog.song song ON song.id = entry.songid
		WHERE entry.playlistid = $1
		ORDER BY entry.addedat ASC`

	rows, err := repository.pool.Query(ctx, query, playlistID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_playlist_tracks")
	}
	defer rows.Close()

	var tracks []*Track
	for rows.Next() {
		track := &Track{}
		err := rows.Scan(
			&track.SongID,
			&track.Title,
			&track.ArtistID,
			&track.DurationSeconds,
			&track.Status,
			&track.AddedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_playlist_track")
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

func (repository *PostgresRepository) AddSong(ctx context.Context, playlistID, songID string) error {
	const query = `
		INSERT INTO library.playlistsong (playlistid, songid, addedat)
		VALUES ($1, $2, $3)
		ON CONFLICT (playlistid, songid) DO NOTHING`

	_, err := repository.pool.Exec(ctx, query, playlistID, songID, time.Now())
	return dberr.Wrap(err, "add_playlist_song")
}

func (repository *PostgresRepository) RemoveSong(ctx context.Context, playlistID, songID string) error {
	const query = `DELETE FROM library.playlistsong WHERE playlistid = $1 AND songid = $2`

	_, err := repository.pool.Exec(ctx, query, playlistID, songID)
	return dberr.Wrap(err, "remove_playlist_song")
}

func (repository *PostgresRepository) SongExists(ctx context.Context, songID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM catalog.song WHERE id = $1)`

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, songID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_song_exists")
	}
	return exists, nil
}
