// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package song

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/internal/platform/dberr"
	"github.com/melodiahq/melodia/pkg/pagination"
)

const songColumns = `id, title, artistid, albumid, tracknumber, COALESCE(genre, ''),
	COALESCE(language, ''), lyrics, COALESCE(description, ''), durationseconds,
	audiokey, COALESCE(coverkey, ''), status, COALESCE(rejectreason, ''), publishedat, createdat, updatedat`

// PostgresRepository implements Repository using pgx over catalog.song.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL implementation of Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(ctx context.Context, song *Song) error {
	const query = `
		INSERT INTO catalog.song (
			id, title, artistid, albumid, tracknumber, genre, language, lyrics,
			description, durationseconds, audiokey, coverkey, status, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8,
			NULLIF($9, ''), $10, $11, NULLIF($12, ''), $13, $14, $15)`

	now := time.Now()
	song.CreatedAt = now
	song.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		song.ID,
		song.Title,
		song.ArtistID,
		song.AlbumID,
		song.TrackNumber,
		song.Genre,
		song.Language,
		song.Lyrics,
		song.Description,
		song.DurationSeconds,
		song.AudioKey,
		song.CoverKey,
		song.Status,
		song.CreatedAt,
		song.UpdatedAt,
	)

	return dberr.Wrap(err, "create_song")
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Song, error) {
	query := "SELECT " + songColumns + " FROM catalog.song WHERE id = $1"

	result, err := scanSong(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Song")
		}
		return nil, dberr.Wrap(err, "find_song")
	}
	return result, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, song *Song) error {
	const query = `
		UPDATE catalog.song
		SET title = $2, genre = NULLIF($3, ''), language = NULLIF($4, ''), lyrics = $5,
			description = NULLIF($6, ''), durationseconds = $7, audiokey = $8,
			coverkey = NULLIF($9, ''), albumid = $10, tracknumber = $11, updatedat = $12
		WHERE id = $1`

	song.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(ctx, query,
		song.ID,
		song.Title,
		song.Genre,
		song.Language,
		song.Lyrics,
		song.Description,
		song.DurationSeconds,
		song.AudioKey,
		song.CoverKey,
		song.AlbumID,
		song.TrackNumber,
		song.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "update_song")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Song")
	}
	return nil
}

func (repository *PostgresRepository) SetStatus(ctx context.Context, id string, status Status, rejectReason string, publishedAt *time.Time) error {
	const query = `
		UPDATE catalog.song
		SET status = $2, rejectreason = NULLIF($3, ''),
			publishedat = COALESCE($4, publishedat), updatedat = $5
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, id, status, rejectReason, publishedAt, time.Now())
	if err != nil {
		return dberr.Wrap(err, "set_song_status")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Song")
	}
	return nil
}

func (repository *PostgresRepository) ListByArtist(ctx context.Context, artistID string, params pagination.Params) ([]*Song, int, error) {
	return repository.list(ctx,
		"artistid = $1", "createdat DESC",
		[]any{artistID}, params,
	)
}

func (repository *PostgresRepository) ListApprovedByArtist(ctx context.Context, artistID string, params pagination.Params) ([]*Song, int, error) {
	return repository.list(ctx,
		"artistid = $1 AND status = 'APPROVED'", "publishedat DESC",
		[]any{artistID}, params,
	)
}

func (repository *PostgresRepository) ListPending(ctx context.Context, scope string, params pagination.Params) ([]*Song, int, error) {
	predicate := "status = 'PENDING'"
	switch scope {
	case PendingScopeStandalone:
		predicate += " AND albumid IS NULL"
	case PendingScopeAlbum:
		predicate += " AND albumid IS NOT NULL"
	}

	return repository.list(ctx,
		predicate, "updatedat ASC",
		nil, params,
	)
}

// list runs the shared count+page query pair for a filter predicate.
func (repository *PostgresRepository) list(ctx context.Context, predicate, order string, args []any, params pagination.Params) ([]*Song, int, error) {
	countQuery := "SELECT count(*) FROM catalog.song WHERE " + predicate

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_songs")
	}

	limitPos := len(args) + 1
	offsetPos := len(args) + 2
	query := "SELECT " + songColumns + " FROM catalog.song WHERE " + predicate +
		" ORDER BY " + order +
		" LIMIT $" + strconv.Itoa(limitPos) + " OFFSET $" + strconv.Itoa(offsetPos)

	pageArgs := append(append([]any{}, args...), params.Limit, params.Offset())
	rows, err := repository.pool.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_songs")
	}
	defer rows.Close()

	songs, err := collectSongs(rows)
	if err != nil {
		return nil, 0, err
	}
	return songs, total, nil
}

func (repository *PostgresRepository) ListByAlbum(ctx context.Context, albumID string) ([]*Song, error) {
	query := "SELECT " + songColumns + " FROM catalog.song WHERE albumid = $1 ORDER BY createdat ASC"

	rows, err := repository.pool.Query(ctx, query, albumID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_album_songs")
	}
	defer rows.Close()

	return collectSongs(rows)
}

func (repository *PostgresRepository) GetAlbumRef(ctx context.Context, albumID string) (*AlbumRef, error) {
	const query = "SELECT id, artistid, status FROM catalog.album WHERE id = $1"

	ref := &AlbumRef{}
	err := repository.pool.QueryRow(ctx, query, albumID).Scan(&ref.ID, &ref.ArtistID, &ref.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Album")
		}
		return nil, dberr.Wrap(err, "find_album_ref")
	}
	return ref, nil
}

func scanSong(row pgx.Row) (*Song, error) {
	song := &Song{}
	err := row.Scan(
		&song.ID,
		&song.Title,
		&song.ArtistID,
		&song.AlbumID,
		&song.TrackNumber,
		&song.Genre,
		&song.Language,
		&song.Lyrics,
		&song.Description,
		&song.DurationSeconds,
		&song.AudioKey,
		&song.CoverKey,
		&song.Status,
		&song.RejectReason,
		&song.PublishedAt,
		&song.CreatedAt,
		&song.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return song, nil
}

func collectSongs(rows pgx.Rows) ([]*Song, error) {
	var songs []*Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_song")
		}
		songs = append(songs, song)
	}
	return songs, nil
}
