// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package streaming

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/internal/platform/dberr"
)

// PostgresRepository implements Repository using pgx over streaming.stream.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL implementation of Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Append(ctx context.Context, stream *Stream) error {
	const query = `
		INSERT INTO streaming.stream (id, songid, userid, durationseconds, playedat)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := repository.pool.Exec(ctx, query,
		stream.ID,
		stream.SongID,
		stream.UserID,
		stream.DurationSeconds,
		stream.PlayedAt,
	)

	return dberr.Wrap(err, "append_stream")
}

func (repository *PostgresRepository) GetSongRef(ctx context.Context, songID string) (*SongRef, error) {
	const query = "SELECT id, artistid, audiokey, status FROM catalog.song WHERE id = $1"

	ref := &SongRef{}
	err := repository.pool.QueryRow(ctx, query, songID).Scan(&ref.ID, &ref.ArtistID, &ref.AudioKey, &ref.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Song")
		}
		return nil, dberr.Wrap(err, "find_song_ref")
	}
	return ref, nil
}

func (repository *PostgresRepository) TotalForMonth(ctx context.Context, month string) (int, error) {
	const query = `
		SELECT count(*) FROM streaming.stream
		WHERE to_char(playedat, 'YYYY-MM') = $1`

	var total int
	if err := repository.pool.QueryRow(ctx, query, month).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_month_streams")
	}
	return total, nil
}

func (repository *PostgresRepository) PerArtistForMonth(ctx context.Context, month string) ([]ArtistStreams, error) {
	const query = `
		SELECT song.artistid, count(*)
		FROM streaming.stream stream
		JOIN catalog.song song ON song.id = stream.songid
		WHERE to_char(stream.playedat, 'YYYY-MM') = $1
		GROUP BY song.artistid`

	rows, err := repository.pool.Query(ctx, query, month)
	if err != nil {
		return nil, dberr.Wrap(err, "count_artist_streams")
	}
	defer rows.Close()

	var counts []ArtistStreams
	for rows.Next() {
		var entry ArtistStreams
		if err := rows.Scan(&entry.ArtistID, &entry.Streams); err != nil {
			return nil, dberr.Wrap(err, "scan_artist_streams")
		}
		counts = append(counts, entry)
	}
	return counts, nil
}
