// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package favorite

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/melodiahq/melodia/internal/platform/dberr"
	"github.com/melodiahq/melodia/pkg/pagination"
)

// PostgresRepository implements Repository using pgx over library.favorite.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL implementation of Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Add(ctx context.Context, userID, songID string) error {
	const query = `
		INSERT INTO library.favorite (userid, songid, createdat)
		VALUES ($1, $2, $3)
		ON CONFLICT (userid, songid) DO NOTHING`

	_, err := repository.pool.Exec(ctx, query, userID, songID, time.Now())
	return dberr.Wrap(err, "add_favorite")
}

func (repository *PostgresRepository) Remove(ctx context.Context, userID, songID string) error {
	const query = `DELETE FROM library.favorite WHERE userid = $1 AND songid = $2`

	_, err := repository.pool.Exec(ctx, query, userID, songID)
	return dberr.Wrap(err, "remove_favorite")
}

func (repository *PostgresRepository) ListSongs(ctx context.Context, userID string, params pagination.Params) ([]*SongSummary, int, error) {
	const countQuery = `
		SELECT count(*)
		FROM library.favorite favorite
		JOIN catalog.song song ON song.id = favorite.songid
		WHERE favorite.userid = $1 AND song.status = 'APPROVED'`

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_favorites")
	}

	const query = `
		SELECT song.id, song.title, song.artistid, COALESCE(song.genre, ''),
			song.durationseconds, COALESCE(song.coverkey, '')
		FROM library.favorite favorite
		JOIN catalog.song song ON song.id = favorite.songid
		WHERE favorite.userid = $1 AND song.status = 'APPROVED'
		ORDER BY favorite.createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(ctx, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_favorites")
	}
	defer rows.Close()

	var songs []*SongSummary
	for rows.Next() {
		summary := &SongSummary{}
		err := rows.Scan(
			&summary.ID,
			&summary.Title,
			&summary.ArtistID,
			&summary.Genre,
			&summary.DurationSeconds,
			&summary.CoverKey,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_favorite")
		}
		songs = append(songs, summary)
	}
	return songs, total, nil
}

func (repository *PostgresRepository) SongExists(ctx context.Context, songID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM catalog.song WHERE id = $1)`

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, songID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_song_exists")
	}
	return exists, nil
}
