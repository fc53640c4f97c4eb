// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package album

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

const albumColumns = `id, title, artistid, COALESCE(description, ''), COALESCE(language, ''),
	releasetype, COALESCE(coverkey, ''), status, COALESCE(rejectreason, ''), createdat, updatedat`

// PostgresRepository implements Repository using pgx over catalog.album.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL implementation of Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(ctx context.Context, album *Album) error {
	const query = `
		INSERT INTO catalog.album (
			id, title, artistid, description, language, releasetype, coverkey,
			status, createdat, updatedat
		) VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, NULLIF($7, ''), $8, $9, $10)`

	now := time.Now()
	album.CreatedAt = now
	album.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		album.ID,
		album.Title,
		album.ArtistID,
		album.Description,
		album.Language,
		album.ReleaseType,
		album.CoverKey,
		album.Status,
		album.CreatedAt,
		album.UpdatedAt,
	)

	return dberr.Wrap(err, "create_album")
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Album, error) {
	query := "SELECT " + albumColumns + " FROM catalog.album WHERE id = $1"

	result, err := scanAlbum(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Album")
		}
		return nil, dberr.Wrap(err, "find_album")
	}
	return result, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, album *Album) error {
	const query = `
		UPDATE catalog.album
		SET title = $2, description = NULLIF($3, ''), language = NULLIF($4, ''),
			releasetype = $5, coverkey = NULLIF($6, ''), updatedat = $7
		WHERE id = $1`

	album.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(ctx, query,
		album.ID,
		album.Title,
		album.Description,
		album.Language,
		album.ReleaseType,
		album.CoverKey,
		album.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "update_album")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Album")
	}
	return nil
}

func (repository *PostgresRepository) SetStatus(ctx context.Context, id string, status Status, rejectReason string) error {
	const query = `
		UPDATE catalog.album
		SET status = $2, rejectreason = NULLIF($3, ''), updatedat = $4
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, id, status, rejectReason, time.Now())
	if err != nil {
		return dberr.Wrap(err, "set_album_status")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Album")
	}
	return nil
}

// SubmitCascade moves the album and all of its songs to PENDING atomically.
// When the album has no songs nothing is written and the count is zero.
func (repository *PostgresRepository) SubmitCascade(ctx context.Context, albumID string) (int, error) {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return 0, dberr.Wrap(err, "begin_album_submit")
	}
	defer transaction.Rollback(ctx)

	now := time.Now()

	songsTag, err := transaction.Exec(ctx,
		`UPDATE catalog.song SET status = 'PENDING', updatedat = $2 WHERE albumid = $1`,
		albumID, now,
	)
	if err != nil {
		return 0, dberr.Wrap(err, "submit_album_songs")
	}
	moved := int(songsTag.RowsAffected())
	if moved == 0 {
		// Rollback via defer; an empty album is not submittable.
		return 0, nil
	}

	albumTag, err := transaction.Exec(ctx,
		`UPDATE catalog.album SET status = 'PENDING', updatedat = $2 WHERE id = $1`,
		albumID, now,
	)
	if err != nil {
		return 0, dberr.Wrap(err, "submit_album")
	}
	if albumTag.RowsAffected() == 0 {
		return 0, apperr.NotFound("Album")
	}

	if err := transaction.Commit(ctx); err != nil {
		return 0, dberr.Wrap(err, "commit_album_submit")
	}
	return moved, nil
}

func (repository *PostgresRepository) ListByArtist(ctx context.Context, artistID string, params pagination.Params) ([]*Album, int, error) {
	return repository.list(ctx,
		"artistid = $1", "createdat DESC",
		[]any{artistID}, params,
	)
}

func (repository *PostgresRepository) ListApprovedByArtist(ctx context.Context, artistID string, params pagination.Params) ([]*Album, int, error) {
	return repository.list(ctx,
		"artistid = $1 AND status = 'APPROVED'", "updatedat DESC",
		[]any{artistID}, params,
	)
}

func (repository *PostgresRepository) ListPending(ctx context.Context, params pagination.Params) ([]*Album, int, error) {
	return repository.list(ctx,
		"status = 'PENDING'", "updatedat ASC",
		nil, params,
	)
}

// list runs the shared count+page query pair for a filter predicate.
func (repository *PostgresRepository) list(ctx context.Context, predicate, order string, args []any, params pagination.Params) ([]*Album, int, error) {
	countQuery := "SELECT count(*) FROM catalog.album WHERE " + predicate

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_albums")
	}

	limitPos := len(args) + 1
	offsetPos := len(args) + 2
	query := "SELECT " + albumColumns + " FROM catalog.album WHERE " + predicate +
		" ORDER BY " + order +
		" LIMIT $" + strconv.Itoa(limitPos) + " OFFSET $" + strconv.Itoa(offsetPos)

	pageArgs := append(append([]any{}, args...), params.Limit, params.Offset())
	rows, err := repository.pool.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_albums")
	}
	defer rows.Close()

	var albums []*Album
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_album")
		}
		albums = append(albums, album)
	}
	return albums, total, nil
}

func scanAlbum(row pgx.Row) (*Album, error) {
	album := &Album{}
	err := row.Scan(
		&album.ID,
		&album.Title,
		&album.ArtistID,
		&album.Description,
		&album.Language,
		&album.ReleaseType,
		&album.CoverKey,
		&album.Status,
		&album.RejectReason,
		&album.CreatedAt,
		&album.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return album, nil
}
