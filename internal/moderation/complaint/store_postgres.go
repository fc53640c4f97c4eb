// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package complaint

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

const complaintColumns = `id, songid, reporterid, reason, status, COALESCE(action, ''),
	COALESCE(resolvedby::text, ''), resolvedat, createdat, updatedat`

// PostgresRepository implements Repository using pgx over
// moderation.complaint.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL implementation of Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// File inserts the complaint row first and then takes the song down, the
// two writes committing together.
func (repository *PostgresRepository) File(ctx context.Context, complaint *Complaint) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_file_complaint")
	}
	defer transaction.Rollback(ctx)

	now := time.Now()
	complaint.CreatedAt = now
	complaint.UpdatedAt = now

	_, err = transaction.Exec(ctx, `
		INSERT INTO moderation.complaint (id, songid, reporterid, reason, status, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		complaint.ID,
		complaint.SongID,
		complaint.ReporterID,
		complaint.Reason,
		complaint.Status,
		complaint.CreatedAt,
		complaint.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_complaint")
	}

	tag, err := transaction.Exec(ctx,
		`UPDATE catalog.song SET status = 'TAKEN_DOWN', updatedat = $2 WHERE id = $1`,
		complaint.SongID, now,
	)
	if err != nil {
		return dberr.Wrap(err, "suspend_song")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Song")
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_file_complaint")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Complaint, error) {
	query := "SELECT " + complaintColumns + " FROM moderation.complaint WHERE id = $1"

	result, err := scanComplaint(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Complaint")
		}
		return nil, dberr.Wrap(err, "find_complaint")
	}
	return result, nil
}

// Resolve flags the complaint and moves the song in one transaction.
func (repository *PostgresRepository) Resolve(ctx context.Context, complaintID string, action Action, songStatus string, resolverID string, resolvedAt time.Time) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_resolve_complaint")
	}
	defer transaction.Rollback(ctx)

	tag, err := transaction.Exec(ctx, `
		UPDATE moderation.complaint
		SET status = 'RESOLVED', action = $2, resolvedby = $3, resolvedat = $4, updatedat = $4
		WHERE id = $1`,
		complaintID, action, resolverID, resolvedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "resolve_complaint")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Complaint")
	}

	songTag, err := transaction.Exec(ctx, `
		UPDATE catalog.song SET status = $2, updatedat = $3
		WHERE id = (SELECT songid FROM moderation.complaint WHERE id = $1)`,
		complaintID, songStatus, resolvedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "resolve_complaint_song")
	}
	if songTag.RowsAffected() == 0 {
		return apperr.NotFound("Song")
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_resolve_complaint")
	}
	return nil
}

func (repository *PostgresRepository) GetSongRef(ctx context.Context, songID string) (*SongRef, error) {
	const query = "SELECT id, title, status FROM catalog.song WHERE id = $1"

	ref := &SongRef{}
	err := repository.pool.QueryRow(ctx, query, songID).Scan(&ref.ID, &ref.Title, &ref.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Song")
		}
		return nil, dberr.Wrap(err, "find_song_ref")
	}
	return ref, nil
}

func (repository *PostgresRepository) ListByReporter(ctx context.Context, reporterID string, params pagination.Params) ([]*Complaint, int, error) {
	return repository.list(ctx,
		"reporterid = $1", "createdat DESC",
		[]any{reporterID}, params,
	)
}

func (repository *PostgresRepository) ListOpen(ctx context.Context, params pagination.Params) ([]*Complaint, int, error) {
	return repository.list(ctx,
		"status = 'OPEN'", "createdat ASC",
		nil, params,
	)
}

// list runs the shared count+page query pair for a filter predicate.
func (repository *PostgresRepository) list(ctx context.Context, predicate, order string, args []any, params pagination.Params) ([]*Complaint, int, error) {
	countQuery := "SELECT count(*) FROM moderation.complaint WHERE " + predicate

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_complaints")
	}

	limitPos := len(args) + 1
	offsetPos := len(args) + 2
	query := "SELECT " + complaintColumns + " FROM moderation.complaint WHERE " + predicate +
		" ORDER BY " + order +
		" LIMIT $" + strconv.Itoa(limitPos) + " OFFSET $" + strconv.Itoa(offsetPos)

	pageArgs := append(append([]any{}, args...), params.Limit, params.Offset())
	rows, err := repository.pool.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_complaints")
	}
	defer rows.Close()

	var complaints []*Complaint
	for rows.Next() {
		result, err := scanComplaint(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_complaint")
		}
		complaints = append(complaints, result)
	}
	return complaints, total, nil
}

func scanComplaint(row pgx.Row) (*Complaint, error) {
	result := &Complaint{}
	err := row.Scan(
		&result.ID,
		&result.SongID,
		&result.ReporterID,
		&result.Reason,
		&result.Status,
		&result.Action,
		&result.ResolvedBy,
		&result.ResolvedAt,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}
