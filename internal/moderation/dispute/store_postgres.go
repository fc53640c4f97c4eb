// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package dispute

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

const disputeColumns = `id, songaid, songbid, COALESCE(reason, ''), status,
	COALESCE(winnersongid::text, ''), COALESCE(resolvedby::text, ''), resolvedat, createdat, updatedat`

// PostgresRepository implements Repository using pgx over
// moderation.songdispute.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL implementation of Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(ctx context.Context, dispute *Dispute) error {
	const query = `
		INSERT INTO moderation.songdispute (id, songaid, songbid, reason, status, createdat, updatedat)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)`

	now := time.Now()
	dispute.CreatedAt = now
	dispute.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		dispute.ID,
		dispute.SongAID,
		dispute.SongBID,
		dispute.Reason,
		dispute.Status,
		dispute.CreatedAt,
		dispute.UpdatedAt,
	)

	return dberr.Wrap(err, "create_dispute")
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Dispute, error) {
	query := "SELECT " + disputeColumns + " FROM moderation.songdispute WHERE id = $1"

	result, err := scanDispute(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Dispute")
		}
		return nil, dberr.Wrap(err, "find_dispute")
	}
	return result, nil
}

// Resolve flips both songs and closes the dispute in one transaction.
func (repository *PostgresRepository) Resolve(ctx context.Context, disputeID, winnerSongID, loserSongID, resolverID string, resolvedAt time.Time) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_resolve_dispute")
	}
	defer transaction.Rollback(ctx)

	winnerTag, err := transaction.Exec(ctx,
		`UPDATE catalog.song SET status = 'APPROVED', updatedat = $2 WHERE id = $1`,
		winnerSongID, resolvedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "approve_dispute_winner")
	}
	if winnerTag.RowsAffected() == 0 {
		return apperr.NotFound("Song")
	}

	loserTag, err := transaction.Exec(ctx,
		`UPDATE catalog.song SET status = 'REJECTED', updatedat = $2 WHERE id = $1`,
		loserSongID, resolvedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "reject_dispute_loser")
	}
	if loserTag.RowsAffected() == 0 {
		return apperr.NotFound("Song")
	}

	tag, err := transaction.Exec(ctx, `
		UPDATE moderation.songdispute
		SET status = 'RESOLVED', winnersongid = $2, resolvedby = $3, resolvedat = $4, updatedat = $4
		WHERE id = $1 AND status = 'OPEN'`,
		disputeID, winnerSongID, resolverID, resolvedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "resolve_dispute")
	}
	if tag.RowsAffected() == 0 {
		// Lost a race with another resolver; nothing was committed.
		return apperr.Unprocessable("Dispute is already resolved")
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_resolve_dispute")
	}
	return nil
}

func (repository *PostgresRepository) ListOpen(ctx context.Context, params pagination.Params) ([]*Dispute, int, error) {
	const countQuery = "SELECT count(*) FROM moderation.songdispute WHERE status = 'OPEN'"

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_disputes")
	}

	query := "SELECT " + disputeColumns + ` FROM moderation.songdispute
		WHERE status = 'OPEN' ORDER BY createdat ASC LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_disputes")
	}
	defer rows.Close()

	var disputes []*Dispute
	for rows.Next() {
		result, err := scanDispute(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_dispute")
		}
		disputes = append(disputes, result)
	}
	return disputes, total, nil
}

func scanDispute(row pgx.Row) (*Dispute, error) {
	result := &Dispute{}
	err := row.Scan(
		&result.ID,
		&result.SongAID,
		&result.SongBID,
		&result.Reason,
		&result.Status,
		&result.WinnerSongID,
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
