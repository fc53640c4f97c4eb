// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package royalty

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

const payoutColumns = `id, artistid, month, streams, amount, status, paidat, createdat`

// PostgresRepository implements Repository using pgx over
// royalty.artistearning.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL implementation of Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// InsertIgnoring books payout rows one at a time. The unique
// (artistid, month) constraint makes the whole run idempotent.
func (repository *PostgresRepository) InsertIgnoring(ctx context.Context, payouts []*Payout) (int, error) {
	const query = `
		INSERT INTO royalty.artistearning (id, artistid, month, streams, amount, status, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (artistid, month) DO NOTHING`

	inserted := 0
	for _, payout := range payouts {
		payout.CreatedAt = time.Now()
		tag, err := repository.pool.Exec(ctx, query,
			payout.ID,
			payout.ArtistID,
			payout.Month,
			payout.Streams,
			payout.Amount,
			payout.Status,
			payout.CreatedAt,
		)
		if err != nil {
			return inserted, dberr.Wrap(err, "insert_payout")
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Payout, error) {
	query := "SELECT " + payoutColumns + " FROM royalty.artistearning WHERE id = $1"

	result, err := scanPayout(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Payout")
		}
		return nil, dberr.Wrap(err, "find_payout")
	}
	return result, nil
}

func (repository *PostgresRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	const query = `
		UPDATE royalty.artistearning SET status = 'PAID', paidat = $2
		WHERE id = $1 AND status = 'PENDING'`

	tag, err := repository.pool.Exec(ctx, query, id, paidAt)
	if err != nil {
		return dberr.Wrap(err, "mark_payout_paid")
	}
	if tag.RowsAffected() == 0 {
		return apperr.Unprocessable("Payout is already paid")
	}
	return nil
}

func (repository *PostgresRepository) ListByMonth(ctx context.Context, month string, params pagination.Params) ([]*Payout, int, error) {
	return repository.list(ctx, "month = $1", "amount DESC", month, params)
}

func (repository *PostgresRepository) ListByArtist(ctx context.Context, artistID string, params pagination.Params) ([]*Payout, int, error) {
	return repository.list(ctx, "artistid = $1", "month DESC", artistID, params)
}

func (repository *PostgresRepository) list(ctx context.Context, predicate, order string, arg any, params pagination.Params) ([]*Payout, int, error) {
	countQuery := "SELECT count(*) FROM royalty.artistearning WHERE " + predicate

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, arg).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_payouts")
	}

	query := "SELECT " + payoutColumns + " FROM royalty.artistearning WHERE " + predicate +
		" ORDER BY " + order + " LIMIT $2 OFFSET $3"

	rows, err := repository.pool.Query(ctx, query, arg, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_payouts")
	}
	defer rows.Close()

	var payouts []*Payout
	for rows.Next() {
		result, err := scanPayout(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_payout")
		}
		payouts = append(payouts, result)
	}
	return payouts, total, nil
}

func scanPayout(row pgx.Row) (*Payout, error) {
	result := &Payout{}
	err := row.Scan(
		&result.ID,
		&result.ArtistID,
		&result.Month,
		&result.Streams,
		&result.Amount,
		&result.Status,
		&result.PaidAt,
		&result.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}
