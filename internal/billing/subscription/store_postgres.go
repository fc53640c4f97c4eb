// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/internal/platform/dberr"
)

// PostgresRepository implements Repository using pgx over the billing
// schema.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL implementation of Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Activate upserts the access grant and books the charge atomically.
func (repository *PostgresRepository) Activate(ctx context.Context, subscription *Subscription, payment *Payment) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_activate_subscription")
	}
	defer transaction.Rollback(ctx)

	now := time.Now()
	subscription.CreatedAt = now
	subscription.UpdatedAt = now

	_, err = transaction.Exec(ctx, `
		INSERT INTO billing.subscription (id, userid, plan, status, periodstart, periodend, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (userid) DO UPDATE SET
			plan = EXCLUDED.plan,
			status = EXCLUDED.status,
			periodstart = EXCLUDED.periodstart,
			periodend = EXCLUDED.periodend,
			updatedat = EXCLUDED.updatedat`,
		subscription.ID,
		subscription.UserID,
		subscription.Plan,
		subscription.Status,
		subscription.PeriodStart,
		subscription.PeriodEnd,
		subscription.CreatedAt,
		subscription.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "upsert_subscription")
	}

	_, err = transaction.Exec(ctx, `
		INSERT INTO billing.payment (id, userid, amount, providerref, paidat)
		VALUES ($1, $2, $3, $4, $5)`,
		payment.ID,
		payment.UserID,
		payment.Amount,
		payment.ProviderRef,
		payment.PaidAt,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_payment")
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_activate_subscription")
	}
	return nil
}

func (repository *PostgresRepository) FindByUser(ctx context.Context, userID string) (*Subscription, error) {
	const query = `
		SELECT id, userid, plan, status, periodstart, periodend, createdat, updatedat
		FROM billing.subscription WHERE userid = $1`

	result := &Subscription{}
	err := repository.pool.QueryRow(ctx, query, userID).Scan(
		&result.ID,
		&result.UserID,
		&result.Plan,
		&result.Status,
		&result.PeriodStart,
		&result.PeriodEnd,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Subscription")
		}
		return nil, dberr.Wrap(err, "find_subscription")
	}
	return result, nil
}

func (repository *PostgresRepository) Cancel(ctx context.Context, userID string) error {
	const query = `
		UPDATE billing.subscription SET status = 'CANCELED', updatedat = $2
		WHERE userid = $1`

	_, err := repository.pool.Exec(ctx, query, userID, time.Now())
	return dberr.Wrap(err, "cancel_subscription")
}

func (repository *PostgresRepository) MonthlyRevenue(ctx context.Context, month string) (float64, error) {
	const query = `
		SELECT COALESCE(SUM(amount), 0) FROM billing.payment
		WHERE to_char(paidat, 'YYYY-MM') = $1`

	var revenue float64
	if err := repository.pool.QueryRow(ctx, query, month).Scan(&revenue); err != nil {
		return 0, dberr.Wrap(err, "sum_monthly_revenue")
	}
	return revenue, nil
}
