// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package audit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/melodiahq/melodia/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Append(ctx context.Context, e *Entry) error {
	query := `
		INSERT INTO system.auditlog (id, actorid, action, targetid, description, createdat)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING createdat
	`

	err := repository.db.QueryRow(ctx, query, e.ID, e.ActorID, e.Action, e.TargetID, e.Description).Scan(&e.CreatedAt)
	return dberr.Wrap(err, "append_audit_entry")
}

func (repository *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]*Entry, error) {
	query := `
		SELECT id, actorid, action, targetid, description, createdat
		FROM system.auditlog
		ORDER BY createdat DESC
		LIMIT $1
	`

	rows, err := repository.db.Query(ctx, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "list_audit_entries")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.TargetID, &e.Description, &e.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_audit_entry")
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (repository *PostgresRepository) Stats(ctx context.Context) (*Stats, error) {
	// One round trip; each counter is an independent scalar subquery.
	query := `
		SELECT
			(SELECT count(*) FROM users.account WHERE artiststatus = 'REQUESTED'),
			(SELECT count(*) FROM catalog.song WHERE status = 'PENDING'),
			(SELECT count(*) FROM catalog.album WHERE status = 'PENDING'),
			(SELECT count(*) FROM moderation.complaint WHERE status = 'OPEN'),
			(SELECT count(*) FROM moderation.songdispute WHERE status = 'OPEN')
	`

	s := &Stats{}
	err := repository.db.QueryRow(ctx, query).Scan(
		&s.PendingArtists, &s.PendingSongs, &s.PendingAlbums, &s.OpenComplaints, &s.OpenDisputes,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "audit_stats")
	}

	return s, nil
}
