// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package account

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

const profileColumns = `id, username, email, displayname, COALESCE(avatarurl, ''), COALESCE(bio, ''),
	role, artiststatus, COALESCE(artistname, ''), COALESCE(artistslug, ''), createdat, updatedat`

// PostgresRepository implements Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL implementation of Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Profile, error) {
	query := "SELECT " + profileColumns + " FROM users.account WHERE id = $1 AND deletedat IS NULL"
	return repository.scanOne(repository.pool.QueryRow(ctx, query, id))
}

func (repository *PostgresRepository) FindArtistBySlug(ctx context.Context, artistSlug string) (*Profile, error) {
	query := "SELECT " + profileColumns + ` FROM users.account
		WHERE artistslug = $1 AND artiststatus = 'APPROVED' AND deletedat IS NULL`
	profile, err := repository.scanOne(repository.pool.QueryRow(ctx, query, artistSlug))
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.Code == "NOT_FOUND" {
			return nil, apperr.NotFound("Artist")
		}
		return nil, err
	}
	return profile, nil
}

func (repository *PostgresRepository) scanOne(row pgx.Row) (*Profile, error) {
	profile := &Profile{}
	err := row.Scan(
		&profile.ID,
		&profile.Username,
		&profile.Email,
		&profile.DisplayName,
		&profile.AvatarURL,
		&profile.Bio,
		&profile.Role,
		&profile.ArtistStatus,
		&profile.ArtistName,
		&profile.ArtistSlug,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, dberr.Wrap(err, "find_account")
	}

	return profile, nil
}

func (repository *PostgresRepository) UpdateProfile(ctx context.Context, profile *Profile) error {
	const query = `
		UPDATE users.account
		SET displayname = $2, bio = $3, avatarurl = $4, updatedat = $5
		WHERE id = $1 AND deletedat IS NULL`

	profile.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		profile.ID,
		profile.DisplayName,
		profile.Bio,
		profile.AvatarURL,
		profile.UpdatedAt,
	)

	return dberr.Wrap(err, "update_profile")
}

func (repository *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	const query = "UPDATE users.account SET deletedat = $2 WHERE id = $1"
	_, err := repository.pool.Exec(ctx, query, id, time.Now())
	return dberr.Wrap(err, "soft_delete_account")
}

func (repository *PostgresRepository) SetArtistStatus(ctx context.Context, userID string, status ArtistStatus, artistName, artistSlug, role string) error {
	const query = `
		UPDATE users.account
		SET artiststatus = $2, artistname = NULLIF($3, ''), artistslug = NULLIF($4, ''), role = $5, updatedat = $6
		WHERE id = $1 AND deletedat IS NULL`

	tag, err := repository.pool.Exec(ctx, query, userID, status, artistName, artistSlug, role, time.Now())
	if err != nil {
		return dberr.Wrap(err, "set_artist_status")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}
	return nil
}

func (repository *PostgresRepository) ListByArtistStatus(ctx context.Context, status ArtistStatus, params pagination.Params) ([]*Profile, int, error) {
	const countQuery = "SELECT count(*) FROM users.account WHERE artiststatus = $1 AND deletedat IS NULL"

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, status).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_artist_status")
	}

	query := "SELECT " + profileColumns + ` FROM users.account
		WHERE artiststatus = $1 AND deletedat IS NULL
		ORDER BY updatedat ASC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(ctx, query, status, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_artist_status")
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		profile := &Profile{}
		err := rows.Scan(
			&profile.ID,
			&profile.Username,
			&profile.Email,
			&profile.DisplayName,
			&profile.AvatarURL,
			&profile.Bio,
			&profile.Role,
			&profile.ArtistStatus,
			&profile.ArtistName,
			&profile.ArtistSlug,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_artist_status")
		}
		profiles = append(profiles, profile)
	}

	return profiles, total, nil
}

func (repository *PostgresRepository) CountArtistSlug(ctx context.Context, base string) (int, error) {
	const query = `
		SELECT count(*) FROM users.account
		WHERE artistslug = $1 OR artistslug LIKE $1 || '-%'`

	var count int
	if err := repository.pool.QueryRow(ctx, query, base).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_artist_slug")
	}
	return count, nil
}
