// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package album

import (
	"context"

	"github.com/melodiahq/melodia/pkg/pagination"
)

// Repository is the persistence contract for albums.
type Repository interface {
	Create(ctx context.Context, album *Album) error
	FindByID(ctx context.Context, id string) (*Album, error)
	Update(ctx context.Context, album *Album) error
	SetStatus(ctx context.Context, id string, status Status, rejectReason string) error

	// SubmitCascade flips the album and every song attached to it to
	// PENDING in a single transaction and reports how many songs moved.
	// An album with no songs moves nothing and commits nothing.
	SubmitCascade(ctx context.Context, albumID string) (int, error)

	ListByArtist(ctx context.Context, artistID string, params pagination.Params) ([]*Album, int, error)
	ListApprovedByArtist(ctx context.Context, artistID string, params pagination.Params) ([]*Album, int, error)
	ListPending(ctx context.Context, params pagination.Params) ([]*Album, int, error)
}
