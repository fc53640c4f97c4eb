// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package royalty

import (
	"context"
	"time"

	"github.com/melodiahq/melodia/pkg/pagination"
)

// Repository is the persistence contract for payout records.
type Repository interface {
	// InsertIgnoring appends payout rows, silently skipping any
	// (artist, month) pair that already exists, and reports how many
	// rows were actually written. Rows are inserted one by one so a
	// mid-run failure keeps what is already booked; a retry completes
	// the remainder.
	InsertIgnoring(ctx context.Context, payouts []*Payout) (int, error)

	FindByID(ctx context.Context, id string) (*Payout, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error

	ListByMonth(ctx context.Context, month string, params pagination.Params) ([]*Payout, int, error)
	ListByArtist(ctx context.Context, artistID string, params pagination.Params) ([]*Payout, int, error)
}
