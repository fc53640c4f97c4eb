// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

// Package royalty computes monthly artist payouts. Each month's
// subscription revenue funds an artist pool, split across artists in
// proportion to their qualifying stream counts. A month is computed at
// most once per artist: re-runs insert nothing.
package royalty

import "time"

// Status of a payout record.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
)

// Payout is one artist's earning for one month.
type Payout struct {
	ID        string     `json:"id"`
	ArtistID  string     `json:"artist_id"`
	Month     string     `json:"month"`
	Streams   int        `json:"streams"`
	Amount    float64    `json:"amount"`
	Status    Status     `json:"status"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// RunResult summarizes one payout computation.
type RunResult struct {
	Month        string  `json:"month"`
	Revenue      float64 `json:"revenue"`
	Pool         float64 `json:"pool"`
	TotalStreams int     `json:"total_streams"`
	Artists      int     `json:"artists"`
	Inserted     int     `json:"inserted"`
}

const FieldMonth = "month"
