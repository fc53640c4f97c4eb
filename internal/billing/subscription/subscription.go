// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

// Package subscription tracks listener subscriptions and the payment
// ledger that funds the monthly artist payout pool. Payment-gateway
// webhook handling lives outside this API; activation receives periods
// that were already verified upstream.
package subscription

import "time"

// Status of a subscription.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusCanceled Status = "CANCELED"
)

// Subscription is one listener's access grant. A listener has at most
// one row; renewals overwrite the period in place.
type Subscription struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Plan        string    `json:"plan"`
	Status      Status    `json:"status"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Payment is one settled charge in the revenue ledger.
type Payment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      float64   `json:"amount"`
	ProviderRef string    `json:"provider_ref"`
	PaidAt      time.Time `json:"paid_at"`
}

const (
	FieldPlan        = "plan"
	FieldAmount      = "amount"
	FieldProviderRef = "provider_ref"
	FieldPeriodEnd   = "period_end"
)
