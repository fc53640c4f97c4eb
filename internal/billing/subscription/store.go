// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package subscription

import "context"

// Repository is the persistence contract for subscriptions and payments.
type Repository interface {
	// Activate upserts the listener's subscription to ACTIVE and appends
	// the payment row, both in a single transaction.
	Activate(ctx context.Context, subscription *Subscription, payment *Payment) error

	FindByUser(ctx context.Context, userID string) (*Subscription, error)
	Cancel(ctx context.Context, userID string) error

	// MonthlyRevenue sums settled payments for a "YYYY-MM" month.
	MonthlyRevenue(ctx context.Context, month string) (float64, error)
}
