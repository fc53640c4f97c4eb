// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package subscription

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodiahq/melodia/internal/platform/apperr"
)

type fakeRepo struct {
	subscriptions map[string]*Subscription
	payments      []*Payment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{subscriptions: map[string]*Subscription{}}
}

func (r *fakeRepo) Activate(_ context.Context, grant *Subscription, charge *Payment) error {
	r.subscriptions[grant.UserID] = grant
	r.payments = append(r.payments, charge)
	return nil
}

func (r *fakeRepo) FindByUser(_ context.Context, userID string) (*Subscription, error) {
	if s, ok := r.subscriptions[userID]; ok {
		return s, nil
	}
	return nil, apperr.NotFound("Subscription")
}

func (r *fakeRepo) Cancel(_ context.Context, userID string) error {
	if s, ok := r.subscriptions[userID]; ok {
		s.Status = StatusCanceled
	}
	return nil
}

func (r *fakeRepo) MonthlyRevenue(_ context.Context, month string) (float64, error) {
	var sum float64
	for _, p := range r.payments {
		if p.PaidAt.Format("2006-01") == month {
			sum += p.Amount
		}
	}
	return sum, nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger), repo
}

func monthlyInput(amount float64) ActivateInput {
	now := time.Now()
	return ActivateInput{
		Plan:        "premium-monthly",
		Amount:      amount,
		ProviderRef: "ch_test_123",
		PeriodStart: now,
		PeriodEnd:   now.AddDate(0, 1, 0),
	}
}

func TestActivate_GrantsAccessAndBooksPayment(t *testing.T) {
	service, repo := newTestService()

	grant, err := service.Activate(context.Background(), "listener-1", monthlyInput(9.99))

	require.NoError(t, err)
	assert.Equal(t, StatusActive, grant.Status)
	require.Len(t, repo.payments, 1)
	assert.Equal(t, 9.99, repo.payments[0].Amount)

	active, err := service.HasActive(context.Background(), "listener-1")
	require.NoError(t, err)
	assert.True(t, active)
}

func TestActivate_RejectsInvertedPeriod(t *testing.T) {
	service, _ := newTestService()

	input := monthlyInput(9.99)
	input.PeriodEnd = input.PeriodStart.Add(-time.Hour)
	_, err := service.Activate(context.Background(), "listener-1", input)

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestHasActive_FalseCases(t *testing.T) {
	service, repo := newTestService()

	// Never subscribed.
	active, err := service.HasActive(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, active)

	// Canceled.
	_, err = service.Activate(context.Background(), "listener-1", monthlyInput(9.99))
	require.NoError(t, err)
	require.NoError(t, service.Cancel(context.Background(), "listener-1"))
	active, err = service.HasActive(context.Background(), "listener-1")
	require.NoError(t, err)
	assert.False(t, active)

	// Lapsed period.
	repo.subscriptions["listener-1"].Status = StatusActive
	repo.subscriptions["listener-1"].PeriodEnd = time.Now().Add(-time.Minute)
	active, err = service.HasActive(context.Background(), "listener-1")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestMonthlyRevenue_SumsLedger(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Activate(context.Background(), "listener-1", monthlyInput(9.99))
	require.NoError(t, err)
	_, err = service.Activate(context.Background(), "listener-2", monthlyInput(4.99))
	require.NoError(t, err)

	revenue, err := service.MonthlyRevenue(context.Background(), time.Now().Format("2006-01"))
	require.NoError(t, err)
	assert.InDelta(t, 14.98, revenue, 0.0001)
}
