// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/pkg/uuid"
)

// Service implements subscription workflows.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// ActivateInput carries an already-settled charge and its paid-for
// period.
type ActivateInput struct {
	Plan        string
	Amount      float64
	ProviderRef string
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// Activate grants or renews access and books the payment into the
// revenue ledger.
func (service *Service) Activate(ctx context.Context, userID string, input ActivateInput) (*Subscription, error) {
	if !input.PeriodEnd.After(input.PeriodStart) {
		return nil, apperr.ValidationError("Period end must be after period start")
	}

	now := time.Now()
	grant := &Subscription{
		ID:          uuid.New(),
		UserID:      userID,
		Plan:        input.Plan,
		Status:      StatusActive,
		PeriodStart: input.PeriodStart,
		PeriodEnd:   input.PeriodEnd,
	}
	charge := &Payment{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      input.Amount,
		ProviderRef: input.ProviderRef,
		PaidAt:      now,
	}

	if err := service.repository.Activate(ctx, grant, charge); err != nil {
		return nil, fmt.Errorf("subscription_service_activate_failed: %w", err)
	}

	service.logger.Info("subscription_activated",
		slog.String("user_id", userID),
		slog.String("plan", grant.Plan),
	)

	return grant, nil
}

// Cancel drops the listener's access grant. Canceling without a
// subscription is fine.
func (service *Service) Cancel(ctx context.Context, userID string) error {
	if err := service.repository.Cancel(ctx, userID); err != nil {
		return fmt.Errorf("subscription_service_cancel_failed: %w", err)
	}
	return nil
}

// Get returns the listener's subscription, if any.
func (service *Service) Get(ctx context.Context, userID string) (*Subscription, error) {
	return service.repository.FindByUser(ctx, userID)
}

// HasActive reports whether the listener currently holds a live grant.
// Used as the streaming gate.
func (service *Service) HasActive(ctx context.Context, userID string) (bool, error) {
	existing, err := service.repository.FindByUser(ctx, userID)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.Code == "NOT_FOUND" {
			return false, nil
		}
		return false, err
	}
	return existing.Status == StatusActive && existing.PeriodEnd.After(time.Now()), nil
}

// MonthlyRevenue sums the payment ledger for a month. This is the input
// to the payout pool.
func (service *Service) MonthlyRevenue(ctx context.Context, month string) (float64, error) {
	return service.repository.MonthlyRevenue(ctx, month)
}
