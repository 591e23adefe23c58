package repository

import (
	"context"

	"whoof-notifications/internal/domain/entity"
)

// BillingRepository applies the state changes driven by payment webhooks
type BillingRepository interface {
	// SetPremium flips the premium flag on a user profile
	SetPremium(ctx context.Context, userID string, premium bool) error

	// SetProPlan updates a professional account's plan
	SetProPlan(ctx context.Context, userID string, plan entity.ProPlan) error

	// CreateTransaction records a completed booking payment
	CreateTransaction(ctx context.Context, tx *entity.Transaction) error

	// ConfirmBooking marks a booking as confirmed after payment
	ConfirmBooking(ctx context.Context, bookingID string) error
}
