package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"whoof-notifications/internal/domain/entity"
	"whoof-notifications/internal/domain/repository"
)

type billingRepository struct {
	db *pgxpool.Pool
}

// NewBillingRepository creates a new PostgreSQL billing repository
func NewBillingRepository(db *pgxpool.Pool) repository.BillingRepository {
	return &billingRepository{
		db: db,
	}
}

func (r *billingRepository) SetPremium(ctx context.Context, userID string, premium bool) error {
	query := `
		UPDATE profiles
		SET premium = $2
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, userID, premium); err != nil {
		return fmt.Errorf("failed to set premium flag: %w", err)
	}

	return nil
}

func (r *billingRepository) SetProPlan(ctx context.Context, userID string, plan entity.ProPlan) error {
	query := `
		UPDATE pro_accounts
		SET plan = $2
		WHERE user_id = $1
	`

	if _, err := r.db.Exec(ctx, query, userID, plan); err != nil {
		return fmt.Errorf("failed to set pro plan: %w", err)
	}

	return nil
}

func (r *billingRepository) CreateTransaction(ctx context.Context, tx *entity.Transaction) error {
	query := `
		INSERT INTO pro_transactions (id, pro_profile_id, booking_id, user_id, amount, currency, type, status, payment_method, stripe_payment_id, service_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (stripe_payment_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		tx.ID,
		tx.ProProfileID,
		tx.BookingID,
		tx.UserID,
		tx.Amount,
		tx.Currency,
		tx.Type,
		tx.Status,
		tx.PaymentMethod,
		tx.StripePaymentID,
		tx.ServiceID,
		tx.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

func (r *billingRepository) ConfirmBooking(ctx context.Context, bookingID string) error {
	query := `
		UPDATE pro_bookings
		SET status = 'confirmed'
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, bookingID); err != nil {
		return fmt.Errorf("failed to confirm booking: %w", err)
	}

	return nil
}
