package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"whoof-notifications/internal/domain/entity"
	"whoof-notifications/internal/domain/repository"
)

type activityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new PostgreSQL activity repository
func NewActivityRepository(db *pgxpool.Pool) repository.ActivityRepository {
	return &activityRepository{
		db: db,
	}
}

func (r *activityRepository) Summary(ctx context.Context, userID string) (*entity.ActivitySummary, error) {
	profileQuery := `
		SELECT created_at, COALESCE(premium, false)
		FROM profiles
		WHERE id = $1
	`

	summary := entity.ActivitySummary{UserID: userID}
	err := r.db.QueryRow(ctx, profileQuery, userID).Scan(&summary.SignupAt, &summary.IsPremium)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	// Latest action across messages, friendships and walks
	lastQuery := `
		SELECT MAX(ts) FROM (
			SELECT MAX(created_at) AS ts FROM direct_messages WHERE sender_id = $1
			UNION ALL
			SELECT MAX(created_at) FROM friendships WHERE a_user = $1 OR b_user = $1
			UNION ALL
			SELECT MAX(start_at) FROM walks WHERE user_id = $1
		) activity
	`

	var lastActivity *time.Time
	if err := r.db.QueryRow(ctx, lastQuery, userID).Scan(&lastActivity); err != nil {
		return nil, fmt.Errorf("failed to get last activity: %w", err)
	}
	summary.LastActivityAt = lastActivity

	scoreQuery := `
		SELECT
			(SELECT COUNT(*) FROM direct_messages WHERE sender_id = $1 AND created_at >= $2) +
			(SELECT COUNT(*) FROM friendships WHERE (a_user = $1 OR b_user = $1) AND created_at >= $2) +
			(SELECT COUNT(*) FROM walks WHERE user_id = $1 AND start_at >= $2)
	`

	sevenDaysAgo := time.Now().UTC().AddDate(0, 0, -7)
	if err := r.db.QueryRow(ctx, scoreQuery, userID, sevenDaysAgo).Scan(&summary.ActionsLast7Days); err != nil {
		return nil, fmt.Errorf("failed to compute activity score: %w", err)
	}

	return &summary, nil
}

func (r *activityRepository) Email(ctx context.Context, userID string) (string, error) {
	query := `
		SELECT email
		FROM profiles
		WHERE id = $1
	`

	var email string
	err := r.db.QueryRow(ctx, query, userID).Scan(&email)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("no profile for user %s", userID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get email: %w", err)
	}

	return email, nil
}
