package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"whoof-notifications/internal/domain/entity"
	"whoof-notifications/internal/domain/repository"
)

type challengeProgressRepository struct {
	db *pgxpool.Pool
}

// NewChallengeProgressRepository creates a new PostgreSQL challenge progress repository
func NewChallengeProgressRepository(db *pgxpool.Pool) repository.ChallengeProgressRepository {
	return &challengeProgressRepository{
		db: db,
	}
}

func (r *challengeProgressRepository) Get(ctx context.Context, userID, challengeID string) (*entity.ChallengeProgress, error) {
	query := `
		SELECT user_id, challenge_id, current_progress, target_progress, is_completed, completed_at, updated_at
		FROM challenge_progress
		WHERE user_id = $1 AND challenge_id = $2
	`

	var progress entity.ChallengeProgress
	err := r.db.QueryRow(ctx, query, userID, challengeID).Scan(
		&progress.UserID,
		&progress.ChallengeID,
		&progress.Current,
		&progress.Target,
		&progress.Completed,
		&progress.CompletedAt,
		&progress.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge progress: %w", err)
	}

	return &progress, nil
}

func (r *challengeProgressRepository) Upsert(ctx context.Context, progress *entity.ChallengeProgress) error {
	query := `
		INSERT INTO challenge_progress (user_id, challenge_id, current_progress, target_progress, is_completed, completed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, challenge_id) DO UPDATE SET
			current_progress = EXCLUDED.current_progress,
			target_progress = EXCLUDED.target_progress,
			is_completed = EXCLUDED.is_completed,
			completed_at = EXCLUDED.completed_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		progress.UserID,
		progress.ChallengeID,
		progress.Current,
		progress.Target,
		progress.Completed,
		progress.CompletedAt,
		progress.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert challenge progress: %w", err)
	}

	return nil
}
