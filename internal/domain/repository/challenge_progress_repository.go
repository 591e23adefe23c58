package repository

import (
	"context"

	"whoof-notifications/internal/domain/entity"
)

// ChallengeProgressRepository defines the interface for per-user
// challenge progress persistence
type ChallengeProgressRepository interface {
	// Get returns the progress row for (user, challenge), or nil when the
	// user has not started the challenge yet
	Get(ctx context.Context, userID, challengeID string) (*entity.ChallengeProgress, error)

	// Upsert creates or updates the progress row
	Upsert(ctx context.Context, progress *entity.ChallengeProgress) error
}
