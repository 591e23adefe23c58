package repository

import (
	"context"

	"whoof-notifications/internal/domain/entity"
)

// ActivityRepository reads user profile and activity history. It is the
// segmentation oracle's only data source and must be side-effect-free.
type ActivityRepository interface {
	// Summary returns the user's signup date, most recent action across
	// messages/friendships/walks, and the 7-day action count. Returns nil
	// when no profile exists for the user.
	Summary(ctx context.Context, userID string) (*entity.ActivitySummary, error)

	// Email returns the user's contact address for email delivery
	Email(ctx context.Context, userID string) (string, error)
}
