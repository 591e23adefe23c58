package service

import (
	"context"

	"whoof-notifications/internal/domain/entity"
)

// ProgressTracker maintains per-user counters against the active monthly
// challenge. It returns the events worth notifying about instead of
// sending anything itself.
type ProgressTracker interface {
	// Track applies an increment. A nil progress means the increment was
	// not tracked (stale challenge id or a persistence failure); callers
	// must not treat that as a hard error.
	Track(ctx context.Context, userID, challengeID string, increment int) (*entity.ChallengeProgress, []entity.ProgressEvent)

	// Progress reads the current row without mutating it
	Progress(ctx context.Context, userID, challengeID string) (*entity.ChallengeProgress, error)
}

// ProgressNotifier consumes tracker events and dispatches the matching
// notifications
type ProgressNotifier interface {
	Notify(ctx context.Context, userID string, events []entity.ProgressEvent)
}

// ContextualTrigger evaluates ambient signals against the contextual
// event rules and dispatches matches
type ContextualTrigger interface {
	Evaluate(ctx context.Context, userID string, c entity.Context) []entity.TriggeredEvent
}

// BillingProcessor applies a verified payment webhook event
type BillingProcessor interface {
	Process(ctx context.Context, payload []byte) error
}
