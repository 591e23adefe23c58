package repository

import (
	"context"
	"time"

	"whoof-notifications/internal/domain/entity"
)

// SendRecordRepository defines the interface for the append-only
// notification send log
type SendRecordRepository interface {
	// Append writes one record per successful dispatch
	Append(ctx context.Context, record *entity.SendRecord) error

	// CountSince returns how many notifications a user received at or
	// after the given instant
	CountSince(ctx context.Context, userID string, since time.Time) (int, error)

	// LastCategorySend returns when the user last received a notification
	// of the given category, or nil if never
	LastCategorySend(ctx context.Context, userID string, category entity.Category) (*time.Time, error)

	// DeleteOlderThan prunes records whose SentAt precedes the cutoff and
	// returns how many were removed
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
