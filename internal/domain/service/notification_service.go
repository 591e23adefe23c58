package service

import (
	"context"

	"whoof-notifications/internal/domain/entity"
)

// Dispatcher defines the interface for notification dispatch
type Dispatcher interface {
	// Send runs a template through time/segment/throttle gating (unless
	// forced), interpolates placeholders, delivers and records the send
	Send(ctx context.Context, req entity.SendRequest) entity.SendResult

	// SendToMany dispatches the same template independently to each user;
	// one user's failure never blocks the others
	SendToMany(ctx context.Context, userIDs []string, templateID string, data map[string]string) entity.BatchResult

	// Recommended returns up to limit templates whose category the user's
	// segment accepts and whose time window is currently open, ordered by
	// priority. Read-only, performs no send.
	Recommended(ctx context.Context, userID string, limit int) ([]entity.Template, error)
}

// DeliveryChannel is the external "send" endpoint abstraction. Any error
// (including a timeout) means the notification was not delivered.
type DeliveryChannel interface {
	Deliver(ctx context.Context, delivery *entity.Delivery) error
}

// SegmentOracle classifies users and gates categories per segment
type SegmentOracle interface {
	// Segment computes the user's behavioral classification. Users with no
	// derivable history classify as new_user, never as denied.
	Segment(ctx context.Context, userID string) (*entity.SegmentData, error)

	// Allows answers the total (segment x category) permission table
	Allows(segment entity.Segment, category entity.Category) bool

	// MaxPerWeek returns the segment's weekly notification allowance
	MaxPerWeek(segment entity.Segment) int
}

// ThrottleGuard enforces per-user send rate limits
type ThrottleGuard interface {
	// Check applies the global limits (daily, weekly, quiet hours). The
	// weeklyCap tightens the configured weekly limit when positive.
	Check(ctx context.Context, userID string, weeklyCap int) (entity.Throttle, error)

	// ShouldThrottleCategory reports whether the most recent send of the
	// category falls inside the cool-down window
	ShouldThrottleCategory(ctx context.Context, userID string, category entity.Category) (bool, error)

	// RecordSent appends to the send log; called exactly once per
	// successful dispatch, after delivery succeeds
	RecordSent(ctx context.Context, userID, templateID string, category entity.Category) error
}

// SegmentCache stores derived segment data with a short TTL
type SegmentCache interface {
	Get(ctx context.Context, userID string) (*entity.SegmentData, error)
	Set(ctx context.Context, data *entity.SegmentData) error
}
