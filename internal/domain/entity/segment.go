package entity

import (
	"time"
)

// Segment is a coarse behavioral classification used to gate which
// notification categories a user may receive
type Segment string

const (
	SegmentNewUser  Segment = "new_user" // first days after signup
	SegmentActive   Segment = "active"   // regular recent activity
	SegmentInactive Segment = "inactive" // went quiet
	SegmentPremium  Segment = "premium"  // paying subscriber
)

// Segments lists every known segment
func Segments() []Segment {
	return []Segment{SegmentNewUser, SegmentActive, SegmentInactive, SegmentPremium}
}

// IsValid reports whether the segment is one of the known values
func (s Segment) IsValid() bool {
	switch s {
	case SegmentNewUser, SegmentActive, SegmentInactive, SegmentPremium:
		return true
	}
	return false
}

// SegmentData is a derived, cache-friendly classification of a user.
// It is recomputed on demand from activity history and never authoritative.
type SegmentData struct {
	UserID                string
	Segment               Segment
	DaysSinceSignup       int
	DaysSinceLastActivity int
	IsPremium             bool
	ActivityScore         int
	ComputedAt            time.Time
}

// ActivitySummary is what the persistence layer knows about a user's
// recent behavior, used as input for segmentation
type ActivitySummary struct {
	UserID           string
	SignupAt         time.Time
	LastActivityAt   *time.Time
	ActionsLast7Days int
	IsPremium        bool
}
