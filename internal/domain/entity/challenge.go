package entity

import (
	"time"
)

// ObjectiveType describes what kind of user action a challenge counts
type ObjectiveType string

const (
	ObjectiveWalks   ObjectiveType = "walks"
	ObjectiveMatches ObjectiveType = "matches"
	ObjectiveParks   ObjectiveType = "parks"
	ObjectivePhotos  ObjectiveType = "photos"
	ObjectiveMinutes ObjectiveType = "minutes"
	ObjectiveDays    ObjectiveType = "days"
	ObjectiveTasks   ObjectiveType = "tasks"
)

// Challenge is a time-boxed monthly goal with a numeric target. The
// definitions are static configuration; only progress is persisted.
type Challenge struct {
	ID            string
	Month         time.Month
	Name          string
	Objective     string
	ObjectiveType ObjectiveType
	Target        int
	Reward        string
	Badge         string
	// Milestones holds the pre-authored progress messages, ordered from
	// early to late progress.
	Milestones []string
}

// ChallengeProgress tracks a single user's counter against a challenge.
// Invariant: Completed == (Current >= Target), and Current never decreases
// within a challenge's active window.
type ChallengeProgress struct {
	UserID      string
	ChallengeID string
	Current     int
	Target      int
	Completed   bool
	CompletedAt *time.Time
	UpdatedAt   time.Time
}

// Percentage returns progress as an integer percentage, floored
func (p *ChallengeProgress) Percentage() int {
	if p.Target <= 0 {
		return 0
	}
	return p.Current * 100 / p.Target
}

// ProgressEvent is raised by the tracker when an increment crosses a
// threshold worth notifying about. The tracker itself never sends
// notifications; a separate orchestration step consumes these.
type ProgressEvent interface {
	progressEvent()
}

// CompletedEvent fires exactly once, when progress first reaches the target
type CompletedEvent struct {
	ChallengeID string
	Reward      string
	Badge       string
}

func (CompletedEvent) progressEvent() {}

// MilestoneEvent fires when progress crosses into the mid-challenge band
type MilestoneEvent struct {
	ChallengeID string
	Percentage  int
	Message     string
}

func (MilestoneEvent) progressEvent() {}
