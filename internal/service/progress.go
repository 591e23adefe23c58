package service

import (
	"context"
	"log"
	"strconv"
	"time"

	"whoof-notifications/internal/catalog"
	"whoof-notifications/internal/domain/entity"
	"whoof-notifications/internal/domain/repository"
	"whoof-notifications/internal/domain/service"
)

// Milestone band: a progress notification fires when an increment moves
// the percentage from below 50 into [50, 75).
const (
	milestoneBandStart = 50
	milestoneBandEnd   = 75
)

type progressTracker struct {
	calendar *catalog.Calendar
	progress repository.ChallengeProgressRepository
	now      func() time.Time
}

// NewProgressTracker creates the challenge progress tracker
func NewProgressTracker(
	calendar *catalog.Calendar,
	progress repository.ChallengeProgressRepository,
	now func() time.Time,
) service.ProgressTracker {
	if now == nil {
		now = time.Now
	}
	return &progressTracker{
		calendar: calendar,
		progress: progress,
		now:      now,
	}
}

func (t *progressTracker) Track(ctx context.Context, userID, challengeID string, increment int) (*entity.ChallengeProgress, []entity.ProgressEvent) {
	if increment < 1 {
		increment = 1
	}

	challenge, ok := t.calendar.Current(t.now())
	if !ok || challenge.ID != challengeID {
		// Stale or expired challenge id: never count progress against the
		// wrong window.
		return nil, nil
	}

	existing, err := t.progress.Get(ctx, userID, challengeID)
	if err != nil {
		log.Printf("failed to read challenge progress for user %s: %v", userID, err)
		return nil, nil
	}

	previous := 0
	wasCompleted := false
	var completedAt *time.Time
	if existing != nil {
		previous = existing.Current
		wasCompleted = existing.Completed
		completedAt = existing.CompletedAt
	}

	now := t.now()
	updated := &entity.ChallengeProgress{
		UserID:      userID,
		ChallengeID: challengeID,
		Current:     previous + increment,
		Target:      challenge.Target,
		UpdatedAt:   now,
	}
	updated.Completed = updated.Current >= challenge.Target
	if updated.Completed {
		if completedAt != nil {
			updated.CompletedAt = completedAt
		} else {
			updated.CompletedAt = &now
		}
	}

	if err := t.progress.Upsert(ctx, updated); err != nil {
		log.Printf("failed to upsert challenge progress for user %s: %v", userID, err)
		return nil, nil
	}

	return updated, progressEvents(challenge, previous, updated, wasCompleted)
}

func (t *progressTracker) Progress(ctx context.Context, userID, challengeID string) (*entity.ChallengeProgress, error) {
	return t.progress.Get(ctx, userID, challengeID)
}

// progressEvents decides which notifications an increment earned. The
// completion event fires exactly once; the milestone event only when the
// percentage crosses into the band from below.
func progressEvents(challenge entity.Challenge, previous int, updated *entity.ChallengeProgress, wasCompleted bool) []entity.ProgressEvent {
	if updated.Completed {
		if wasCompleted {
			return nil
		}
		return []entity.ProgressEvent{entity.CompletedEvent{
			ChallengeID: challenge.ID,
			Reward:      challenge.Reward,
			Badge:       challenge.Badge,
		}}
	}

	previousPct := 0
	if challenge.Target > 0 {
		previousPct = previous * 100 / challenge.Target
	}
	pct := updated.Percentage()

	if previousPct < milestoneBandStart && pct >= milestoneBandStart && pct < milestoneBandEnd {
		return []entity.ProgressEvent{entity.MilestoneEvent{
			ChallengeID: challenge.ID,
			Percentage:  pct,
			Message:     milestoneMessage(challenge, pct),
		}}
	}

	return nil
}

func milestoneMessage(challenge entity.Challenge, pct int) string {
	if len(challenge.Milestones) == 0 {
		return ""
	}
	idx := pct * len(challenge.Milestones) / 100
	if idx >= len(challenge.Milestones) {
		idx = len(challenge.Milestones) - 1
	}
	return challenge.Milestones[idx]
}

type progressNotifier struct {
	dispatcher service.Dispatcher
}

// NewProgressNotifier creates the orchestrator that turns tracker events
// into dispatcher calls. Keeping it separate from the tracker means the
// progress state machine and delivery stay independently testable.
func NewProgressNotifier(dispatcher service.Dispatcher) service.ProgressNotifier {
	return &progressNotifier{dispatcher: dispatcher}
}

func (n *progressNotifier) Notify(ctx context.Context, userID string, events []entity.ProgressEvent) {
	for _, ev := range events {
		switch e := ev.(type) {
		case entity.CompletedEvent:
			result := n.dispatcher.Send(ctx, entity.SendRequest{
				UserID:     userID,
				TemplateID: "game_badge_unlocked",
				Data:       map[string]string{"badgeName": e.Reward},
			})
			if !result.Success {
				log.Printf("badge notification skipped for user %s: %s", userID, result.Reason)
			}
		case entity.MilestoneEvent:
			result := n.dispatcher.Send(ctx, entity.SendRequest{
				UserID:     userID,
				TemplateID: "game_challenge_progress",
				Data: map[string]string{
					"percentage": strconv.Itoa(e.Percentage),
					"message":    e.Message,
				},
			})
			if !result.Success {
				log.Printf("milestone notification skipped for user %s: %s", userID, result.Reason)
			}
		}
	}
}
