package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whoof-notifications/internal/catalog"
	"whoof-notifications/internal/domain/entity"
)

var juneNow = time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

func testChallenge() entity.Challenge {
	return entity.Challenge{
		ID:            "june_walks",
		Month:         time.June,
		Name:          "June Walks",
		ObjectiveType: entity.ObjectiveWalks,
		Target:        10,
		Reward:        `Badge "Marcheur de Juin"`,
		Badge:         "🌞",
		Milestones: []string{
			"Première balade du mois 🐾",
			"Déjà bien parti 🔥",
			"Mi-parcours atteint 🎯",
			"Dernière ligne droite 💪",
		},
	}
}

func newTestTracker(repo *fakeProgressRepo) *progressTracker {
	calendar := catalog.NewCalendar([]entity.Challenge{testChallenge()})
	tr := NewProgressTracker(calendar, repo, fixedTime(juneNow))
	return tr.(*progressTracker)
}

func TestTrackAccumulates(t *testing.T) {
	repo := newFakeProgressRepo()
	tracker := newTestTracker(repo)

	progress, events := tracker.Track(context.Background(), "u1", "june_walks", 3)
	require.NotNil(t, progress)
	assert.Equal(t, 3, progress.Current)
	assert.Equal(t, 10, progress.Target)
	assert.False(t, progress.Completed)
	assert.Empty(t, events)

	progress, _ = tracker.Track(context.Background(), "u1", "june_walks", 1)
	require.NotNil(t, progress)
	assert.Equal(t, 4, progress.Current)
}

func TestTrackCoercesIncrementToOne(t *testing.T) {
	repo := newFakeProgressRepo()
	tracker := newTestTracker(repo)

	progress, _ := tracker.Track(context.Background(), "u1", "june_walks", 0)
	require.NotNil(t, progress)
	assert.Equal(t, 1, progress.Current)

	progress, _ = tracker.Track(context.Background(), "u1", "june_walks", -5)
	require.NotNil(t, progress)
	assert.Equal(t, 2, progress.Current)
}

func TestTrackStaleChallengeIgnored(t *testing.T) {
	repo := newFakeProgressRepo()
	tracker := newTestTracker(repo)

	progress, events := tracker.Track(context.Background(), "u1", "may_social", 1)
	assert.Nil(t, progress)
	assert.Empty(t, events)
	assert.Empty(t, repo.rows)
}

func TestTrackMilestoneFiresOnceOnBandEntry(t *testing.T) {
	repo := newFakeProgressRepo()
	tracker := newTestTracker(repo)

	// 4/10 = 40%, below the band
	_, events := tracker.Track(context.Background(), "u1", "june_walks", 4)
	assert.Empty(t, events)

	// 5/10 = 50%, crossing in fires the milestone
	_, events = tracker.Track(context.Background(), "u1", "june_walks", 1)
	require.Len(t, events, 1)
	milestone, ok := events[0].(entity.MilestoneEvent)
	require.True(t, ok)
	assert.Equal(t, 50, milestone.Percentage)
	assert.Equal(t, "Mi-parcours atteint 🎯", milestone.Message)

	// Further progress inside the band stays silent
	_, events = tracker.Track(context.Background(), "u1", "june_walks", 1)
	assert.Empty(t, events)
	_, events = tracker.Track(context.Background(), "u1", "june_walks", 1)
	assert.Empty(t, events)
}

func TestTrackMilestoneSkippedWhenJumpingPastBand(t *testing.T) {
	repo := newFakeProgressRepo()
	tracker := newTestTracker(repo)

	// 0 -> 8/10 = 80% lands beyond the band; no milestone fires
	_, events := tracker.Track(context.Background(), "u1", "june_walks", 8)
	assert.Empty(t, events)
}

func TestTrackCompletionFiresOnce(t *testing.T) {
	repo := newFakeProgressRepo()
	tracker := newTestTracker(repo)

	_, events := tracker.Track(context.Background(), "u1", "june_walks", 9)
	assert.Empty(t, events)

	progress, events := tracker.Track(context.Background(), "u1", "june_walks", 1)
	require.NotNil(t, progress)
	assert.True(t, progress.Completed)
	require.NotNil(t, progress.CompletedAt)
	require.Len(t, events, 1)
	completed, ok := events[0].(entity.CompletedEvent)
	require.True(t, ok)
	assert.Equal(t, "june_walks", completed.ChallengeID)
	assert.Equal(t, `Badge "Marcheur de Juin"`, completed.Reward)

	firstCompletedAt := *progress.CompletedAt

	// Progress keeps accumulating past the target without re-firing
	progress, events = tracker.Track(context.Background(), "u1", "june_walks", 1)
	require.NotNil(t, progress)
	assert.Equal(t, 11, progress.Current)
	assert.True(t, progress.Completed)
	assert.Empty(t, events)
	assert.Equal(t, firstCompletedAt, *progress.CompletedAt)
}

func TestTrackPersistenceFailures(t *testing.T) {
	repo := newFakeProgressRepo()
	repo.getErr = errBoom
	tracker := newTestTracker(repo)

	progress, events := tracker.Track(context.Background(), "u1", "june_walks", 1)
	assert.Nil(t, progress)
	assert.Empty(t, events)

	repo = newFakeProgressRepo()
	repo.upsertErr = errBoom
	tracker = newTestTracker(repo)

	progress, events = tracker.Track(context.Background(), "u1", "june_walks", 1)
	assert.Nil(t, progress)
	assert.Empty(t, events)
}

func TestNotifierDispatchesCompletion(t *testing.T) {
	dispatcher := newFakeDispatcher()
	notifier := NewProgressNotifier(dispatcher)

	notifier.Notify(context.Background(), "u1", []entity.ProgressEvent{
		entity.CompletedEvent{ChallengeID: "june_walks", Reward: `Badge "Marcheur de Juin"`, Badge: "🌞"},
	})

	require.Len(t, dispatcher.requests, 1)
	req := dispatcher.requests[0]
	assert.Equal(t, "u1", req.UserID)
	assert.Equal(t, "game_badge_unlocked", req.TemplateID)
	assert.Equal(t, `Badge "Marcheur de Juin"`, req.Data["badgeName"])
	assert.False(t, req.Force)
}

func TestNotifierDispatchesMilestone(t *testing.T) {
	dispatcher := newFakeDispatcher()
	notifier := NewProgressNotifier(dispatcher)

	notifier.Notify(context.Background(), "u1", []entity.ProgressEvent{
		entity.MilestoneEvent{ChallengeID: "june_walks", Percentage: 50, Message: "Mi-parcours atteint 🎯"},
	})

	require.Len(t, dispatcher.requests, 1)
	req := dispatcher.requests[0]
	assert.Equal(t, "game_challenge_progress", req.TemplateID)
	assert.Equal(t, "50", req.Data["percentage"])
	assert.Equal(t, "Mi-parcours atteint 🎯", req.Data["message"])
}
