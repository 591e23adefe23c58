package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"whoof-notifications/internal/config"
	"whoof-notifications/internal/domain/entity"
	"whoof-notifications/internal/domain/repository"
	"whoof-notifications/internal/domain/service"
)

type throttleGuard struct {
	records repository.SendRecordRepository
	cfg     config.ThrottleConfig
	now     func() time.Time
}

// NewThrottleGuard creates the throttle guard. The now function must
// return time in the service's deliberate timezone, since quiet hours
// and the daily boundary are local concepts.
func NewThrottleGuard(
	records repository.SendRecordRepository,
	cfg config.ThrottleConfig,
	now func() time.Time,
) service.ThrottleGuard {
	if now == nil {
		now = time.Now
	}
	return &throttleGuard{
		records: records,
		cfg:     cfg,
		now:     now,
	}
}

func (g *throttleGuard) Check(ctx context.Context, userID string, weeklyCap int) (entity.Throttle, error) {
	now := g.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	todayCount, err := g.records.CountSince(ctx, userID, todayStart)
	if err != nil {
		return entity.Throttle{}, fmt.Errorf("failed to count today's notifications: %w", err)
	}
	if todayCount >= g.cfg.PerDay {
		tomorrow := todayStart.AddDate(0, 0, 1)
		return entity.Throttle{
			CanSend:         false,
			Reason:          "daily limit reached",
			NextAvailableAt: &tomorrow,
		}, nil
	}

	weekLimit := g.cfg.PerWeek
	if weeklyCap > 0 && weeklyCap < weekLimit {
		weekLimit = weeklyCap
	}
	weekCount, err := g.records.CountSince(ctx, userID, now.AddDate(0, 0, -7))
	if err != nil {
		return entity.Throttle{}, fmt.Errorf("failed to count this week's notifications: %w", err)
	}
	if weekCount >= weekLimit {
		return entity.Throttle{
			CanSend: false,
			Reason:  "weekly limit reached",
		}, nil
	}

	if hour := now.Hour(); hour >= g.cfg.QuietStartHour || hour < g.cfg.QuietEndHour {
		nextMorning := todayStart
		if hour >= g.cfg.QuietStartHour {
			nextMorning = nextMorning.AddDate(0, 0, 1)
		}
		nextMorning = nextMorning.Add(time.Duration(g.cfg.QuietEndHour) * time.Hour)
		return entity.Throttle{
			CanSend:         false,
			Reason:          "quiet hours",
			NextAvailableAt: &nextMorning,
		}, nil
	}

	return entity.Throttle{CanSend: true}, nil
}

func (g *throttleGuard) ShouldThrottleCategory(ctx context.Context, userID string, category entity.Category) (bool, error) {
	last, err := g.records.LastCategorySend(ctx, userID, category)
	if err != nil {
		return false, fmt.Errorf("failed to read last category send: %w", err)
	}
	if last == nil {
		return false, nil
	}
	return g.now().Sub(*last) < g.cfg.CategoryCooldown, nil
}

func (g *throttleGuard) RecordSent(ctx context.Context, userID, templateID string, category entity.Category) error {
	record := &entity.SendRecord{
		ID:         uuid.New().String(),
		UserID:     userID,
		TemplateID: templateID,
		Category:   category,
		SentAt:     g.now(),
	}
	if err := g.records.Append(ctx, record); err != nil {
		return fmt.Errorf("failed to append send record: %w", err)
	}
	return nil
}
