package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"whoof-notifications/internal/config"
	"whoof-notifications/internal/domain/entity"
	"whoof-notifications/internal/domain/repository"
	"whoof-notifications/internal/domain/service"
)

// AllowMatrix is the total (segment x category) permission table. Adding
// a segment or a category forces an explicit decision for every
// counterpart; there is no default branch.
type AllowMatrix map[entity.Segment]map[entity.Category]bool

// NewAllowMatrix validates that the matrix is total
func NewAllowMatrix(m map[entity.Segment]map[entity.Category]bool) (AllowMatrix, error) {
	for _, seg := range entity.Segments() {
		row, ok := m[seg]
		if !ok {
			return nil, fmt.Errorf("allow matrix missing segment: %s", seg)
		}
		for _, cat := range entity.Categories() {
			if _, ok := row[cat]; !ok {
				return nil, fmt.Errorf("allow matrix missing entry: %s x %s", seg, cat)
			}
		}
	}
	return AllowMatrix(m), nil
}

// DefaultAllowMatrix encodes the product's category policy:
// new users get onboarding and discovery, active users everything but
// reactivation, inactive users reactivation plus a few hooks back in,
// premium users stats and exclusives.
func DefaultAllowMatrix() AllowMatrix {
	m, err := NewAllowMatrix(map[entity.Segment]map[entity.Category]bool{
		entity.SegmentNewUser: {
			entity.CategoryMatching:     true,
			entity.CategoryWalks:        true,
			entity.CategoryGamification: true,
			entity.CategoryReactivation: false,
			entity.CategoryPartners:     false,
			entity.CategoryAffective:    false,
		},
		entity.SegmentActive: {
			entity.CategoryMatching:     true,
			entity.CategoryWalks:        true,
			entity.CategoryGamification: true,
			entity.CategoryReactivation: false,
			entity.CategoryPartners:     true,
			entity.CategoryAffective:    true,
		},
		entity.SegmentInactive: {
			entity.CategoryMatching:     true,
			entity.CategoryWalks:        true,
			entity.CategoryGamification: false,
			entity.CategoryReactivation: true,
			entity.CategoryPartners:     false,
			entity.CategoryAffective:    false,
		},
		entity.SegmentPremium: {
			entity.CategoryMatching:     true,
			entity.CategoryWalks:        false,
			entity.CategoryGamification: true,
			entity.CategoryReactivation: false,
			entity.CategoryPartners:     true,
			entity.CategoryAffective:    false,
		},
	})
	if err != nil {
		panic(fmt.Sprintf("invalid built-in allow matrix: %v", err))
	}
	return m
}

type segmenter struct {
	activity repository.ActivityRepository
	cache    service.SegmentCache
	matrix   AllowMatrix
	cfg      config.SegmentationConfig
	now      func() time.Time
}

// NewSegmenter creates the segmentation oracle. cache may be nil, in
// which case every call recomputes from activity history.
func NewSegmenter(
	activity repository.ActivityRepository,
	cache service.SegmentCache,
	matrix AllowMatrix,
	cfg config.SegmentationConfig,
	now func() time.Time,
) service.SegmentOracle {
	if now == nil {
		now = time.Now
	}
	return &segmenter{
		activity: activity,
		cache:    cache,
		matrix:   matrix,
		cfg:      cfg,
		now:      now,
	}
}

func (s *segmenter) Segment(ctx context.Context, userID string) (*entity.SegmentData, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, userID); err != nil {
			log.Printf("segment cache read failed for user %s: %v", userID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	summary, err := s.activity.Summary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity summary: %w", err)
	}

	now := s.now()
	data := &entity.SegmentData{
		UserID:     userID,
		ComputedAt: now,
	}

	if summary == nil {
		// No derivable history: classify as the most permissive new-user
		// bucket rather than denying everything.
		data.Segment = entity.SegmentNewUser
	} else {
		data.DaysSinceSignup = daysBetween(summary.SignupAt, now)
		lastActivity := summary.SignupAt
		if summary.LastActivityAt != nil {
			lastActivity = *summary.LastActivityAt
		}
		data.DaysSinceLastActivity = daysBetween(lastActivity, now)
		data.IsPremium = summary.IsPremium
		data.ActivityScore = summary.ActionsLast7Days
		data.Segment = s.classify(data)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, data); err != nil {
			log.Printf("segment cache write failed for user %s: %v", userID, err)
		}
	}

	return data, nil
}

func (s *segmenter) classify(data *entity.SegmentData) entity.Segment {
	switch {
	case data.IsPremium:
		return entity.SegmentPremium
	case data.DaysSinceSignup <= s.cfg.NewUserMaxDays:
		return entity.SegmentNewUser
	case data.DaysSinceLastActivity >= s.cfg.InactiveMinDays:
		return entity.SegmentInactive
	default:
		return entity.SegmentActive
	}
}

func (s *segmenter) Allows(segment entity.Segment, category entity.Category) bool {
	row, ok := s.matrix[segment]
	if !ok {
		return false
	}
	return row[category]
}

func (s *segmenter) MaxPerWeek(segment entity.Segment) int {
	if cap, ok := s.cfg.MaxPerWeek[string(segment)]; ok {
		return cap
	}
	return 3
}

func daysBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}
