package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"whoof-notifications/internal/domain/entity"
)

// fakeActivityRepo serves canned activity summaries
type fakeActivityRepo struct {
	summaries map[string]*entity.ActivitySummary
	emails    map[string]string
	err       error
}

func (f *fakeActivityRepo) Summary(ctx context.Context, userID string) (*entity.ActivitySummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summaries[userID], nil
}

func (f *fakeActivityRepo) Email(ctx context.Context, userID string) (string, error) {
	return f.emails[userID], nil
}

// fakeRecordRepo is an in-memory send log
type fakeRecordRepo struct {
	mu      sync.Mutex
	records []*entity.SendRecord
	err     error
}

func (f *fakeRecordRepo) Append(ctx context.Context, record *entity.SendRecord) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, record)
	return nil
}

func (f *fakeRecordRepo) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, r := range f.records {
		if r.UserID == userID && !r.SentAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRecordRepo) LastCategorySend(ctx context.Context, userID string, category entity.Category) (*time.Time, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var last *time.Time
	for _, r := range f.records {
		if r.UserID == userID && r.Category == category {
			if last == nil || r.SentAt.After(*last) {
				t := r.SentAt
				last = &t
			}
		}
	}
	return last, nil
}

func (f *fakeRecordRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []*entity.SendRecord
	var deleted int64
	for _, r := range f.records {
		if r.SentAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return deleted, nil
}

// fakeProgressRepo is an in-memory challenge progress store
type fakeProgressRepo struct {
	rows      map[string]*entity.ChallengeProgress
	getErr    error
	upsertErr error
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{rows: make(map[string]*entity.ChallengeProgress)}
}

func (f *fakeProgressRepo) Get(ctx context.Context, userID, challengeID string) (*entity.ChallengeProgress, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	row, ok := f.rows[userID+"/"+challengeID]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeProgressRepo) Upsert(ctx context.Context, progress *entity.ChallengeProgress) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	cp := *progress
	f.rows[progress.UserID+"/"+progress.ChallengeID] = &cp
	return nil
}

// fakeOracle returns a fixed segment and answers the default matrix
type fakeOracle struct {
	segment entity.Segment
	err     error
	matrix  AllowMatrix
	weekly  int
}

func newFakeOracle(segment entity.Segment) *fakeOracle {
	return &fakeOracle{segment: segment, matrix: DefaultAllowMatrix(), weekly: 5}
}

func (f *fakeOracle) Segment(ctx context.Context, userID string) (*entity.SegmentData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.SegmentData{UserID: userID, Segment: f.segment}, nil
}

func (f *fakeOracle) Allows(segment entity.Segment, category entity.Category) bool {
	return f.matrix[segment][category]
}

func (f *fakeOracle) MaxPerWeek(segment entity.Segment) int {
	return f.weekly
}

// fakeGuard answers throttle checks with canned verdicts
type fakeGuard struct {
	mu        sync.Mutex
	verdict   entity.Throttle
	checkErr  error
	cooldown  bool
	recordErr error
	recorded  []string
}

func newFakeGuard() *fakeGuard {
	return &fakeGuard{verdict: entity.Throttle{CanSend: true}}
}

func (f *fakeGuard) Check(ctx context.Context, userID string, weeklyCap int) (entity.Throttle, error) {
	if f.checkErr != nil {
		return entity.Throttle{}, f.checkErr
	}
	return f.verdict, nil
}

func (f *fakeGuard) ShouldThrottleCategory(ctx context.Context, userID string, category entity.Category) (bool, error) {
	return f.cooldown, nil
}

func (f *fakeGuard) RecordSent(ctx context.Context, userID, templateID string, category entity.Category) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, templateID)
	return nil
}

// fakeChannel captures deliveries
type fakeChannel struct {
	mu         sync.Mutex
	deliveries []*entity.Delivery
	err        error
}

func (f *fakeChannel) Deliver(ctx context.Context, delivery *entity.Delivery) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deliveries = append(f.deliveries, delivery)
	return nil
}

func (f *fakeChannel) last() *entity.Delivery {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.deliveries) == 0 {
		return nil
	}
	return f.deliveries[len(f.deliveries)-1]
}

// fakeDispatcher records send requests and returns a canned result
type fakeDispatcher struct {
	mu       sync.Mutex
	requests []entity.SendRequest
	result   entity.SendResult
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{result: entity.SendResult{Success: true}}
}

func (f *fakeDispatcher) Send(ctx context.Context, req entity.SendRequest) entity.SendResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.result
}

func (f *fakeDispatcher) SendToMany(ctx context.Context, userIDs []string, templateID string, data map[string]string) entity.BatchResult {
	for _, userID := range userIDs {
		f.Send(ctx, entity.SendRequest{UserID: userID, TemplateID: templateID, Data: data})
	}
	return entity.BatchResult{SuccessCount: len(userIDs)}
}

func (f *fakeDispatcher) Recommended(ctx context.Context, userID string, limit int) ([]entity.Template, error) {
	return nil, nil
}

// fakeBillingRepo records billing side effects
type fakeBillingRepo struct {
	premium      map[string]bool
	proPlans     map[string]entity.ProPlan
	transactions []*entity.Transaction
	confirmed    []string
	premiumErr   error
}

func newFakeBillingRepo() *fakeBillingRepo {
	return &fakeBillingRepo{
		premium:  make(map[string]bool),
		proPlans: make(map[string]entity.ProPlan),
	}
}

func (f *fakeBillingRepo) SetPremium(ctx context.Context, userID string, premium bool) error {
	if f.premiumErr != nil {
		return f.premiumErr
	}
	f.premium[userID] = premium
	return nil
}

func (f *fakeBillingRepo) SetProPlan(ctx context.Context, userID string, plan entity.ProPlan) error {
	f.proPlans[userID] = plan
	return nil
}

func (f *fakeBillingRepo) CreateTransaction(ctx context.Context, tx *entity.Transaction) error {
	f.transactions = append(f.transactions, tx)
	return nil
}

func (f *fakeBillingRepo) ConfirmBooking(ctx context.Context, bookingID string) error {
	f.confirmed = append(f.confirmed, bookingID)
	return nil
}

// fakeDedup remembers seen event ids in memory
type fakeDedup struct {
	seen map[string]bool
}

func newFakeDedup() *fakeDedup {
	return &fakeDedup{seen: make(map[string]bool)}
}

func (f *fakeDedup) Seen(ctx context.Context, eventID string) (bool, error) {
	return f.seen[eventID], nil
}

func (f *fakeDedup) Mark(ctx context.Context, eventID string) error {
	f.seen[eventID] = true
	return nil
}

var errBoom = errors.New("boom")

// fixedTime returns a now function pinned to the given instant
func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
