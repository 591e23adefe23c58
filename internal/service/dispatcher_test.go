package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whoof-notifications/internal/catalog"
	"whoof-notifications/internal/domain/entity"
	"whoof-notifications/internal/domain/service"
)

// middayParis is inside every daytime template window and outside quiet
// hours
var middayParis = time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)

func newTestDispatcher(oracle *fakeOracle, guard *fakeGuard, channel service.DeliveryChannel) *dispatcher {
	d := NewDispatcher(catalog.Default(), oracle, guard, channel, time.Second, fixedTime(middayParis))
	return d.(*dispatcher)
}

func TestSendUnknownTemplate(t *testing.T) {
	d := newTestDispatcher(newFakeOracle(entity.SegmentActive), newFakeGuard(), &fakeChannel{})

	result := d.Send(context.Background(), entity.SendRequest{UserID: "u1", TemplateID: "nope"})
	assert.False(t, result.Success)
	assert.Equal(t, ReasonTemplateNotFound, result.Reason)
}

func TestSendOutsideTemplateWindow(t *testing.T) {
	channel := &fakeChannel{}
	d := newTestDispatcher(newFakeOracle(entity.SegmentActive), newFakeGuard(), channel)

	// affective_dog_wants_out only sends between 16:00 and 19:00
	result := d.Send(context.Background(), entity.SendRequest{UserID: "u1", TemplateID: "affective_dog_wants_out"})
	assert.False(t, result.Success)
	assert.Equal(t, ReasonWindowClosed, result.Reason)
	assert.Empty(t, channel.deliveries)
}

func TestSendSegmentDenied(t *testing.T) {
	channel := &fakeChannel{}
	d := newTestDispatcher(newFakeOracle(entity.SegmentActive), newFakeGuard(), channel)

	// Reactivation never reaches active users
	result := d.Send(context.Background(), entity.SendRequest{UserID: "u1", TemplateID: "reactive_miss_you"})
	assert.False(t, result.Success)
	assert.Equal(t, ReasonSegmentDenied, result.Reason)
	assert.Empty(t, channel.deliveries)
}

func TestSendThrottled(t *testing.T) {
	guard := newFakeGuard()
	guard.verdict = entity.Throttle{CanSend: false, Reason: "daily limit reached"}
	channel := &fakeChannel{}
	d := newTestDispatcher(newFakeOracle(entity.SegmentActive), guard, channel)

	result := d.Send(context.Background(), entity.SendRequest{UserID: "u1", TemplateID: "match_whoofed"})
	assert.False(t, result.Success)
	assert.Equal(t, "daily limit reached", result.Reason)
	assert.Empty(t, channel.deliveries)
}

func TestSendCategoryCooldown(t *testing.T) {
	guard := newFakeGuard()
	guard.cooldown = true
	d := newTestDispatcher(newFakeOracle(entity.SegmentActive), guard, &fakeChannel{})

	result := d.Send(context.Background(), entity.SendRequest{UserID: "u1", TemplateID: "match_whoofed"})
	assert.False(t, result.Success)
	assert.Equal(t, ReasonCategoryCooldown, result.Reason)
}

func TestSendSuccessRecordsSend(t *testing.T) {
	guard := newFakeGuard()
	channel := &fakeChannel{}
	d := newTestDispatcher(newFakeOracle(entity.SegmentActive), guard, channel)

	result := d.Send(context.Background(), entity.SendRequest{UserID: "u1", TemplateID: "match_whoofed"})
	require.True(t, result.Success)
	require.Len(t, channel.deliveries, 1)
	assert.Equal(t, []string{"match_whoofed"}, guard.recorded)
}

func TestSendInterpolation(t *testing.T) {
	channel := &fakeChannel{}
	d := newTestDispatcher(newFakeOracle(entity.SegmentActive), newFakeGuard(), channel)

	result := d.Send(context.Background(), entity.SendRequest{
		UserID:     "u1",
		TemplateID: "match_profile_views",
		Data:       map[string]string{"viewCount": "12"},
	})
	require.True(t, result.Success)

	delivery := channel.last()
	require.NotNil(t, delivery)
	assert.Equal(t, "Ton profil a été flairé 12 fois aujourd'hui 👃✨", delivery.Message)
	assert.Equal(t, "match_profile_views", delivery.Data["template_id"])
	assert.Equal(t, "matching", delivery.Data["category"])
	assert.Equal(t, "low", delivery.Data["priority"])
	assert.Equal(t, "12", delivery.Data["viewCount"])
}

func TestSendMissingPlaceholderLeftIntact(t *testing.T) {
	channel := &fakeChannel{}
	d := newTestDispatcher(newFakeOracle(entity.SegmentActive), newFakeGuard(), channel)

	result := d.Send(context.Background(), entity.SendRequest{UserID: "u1", TemplateID: "match_profile_views"})
	require.True(t, result.Success)
	assert.Contains(t, channel.last().Message, "{viewCount}")
}

func TestSendForceBypassesGates(t *testing.T) {
	oracle := newFakeOracle(entity.SegmentActive)
	oracle.err = errBoom // segment lookup would fail if consulted
	guard := newFakeGuard()
	guard.verdict = entity.Throttle{CanSend: false, Reason: "daily limit reached"}
	channel := &fakeChannel{}
	d := newTestDispatcher(oracle, guard, channel)

	result := d.Send(context.Background(), entity.SendRequest{
		UserID:     "u1",
		TemplateID: "dog_lost_alert",
		Force:      true,
	})
	require.True(t, result.Success)
	require.Len(t, channel.deliveries, 1)
	// Forced sends still count toward future throttling
	assert.Equal(t, []string{"dog_lost_alert"}, guard.recorded)
}

func TestSendDeliveryFailure(t *testing.T) {
	guard := newFakeGuard()
	channel := &fakeChannel{err: errBoom}
	d := newTestDispatcher(newFakeOracle(entity.SegmentActive), guard, channel)

	result := d.Send(context.Background(), entity.SendRequest{UserID: "u1", TemplateID: "match_whoofed"})
	assert.False(t, result.Success)
	assert.Equal(t, "boom", result.Reason)
	// Nothing recorded for a failed delivery
	assert.Empty(t, guard.recorded)
}

func TestSendRecordFailureStillSucceeds(t *testing.T) {
	guard := newFakeGuard()
	guard.recordErr = errBoom
	channel := &fakeChannel{}
	d := newTestDispatcher(newFakeOracle(entity.SegmentActive), guard, channel)

	result := d.Send(context.Background(), entity.SendRequest{UserID: "u1", TemplateID: "match_whoofed"})
	assert.True(t, result.Success)
	assert.Len(t, channel.deliveries, 1)
}

// failForChannel fails delivery for one specific user
type failForChannel struct {
	fakeChannel
	failUser string
}

func (f *failForChannel) Deliver(ctx context.Context, delivery *entity.Delivery) error {
	if delivery.UserID == f.failUser {
		return errBoom
	}
	return f.fakeChannel.Deliver(ctx, delivery)
}

func TestSendToManyCountsIndependently(t *testing.T) {
	channel := &failForChannel{failUser: "u2"}
	d := newTestDispatcher(newFakeOracle(entity.SegmentActive), newFakeGuard(), channel)

	result := d.SendToMany(context.Background(), []string{"u1", "u2", "u3"}, "match_whoofed", nil)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
}

func TestRecommendedOrderingAndLimit(t *testing.T) {
	d := newTestDispatcher(newFakeOracle(entity.SegmentActive), newFakeGuard(), &fakeChannel{})

	templates, err := d.Recommended(context.Background(), "u1", 0)
	require.NoError(t, err)
	require.Len(t, templates, 3)
	for _, tpl := range templates {
		assert.Equal(t, entity.PriorityHigh, tpl.Priority)
	}
	// Stable sort keeps catalog order within the same priority
	assert.Equal(t, "match_whoofed", templates[0].ID)
	assert.Equal(t, "match_compatible_nearby", templates[1].ID)
}

func TestRecommendedHonorsSegmentAndWindow(t *testing.T) {
	d := newTestDispatcher(newFakeOracle(entity.SegmentInactive), newFakeGuard(), &fakeChannel{})

	templates, err := d.Recommended(context.Background(), "u1", 100)
	require.NoError(t, err)
	require.NotEmpty(t, templates)

	oracle := newFakeOracle(entity.SegmentInactive)
	for _, tpl := range templates {
		assert.True(t, oracle.Allows(entity.SegmentInactive, tpl.Category),
			"template %s category %s not allowed for inactive users", tpl.ID, tpl.Category)
		assert.True(t, tpl.Timing.Contains(middayParis.Hour()),
			"template %s window closed at test time", tpl.ID)
	}
}

// onceGuard allows exactly one send. Its Check observes whether a record
// already landed, so interleaved check-then-record sections show up as a
// double success.
type onceGuard struct {
	mu   sync.Mutex
	sent int
}

func (g *onceGuard) Check(ctx context.Context, userID string, weeklyCap int) (entity.Throttle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sent > 0 {
		return entity.Throttle{CanSend: false, Reason: "daily limit reached"}, nil
	}
	return entity.Throttle{CanSend: true}, nil
}

func (g *onceGuard) ShouldThrottleCategory(ctx context.Context, userID string, category entity.Category) (bool, error) {
	return false, nil
}

func (g *onceGuard) RecordSent(ctx context.Context, userID, templateID string, category entity.Category) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent++
	return nil
}

// stallChannel holds delivery open long enough for a second send to
// reach the throttle check
type stallChannel struct {
	fakeChannel
}

func (c *stallChannel) Deliver(ctx context.Context, delivery *entity.Delivery) error {
	time.Sleep(20 * time.Millisecond)
	return c.fakeChannel.Deliver(ctx, delivery)
}

func TestSendSerializesPerUser(t *testing.T) {
	guard := &onceGuard{}
	channel := &stallChannel{}
	d := NewDispatcher(catalog.Default(), newFakeOracle(entity.SegmentActive), guard, channel, time.Second, fixedTime(middayParis))

	results := make(chan entity.SendResult, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- d.Send(context.Background(), entity.SendRequest{UserID: "u1", TemplateID: "match_whoofed"})
		}()
	}
	wg.Wait()
	close(results)

	successes, denials := 0, 0
	for result := range results {
		if result.Success {
			successes++
		} else {
			denials++
			assert.Equal(t, "daily limit reached", result.Reason)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, denials)
	assert.Equal(t, 1, guard.sent)
	assert.Len(t, channel.deliveries, 1)
}
