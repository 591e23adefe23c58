package service

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"whoof-notifications/internal/catalog"
	"whoof-notifications/internal/domain/entity"
	"whoof-notifications/internal/domain/service"
)

const (
	ReasonTemplateNotFound = "template not found"
	ReasonWindowClosed     = "send window closed"
	ReasonSegmentDenied    = "category not permitted for segment"
	ReasonCategoryCooldown = "category cooldown active"
	ReasonSegmentLookup    = "segment lookup failed"
	ReasonThrottleLookup   = "throttle lookup failed"
)

type dispatcher struct {
	catalog  *catalog.Catalog
	segments service.SegmentOracle
	guard    service.ThrottleGuard
	channel  service.DeliveryChannel
	timeout  time.Duration
	now      func() time.Time

	// userLocks serializes check-then-record per user so two
	// near-simultaneous sends cannot both pass the throttle check before
	// either records. Different users never contend.
	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

// NewDispatcher creates the notification dispatcher. The now function
// must return time in the service's deliberate timezone.
func NewDispatcher(
	cat *catalog.Catalog,
	segments service.SegmentOracle,
	guard service.ThrottleGuard,
	channel service.DeliveryChannel,
	deliveryTimeout time.Duration,
	now func() time.Time,
) service.Dispatcher {
	if now == nil {
		now = time.Now
	}
	if deliveryTimeout <= 0 {
		deliveryTimeout = 5 * time.Second
	}
	return &dispatcher{
		catalog:   cat,
		segments:  segments,
		guard:     guard,
		channel:   channel,
		timeout:   deliveryTimeout,
		now:       now,
		userLocks: make(map[string]*sync.Mutex),
	}
}

func (d *dispatcher) lockUser(userID string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		d.userLocks[userID] = l
	}
	return l
}

func (d *dispatcher) Send(ctx context.Context, req entity.SendRequest) entity.SendResult {
	tpl, ok := d.catalog.TemplateByID(req.TemplateID)
	if !ok {
		return entity.SendResult{Success: false, Reason: ReasonTemplateNotFound}
	}

	lock := d.lockUser(req.UserID)
	lock.Lock()
	defer lock.Unlock()

	if !req.Force {
		if denied := d.applyGates(ctx, req.UserID, tpl); denied != nil {
			return *denied
		}
	}

	message := interpolate(tpl.Message, req.Data)

	delivery := &entity.Delivery{
		UserID:  req.UserID,
		Type:    "system",
		Title:   tpl.Title,
		Message: message,
		Data:    deliveryData(tpl, req.Data),
	}

	dctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.channel.Deliver(dctx, delivery); err != nil {
		log.Printf("delivery failed for user %s template %s: %v", req.UserID, req.TemplateID, err)
		return entity.SendResult{Success: false, Reason: err.Error()}
	}

	if err := d.guard.RecordSent(ctx, req.UserID, tpl.ID, tpl.Category); err != nil {
		// The notification went out but the log write failed; future
		// throttle decisions will under-count this user until pruned.
		log.Printf("SEND RECORD WRITE FAILED for user %s template %s, throttle may drift: %v",
			req.UserID, req.TemplateID, err)
	}

	return entity.SendResult{Success: true}
}

// applyGates runs the time-window, segment and throttle checks in order.
// A nil return means all gates passed.
func (d *dispatcher) applyGates(ctx context.Context, userID string, tpl entity.Template) *entity.SendResult {
	if !d.catalog.CanSendAt(tpl, d.now()) {
		return &entity.SendResult{Success: false, Reason: ReasonWindowClosed}
	}

	seg, err := d.segments.Segment(ctx, userID)
	if err != nil {
		log.Printf("segment lookup failed for user %s: %v", userID, err)
		return &entity.SendResult{Success: false, Reason: ReasonSegmentLookup}
	}
	if !d.segments.Allows(seg.Segment, tpl.Category) {
		return &entity.SendResult{Success: false, Reason: ReasonSegmentDenied}
	}

	throttle, err := d.guard.Check(ctx, userID, d.segments.MaxPerWeek(seg.Segment))
	if err != nil {
		log.Printf("throttle check failed for user %s: %v", userID, err)
		return &entity.SendResult{Success: false, Reason: ReasonThrottleLookup}
	}
	if !throttle.CanSend {
		return &entity.SendResult{Success: false, Reason: throttle.Reason}
	}

	cooldown, err := d.guard.ShouldThrottleCategory(ctx, userID, tpl.Category)
	if err != nil {
		log.Printf("category throttle check failed for user %s: %v", userID, err)
		return &entity.SendResult{Success: false, Reason: ReasonThrottleLookup}
	}
	if cooldown {
		return &entity.SendResult{Success: false, Reason: ReasonCategoryCooldown}
	}

	return nil
}

func (d *dispatcher) SendToMany(ctx context.Context, userIDs []string, templateID string, data map[string]string) entity.BatchResult {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)

	for _, userID := range userIDs {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			result := d.Send(ctx, entity.SendRequest{
				UserID:     userID,
				TemplateID: templateID,
				Data:       data,
			})
			if result.Success {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}(userID)
	}
	wg.Wait()

	return entity.BatchResult{
		SuccessCount: success,
		FailureCount: len(userIDs) - success,
	}
}

func (d *dispatcher) Recommended(ctx context.Context, userID string, limit int) ([]entity.Template, error) {
	if limit <= 0 {
		limit = 3
	}

	seg, err := d.segments.Segment(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := d.now()
	var candidates []entity.Template
	for _, tpl := range d.catalog.Templates() {
		if d.segments.Allows(seg.Segment, tpl.Category) && d.catalog.CanSendAt(tpl, now) {
			candidates = append(candidates, tpl)
		}
	}

	// Stable sort keeps catalog declaration order within equal priorities
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority.Rank() > candidates[j].Priority.Rank()
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// interpolate substitutes literal {key} tokens. Keys absent from data are
// left as-is; data keys with no matching token are ignored.
func interpolate(message string, data map[string]string) string {
	for key, value := range data {
		message = strings.ReplaceAll(message, "{"+key+"}", value)
	}
	return message
}

func deliveryData(tpl entity.Template, data map[string]string) map[string]string {
	out := make(map[string]string, len(data)+3)
	for k, v := range data {
		out[k] = v
	}
	out["template_id"] = tpl.ID
	out["category"] = string(tpl.Category)
	out["priority"] = string(tpl.Priority)
	return out
}
