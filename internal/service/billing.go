package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"whoof-notifications/internal/domain/entity"
	"whoof-notifications/internal/domain/repository"
	"whoof-notifications/internal/domain/service"
)

// EventDeduplicator remembers processed webhook event ids so replays are
// skipped without re-applying side effects
type EventDeduplicator interface {
	// Seen reports whether the event id was already marked
	Seen(ctx context.Context, eventID string) (bool, error)
	// Mark records the event id as processed
	Mark(ctx context.Context, eventID string) error
}

type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

var relevantEventTypes = map[string]bool{
	"checkout.session.completed":    true,
	"customer.subscription.updated": true,
	"customer.subscription.deleted": true,
	"payment_intent.succeeded":      true,
}

type billingProcessor struct {
	repo  repository.BillingRepository
	dedup EventDeduplicator
	now   func() time.Time
}

// NewBillingProcessor creates the payment webhook processor. dedup may
// be nil; the updates it applies are idempotent on their own, the
// deduplicator just avoids redundant writes on provider retries.
func NewBillingProcessor(repo repository.BillingRepository, dedup EventDeduplicator, now func() time.Time) service.BillingProcessor {
	if now == nil {
		now = time.Now
	}
	return &billingProcessor{
		repo:  repo,
		dedup: dedup,
		now:   now,
	}
}

func (p *billingProcessor) Process(ctx context.Context, payload []byte) error {
	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("failed to parse webhook event: %w", err)
	}

	if !relevantEventTypes[event.Type] {
		return nil
	}

	if p.dedup != nil && event.ID != "" {
		seen, err := p.dedup.Seen(ctx, event.ID)
		if err != nil {
			log.Printf("webhook dedup check failed for event %s: %v", event.ID, err)
		} else if seen {
			log.Printf("webhook event %s already processed, skipping", event.ID)
			return nil
		}
	}

	if err := p.apply(ctx, &event); err != nil {
		return err
	}

	// The mark lands only after the side effects applied, so a failed
	// event stays replayable.
	if p.dedup != nil && event.ID != "" {
		if err := p.dedup.Mark(ctx, event.ID); err != nil {
			log.Printf("webhook dedup mark failed for event %s: %v", event.ID, err)
		}
	}

	return nil
}

func (p *billingProcessor) apply(ctx context.Context, event *stripeEvent) error {
	metadata := event.Data.Object.Metadata

	switch metadata["type"] {
	case "booking":
		return p.processBooking(ctx, event)
	case "user":
		userID := metadata["user_id"]
		if userID == "" {
			log.Printf("webhook event %s missing user_id metadata", event.ID)
			return nil
		}
		premium := event.Type != "customer.subscription.deleted"
		if err := p.repo.SetPremium(ctx, userID, premium); err != nil {
			return fmt.Errorf("failed to update premium flag: %w", err)
		}
		log.Printf("premium flag set to %t for user %s", premium, userID)
	case "pro":
		userID := metadata["user_id"]
		if userID == "" {
			log.Printf("webhook event %s missing user_id metadata", event.ID)
			return nil
		}
		plan := entity.ProPlanPremium
		if event.Type == "customer.subscription.deleted" {
			plan = entity.ProPlanFree
		}
		if err := p.repo.SetProPlan(ctx, userID, plan); err != nil {
			return fmt.Errorf("failed to update pro plan: %w", err)
		}
		log.Printf("pro plan set to %s for user %s", plan, userID)
	default:
		log.Printf("webhook event %s has no actionable metadata type", event.ID)
	}

	return nil
}

func (p *billingProcessor) processBooking(ctx context.Context, event *stripeEvent) error {
	metadata := event.Data.Object.Metadata
	bookingID := metadata["booking_id"]
	if bookingID == "" {
		log.Printf("webhook event %s missing booking_id metadata", event.ID)
		return nil
	}

	amount, err := strconv.ParseFloat(metadata["amount"], 64)
	if err != nil {
		amount = 0
	}

	tx := &entity.Transaction{
		ID:              uuid.New().String(),
		ProProfileID:    metadata["pro_user_id"],
		BookingID:       bookingID,
		UserID:          metadata["user_id"],
		Amount:          amount,
		Currency:        "EUR",
		Type:            "payment",
		Status:          "completed",
		PaymentMethod:   "stripe",
		StripePaymentID: event.Data.Object.ID,
		ServiceID:       metadata["service_id"],
		CreatedAt:       p.now(),
	}

	if err := p.repo.CreateTransaction(ctx, tx); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := p.repo.ConfirmBooking(ctx, bookingID); err != nil {
		return fmt.Errorf("failed to confirm booking: %w", err)
	}

	log.Printf("booking %s confirmed with transaction %s", bookingID, tx.ID)
	return nil
}
