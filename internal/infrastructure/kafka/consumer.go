package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"whoof-notifications/internal/catalog"
	"whoof-notifications/internal/config"
	"whoof-notifications/internal/domain/entity"
	"whoof-notifications/internal/domain/service"

	"github.com/segmentio/kafka-go"
)

// activityEvent is the wire shape the mobile backend publishes to the
// activity topic. Count defaults to 1 when omitted.
type activityEvent struct {
	UserID    string `json:"userId"`
	EventType string `json:"eventType"`
	Count     int    `json:"count"`
}

// eventObjectives maps activity event types to the challenge objective
// they advance. Events outside this map are ignored.
var eventObjectives = map[string]entity.ObjectiveType{
	"walk_completed":  entity.ObjectiveWalks,
	"match_created":   entity.ObjectiveMatches,
	"park_discovered": entity.ObjectiveParks,
	"photo_posted":    entity.ObjectivePhotos,
	"minutes_walked":  entity.ObjectiveMinutes,
	"day_active":      entity.ObjectiveDays,
	"task_done":       entity.ObjectiveTasks,
}

type Consumer struct {
	reader   *kafka.Reader
	calendar *catalog.Calendar
	tracker  service.ProgressTracker
	notifier service.ProgressNotifier
	now      func() time.Time
}

// NewConsumer creates a new activity event consumer
func NewConsumer(
	cfg *config.KafkaConfig,
	calendar *catalog.Calendar,
	tracker service.ProgressTracker,
	notifier service.ProgressNotifier,
	now func() time.Time,
) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})

	return &Consumer{
		reader:   reader,
		calendar: calendar,
		tracker:  tracker,
		notifier: notifier,
		now:      now,
	}
}

// Start starts consuming messages from Kafka
func (c *Consumer) Start(ctx context.Context) error {
	log.Println("Starting Kafka consumer...")

	for {
		select {
		case <-ctx.Done():
			log.Println("Stopping Kafka consumer...")
			return c.reader.Close()
		default:
			message, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return c.reader.Close()
				}
				log.Printf("Error reading message: %v", err)
				continue
			}

			if err := c.processMessage(ctx, message); err != nil {
				log.Printf("Error processing message: %v", err)
				// Continue processing other messages even if one fails
			}
		}
	}
}

// processMessage applies an activity event to the current monthly challenge
func (c *Consumer) processMessage(ctx context.Context, message kafka.Message) error {
	var event activityEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal activity event: %w", err)
	}

	if event.UserID == "" {
		return fmt.Errorf("activity event without userId")
	}

	objective, ok := eventObjectives[event.EventType]
	if !ok {
		log.Printf("Ignoring unknown event type: %s", event.EventType)
		return nil
	}

	challenge, ok := c.calendar.Current(c.now())
	if !ok {
		return nil
	}
	if challenge.ObjectiveType != objective {
		return nil
	}

	increment := event.Count
	if increment < 1 {
		increment = 1
	}

	_, events := c.tracker.Track(ctx, event.UserID, challenge.ID, increment)
	if len(events) > 0 {
		c.notifier.Notify(ctx, event.UserID, events)
	}

	return nil
}
