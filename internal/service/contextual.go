package service

import (
	"context"
	"log"

	"whoof-notifications/internal/catalog"
	"whoof-notifications/internal/config"
	"whoof-notifications/internal/domain/entity"
	"whoof-notifications/internal/domain/service"
)

type contextualTrigger struct {
	dispatcher service.Dispatcher
	cfg        config.ContextualConfig
}

// NewContextualTrigger creates the ambient-signal evaluator
func NewContextualTrigger(dispatcher service.Dispatcher, cfg config.ContextualConfig) service.ContextualTrigger {
	return &contextualTrigger{
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

// Evaluate checks every event type in fixed order against the supplied
// context. Each match dispatches independently; denials are silent by
// design (the user simply does not get that notification).
func (t *contextualTrigger) Evaluate(ctx context.Context, userID string, c entity.Context) []entity.TriggeredEvent {
	var triggered []entity.TriggeredEvent

	for _, eventType := range entity.EventTypes() {
		if !t.shouldTrigger(eventType, c) {
			continue
		}

		eventID := t.resolveEventID(eventType, c)
		event, ok := catalog.ContextualEventByID(eventID)
		if !ok {
			log.Printf("contextual event %s has no definition, skipping", eventID)
			continue
		}

		result := t.dispatcher.Send(ctx, entity.SendRequest{
			UserID:     userID,
			TemplateID: event.ID,
			Data:       c.Data(),
			Force:      event.Priority == entity.EventPriorityUrgent,
		})

		triggered = append(triggered, entity.TriggeredEvent{
			EventID: event.ID,
			Type:    eventType,
			Result:  result,
		})
	}

	return triggered
}

func (t *contextualTrigger) shouldTrigger(eventType entity.EventType, c entity.Context) bool {
	switch eventType {
	case entity.EventActivityWave:
		return c.NearbyDogs >= t.cfg.ActivityWaveMinDogs
	case entity.EventWeather:
		if c.Temperature == nil {
			return false
		}
		return t.isPleasant(*c.Temperature) || c.Weather == "rain"
	case entity.EventNeighborhood:
		return c.NewProfiles >= t.cfg.NeighborhoodMinProfiles
	case entity.EventDogLost:
		return c.DogLost || c.DogFound
	case entity.EventPartnerOffer:
		return c.PartnerOffer
	}
	return false
}

func (t *contextualTrigger) resolveEventID(eventType entity.EventType, c entity.Context) string {
	switch eventType {
	case entity.EventActivityWave:
		return "activity_wave"
	case entity.EventWeather:
		if c.Temperature != nil && t.isPleasant(*c.Temperature) {
			return "perfect_weather"
		}
		return "rainy_weather"
	case entity.EventNeighborhood:
		return "neighborhood_active"
	case entity.EventDogLost:
		if c.DogFound {
			return "dog_found_alert"
		}
		return "dog_lost_alert"
	case entity.EventPartnerOffer:
		return "partner_weekend_offer"
	}
	return ""
}

func (t *contextualTrigger) isPleasant(temp float64) bool {
	return temp >= t.cfg.PleasantTempMin && temp <= t.cfg.PleasantTempMax
}
