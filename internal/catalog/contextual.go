package catalog

import (
	"whoof-notifications/internal/domain/entity"
)

// defaultContextualEvents are the static contextual rule definitions.
// Each event's ID matches a catalog template id.
var defaultContextualEvents = []entity.ContextualEvent{
	{ID: "activity_wave", Type: entity.EventActivityWave, Priority: entity.EventPriorityHigh, Icon: "🔥"},
	{ID: "perfect_weather", Type: entity.EventWeather, Priority: entity.EventPriorityMedium, Icon: "🌤️"},
	{ID: "rainy_weather", Type: entity.EventWeather, Priority: entity.EventPriorityLow, Icon: "🌧️"},
	{ID: "neighborhood_active", Type: entity.EventNeighborhood, Priority: entity.EventPriorityMedium, Icon: "🏘️"},
	{ID: "new_park_popular", Type: entity.EventNeighborhood, Priority: entity.EventPriorityLow, Icon: "🗺️"},
	{ID: "dog_lost_alert", Type: entity.EventDogLost, Priority: entity.EventPriorityUrgent, Icon: "🚨"},
	{ID: "dog_found_alert", Type: entity.EventDogLost, Priority: entity.EventPriorityHigh, Icon: "✅"},
	{ID: "partner_weekend_offer", Type: entity.EventPartnerOffer, Priority: entity.EventPriorityLow, Icon: "🎁"},
	{ID: "partner_grooming_offer", Type: entity.EventPartnerOffer, Priority: entity.EventPriorityLow, Icon: "✂️"},
	{ID: "partner_vet_offer", Type: entity.EventPartnerOffer, Priority: entity.EventPriorityLow, Icon: "🩺"},
}

// ContextualEvents returns all contextual event definitions in
// declaration order
func ContextualEvents() []entity.ContextualEvent {
	out := make([]entity.ContextualEvent, len(defaultContextualEvents))
	copy(out, defaultContextualEvents)
	return out
}

// ContextualEventByID looks up one contextual event definition
func ContextualEventByID(id string) (entity.ContextualEvent, bool) {
	for _, ev := range defaultContextualEvents {
		if ev.ID == id {
			return ev, true
		}
	}
	return entity.ContextualEvent{}, false
}
