package entity

import (
	"strconv"
)

// EventType identifies a family of ambient conditions that can trigger
// a notification outside the challenge system
type EventType string

const (
	EventActivityWave EventType = "activity_wave"
	EventWeather      EventType = "weather"
	EventNeighborhood EventType = "neighborhood"
	EventDogLost      EventType = "dog_lost"
	EventPartnerOffer EventType = "partner_offer"
)

// EventTypes returns the fixed evaluation order for contextual events
func EventTypes() []EventType {
	return []EventType{
		EventActivityWave,
		EventWeather,
		EventNeighborhood,
		EventDogLost,
		EventPartnerOffer,
	}
}

// EventPriority extends template priorities with an urgent level that
// forces delivery past all gating
type EventPriority string

const (
	EventPriorityLow    EventPriority = "low"
	EventPriorityMedium EventPriority = "medium"
	EventPriorityHigh   EventPriority = "high"
	EventPriorityUrgent EventPriority = "urgent"
)

// ContextualEvent is a static rule definition. Its ID doubles as the
// template id dispatched when the event fires.
type ContextualEvent struct {
	ID       string
	Type     EventType
	Priority EventPriority
	Icon     string
}

// TriggeredEvent reports one contextual event that matched and the
// dispatch outcome it produced
type TriggeredEvent struct {
	EventID string
	Type    EventType
	Result  SendResult
}

// Context carries the ambient signals for one evaluation call. It is
// supplied by the caller and never persisted.
type Context struct {
	NearbyDogs   int
	Temperature  *float64
	Weather      string
	NewProfiles  int
	DogLost      bool
	DogFound     bool
	PartnerOffer bool
}

// Data flattens the set signals into interpolation data for dispatch
func (c Context) Data() map[string]string {
	data := make(map[string]string)
	if c.NearbyDogs > 0 {
		data["nearbyDogs"] = strconv.Itoa(c.NearbyDogs)
	}
	if c.Temperature != nil {
		data["temperature"] = strconv.FormatFloat(*c.Temperature, 'f', -1, 64)
	}
	if c.Weather != "" {
		data["weather"] = c.Weather
	}
	if c.NewProfiles > 0 {
		data["newProfiles"] = strconv.Itoa(c.NewProfiles)
	}
	return data
}
