package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whoof-notifications/internal/config"
	"whoof-notifications/internal/domain/entity"
)

func contextualConfig() config.ContextualConfig {
	return config.ContextualConfig{
		ActivityWaveMinDogs:     10,
		NeighborhoodMinProfiles: 5,
		PleasantTempMin:         18,
		PleasantTempMax:         25,
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestEvaluateNoSignals(t *testing.T) {
	trigger := NewContextualTrigger(newFakeDispatcher(), contextualConfig())

	triggered := trigger.Evaluate(context.Background(), "u1", entity.Context{})
	assert.Empty(t, triggered)
}

func TestEvaluateActivityWave(t *testing.T) {
	dispatcher := newFakeDispatcher()
	trigger := NewContextualTrigger(dispatcher, contextualConfig())

	triggered := trigger.Evaluate(context.Background(), "u1", entity.Context{NearbyDogs: 9})
	assert.Empty(t, triggered)

	triggered = trigger.Evaluate(context.Background(), "u1", entity.Context{NearbyDogs: 12})
	require.Len(t, triggered, 1)
	assert.Equal(t, "activity_wave", triggered[0].EventID)
	assert.Equal(t, entity.EventActivityWave, triggered[0].Type)
	assert.Equal(t, "12", dispatcher.requests[0].Data["nearbyDogs"])
}

func TestEvaluateWeatherBranches(t *testing.T) {
	tests := []struct {
		name    string
		ctx     entity.Context
		eventID string
	}{
		{name: "pleasant temperature", ctx: entity.Context{Temperature: floatPtr(21)}, eventID: "perfect_weather"},
		{name: "rain", ctx: entity.Context{Temperature: floatPtr(12), Weather: "rain"}, eventID: "rainy_weather"},
		{name: "pleasant wins over rain label", ctx: entity.Context{Temperature: floatPtr(20), Weather: "rain"}, eventID: "perfect_weather"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trigger := NewContextualTrigger(newFakeDispatcher(), contextualConfig())
			triggered := trigger.Evaluate(context.Background(), "u1", tt.ctx)
			require.Len(t, triggered, 1)
			assert.Equal(t, tt.eventID, triggered[0].EventID)
		})
	}
}

func TestEvaluateWeatherNeedsTemperature(t *testing.T) {
	trigger := NewContextualTrigger(newFakeDispatcher(), contextualConfig())

	// Cold and dry: nothing fires
	triggered := trigger.Evaluate(context.Background(), "u1", entity.Context{Temperature: floatPtr(5)})
	assert.Empty(t, triggered)

	// Rain label without a temperature reading is not enough
	triggered = trigger.Evaluate(context.Background(), "u1", entity.Context{Weather: "rain"})
	assert.Empty(t, triggered)
}

func TestEvaluateNeighborhood(t *testing.T) {
	trigger := NewContextualTrigger(newFakeDispatcher(), contextualConfig())

	triggered := trigger.Evaluate(context.Background(), "u1", entity.Context{NewProfiles: 6})
	require.Len(t, triggered, 1)
	assert.Equal(t, "neighborhood_active", triggered[0].EventID)
}

func TestEvaluateDogAlerts(t *testing.T) {
	dispatcher := newFakeDispatcher()
	trigger := NewContextualTrigger(dispatcher, contextualConfig())

	triggered := trigger.Evaluate(context.Background(), "u1", entity.Context{DogLost: true})
	require.Len(t, triggered, 1)
	assert.Equal(t, "dog_lost_alert", triggered[0].EventID)
	// Lost-dog alerts are urgent and bypass all gating
	assert.True(t, dispatcher.requests[0].Force)

	triggered = trigger.Evaluate(context.Background(), "u1", entity.Context{DogFound: true})
	require.Len(t, triggered, 1)
	assert.Equal(t, "dog_found_alert", triggered[0].EventID)
}

func TestEvaluatePartnerOffer(t *testing.T) {
	dispatcher := newFakeDispatcher()
	trigger := NewContextualTrigger(dispatcher, contextualConfig())

	triggered := trigger.Evaluate(context.Background(), "u1", entity.Context{PartnerOffer: true})
	require.Len(t, triggered, 1)
	assert.Equal(t, "partner_weekend_offer", triggered[0].EventID)
	assert.False(t, dispatcher.requests[0].Force)
}

func TestEvaluateMultipleSignals(t *testing.T) {
	dispatcher := newFakeDispatcher()
	trigger := NewContextualTrigger(dispatcher, contextualConfig())

	triggered := trigger.Evaluate(context.Background(), "u1", entity.Context{
		NearbyDogs:  15,
		Temperature: floatPtr(22),
		NewProfiles: 8,
	})
	require.Len(t, triggered, 3)
	// Evaluation order is fixed
	assert.Equal(t, "activity_wave", triggered[0].EventID)
	assert.Equal(t, "perfect_weather", triggered[1].EventID)
	assert.Equal(t, "neighborhood_active", triggered[2].EventID)
}

func TestEvaluateReportsDenials(t *testing.T) {
	dispatcher := newFakeDispatcher()
	dispatcher.result = entity.SendResult{Success: false, Reason: "daily limit reached"}
	trigger := NewContextualTrigger(dispatcher, contextualConfig())

	triggered := trigger.Evaluate(context.Background(), "u1", entity.Context{NearbyDogs: 15})
	require.Len(t, triggered, 1)
	assert.False(t, triggered[0].Result.Success)
	assert.Equal(t, "daily limit reached", triggered[0].Result.Reason)
}
