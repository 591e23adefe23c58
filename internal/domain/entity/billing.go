package entity

import (
	"time"
)

// ProPlan is the subscription tier of a professional account
type ProPlan string

const (
	ProPlanFree    ProPlan = "free"
	ProPlanPremium ProPlan = "pro_premium"
)

// Transaction records a completed payment for a professional booking
type Transaction struct {
	ID              string
	ProProfileID    string
	BookingID       string
	UserID          string
	Amount          float64
	Currency        string
	Type            string
	Status          string
	PaymentMethod   string
	StripePaymentID string
	ServiceID       string
	CreatedAt       time.Time
}
