package entity

import (
	"time"
)

// SendRecord is an append-only log entry written once per successful
// dispatch. It is only read back for throttle-window queries.
type SendRecord struct {
	ID         string
	UserID     string
	TemplateID string
	Category   Category
	SentAt     time.Time
}

// SendRequest is the dispatcher's input for a single notification
type SendRequest struct {
	UserID     string
	TemplateID string
	Data       map[string]string
	// Force bypasses time-window, segment and throttle gating. Reserved
	// for urgent categories such as safety alerts.
	Force bool
}

// SendResult is the structured outcome of a dispatch attempt. Policy
// denials are normal results, never errors.
type SendResult struct {
	Success bool
	Reason  string
}

// BatchResult aggregates independent per-user dispatch outcomes
type BatchResult struct {
	SuccessCount int
	FailureCount int
}

// Throttle is the throttle guard's verdict for a user
type Throttle struct {
	CanSend         bool
	Reason          string
	NextAvailableAt *time.Time
}

// Delivery is the payload handed to the external delivery channel
type Delivery struct {
	UserID  string
	Type    string
	Title   string
	Message string
	Data    map[string]string
}
