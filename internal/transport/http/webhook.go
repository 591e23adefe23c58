package http

import (
	"io"
	"log"
	"net/http"

	"whoof-notifications/internal/domain/service"
	"whoof-notifications/pkg/signature"
)

// WebhookHandler receives payment provider webhooks. Signature checks are
// the only reason to reject a request; processing failures still return
// 200 so the provider does not retry events we have already recorded.
type WebhookHandler struct {
	billing       service.BillingProcessor
	webhookSecret string
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(billing service.BillingProcessor, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{
		billing:       billing,
		webhookSecret: webhookSecret,
	}
}

// Stripe handles POST /webhooks/stripe
func (h *WebhookHandler) Stripe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	if sigHeader == "" {
		writeError(w, http.StatusBadRequest, "missing signature header")
		return
	}

	if !signature.Verify(payload, sigHeader, h.webhookSecret) {
		writeError(w, http.StatusBadRequest, "invalid signature")
		return
	}

	if err := h.billing.Process(r.Context(), payload); err != nil {
		log.Printf("Error processing webhook event: %v", err)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
