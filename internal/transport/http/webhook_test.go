package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whoof-notifications/pkg/signature"
)

type fakeBilling struct {
	payloads [][]byte
	err      error
}

func (f *fakeBilling) Process(ctx context.Context, payload []byte) error {
	f.payloads = append(f.payloads, payload)
	return f.err
}

const testSecret = "whsec_test"

func postWebhook(t *testing.T, handler *WebhookHandler, payload []byte, sigHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewReader(payload))
	if sigHeader != "" {
		req.Header.Set("Stripe-Signature", sigHeader)
	}
	rec := httptest.NewRecorder()
	handler.Stripe(rec, req)
	return rec
}

func TestWebhookValidSignature(t *testing.T) {
	billing := &fakeBilling{}
	handler := NewWebhookHandler(billing, testSecret)

	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	rec := postWebhook(t, handler, payload, signature.Sign(payload, "1700000000", testSecret))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, billing.payloads, 1)
	assert.Equal(t, payload, billing.payloads[0])
}

func TestWebhookMissingSignature(t *testing.T) {
	billing := &fakeBilling{}
	handler := NewWebhookHandler(billing, testSecret)

	rec := postWebhook(t, handler, []byte(`{}`), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, billing.payloads)
}

func TestWebhookInvalidSignature(t *testing.T) {
	billing := &fakeBilling{}
	handler := NewWebhookHandler(billing, testSecret)

	payload := []byte(`{"id":"evt_1"}`)
	rec := postWebhook(t, handler, payload, signature.Sign(payload, "1700000000", "whsec_other"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, billing.payloads)
}

func TestWebhookRejectsNonPost(t *testing.T) {
	handler := NewWebhookHandler(&fakeBilling{}, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/webhooks/stripe", nil)
	rec := httptest.NewRecorder()
	handler.Stripe(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestWebhookProcessingErrorStillAcknowledges(t *testing.T) {
	billing := &fakeBilling{err: assert.AnError}
	handler := NewWebhookHandler(billing, testSecret)

	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	rec := postWebhook(t, handler, payload, signature.Sign(payload, "1700000000", testSecret))

	// The provider must not retry; failures are logged, not surfaced
	assert.Equal(t, http.StatusOK, rec.Code)
}
