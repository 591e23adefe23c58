package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"whoof-notifications/internal/config"
	"whoof-notifications/internal/domain/entity"
)

// Client delivers notifications through the external push gateway. Any
// non-2xx response or transport error counts as a failed delivery.
type Client struct {
	httpClient *http.Client
	gatewayURL string
	apiKey     string
}

// NewClient creates a new push gateway client. The per-request timeout is
// controlled by the caller's context; the HTTP client itself carries the
// configured ceiling as a backstop.
func NewClient(cfg *config.PushConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		gatewayURL: cfg.GatewayURL,
		apiKey:     cfg.APIKey,
	}
}

type sendPayload struct {
	UserID  string            `json:"userId"`
	Type    string            `json:"type"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data"`
}

// Deliver posts the notification to the gateway's send endpoint
func (c *Client) Deliver(ctx context.Context, delivery *entity.Delivery) error {
	payload := sendPayload{
		UserID:  delivery.UserID,
		Type:    delivery.Type,
		Title:   delivery.Title,
		Message: delivery.Message,
		Data:    delivery.Data,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build delivery request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delivery request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("delivery rejected with status %d", resp.StatusCode)
	}

	return nil
}
