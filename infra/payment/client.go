// Package payment wraps the external payment collaborator. Failures are
// surfaced to the caller as-is; retrying is a UI decision, not ours.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Error is a payment rejection from the gateway, distinct from transport
// trouble so callers can show the gateway's reason.
type Error struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("payment rejected (%s): %s", e.Code, e.Reason)
}

// Config defines the payment collaborator endpoint.
type Config struct {
	URL string `json:"url"`
}

// Client charges settled sessions against the gateway.
type Client struct {
	url    string
	client *http.Client
}

// New builds a payment client.
func New(cfg Config) *Client {
	return &Client{
		url:    strings.TrimSuffix(cfg.URL, "/"),
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type chargeRequest struct {
	SessionID string `json:"session_id"`
	Amount    int    `json:"amount"`
	LotName   string `json:"lot_name"`
}

// Charge submits the final fee for a session. A 402 response decodes into
// *Error; other non-200 statuses and transport failures wrap generically.
func (c *Client) Charge(ctx context.Context, sessionID string, amount int, lotName string) error {
	body, err := json.Marshal(chargeRequest{SessionID: sessionID, Amount: amount, LotName: lotName})
	if err != nil {
		return fmt.Errorf("marshal charge: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/payments", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create charge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("charge request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusPaymentRequired:
		var pe Error
		if err := json.NewDecoder(resp.Body).Decode(&pe); err != nil {
			return &Error{Code: "unknown", Reason: "gateway rejected the charge"}
		}
		return &pe
	default:
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("charge status %d: %s", resp.StatusCode, b)
	}
}
