// Package prediction integrates the remote prediction API and falls back to
// the local forecast engine when it is unreachable, so forecasts keep
// working fully offline.
package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/LeeJaeHaeng/parking-pass/core/model"
)

// Client calls POST /predictions on the remote prediction service.
type Client struct {
	url    string
	client *http.Client
}

// NewClient builds a prediction API client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:    strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

type request struct {
	LotID      string `json:"lot_id"`
	HoursAhead int    `json:"hours_ahead"`
}

type point struct {
	Time          string  `json:"time"`
	OccupancyRate float64 `json:"occupancy_rate"`
	Confidence    float64 `json:"confidence"`
}

// Fetch requests a series for the lot. Transport failures, non-200 statuses
// and empty bodies are all errors; the caller decides how to degrade.
func (c *Client) Fetch(ctx context.Context, lotID string, hoursAhead int) (model.PredictionSeries, error) {
	body, err := json.Marshal(request{LotID: lotID, HoursAhead: hoursAhead})
	if err != nil {
		return nil, fmt.Errorf("marshal prediction request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/predictions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("prediction request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("prediction status %d", resp.StatusCode)
	}
	var points []point
	if err := json.NewDecoder(resp.Body).Decode(&points); err != nil {
		return nil, fmt.Errorf("decode prediction response: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("prediction service returned an empty series")
	}
	series := make(model.PredictionSeries, len(points))
	for i, p := range points {
		series[i] = model.PredictionPoint{Time: p.Time, OccupancyRate: p.OccupancyRate, Confidence: p.Confidence}
	}
	return series, nil
}
