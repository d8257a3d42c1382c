package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/LeeJaeHaeng/parking-pass/core/model"
)

// HTTPSource fetches the lot collection from the remote registry API.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource builds a registry client for the given base URL.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Name implements Source.
func (s *HTTPSource) Name() string { return "registry" }

// Fetch retrieves and normalizes GET /parking-lots.
func (s *HTTPSource) Fetch(ctx context.Context) ([]model.Lot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/parking-lots", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrUnavailable, resp.StatusCode, body)
	}
	var raws []RawLot
	if err := json.NewDecoder(resp.Body).Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode registry response: %w", err)
	}
	return NormalizeAll(raws), nil
}
