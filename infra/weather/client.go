// Package weather wraps the external weather collaborator. Failures never
// propagate: callers always get a usable snapshot, neutral if necessary.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/LeeJaeHaeng/parking-pass/core/model"
	"github.com/LeeJaeHaeng/parking-pass/infra/logger"
)

// Config defines the weather collaborator endpoint.
type Config struct {
	URL string `json:"url"`
	// CacheSeconds bounds how often the upstream is queried.
	CacheSeconds int `json:"cache_seconds"`
}

// SetDefaults applies the 10 minute cache the upstream rate limit expects.
func (c *Config) SetDefaults() {
	if c.CacheSeconds == 0 {
		c.CacheSeconds = 600
	}
}

// Client fetches and caches the current weather snapshot.
type Client struct {
	url    string
	ttl    time.Duration
	client *http.Client
	log    logger.Logger

	mu         sync.Mutex
	cached     model.Weather
	fetched    time.Time
	refreshing bool
	now        func() time.Time
}

// New builds a weather client. An empty URL yields a client that always
// reports neutral weather.
func New(cfg Config) *Client {
	cfg.SetDefaults()
	return &Client{
		url:    strings.TrimSuffix(cfg.URL, "/"),
		ttl:    time.Duration(cfg.CacheSeconds) * time.Second,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    logger.New("weather"),
		now:    time.Now,
	}
}

// Current returns the cached snapshot, refreshing it when stale. On any
// failure the neutral default is substituted and cached briefly so a dead
// upstream is not hammered. The upstream call runs outside the lock; while
// one caller refreshes, others get the previous snapshot immediately
// instead of queueing behind the request.
func (c *Client) Current(ctx context.Context) model.Weather {
	c.mu.Lock()
	if !c.fetched.IsZero() && c.now().Sub(c.fetched) < c.ttl {
		w := c.cached
		c.mu.Unlock()
		return w
	}
	if c.refreshing {
		w := c.cached
		if c.fetched.IsZero() {
			w = model.NeutralWeather()
		}
		c.mu.Unlock()
		return w
	}
	c.refreshing = true
	c.mu.Unlock()

	w, err := c.fetch(ctx)
	if err != nil {
		c.log.Warnf("weather fetch failed, using neutral default: %v", err)
		w = model.NeutralWeather()
	}

	c.mu.Lock()
	c.cached = w
	c.fetched = c.now()
	c.refreshing = false
	c.mu.Unlock()
	return w
}

func (c *Client) fetch(ctx context.Context) (model.Weather, error) {
	if c.url == "" {
		return model.Weather{}, fmt.Errorf("no weather endpoint configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/weather", nil)
	if err != nil {
		return model.Weather{}, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return model.Weather{}, fmt.Errorf("weather request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return model.Weather{}, fmt.Errorf("weather status %d", resp.StatusCode)
	}
	var w model.Weather
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return model.Weather{}, fmt.Errorf("decode weather: %w", err)
	}
	if w.Condition == "" {
		w.Condition = "sunny"
	}
	return w, nil
}
