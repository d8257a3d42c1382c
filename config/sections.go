package config

import "fmt"

// ServerConfig defines the public HTTP API listener.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies the default listen address.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// SourcesConfig defines the lot data sources tried in order: the remote
// registry first, then the local dataset, then the built-in seed.
type SourcesConfig struct {
	// RegistryURL is the remote lot registry base URL. Empty skips the
	// remote source entirely.
	RegistryURL string `json:"registry_url"`
	// LocalPath is a JSON dataset used when the registry is unreachable.
	LocalPath string `json:"local_path"`
	// TimeoutSeconds bounds each registry request.
	TimeoutSeconds int `json:"timeout_seconds"`
	// RefreshMinutes is the collection refresh interval.
	RefreshMinutes int `json:"refresh_minutes"`
}

// SetDefaults applies request and refresh timing defaults.
func (c *SourcesConfig) SetDefaults() {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 10
	}
	if c.RefreshMinutes == 0 {
		c.RefreshMinutes = 5
	}
}

// Validate rejects timings the refresh ticker cannot run on.
func (c SourcesConfig) Validate() error {
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("source timeout must be positive, got %d", c.TimeoutSeconds)
	}
	if c.RefreshMinutes <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %d", c.RefreshMinutes)
	}
	return nil
}

// PredictionConfig points at the remote prediction API. Empty means the
// local forecast engine serves every request.
type PredictionConfig struct {
	URL string `json:"url"`
}

// HistoryConfig defines the settled-session store.
type HistoryConfig struct {
	// Path is the SQLite database location.
	Path string `json:"path"`
}

// SetDefaults applies the default database path.
func (c *HistoryConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "parking-history.db"
	}
}
