package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/LeeJaeHaeng/parking-pass/core/forecast"
	"github.com/LeeJaeHaeng/parking-pass/core/metrics"
	"github.com/LeeJaeHaeng/parking-pass/core/rank"
	"github.com/LeeJaeHaeng/parking-pass/infra/occupancy"
	"github.com/LeeJaeHaeng/parking-pass/infra/payment"
	"github.com/LeeJaeHaeng/parking-pass/infra/weather"
)

type Config struct {
	Server     ServerConfig     `json:"server"`
	Sources    SourcesConfig    `json:"sources"`
	Forecast   forecast.Config  `json:"forecast"`
	Recommend  rank.Weights     `json:"recommend"`
	Weather    weather.Config   `json:"weather"`
	Prediction PredictionConfig `json:"prediction"`
	Payment    payment.Config   `json:"payment"`
	Occupancy  occupancy.Config `json:"occupancy"`
	History    HistoryConfig    `json:"history"`
	Metrics    metrics.Config   `json:"metrics"`
}

// Load reads the config file, applies PP_* environment overrides, then
// defaults and validates every section.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("PP_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "pp_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies sane defaults to every section.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Sources.SetDefaults()
	c.Forecast.SetDefaults()
	c.Recommend.SetDefaults()
	c.Weather.SetDefaults()
	c.Occupancy.SetDefaults()
	c.History.SetDefaults()
	c.Metrics.SetDefaults()
}

// Validate checks every section that can be misconfigured.
func (c Config) Validate() error {
	if err := c.Sources.Validate(); err != nil {
		return fmt.Errorf("sources: %w", err)
	}
	if err := c.Forecast.Validate(); err != nil {
		return fmt.Errorf("forecast: %w", err)
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	if err := c.Occupancy.Validate(); err != nil {
		return fmt.Errorf("occupancy: %w", err)
	}
	return nil
}
