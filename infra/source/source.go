// Package source supplies the lot collection. Sources are tried in a fixed
// order (remote registry, local dataset, built-in seed) and the first one to
// answer wins, so a dead network degrades to local data instead of an error.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/LeeJaeHaeng/parking-pass/core/logger"
	"github.com/LeeJaeHaeng/parking-pass/core/model"
)

// ErrUnavailable marks a source that could not produce data. Chain treats it
// like any other failure; it exists so callers can distinguish network
// trouble from malformed payloads.
var ErrUnavailable = errors.New("data source unavailable")

// Source produces a normalized lot collection.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.Lot, error)
}

// Chain tries its sources in order and returns the first non-empty result
// together with the name of the winning source.
type Chain struct {
	sources []Source
	log     logger.Logger
}

// NewChain builds a chain over the given sources.
func NewChain(log logger.Logger, sources ...Source) *Chain {
	return &Chain{sources: sources, log: log}
}

// Fetch resolves the lot collection. It fails only when every source fails.
func (c *Chain) Fetch(ctx context.Context) ([]model.Lot, string, error) {
	var lastErr error
	for _, s := range c.sources {
		lots, err := s.Fetch(ctx)
		if err != nil {
			c.log.Warnf("source %s failed: %v", s.Name(), err)
			lastErr = err
			continue
		}
		if len(lots) == 0 {
			c.log.Warnf("source %s returned no lots", s.Name())
			continue
		}
		return lots, s.Name(), nil
	}
	if lastErr == nil {
		lastErr = ErrUnavailable
	}
	return nil, "", fmt.Errorf("all sources exhausted: %w", lastErr)
}
