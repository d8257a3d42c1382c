package prediction

import (
	"context"
	"time"

	"github.com/LeeJaeHaeng/parking-pass/core/forecast"
	"github.com/LeeJaeHaeng/parking-pass/core/logger"
	coremetrics "github.com/LeeJaeHaeng/parking-pass/core/metrics"
	"github.com/LeeJaeHaeng/parking-pass/core/model"
)

// Fallback is the Engine used in production: remote first, local second.
// The local engine carries the full algorithm, so the remote service going
// away costs accuracy sourced from richer data, never availability.
type Fallback struct {
	remote *Client
	local  forecast.Engine
	sink   coremetrics.MetricsSink
	log    logger.Logger
}

// NewFallback wires the composite engine. remote may be nil for a purely
// local setup.
func NewFallback(remote *Client, local forecast.Engine, sink coremetrics.MetricsSink, log logger.Logger) *Fallback {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &Fallback{remote: remote, local: local, sink: sink, log: log}
}

// Forecast implements forecast.Engine.
func (f *Fallback) Forecast(lotID string, horizonHours int, fctx forecast.Context) model.PredictionSeries {
	if f.remote != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		series, err := f.remote.Fetch(ctx, lotID, horizonHours)
		cancel()
		if err == nil {
			f.record(lotID, "remote", len(series))
			return series
		}
		f.log.Warnf("remote prediction failed for lot %s, using local engine: %v", lotID, err)
	}
	series := f.local.Forecast(lotID, horizonHours, fctx)
	if len(series) > 0 {
		f.record(lotID, "local", len(series))
	}
	return series
}

func (f *Fallback) record(lotID, source string, horizon int) {
	if err := f.sink.RecordForecast(coremetrics.ForecastEvent{
		LotID:   lotID,
		Source:  source,
		Horizon: horizon,
		Time:    time.Now(),
	}); err != nil {
		f.log.Warnf("record forecast metric: %v", err)
	}
}
