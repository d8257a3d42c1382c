package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/LeeJaeHaeng/parking-pass/core/metrics"
)

// PromSink records service events in Prometheus metrics.
type PromSink struct {
	ranks     *prometheus.CounterVec
	returned  *prometheus.HistogramVec
	forecasts *prometheus.CounterVec
	lots      prometheus.Gauge
}

// NewPromSink registers metrics on the default Prometheus registerer. The
// Prometheus server is started separately on cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	ranks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rank_requests_total",
		Help: "Total number of ranking requests",
	}, []string{"sort", "located"})
	returned := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rank_results_returned",
		Help:    "Number of lots returned per ranking request",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
	}, []string{"sort"})
	forecasts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_series_total",
		Help: "Total number of prediction series generated",
	}, []string{"source"})
	lots := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lot_collection_size",
		Help: "Number of lots in the current collection",
	})

	if err := reg.Register(ranks); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			ranks = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(returned); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			returned = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(forecasts); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			forecasts = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(lots); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			lots = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{ranks: ranks, returned: returned, forecasts: forecasts, lots: lots}, nil
}

// RecordRank increments the request counter and observes the result size.
func (s *PromSink) RecordRank(ev coremetrics.RankEvent) error {
	s.ranks.WithLabelValues(ev.Sort, strconv.FormatBool(ev.Located)).Inc()
	s.returned.WithLabelValues(ev.Sort).Observe(float64(ev.Returned))
	return nil
}

// RecordForecast increments the series counter for the generating source.
func (s *PromSink) RecordForecast(ev coremetrics.ForecastEvent) error {
	s.forecasts.WithLabelValues(ev.Source).Inc()
	return nil
}

// RecordRefresh sets the collection-size gauge.
func (s *PromSink) RecordRefresh(ev coremetrics.RefreshEvent) error {
	s.lots.Set(float64(ev.Lots))
	return nil
}
