// Package metrics defines the sink interface the service reports into.
// Implementations live in infra/metrics.
package metrics

import "time"

// RankEvent records one ranking request.
type RankEvent struct {
	Sort     string
	Located  bool
	Returned int
	Time     time.Time
}

// ForecastEvent records one generated prediction series.
type ForecastEvent struct {
	LotID   string
	Source  string // "remote" or "local"
	Horizon int
	Time    time.Time
}

// RefreshEvent records one lot-collection refresh.
type RefreshEvent struct {
	Source string // which data source won
	Lots   int
	Time   time.Time
}

// MetricsSink receives service events. Implementations must be safe for
// concurrent use.
type MetricsSink interface {
	RecordRank(RankEvent) error
	RecordForecast(ForecastEvent) error
	RecordRefresh(RefreshEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordRank(RankEvent) error         { return nil }
func (NopSink) RecordForecast(ForecastEvent) error { return nil }
func (NopSink) RecordRefresh(RefreshEvent) error   { return nil }
