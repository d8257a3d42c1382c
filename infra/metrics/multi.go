package metrics

import coremetrics "github.com/LeeJaeHaeng/parking-pass/core/metrics"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRank forwards the event to all sinks, returning the first error.
func (m *MultiSink) RecordRank(ev coremetrics.RankEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRank(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordForecast forwards the event to all sinks.
func (m *MultiSink) RecordForecast(ev coremetrics.ForecastEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordForecast(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordRefresh forwards the event to all sinks.
func (m *MultiSink) RecordRefresh(ev coremetrics.RefreshEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRefresh(ev); err != nil {
			return err
		}
	}
	return nil
}
