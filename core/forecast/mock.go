package forecast

import "github.com/LeeJaeHaeng/parking-pass/core/model"

// MockEngine returns preconfigured series, for tests and offline demos.
type MockEngine struct {
	Series map[string]model.PredictionSeries
}

// Forecast returns the configured series for the lot, truncated to the
// horizon, or nil for unknown lots.
func (m MockEngine) Forecast(lotID string, horizonHours int, _ Context) model.PredictionSeries {
	s, ok := m.Series[lotID]
	if !ok {
		return nil
	}
	if horizonHours > 0 && horizonHours < len(s) {
		s = s[:horizonHours]
	}
	cp := make(model.PredictionSeries, len(s))
	copy(cp, s)
	return cp
}
