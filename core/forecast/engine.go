package forecast

import "github.com/LeeJaeHaeng/parking-pass/core/model"

// Context carries the optional signals that bias a forecast.
type Context struct {
	// Weather biases demand toward covered lots in wet or very hot
	// conditions. Nil means no weather adjustment.
	Weather *model.Weather
	// ViolationDensity in [0,1] measures proximity to illegal-parking
	// hotspots and models crowding pressure in high-demand zones.
	ViolationDensity float64
}

// Engine produces an occupancy forecast for a lot over a forward horizon.
type Engine interface {
	// Forecast returns one point per hour starting from the current hour.
	// An unresolvable lot id yields an empty series, never an error;
	// callers substitute model.DefaultEstimate.
	Forecast(lotID string, horizonHours int, ctx Context) model.PredictionSeries
}

// LotResolver is the subset of the lot store the engine needs to look up
// per-lot attributes.
type LotResolver interface {
	Get(id string) (model.Lot, bool)
}
