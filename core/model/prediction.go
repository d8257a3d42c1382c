package model

// PredictionPoint is a single hour of an occupancy forecast. OccupancyRate and
// Confidence are percentages.
type PredictionPoint struct {
	Time          string  `json:"time"`
	OccupancyRate float64 `json:"occupancy_rate"`
	Confidence    float64 `json:"confidence"`
}

// PredictionSeries is an ordered forecast anchored to its generation hour.
// A freshly generated series holds one point per forecast hour, starting at
// the current hour; it is regenerated rather than shifted as time passes.
type PredictionSeries []PredictionPoint

// DefaultEstimate is the context-free estimate substituted when no forecast
// is available for a lot.
func DefaultEstimate() PredictionPoint {
	return PredictionPoint{OccupancyRate: 70, Confidence: 80}
}

// At returns the point for the given forward hour index. Out-of-range indices
// clamp to the last point; an empty series yields the default estimate.
func (s PredictionSeries) At(i int) PredictionPoint {
	if len(s) == 0 {
		return DefaultEstimate()
	}
	if i < 0 {
		i = 0
	}
	if i >= len(s) {
		i = len(s) - 1
	}
	return s[i]
}
