package forecast

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CalibrateHourlyWeights normalizes observed per-hour violation counts into
// a [0,1] diurnal curve. Hours with no observations fall back to the built-in
// curve so a sparse dataset cannot flatten the shape.
func CalibrateHourlyWeights(counts [24]float64) [24]float64 {
	max := floats.Max(counts[:])
	if max <= 0 {
		return defaultHourlyWeights
	}
	var w [24]float64
	for h, c := range counts {
		if c <= 0 {
			w[h] = defaultHourlyWeights[h]
			continue
		}
		w[h] = c / max
	}
	return w
}

// TrendPerHour fits a linear regression over historical occupancy samples
// and returns the slope in percentage points per hour. Fewer than two
// samples yield no trend.
func TrendPerHour(hours, occupancy []float64) float64 {
	if len(hours) < 2 || len(hours) != len(occupancy) {
		return 0
	}
	_, slope := stat.LinearRegression(hours, occupancy, nil, false)
	return slope
}
