package forecast

import "fmt"

// defaultHourlyWeights is the diurnal base curve, indexed by hour of day.
// Calibrated against observed citywide violation patterns: overnight trough,
// a morning commute peak around 09:00-10:00 and an evening peak at 19:00.
var defaultHourlyWeights = [24]float64{
	0.15, 0.12, 0.10, 0.07, 0.09, 0.11,
	0.18, 0.59, 0.68, 0.73, 0.92, 0.75,
	0.84, 0.72, 0.81, 0.85, 0.86, 0.87,
	0.93, 1.00, 0.95, 0.42, 0.33, 0.26,
}

// Config defines the tunable constants of the weighted engine.
type Config struct {
	// HorizonHours is the default forecast length.
	HorizonHours int `json:"horizon_hours"`
	// BaseOccupancy and WeightSpan map a curve weight w in [0,1] to a raw
	// occupancy percentage: base + w*span.
	BaseOccupancy float64 `json:"base_occupancy"`
	WeightSpan    float64 `json:"weight_span"`
	// MinOccupancy and MaxOccupancy clamp every emitted rate so the
	// forecast never claims an empty or full lot.
	MinOccupancy float64 `json:"min_occupancy"`
	MaxOccupancy float64 `json:"max_occupancy"`
	// Confidence starts at ConfidenceStart and loses ConfidenceDecay per
	// horizon hour, never dropping below ConfidenceFloor.
	ConfidenceStart float64 `json:"confidence_start"`
	ConfidenceDecay float64 `json:"confidence_decay"`
	ConfidenceFloor float64 `json:"confidence_floor"`
	// HourlyWeights overrides the built-in diurnal curve when exactly 24
	// values are given.
	HourlyWeights []float64 `json:"hourly_weights"`
	// PatternsPath points at a violation-patterns file used to recalibrate
	// the curve at startup. Empty disables calibration.
	PatternsPath string `json:"patterns_path"`
}

// SetDefaults applies the canonical constant set.
func (c *Config) SetDefaults() {
	if c.HorizonHours == 0 {
		c.HorizonHours = 24
	}
	if c.BaseOccupancy == 0 {
		c.BaseOccupancy = 40
	}
	if c.WeightSpan == 0 {
		c.WeightSpan = 55
	}
	if c.MinOccupancy == 0 {
		c.MinOccupancy = 10
	}
	if c.MaxOccupancy == 0 {
		c.MaxOccupancy = 95
	}
	if c.ConfidenceStart == 0 {
		c.ConfidenceStart = 90
	}
	if c.ConfidenceDecay == 0 {
		c.ConfidenceDecay = 1.5
	}
	if c.ConfidenceFloor == 0 {
		c.ConfidenceFloor = 60
	}
}

// Validate checks bounds ordering.
func (c Config) Validate() error {
	if c.MinOccupancy >= c.MaxOccupancy {
		return fmt.Errorf("min occupancy %v must be below max %v", c.MinOccupancy, c.MaxOccupancy)
	}
	if c.ConfidenceFloor > c.ConfidenceStart {
		return fmt.Errorf("confidence floor %v exceeds start %v", c.ConfidenceFloor, c.ConfidenceStart)
	}
	if len(c.HourlyWeights) != 0 && len(c.HourlyWeights) != 24 {
		return fmt.Errorf("hourly_weights needs 24 entries, got %d", len(c.HourlyWeights))
	}
	return nil
}

// curve returns the active diurnal curve.
func (c Config) curve() [24]float64 {
	if len(c.HourlyWeights) == 24 {
		var w [24]float64
		copy(w[:], c.HourlyWeights)
		return w
	}
	return defaultHourlyWeights
}
