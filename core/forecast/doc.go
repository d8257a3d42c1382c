// Package forecast produces short-term occupancy predictions for parking
// lots. The weighted engine combines a diurnal base curve calibrated from
// citywide violation patterns with weather and demand-pressure modifiers.
// It is fully deterministic for a given lot, generation hour and context,
// and works offline as the fallback behind the remote prediction API.
package forecast
