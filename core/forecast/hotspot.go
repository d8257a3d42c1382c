package forecast

import (
	"strings"

	"gonum.org/v1/gonum/floats"
)

// HotspotIndex maps zone names to a normalized violation weight in [0,1].
// It answers how close a lot sits to known illegal-parking concentrations.
type HotspotIndex map[string]float64

// NewHotspotIndex normalizes raw per-zone violation counts into an index.
func NewHotspotIndex(counts map[string]float64) HotspotIndex {
	if len(counts) == 0 {
		return HotspotIndex{}
	}
	vals := make([]float64, 0, len(counts))
	for _, c := range counts {
		vals = append(vals, c)
	}
	max := floats.Max(vals)
	if max <= 0 {
		return HotspotIndex{}
	}
	idx := make(HotspotIndex, len(counts))
	for zone, c := range counts {
		idx[zone] = c / max
	}
	return idx
}

// Density returns the hotspot weight for the zone mentioned in the address,
// or 0 when no known zone matches.
func (h HotspotIndex) Density(address string) float64 {
	for zone, w := range h {
		if zone != "" && strings.Contains(address, zone) {
			return w
		}
	}
	return 0
}
