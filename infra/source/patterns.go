package source

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// ViolationPatterns is the aggregated illegal-parking dataset used to
// calibrate the forecast curve and the hotspot index.
type ViolationPatterns struct {
	TotalCount int               `json:"total_count"`
	Hourly     map[string]bucket `json:"hourly"`
	ByZone     map[string]bucket `json:"by_dong"`
}

type bucket struct {
	Count  float64 `json:"count"`
	Weight float64 `json:"weight"`
}

// LoadViolationPatterns reads the analyzer output file.
func LoadViolationPatterns(path string) (*ViolationPatterns, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patterns: %w", err)
	}
	var p ViolationPatterns
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse patterns %s: %w", path, err)
	}
	return &p, nil
}

// HourlyCounts returns per-hour violation counts, zero for missing hours.
func (p *ViolationPatterns) HourlyCounts() [24]float64 {
	var counts [24]float64
	for h := 0; h < 24; h++ {
		if b, ok := p.Hourly[strconv.Itoa(h)]; ok {
			counts[h] = b.Count
		}
	}
	return counts
}

// ZoneCounts returns per-zone violation counts.
func (p *ViolationPatterns) ZoneCounts() map[string]float64 {
	out := make(map[string]float64, len(p.ByZone))
	for zone, b := range p.ByZone {
		out[zone] = b.Count
	}
	return out
}
