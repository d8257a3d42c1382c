package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLot is returned when a lot id cannot be resolved in any source.
var ErrUnknownLot = errors.New("unknown parking lot")

// LotType classifies the operator of a parking facility.
type LotType string

const (
	LotPublic  LotType = "public"
	LotPrivate LotType = "private"
)

// Coordinate is a WGS84 position. A zero latitude or longitude marks the
// position as unknown rather than a real point on the equator or meridian.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinate carries a usable position.
func (c Coordinate) Valid() bool {
	if c.Lat == 0 || c.Lon == 0 {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// FeeSchedule describes a lot's pricing. Amounts are in won, durations in
// minutes. A zero DailyCap or MonthlyCap means the cap is not offered.
type FeeSchedule struct {
	FeeType        string `json:"fee_type"`
	BasicFee       int    `json:"basic_fee"`
	BasicTime      int    `json:"basic_time"`
	AdditionalFee  int    `json:"additional_fee"`
	AdditionalTime int    `json:"additional_time"`
	GracePeriod    int    `json:"grace_period"`
	DailyCap       int    `json:"daily_cap"`
	MonthlyCap     int    `json:"monthly_cap"`
}

// Free reports whether the lot charges nothing.
func (f FeeSchedule) Free() bool {
	return f.FeeType == "free" || (f.BasicFee == 0 && f.AdditionalFee == 0)
}

// Validate checks that the schedule can be quoted against.
func (f FeeSchedule) Validate() error {
	if f.BasicTime <= 0 {
		return fmt.Errorf("basic time must be positive")
	}
	if f.AdditionalFee > 0 && f.AdditionalTime <= 0 {
		return fmt.Errorf("additional time must be positive when an additional fee is set")
	}
	return nil
}

// Lot is a parking facility. Identity and static attributes come from the
// registry; Distance, Score and Prediction are ephemeral annotations
// recomputed per request and never persisted.
type Lot struct {
	ID              string     `json:"id"`
	ExternalID      string     `json:"external_id,omitempty"`
	Name            string     `json:"name"`
	Address         string     `json:"address"`
	Coordinate      Coordinate `json:"coordinate"`
	TotalSpaces     int        `json:"total_spaces"`
	AvailableSpaces int        `json:"available_spaces"`
	Fee             FeeSchedule `json:"fee"`
	Type            LotType    `json:"type"`
	OperatingHours  string     `json:"operating_hours"`
	Facilities      []string   `json:"facilities,omitempty"`
	Covered         bool       `json:"covered"`

	// Derived per-request annotations.
	DistanceKm float64          `json:"distance_km"`
	Score      float64          `json:"score"`
	Prediction PredictionSeries `json:"prediction,omitempty"`
}

// AvailabilityRatio returns available/total in [0,1]. A lot with no declared
// capacity counts as full.
func (l Lot) AvailabilityRatio() float64 {
	total := l.TotalSpaces
	if total < 1 {
		total = 1
	}
	r := float64(l.AvailableSpaces) / float64(total)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// Matches reports whether the query matches the lot name or address,
// case-insensitively.
func (l Lot) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(l.Name), q) ||
		strings.Contains(strings.ToLower(l.Address), q)
}

// Marker is the subset of lot data handed to map rendering adapters.
type Marker struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Coordinate Coordinate `json:"coordinate"`
}

// Marker returns the map marker view of the lot.
func (l Lot) Marker() Marker {
	return Marker{ID: l.ID, Name: l.Name, Coordinate: l.Coordinate}
}
