package rank

import (
	"fmt"

	"github.com/LeeJaeHaeng/parking-pass/core/geo"
	"github.com/LeeJaeHaeng/parking-pass/core/model"
)

// Weights is the recommendation policy: how much each axis contributes to
// the composite score. Distance dominates, then availability, then price.
type Weights struct {
	Distance     float64 `json:"distance"`
	Price        float64 `json:"price"`
	Availability float64 `json:"availability"`
	// NearbyLimit caps the closest-lots view.
	NearbyLimit int `json:"nearby_limit"`
}

// SetDefaults applies the canonical 0.5/0.2/0.3 policy.
func (w *Weights) SetDefaults() {
	if w.Distance == 0 && w.Price == 0 && w.Availability == 0 {
		w.Distance = 0.5
		w.Price = 0.2
		w.Availability = 0.3
	}
	if w.NearbyLimit == 0 {
		w.NearbyLimit = 5
	}
}

// Validate rejects weight sets that cannot produce a meaningful ordering.
func (w Weights) Validate() error {
	if w.Distance < 0 || w.Price < 0 || w.Availability < 0 {
		return fmt.Errorf("weights must not be negative")
	}
	if w.Distance+w.Price+w.Availability <= 0 {
		return fmt.Errorf("at least one weight must be positive")
	}
	if w.NearbyLimit < 0 {
		return fmt.Errorf("nearby limit must not be negative")
	}
	return nil
}

// Scorer computes the composite recommendation score for a lot.
type Scorer struct {
	weights Weights
}

// NewScorer returns a scorer with the given policy, defaulted when zero.
func NewScorer(w Weights) Scorer {
	w.SetDefaults()
	return Scorer{weights: w}
}

// Score returns the composite score in [0,100]. With no user coordinate the
// lot's last-known distance annotation is used, degrading gracefully instead
// of failing.
func (s Scorer) Score(lot model.Lot, user *model.Coordinate) float64 {
	d := lot.DistanceKm
	if user != nil && user.Valid() {
		d = geo.DistanceKm(*user, lot.Coordinate)
	}
	score := s.weights.Distance*distanceScore(d) +
		s.weights.Price*priceScore(lot.Fee) +
		s.weights.Availability*lot.AvailabilityRatio()*100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// distanceScore decays linearly: a lot 5 km away scores zero on this axis.
func distanceScore(km float64) float64 {
	s := 100 - km*20
	if s < 0 {
		return 0
	}
	return s
}

func priceScore(fee model.FeeSchedule) float64 {
	if fee.Free() {
		return 100
	}
	s := 100 - float64(fee.BasicFee)/100
	if s < 0 {
		return 0
	}
	return s
}
