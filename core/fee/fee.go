// Package fee implements the tiered parking-fee model shared by the live
// running-total display and final settlement.
package fee

import (
	"errors"
	"math"

	"github.com/LeeJaeHaeng/parking-pass/core/model"
)

// ErrInvalidDuration is returned for negative elapsed times. Callers must not
// display a fee after receiving it.
var ErrInvalidDuration = errors.New("elapsed minutes must not be negative")

// Quote returns the fee in won for a stay of elapsedMinutes under the given
// schedule. Billing starts after the grace period; the basic fee covers the
// first BasicTime minutes; each started additional block is billed in full.
// A configured daily cap clamps the result.
func Quote(s model.FeeSchedule, elapsedMinutes int) (int, error) {
	if elapsedMinutes < 0 {
		return 0, ErrInvalidDuration
	}
	if elapsedMinutes <= s.GracePeriod {
		return 0, nil
	}
	basicTime := s.BasicTime
	if basicTime <= 0 {
		basicTime = 30
	}
	if elapsedMinutes <= basicTime {
		return capDaily(s, s.BasicFee), nil
	}
	if s.AdditionalFee <= 0 || s.AdditionalTime <= 0 {
		return capDaily(s, s.BasicFee), nil
	}
	blocks := int(math.Ceil(float64(elapsedMinutes-basicTime) / float64(s.AdditionalTime)))
	return capDaily(s, s.BasicFee+blocks*s.AdditionalFee), nil
}

func capDaily(s model.FeeSchedule, amount int) int {
	if s.DailyCap > 0 && amount > s.DailyCap {
		return s.DailyCap
	}
	return amount
}
