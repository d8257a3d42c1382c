package forecast

import (
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"github.com/LeeJaeHaeng/parking-pass/core/model"
)

// WeightedEngine is the local occupancy forecaster. Variation across lots
// comes from a deterministic per-lot offset derived from the lot id, so two
// calls within the same generation hour return identical series.
type WeightedEngine struct {
	cfg    Config
	lots   LotResolver
	curve  [24]float64
	trend  float64
	now    func() time.Time
}

// NewWeightedEngine builds an engine over the given lot resolver. The
// resolver may be nil, in which case every lot id is treated as known.
func NewWeightedEngine(cfg Config, lots LotResolver) *WeightedEngine {
	cfg.SetDefaults()
	return &WeightedEngine{cfg: cfg, lots: lots, curve: cfg.curve(), now: time.Now}
}

// SetCurve replaces the diurnal curve, typically after calibration against
// observed violation counts.
func (e *WeightedEngine) SetCurve(curve [24]float64) { e.curve = curve }

// SetTrend sets the long-term occupancy drift in percentage points per
// forward hour, applied before clamping.
func (e *WeightedEngine) SetTrend(perHour float64) { e.trend = perHour }

// SetClock overrides the generation-time source. Tests pin it to a fixed
// hour to assert determinism.
func (e *WeightedEngine) SetClock(now func() time.Time) { e.now = now }

// Forecast implements Engine.
func (e *WeightedEngine) Forecast(lotID string, horizonHours int, ctx Context) model.PredictionSeries {
	if horizonHours <= 0 {
		horizonHours = e.cfg.HorizonHours
	}
	var lot model.Lot
	if e.lots != nil {
		var ok bool
		lot, ok = e.lots.Get(lotID)
		if !ok {
			return nil
		}
	}

	startHour := e.now().Hour()
	series := make(model.PredictionSeries, 0, horizonHours)
	for i := 0; i < horizonHours; i++ {
		hour := (startHour + i) % 24
		occ := e.cfg.BaseOccupancy + e.curve[hour]*e.cfg.WeightSpan
		occ += e.modifier(lot, ctx)
		occ += e.trend * float64(i)
		occ += lotOffset(lotID, hour)
		occ = clamp(occ, e.cfg.MinOccupancy, e.cfg.MaxOccupancy)

		conf := e.cfg.ConfidenceStart - e.cfg.ConfidenceDecay*float64(i)
		if conf < e.cfg.ConfidenceFloor {
			conf = e.cfg.ConfidenceFloor
		}
		series = append(series, model.PredictionPoint{
			Time:          fmt.Sprintf("%d:00", hour),
			OccupancyRate: math.Round(occ),
			Confidence:    math.Round(conf),
		})
	}
	return series
}

// modifier computes the contextual occupancy bias in percentage points.
// Wet weather and extreme heat shift demand toward covered lots; hotspot
// proximity adds crowding pressure.
func (e *WeightedEngine) modifier(lot model.Lot, ctx Context) float64 {
	var m float64
	if w := ctx.Weather; w != nil {
		if w.Wet() {
			if lot.Covered {
				m += 8
			} else {
				m += 4
			}
		} else if w.Temperature >= 33 && lot.Covered {
			m += 4
		}
	}
	if d := ctx.ViolationDensity; d > 0 {
		if d > 1 {
			d = 1
		}
		m += d * 6
	}
	return m
}

// lotOffset derives a stable pseudo-variation in [-5,5] from the lot id and
// hour, standing in for per-lot noise without a random source.
func lotOffset(lotID string, hour int) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s:%d", lotID, hour)))
	return float64(int(h.Sum32()%11)) - 5
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
