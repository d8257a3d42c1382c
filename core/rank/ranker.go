package rank

import (
	"sort"

	"github.com/LeeJaeHaeng/parking-pass/core/geo"
	"github.com/LeeJaeHaeng/parking-pass/core/model"
)

// Ranker filters and orders lot collections for presentation. It never
// mutates its input; annotations land on copies.
type Ranker struct {
	scorer Scorer
	limit  int
}

// NewRanker builds a ranker over the given policy.
func NewRanker(w Weights) Ranker {
	w.SetDefaults()
	return Ranker{scorer: NewScorer(w), limit: w.NearbyLimit}
}

// Rank runs the annotate, filter, sort pipeline. Empty input yields empty
// output; ties preserve the original relative order so repeated calls on the
// same data are deterministic.
func (r Ranker) Rank(lots []model.Lot, ctx model.RecommendationContext) []model.Lot {
	out := r.annotate(lots, ctx)
	out = r.filter(out, ctx)

	if ctx.Nearby {
		sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
		if len(out) > r.limit {
			out = out[:r.limit]
		}
		return out
	}

	switch ctx.Sort {
	case model.SortDistance:
		sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	case model.SortAvailability:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].AvailabilityRatio() > out[j].AvailabilityRatio()
		})
	case model.SortPrice:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Fee.BasicFee < out[j].Fee.BasicFee })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	}
	return out
}

// annotate recomputes distance and score against the request context. With
// no user position the static annotations stand.
func (r Ranker) annotate(lots []model.Lot, ctx model.RecommendationContext) []model.Lot {
	out := make([]model.Lot, len(lots))
	copy(out, lots)
	for i := range out {
		if ctx.Located() {
			out[i].DistanceKm = geo.DistanceKm(*ctx.UserCoordinate, out[i].Coordinate)
		}
		out[i].Score = r.scorer.Score(out[i], ctx.UserCoordinate)
	}
	return out
}

func (r Ranker) filter(lots []model.Lot, ctx model.RecommendationContext) []model.Lot {
	out := lots[:0]
	for _, lot := range lots {
		if ctx.TypeFilter != "" && ctx.TypeFilter != "all" && string(lot.Type) != ctx.TypeFilter {
			continue
		}
		if !lot.Matches(ctx.Query) {
			continue
		}
		// The max-distance filter only applies when the lot's distance is
		// actually known; 0 is the unknown sentinel.
		if ctx.MaxDistanceKm > 0 && lot.DistanceKm > 0 && lot.DistanceKm > ctx.MaxDistanceKm {
			continue
		}
		out = append(out, lot)
	}
	return out
}
