package model

// SortMode selects the ordering applied to a ranked lot list.
type SortMode string

const (
	SortScore        SortMode = "score"
	SortDistance     SortMode = "distance"
	SortAvailability SortMode = "availability"
	SortPrice        SortMode = "price"
)

// ParseSortMode maps a request parameter to a SortMode, defaulting to the
// recommendation ordering for unknown values.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortDistance, SortAvailability, SortPrice:
		return SortMode(s)
	default:
		return SortScore
	}
}

// RecommendationContext is the per-request input to ranking. It is built from
// request parameters and discarded afterwards. A nil UserCoordinate means the
// caller's position is unknown and ranking runs in location-less mode.
type RecommendationContext struct {
	UserCoordinate *Coordinate
	Sort           SortMode
	MaxDistanceKm  float64 // 0 disables the distance filter
	TypeFilter     string  // "public", "private" or "all"
	Query          string
	Nearby         bool // closest-lots view: distance sort then top-N truncation
}

// Located reports whether a usable user position is present.
func (c RecommendationContext) Located() bool {
	return c.UserCoordinate != nil && c.UserCoordinate.Valid()
}
