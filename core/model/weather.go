package model

// Weather is the snapshot consumed by the forecast engine's contextual
// modifier. Condition is one of "sunny", "cloudy", "rainy", "snowy".
type Weather struct {
	Temperature              float64 `json:"temperature"`
	Condition                string  `json:"condition"`
	PrecipitationProbability int     `json:"precipitationProbability"`
}

// NeutralWeather is substituted when the weather collaborator is unreachable.
func NeutralWeather() Weather {
	return Weather{Condition: "sunny", PrecipitationProbability: 0}
}

// Wet reports whether the condition shifts demand toward covered lots.
func (w Weather) Wet() bool {
	return w.Condition == "rainy" || w.Condition == "snowy"
}
