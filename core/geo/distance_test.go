package geo

import (
	"math"
	"testing"

	"github.com/LeeJaeHaeng/parking-pass/core/model"
)

func TestDistanceKnownPair(t *testing.T) {
	cityHall := model.Coordinate{Lat: 36.8151, Lon: 127.1139}
	station := model.Coordinate{Lat: 36.8102, Lon: 127.1465}
	got := DistanceKm(cityHall, station)
	// ~2.9 km between Cheonan city hall and the station.
	if got < 2.5 || got > 3.5 {
		t.Fatalf("unexpected distance %v", got)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	a := model.Coordinate{Lat: 36.80, Lon: 127.10}
	b := model.Coordinate{Lat: 36.90, Lon: 127.20}
	if DistanceKm(a, b) != DistanceKm(b, a) {
		t.Fatalf("distance not symmetric: %v vs %v", DistanceKm(a, b), DistanceKm(b, a))
	}
}

func TestDistanceSamePoint(t *testing.T) {
	p := model.Coordinate{Lat: 36.8151, Lon: 127.1139}
	if got := DistanceKm(p, p); got != 0 {
		t.Fatalf("expected 0 got %v", got)
	}
}

func TestDistanceInvalidCoordinate(t *testing.T) {
	p := model.Coordinate{Lat: 36.8151, Lon: 127.1139}
	zero := model.Coordinate{}
	if got := DistanceKm(p, zero); got != 0 {
		t.Fatalf("expected sentinel 0 got %v", got)
	}
	if got := DistanceKm(model.Coordinate{Lat: 0, Lon: 127.1}, p); got != 0 {
		t.Fatalf("expected sentinel 0 got %v", got)
	}
}

func TestDistanceRounding(t *testing.T) {
	a := model.Coordinate{Lat: 36.80, Lon: 127.10}
	b := model.Coordinate{Lat: 36.85, Lon: 127.17}
	got := DistanceKm(a, b)
	if got != math.Round(got*10)/10 {
		t.Fatalf("distance %v not rounded to one decimal", got)
	}
}
