package forecast

import (
	"math"
	"testing"
)

func TestCalibrateHourlyWeights(t *testing.T) {
	var counts [24]float64
	counts[8] = 120
	counts[12] = 60
	counts[19] = 240

	w := CalibrateHourlyWeights(counts)
	if w[19] != 1 {
		t.Fatalf("peak hour should normalize to 1, got %v", w[19])
	}
	if w[8] != 0.5 {
		t.Fatalf("expected 0.5 got %v", w[8])
	}
	if w[12] != 0.25 {
		t.Fatalf("expected 0.25 got %v", w[12])
	}
	// Hours without observations keep the built-in curve.
	if w[3] != defaultHourlyWeights[3] {
		t.Fatalf("empty hour should fall back to default, got %v", w[3])
	}
}

func TestCalibrateEmptyCounts(t *testing.T) {
	w := CalibrateHourlyWeights([24]float64{})
	if w != defaultHourlyWeights {
		t.Fatal("empty counts should yield the default curve")
	}
}

func TestTrendPerHour(t *testing.T) {
	hours := []float64{0, 1, 2, 3, 4}
	occ := []float64{50, 52, 54, 56, 58}
	got := TrendPerHour(hours, occ)
	if math.Abs(got-2) > 1e-9 {
		t.Fatalf("expected slope 2 got %v", got)
	}
}

func TestTrendTooFewSamples(t *testing.T) {
	if got := TrendPerHour([]float64{1}, []float64{50}); got != 0 {
		t.Fatalf("expected 0 got %v", got)
	}
	if got := TrendPerHour([]float64{1, 2}, []float64{50}); got != 0 {
		t.Fatalf("expected 0 on length mismatch got %v", got)
	}
}

func TestHotspotIndex(t *testing.T) {
	idx := NewHotspotIndex(map[string]float64{
		"Seongjeong-dong": 300,
		"Ssangyong-dong":  150,
	})
	if got := idx.Density("Chungcheongnam-do Cheonan-si Seongjeong-dong 123"); got != 1 {
		t.Fatalf("expected 1 got %v", got)
	}
	if got := idx.Density("Cheonan-si Ssangyong-dong 45"); got != 0.5 {
		t.Fatalf("expected 0.5 got %v", got)
	}
	if got := idx.Density("Cheonan-si Buldang-dong 9"); got != 0 {
		t.Fatalf("expected 0 for unknown zone got %v", got)
	}
}

func TestHotspotIndexEmpty(t *testing.T) {
	idx := NewHotspotIndex(nil)
	if got := idx.Density("anywhere"); got != 0 {
		t.Fatalf("expected 0 got %v", got)
	}
}
