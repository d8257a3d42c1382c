package fee

import (
	"errors"
	"testing"

	"github.com/LeeJaeHaeng/parking-pass/core/model"
)

func metered() model.FeeSchedule {
	return model.FeeSchedule{
		FeeType:        "metered",
		BasicFee:       1000,
		BasicTime:      30,
		AdditionalFee:  500,
		AdditionalTime: 10,
	}
}

func TestQuoteFreeLot(t *testing.T) {
	s := model.FeeSchedule{FeeType: "free"}
	got, err := Quote(s, 240)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0 got %d", got)
	}
}

func TestQuoteWithinBasicTime(t *testing.T) {
	for _, elapsed := range []int{1, 15, 30} {
		got, err := Quote(metered(), elapsed)
		if err != nil {
			t.Fatalf("quote %d min: %v", elapsed, err)
		}
		if got != 1000 {
			t.Fatalf("%d min: expected 1000 got %d", elapsed, got)
		}
	}
}

func TestQuoteBlockRounding(t *testing.T) {
	cases := []struct {
		elapsed int
		want    int
	}{
		{31, 1500}, // one started block
		{40, 1500},
		{41, 2000},
		{60, 2500},
	}
	for _, c := range cases {
		got, err := Quote(metered(), c.elapsed)
		if err != nil {
			t.Fatalf("quote %d min: %v", c.elapsed, err)
		}
		if got != c.want {
			t.Fatalf("%d min: expected %d got %d", c.elapsed, c.want, got)
		}
	}
}

func TestQuoteMonotonic(t *testing.T) {
	prev := 0
	for elapsed := 0; elapsed <= 300; elapsed += 7 {
		got, err := Quote(metered(), elapsed)
		if err != nil {
			t.Fatalf("quote %d min: %v", elapsed, err)
		}
		if got < prev {
			t.Fatalf("fee decreased at %d min: %d < %d", elapsed, got, prev)
		}
		prev = got
	}
}

func TestQuoteGracePeriod(t *testing.T) {
	s := metered()
	s.GracePeriod = 10
	got, err := Quote(s, 10)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected free within grace period, got %d", got)
	}
	got, err = Quote(s, 11)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if got != 1000 {
		t.Fatalf("expected basic fee after grace period, got %d", got)
	}
}

func TestQuoteDailyCap(t *testing.T) {
	s := metered()
	s.DailyCap = 8000
	got, err := Quote(s, 24*60)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if got != 8000 {
		t.Fatalf("expected cap 8000 got %d", got)
	}
}

func TestQuoteDefaultBasicTime(t *testing.T) {
	s := metered()
	s.BasicTime = 0
	got, err := Quote(s, 25)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if got != 1000 {
		t.Fatalf("expected basic fee under default 30 min, got %d", got)
	}
}

func TestQuoteNegativeDuration(t *testing.T) {
	_, err := Quote(metered(), -1)
	if !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration got %v", err)
	}
}
