package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/LeeJaeHaeng/parking-pass/core/session"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func record(id string, ended time.Time, fee int) session.Record {
	return session.Record{
		ID:          id,
		LotName:     "Station Garage",
		StartedAt:   ended.Add(-45 * time.Minute),
		EndedAt:     ended,
		DurationMin: 45,
		FeeWon:      fee,
	}
}

func TestAddAndList(t *testing.T) {
	s := openStore(t)
	base := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

	if err := s.Add(record("s-1", base, 2000)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(record("s-2", base.Add(time.Hour), 1500)); err != nil {
		t.Fatalf("add: %v", err)
	}

	recs, err := s.List(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records got %d", len(recs))
	}
	// Newest first.
	if recs[0].ID != "s-2" || recs[1].ID != "s-1" {
		t.Fatalf("unexpected order %+v", recs)
	}
	if recs[1].FeeWon != 2000 || recs[1].DurationMin != 45 {
		t.Fatalf("unexpected record %+v", recs[1])
	}
	if !recs[1].EndedAt.Equal(base) {
		t.Fatalf("expected ended_at %v got %v", base, recs[1].EndedAt)
	}
}

func TestAddDuplicateIgnored(t *testing.T) {
	s := openStore(t)
	base := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

	if err := s.Add(record("s-1", base, 2000)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(record("s-1", base, 9999)); err != nil {
		t.Fatalf("duplicate add should not error: %v", err)
	}
	recs, err := s.List(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 1 || recs[0].FeeWon != 2000 {
		t.Fatalf("expected first insert to win, got %+v", recs)
	}
}

func TestListLimit(t *testing.T) {
	s := openStore(t)
	base := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := s.Add(record(string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour), 1000)); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	recs, err := s.List(3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records got %d", len(recs))
	}
}
