// Package lotstore holds the client-local lot collection. The collection is
// only ever mutated by whole replacement after a fetch, or by per-lot
// availability updates from the live occupancy feed; readers always see a
// consistent snapshot.
package lotstore

import (
	"sort"
	"sync"

	"github.com/LeeJaeHaeng/parking-pass/core/model"
)

// Store is the authoritative in-memory lot collection.
type Store struct {
	mu   sync.RWMutex
	lots map[string]model.Lot
	ord  []string
}

// New returns an empty store.
func New() *Store {
	return &Store{lots: map[string]model.Lot{}}
}

// Replace swaps the whole collection for the result of a new fetch. Input
// order is preserved for listings so ranking tie-breaks stay stable across
// refreshes.
func (s *Store) Replace(lots []model.Lot) {
	m := make(map[string]model.Lot, len(lots))
	ord := make([]string, 0, len(lots))
	for _, l := range lots {
		if l.ID == "" {
			continue
		}
		if _, dup := m[l.ID]; dup {
			continue
		}
		m[l.ID] = l
		ord = append(ord, l.ID)
	}
	s.mu.Lock()
	s.lots = m
	s.ord = ord
	s.mu.Unlock()
}

// Get returns the lot for the id.
func (s *Store) Get(id string) (model.Lot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lots[id]
	return l, ok
}

// List returns all lots in insertion order.
func (s *Store) List() []model.Lot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Lot, 0, len(s.ord))
	for _, id := range s.ord {
		out = append(out, s.lots[id])
	}
	return out
}

// Len reports the collection size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lots)
}

// SetAvailability updates a single lot's live available-space count, clamped
// to [0, total]. Unknown ids are ignored; the feed is advisory, not a source
// of new lots.
func (s *Store) SetAvailability(id string, available int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lots[id]
	if !ok {
		return false
	}
	if available < 0 {
		available = 0
	}
	if l.TotalSpaces > 0 && available > l.TotalSpaces {
		available = l.TotalSpaces
	}
	l.AvailableSpaces = available
	s.lots[id] = l
	return true
}

// Markers returns the map-adapter view of every lot, ordered by id.
func (s *Store) Markers() []model.Marker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Marker, 0, len(s.lots))
	for _, l := range s.lots {
		out = append(out, l.Marker())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
