// Package session tracks active parking sessions from entry to settlement.
// The fee model provides both the live running total and the final amount
// handed to the payment collaborator.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LeeJaeHaeng/parking-pass/core/fee"
	"github.com/LeeJaeHaeng/parking-pass/core/model"
)

// ErrUnknownSession is returned when no active session matches the id.
var ErrUnknownSession = errors.New("unknown parking session")

// Session is one active parking stay.
type Session struct {
	ID        string            `json:"id"`
	LotID     string            `json:"lot_id"`
	LotName   string            `json:"lot_name"`
	StartedAt time.Time         `json:"started_at"`
	Fee       model.FeeSchedule `json:"fee"`
}

// Record is a settled session as persisted to history.
type Record struct {
	ID          string    `json:"id"`
	LotName     string    `json:"lot_name"`
	StartedAt   time.Time `json:"started_at"`
	EndedAt     time.Time `json:"ended_at"`
	DurationMin int       `json:"duration_min"`
	FeeWon      int       `json:"fee"`
}

// PaymentClient is the external payment collaborator. A returned error is
// surfaced to the caller untouched; the manager never retries.
type PaymentClient interface {
	Charge(ctx context.Context, sessionID string, amount int, lotName string) error
}

// HistoryStore persists settled sessions.
type HistoryStore interface {
	Add(Record) error
	List(limit int) ([]Record, error)
}

// LotResolver looks up the lot a session is opened against.
type LotResolver interface {
	Get(id string) (model.Lot, bool)
}

// Manager owns the active-session table.
type Manager struct {
	mu      sync.Mutex
	active  map[string]Session
	lots    LotResolver
	pay     PaymentClient
	history HistoryStore
	now     func() time.Time
}

// NewManager wires the session manager. History may be nil, in which case
// settled sessions are not persisted.
func NewManager(lots LotResolver, pay PaymentClient, history HistoryStore) *Manager {
	return &Manager{
		active:  map[string]Session{},
		lots:    lots,
		pay:     pay,
		history: history,
		now:     time.Now,
	}
}

// SetClock overrides the time source for tests.
func (m *Manager) SetClock(now func() time.Time) { m.now = now }

// Start opens a session at the given lot.
func (m *Manager) Start(lotID string) (Session, error) {
	lot, ok := m.lots.Get(lotID)
	if !ok {
		return Session{}, fmt.Errorf("start session: %w", model.ErrUnknownLot)
	}
	s := Session{
		ID:        uuid.NewString(),
		LotID:     lot.ID,
		LotName:   lot.Name,
		StartedAt: m.now(),
		Fee:       lot.Fee,
	}
	m.mu.Lock()
	m.active[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns the active session for the id.
func (m *Manager) Get(id string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.active[id]
	return s, ok
}

// RunningFee returns the current accrued fee for the session.
func (m *Manager) RunningFee(id string) (int, error) {
	m.mu.Lock()
	s, ok := m.active[id]
	m.mu.Unlock()
	if !ok {
		return 0, fmt.Errorf("running fee: %w", ErrUnknownSession)
	}
	elapsed := int(m.now().Sub(s.StartedAt).Minutes())
	return fee.Quote(s.Fee, elapsed)
}

// Settle quotes the final fee, charges the payment collaborator and, on
// success, persists the record and closes the session. A payment error
// leaves the session open.
func (m *Manager) Settle(ctx context.Context, id string) (Record, error) {
	m.mu.Lock()
	s, ok := m.active[id]
	m.mu.Unlock()
	if !ok {
		return Record{}, fmt.Errorf("settle: %w", ErrUnknownSession)
	}
	end := m.now()
	elapsed := int(end.Sub(s.StartedAt).Minutes())
	amount, err := fee.Quote(s.Fee, elapsed)
	if err != nil {
		return Record{}, err
	}
	if m.pay != nil && amount > 0 {
		if err := m.pay.Charge(ctx, s.ID, amount, s.LotName); err != nil {
			return Record{}, err
		}
	}
	rec := Record{
		ID:          s.ID,
		LotName:     s.LotName,
		StartedAt:   s.StartedAt,
		EndedAt:     end,
		DurationMin: elapsed,
		FeeWon:      amount,
	}
	if m.history != nil {
		if err := m.history.Add(rec); err != nil {
			return Record{}, fmt.Errorf("persist history: %w", err)
		}
	}
	m.mu.Lock()
	delete(m.active, id)
	m.mu.Unlock()
	return rec, nil
}
