package sessions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/LeeJaeHaeng/parking-pass/core/model"
	"github.com/LeeJaeHaeng/parking-pass/core/session"
	"github.com/LeeJaeHaeng/parking-pass/infra/logger"
	"github.com/LeeJaeHaeng/parking-pass/infra/payment"
)

type fakeLots map[string]model.Lot

func (f fakeLots) Get(id string) (model.Lot, bool) {
	l, ok := f[id]
	return l, ok
}

type fakePayment struct {
	err error
}

func (p fakePayment) Charge(_ context.Context, _ string, _ int, _ string) error {
	return p.err
}

type memHistory struct {
	records []session.Record
	err     error
}

func (h *memHistory) Add(r session.Record) error {
	h.records = append(h.records, r)
	return nil
}

func (h *memHistory) List(_ int) ([]session.Record, error) {
	return h.records, h.err
}

func testManager(pay session.PaymentClient, hist session.HistoryStore) *session.Manager {
	lots := fakeLots{
		"lot-1": {
			ID:   "lot-1",
			Name: "Station Garage",
			Fee: model.FeeSchedule{
				FeeType:        "metered",
				BasicFee:       1000,
				BasicTime:      30,
				AdditionalFee:  500,
				AdditionalTime: 10,
			},
		},
	}
	return session.NewManager(lots, pay, hist)
}

func startSession(t *testing.T, h *Handler) session.Session {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(`{"lot_id": "lot-1"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start status %d: %s", rec.Code, rec.Body.String())
	}
	var s session.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return s
}

func TestStartSession(t *testing.T) {
	h := New(testManager(nil, nil), nil, logger.NopLogger{})
	s := startSession(t, h)
	if s.LotID != "lot-1" || s.ID == "" {
		t.Fatalf("unexpected session %+v", s)
	}
}

func TestStartSessionUnknownLot(t *testing.T) {
	h := New(testManager(nil, nil), nil, logger.NopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(`{"lot_id": "missing"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestStartSessionBadPayload(t *testing.T) {
	h := New(testManager(nil, nil), nil, logger.NopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestRunningFee(t *testing.T) {
	mgr := testManager(nil, nil)
	start := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	now := start
	mgr.SetClock(func() time.Time { return now })
	h := New(mgr, nil, logger.NopLogger{})

	s := startSession(t, h)
	now = start.Add(45 * time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+s.ID+"/fee", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp feeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ElapsedFee != 2000 {
		t.Fatalf("expected 2000 got %d", resp.ElapsedFee)
	}
}

func TestSettleSession(t *testing.T) {
	hist := &memHistory{}
	mgr := testManager(fakePayment{}, hist)
	start := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	now := start
	mgr.SetClock(func() time.Time { return now })
	h := New(mgr, hist, logger.NopLogger{})

	s := startSession(t, h)
	now = start.Add(45 * time.Minute)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+s.ID+"/settle", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var r session.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.FeeWon != 2000 || r.DurationMin != 45 {
		t.Fatalf("unexpected record %+v", r)
	}
	if len(hist.records) != 1 {
		t.Fatalf("record not persisted")
	}
}

func TestSettlePaymentDeclined(t *testing.T) {
	declined := &payment.Error{Code: "insufficient_funds", Reason: "card balance too low"}
	mgr := testManager(fakePayment{err: declined}, nil)
	start := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	now := start
	mgr.SetClock(func() time.Time { return now })
	h := New(mgr, nil, logger.NopLogger{})

	s := startSession(t, h)
	now = start.Add(45 * time.Minute)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+s.ID+"/settle", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402 got %d", rec.Code)
	}
	var pe payment.Error
	if err := json.Unmarshal(rec.Body.Bytes(), &pe); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pe.Code != "insufficient_funds" {
		t.Fatalf("unexpected error %+v", pe)
	}
	// The session stays open for a retry.
	if _, ok := mgr.Get(s.ID); !ok {
		t.Fatal("session should stay open after a declined payment")
	}
}

func TestSettleUnknownSession(t *testing.T) {
	h := New(testManager(nil, nil), nil, logger.NopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/nope/settle", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	hist := &memHistory{records: []session.Record{
		{ID: "s-1", LotName: "Station Garage", FeeWon: 2000, DurationMin: 45},
	}}
	h := New(testManager(nil, hist), hist, logger.NopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/history?limit=10", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var recs []session.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "s-1" {
		t.Fatalf("unexpected records %+v", recs)
	}
}

func TestHistoryWithoutStore(t *testing.T) {
	h := New(testManager(nil, nil), nil, logger.NopLogger{})
	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty list got %q", body)
	}
}
