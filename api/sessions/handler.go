// Package sessions exposes parking-session lifecycle and history over HTTP.
package sessions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/LeeJaeHaeng/parking-pass/core/logger"
	"github.com/LeeJaeHaeng/parking-pass/core/model"
	"github.com/LeeJaeHaeng/parking-pass/core/session"
	"github.com/LeeJaeHaeng/parking-pass/infra/payment"
)

// Handler serves /api/sessions and /api/history.
type Handler struct {
	mgr     *session.Manager
	history session.HistoryStore
	log     logger.Logger
}

// New wires the session handler. History may be nil; /api/history then
// returns an empty list.
func New(mgr *session.Manager, history session.HistoryStore, log logger.Logger) *Handler {
	return &Handler{mgr: mgr, history: history, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/sessions":
		h.serveStart(w, r)
	case r.URL.Path == "/api/history":
		h.serveHistory(w, r)
	default:
		rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
		if rest == r.URL.Path {
			http.NotFound(w, r)
			return
		}
		parts := strings.Split(rest, "/")
		switch {
		case len(parts) == 1:
			h.serveGet(w, r, parts[0])
		case len(parts) == 2 && parts[1] == "fee":
			h.serveFee(w, r, parts[0])
		case len(parts) == 2 && parts[1] == "settle":
			h.serveSettle(w, r, parts[0])
		default:
			http.NotFound(w, r)
		}
	}
}

type startRequest struct {
	LotID string `json:"lot_id"`
}

func (h *Handler) serveStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LotID == "" {
		http.Error(w, "lot_id is required", http.StatusBadRequest)
		return
	}
	s, err := h.mgr.Start(req.LotID)
	if err != nil {
		if errors.Is(err, model.ErrUnknownLot) {
			http.Error(w, "lot not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.log.Infof("session %s started at lot %s", s.ID, s.LotID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(s)
}

func (h *Handler) serveGet(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s, ok := h.mgr.Get(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, s)
}

type feeResponse struct {
	SessionID  string `json:"session_id"`
	ElapsedFee int    `json:"elapsed_fee"`
}

func (h *Handler) serveFee(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	amount, err := h.mgr.RunningFee(id)
	if err != nil {
		if errors.Is(err, session.ErrUnknownSession) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, feeResponse{SessionID: id, ElapsedFee: amount})
}

// serveSettle closes the session. A declined payment keeps the session
// open and maps to 402 so the client can retry with another method.
func (h *Handler) serveSettle(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rec, err := h.mgr.Settle(r.Context(), id)
	if err != nil {
		var payErr *payment.Error
		switch {
		case errors.Is(err, session.ErrUnknownSession):
			http.Error(w, "session not found", http.StatusNotFound)
		case errors.As(err, &payErr):
			h.log.Warnf("payment declined for session %s: %v", id, payErr)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusPaymentRequired)
			_ = json.NewEncoder(w).Encode(payErr)
		default:
			h.log.Errorf("settle session %s: %v", id, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	h.log.Infof("session %s settled, %d won for %d min", rec.ID, rec.FeeWon, rec.DurationMin)
	writeJSON(w, rec)
}

func (h *Handler) serveHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.history == nil {
		writeJSON(w, []session.Record{})
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	recs, err := h.history.List(limit)
	if err != nil {
		h.log.Errorf("list history: %v", err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []session.Record{}
	}
	writeJSON(w, recs)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
