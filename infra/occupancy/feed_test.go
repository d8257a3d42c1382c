package occupancy

import (
	"testing"

	"github.com/LeeJaeHaeng/parking-pass/infra/logger"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 0 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 0 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

type fakeStore struct {
	updates map[string]int
}

func (s *fakeStore) SetAvailability(id string, available int) bool {
	if id == "unknown" {
		return false
	}
	s.updates[id] = available
	return true
}

func newTestFeed(store Store) *Feed {
	return NewFeed(Config{Enabled: true, Broker: "tcp://localhost:1883"}, store, logger.NopLogger{})
}

func TestHandleUpdate(t *testing.T) {
	store := &fakeStore{updates: map[string]int{}}
	f := newTestFeed(store)

	f.handle(nil, fakeMessage{
		topic:   "parking/lot-1/availability",
		payload: []byte(`{"lot_id": "lot-1", "available_spaces": 42}`),
	})
	if store.updates["lot-1"] != 42 {
		t.Fatalf("expected update applied, got %+v", store.updates)
	}
}

func TestHandleMalformedPayload(t *testing.T) {
	store := &fakeStore{updates: map[string]int{}}
	f := newTestFeed(store)

	f.handle(nil, fakeMessage{topic: "parking/x/availability", payload: []byte(`not json`)})
	f.handle(nil, fakeMessage{topic: "parking/x/availability", payload: []byte(`{"available_spaces": 5}`)})
	if len(store.updates) != 0 {
		t.Fatalf("malformed updates must be dropped, got %+v", store.updates)
	}
}

func TestHandleUnknownLot(t *testing.T) {
	store := &fakeStore{updates: map[string]int{}}
	f := newTestFeed(store)

	f.handle(nil, fakeMessage{
		topic:   "parking/unknown/availability",
		payload: []byte(`{"lot_id": "unknown", "available_spaces": 5}`),
	})
	if len(store.updates) != 0 {
		t.Fatalf("unknown lot must be dropped, got %+v", store.updates)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{Enabled: true}).Validate(); err == nil {
		t.Fatal("expected error for enabled feed without broker")
	}
	if err := (Config{}).Validate(); err != nil {
		t.Fatalf("disabled feed needs no broker: %v", err)
	}
	cfg := Config{}
	cfg.SetDefaults()
	if cfg.Topic != "parking/+/availability" {
		t.Fatalf("unexpected default topic %q", cfg.Topic)
	}
}
