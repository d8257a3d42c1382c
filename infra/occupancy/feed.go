// Package occupancy subscribes to the live availability feed. Lot sensors
// publish per-lot counts over MQTT; each message updates exactly one lot in
// the store, never the collection shape.
package occupancy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/LeeJaeHaeng/parking-pass/core/logger"
)

// Config defines the connection parameters for the availability feed.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

// SetDefaults applies the conventional topic and client id.
func (c *Config) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "parking/+/availability"
	}
	if c.ClientID == "" {
		c.ClientID = "parking-pass"
	}
}

// Validate checks mandatory fields when the feed is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("occupancy feed requires a broker")
	}
	return nil
}

// Store is the subset of the lot store the feed writes into.
type Store interface {
	SetAvailability(id string, available int) bool
}

// Feed consumes availability updates from the broker.
type Feed struct {
	cfg   Config
	store Store
	log   logger.Logger
	cli   paho.Client
}

// NewFeed builds a feed over the given store.
func NewFeed(cfg Config, store Store, log logger.Logger) *Feed {
	cfg.SetDefaults()
	return &Feed{cfg: cfg, store: store, log: log}
}

type update struct {
	LotID           string `json:"lot_id"`
	AvailableSpaces int    `json:"available_spaces"`
}

// Start connects, subscribes and blocks until the context is canceled.
func (f *Feed) Start(ctx context.Context) error {
	opts := paho.NewClientOptions().
		AddBroker(f.cfg.Broker).
		SetClientID(f.cfg.ClientID).
		SetUsername(f.cfg.Username).
		SetPassword(f.cfg.Password).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)

	f.cli = paho.NewClient(opts)
	if tok := f.cli.Connect(); tok.Wait() && tok.Error() != nil {
		return fmt.Errorf("connect occupancy broker: %w", tok.Error())
	}
	if tok := f.cli.Subscribe(f.cfg.Topic, f.cfg.QoS, f.handle); tok.Wait() && tok.Error() != nil {
		f.cli.Disconnect(250)
		return fmt.Errorf("subscribe %s: %w", f.cfg.Topic, tok.Error())
	}
	f.log.Infof("occupancy feed subscribed to %s", f.cfg.Topic)

	<-ctx.Done()
	f.cli.Disconnect(250)
	return nil
}

// handle applies one availability update. Malformed payloads and unknown
// lots are logged and dropped; the feed is advisory.
func (f *Feed) handle(_ paho.Client, msg paho.Message) {
	var u update
	if err := json.Unmarshal(msg.Payload(), &u); err != nil {
		f.log.Warnf("invalid availability payload on %s: %v", msg.Topic(), err)
		return
	}
	if u.LotID == "" {
		f.log.Warnf("availability update without lot id on %s", msg.Topic())
		return
	}
	if !f.store.SetAvailability(u.LotID, u.AvailableSpaces) {
		f.log.Debugf("availability update for unknown lot %s dropped", u.LotID)
	}
}
