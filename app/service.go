// Package app assembles the service from configuration: data sources,
// forecast engine, ranking, sessions and the HTTP API.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/LeeJaeHaeng/parking-pass/api/lots"
	"github.com/LeeJaeHaeng/parking-pass/api/sessions"
	"github.com/LeeJaeHaeng/parking-pass/config"
	"github.com/LeeJaeHaeng/parking-pass/core/forecast"
	"github.com/LeeJaeHaeng/parking-pass/core/lotstore"
	coremetrics "github.com/LeeJaeHaeng/parking-pass/core/metrics"
	"github.com/LeeJaeHaeng/parking-pass/core/rank"
	"github.com/LeeJaeHaeng/parking-pass/core/session"
	"github.com/LeeJaeHaeng/parking-pass/infra/history"
	"github.com/LeeJaeHaeng/parking-pass/infra/logger"
	"github.com/LeeJaeHaeng/parking-pass/infra/metrics"
	"github.com/LeeJaeHaeng/parking-pass/infra/occupancy"
	"github.com/LeeJaeHaeng/parking-pass/infra/payment"
	"github.com/LeeJaeHaeng/parking-pass/infra/prediction"
	"github.com/LeeJaeHaeng/parking-pass/infra/source"
	"github.com/LeeJaeHaeng/parking-pass/infra/weather"
	"github.com/LeeJaeHaeng/parking-pass/internal/eventbus"
)

// Service orchestrates the lot collection, forecast engine and HTTP API.
type Service struct {
	cfg     *config.Config
	log     logger.Logger
	store   *lotstore.Store
	chain   *source.Chain
	engine  forecast.Engine
	wx      *weather.Client
	mgr     *session.Manager
	hist    *history.SQLiteStore
	feed    *occupancy.Feed
	sink       coremetrics.MetricsSink
	bus        *eventbus.Bus[coremetrics.RefreshEvent]
	refreshSub <-chan coremetrics.RefreshEvent
	mux        *http.ServeMux
	closers    []func() error
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	store := lotstore.New()

	var srcs []source.Source
	if cfg.Sources.RegistryURL != "" {
		timeout := time.Duration(cfg.Sources.TimeoutSeconds) * time.Second
		srcs = append(srcs, source.NewHTTPSource(cfg.Sources.RegistryURL, timeout))
	}
	if cfg.Sources.LocalPath != "" {
		srcs = append(srcs, source.NewFileSource(cfg.Sources.LocalPath))
	}
	srcs = append(srcs, source.SeedSource{})
	chain := source.NewChain(logger.New("source"), srcs...)

	engine := forecast.NewWeightedEngine(cfg.Forecast, store)
	var hotspots forecast.HotspotIndex
	if cfg.Forecast.PatternsPath != "" {
		patterns, err := source.LoadViolationPatterns(cfg.Forecast.PatternsPath)
		if err != nil {
			logg.Warnf("violation patterns unavailable, using default curve: %v", err)
		} else {
			engine.SetCurve(forecast.CalibrateHourlyWeights(patterns.HourlyCounts()))
			hotspots = forecast.NewHotspotIndex(patterns.ZoneCounts())
		}
	}

	var fc forecast.Engine = engine
	if cfg.Prediction.URL != "" {
		remote := prediction.NewClient(cfg.Prediction.URL, 10*time.Second)
		fc = prediction.NewFallback(remote, engine, sink, logger.New("prediction"))
	}

	wx := weather.New(cfg.Weather)

	var pay session.PaymentClient
	if cfg.Payment.URL != "" {
		pay = payment.New(cfg.Payment)
	}
	hist, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("history store: %w", err)
	}
	mgr := session.NewManager(store, pay, hist)

	svc := &Service{
		cfg:    cfg,
		log:    logg,
		store:  store,
		chain:  chain,
		engine: fc,
		wx:     wx,
		mgr:    mgr,
		hist:   hist,
		sink:   sink,
		bus:    eventbus.New[coremetrics.RefreshEvent](),
	}
	// Subscribe before anything can refresh, so the startup refresh event
	// is buffered rather than dropped.
	svc.refreshSub = svc.bus.Subscribe()
	svc.closers = append(svc.closers, hist.Close)
	if closer, ok := sink.(interface{ Close() }); ok {
		svc.closers = append(svc.closers, func() error { closer.Close(); return nil })
	}

	if cfg.Occupancy.Enabled {
		svc.feed = occupancy.NewFeed(cfg.Occupancy, store, logger.New("occupancy"))
	}

	ranker := rank.NewRanker(cfg.Recommend)
	lotHandler := lots.New(store, ranker, fc, wx, hotspots, sink, logger.New("api"), cfg.Forecast.HorizonHours)
	sessionHandler := sessions.New(mgr, hist, logger.New("api"))

	mux := http.NewServeMux()
	mux.Handle("/api/lots", lotHandler)
	mux.Handle("/api/lots/", lotHandler)
	mux.Handle("/api/weather", lotHandler)
	mux.Handle("/api/sessions", sessionHandler)
	mux.Handle("/api/sessions/", sessionHandler)
	mux.Handle("/api/history", sessionHandler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	svc.mux = mux

	return svc, nil
}

// Run starts the refresh loop, the live feed and the HTTP server, and
// blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	go s.watchRefreshes(ctx)
	if err := s.refresh(ctx); err != nil {
		s.log.Warnf("initial lot refresh failed: %v", err)
	}
	go s.refreshLoop(ctx)

	if s.feed != nil {
		go func() {
			if err := s.feed.Start(ctx); err != nil {
				s.log.Errorf("occupancy feed: %v", err)
			}
		}()
	}
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.cfg.Server.Addr, Handler: s.mux}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("http api listening on %s", s.cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

// refresh pulls the lot collection from the first healthy source.
func (s *Service) refresh(ctx context.Context) error {
	lotsList, src, err := s.chain.Fetch(ctx)
	if err != nil {
		return err
	}
	s.store.Replace(lotsList)
	s.bus.Publish(coremetrics.RefreshEvent{
		Source: src,
		Lots:   s.store.Len(),
		Time:   time.Now(),
	})
	return nil
}

func (s *Service) refreshLoop(ctx context.Context) {
	interval := time.Duration(s.cfg.Sources.RefreshMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.refresh(ctx); err != nil {
				s.log.Warnf("lot refresh failed: %v", err)
			}
		}
	}
}

// watchRefreshes forwards refresh events to the metrics sink. The
// subscription is taken in New, ahead of the initial refresh.
func (s *Service) watchRefreshes(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.refreshSub:
			if !ok {
				return
			}
			s.log.Infof("lot collection refreshed from %s: %d lots", ev.Source, ev.Lots)
			if err := s.sink.RecordRefresh(ev); err != nil {
				s.log.Warnf("record refresh metric: %v", err)
			}
		}
	}
}

// Handler exposes the HTTP mux, mainly for tests.
func (s *Service) Handler() http.Handler { return s.mux }

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	var firstErr error
	for _, c := range s.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
