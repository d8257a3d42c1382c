// Package lots exposes the lot collection, ranking and forecasts over HTTP.
package lots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/LeeJaeHaeng/parking-pass/core/forecast"
	"github.com/LeeJaeHaeng/parking-pass/core/geo"
	"github.com/LeeJaeHaeng/parking-pass/core/logger"
	coremetrics "github.com/LeeJaeHaeng/parking-pass/core/metrics"
	"github.com/LeeJaeHaeng/parking-pass/core/model"
	"github.com/LeeJaeHaeng/parking-pass/core/rank"
)

// Store is the lot collection the handler reads.
type Store interface {
	Get(id string) (model.Lot, bool)
	List() []model.Lot
	Markers() []model.Marker
}

// WeatherProvider yields the current weather snapshot.
type WeatherProvider interface {
	Current(ctx context.Context) model.Weather
}

// Handler serves /api/lots and /api/weather.
type Handler struct {
	store    Store
	ranker   rank.Ranker
	engine   forecast.Engine
	weather  WeatherProvider
	hotspots forecast.HotspotIndex
	sink     coremetrics.MetricsSink
	log      logger.Logger
	horizon  int
}

// New wires the lot handler. weather and hotspots may be nil/empty; the
// forecast then runs without contextual modifiers.
func New(store Store, ranker rank.Ranker, engine forecast.Engine, weather WeatherProvider,
	hotspots forecast.HotspotIndex, sink coremetrics.MetricsSink, log logger.Logger, horizonHours int) *Handler {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if horizonHours <= 0 {
		horizonHours = 24
	}
	return &Handler{
		store:    store,
		ranker:   ranker,
		engine:   engine,
		weather:  weather,
		hotspots: hotspots,
		sink:     sink,
		log:      log,
		horizon:  horizonHours,
	}
}

// ServeHTTP routes /api/lots, /api/lots/markers, /api/lots/{id},
// /api/lots/{id}/forecast and /api/weather.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	switch {
	case r.URL.Path == "/api/weather":
		h.serveWeather(w, r)
	case r.URL.Path == "/api/lots":
		h.serveList(w, r)
	case r.URL.Path == "/api/lots/markers":
		writeJSON(w, h.store.Markers())
	default:
		rest := strings.TrimPrefix(r.URL.Path, "/api/lots/")
		if rest == r.URL.Path {
			http.NotFound(w, r)
			return
		}
		parts := strings.Split(rest, "/")
		switch {
		case len(parts) == 1:
			h.serveDetail(w, r, parts[0])
		case len(parts) == 2 && parts[1] == "forecast":
			h.serveForecast(w, r, parts[0])
		default:
			http.NotFound(w, r)
		}
	}
}

// serveList ranks the collection against the request context.
func (h *Handler) serveList(w http.ResponseWriter, r *http.Request) {
	ctx := rankContext(r)
	ranked := h.ranker.Rank(h.store.List(), ctx)
	if err := h.sink.RecordRank(coremetrics.RankEvent{
		Sort:     string(ctx.Sort),
		Located:  ctx.Located(),
		Returned: len(ranked),
		Time:     time.Now(),
	}); err != nil {
		h.log.Warnf("record rank metric: %v", err)
	}
	writeJSON(w, ranked)
}

func (h *Handler) serveDetail(w http.ResponseWriter, r *http.Request, id string) {
	lot, ok := h.store.Get(id)
	if !ok {
		http.Error(w, "lot not found", http.StatusNotFound)
		return
	}
	if user := userCoordinate(r); user != nil {
		lot.DistanceKm = geo.DistanceKm(*user, lot.Coordinate)
	}
	writeJSON(w, lot)
}

// serveForecast returns the prediction series for a lot. An unresolvable
// lot degrades to the flat default estimate instead of failing, matching
// what the detail view renders without data.
func (h *Handler) serveForecast(w http.ResponseWriter, r *http.Request, id string) {
	hours := h.horizon
	if v := r.URL.Query().Get("hours"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 48 {
			hours = n
		}
	}
	fctx := forecast.Context{}
	if h.weather != nil {
		wx := h.weather.Current(r.Context())
		fctx.Weather = &wx
	}
	if lot, ok := h.store.Get(id); ok {
		fctx.ViolationDensity = h.hotspots.Density(lot.Address)
	}
	series := h.engine.Forecast(id, hours, fctx)
	if len(series) == 0 {
		series = defaultSeries(hours)
	}
	writeJSON(w, series)
}

func (h *Handler) serveWeather(w http.ResponseWriter, r *http.Request) {
	if h.weather == nil {
		writeJSON(w, model.NeutralWeather())
		return
	}
	writeJSON(w, h.weather.Current(r.Context()))
}

// rankContext builds the recommendation context from query parameters.
// Missing lat/lon switches ranking to location-less mode.
func rankContext(r *http.Request) model.RecommendationContext {
	q := r.URL.Query()
	ctx := model.RecommendationContext{
		UserCoordinate: userCoordinate(r),
		Sort:           model.ParseSortMode(q.Get("sort")),
		TypeFilter:     q.Get("type"),
		Query:          q.Get("q"),
		Nearby:         q.Get("nearby") == "true",
	}
	if v := q.Get("max_distance"); v != "" {
		if km, err := strconv.ParseFloat(v, 64); err == nil && km > 0 {
			ctx.MaxDistanceKm = km
		}
	}
	// Distance ordering is meaningless without a position; degrade to the
	// recommendation ordering instead of erroring.
	if !ctx.Located() && ctx.Sort == model.SortDistance {
		ctx.Sort = model.SortScore
	}
	return ctx
}

func userCoordinate(r *http.Request) *model.Coordinate {
	q := r.URL.Query()
	lat, err1 := strconv.ParseFloat(q.Get("lat"), 64)
	lon, err2 := strconv.ParseFloat(q.Get("lon"), 64)
	if err1 != nil || err2 != nil {
		return nil
	}
	c := model.Coordinate{Lat: lat, Lon: lon}
	if !c.Valid() {
		return nil
	}
	return &c
}

func defaultSeries(hours int) model.PredictionSeries {
	now := time.Now().Hour()
	series := make(model.PredictionSeries, hours)
	for i := range series {
		p := model.DefaultEstimate()
		p.Time = fmt.Sprintf("%d:00", (now+i)%24)
		series[i] = p
	}
	return series
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
