package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LeeJaeHaeng/parking-pass/core/model"
)

func TestCurrentFetchesAndCaches(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/weather" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"temperature": 21.5, "condition": "rainy", "precipitationProbability": 80}`))
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL, CacheSeconds: 600})
	now := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	w := c.Current(context.Background())
	if w.Condition != "rainy" || w.Temperature != 21.5 {
		t.Fatalf("unexpected weather %+v", w)
	}
	// Within the TTL the cached snapshot is returned without a request.
	now = now.Add(5 * time.Minute)
	_ = c.Current(context.Background())
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 upstream call got %d", got)
	}
	// Past the TTL the snapshot refreshes.
	now = now.Add(10 * time.Minute)
	_ = c.Current(context.Background())
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 upstream calls got %d", got)
	}
}

func TestCurrentNeutralOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL})
	w := c.Current(context.Background())
	if w.Condition != "sunny" || w.PrecipitationProbability != 0 {
		t.Fatalf("expected neutral default got %+v", w)
	}
}

func TestCurrentDoesNotBlockBehindSlowRefresh(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		once.Do(func() { close(started) })
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"condition": "rainy"}`))
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL})
	first := make(chan model.Weather, 1)
	go func() { first <- c.Current(context.Background()) }()
	<-started

	// A second caller must not queue behind the in-flight fetch.
	done := make(chan model.Weather, 1)
	go func() { done <- c.Current(context.Background()) }()
	select {
	case w := <-done:
		if w.Wet() {
			t.Fatalf("expected neutral snapshot while refreshing, got %+v", w)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second caller blocked behind the slow refresh")
	}

	close(release)
	if w := <-first; w.Condition != "rainy" {
		t.Fatalf("refresher should get the fetched snapshot, got %+v", w)
	}
}

func TestCurrentNoEndpoint(t *testing.T) {
	c := New(Config{})
	w := c.Current(context.Background())
	if w.Wet() {
		t.Fatalf("expected neutral default got %+v", w)
	}
}
