package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	r := chi.NewRouter()
	m.RegisterRoutes(r)
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestCollectors(t *testing.T) {
	m := New()
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.ObserveClick("toggled", "", 2*time.Millisecond)
	m.ObserveClick("ignored", "drag", time.Millisecond)
	m.ObserveClick("ignored", "drag", time.Millisecond)
	m.Reloaded()
	m.ObserveFrame(12)

	out := scrape(t, m)
	for _, want := range []string{
		"forcetree_sessions_open 1",
		`forcetree_clicks_total{outcome="ignored",reason="drag"} 2`,
		`forcetree_clicks_total{outcome="toggled",reason=""} 1`,
		"forcetree_click_duration_seconds_count 3",
		"forcetree_dataset_reloads_total 1",
		"forcetree_frame_nodes 12",
		"go_goroutines",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("scrape missing %q", want)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.SessionOpened()
	m.SessionClosed()
	m.ObserveClick("toggled", "", time.Millisecond)
	m.Reloaded()
	m.ObserveFrame(3)
}
