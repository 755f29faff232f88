package prerouter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsByStatus(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	m, err := NewMetrics(MetricsOpts{Registry: registry})
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	status := http.StatusOK
	handler := m.Execute(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))

	for _, s := range []int{200, 200, 404, 500} {
		status = s
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	}

	counts := map[string]float64{"200": 2, "404": 1, "500": 1}
	for code, want := range counts {
		got := testutil.ToFloat64(m.requestsTotal.WithLabelValues(code))
		if got != want {
			t.Errorf("count for status %s = %v, want %v", code, got, want)
		}
	}
}

func TestMetrics_ImplicitOKStatus(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	m, err := NewMetrics(MetricsOpts{Registry: registry})
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	// A handler that writes the body without WriteHeader counts as 200.
	handler := m.Execute(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("200")); got != 1 {
		t.Errorf("count for status 200 = %v, want 1", got)
	}
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	if _, err := NewMetrics(MetricsOpts{Registry: registry}); err != nil {
		t.Fatalf("first NewMetrics() error = %v", err)
	}
	if _, err := NewMetrics(MetricsOpts{Registry: registry}); err == nil {
		t.Error("second NewMetrics() on same registry should fail")
	}
}

func TestMetrics_CustomName(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	m, err := NewMetrics(MetricsOpts{
		MetricName: "bottrap_requests_total",
		Registry:   registry,
	})
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	handler := m.Execute(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	mf, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if len(mf) != 1 || mf[0].GetName() != "bottrap_requests_total" {
		t.Errorf("gathered metrics = %v, want bottrap_requests_total", mf)
	}
}
