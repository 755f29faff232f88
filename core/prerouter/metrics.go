package prerouter

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsOpts holds configuration options for the Metrics middleware.
type MetricsOpts struct {
	// MetricName is the name of the Prometheus counter.
	// Default: "http_server_requests_total"
	MetricName string

	// ConstLabels are static labels added to every metric.
	ConstLabels map[string]string

	// Registry is the Prometheus registry to register the metric with.
	// If nil, prometheus.DefaultRegisterer is used.
	Registry prometheus.Registerer
}

const (
	defaultMetricName          = "http_server_requests_total"
	defaultMetricHelp          = "Total number of HTTP requests handled by the server, labeled by status code."
	defaultStatusCodeLabelName = "code"
)

// Metrics counts handled requests, labeled by status code.
type Metrics struct {
	requestsTotal *prometheus.CounterVec
}

// NewMetrics creates the metrics middleware and registers its counter.
func NewMetrics(opts MetricsOpts) (*Metrics, error) {
	name := opts.MetricName
	if name == "" {
		name = defaultMetricName
	}
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        name,
			Help:        defaultMetricHelp,
			ConstLabels: opts.ConstLabels,
		},
		[]string{defaultStatusCodeLabelName},
	)
	if err := registry.Register(requestsTotal); err != nil {
		return nil, err
	}

	return &Metrics{requestsTotal: requestsTotal}, nil
}

func (m *Metrics) Execute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{
			ResponseWriter: w,
			status:         http.StatusOK,
		}

		next.ServeHTTP(rec, r)

		m.requestsTotal.WithLabelValues(strconv.Itoa(rec.status)).Inc()
	})
}
