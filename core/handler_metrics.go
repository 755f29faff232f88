package core

import (
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler serves Prometheus metrics in the standard format.
// Endpoint: GET <metrics.endpoint>
//
// Guarded by an exact-IP allowlist checked against the transport peer
// address, never the proxy header; disallowed scrapers get the same
// not-found page as any other unknown path.
func (a *App) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	cfg := a.Config()

	if !cfg.Metrics.Enabled {
		a.serveNotFound(w)
		return
	}

	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}

	allowed := false
	for _, ip := range cfg.Metrics.AllowedIPs {
		if ip == peer {
			allowed = true
			break
		}
	}
	if !allowed {
		a.serveNotFound(w)
		return
	}

	promhttp.Handler().ServeHTTP(w, r)
}
