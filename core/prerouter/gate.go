// Package prerouter holds the middleware that runs before routing. The
// gate in particular must see every request, whatever path it carries:
// routing happens only for clients that are not blocked.
package prerouter

import (
	"net/http"

	"github.com/caasmo/bottrap/core"
)

// Gate serves the decoy body to blocked clients before the request ever
// reaches the router. Classification order is what makes blocking sticky:
// a blocked client requesting the trap path or robots.txt is still just
// blocked, no further side effects.
type Gate struct {
	app *core.App
}

// NewGate creates the blocklist gate middleware.
func NewGate(app *core.App) *Gate {
	return &Gate{
		app: app,
	}
}

func (g *Gate) Execute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg := g.app.Config()
		ip := g.app.ClientIP(r)

		if core.Classify(r.URL.Path, ip, cfg.Trap.Path, g.app.Blocklist()) == core.ClassBlocked {
			g.app.ServeBullshit(w, cfg.Trap.BlockedStatus)
			return
		}

		next.ServeHTTP(w, r)
	})
}
