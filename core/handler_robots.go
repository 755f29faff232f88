package core

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/caasmo/bottrap/robots"
)

// RobotsHandler serves robots.txt.
// Endpoint: GET /robots.txt
//
// The generated disallow block for the trap path comes first; an existing
// robots.txt in the public directory is appended after it, so operators
// can keep their own rules.
func (a *App) RobotsHandler(w http.ResponseWriter, r *http.Request) {
	cfg := a.Config()

	body := robots.Generate(cfg.Trap.Path)
	if extra, err := os.ReadFile(filepath.Join(cfg.Paths.Public, "robots.txt")); err == nil {
		body += "\n" + string(extra)
	}

	SetHeaders(w, HeadersRobots)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
