package core

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/caasmo/bottrap/notify"
)

// TrapHandler fires when a client requests the trap path.
// Endpoint: GET <trap.path>
//
// The client is added to the blocklist, durably, before the response goes
// out. The response itself is the same decoy body a blocked client gets,
// status 200, so the crawler learns nothing about having been detected.
func (a *App) TrapHandler(w http.ResponseWriter, r *http.Request) {
	ip := a.ClientIP(r)
	userAgent := r.UserAgent()

	if ip == "" {
		a.logger.Error("trap: client ip not present in request", "user_agent", userAgent)
		a.ServeBullshit(w, http.StatusOK)
		return
	}

	if err := a.blocklist.Add(ip); err != nil {
		// The in-memory block still holds; only persistence degraded.
		a.logger.Error("trap: failed to persist blocked ip", "ip", ip, "error", err)
	}

	a.logger.Warn("trap hit, client blocked", "ip", ip, "user_agent", userAgent)

	if err := a.notifier.Send(context.Background(), notify.Notification{
		Timestamp: time.Now(),
		Type:      notify.TrapNotification,
		Level:     slog.LevelWarn,
		Source:    "trap",
		Message:   "client blocked",
		Fields:    map[string]any{"ip": ip, "user_agent": userAgent},
	}); err != nil {
		a.logger.Error("trap: failed to send notification", "ip", ip, "error", err)
	}

	a.ServeBullshit(w, http.StatusOK)
}
