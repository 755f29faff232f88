package prerouter

import (
	"net/http"

	"github.com/caasmo/bottrap/core"
)

// Recover converts a per-request panic into a generic 500 response. One
// request's failure must never take down the server process or other
// in-flight requests.
type Recover struct {
	app *core.App
}

func NewRecover(app *core.App) *Recover {
	return &Recover{
		app: app,
	}
}

func (rc *Recover) Execute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				rc.app.Logger().Error("panic while handling request",
					"path", r.URL.Path,
					"panic", rec)
				// Headers may already be out; WriteHeader then becomes a
				// no-op and the connection is cut short, which is fine.
				core.SetHeaders(w, core.HeadersRobots)
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("500 internal server error\n"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
