package prerouter

import (
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/caasmo/bottrap/core"
)

const logMessage = "http_request"

// cutStr limits string length by adding ellipsis if needed
func cutStr(str string, max int) string {
	if len(str) > max {
		return str[:max] + "..."
	}
	return str
}

// Cached common log attribute
var logType = slog.String("type", "request")

// RequestLog is middleware that logs HTTP request details
type RequestLog struct {
	app *core.App
}

// NewRequestLog creates a new request logging middleware instance
func NewRequestLog(app *core.App) *RequestLog {
	return &RequestLog{
		app: app,
	}
}

// responseRecorder wraps http.ResponseWriter to capture status code.
// Initialized to StatusOK (200) because handlers may:
// 1. Write response body without calling WriteHeader (implicit 200)
// 2. Only call WriteHeader for error cases
// 3. Let the http package set default 200 status
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Execute wraps the next handler with request logging
func (r *RequestLog) Execute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !r.app.Config().Log.Request.Activated {
			next.ServeHTTP(w, req)
			return
		}

		start := time.Now()

		rec := &responseRecorder{
			ResponseWriter: w,
			status:         http.StatusOK, // default success status
		}

		next.ServeHTTP(rec, req)

		duration := time.Since(start)

		// Build log attributes with cached values and length limits
		limits := r.app.Config().Log.Request.Limits
		attrs := make([]any, 0, 11)
		attrs = append(attrs, logType)
		attrs = append(attrs, slog.String("method", strings.ToUpper(req.Method)))
		attrs = append(attrs, slog.String("uri", cutStr(req.URL.RequestURI(), limits.URILength)))
		attrs = append(attrs, slog.Int("status", rec.status))
		attrs = append(attrs, slog.String("duration", duration.String()))
		attrs = append(attrs, slog.String("remote_ip", cutStr(r.app.ClientIP(req), limits.RemoteIPLength)))
		attrs = append(attrs, slog.String("user_agent", cutStr(req.UserAgent(), limits.UserAgentLength)))
		attrs = append(attrs, slog.String("referer", cutStr(req.Referer(), limits.RefererLength)))
		attrs = append(attrs, slog.String("host", cutStr(req.Host, limits.RemoteIPLength)))
		attrs = append(attrs, slog.String("proto", req.Proto))
		attrs = append(attrs, slog.Int64("content_length", req.ContentLength))

		r.app.Logger().Info(logMessage, attrs...)
	})
}
