package core

import (
	"net/http"
	"os"
)

var HeadersHtml = map[string]string{
	"Content-Type": "text/html; charset=utf-8",

	// Ensure the browser respects the declared content type strictly.
	// mitigate MIME-type sniffing attacks
	"X-Content-Type-Options": "nosniff",
}

var HeadersRobots = map[string]string{
	"Content-Type":           "text/plain; charset=utf-8",
	"X-Content-Type-Options": "nosniff",
}

// Minimal fallback bodies for when the configured pages themselves are
// unavailable. Serving must never fail just because a page file is gone.
const (
	genericNotFoundBody = "404 page not found\n"
	genericErrorBody    = "500 internal server error\n"
)

func SetHeaders(w http.ResponseWriter, headers map[string]string) {
	for key, value := range headers {
		w.Header().Set(key, value)
	}
}

// ServeBullshit writes the decoy body with the given status. The file is
// re-read on every call so it stays hot-editable while running. A missing
// or unreadable decoy file degrades to an empty body, logged, never an
// error to the client.
func (a *App) ServeBullshit(w http.ResponseWriter, status int) {
	body, err := os.ReadFile(a.Config().Paths.Bullshit)
	if err != nil {
		a.logger.Error("failed to read bullshit file", "path", a.Config().Paths.Bullshit, "error", err)
		body = nil
	}
	SetHeaders(w, HeadersHtml)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// serveNotFound writes the configured not-found page with status 404,
// falling back to a minimal generic body when that page is itself missing.
func (a *App) serveNotFound(w http.ResponseWriter) {
	body, err := os.ReadFile(a.Config().Paths.NotFound)
	if err != nil {
		SetHeaders(w, HeadersRobots)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(genericNotFoundBody))
		return
	}
	SetHeaders(w, HeadersHtml)
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(body)
}

// serveInternalError writes a generic 500 body. Details stay in the log,
// nothing about the failure leaks to the client.
func serveInternalError(w http.ResponseWriter) {
	SetHeaders(w, HeadersRobots)
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(genericErrorBody))
}
