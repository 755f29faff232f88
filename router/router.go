package router

import (
	"net/http"
)

// Router is the minimal routing surface the app needs: exact-path handlers
// plus a fallback for everything unmatched (the static resolver).
type Router interface {
	http.Handler

	// Handle registers a handler for an exact path.
	Handle(path string, handler http.Handler)

	// HandleFunc registers a handler function for an exact path.
	HandleFunc(path string, handler func(http.ResponseWriter, *http.Request))

	// NotFound sets the handler invoked for any request no route matches.
	NotFound(handler http.Handler)
}
