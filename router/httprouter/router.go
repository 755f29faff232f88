package httprouter

import (
	"net/http"

	"github.com/caasmo/bottrap/router"
	jshttprouter "github.com/julienschmidt/httprouter"
)

// Implementation of the router interface
type Router struct {
	rt *jshttprouter.Router
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.rt.ServeHTTP(w, req)
}

func (r *Router) Handle(path string, handler http.Handler) {
	r.rt.Handler("GET", path, handler)
	r.rt.Handler("HEAD", path, handler)
}

func (r *Router) HandleFunc(path string, handler func(http.ResponseWriter, *http.Request)) {
	r.Handle(path, http.HandlerFunc(handler))
}

func (r *Router) NotFound(handler http.Handler) {
	r.rt.NotFound = handler
}

func New() router.Router {
	rt := jshttprouter.New()
	// Unmatched methods fall through to the NotFound fallback instead of
	// getting a bare 405; the static resolver owns the not-found page.
	rt.HandleMethodNotAllowed = false
	return &Router{rt: rt}
}
