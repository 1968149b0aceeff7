package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// newTestRouter mounts a handler so chi URL params resolve in tests.
func newTestRouter(method, pattern string, handler http.HandlerFunc) chi.Router {
	r := chi.NewRouter()
	r.Method(method, pattern, handler)
	return r
}
