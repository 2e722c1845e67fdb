// internal/app/features/metadata/routes.go
package metadata

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted under /api/metadata.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Serve)
	return r
}
