// internal/app/features/validate/routes.go
package validate

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted under /api/validate.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Serve)
	return r
}
