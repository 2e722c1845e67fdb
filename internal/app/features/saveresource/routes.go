// internal/app/features/saveresource/routes.go
package saveresource

import (
	"github.com/dalemusser/registro/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter mounted under /api/save-resource. When limiter
// is non-nil every caller is held to its fixed window.
func Routes(h *Handler, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	if limiter != nil {
		r.Use(limiter.Middleware(h.Log))
	}
	r.Post("/", h.Serve)
	return r
}
